package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftparcel/swiftparcel-be/internal/api"
	"github.com/swiftparcel/swiftparcel-be/internal/models"
	"github.com/swiftparcel/swiftparcel-be/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeParcelService is a canned-response ParcelServiceProvider.
type fakeParcelService struct {
	parcels   []models.Parcel
	created   models.Parcel
	createErr error
	getErr    error
	deleted   int64
	deleteErr error
	markErr   error

	lastEmail string
	lastRole  string
}

func (f *fakeParcelService) CreateParcel(_ context.Context, _ models.Parcel) (models.Parcel, error) {
	return f.created, f.createErr
}

func (f *fakeParcelService) ListParcels(_ context.Context, email, role string) ([]models.Parcel, error) {
	f.lastEmail = email
	f.lastRole = role
	return f.parcels, nil
}

func (f *fakeParcelService) GetParcelByID(_ context.Context, _ string) (models.Parcel, error) {
	if f.getErr != nil {
		return models.Parcel{}, f.getErr
	}
	if len(f.parcels) == 0 {
		return models.Parcel{}, services.ErrParcelNotFound
	}
	return f.parcels[0], nil
}

func (f *fakeParcelService) DeleteParcelByID(_ context.Context, _ string) (int64, error) {
	return f.deleted, f.deleteErr
}

func (f *fakeParcelService) MarkParcelPaid(_ context.Context, _ string) error {
	return f.markErr
}

func (f *fakeParcelService) FindPaidParcelIDs(_ context.Context) ([]string, error) {
	return nil, nil
}

func newTestRouter(parcels services.ParcelServiceProvider, users services.UserServiceProvider, pays services.PaymentServiceProvider) http.Handler {
	return api.NewRouter("http://localhost:5173", parcels, users, pays)
}

func TestParcelGetAll(t *testing.T) {
	older := models.Parcel{ID: primitive.NewObjectID(), SenderEmail: "a@x.com", CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Parcel{ID: primitive.NewObjectID(), SenderEmail: "a@x.com", CreatedAt: time.Now()}
	svc := &fakeParcelService{parcels: []models.Parcel{newer, older}}
	router := newTestRouter(svc, &fakeUserService{}, &fakePaymentService{})

	req := httptest.NewRequest(http.MethodGet, "/parcels?email=a@x.com&role=user", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", svc.lastEmail)
	assert.Equal(t, "user", svc.lastRole)

	var got []models.Parcel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	// Newest first, as returned by the service.
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
}

func TestParcelGetAllAdminRolePassedThrough(t *testing.T) {
	svc := &fakeParcelService{}
	router := newTestRouter(svc, &fakeUserService{}, &fakePaymentService{})

	req := httptest.NewRequest(http.MethodGet, "/parcels?role=admin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", svc.lastRole)
	assert.Equal(t, "", svc.lastEmail)
}

func TestParcelCreate(t *testing.T) {
	created := models.Parcel{
		ID:            primitive.NewObjectID(),
		TrackingID:    "TRK-test",
		SenderEmail:   "a@x.com",
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	svc := &fakeParcelService{created: created}
	router := newTestRouter(svc, &fakeUserService{}, &fakePaymentService{})

	body := strings.NewReader(`{"sender_email":"a@x.com","title":"Books"}`)
	req := httptest.NewRequest(http.MethodPost, "/parcels", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got struct {
		InsertedID string        `json:"insertedId"`
		Parcel     models.Parcel `json:"parcel"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID.Hex(), got.InsertedID)
	assert.Equal(t, models.PaymentStatusUnpaid, got.Parcel.PaymentStatus)
}

func TestParcelCreateBadBody(t *testing.T) {
	router := newTestRouter(&fakeParcelService{}, &fakeUserService{}, &fakePaymentService{})

	req := httptest.NewRequest(http.MethodPost, "/parcels", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParcelGetNotFound(t *testing.T) {
	svc := &fakeParcelService{getErr: services.ErrParcelNotFound}
	router := newTestRouter(svc, &fakeUserService{}, &fakePaymentService{})

	req := httptest.NewRequest(http.MethodGet, "/parcels/"+primitive.NewObjectID().Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParcelDeleteMissReturnsZeroCount(t *testing.T) {
	svc := &fakeParcelService{deleted: 0}
	router := newTestRouter(svc, &fakeUserService{}, &fakePaymentService{})

	req := httptest.NewRequest(http.MethodDelete, "/parcels/"+primitive.NewObjectID().Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(0), got["deletedCount"])
}
