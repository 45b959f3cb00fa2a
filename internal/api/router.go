package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/swiftparcel/swiftparcel-be/internal/api/handlers"
	"github.com/swiftparcel/swiftparcel-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(allowedOrigin string, parcelService services.ParcelServiceProvider, userService services.UserServiceProvider, paymentService services.PaymentServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	parcelHandler := handlers.NewParcelHandler(parcelService)
	userHandler := handlers.NewUserHandler(userService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Liveness probe
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Parcel delivery server is running"))
	})

	r.Route("/parcels", func(r chi.Router) {
		r.Get("/", parcelHandler.GetAll)
		r.Post("/", parcelHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", parcelHandler.Get)
			r.Delete("/", parcelHandler.Delete)
		})
	})

	r.Post("/users", userHandler.Upsert)

	r.Post("/create-payment-intent", paymentHandler.CreateIntent)
	r.Route("/payments", func(r chi.Router) {
		r.Get("/", paymentHandler.GetAll)
		r.Post("/", paymentHandler.Create)
	})

	return r
}
