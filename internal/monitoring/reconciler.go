package monitoring

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/swiftparcel/swiftparcel-be/internal/services"
)

// Reconciler periodically scans for parcels that were marked paid without a
// matching payment record. The settlement workflow is two-phase and not
// atomic; a crash between the phases leaves such a gap, and this sweep is
// how it gets noticed. The sweep only reports, it never mutates.
type Reconciler struct {
	parcelSvc  services.ParcelServiceProvider
	paymentSvc services.PaymentServiceProvider
	schedule   cron.Schedule
	done       chan bool
}

// NewReconciler creates a reconciler running on a standard cron schedule.
func NewReconciler(parcelSvc services.ParcelServiceProvider, paymentSvc services.PaymentServiceProvider, scheduleExpr string) (*Reconciler, error) {
	schedule, err := cron.ParseStandard(scheduleExpr)
	if err != nil {
		return nil, err
	}
	return &Reconciler{
		parcelSvc:  parcelSvc,
		paymentSvc: paymentSvc,
		schedule:   schedule,
		done:       make(chan bool),
	}, nil
}

// Run starts the reconciliation loop.
func (r *Reconciler) Run() {
	log.Info().Msg("Starting settlement reconciler")

	next := r.schedule.Next(time.Now())
	for {
		timer := time.NewTimer(time.Until(next))
		select {
		case <-r.done:
			timer.Stop()
			log.Info().Msg("Stopping settlement reconciler")
			return
		case <-timer.C:
			r.sweep()
			next = r.schedule.Next(time.Now())
		}
	}
}

// Stop halts the reconciler.
func (r *Reconciler) Stop() {
	r.done <- true
}

// sweep returns every paid parcel id that has no payment record, logging
// each one as it is found.
func (r *Reconciler) sweep() []string {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	paid, err := r.parcelSvc.FindPaidParcelIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Reconciler: failed to list paid parcels")
		return nil
	}

	settled, err := r.paymentSvc.SettledParcelIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Reconciler: failed to list settled parcels")
		return nil
	}

	recorded := make(map[string]struct{}, len(settled))
	for _, id := range settled {
		recorded[id] = struct{}{}
	}

	var gaps []string
	for _, id := range paid {
		if _, ok := recorded[id]; !ok {
			gaps = append(gaps, id)
			log.Warn().Str("parcel_id", id).Msg("Parcel marked paid with no payment record")
		}
	}
	log.Debug().Int("paid", len(paid)).Int("gaps", len(gaps)).Msg("Settlement sweep finished")
	return gaps
}
