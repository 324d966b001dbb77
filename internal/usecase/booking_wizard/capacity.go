package booking_wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Результаты проверки заполненности для метрик
const (
	capacityResultAvailable  = "available"
	capacityResultFull       = "full"
	capacityResultFailedOpen = "failed_open"
	capacityResultStale      = "stale"
)

// capacityCheckTimeout предел для фоновой проверки, запущенной выбором даты
const capacityCheckTimeout = 15 * time.Second

// CapacityOracle считает подтвержденные записи на дату
type CapacityOracle struct {
	lister AppointmentLister
}

// NewCapacityOracle создает оракул поверх источника записей
func NewCapacityOracle(lister AppointmentLister) *CapacityOracle {
	return &CapacityOracle{lister: lister}
}

// Count каждый раз запрашивает свежий список записей
func (o *CapacityOracle) Count(ctx context.Context, date string) (int, error) {
	appointments, err := o.lister.ListAppointmentsByDate(ctx, date)
	if err != nil {
		return 0, err
	}
	return domain.CountConfirmed(appointments), nil
}

// startCapacityCheck запускает проверку для текущего токена; вызывается под w.mu
func (w *Wizard) startCapacityCheck(state CapacityState) {
	if w.cancelCheck != nil {
		w.cancelCheck()
	}

	ctx, cancel := context.WithTimeout(context.Background(), capacityCheckTimeout)
	done := make(chan struct{})
	w.cancelCheck = cancel
	w.checkDone = done

	go func() {
		defer close(done)
		defer cancel()

		count, err := w.oracle.Count(ctx, state.Date)
		w.resolveCapacity(CapacityResolved{
			Token: state.Token,
			Date:  state.Date,
			Count: count,
			Err:   err,
		})
	}()
}

func (w *Wizard) resolveCapacity(ev CapacityResolved) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || ev.Token != w.draft.Capacity.Token || ev.Date != w.draft.Capacity.Date {
		w.logger.Info("BookingWizard: discarding stale capacity result for date=%s token=%d", ev.Date, ev.Token)
		w.metrics.ObserveCapacityCheck(capacityResultStale)
		return
	}

	switch {
	case ev.Err != nil:
		w.logger.Warn("BookingWizard: capacity check for date=%s failed, proceeding without limit: %v", ev.Date, ev.Err)
		w.metrics.ObserveCapacityCheck(capacityResultFailedOpen)
	case ev.Count >= w.policy.DailyCapacity:
		w.logger.Info("BookingWizard: date=%s is fully booked, confirmed=%d", ev.Date, ev.Count)
		w.metrics.ObserveCapacityCheck(capacityResultFull)
	default:
		w.metrics.ObserveCapacityCheck(capacityResultAvailable)
	}

	_ = w.applyLocked(ev)
}

// WaitCapacity ждет завершения последней запущенной проверки заполненности.
// Если за время ожидания выбрана другая дата, ждет уже ее проверку
func (w *Wizard) WaitCapacity(ctx context.Context) error {
	var waited chan struct{}
	for {
		w.mu.Lock()
		done := w.checkDone
		w.mu.Unlock()

		if done == nil || done == waited {
			return nil
		}

		select {
		case <-done:
			waited = done
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
