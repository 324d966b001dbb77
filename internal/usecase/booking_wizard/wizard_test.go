package booking_wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestWizard_CapacityCap(t *testing.T) {
	tests := []struct {
		name      string
		confirmed int
		other     int
		wantFull  bool
	}{
		{name: "20 confirmed blocks", confirmed: 20, other: 7, wantFull: true},
		{name: "19 confirmed passes", confirmed: 19, other: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := newTestWizard(t, Options{})
			tw.lister.fn = func(_ context.Context, _ int, date string) ([]domain.Appointment, error) {
				return appointments(date, tt.confirmed, tt.other), nil
			}

			tw.dispatch(t, SelectService{ServiceID: 3})
			tw.dispatch(t, SelectDescription{Label: "Day"})
			tw.dispatch(t, SelectDate{Date: at(5, 0, 0, 0)})
			tw.waitCapacity(t)

			snap, err := tw.Dispatch(Next{})
			if tt.wantFull {
				assert.ErrorIs(t, err, ErrDateFullyBooked)
				assert.Equal(t, StepStaffAndDate, snap.Step)
				assert.Equal(t, CapacityFull, snap.Draft.Capacity.Status)
				assert.Equal(t, FullyBookedMessage(20), snap.Draft.Capacity.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StepTimeSelect, snap.Step)
		})
	}
}

func TestWizard_WarnsOncePerDate(t *testing.T) {
	tw := newTestWizard(t, Options{})
	tw.lister.fn = func(_ context.Context, _ int, date string) ([]domain.Appointment, error) {
		return appointments(date, 20, 0), nil
	}

	tw.dispatch(t, SelectService{ServiceID: 5})
	tw.dispatch(t, SelectDescription{Label: "Short"})

	tw.dispatch(t, SelectDate{Date: at(5, 0, 0, 0)})
	tw.waitCapacity(t)
	snap := tw.Snapshot()
	require.Len(t, snap.Notices, 1)
	assert.Equal(t, "Date fully booked", snap.Notices[0].Title)

	tw.dispatch(t, SelectDate{Date: at(5, 0, 0, 0)})
	tw.waitCapacity(t)
	snap = tw.Snapshot()
	assert.Empty(t, snap.Notices)
	assert.Equal(t, CapacityFull, snap.Draft.Capacity.Status)

	tw.dispatch(t, SelectDate{Date: at(6, 0, 0, 0)})
	tw.waitCapacity(t)
	assert.Len(t, tw.Snapshot().Notices, 1)
}

func TestWizard_StaleCheckDiscarded(t *testing.T) {
	tw := newTestWizard(t, Options{})
	release := make(chan struct{})
	tw.lister.fn = func(_ context.Context, _ int, date string) ([]domain.Appointment, error) {
		if date == "2026-03-05" {
			<-release
			return appointments(date, 25, 0), nil
		}
		return appointments(date, 3, 0), nil
	}

	tw.dispatch(t, SelectService{ServiceID: 5})
	tw.dispatch(t, SelectDescription{Label: "Long"})
	tw.dispatch(t, SelectDate{Date: at(5, 0, 0, 0)})
	tw.dispatch(t, SelectDate{Date: at(6, 0, 0, 0)})
	close(release)
	tw.waitCapacity(t)

	snap := tw.Snapshot()
	assert.Equal(t, "2026-03-06", snap.Draft.Capacity.Date)
	assert.Equal(t, CapacityAvailable, snap.Draft.Capacity.Status)
	assert.Empty(t, snap.Notices)
	assert.Empty(t, snap.Draft.LastWarnedDate)
}

func TestWizard_ListingFailureFailsOpen(t *testing.T) {
	tw := newTestWizard(t, Options{})
	tw.lister.fn = func(context.Context, int, string) ([]domain.Appointment, error) {
		return nil, errors.New("salonapi: unexpected status code 404")
	}

	tw.driveToCustomerInfo(t)

	conf, err := tw.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(101), conf.AppointmentID)
	assert.Equal(t, 1, tw.creator.calls)
}

func TestWizard_SubmitSuccess(t *testing.T) {
	tw := newTestWizard(t, Options{})
	tw.lister.fn = func(_ context.Context, _ int, date string) ([]domain.Appointment, error) {
		return appointments(date, 5, 2), nil
	}

	tw.driveToCustomerInfo(t)

	snap := tw.Snapshot()
	require.NotNil(t, snap.Price)
	assert.Equal(t, int64(160000), snap.Price.Total)
	assert.Equal(t, "UGX 160,000", snap.Price.Formatted)
	assert.Equal(t, "Lucy", snap.StaffName)

	conf, err := tw.Submit(context.Background())
	require.NoError(t, err)

	req := tw.creator.last
	require.NotNil(t, req)
	assert.Equal(t, "Amina N.", req.CustomerName)
	assert.Equal(t, "amina@example.com", req.CustomerEmail)
	assert.Equal(t, "+256700000001", req.CustomerPhone)
	assert.Equal(t, "Lucy", req.StaffName)
	assert.Equal(t, int64(1), req.ServiceID)
	assert.Equal(t, "Long-Small-Boho", req.ServiceDescription)
	assert.Equal(t, "2026-03-05", req.Date)
	assert.Equal(t, "10:00", req.Time)
	assert.Equal(t, domain.StatusPending, req.Status)
	assert.Equal(t, "first visit", req.Notes)
	assert.Equal(t, int64(160000), req.TotalPrice)
	assert.Equal(t, "UGX", req.Currency)

	assert.Equal(t, "Knotless Braids", conf.ServiceName)
	assert.Equal(t, "Long • Small • Boho", conf.Summary)
	assert.Equal(t, "UGX 160,000", conf.TotalFormatted)

	snap = tw.Snapshot()
	assert.Equal(t, StepConfirmed, snap.Step)
	require.NotNil(t, snap.Confirmation)
	require.NotEmpty(t, snap.Notices)
	assert.Equal(t, "Appointment booked", snap.Notices[len(snap.Notices)-1].Title)

	_, err = tw.Dispatch(Back{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	snap = tw.dispatch(t, Reset{})
	assert.Equal(t, StepServiceSelect, snap.Step)
	assert.Nil(t, snap.Confirmation)
	assert.Zero(t, snap.Draft.ServiceID)
	assert.Empty(t, snap.Draft.Customer.Name)
}

func TestWizard_SubmitRecheckBlocksRace(t *testing.T) {
	tw := newTestWizard(t, Options{})
	tw.lister.fn = func(_ context.Context, call int, date string) ([]domain.Appointment, error) {
		if call == 1 {
			return appointments(date, 19, 0), nil
		}
		return appointments(date, 20, 0), nil
	}

	tw.driveToCustomerInfo(t)

	_, err := tw.Submit(context.Background())
	assert.ErrorIs(t, err, ErrDateFullyBooked)
	assert.Equal(t, FullyBookedMessage(20), UserMessage(err))
	assert.Equal(t, 0, tw.creator.calls)
	assert.Equal(t, int32(2), tw.lister.calls.Load())

	snap := tw.Snapshot()
	assert.Equal(t, StepCustomerInfo, snap.Step)
	assert.Equal(t, CapacityFull, snap.Draft.Capacity.Status)
	assert.False(t, snap.Submitting)
}

func TestWizard_SubmitBackendRejection(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "backend message verbatim", err: &backendErr{msg: "Selected slot is no longer available"}, wantMsg: "Selected slot is no longer available"},
		{name: "fallback message", err: errors.New("dial tcp: connection refused"), wantMsg: "Unable to create appointment."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := newTestWizard(t, Options{})
			tw.creator.fn = func(context.Context, *domain.AppointmentRequest) (*domain.Appointment, error) {
				return nil, tt.err
			}

			tw.driveToCustomerInfo(t)

			_, err := tw.Submit(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCreateFailed)
			assert.Equal(t, tt.wantMsg, UserMessage(err))

			snap := tw.Snapshot()
			assert.Equal(t, StepCustomerInfo, snap.Step)
			assert.Equal(t, "Amina N.", snap.Draft.Customer.Name)
		})
	}
}

func TestWizard_SubmitValidation(t *testing.T) {
	tw := newTestWizard(t, Options{})
	tw.driveToCustomerInfo(t)

	tw.dispatch(t, UpdateCustomerInfo{Info: CustomerInfo{Name: "Amina", Email: "amina@example.com", Phone: "  "}})
	_, err := tw.Submit(context.Background())
	assert.ErrorIs(t, err, ErrCustomerInfoMissing)

	tw.dispatch(t, UpdateCustomerInfo{Info: CustomerInfo{Name: "Amina", Email: "not-an-email", Phone: "0700"}})
	_, err = tw.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.NotErrorIs(t, err, ErrCustomerInfoMissing)
	assert.Equal(t, "Please enter a valid email address.", UserMessage(err))

	assert.Equal(t, 0, tw.creator.calls)
}

func TestWizard_SubmitRequiresCustomerStep(t *testing.T) {
	tw := newTestWizard(t, Options{})
	tw.dispatch(t, SelectService{ServiceID: 1})

	_, err := tw.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestWizard_TimeSlotsToday(t *testing.T) {
	tw := newTestWizard(t, Options{})
	tw.dispatch(t, SelectService{ServiceID: 6})
	tw.dispatch(t, SelectDescription{Label: "Medium"})
	tw.dispatch(t, SelectDate{Date: at(4, 0, 0, 0)})
	tw.waitCapacity(t)

	slots := tw.TimeSlots()
	require.Len(t, slots, 23)
	blocked := 0
	for _, s := range slots {
		if s.Blocked {
			blocked++
		}
	}
	// 08:00 .. 10:00 при текущем времени 10:00:30
	assert.Equal(t, 5, blocked)
	assert.False(t, slots[5].Blocked)
	assert.Equal(t, "10:30", slots[5].Time.String())

	admin := newTestWizard(t, Options{Admin: true})
	admin.dispatch(t, SelectService{ServiceID: 6})
	admin.dispatch(t, SelectDescription{Label: "Medium"})
	admin.dispatch(t, SelectDate{Date: at(4, 0, 0, 0)})
	for _, s := range admin.TimeSlots() {
		assert.False(t, s.Blocked)
	}
}

func TestWizard_ElapsedTimeClearedOnSnapshot(t *testing.T) {
	tw := newTestWizard(t, Options{})
	tw.dispatch(t, SelectService{ServiceID: 6})
	tw.dispatch(t, SelectDescription{Label: "Long"})
	tw.dispatch(t, SelectDate{Date: at(4, 0, 0, 0)})
	tw.waitCapacity(t)
	tw.dispatch(t, Next{})
	tw.dispatch(t, SelectTime{Time: "11:00"})

	tw.clock.Set(at(4, 11, 0, 5))
	snap := tw.Snapshot()
	assert.True(t, snap.Draft.Time.IsZero())
	require.Len(t, snap.Notices, 1)
	assert.Equal(t, "Time slot unavailable", snap.Notices[0].Title)
}

func TestWizard_CloseCancelsCheck(t *testing.T) {
	tw := newTestWizard(t, Options{})
	started := make(chan struct{})
	tw.lister.fn = func(ctx context.Context, _ int, _ string) ([]domain.Appointment, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}

	tw.dispatch(t, SelectService{ServiceID: 5})
	tw.dispatch(t, SelectDescription{Label: "Long"})
	tw.dispatch(t, SelectDate{Date: at(5, 0, 0, 0)})
	<-started

	tw.Close()
	tw.waitCapacity(t)

	_, err := tw.Dispatch(Next{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StepServiceSelect, tw.Snapshot().Step)
}

func TestWizard_CloseDuringSubmit(t *testing.T) {
	tw := newTestWizard(t, Options{})
	tw.driveToCustomerInfo(t)

	tw.creator.fn = func(context.Context, *domain.AppointmentRequest) (*domain.Appointment, error) {
		tw.Close()
		return &domain.Appointment{ID: 202, Status: domain.StatusPending}, nil
	}

	conf, err := tw.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(202), conf.AppointmentID)

	snap := tw.Snapshot()
	assert.Nil(t, snap.Confirmation)
	assert.Empty(t, snap.Notices)
	assert.NotEqual(t, StepConfirmed, snap.Step)
}

func TestWizard_ConcurrentDateSelectionAndWait(t *testing.T) {
	tw := newTestWizard(t, Options{})
	tw.lister.fn = func(_ context.Context, _ int, date string) ([]domain.Appointment, error) {
		return appointments(date, 3, 1), nil
	}

	tw.dispatch(t, SelectService{ServiceID: 5})
	tw.dispatch(t, SelectDescription{Label: "Long"})

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(2)
		day := 5 + i%2
		go func() {
			defer wg.Done()
			_, err := tw.Dispatch(SelectDate{Date: at(day, 0, 0, 0)})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			assert.NoError(t, tw.WaitCapacity(ctx))
			_ = tw.Snapshot()
		}()
	}
	wg.Wait()
	tw.waitCapacity(t)

	snap := tw.Snapshot()
	assert.Equal(t, CapacityAvailable, snap.Draft.Capacity.Status)
	assert.Equal(t, snap.Draft.DateString(), snap.Draft.Capacity.Date)
	assert.Empty(t, snap.Notices)
}

func TestWizard_CategoryOptions(t *testing.T) {
	tw := newTestWizard(t, Options{Category: "makeup"})
	snap := tw.Snapshot()
	require.Len(t, snap.Options, 2)
	assert.Equal(t, "Soft Glam", snap.Options[0].Name)

	_, err := tw.Dispatch(SelectService{ServiceID: 1})
	assert.ErrorIs(t, err, ErrUnknownService)
}
