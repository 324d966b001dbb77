package booking_wizard

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/pricing"
)

var eat = time.FixedZone("EAT", 3*60*60)

// 2026-03-04 - среда
func at(day, hour, minute, second int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, second, 0, eat)
}

func testPolicy() domain.BookingPolicy {
	p := domain.DefaultBookingPolicy()
	p.Location = eat
	return p
}

func testEnv(now time.Time) Env {
	return Env{
		Catalog: catalog.NewDefaultResolver(),
		Policy:  testPolicy(),
		Now:     now,
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fakeLister struct {
	calls atomic.Int32
	fn    func(ctx context.Context, call int, date string) ([]domain.Appointment, error)
}

func (f *fakeLister) ListAppointmentsByDate(ctx context.Context, date string) ([]domain.Appointment, error) {
	call := int(f.calls.Add(1))
	if f.fn == nil {
		return nil, nil
	}
	return f.fn(ctx, call, date)
}

type fakeCreator struct {
	mu    sync.Mutex
	calls int
	last  *domain.AppointmentRequest
	fn    func(ctx context.Context, req *domain.AppointmentRequest) (*domain.Appointment, error)
}

func (f *fakeCreator) CreateAppointment(ctx context.Context, req *domain.AppointmentRequest) (*domain.Appointment, error) {
	f.mu.Lock()
	f.calls++
	copied := *req
	f.last = &copied
	f.mu.Unlock()

	if f.fn == nil {
		return &domain.Appointment{ID: 101, Status: domain.StatusPending}, nil
	}
	return f.fn(ctx, req)
}

type backendErr struct {
	msg string
}

func (e *backendErr) Error() string          { return "salonapi: request rejected: " + e.msg }
func (e *backendErr) BackendMessage() string { return e.msg }

// appointments возвращает confirmed подтвержденных и other записей с другими статусами
func appointments(date string, confirmed, other int) []domain.Appointment {
	out := make([]domain.Appointment, 0, confirmed+other)
	for i := 0; i < confirmed; i++ {
		out = append(out, domain.Appointment{ID: int64(i + 1), Date: date, Status: domain.StatusConfirmed})
	}
	statuses := []domain.AppointmentStatus{domain.StatusPending, domain.StatusCancelled, domain.StatusCompleted}
	for i := 0; i < other; i++ {
		out = append(out, domain.Appointment{ID: int64(confirmed + i + 1), Date: date, Status: statuses[i%len(statuses)]})
	}
	return out
}

type testWizard struct {
	*Wizard
	lister  *fakeLister
	creator *fakeCreator
	clock   *fixedClock
}

func newTestWizard(t *testing.T, opts Options) *testWizard {
	t.Helper()

	lister := &fakeLister{}
	creator := &fakeCreator{}
	clock := &fixedClock{now: at(4, 10, 0, 30)}

	factory := NewFactory(
		catalog.NewDefaultResolver(),
		pricing.NewEngine(pricing.DefaultOverrides()),
		lister,
		creator,
		testPolicy(),
		nopLogger{},
	).WithTimeProvider(clock)

	w := factory.New(opts)
	t.Cleanup(w.Close)

	return &testWizard{Wizard: w, lister: lister, creator: creator, clock: clock}
}

func (tw *testWizard) dispatch(t *testing.T, ev Event) Snapshot {
	t.Helper()
	snap, err := tw.Dispatch(ev)
	require.NoError(t, err, "event %T", ev)
	return snap
}

func (tw *testWizard) waitCapacity(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tw.WaitCapacity(ctx))
}

// driveToCustomerInfo Knotless Braids {Long, Small, Boho}, Lucy, 2026-03-05 10:00
func (tw *testWizard) driveToCustomerInfo(t *testing.T) {
	t.Helper()

	tw.dispatch(t, SelectService{ServiceID: 1})
	tw.dispatch(t, SelectVariant{Category: "Length", Label: "Long"})
	tw.dispatch(t, SelectVariant{Category: "Spacing", Label: "Small"})
	tw.dispatch(t, SelectVariant{Category: "Variation", Label: "Boho"})
	tw.dispatch(t, Next{})
	tw.dispatch(t, SelectStaff{StaffID: "lucy"})
	tw.dispatch(t, SelectDate{Date: at(5, 0, 0, 0)})
	tw.waitCapacity(t)
	tw.dispatch(t, Next{})
	tw.dispatch(t, SelectTime{Time: "10:00"})
	tw.dispatch(t, Next{})
	snap := tw.dispatch(t, UpdateCustomerInfo{Info: CustomerInfo{
		Name:  "Amina N.",
		Email: "amina@example.com",
		Phone: "+256700000001",
		Notes: "first visit",
	}})
	require.Equal(t, StepCustomerInfo, snap.Step)
}
