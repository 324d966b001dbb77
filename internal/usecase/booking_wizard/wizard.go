package booking_wizard

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/pricing"
)

// Результаты отправки для метрик
const (
	submissionCreated     = "created"
	submissionRejected    = "rejected"
	submissionFullyBooked = "fully_booked"
	submissionFailed      = "failed"
)

// Options параметры открытия мастера
type Options struct {
	Category string // алиас или название категории, пустая строка - весь каталог
	Admin    bool   // отключает блокировку прошедших слотов
}

// Factory собирает мастера с общими зависимостями
type Factory struct {
	catalog      Catalog
	pricer       PriceEngine
	lister       AppointmentLister
	creator      AppointmentCreator
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
}

// NewFactory создает фабрику мастеров записи
func NewFactory(
	catalog Catalog,
	pricer PriceEngine,
	lister AppointmentLister,
	creator AppointmentCreator,
	policy domain.BookingPolicy,
	logger Logger,
) *Factory {
	return &Factory{
		catalog:      catalog,
		pricer:       pricer,
		lister:       lister,
		creator:      creator,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		metrics:      noopMetrics{},
		logger:       logger,
	}
}

// WithMetrics подключает метрики
func (f *Factory) WithMetrics(m MetricsRecorder) *Factory {
	f.metrics = m
	return f
}

// WithTimeProvider подменяет часы (для тестов)
func (f *Factory) WithTimeProvider(tp TimeProvider) *Factory {
	f.timeProvider = tp
	return f
}

// Policy правила записи, с которыми создаются мастера
func (f *Factory) Policy() domain.BookingPolicy {
	return f.policy
}

// New открывает новый мастер с пустым черновиком
func (f *Factory) New(opts Options) *Wizard {
	return &Wizard{
		catalog:      f.catalog,
		pricer:       f.pricer,
		oracle:       NewCapacityOracle(f.lister),
		creator:      f.creator,
		policy:       f.policy,
		timeProvider: f.timeProvider,
		metrics:      f.metrics,
		logger:       f.logger,
		opts:         opts,
		draft:        NewDraft(),
	}
}

// Wizard мастер записи одного клиента; черновик принадлежит только ему
type Wizard struct {
	catalog      Catalog
	pricer       PriceEngine
	oracle       *CapacityOracle
	creator      AppointmentCreator
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
	opts         Options

	mu           sync.Mutex
	draft        Draft
	notices      []Notice
	confirmation *Confirmation
	submitting   bool
	closed       bool
	cancelCheck  context.CancelFunc
	checkDone    chan struct{}
}

func (w *Wizard) env() Env {
	return Env{
		Catalog:  w.catalog,
		Policy:   w.policy,
		Now:      w.timeProvider.Now(),
		Admin:    w.opts.Admin,
		Category: w.opts.Category,
	}
}

// applyLocked применяет событие и запускает проверку даты, если она нужна; вызывается под w.mu
func (w *Wizard) applyLocked(ev Event) error {
	prev := w.draft.Capacity.Token

	next, notices, err := Apply(w.draft, ev, w.env())
	if err != nil {
		return err
	}
	w.draft = next
	w.notices = append(w.notices, notices...)

	if _, ok := ev.(Reset); ok {
		w.confirmation = nil
		w.stopCheckLocked()
	}
	if next.Capacity.Token != prev && next.Capacity.Status == CapacityChecking {
		w.startCapacityCheck(next.Capacity)
	}
	return nil
}

func (w *Wizard) stopCheckLocked() {
	if w.cancelCheck != nil {
		w.cancelCheck()
		w.cancelCheck = nil
	}
}

// Dispatch применяет событие пользователя
func (w *Wizard) Dispatch(ev Event) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return w.snapshotLocked(), fmt.Errorf("%w: wizard is closed", ErrInvalidTransition)
	}
	if w.submitting {
		return w.snapshotLocked(), ErrSubmissionInProgress
	}

	if err := w.applyLocked(ev); err != nil {
		w.logger.Warn("BookingWizard: event %T rejected on step %s: %v", ev, w.draft.Step, err)
		return w.snapshotLocked(), err
	}
	return w.snapshotLocked(), nil
}

// Snapshot текущее состояние; накопленные уведомления выдаются один раз
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.closed && !w.submitting {
		// прошедший слот сбрасывается и без действий пользователя
		_ = w.applyLocked(Tick{})
	}
	return w.snapshotLocked()
}

func (w *Wizard) snapshotLocked() Snapshot {
	env := w.env()
	snap := Snapshot{
		Step:         w.draft.Step,
		Draft:        w.draft.clone(),
		Admin:        w.opts.Admin,
		Options:      w.catalog.ResolveOptions(w.opts.Category),
		Notices:      w.notices,
		Confirmation: w.confirmation,
		Submitting:   w.submitting,
	}
	w.notices = nil

	if name, err := w.catalog.StaffName(w.draft.StaffID); err == nil {
		snap.StaffName = name
	}

	option, err := findOption(env, w.draft.ServiceID)
	if err != nil {
		return snap
	}
	snap.Option = &option
	if w.draft.SelectionComplete(option) {
		total := w.pricer.Compute(option.BasePrice, w.draft.Selection(option), option.ID)
		snap.Price = &Price{
			Total:     total,
			Formatted: pricing.FormatPrice(total, w.policy.Currency),
			Currency:  w.policy.Currency,
		}
	}
	return snap
}

// Draft копия текущего черновика; уведомления не расходуются
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.clone()
}

// TimeSlots сетка слотов для выбранной даты с отметкой прошедших
func (w *Wizard) TimeSlots() []domain.TimeSlot {
	w.mu.Lock()
	defer w.mu.Unlock()

	env := w.env()
	grid := w.policy.TimeSlots()
	slots := make([]domain.TimeSlot, 0, len(grid))
	for _, t := range grid {
		slots = append(slots, domain.TimeSlot{
			Time:    t,
			Blocked: IsTimeBlocked(w.draft.Date, t, env),
		})
	}
	return slots
}

// Submit отправляет запись: локальные проверки, повторная проверка даты и создание на бэкенде.
// При отказе мастер остается на шаге контактных данных.
func (w *Wizard) Submit(ctx context.Context) (*Confirmation, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil, fmt.Errorf("%w: wizard is closed", ErrInvalidTransition)
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}

	env := w.env()
	draft := w.draft.clone()
	w.logger.Info("BookingWizard.Submit: service=%d, date=%s, time=%s, staff=%q",
		draft.ServiceID, draft.DateString(), draft.Time, draft.StaffID)

	// 1. Локальные проверки
	option, err := validateSubmission(&draft, env)
	if err != nil {
		w.mu.Unlock()
		w.logger.Warn("BookingWizard.Submit: validation failed: %v", err)
		w.metrics.ObserveSubmission(submissionRejected)
		return nil, err
	}

	// 2. Собираем запрос, пока черновик под блокировкой
	staffName, _ := w.catalog.StaffName(draft.StaffID)
	customer := draft.Customer.normalized()
	total := w.pricer.Compute(option.BasePrice, draft.Selection(option), option.ID)
	req := &domain.AppointmentRequest{
		CustomerName:       customer.Name,
		CustomerEmail:      customer.Email,
		CustomerPhone:      customer.Phone,
		StaffName:          staffName,
		ServiceID:          option.ID,
		ServiceDescription: draft.ServiceDescription(option),
		Date:               draft.DateString(),
		Time:               draft.Time.String(),
		Status:             domain.StatusPending,
		Notes:              customer.Notes,
		TotalPrice:         total,
		Currency:           w.policy.Currency,
	}
	w.submitting = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.submitting = false
		w.mu.Unlock()
	}()

	// 3. Повторная проверка заполненности по свежим данным
	count, err := w.oracle.Count(ctx, req.Date)
	switch {
	case err != nil:
		w.logger.Warn("BookingWizard.Submit: capacity re-check for date=%s failed, relying on backend: %v", req.Date, err)
		w.metrics.ObserveCapacityCheck(capacityResultFailedOpen)
	case count >= w.policy.DailyCapacity:
		w.logger.Warn("BookingWizard.Submit: date=%s became fully booked, confirmed=%d", req.Date, count)
		w.metrics.ObserveCapacityCheck(capacityResultFull)
		w.metrics.ObserveSubmission(submissionFullyBooked)
		w.markFullyBooked(draft.Capacity.Token, req.Date, count)
		return nil, fullyBooked(w.policy.DailyCapacity)
	default:
		w.metrics.ObserveCapacityCheck(capacityResultAvailable)
	}

	// 4. Создание записи
	created, err := w.creator.CreateAppointment(ctx, req)
	if err != nil {
		msg := backendMessage(err)
		w.logger.Error("BookingWizard.Submit: failed to create appointment for date=%s time=%s: %v", req.Date, req.Time, err)
		w.metrics.ObserveSubmission(submissionFailed)
		w.pushNotice(Notice{Level: NoticeWarning, Title: "Booking failed", Message: msg})
		return nil, &CreateFailedError{Message: msg, Cause: err}
	}

	confirmation := &Confirmation{
		ServiceID:      option.ID,
		ServiceName:    option.Name,
		Summary:        draft.VariantSummary(option),
		Description:    req.ServiceDescription,
		Date:           req.Date,
		Time:           draft.Time,
		StaffName:      staffName,
		Total:          total,
		TotalFormatted: pricing.FormatPrice(total, w.policy.Currency),
		Currency:       w.policy.Currency,
		CustomerEmail:  req.CustomerEmail,
	}
	if created != nil {
		confirmation.AppointmentID = created.ID
	}

	// 5. Переход на экран подтверждения
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.metrics.ObserveSubmission(submissionCreated)
		w.logger.Info("BookingWizard.Submit: wizard closed while appointment id=%d was being created for date=%s time=%s",
			confirmation.AppointmentID, req.Date, req.Time)
		return confirmation, nil
	}
	if err := w.applyLocked(SubmissionSucceeded{}); err != nil {
		w.logger.Error("BookingWizard.Submit: failed to confirm draft: %v", err)
	}
	w.confirmation = confirmation
	w.notices = append(w.notices, Notice{
		Level:   NoticeInfo,
		Title:   "Appointment booked",
		Message: "Your appointment request has been submitted.",
	})
	w.mu.Unlock()

	w.metrics.ObserveSubmission(submissionCreated)
	w.logger.Info("BookingWizard.Submit: appointment id=%d created for date=%s time=%s, total=%d",
		confirmation.AppointmentID, req.Date, req.Time, total)

	return confirmation, nil
}

// markFullyBooked отражает результат повторной проверки в черновике
func (w *Wizard) markFullyBooked(token uint64, date string, count int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_ = w.applyLocked(CapacityResolved{Token: token, Date: date, Count: count})
}

func (w *Wizard) pushNotice(n Notice) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.notices = append(w.notices, n)
}

// Close сбрасывает черновик и отменяет незавершенную проверку даты
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.stopCheckLocked()
	w.draft = resetDraft(w.draft)
	w.confirmation = nil
	w.notices = nil
	w.closed = true
}
