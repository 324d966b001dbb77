package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry[S Session] struct {
	session  S
	lastSeen time.Time
}

// Store хранилище сессий в памяти процесса.
// Сессия истекает после ttl без обращений; истекшие сессии закрываются.
type Store[S Session] struct {
	mu     sync.Mutex
	items  map[string]*entry[S]
	ttl    time.Duration
	closed bool

	clock   TimeProvider
	metrics MetricsRecorder
	logger  Logger

	stopCh   chan struct{}
	stopOnce sync.Once
	done     sync.WaitGroup
}

// NewStore создает хранилище
func NewStore[S Session](ttl time.Duration, logger Logger) *Store[S] {
	return &Store[S]{
		items:   make(map[string]*entry[S]),
		ttl:     ttl,
		clock:   realTimeProvider{},
		metrics: noopMetrics{},
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

// WithMetrics подключает учет открытых сессий
func (s *Store[S]) WithMetrics(m MetricsRecorder) *Store[S] {
	s.metrics = m
	return s
}

// WithTimeProvider подменяет источник времени
func (s *Store[S]) WithTimeProvider(tp TimeProvider) *Store[S] {
	s.clock = tp
	return s
}

// Create регистрирует сессию и возвращает ее идентификатор
func (s *Store[S]) Create(sess S) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrStoreClosed
	}

	id := uuid.NewString()
	s.items[id] = &entry[S]{session: sess, lastSeen: s.clock.Now()}
	s.metrics.SetActiveSessions(len(s.items))
	return id, nil
}

// Get возвращает сессию и продлевает ее жизнь
func (s *Store[S]) Get(id string) (S, error) {
	var zero S

	if _, err := uuid.Parse(id); err != nil {
		return zero, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	s.mu.Lock()
	e, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return zero, ErrSessionNotFound
	}

	now := s.clock.Now()
	if s.expired(e, now) {
		delete(s.items, id)
		s.metrics.SetActiveSessions(len(s.items))
		s.mu.Unlock()
		e.session.Close()
		return zero, ErrSessionNotFound
	}

	e.lastSeen = now
	s.mu.Unlock()
	return e.session, nil
}

// Delete закрывает и удаляет сессию
func (s *Store[S]) Delete(id string) error {
	s.mu.Lock()
	e, ok := s.items[id]
	if ok {
		delete(s.items, id)
		s.metrics.SetActiveSessions(len(s.items))
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	e.session.Close()
	return nil
}

// Len количество сессий в хранилище
func (s *Store[S]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep удаляет истекшие сессии и возвращает их количество
func (s *Store[S]) Sweep() int {
	now := s.clock.Now()

	s.mu.Lock()
	var stale []S
	for id, e := range s.items {
		if s.expired(e, now) {
			stale = append(stale, e.session)
			delete(s.items, id)
		}
	}
	s.metrics.SetActiveSessions(len(s.items))
	s.mu.Unlock()

	for _, sess := range stale {
		sess.Close()
	}
	return len(stale)
}

// StartJanitor периодически чистит истекшие сессии до вызова Stop
func (s *Store[S]) StartJanitor(interval time.Duration) {
	s.done.Add(1)
	go func() {
		defer s.done.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					s.logger.Info("Expired wizard sessions removed: count=%d", n)
				}
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop останавливает уборщик и закрывает все сессии
func (s *Store[S]) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.done.Wait()

		s.mu.Lock()
		s.closed = true
		items := s.items
		s.items = make(map[string]*entry[S])
		s.metrics.SetActiveSessions(0)
		s.mu.Unlock()

		for _, e := range items {
			e.session.Close()
		}
	})
}

func (s *Store[S]) expired(e *entry[S], now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}
