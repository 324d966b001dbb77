package session

import "errors"

var (
	// ErrSessionNotFound сессия не существует или истекла
	ErrSessionNotFound = errors.New("session: not found")

	// ErrInvalidSessionID идентификатор не является UUID
	ErrInvalidSessionID = errors.New("session: invalid session id")

	// ErrStoreClosed хранилище остановлено
	ErrStoreClosed = errors.New("session: store closed")
)
