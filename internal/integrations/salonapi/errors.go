package salonapi

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("salonapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от бэкенда
	ErrInvalidResponse = errors.New("salonapi client: invalid response")
)

// APIError бэкенд ответил статусом, отличным от 2xx
type APIError struct {
	Status  int
	Message string
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("salonapi client: status %d: %s", e.Status, e.Message)
}

// BackendMessage сообщение бэкенда для показа пользователю
func (e *APIError) BackendMessage() string {
	return e.Message
}
