package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга отсутствует в каталоге
	ErrServiceNotFound = errors.New("catalog: service option not found")

	// ErrUnknownStaff возвращается для неизвестного мастера
	ErrUnknownStaff = errors.New("catalog: unknown staff member")

	// ErrInvalidCatalog возвращается, когда данные каталога нарушают инварианты
	ErrInvalidCatalog = errors.New("catalog: invalid catalog data")
)
