package create_quote

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = errors.New("create_quote: service not found")

	// ErrIncompleteSelection возвращается, когда выбрано не по варианту в каждой категории
	ErrIncompleteSelection = errors.New("create_quote: incomplete variant selection")

	// ErrInvalidSelection возвращается, когда вариант не относится к услуге
	ErrInvalidSelection = errors.New("create_quote: invalid variant selection")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_quote: invalid input data")
)
