package catalog

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("catalog.repository: transaction error")

	// ErrInvalidVariants возвращается, когда варианты услуги в БД не разбираются
	ErrInvalidVariants = errors.New("catalog.repository: invalid variant data")
)
