package create_quote

import createQuote "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_quote"

type CreateQuoteUseCase interface {
	Execute(req *createQuote.Request) (*createQuote.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
