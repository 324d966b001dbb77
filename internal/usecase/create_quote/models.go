package create_quote

import "github.com/m04kA/SMC-SalonBooking/internal/service/pricing"

// Request запрос расчета цены: Description для простых услуг, Variants для услуг с категориями
type Request struct {
	ServiceID   int64
	Description string
	Variants    map[string]string
}

// Response рассчитанная цена
type Response struct {
	ServiceID   int64
	ServiceName string
	Description string // как будет отправлено на бэкенд
	BasePrice   int64
	Modifiers   []pricing.Modifier
	Total       int64
	Formatted   string
	Currency    string
}
