package create_quote

import createQuote "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_quote"

// CreateQuoteRequest HTTP request model
type CreateQuoteRequest struct {
	ServiceID   int64             `json:"serviceId" validate:"required,gt=0"`
	Description string            `json:"description,omitempty"`
	Variants    map[string]string `json:"variants,omitempty"`
}

type ModifierResponse struct {
	Category string `json:"category,omitempty"`
	Label    string `json:"label"`
	Key      string `json:"key"`
	Tier     string `json:"tier"`
	Amount   int64  `json:"amount"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	ServiceID   int64              `json:"serviceId"`
	ServiceName string             `json:"serviceName"`
	Description string             `json:"description"`
	BasePrice   int64              `json:"basePrice"`
	Modifiers   []ModifierResponse `json:"modifiers"`
	Total       int64              `json:"total"`
	Formatted   string             `json:"formatted"`
	Currency    string             `json:"currency"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateQuoteRequest) ToUseCaseRequest() *createQuote.Request {
	return &createQuote.Request{
		ServiceID:   r.ServiceID,
		Description: r.Description,
		Variants:    r.Variants,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createQuote.Response) *QuoteResponse {
	out := &QuoteResponse{
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,
		Description: resp.Description,
		BasePrice:   resp.BasePrice,
		Modifiers:   make([]ModifierResponse, 0, len(resp.Modifiers)),
		Total:       resp.Total,
		Formatted:   resp.Formatted,
		Currency:    resp.Currency,
	}
	for _, m := range resp.Modifiers {
		out.Modifiers = append(out.Modifiers, ModifierResponse{
			Category: m.Category,
			Label:    m.Label,
			Key:      m.Key,
			Tier:     string(m.Tier),
			Amount:   m.Amount,
		})
	}
	return out
}
