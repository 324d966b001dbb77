package list_menu_items

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

type MenuItemResponse struct {
	ID              int64  `json:"id"`
	Category        string `json:"category"`
	Name            string `json:"name"`
	Currency        string `json:"currency"`
	PriceCents      int64  `json:"priceCents"`
	DurationMinutes int    `json:"durationMinutes"`
}

// MenuItemsResponse HTTP response model
type MenuItemsResponse struct {
	Items []MenuItemResponse `json:"items"`
	Total int                `json:"total"`
}

func FromDomain(items []domain.MenuItem) *MenuItemsResponse {
	resp := &MenuItemsResponse{Items: make([]MenuItemResponse, 0, len(items)), Total: len(items)}
	for _, it := range items {
		resp.Items = append(resp.Items, MenuItemResponse{
			ID:              it.ID,
			Category:        it.Category,
			Name:            it.Name,
			Currency:        it.Currency,
			PriceCents:      it.PriceCents,
			DurationMinutes: it.DurationMinutes,
		})
	}
	return resp
}
