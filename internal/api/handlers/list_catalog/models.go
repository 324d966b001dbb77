package list_catalog

import "github.com/m04kA/SMC-SalonBooking/internal/api/handlers"

// CatalogResponse HTTP response model
type CatalogResponse struct {
	Category string                           `json:"category,omitempty"`
	Options  []handlers.ServiceOptionResponse `json:"options"`
	Total    int                              `json:"total"`
}
