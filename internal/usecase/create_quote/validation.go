package create_quote

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Description != "" && len(req.Variants) > 0 {
		return fmt.Errorf("%w: description and variants are mutually exclusive", ErrInvalidInput)
	}
	return nil
}

// buildSelection проверяет выбор по таксономии услуги и возвращает его вместе с описанием
func buildSelection(option domain.ServiceOption, req *Request) (domain.Selection, string, error) {
	switch v := option.Variants.(type) {
	case domain.CategorizedVariants:
		sel := domain.CategorySelection(req.Variants).Clone()
		for category, label := range sel {
			c, ok := v.Category(category)
			if !ok || !c.Has(label) {
				return nil, "", fmt.Errorf("%w: %s=%q", ErrInvalidSelection, category, label)
			}
		}
		if !sel.IsCompleteFor(v) {
			return nil, "", fmt.Errorf("%w: %d of %d categories chosen", ErrIncompleteSelection, len(sel), len(v.Categories))
		}
		return sel, strings.Join(sel.Labels(v), domain.DescriptionSeparator), nil

	case domain.SimpleVariants:
		if len(req.Variants) > 0 {
			return nil, "", fmt.Errorf("%w: service id=%d has no variant categories", ErrInvalidSelection, option.ID)
		}
		if req.Description == "" {
			return nil, "", fmt.Errorf("%w: description is required", ErrIncompleteSelection)
		}
		if !v.Has(req.Description) {
			return nil, "", fmt.Errorf("%w: %q", ErrInvalidSelection, req.Description)
		}
		return domain.DescriptionSelection{Label: req.Description}, req.Description, nil
	}

	return nil, "", fmt.Errorf("%w: service id=%d has no variants", ErrInvalidSelection, option.ID)
}
