package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// variantCategoryRow элемент колонки variant_categories (jsonb, упорядоченный массив)
type variantCategoryRow struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// decodeVariants собирает таксономию: непустой variant_categories означает режим категорий
func decodeVariants(descriptions []string, rawCategories []byte) (domain.Variants, error) {
	if len(rawCategories) > 0 && string(rawCategories) != "null" {
		var rows []variantCategoryRow
		if err := json.Unmarshal(rawCategories, &rows); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidVariants, err)
		}
		if len(rows) > 0 {
			categories := make([]domain.VariantCategory, 0, len(rows))
			for _, r := range rows {
				categories = append(categories, domain.VariantCategory{Name: r.Name, Options: r.Options})
			}
			return domain.CategorizedVariants{Categories: categories}, nil
		}
	}
	return domain.SimpleVariants{Descriptions: descriptions}, nil
}

// encodeVariants раскладывает таксономию по колонкам descriptions и variant_categories
func encodeVariants(v domain.Variants) ([]string, []byte, error) {
	switch variants := v.(type) {
	case domain.SimpleVariants:
		return variants.Descriptions, nil, nil
	case domain.CategorizedVariants:
		rows := make([]variantCategoryRow, 0, len(variants.Categories))
		for _, c := range variants.Categories {
			rows = append(rows, variantCategoryRow{Name: c.Name, Options: c.Options})
		}
		raw, err := json.Marshal(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidVariants, err)
		}
		return []string{}, raw, nil
	}
	return nil, nil, fmt.Errorf("%w: unsupported variants %T", ErrInvalidVariants, v)
}
