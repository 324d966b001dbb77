package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidServiceOption is returned when a service option violates the catalog invariants
var ErrInvalidServiceOption = errors.New("domain: invalid service option")

// Category is a salon service group
type Category string

const (
	CategoryHair   Category = "Hair Styling & Braiding"
	CategoryMakeup Category = "Makeup"
	CategoryNails  Category = "Nails"
)

// Categories lists the closed set of salon categories in display order
var Categories = []Category{CategoryHair, CategoryMakeup, CategoryNails}

// VariantKind tags the shape of a service option's variant taxonomy
type VariantKind string

const (
	VariantSimple      VariantKind = "simple"
	VariantCategorized VariantKind = "categorized"
)

// Variants is either SimpleVariants or CategorizedVariants
type Variants interface {
	Kind() VariantKind
	isVariants()
}

// SimpleVariants is a flat ordered list of description labels
type SimpleVariants struct {
	Descriptions []string
}

func (SimpleVariants) Kind() VariantKind { return VariantSimple }
func (SimpleVariants) isVariants()       {}

// Has returns true if label is one of the descriptions
func (v SimpleVariants) Has(label string) bool {
	for _, d := range v.Descriptions {
		if d == label {
			return true
		}
	}
	return false
}

// VariantCategory is one choice dimension (e.g. Length) with its ordered options
type VariantCategory struct {
	Name    string
	Options []string
}

// Has returns true if label is one of the category options
func (c VariantCategory) Has(label string) bool {
	for _, o := range c.Options {
		if o == label {
			return true
		}
	}
	return false
}

// CategorizedVariants is an ordered set of choice dimensions
type CategorizedVariants struct {
	Categories []VariantCategory
}

func (CategorizedVariants) Kind() VariantKind { return VariantCategorized }
func (CategorizedVariants) isVariants()       {}

// Category looks up a dimension by name
func (v CategorizedVariants) Category(name string) (VariantCategory, bool) {
	for _, c := range v.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return VariantCategory{}, false
}

// ServiceOption represents a bookable offering
type ServiceOption struct {
	ID            int64
	Category      Category
	Name          string
	DurationLabel string
	BasePrice     int64 // whole currency units
	Variants      Variants
}

// Validate checks that the option carries a non-empty variant taxonomy
func (o *ServiceOption) Validate() error {
	if o.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidServiceOption, o.ID)
	}
	if o.Name == "" {
		return fmt.Errorf("%w: id=%d has no name", ErrInvalidServiceOption, o.ID)
	}
	if o.BasePrice < 0 {
		return fmt.Errorf("%w: id=%d has negative base price", ErrInvalidServiceOption, o.ID)
	}

	switch v := o.Variants.(type) {
	case SimpleVariants:
		if len(v.Descriptions) == 0 {
			return fmt.Errorf("%w: id=%d has no descriptions", ErrInvalidServiceOption, o.ID)
		}
	case CategorizedVariants:
		if len(v.Categories) == 0 {
			return fmt.Errorf("%w: id=%d has no variant categories", ErrInvalidServiceOption, o.ID)
		}
		seen := make(map[string]struct{}, len(v.Categories))
		for _, c := range v.Categories {
			if _, dup := seen[c.Name]; dup {
				return fmt.Errorf("%w: id=%d repeats category %q", ErrInvalidServiceOption, o.ID, c.Name)
			}
			seen[c.Name] = struct{}{}
			if len(c.Options) == 0 {
				return fmt.Errorf("%w: id=%d category %q has no options", ErrInvalidServiceOption, o.ID, c.Name)
			}
		}
	default:
		return fmt.Errorf("%w: id=%d has no variants", ErrInvalidServiceOption, o.ID)
	}

	return nil
}

// StaffMember is a stylist the customer may prefer
type StaffMember struct {
	ID   string
	Name string
}

// PriceOverride is one row of the override configuration.
// ServiceID nil means the global label map.
type PriceOverride struct {
	ServiceID *int64
	Key       string
	Amount    int64
}

// MenuItem is a pricing-menu entry served by the salon backend
type MenuItem struct {
	ID              int64
	Category        string
	Name            string
	Currency        string
	PriceCents      int64
	DurationMinutes int
}
