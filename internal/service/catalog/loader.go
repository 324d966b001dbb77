package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Store хранилище каталога
type Store interface {
	ListServiceOptions(ctx context.Context) ([]domain.ServiceOption, error)
	ListPriceOverrides(ctx context.Context) ([]domain.PriceOverride, error)
	ListStaff(ctx context.Context) ([]domain.StaffMember, error)
}

// Load читает каталог из хранилища один раз при старте.
// Пустой список мастеров заменяется статическим.
func Load(ctx context.Context, store Store) (*Resolver, []domain.PriceOverride, error) {
	options, err := store.ListServiceOptions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load service options: %w", err)
	}
	if len(options) == 0 {
		return nil, nil, fmt.Errorf("%w: no service options in store", ErrInvalidCatalog)
	}

	overrides, err := store.ListPriceOverrides(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load price overrides: %w", err)
	}

	staff, err := store.ListStaff(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load staff: %w", err)
	}
	if len(staff) == 0 {
		staff = DefaultStaff()
	}

	resolver, err := NewResolver(options, staff)
	if err != nil {
		return nil, nil, err
	}
	return resolver, overrides, nil
}
