package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

const (
	tableServiceOptions = "service_options"
	tablePriceOverrides = "price_overrides"
	tableStaffMembers   = "staff_members"
)

// Repository репозиторий каталога услуг, надбавок и мастеров
type Repository struct {
	db TxBeginner
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db TxBeginner) *Repository {
	return &Repository{db: db}
}

func listServiceOptionsQuery() (string, []interface{}, error) {
	return psqlbuilder.Select(
		"id",
		"category",
		"name",
		"duration_label",
		"base_price",
		"descriptions",
		"variant_categories",
	).
		From(tableServiceOptions).
		Where(squirrel.Eq{"active": true}).
		OrderBy("sort_order", "id").
		ToSql()
}

// ListServiceOptions возвращает активные услуги в авторском порядке (sort_order)
func (r *Repository) ListServiceOptions(ctx context.Context) ([]domain.ServiceOption, error) {
	query, args, err := listServiceOptionsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServiceOptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServiceOptions - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	options := make([]domain.ServiceOption, 0)
	for rows.Next() {
		var (
			option       domain.ServiceOption
			category     string
			descriptions []string
			rawVariants  []byte
		)
		if err := rows.Scan(
			&option.ID,
			&category,
			&option.Name,
			&option.DurationLabel,
			&option.BasePrice,
			pq.Array(&descriptions),
			&rawVariants,
		); err != nil {
			return nil, fmt.Errorf("%w: ListServiceOptions - scan row: %v", ErrScanRow, err)
		}

		option.Category = domain.Category(category)
		option.Variants, err = decodeVariants(descriptions, rawVariants)
		if err != nil {
			return nil, fmt.Errorf("ListServiceOptions - service id=%d: %w", option.ID, err)
		}
		options = append(options, option)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServiceOptions - iterate rows: %v", ErrScanRow, err)
	}

	return options, nil
}

// ListPriceOverrides возвращает все надбавки; service_id NULL означает глобальную надбавку
func (r *Repository) ListPriceOverrides(ctx context.Context) ([]domain.PriceOverride, error) {
	query, args, err := psqlbuilder.Select("service_id", "key", "amount").
		From(tablePriceOverrides).
		OrderBy("service_id NULLS FIRST", "key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPriceOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPriceOverrides - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.PriceOverride, 0)
	for rows.Next() {
		var (
			serviceID sql.NullInt64
			override  domain.PriceOverride
		)
		if err := rows.Scan(&serviceID, &override.Key, &override.Amount); err != nil {
			return nil, fmt.Errorf("%w: ListPriceOverrides - scan row: %v", ErrScanRow, err)
		}
		if serviceID.Valid {
			override.ServiceID = ptr.Ptr(serviceID.Int64)
		}
		overrides = append(overrides, override)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPriceOverrides - iterate rows: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// ListStaff возвращает мастеров в порядке отображения
func (r *Repository) ListStaff(ctx context.Context) ([]domain.StaffMember, error) {
	query, args, err := psqlbuilder.Select("id", "name").
		From(tableStaffMembers).
		OrderBy("sort_order", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]domain.StaffMember, 0)
	for rows.Next() {
		var s domain.StaffMember
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("%w: ListStaff - scan row: %v", ErrScanRow, err)
		}
		staff = append(staff, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaff - iterate rows: %v", ErrScanRow, err)
	}

	return staff, nil
}

func upsertServiceOptionQuery(sortOrder int, option domain.ServiceOption) (string, []interface{}, error) {
	descriptions, rawVariants, err := encodeVariants(option.Variants)
	if err != nil {
		return "", nil, err
	}

	var variants interface{}
	if rawVariants != nil {
		variants = string(rawVariants)
	}

	return psqlbuilder.Insert(tableServiceOptions).
		Columns("id", "category", "name", "duration_label", "base_price", "descriptions", "variant_categories", "sort_order", "active").
		Values(option.ID, string(option.Category), option.Name, option.DurationLabel, option.BasePrice,
			pq.Array(descriptions), variants, sortOrder, true).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category,
			name = EXCLUDED.name,
			duration_label = EXCLUDED.duration_label,
			base_price = EXCLUDED.base_price,
			descriptions = EXCLUDED.descriptions,
			variant_categories = EXCLUDED.variant_categories,
			sort_order = EXCLUDED.sort_order,
			active = EXCLUDED.active`).
		ToSql()
}

// Seed записывает каталог целиком в одной транзакции; надбавки и мастера заменяются полностью
func (r *Repository) Seed(ctx context.Context, options []domain.ServiceOption, overrides []domain.PriceOverride, staff []domain.StaffMember) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: Seed - begin: %v", ErrTransaction, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, option := range options {
		query, args, err := upsertServiceOptionQuery(i+1, option)
		if err != nil {
			return fmt.Errorf("%w: Seed - build upsert for service id=%d: %v", ErrBuildQuery, option.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Seed - upsert service id=%d: %v", ErrExecQuery, option.ID, err)
		}
	}

	if err := replaceRows(ctx, tx, tablePriceOverrides, overrideInsert(overrides)); err != nil {
		return err
	}
	if err := replaceRows(ctx, tx, tableStaffMembers, staffInsert(staff)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: Seed - commit: %v", ErrTransaction, err)
	}
	return nil
}

func overrideInsert(overrides []domain.PriceOverride) *squirrel.InsertBuilder {
	if len(overrides) == 0 {
		return nil
	}
	insert := psqlbuilder.Insert(tablePriceOverrides).Columns("service_id", "key", "amount")
	for _, o := range overrides {
		var serviceID interface{}
		if o.ServiceID != nil {
			serviceID = *o.ServiceID
		}
		insert = insert.Values(serviceID, o.Key, o.Amount)
	}
	return &insert
}

func staffInsert(staff []domain.StaffMember) *squirrel.InsertBuilder {
	if len(staff) == 0 {
		return nil
	}
	insert := psqlbuilder.Insert(tableStaffMembers).Columns("id", "name", "sort_order")
	for i, s := range staff {
		insert = insert.Values(s.ID, s.Name, i+1)
	}
	return &insert
}

func replaceRows(ctx context.Context, tx *sql.Tx, table string, insert *squirrel.InsertBuilder) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("%w: Seed - clear %s: %v", ErrExecQuery, table, err)
	}
	if insert == nil {
		return nil
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Seed - build insert into %s: %v", ErrBuildQuery, table, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Seed - insert into %s: %v", ErrExecQuery, table, err)
	}
	return nil
}
