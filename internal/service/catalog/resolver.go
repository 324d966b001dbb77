package catalog

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// categoryAliases короткие идентификаторы вкладок портфолио и названия групп бэкенда
var categoryAliases = map[string]domain.Category{
	"hair":            domain.CategoryHair,
	"makeup":          domain.CategoryMakeup,
	"nails":           domain.CategoryNails,
	"makeup artistry": domain.CategoryMakeup,
	"nails studio":    domain.CategoryNails,
}

// Resolver каталог услуг и мастеров, доступный только на чтение
type Resolver struct {
	options []domain.ServiceOption
	staff   []domain.StaffMember
}

// NewResolver создает каталог; порядок options сохраняется как авторский
func NewResolver(options []domain.ServiceOption, staff []domain.StaffMember) (*Resolver, error) {
	seen := make(map[int64]struct{}, len(options))
	for i := range options {
		if err := options[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if _, dup := seen[options[i].ID]; dup {
			return nil, fmt.Errorf("%w: duplicate service id=%d", ErrInvalidCatalog, options[i].ID)
		}
		seen[options[i].ID] = struct{}{}
	}

	return &Resolver{
		options: append([]domain.ServiceOption(nil), options...),
		staff:   append([]domain.StaffMember(nil), staff...),
	}, nil
}

// ResolveCategory приводит алиас ("hair") или полное название группы к категории
func ResolveCategory(token string) (domain.Category, bool) {
	value := strings.TrimSpace(token)
	if value == "" {
		return "", false
	}
	for _, c := range domain.Categories {
		if string(c) == value {
			return c, true
		}
	}
	if c, ok := categoryAliases[strings.ToLower(value)]; ok {
		return c, true
	}
	return "", false
}

// ResolveOptions возвращает услуги в авторском порядке.
// Нераспознанный фильтр трактуется как отсутствие фильтра.
func (r *Resolver) ResolveOptions(categoryFilter string) []domain.ServiceOption {
	category, ok := ResolveCategory(categoryFilter)
	if !ok {
		return append([]domain.ServiceOption(nil), r.options...)
	}

	result := make([]domain.ServiceOption, 0, len(r.options))
	for _, o := range r.options {
		if o.Category == category {
			result = append(result, o)
		}
	}
	return result
}

// Find ищет услугу по ID во всем каталоге
func (r *Resolver) Find(id int64) (domain.ServiceOption, error) {
	for _, o := range r.options {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.ServiceOption{}, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
}

// Staff возвращает список мастеров, включая "без предпочтений"
func (r *Resolver) Staff() []domain.StaffMember {
	return append([]domain.StaffMember(nil), r.staff...)
}

// StaffName возвращает отображаемое имя мастера.
// Пустой ID и "any" означают отсутствие предпочтений и дают пустое имя.
func (r *Resolver) StaffName(id string) (string, error) {
	if id == "" || id == domain.StaffNoPreference {
		return "", nil
	}
	for _, s := range r.staff {
		if s.ID == id {
			return s.Name, nil
		}
	}
	return "", fmt.Errorf("%w: id=%q", ErrUnknownStaff, id)
}
