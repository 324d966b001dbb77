package pricing

import (
	"sort"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// Разделители ключей таблицы надбавок
const (
	qualifierSeparator   = ":"
	combinationSeparator = "+"
)

// QualifiedKey ключ надбавки, уточненный категорией: "Spacing:Small"
func QualifiedKey(category, label string) string {
	return category + qualifierSeparator + label
}

// CombinationKey ключ комбинации: отсортированные метки через "+"
func CombinationKey(labels ...string) string {
	sorted := append([]string(nil), labels...)
	sort.Strings(sorted)
	return strings.Join(sorted, combinationSeparator)
}

// IsCombinationKey возвращает true для ключей вида "A+B"
func IsCombinationKey(key string) bool {
	return strings.Contains(key, combinationSeparator)
}

// OverrideTable глобальные и сервисные надбавки к базовой цене
type OverrideTable struct {
	Global     map[string]int64
	PerService map[int64]map[string]int64
}

// NewOverrideTableFromRows собирает таблицу из строк хранилища; ServiceID == nil означает глобальную надбавку
func NewOverrideTableFromRows(rows []domain.PriceOverride) OverrideTable {
	table := OverrideTable{
		Global:     make(map[string]int64),
		PerService: make(map[int64]map[string]int64),
	}
	for _, row := range rows {
		if row.ServiceID == nil {
			table.Global[row.Key] = row.Amount
			continue
		}
		svc, ok := table.PerService[*row.ServiceID]
		if !ok {
			svc = make(map[string]int64)
			table.PerService[*row.ServiceID] = svc
		}
		svc[row.Key] = row.Amount
	}
	return table
}

// Rows обратное преобразование, удобно для сидирования хранилища
func (t OverrideTable) Rows() []domain.PriceOverride {
	rows := make([]domain.PriceOverride, 0, len(t.Global))
	for _, key := range sortedKeys(t.Global) {
		rows = append(rows, domain.PriceOverride{Key: key, Amount: t.Global[key]})
	}

	serviceIDs := make([]int64, 0, len(t.PerService))
	for id := range t.PerService {
		serviceIDs = append(serviceIDs, id)
	}
	sort.Slice(serviceIDs, func(i, j int) bool { return serviceIDs[i] < serviceIDs[j] })

	for _, id := range serviceIDs {
		svc := t.PerService[id]
		for _, key := range sortedKeys(svc) {
			rows = append(rows, domain.PriceOverride{ServiceID: ptr.Ptr(id), Key: key, Amount: svc[key]})
		}
	}
	return rows
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultOverrides таблица надбавок салона
func DefaultOverrides() OverrideTable {
	return OverrideTable{
		Global: map[string]int64{
			"Short":         0,
			"Midback":       0,
			"Long":          20000,
			"Small":         20000,
			"Medium":        0,
			"Large":         0,
			"Plain":         0,
			"Boho":          20000,
			"Goddess":       20000,
			"Standard":      0,
			"Island Twists": 20000,
			"medium":        0,
			"plain":         0,
			"Closure":       15000,
			"Frontal":       20000,
			"Day":           0,
			"Evening":       10000,
			"Bride":         20000,
			"Bridesmaid":    10000,
		},
		PerService: map[int64]map[string]int64{
			// Butterfly Locs
			9: {
				"Long": 50000, "Midback": 20000, "Short": 0,
				"medium": 0, "Large": 0,
				"Goddess": 20000, "Plain": 0,
			},
			// French Curls
			10: {
				"Long": 40000, "Midback": 20000, "Short": 0,
				"Medium": 0, "Small": 10000,
				"Boho": 0, "Plain": 0,
			},
			// Cornrows (All Back)
			11: {
				"Long": 20000, "Midback": 0,
				"Goddess": 10000, "Plain": 0,
			},
			// Fulani Cornrows
			13: {
				"Long": 20000, "Midback": 0, "Short": 0,
				"Boho": 0, "Plain": 0,
				"In Braids": 20000, "In Twists": 0,
			},
			// Passion Twists
			14: {
				"Long": 30000, "Midback": 10000, "Short": 0,
				"Medium": 0, "Small": 10000,
				"Reversed": 0, "Bouncy": 0,
				"Boho": 20000, "Plain": 0,
			},
			// Fulani Passion Twists: Reversed стоит +20000 только вместе с Long
			21: {
				"Long": 30000, "Midback": 0, "Short": 0,
				"Reversed": 0, "Bouncy": 0,
				"Long+Reversed":    50000,
				"Midback+Reversed": 0,
				"Short+Reversed":   0,
				"Long+Bouncy":      30000,
				"Midback+Bouncy":   0,
				"Short+Bouncy":     0,
			},
			// Kinky Twists: Small встречается и в Spacing, и в Size
			15: {
				"Long": 35000, "Midback": 15000, "Short": 0,
				"Spacing:Medium": 0, "Spacing:Small": 20000, "Spacing:Large": 0,
				"Size:Small": 0, "Size:Medium": 0, "Size:Large": 30000,
				"Goddess": 20000, "Plain": 0,
			},
			// Hermaid Braids: все надбавки нулевые
			16: {
				"Long": 0, "Midback": 0, "Short": 0,
				"Spacing:Medium": 0, "Spacing:Small": 0, "Spacing:Large": 0,
				"Size:Small": 0, "Size:Medium": 0,
			},
			// Italy Curls
			17: {"Short": 0, "Long": 20000, "Medium": 0},
			// Jayda Wayda
			18: {"Short": 0, "Long": 20000, "Plain": 0, "Hannah Curls": 20000},
			// Gypsy Locs
			19: {"Long": 0, "Plain": 20000},
			// Sew-ins
			20: {"Short": 0, "Long": 20000, "Bundles:Semi-Human": 0},
		},
	}
}
