package pricing

import (
	"sort"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Tier уровень таблицы, из которого взята надбавка
type Tier string

const (
	TierCombination Tier = "combination"
	TierQualified   Tier = "qualified"
	TierService     Tier = "service"
	TierGlobal      Tier = "global"
	TierNone        Tier = "none"
)

// Modifier надбавка к базовой цене и ее источник
type Modifier struct {
	Category string
	Label    string
	Key      string
	Tier     Tier
	Amount   int64
}

// Breakdown итог расчета с разбивкой по надбавкам
type Breakdown struct {
	BasePrice int64
	Modifiers []Modifier
	Total     int64
}

// Engine вычисляет цену по таблице надбавок; безопасен для конкурентного чтения
type Engine struct {
	table OverrideTable
	// combinations предвычисленные ключи комбинаций по сервису в отсортированном порядке
	combinations map[int64][]combination
}

type combination struct {
	key   string
	parts []string
}

// NewEngine создает движок; таблица копируется
func NewEngine(table OverrideTable) *Engine {
	e := &Engine{
		table: OverrideTable{
			Global:     copyMap(table.Global),
			PerService: make(map[int64]map[string]int64, len(table.PerService)),
		},
		combinations: make(map[int64][]combination),
	}

	for id, svc := range table.PerService {
		e.table.PerService[id] = copyMap(svc)
		for _, key := range sortedKeys(svc) {
			if !IsCombinationKey(key) {
				continue
			}
			parts := strings.Split(key, combinationSeparator)
			sort.Strings(parts)
			e.combinations[id] = append(e.combinations[id], combination{key: key, parts: parts})
		}
	}
	return e
}

func copyMap(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Compute итоговая цена для выбора; никогда не возвращает ошибку
func (e *Engine) Compute(basePrice int64, sel domain.Selection, serviceID int64) int64 {
	return e.Explain(basePrice, sel, serviceID).Total
}

// Explain считает цену и возвращает разбивку по уровням таблицы
func (e *Engine) Explain(basePrice int64, sel domain.Selection, serviceID int64) Breakdown {
	result := Breakdown{BasePrice: basePrice, Total: basePrice}

	switch s := sel.(type) {
	case domain.CategorySelection:
		if len(s) > 0 {
			return e.explainCategorized(result, s, serviceID)
		}
		// пустой выбор категорий считается простым режимом с пустой меткой
		return e.explainSimple(result, "", serviceID)
	case domain.DescriptionSelection:
		return e.explainSimple(result, s.Label, serviceID)
	default:
		return result
	}
}

func (e *Engine) explainCategorized(result Breakdown, sel domain.CategorySelection, serviceID int64) Breakdown {
	// 1. Комбинация исключает посуммовый расчет
	if m, ok := e.matchCombination(sel, serviceID); ok {
		result.Modifiers = []Modifier{m}
		result.Total += m.Amount
		return result
	}

	// 2. Каждая категория независимо; категории обходятся по имени для стабильной разбивки
	categories := make([]string, 0, len(sel))
	for c := range sel {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, category := range categories {
		m := e.Resolve(serviceID, category, sel[category])
		result.Modifiers = append(result.Modifiers, m)
		result.Total += m.Amount
	}
	return result
}

func (e *Engine) explainSimple(result Breakdown, label string, serviceID int64) Breakdown {
	m := e.Resolve(serviceID, "", label)
	result.Modifiers = []Modifier{m}
	result.Total += m.Amount
	return result
}

// matchCombination ищет ключ комбинации, совпадающий с выбранными метками как мультимножество
func (e *Engine) matchCombination(sel domain.CategorySelection, serviceID int64) (Modifier, bool) {
	candidates := e.combinations[serviceID]
	if len(candidates) == 0 {
		return Modifier{}, false
	}

	labels := make([]string, 0, len(sel))
	for _, label := range sel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, c := range candidates {
		if equalSorted(c.parts, labels) {
			return Modifier{
				Label:  strings.Join(labels, combinationSeparator),
				Key:    c.key,
				Tier:   TierCombination,
				Amount: e.table.PerService[serviceID][c.key],
			}, true
		}
	}
	return Modifier{}, false
}

func equalSorted(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Resolve надбавка для одной метки: "категория:метка" сервиса, метка сервиса, глобальная метка, иначе 0.
// Пустая category пропускает уточненный уровень (простой режим).
func (e *Engine) Resolve(serviceID int64, category, label string) Modifier {
	m := Modifier{Category: category, Label: label, Tier: TierNone}

	if svc, ok := e.table.PerService[serviceID]; ok {
		if category != "" {
			key := QualifiedKey(category, label)
			if amount, found := svc[key]; found {
				m.Key, m.Tier, m.Amount = key, TierQualified, amount
				return m
			}
		}
		if amount, found := svc[label]; found {
			m.Key, m.Tier, m.Amount = label, TierService, amount
			return m
		}
	}

	if amount, found := e.table.Global[label]; found {
		m.Key, m.Tier, m.Amount = label, TierGlobal, amount
	}
	return m
}
