package catalog

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// ID должны совпадать с идентификаторами услуг бэкенда, иначе POST /appointments отклонит service_id

func categorized(categories ...domain.VariantCategory) domain.CategorizedVariants {
	return domain.CategorizedVariants{Categories: categories}
}

func dim(name string, options ...string) domain.VariantCategory {
	return domain.VariantCategory{Name: name, Options: options}
}

func simple(descriptions ...string) domain.SimpleVariants {
	return domain.SimpleVariants{Descriptions: descriptions}
}

// DefaultOptions статический каталог салона в авторском порядке
func DefaultOptions() []domain.ServiceOption {
	return []domain.ServiceOption{
		{ID: 1, Category: domain.CategoryHair, Name: "Knotless Braids", DurationLabel: "4-5 hours", BasePrice: 100000,
			Variants: categorized(
				dim("Length", "Short", "Midback", "Long"),
				dim("Spacing", "Small", "Medium", "Large"),
				dim("Variation", "Plain", "Boho", "Goddess"),
			)},
		{ID: 7, Category: domain.CategoryHair, Name: "Senegalese Twists", DurationLabel: "4 hours", BasePrice: 100000,
			Variants: categorized(
				dim("Length", "Short", "Midback", "Long"),
				dim("Spacing", "Small", "Medium", "Large"),
				dim("Variation", "Standard", "Island Twists"),
			)},
		{ID: 8, Category: domain.CategoryHair, Name: "Soft Locs", DurationLabel: "2 hours", BasePrice: 120000,
			Variants: categorized(
				dim("Length", "Short", "Midback", "Long"),
				dim("Spacing", "Medium", "Large"),
				dim("Variation", "Plain", "Goddess"),
			)},
		{ID: 9, Category: domain.CategoryHair, Name: "Butterfly Locs", DurationLabel: "4-5 hours", BasePrice: 150000,
			Variants: categorized(
				dim("Length", "Short", "Midback", "Long"),
				dim("Spacing", "medium", "Large"),
				dim("Variation", "Plain", "Goddess"),
			)},
		{ID: 10, Category: domain.CategoryHair, Name: "French Curls", DurationLabel: "5-6 hours", BasePrice: 180000,
			Variants: categorized(
				dim("Length", "Short", "Midback", "Long"),
				dim("Spacing", "Medium", "Small"),
				dim("Variation", "Boho", "Plain"),
			)},
		{ID: 11, Category: domain.CategoryHair, Name: "Cornrows (All Back)", DurationLabel: "2 hours", BasePrice: 80000,
			Variants: categorized(
				dim("Length", "Midback", "Long"),
				dim("Variation", "Plain", "Goddess"),
			)},
		{ID: 12, Category: domain.CategoryHair, Name: "Stitch Cornrows", DurationLabel: "2 hours", BasePrice: 80000,
			Variants: categorized(
				dim("Length", "Short", "Long"),
			)},
		{ID: 13, Category: domain.CategoryHair, Name: "Fulani Cornrows", DurationLabel: "3-4 hours", BasePrice: 100000,
			Variants: categorized(
				dim("Length", "Short", "Midback", "Long"),
				dim("Type", "In Braids", "In Twists"),
				dim("Variation", "Boho", "Plain"),
			)},
		{ID: 14, Category: domain.CategoryHair, Name: "Passion Twists", DurationLabel: "3-4 hours", BasePrice: 100000,
			Variants: categorized(
				dim("Length", "Short", "Midback", "Long"),
				dim("Spacing", "Medium", "Small"),
				dim("Type", "Reversed", "Bouncy"),
				dim("Variation", "Boho", "Plain"),
			)},
		{ID: 21, Category: domain.CategoryHair, Name: "Fulani Passion Twists", DurationLabel: "4-5 hours", BasePrice: 100000,
			Variants: categorized(
				dim("Length", "Short", "Midback", "Long"),
				dim("Variation", "Reversed", "Bouncy"),
			)},
		{ID: 15, Category: domain.CategoryHair, Name: "Kinky Twists", DurationLabel: "4 hours", BasePrice: 85000,
			Variants: categorized(
				dim("Length", "Short", "Midback", "Long"),
				dim("Spacing", "Medium", "Small", "Large"),
				dim("Size", "Small", "Medium", "Large"),
				dim("Variation", "Plain", "Goddess"),
			)},
		{ID: 16, Category: domain.CategoryHair, Name: "Hermaid Braids", DurationLabel: "3-4 hours", BasePrice: 120000,
			Variants: categorized(
				dim("Length", "Short", "Midback", "Long"),
				dim("Spacing", "Medium", "Small", "Large"),
				dim("Size", "Small", "Medium"),
			)},
		{ID: 17, Category: domain.CategoryHair, Name: "Italy Curls", DurationLabel: "4 hours", BasePrice: 140000,
			Variants: categorized(
				dim("Length", "Short", "Long"),
				dim("Spacing", "Medium"),
			)},
		{ID: 18, Category: domain.CategoryHair, Name: "Jayda Wayda", DurationLabel: "3-4 hours", BasePrice: 140000,
			Variants: categorized(
				dim("Length", "Short", "Long"),
				dim("Variation", "Plain", "Hannah Curls"),
			)},
		{ID: 19, Category: domain.CategoryHair, Name: "Gypsy Locs", DurationLabel: "2 hours", BasePrice: 140000,
			Variants: categorized(
				dim("Length", "Long"),
				dim("Variation", "Boho", "Plain"),
			)},
		{ID: 20, Category: domain.CategoryHair, Name: "Sew-ins", DurationLabel: "4 hours", BasePrice: 140000,
			Variants: categorized(
				dim("Length", "Short", "Long"),
				dim("Bundles", "Semi-Human"),
			)},
		{ID: 2, Category: domain.CategoryHair, Name: "Wig Install", DurationLabel: "1.5 hours", BasePrice: 150000,
			Variants: simple("Closure", "Frontal")},
		{ID: 3, Category: domain.CategoryMakeup, Name: "Soft Glam", DurationLabel: "1-1.5 hours", BasePrice: 120000,
			Variants: simple("Day", "Evening")},
		{ID: 4, Category: domain.CategoryMakeup, Name: "Bridal Makeup", DurationLabel: "2 hours", BasePrice: 180000,
			Variants: simple("Bride", "Bridesmaid")},
		{ID: 5, Category: domain.CategoryNails, Name: "Gel Manicure", DurationLabel: "1 hour", BasePrice: 80000,
			Variants: simple("Short", "Medium", "Long")},
		{ID: 6, Category: domain.CategoryNails, Name: "Acrylic Full Set", DurationLabel: "1.5 hours", BasePrice: 110000,
			Variants: simple("Short", "Medium", "Long")},
	}
}

// DefaultStaff мастера салона; первый элемент означает "без предпочтений"
func DefaultStaff() []domain.StaffMember {
	return []domain.StaffMember{
		{ID: domain.StaffNoPreference, Name: "No Preference"},
		{ID: "lucy", Name: "Lucy"},
		{ID: "lonnet", Name: "Lonnet"},
		{ID: "spe", Name: "Spe"},
		{ID: "truth", Name: "Truth"},
		{ID: "jim", Name: "Jim"},
		{ID: "destiny", Name: "Destiny"},
		{ID: "joan", Name: "Joan"},
		{ID: "gift", Name: "Gift"},
	}
}

// NewDefaultResolver каталог на статических данных
func NewDefaultResolver() *Resolver {
	r, err := NewResolver(DefaultOptions(), DefaultStaff())
	if err != nil {
		// статические данные проверяются тестами
		panic(err)
	}
	return r
}
