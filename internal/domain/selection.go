package domain

// Selection is the customer's variant choice: DescriptionSelection or CategorySelection
type Selection interface {
	isSelection()
}

// DescriptionSelection is a simple-mode choice of one description label
type DescriptionSelection struct {
	Label string
}

func (DescriptionSelection) isSelection() {}

// CategorySelection maps category name to the chosen label
type CategorySelection map[string]string

func (CategorySelection) isSelection() {}

// IsCompleteFor returns true when there is exactly one valid choice per category
func (s CategorySelection) IsCompleteFor(v CategorizedVariants) bool {
	if len(s) != len(v.Categories) {
		return false
	}
	for _, c := range v.Categories {
		label, ok := s[c.Name]
		if !ok || !c.Has(label) {
			return false
		}
	}
	return true
}

// Labels returns the chosen labels in the option's category order
func (s CategorySelection) Labels(v CategorizedVariants) []string {
	labels := make([]string, 0, len(s))
	for _, c := range v.Categories {
		if label, ok := s[c.Name]; ok {
			labels = append(labels, label)
		}
	}
	return labels
}

// Clone returns an independent copy of the selection
func (s CategorySelection) Clone() CategorySelection {
	out := make(CategorySelection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
