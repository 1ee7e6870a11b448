package usecase

import (
	"cmp"
	"strings"

	"github.com/eslsoft/phraser/internal/entity"
	"github.com/eslsoft/phraser/pkg/filterexpr"
	"github.com/eslsoft/phraser/pkg/weighted"
)

var listItemsSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.ValueKind{
		"source":       filterexpr.KindString,
		"target":       filterexpr.KindString,
		"hint":         filterexpr.KindString,
		"correct":      filterexpr.KindInt,
		"incorrect":    filterexpr.KindInt,
		"attempts":     filterexpr.KindInt,
		"success_rate": filterexpr.KindDouble,
		"weight":       filterexpr.KindDouble,
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary:     "created",
		DefaultPrimaryDesc: false,
		FallbackKey:        "created",
		FallbackDesc:       false,
		Fields: []string{
			"created",
			"source",
			"target",
			"correct",
			"incorrect",
			"success_rate",
			"weight",
		},
	},
}

// positioned remembers where an item sits in the stored collection, which
// is its creation order.
type positioned struct {
	pos  int
	item entity.Item
}

func itemVars(it entity.Item) map[string]any {
	st := it.Stats()
	return map[string]any{
		"source":       it.SourceText,
		"target":       it.TargetText,
		"hint":         it.PhoneticHint,
		"correct":      int64(st.Correct),
		"incorrect":    int64(st.Incorrect),
		"attempts":     int64(st.Attempts()),
		"success_rate": weighted.SuccessRate(st),
		"weight":       weighted.Weight(st),
	}
}

var itemComparators = map[string]filterexpr.Comparator[positioned]{
	"created": func(a, b positioned) int { return cmp.Compare(a.pos, b.pos) },
	"source": func(a, b positioned) int {
		return strings.Compare(strings.ToLower(a.item.SourceText), strings.ToLower(b.item.SourceText))
	},
	"target": func(a, b positioned) int {
		return strings.Compare(strings.ToLower(a.item.TargetText), strings.ToLower(b.item.TargetText))
	},
	"correct":   func(a, b positioned) int { return cmp.Compare(a.item.Stats().Correct, b.item.Stats().Correct) },
	"incorrect": func(a, b positioned) int { return cmp.Compare(a.item.Stats().Incorrect, b.item.Stats().Incorrect) },
	"success_rate": func(a, b positioned) int {
		return cmp.Compare(weighted.SuccessRate(a.item.Stats()), weighted.SuccessRate(b.item.Stats()))
	},
	"weight": func(a, b positioned) int {
		return cmp.Compare(weighted.Weight(a.item.Stats()), weighted.Weight(b.item.Stats()))
	},
}
