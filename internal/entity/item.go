package entity

import (
	"github.com/eslsoft/phraser/pkg/weighted"
)

// Item is a bilingual phrase pair with its review statistics.
type Item struct {
	ID             string `json:"id"`
	SourceText     string `json:"sourceText"`
	TargetText     string `json:"targetText"`
	PhoneticHint   string `json:"phoneticHint,omitempty"`
	CorrectCount   int    `json:"correctCount"`
	IncorrectCount int    `json:"incorrectCount"`
}

// ItemDraft is the user-supplied part of an item before creation.
type ItemDraft struct {
	SourceText string
	TargetText string
}

// Normalize trims both texts and reports whether the draft is storable.
func (d ItemDraft) Normalize() (ItemDraft, error) {
	out := ItemDraft{
		SourceText: NormalizeText(d.SourceText),
		TargetText: NormalizeText(d.TargetText),
	}
	if out.SourceText == "" || out.TargetText == "" {
		return out, ErrInvalidItemText
	}
	return out, nil
}

// Stats returns the review outcomes used for weighting.
func (it Item) Stats() weighted.Stats {
	return weighted.Stats{
		Correct:   max(it.CorrectCount, 0),
		Incorrect: max(it.IncorrectCount, 0),
	}
}

// Valid reports whether the item satisfies the persisted-item invariants.
func (it Item) Valid() bool {
	return it.ID != "" &&
		NormalizeText(it.SourceText) != "" &&
		NormalizeText(it.TargetText) != "" &&
		it.CorrectCount >= 0 &&
		it.IncorrectCount >= 0
}
