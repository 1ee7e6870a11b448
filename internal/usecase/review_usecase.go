package usecase

import (
	"context"
	"sync"

	"github.com/eslsoft/phraser/internal/entity"
	"github.com/eslsoft/phraser/pkg/answer"
	"github.com/eslsoft/phraser/pkg/weighted"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Card is one drawn flashcard oriented by the reverse-mode setting.
type Card struct {
	Item    entity.Item
	Prompt  string
	Answer  string
	Hint    string
	Reverse bool
}

// Outcome is the result of checking a typed answer.
type Outcome struct {
	Correct  bool
	Expected string
	// Recorded is false when the item disappeared before scoring.
	Recorded bool
}

// Session tallies answers given during one review run.
type Session struct {
	Shown     int
	Correct   int
	Incorrect int
}

// ReviewUsecase draws cards by weighted selection and scores answers.
type ReviewUsecase interface {
	SelectNext(items []entity.Item) (entity.Item, bool)
	Weights(items []entity.Item) []float64
	Next(ctx context.Context) (Card, bool)
	Answer(ctx context.Context, card Card, input string) (Outcome, error)
	Session() Session
}

// NewReviewUsecase builds a review usecase drawing randomness from src.
func NewReviewUsecase(items ItemUsecase, settings SettingsUsecase, src weighted.Source, logger logrus.FieldLogger) ReviewUsecase {
	return &reviewUsecase{
		items:    items,
		settings: settings,
		selector: weighted.NewSelector(src),
		logger:   logger,
	}
}

type reviewUsecase struct {
	items    ItemUsecase
	settings SettingsUsecase
	selector *weighted.Selector
	logger   logrus.FieldLogger

	mu      sync.Mutex
	session Session
}

func (u *reviewUsecase) SelectNext(items []entity.Item) (entity.Item, bool) {
	idx := u.selector.Pick(u.Weights(items))
	if idx < 0 {
		return entity.Item{}, false
	}
	return items[idx], true
}

func (u *reviewUsecase) Weights(items []entity.Item) []float64 {
	return lo.Map(items, func(it entity.Item, _ int) float64 { return weighted.Weight(it.Stats()) })
}

// Next reads the current settings and draws a card from the stored items.
func (u *reviewUsecase) Next(ctx context.Context) (Card, bool) {
	settings := u.settings.Load(ctx)
	item, ok := u.SelectNext(u.items.List(ctx))
	if !ok {
		return Card{}, false
	}

	u.mu.Lock()
	u.session.Shown++
	u.mu.Unlock()

	card := Card{
		Item:    item,
		Prompt:  item.SourceText,
		Answer:  item.TargetText,
		Hint:    item.PhoneticHint,
		Reverse: settings.ReverseModeEnabled,
	}
	if settings.ReverseModeEnabled {
		card.Prompt, card.Answer = item.TargetText, item.SourceText
	}
	return card, true
}

// Answer validates typed input for card and records the result. It fails
// with entity.ErrActiveInputDisabled unless active input is enabled.
func (u *reviewUsecase) Answer(ctx context.Context, card Card, input string) (Outcome, error) {
	if !u.settings.Load(ctx).ActiveInputEnabled {
		return Outcome{}, entity.ErrActiveInputDisabled
	}
	correct := answer.Validate(input, card.Answer)
	return Outcome{
		Correct:  correct,
		Expected: card.Answer,
		Recorded: u.record(ctx, card.Item.ID, correct),
	}, nil
}

func (u *reviewUsecase) Session() Session {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.session
}

func (u *reviewUsecase) record(ctx context.Context, id string, correct bool) bool {
	var recorded bool
	if correct {
		recorded = u.items.RecordCorrect(ctx, id)
	} else {
		recorded = u.items.RecordIncorrect(ctx, id)
	}
	if !recorded {
		u.logger.WithField("id", id).Warn("review item no longer exists, result not recorded")
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if correct {
		u.session.Correct++
	} else {
		u.session.Incorrect++
	}
	return recorded
}
