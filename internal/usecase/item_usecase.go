package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eslsoft/phraser/internal/entity"
	"github.com/eslsoft/phraser/internal/repository"
	"github.com/eslsoft/phraser/pkg/filterexpr"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// HintGenerator derives a phonetic hint from source text. It returns an
// empty string when no hint is available.
type HintGenerator interface {
	Generate(text string) string
}

// ItemUsecase manages the vocabulary collection and its review counters.
// Unknown ids are reported with a false result, never with an error.
type ItemUsecase interface {
	List(ctx context.Context) []entity.Item
	Get(ctx context.Context, id string) (entity.Item, bool)
	Find(ctx context.Context, query *repository.ListItemQuery) ([]entity.Item, error)
	Create(ctx context.Context, source, target string) (entity.Item, error)
	CreateBatch(ctx context.Context, drafts []entity.ItemDraft) []entity.Item
	Update(ctx context.Context, id, source, target string) (bool, error)
	Delete(ctx context.Context, id string) bool
	ResetAll(ctx context.Context)
	Replace(ctx context.Context, items []entity.Item) []entity.Item
	RecordCorrect(ctx context.Context, id string) bool
	RecordIncorrect(ctx context.Context, id string) bool
}

// NewItemUsecase wires the record store with default behaviour.
func NewItemUsecase(store repository.RecordStore, hints HintGenerator, logger logrus.FieldLogger) ItemUsecase {
	return &itemUsecase{
		records: records{store: store, logger: logger},
		hints:   hints,
		logger:  logger,
		clock:   time.Now,
		newID:   newItemID,
	}
}

type itemUsecase struct {
	mu      sync.Mutex
	records records
	hints   HintGenerator
	logger  logrus.FieldLogger
	clock   func() time.Time
	newID   func(time.Time) string
}

func (u *itemUsecase) List(ctx context.Context) []entity.Item {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.records.loadItems(ctx)
}

func (u *itemUsecase) Get(ctx context.Context, id string) (entity.Item, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return lo.Find(u.records.loadItems(ctx), func(it entity.Item) bool { return it.ID == id })
}

func (u *itemUsecase) Find(ctx context.Context, query *repository.ListItemQuery) ([]entity.Item, error) {
	if query == nil {
		query = &repository.ListItemQuery{}
	}
	filter, err := filterexpr.Compile(query.GetFilter(), listItemsSchema.Filter)
	if err != nil {
		return nil, err
	}
	ord, err := filterexpr.ParseOrderBy(query.GetOrderBy(), listItemsSchema.Order)
	if err != nil {
		return nil, err
	}

	items := u.List(ctx)
	matched := make([]positioned, 0, len(items))
	for i, it := range items {
		ok, err := filter.Match(itemVars(it))
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", it.ID, err)
		}
		if ok {
			matched = append(matched, positioned{pos: i, item: it})
		}
	}
	if err := filterexpr.Sort(matched, ord, itemComparators); err != nil {
		return nil, err
	}
	return lo.Map(matched, func(p positioned, _ int) entity.Item { return p.item }), nil
}

func (u *itemUsecase) Create(ctx context.Context, source, target string) (entity.Item, error) {
	draft, err := entity.ItemDraft{SourceText: source, TargetText: target}.Normalize()
	if err != nil {
		return entity.Item{}, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	items := u.records.loadItems(ctx)
	item := u.newItem(draft)
	items = append(items, item)
	u.records.saveItems(ctx, items)
	u.logger.WithField("id", item.ID).Debug("item created")
	return item, nil
}

func (u *itemUsecase) CreateBatch(ctx context.Context, drafts []entity.ItemDraft) []entity.Item {
	created := make([]entity.Item, 0, len(drafts))
	for _, d := range drafts {
		draft, err := d.Normalize()
		if err != nil {
			continue
		}
		created = append(created, u.newItem(draft))
	}
	if len(created) == 0 {
		return created
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	items := u.records.loadItems(ctx)
	u.records.saveItems(ctx, append(items, created...))
	u.logger.WithFields(logrus.Fields{
		"count":   len(created),
		"skipped": len(drafts) - len(created),
	}).Debug("items created")
	return created
}

func (u *itemUsecase) Update(ctx context.Context, id, source, target string) (bool, error) {
	draft, err := entity.ItemDraft{SourceText: source, TargetText: target}.Normalize()
	if err != nil {
		return false, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	items := u.records.loadItems(ctx)
	_, idx, ok := lo.FindIndexOf(items, func(it entity.Item) bool { return it.ID == id })
	if !ok {
		return false, nil
	}
	items[idx].SourceText = draft.SourceText
	items[idx].TargetText = draft.TargetText
	items[idx].PhoneticHint = u.hint(draft.SourceText)
	u.records.saveItems(ctx, items)
	return true, nil
}

func (u *itemUsecase) Delete(ctx context.Context, id string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	items := u.records.loadItems(ctx)
	remaining := lo.Reject(items, func(it entity.Item, _ int) bool { return it.ID == id })
	if len(remaining) == len(items) {
		return false
	}
	u.records.saveItems(ctx, remaining)
	return true
}

func (u *itemUsecase) ResetAll(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.records.saveItems(ctx, []entity.Item{})
}

// Replace stores items verbatim, keeping ids and counters. Items violating
// the persisted-item invariants are dropped, as are repeated ids after the
// first occurrence. The stored items are returned.
func (u *itemUsecase) Replace(ctx context.Context, items []entity.Item) []entity.Item {
	kept := lo.UniqBy(
		lo.Filter(items, func(it entity.Item, _ int) bool { return it.Valid() }),
		func(it entity.Item) string { return it.ID },
	)
	kept = lo.Map(kept, func(it entity.Item, _ int) entity.Item {
		it.SourceText = entity.NormalizeText(it.SourceText)
		it.TargetText = entity.NormalizeText(it.TargetText)
		return it
	})

	u.mu.Lock()
	defer u.mu.Unlock()
	u.records.saveItems(ctx, kept)
	return kept
}

func (u *itemUsecase) newItem(draft entity.ItemDraft) entity.Item {
	return entity.Item{
		ID:           u.newID(u.clock()),
		SourceText:   draft.SourceText,
		TargetText:   draft.TargetText,
		PhoneticHint: u.hint(draft.SourceText),
	}
}

func (u *itemUsecase) hint(source string) (hint string) {
	if u.hints == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			u.logger.WithField("source", source).Warnf("phonetic hint derivation failed: %v", r)
			hint = ""
		}
	}()
	return u.hints.Generate(source)
}
