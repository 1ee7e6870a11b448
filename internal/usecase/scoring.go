package usecase

import (
	"context"

	"github.com/eslsoft/phraser/internal/entity"
	"github.com/samber/lo"
)

func (u *itemUsecase) RecordCorrect(ctx context.Context, id string) bool {
	return u.score(ctx, id, func(it *entity.Item) { it.CorrectCount++ })
}

func (u *itemUsecase) RecordIncorrect(ctx context.Context, id string) bool {
	return u.score(ctx, id, func(it *entity.Item) { it.IncorrectCount++ })
}

// score applies bump to the item with id and persists the collection.
func (u *itemUsecase) score(ctx context.Context, id string, bump func(*entity.Item)) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	items := u.records.loadItems(ctx)
	_, idx, ok := lo.FindIndexOf(items, func(it entity.Item) bool { return it.ID == id })
	if !ok {
		return false
	}
	bump(&items[idx])
	u.records.saveItems(ctx, items)
	return true
}
