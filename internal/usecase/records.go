package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/eslsoft/phraser/internal/entity"
	"github.com/eslsoft/phraser/internal/repository"
	"github.com/sirupsen/logrus"
)

// records serializes the item collection and settings to the record store.
// Reads fail soft to empty/default values; write failures are logged and
// otherwise ignored.
type records struct {
	store  repository.RecordStore
	logger logrus.FieldLogger
}

func (r records) loadItems(ctx context.Context) []entity.Item {
	raw, err := r.store.Get(ctx, repository.ItemsKey)
	if err != nil {
		if !errors.Is(err, entity.ErrRecordNotFound) {
			r.logger.WithError(err).WithField("key", repository.ItemsKey).Warn("read items failed, using empty collection")
		}
		return []entity.Item{}
	}
	var items []entity.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		r.logger.WithError(err).WithField("key", repository.ItemsKey).Warn("decode items failed, using empty collection")
		return []entity.Item{}
	}
	if items == nil {
		items = []entity.Item{}
	}
	return items
}

func (r records) saveItems(ctx context.Context, items []entity.Item) {
	if items == nil {
		items = []entity.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		r.logger.WithError(err).Error("encode items failed")
		return
	}
	if err := r.store.Set(ctx, repository.ItemsKey, raw); err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"key":   repository.ItemsKey,
			"count": len(items),
		}).Error("write items failed")
	}
}

func (r records) loadSettings(ctx context.Context) entity.Settings {
	settings := entity.DefaultSettings()
	raw, err := r.store.Get(ctx, repository.SettingsKey)
	if err != nil {
		if !errors.Is(err, entity.ErrRecordNotFound) {
			r.logger.WithError(err).WithField("key", repository.SettingsKey).Warn("read settings failed, using defaults")
		}
		return settings
	}
	// Keys missing from the stored record keep their defaults.
	if err := json.Unmarshal(raw, &settings); err != nil {
		r.logger.WithError(err).WithField("key", repository.SettingsKey).Warn("decode settings failed, using defaults")
		return entity.DefaultSettings()
	}
	return settings
}

func (r records) saveSettings(ctx context.Context, settings entity.Settings) {
	raw, err := json.Marshal(settings)
	if err != nil {
		r.logger.WithError(err).Error("encode settings failed")
		return
	}
	if err := r.store.Set(ctx, repository.SettingsKey, raw); err != nil {
		r.logger.WithError(err).WithField("key", repository.SettingsKey).Error("write settings failed")
	}
}

func (r records) clearSettings(ctx context.Context) {
	if err := r.store.Remove(ctx, repository.SettingsKey); err != nil {
		r.logger.WithError(err).WithField("key", repository.SettingsKey).Error("remove settings failed")
	}
}
