package usecase

import (
	"context"
	"sync"

	"github.com/eslsoft/phraser/internal/entity"
	"github.com/eslsoft/phraser/internal/repository"
	"github.com/sirupsen/logrus"
)

// SettingsUsecase loads and stores the review settings.
type SettingsUsecase interface {
	Load(ctx context.Context) entity.Settings
	Save(ctx context.Context, settings entity.Settings)
	Set(ctx context.Context, name string, value bool) (entity.Settings, error)
	Clear(ctx context.Context)
}

// NewSettingsUsecase wires the record store with default behaviour.
func NewSettingsUsecase(store repository.RecordStore, logger logrus.FieldLogger) SettingsUsecase {
	return &settingsUsecase{records: records{store: store, logger: logger}}
}

type settingsUsecase struct {
	mu      sync.Mutex
	records records
}

func (u *settingsUsecase) Load(ctx context.Context) entity.Settings {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.records.loadSettings(ctx)
}

func (u *settingsUsecase) Save(ctx context.Context, settings entity.Settings) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.records.saveSettings(ctx, settings)
}

// Set changes one named flag and persists the result.
func (u *settingsUsecase) Set(ctx context.Context, name string, value bool) (entity.Settings, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	settings := u.records.loadSettings(ctx)
	if err := settings.Set(name, value); err != nil {
		return settings, err
	}
	u.records.saveSettings(ctx, settings)
	return settings, nil
}

// Clear removes the stored settings so defaults apply again.
func (u *settingsUsecase) Clear(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.records.clearSettings(ctx)
}
