package app

import (
	"github.com/eslsoft/phraser/internal/infrastructure/config"
	"github.com/eslsoft/phraser/internal/infrastructure/phonetic"
	"github.com/eslsoft/phraser/internal/usecase"
	"github.com/eslsoft/phraser/internal/usecase/backup"
	"github.com/sirupsen/logrus"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Items    usecase.ItemUsecase
	Settings usecase.SettingsUsecase
	Review   usecase.ReviewUsecase
	Backup   *backup.Service
}

func provideHints(g phonetic.Generator) usecase.HintGenerator {
	return g
}

func provideBackupService(items usecase.ItemUsecase, settings usecase.SettingsUsecase) *backup.Service {
	return backup.NewService(items, settings)
}
