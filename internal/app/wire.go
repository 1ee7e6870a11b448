//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/phraser/internal/adapter/repository"
	"github.com/eslsoft/phraser/internal/infrastructure/config"
	"github.com/eslsoft/phraser/internal/infrastructure/database"
	"github.com/eslsoft/phraser/internal/infrastructure/logger"
	"github.com/eslsoft/phraser/internal/infrastructure/phonetic"
	"github.com/eslsoft/phraser/internal/usecase"
	"github.com/eslsoft/phraser/pkg/weighted"
)

var configSet = wire.NewSet(
	config.Load,
)

var loggerSet = wire.NewSet(
	logger.NewLogger,
	wire.Bind(new(logrus.FieldLogger), new(*logrus.Logger)),
)

var databaseSet = wire.NewSet(
	database.Open,
)

var repositorySet = wire.NewSet(
	repository.NewSQLRecordStore,
)

var phoneticSet = wire.NewSet(
	phonetic.New,
	provideHints,
)

var usecaseSet = wire.NewSet(
	weighted.DefaultSource,
	usecase.NewItemUsecase,
	usecase.NewSettingsUsecase,
	usecase.NewReviewUsecase,
	provideBackupService,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		loggerSet,
		databaseSet,
		repositorySet,
		phoneticSet,
		usecaseSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
