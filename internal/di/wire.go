//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"linkup/internal/config"
	"linkup/internal/dbmongo"
	"linkup/internal/dbmysql"
	"linkup/internal/friend"
	"linkup/internal/notif"
	"linkup/internal/presence"
	"linkup/internal/user"
)

// InitializeApplication builds the full object graph; wire generates the body.
func InitializeApplication(cfg *config.Config) (*Application, error) {
	wire.Build(
		dbmysql.NewMySQL,
		dbmongo.NewMongoConnection,
		dbmongo.NewNotificationStore,
		presence.NewClient,
		presence.NewStore,
		ProvideDirectory,
		ProvidePresenceStore,
		ProvidePresenceChecker,
		ProvideNotifier,
		user.NewUserRepository,
		user.NewUserService,
		user.NewHandler,
		friend.NewEdgeRepository,
		friend.NewWatcher,
		friend.NewFriendService,
		friend.NewProjectionBuilder,
		friend.NewHandler,
		friend.NewStreamHandler,
		notif.NewService,
		notif.NewHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
