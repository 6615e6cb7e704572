package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"linkup/internal/config"
	"linkup/internal/dbmongo"
	"linkup/internal/friend"
	"linkup/internal/notif"
	"linkup/internal/presence"
	"linkup/internal/user"
)

// Application bundles everything cmd/friend-svc needs after wiring.
type Application struct {
	Config        *config.Config
	DB            *gorm.DB
	Mongo         *dbmongo.MongoClient
	Redis         *redis.Client
	Watcher       *friend.Watcher
	NotifService  *notif.Service
	UserHandler   *user.Handler
	FriendHandler *friend.Handler
	StreamHandler *friend.StreamHandler
	NotifHandler  *notif.Handler
}

// Interface adapters for wire: the concrete implementations already satisfy
// the consumer-side interfaces, these providers just name the binding.

func ProvideDirectory(repo user.UserRepository) friend.Directory {
	return repo
}

func ProvidePresenceStore(store *presence.Store) user.PresenceStore {
	return store
}

func ProvidePresenceChecker(store *presence.Store) friend.PresenceChecker {
	return store
}

func ProvideNotifier(service *notif.Service) friend.Notifier {
	return service
}
