package app

import (
	"github.com/talkincode/shopcore/config"
	"github.com/talkincode/shopcore/internal/auth"
	"github.com/talkincode/shopcore/internal/catalog"
	"github.com/talkincode/shopcore/internal/ledger"
	"github.com/talkincode/shopcore/internal/storage"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// FileStoreProvider provides the selected image storage backend
type FileStoreProvider interface {
	FileStore() storage.FileStore
}

// ServiceProvider provides the business services
type ServiceProvider interface {
	AuthService() *auth.Service
	CatalogService() *catalog.Service
	LedgerService() *ledger.Service
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	FileStoreProvider
	ServiceProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
