package database

import (
	"github.com/jimlawless/whereami"
	"github.com/mytheresa/go-inventory/models"
	"github.com/mytheresa/go-inventory/pkg/e"
	"github.com/mytheresa/go-inventory/pkg/logger"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables of every model, parents first.
func AutoMigrate(db *gorm.DB, log logger.Logger) error {
	log.Infof("Starting GORM AutoMigrate...")

	migrator := db.Migrator()
	for _, model := range models.AllModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		existed := migrator.HasTable(model)

		if err := db.AutoMigrate(model); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		if existed {
			log.Debugf("Table already exists: %s", stmt.Schema.Table)
		} else {
			log.Infof("Created table: %s", stmt.Schema.Table)
		}
	}

	log.Infof("GORM AutoMigrate completed successfully")
	return nil
}
