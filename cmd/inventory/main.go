package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mytheresa/go-inventory/app/console"
	"github.com/mytheresa/go-inventory/app/inventory"
	"github.com/mytheresa/go-inventory/app/menu"
	"github.com/mytheresa/go-inventory/config"
	"github.com/mytheresa/go-inventory/database"
	"github.com/mytheresa/go-inventory/models"
	"github.com/mytheresa/go-inventory/models/memory"
	"github.com/mytheresa/go-inventory/pkg/logger"
)

func main() {
	// Command line flags
	var (
		migrate = flag.Bool("migrate", true, "Create or update the tables before starting")
		seed    = flag.Bool("seed", false, "Load demo categories and products into an empty store")
		help    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	if err := run(*migrate, *seed); err != nil {
		logger.NewSlogLogger().Errorf(err, "Inventory stopped")
		os.Exit(1)
	}
}

func run(migrate, seed bool) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.App.LogLevel, os.Stderr)
	log.Debugf("Environment: %s", cfg.App.Environment)

	ctx := context.Background()

	var store inventory.Store
	if cfg.Database.Driver == config.DriverMemory {
		log.Warnf("Using the in-memory store, nothing will be kept after exit")
		store = memory.NewStore()
	} else {
		db, err := database.Open(&cfg.Database, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := database.Close(db); err != nil {
				log.Errorf(err, "Failed to close database")
			}
		}()

		if migrate {
			if err := database.AutoMigrate(db, log); err != nil {
				return err
			}
		}
		store = models.NewStore(db)
	}

	if seed {
		if _, err := database.Seed(ctx, store, log); err != nil {
			return err
		}
	}

	ui := console.NewTerminal(os.Stdin, os.Stdout)
	ui.Color = true

	return menu.New(menu.Default(), log).Run(ctx, store, ui)
}

func showHelp() {
	fmt.Println("Inventory manager")
	fmt.Println()
	fmt.Println("Usage: inventory [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Environment (also read from .env):")
	fmt.Println("  DB_DRIVER      sqlite (default), postgres or memory")
	fmt.Println("  SQLITE_PATH    sqlite database file (default inventory.sqlite3)")
	fmt.Println("  DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE")
	fmt.Println("  DB_PG_DRIVER   pgx (default) or pq")
	fmt.Println("  DB_QUERY_LOG   log every SQL statement at debug level")
	fmt.Println("  LOG_LEVEL      debug, info (default), warn or error")
	fmt.Println("  APP_ENV        environment name")
}
