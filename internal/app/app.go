package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MikelBai/Bank-management-application/internal/cash"
	"github.com/MikelBai/Bank-management-application/internal/config"
	"github.com/MikelBai/Bank-management-application/internal/engine"
	"github.com/MikelBai/Bank-management-application/internal/exchange"
	"github.com/MikelBai/Bank-management-application/internal/extfiles"
	"github.com/MikelBai/Bank-management-application/internal/postgres"
	"github.com/MikelBai/Bank-management-application/internal/requests"
	"github.com/MikelBai/Bank-management-application/internal/service"
	"github.com/MikelBai/Bank-management-application/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	Config *config.Config
	DB     *sql.DB

	Users       *service.UserService
	Accounts    *service.AccountService
	Teller      *service.TellerService
	Coordinator *requests.Coordinator
	Snapshots   *service.SnapshotService
}

func New(cfg *config.Config) (*App, error) {
	inventory := cash.New(extfiles.NewAlertWriter(cfg.AlertsFile))
	accounts := service.NewAccountService()

	rates := exchange.New(cfg.ExchangeRateURL)
	outgoing := extfiles.NewOutgoingWriter(cfg.OutgoingFile)
	eng := engine.New(accounts, inventory, rates, outgoing)

	users := service.NewUserService(cfg)
	teller := service.NewTellerService(accounts, eng, inventory)
	coordinator := requests.NewCoordinator(eng)

	app := &App{
		Config:      cfg,
		Users:       users,
		Accounts:    accounts,
		Teller:      teller,
		Coordinator: coordinator,
	}

	if cfg.DatabaseURL == "" {
		logger.Log.Info("no database configured, state snapshots disabled")
		return app, nil
	}

	db, err := initDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	app.DB = db

	store := postgres.New(db)
	if err := store.EnsureSchema(context.Background()); err != nil {
		return nil, err
	}
	app.Snapshots = service.NewSnapshotService(store, users, accounts, teller, inventory)

	return app, nil
}

func initDB(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err = db.Ping(); err != nil {
		err := db.Close()
		if err != nil {
			return nil, fmt.Errorf("error closing database after ping failure: %w", err)
		}
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return db, nil
}

// Run restores the latest snapshot before the server starts taking traffic.
func (app *App) Run(ctx context.Context) error {
	if app.Snapshots == nil {
		return nil
	}
	return app.Snapshots.Restore(ctx)
}

// Shutdown persists a final snapshot and releases the database.
func (app *App) Shutdown(ctx context.Context) error {
	if app.Snapshots == nil {
		return nil
	}

	if err := app.Snapshots.Save(ctx); err != nil {
		return err
	}
	return app.DB.Close()
}
