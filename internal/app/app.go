package app

import (
	"server/config"
	"server/internal/database"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/services"
	"time"

	bankInfoController "server/internal/controllers/bankinfo"
	contactController "server/internal/controllers/contact"
	contractController "server/internal/controllers/contracts"
	conversionController "server/internal/controllers/conversions"
)

type App struct {
	Database database.DB
	Config   config.Config

	// Services
	TransactionService *services.TransactionService
	WriteLockService   *services.WriteLockService
	UpsertService      *services.UpsertService
	Mailer             services.Mailer

	// Repositories
	SheetRepo repositories.SheetRepository

	// Controllers
	ContractController   *contractController.ContractController
	BankInfoController   *bankInfoController.BankInfoController
	ConversionController *conversionController.ConversionReportController
	ContactController    *contactController.ContactController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)
	writeLockService := services.NewWriteLockService(
		time.Duration(config.WriteLockTimeoutSeconds) * time.Second,
	)
	mailer := services.NewMailer(config)

	// Initialize repositories
	sheetRepo := repositories.NewSheet(db)

	upsertService := services.NewUpsertService(sheetRepo, transactionService)

	// Initialize controllers with repositories and services
	contractController := contractController.New(sheetRepo, upsertService, transactionService, config)
	bankInfoController := bankInfoController.New(sheetRepo, upsertService, db.Cache.BankInfo, config)
	conversionController := conversionController.New(sheetRepo, config)
	contactController := contactController.New(mailer, config)

	app := &App{
		Database:             db,
		Config:               config,
		TransactionService:   transactionService,
		WriteLockService:     writeLockService,
		UpsertService:        upsertService,
		Mailer:               mailer,
		SheetRepo:            sheetRepo,
		ContractController:   contractController,
		BankInfoController:   bankInfoController,
		ConversionController: conversionController,
		ContactController:    contactController,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.TransactionService,
		a.WriteLockService,
		a.UpsertService,
		a.Mailer,
		a.SheetRepo,
		a.ContractController,
		a.BankInfoController,
		a.ConversionController,
		a.ContactController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
