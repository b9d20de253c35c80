package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/andy/labourcost/internal/config"
	"github.com/andy/labourcost/internal/crypto"
	"github.com/andy/labourcost/internal/db"
	"github.com/andy/labourcost/internal/repository"
	"github.com/andy/labourcost/internal/service"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	EmployeeRepo  repository.EmployeeRepository
	TimesheetRepo repository.TimesheetRepository
	RunRepo       repository.PayrollRunRepository

	// Services
	PayrollService service.PayrollService
	ReportService  service.ReportService
}

// New loads the default config and builds the App from it
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger := NewLogger(cfg)

	keyring := crypto.NewKeyring()
	if !keyring.IsAvailable() {
		logger.Debug("keyring unavailable", "fallback", crypto.EnvKey)
	}
	password, err := keyring.GetKey()
	if err != nil {
		logger.Debug("no stored encryption key", "error", err)

		fmt.Println("Setting up database encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		if err := keyring.SetKey(password); err != nil {
			return nil, fmt.Errorf("failed to store encryption key: %w", err)
		}
	}

	return open(cfg, password, logger)
}

// NewWithPassword skips the keyring and opens the database with the given key
func NewWithPassword(cfg *config.Config, password string) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}
	return open(cfg, password, NewLogger(cfg))
}

func open(cfg *config.Config, password string, logger *slog.Logger) (*App, error) {
	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Debug("database ready", "path", cfg.Database.Path)

	employeeRepo := repository.NewEmployeeRepo(database)
	timesheetRepo := repository.NewTimesheetRepo(database)
	runRepo := repository.NewPayrollRunRepo(database)

	return &App{
		Config:         cfg,
		DB:             database,
		Logger:         logger,
		EmployeeRepo:   employeeRepo,
		TimesheetRepo:  timesheetRepo,
		RunRepo:        runRepo,
		PayrollService: service.NewPayrollService(employeeRepo, timesheetRepo, runRepo, logger),
		ReportService:  service.NewReportService(employeeRepo, timesheetRepo, runRepo),
	}, nil
}

// NewLogger builds the stderr text logger at the configured level
func NewLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}

// Close cleanly shuts down the application. Calling it twice is safe.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	err := a.DB.Close()
	a.DB = nil
	return err
}

// promptForPassword reads a new database password twice without echo
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Payroll data will be encrypted with a password.")
	fmt.Println("The password is kept in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured")
	fmt.Println()

	return string(password), nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
