package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"hallwaymonitor/internal/config"
	"hallwaymonitor/internal/detect"
	"hallwaymonitor/internal/handlers"
	"hallwaymonitor/internal/hub"
	"hallwaymonitor/internal/logger"
	"hallwaymonitor/internal/repository/sqlite"
	"hallwaymonitor/internal/routes"
	"hallwaymonitor/internal/settings"
)

type App struct {
	config   *config.Config
	logger   *logger.Logger
	db       *sqlite.DB
	sessions *sqlite.SessionRepository
	store    *settings.Store
	hub      *hub.Hub
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg.LogDirectory)

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := settings.NewStore(settings.Values{
		ZoneFraction:   cfg.ZoneFraction,
		AlertThreshold: cfg.AlertThreshold,
	})

	return &App{
		config:   cfg,
		logger:   log,
		db:       db,
		sessions: sqlite.NewSessionRepository(db),
		store:    store,
		hub:      hub.New(log),
	}, nil
}

func (a *App) Run() error {
	defer a.db.Close()

	go a.hub.Run()

	newDetector := func() (detect.DetectorTracker, error) {
		return detect.NewDNNDetector(a.config.ModelPath, a.config.ConfigPath, a.logger)
	}

	router := routes.SetupRoutes(newDetector, a.store, a.hub, a.sessions, a.config, a.logger)

	fmt.Printf("🚀 Hallway Zone Monitor\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("🔑 Password: %s\n", a.config.Password)
	fmt.Printf("📁 Uploads: %s\n", a.config.UploadDirectory)
	fmt.Printf("🤖 AI Model: %s\n", a.config.ModelPath)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}
