package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/techequipments/engine/internal/api"
	"github.com/techequipments/engine/internal/config"
	"github.com/techequipments/engine/internal/equipment"
	"github.com/techequipments/engine/internal/historian"
	"github.com/techequipments/engine/internal/jobs"
	"github.com/techequipments/engine/internal/session"
	"github.com/techequipments/engine/internal/soe"
	"github.com/techequipments/engine/internal/trend"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := os.Getenv("ENGINE_CONFIG")
	if configPath == "" {
		// Resolve next to the executable
		exePath, err := os.Executable()
		if err != nil {
			fmt.Printf("Failed to get executable path: %v\n", err)
			os.Exit(1)
		}
		configPath = filepath.Join(filepath.Dir(exePath), "EquipmentEngine.config.xml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		fmt.Printf("Failed to load time zone: %v\n", err)
		os.Exit(1)
	}

	// Historian
	histOpts := historian.DefaultOptions()
	histOpts.MemoryLimit = cfg.Advanced.DuckDBMemoryLimit
	histOpts.Threads = cfg.Advanced.DuckDBThreads
	if cfg.Advanced.DuckDBMaxQueries > 0 {
		histOpts.MaxQueries = cfg.Advanced.DuckDBMaxQueries
	}
	hist, err := historian.Open(cfg.Storage.HistorianPath, histOpts)
	if err != nil {
		fmt.Printf("Failed to open historian: %v\n", err)
		os.Exit(1)
	}
	defer hist.Close()

	// Equipment catalog
	catalog, err := equipment.LoadFile(cfg.Storage.EquipmentCatalog)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("Failed to load equipment catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Warning: equipment catalog %s not found, starting empty\n", cfg.Storage.EquipmentCatalog)
		catalog = equipment.NewCatalog(nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Storage.WatchCatalog {
		watcher := equipment.NewWatcher(cfg.Storage.EquipmentCatalog, catalog)
		if err := watcher.Start(ctx); err != nil {
			fmt.Printf("Warning: catalog hot reload disabled: %v\n", err)
		} else {
			defer watcher.Stop()
		}
	}

	series, err := trend.LoadCatalogFile(cfg.Storage.TrendCatalog)
	if err != nil {
		fmt.Printf("Failed to load trend series: %v\n", err)
		os.Exit(1)
	}

	// SOE
	extractor := soe.NewExtractor(hist, catalog,
		soe.WithLocation(loc),
		soe.WithWindow(time.Duration(cfg.Soe.FetchWindowMinutes)*time.Minute))
	jobMgr := jobs.NewManager(extractor, cfg.Soe.MaxConcurrentJobs,
		time.Duration(cfg.Soe.JobTimeoutSeconds)*time.Second)
	defer jobMgr.Close()

	// Trend sessions
	sessionMgr := session.NewManager(session.Deps{
		Source:  hist,
		Tags:    catalog,
		Scale:   catalog,
		Catalog: series,
		Config:  cfg.TrendSettings(loc),
	}, cfg.PollInterval())
	defer sessionMgr.Close()

	go runHousekeeping(ctx, cfg, hist, jobMgr, sessionMgr)

	e := echo.New()
	e.HideBanner = true

	api.ExposeErrorDetails = strings.EqualFold(cfg.Advanced.LogLevel, "debug")
	api.SetupMiddleware(e, api.MiddlewareOptions{
		RequestLogging: cfg.Advanced.EnableRequestLogging,
		EnableCORS:     cfg.Server.EnableCORS,
		AllowOrigins:   splitOrigins(cfg.Server.AllowOrigins),
		BodyLimit:      cfg.Server.BodyLimit,
		RequestTimeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
	})

	handlers := api.NewHandlers(&api.Dependencies{
		Directory:      catalog,
		Series:         series,
		Extractor:      extractor,
		Jobs:           jobMgr,
		Sessions:       sessionMgr,
		Historian:      hist,
		SoeDefaults:    cfg.SoeOptions(),
		Version:        Version,
		WSMaxMessageKB: cfg.Advanced.WebSocketMaxMessageSize,
	})
	api.RegisterRoutes(e, handlers)
	api.RegisterWebSocketRoutes(e, handlers)

	// Configure server with settings from XML config
	s := &http.Server{
		Addr:        cfg.GetServerAddr(),
		ReadTimeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
		IdleTimeout: time.Duration(cfg.Server.IdleTimeout) * time.Second,
		// WriteTimeout stays unset: SSE and WebSocket responses are long-lived
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Equipment Event & Trend Engine                  ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Time Zone:  %-45s║\n", loc.String())
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Historian: %-46s║\n", cfg.Storage.HistorianPath)
	fmt.Printf("║  Equipment: %-46s║\n", fmt.Sprintf("%d (%s)", catalog.Len(), cfg.Storage.EquipmentCatalog))
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	go func() {
		if err := e.StartServer(s); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("Server error: %v\n", err)
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}
}

// runHousekeeping drops idle sessions and finished jobs and prunes old samples.
func runHousekeeping(ctx context.Context, cfg *config.AppConfig, hist *historian.DuckStore, jobMgr *jobs.Manager, sessionMgr *session.Manager) {
	ticker := time.NewTicker(cfg.CleanupInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessionMgr.CleanupOldSessions(time.Duration(cfg.Trend.SessionTimeoutMinutes) * time.Minute)
			jobMgr.CleanupOldJobs(time.Duration(cfg.Soe.JobRetentionMinutes) * time.Minute)

			if days := cfg.Storage.RetentionDays; days > 0 {
				cutoff := time.Now().AddDate(0, 0, -days)
				if n, err := hist.Prune(ctx, cutoff); err != nil {
					fmt.Printf("[Historian] Prune failed: %v\n", err)
				} else if n > 0 {
					fmt.Printf("[Historian] Pruned %d samples older than %s\n", n, cutoff.Format(time.DateOnly))
				}
			}
		}
	}
}

func splitOrigins(s string) []string {
	origins := strings.Split(s, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}
