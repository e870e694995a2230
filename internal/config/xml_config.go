// Package config provides XML-based configuration for the engine service.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/techequipments/engine/internal/soe"
	"github.com/techequipments/engine/internal/trend"
)

// AppConfig represents the root XML configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"EquipmentEngine"`

	Server   ServerConfig   `xml:"Server"`
	Storage  StorageConfig  `xml:"Storage"`
	Soe      SoeConfig      `xml:"Soe"`
	Trend    TrendConfig    `xml:"Trend"`
	Advanced AdvancedConfig `xml:"Advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `xml:"Port"`
	BindAddress  string `xml:"BindAddress"`
	EnableCORS   bool   `xml:"EnableCORS"`
	AllowOrigins string `xml:"AllowOrigins"`
	ReadTimeout  int    `xml:"ReadTimeoutSeconds"`
	WriteTimeout int    `xml:"WriteTimeoutSeconds"`
	IdleTimeout  int    `xml:"IdleTimeoutSeconds"`
	BodyLimit    string `xml:"BodyLimit"`
}

// StorageConfig contains historian and catalog locations
type StorageConfig struct {
	DataDirectory    string `xml:"DataDirectory"`
	HistorianPath    string `xml:"HistorianPath"`
	EquipmentCatalog string `xml:"EquipmentCatalog"`
	TrendCatalog     string `xml:"TrendCatalog"`
	WatchCatalog     bool   `xml:"WatchCatalog"`
	RetentionDays    int    `xml:"RetentionDays"`
}

// SoeConfig contains SOE extraction settings
type SoeConfig struct {
	PerEquipmentCap     int    `xml:"PerEquipmentCap"`
	TotalCap            int    `xml:"TotalCap"`
	StatusItem          string `xml:"StatusItem"`
	ReferenceCategory   string `xml:"ReferenceCategory"`
	FetchWindowMinutes  int    `xml:"FetchWindowMinutes"`
	MaxConcurrentJobs   int    `xml:"MaxConcurrentJobs"`
	JobTimeoutSeconds   int    `xml:"JobTimeoutSeconds"`
	JobRetentionMinutes int    `xml:"JobRetentionMinutes"`
}

// TrendConfig contains live trend settings
type TrendConfig struct {
	WindowMinutes         int     `xml:"WindowMinutes"`
	PollIntervalSeconds   int     `xml:"PollIntervalSeconds"`
	HistoryChunkMinutes   int     `xml:"HistoryChunkMinutes"`
	RetentionHours        int     `xml:"RetentionHours"`
	NavDebounceMs         int     `xml:"NavDebounceMs"`
	EdgeFraction          float64 `xml:"EdgeFraction"`
	SessionTimeoutMinutes int     `xml:"SessionTimeoutMinutes"`
}

// AdvancedConfig contains advanced/tuning options
type AdvancedConfig struct {
	LogLevel                string `xml:"LogLevel"`
	EnableRequestLogging    bool   `xml:"EnableRequestLogging"`
	TimeZone                string `xml:"TimeZone"`
	CleanupIntervalMinutes  int    `xml:"CleanupIntervalMinutes"`
	DuckDBThreads           int    `xml:"DuckDBThreads"`
	DuckDBMemoryLimit       string `xml:"DuckDBMemoryLimit"`
	DuckDBMaxQueries        int    `xml:"DuckDBMaxQueries"`
	WebSocketMaxMessageSize int    `xml:"WebSocketMaxMessageSizeKB"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8089,
			BindAddress:  "0.0.0.0",
			EnableCORS:   true,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
			BodyLimit:    "64M",
		},
		Storage: StorageConfig{
			DataDirectory:    "./data",
			HistorianPath:    "./data/historian.duckdb",
			EquipmentCatalog: "./data/equipment.yaml",
			TrendCatalog:     "./data/trends.yaml",
			WatchCatalog:     true,
			RetentionDays:    30,
		},
		Soe: SoeConfig{
			PerEquipmentCap:     2000,
			TotalCap:            10000,
			StatusItem:          "STW",
			ReferenceCategory:   "TabDIDO",
			FetchWindowMinutes:  60,
			MaxConcurrentJobs:   3,
			JobTimeoutSeconds:   300,
			JobRetentionMinutes: 30,
		},
		Trend: TrendConfig{
			WindowMinutes:         60,
			PollIntervalSeconds:   5,
			HistoryChunkMinutes:   60,
			RetentionHours:        24,
			NavDebounceMs:         250,
			EdgeFraction:          0.15,
			SessionTimeoutMinutes: 30,
		},
		Advanced: AdvancedConfig{
			LogLevel:                "info",
			EnableRequestLogging:    true,
			TimeZone:                "Local",
			CleanupIntervalMinutes:  5,
			DuckDBThreads:           4,
			DuckDBMemoryLimit:       "1GB",
			DuckDBMaxQueries:        8,
			WebSocketMaxMessageSize: 64,
		},
	}
}

// LoadConfig loads configuration from XML file
func LoadConfig(configPath string) (*AppConfig, error) {
	// If file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		config.applyEnvironmentOverrides()
		config.resolvePaths(filepath.Dir(configPath))
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := xml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnvironmentOverrides()
	config.resolvePaths(filepath.Dir(configPath))

	if _, err := config.Location(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves the configuration to XML file
func (c *AppConfig) Save(configPath string) error {
	output, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(xml.Header + "\n<!-- Equipment Event & Trend Engine Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
	content := append(header, output...)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	// a DATA_DIR override moves the default-located files with it
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		old := c.Storage.DataDirectory
		c.Storage.DataDirectory = dataDir
		c.Storage.HistorianPath = rebase(c.Storage.HistorianPath, old, dataDir)
		c.Storage.EquipmentCatalog = rebase(c.Storage.EquipmentCatalog, old, dataDir)
		c.Storage.TrendCatalog = rebase(c.Storage.TrendCatalog, old, dataDir)
	}

	if p := os.Getenv("HISTORIAN_PATH"); p != "" {
		c.Storage.HistorianPath = p
	}
	if p := os.Getenv("EQUIPMENT_CATALOG"); p != "" {
		c.Storage.EquipmentCatalog = p
	}
	if tz := os.Getenv("ENGINE_TZ"); tz != "" {
		c.Advanced.TimeZone = tz
	}
}

func rebase(path, oldDir, newDir string) string {
	rel, err := filepath.Rel(oldDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.Join(newDir, rel)
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	for _, p := range []*string{
		&c.Storage.DataDirectory,
		&c.Storage.HistorianPath,
		&c.Storage.EquipmentCatalog,
		&c.Storage.TrendCatalog,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(configDir, *p)
		}
	}
}

// Location returns the plant time zone.
func (c *AppConfig) Location() (*time.Location, error) {
	switch tz := strings.TrimSpace(c.Advanced.TimeZone); tz {
	case "", "Local":
		return time.Local, nil
	default:
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid time zone %q: %w", tz, err)
		}
		return loc, nil
	}
}

// GetDataDir returns the absolute data directory path
func (c *AppConfig) GetDataDir() string {
	return c.Storage.DataDirectory
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// PollInterval returns the trend poll period.
func (c *AppConfig) PollInterval() time.Duration {
	return time.Duration(c.Trend.PollIntervalSeconds) * time.Second
}

// SoeOptions returns the extraction caps and lookup names.
func (c *AppConfig) SoeOptions() soe.Options {
	return soe.Options{
		PerEquipmentCap: c.Soe.PerEquipmentCap,
		TotalCap:        c.Soe.TotalCap,
		Item:            c.Soe.StatusItem,
		RefCategory:     c.Soe.ReferenceCategory,
	}
}

// TrendSettings returns the controller configuration for loc.
func (c *AppConfig) TrendSettings(loc *time.Location) trend.Config {
	cfg := trend.DefaultConfig()
	if c.Trend.WindowMinutes > 0 {
		cfg.WindowMinutes = c.Trend.WindowMinutes
	}
	if c.Trend.HistoryChunkMinutes > 0 {
		cfg.HistoryChunk = time.Duration(c.Trend.HistoryChunkMinutes) * time.Minute
	}
	if c.Trend.RetentionHours > 0 {
		cfg.RetentionHours = c.Trend.RetentionHours
	}
	if c.Trend.NavDebounceMs > 0 {
		cfg.NavDebounce = time.Duration(c.Trend.NavDebounceMs) * time.Millisecond
	}
	if c.Trend.EdgeFraction > 0 {
		cfg.EdgeFraction = c.Trend.EdgeFraction
	}
	if loc != nil {
		cfg.Location = loc
	}
	return cfg
}

// CleanupInterval returns the period of the session and job sweeper.
func (c *AppConfig) CleanupInterval() time.Duration {
	if c.Advanced.CleanupIntervalMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Advanced.CleanupIntervalMinutes) * time.Minute
}

// EnsureDirectories creates all necessary directories
func (c *AppConfig) EnsureDirectories() error {
	dirs := []string{
		c.Storage.DataDirectory,
		filepath.Dir(c.Storage.HistorianPath),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
