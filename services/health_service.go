package services

import (
	"context"
	"database/sql"
	"maroon_shop/structs"
	"runtime"
	"time"

	"github.com/MonkyMars/gecho"
)

var uptimeStart = time.Now()

type ServerHealth struct {
	App           string    `json:"app"`
	Environment   string    `json:"environment"`
	UptimeSeconds float64   `json:"uptimeSeconds"`
	CurrentTime   time.Time `json:"currentTime"`
	Goroutines    int       `json:"goroutines"`
	Memory        *RamStats `json:"memory"`
}

type RamStats struct {
	TotalMB     uint64 `json:"totalMb"`
	UsedMB      uint64 `json:"usedMb"`
	FreeMB      uint64 `json:"freeMb"`
	UsedPercent uint64 `json:"usedPercent"`
}

type DatabaseHealth struct {
	Connected       bool      `json:"connected"`
	Driver          string    `json:"driver,omitempty"`
	LastChecked     time.Time `json:"lastChecked"`
	ResponseTimeMs  int64     `json:"responseTimeMs"`
	OpenConnections int       `json:"openConnections"`
	InUse           int       `json:"inUse"`
}

// Pinger is satisfied by *database.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// poolReporter is the extra detail *database.DB offers.
type poolReporter interface {
	Driver() string
	GetStats() sql.DBStats
}

type HealthService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     Pinger
	cache  *CacheService
}

func NewHealthService(logger *gecho.Logger, cfg *structs.Config, db Pinger, cache *CacheService) *HealthService {
	return &HealthService{
		logger: logger,
		cfg:    cfg,
		db:     db,
		cache:  cache,
	}
}

func getRamStats() *RamStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	totalMB := m.Sys / 1024 / 1024
	usedMB := m.Alloc / 1024 / 1024
	freeMB := totalMB - usedMB
	usedPercent := uint64(0)
	if totalMB > 0 {
		usedPercent = (usedMB * 100) / totalMB
	}

	return &RamStats{
		TotalMB:     totalMB,
		UsedMB:      usedMB,
		FreeMB:      freeMB,
		UsedPercent: usedPercent,
	}
}

func (hs *HealthService) GetServerHealthStatus() ServerHealth {
	return ServerHealth{
		App:           hs.cfg.Server.AppName,
		Environment:   hs.cfg.Server.Environment,
		UptimeSeconds: time.Since(uptimeStart).Seconds(),
		CurrentTime:   time.Now(),
		Goroutines:    runtime.NumGoroutine(),
		Memory:        getRamStats(),
	}
}

func (hs *HealthService) GetDatabaseHealthStatus(ctx context.Context) (DatabaseHealth, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	err := hs.db.PingContext(ctx)

	dbStatus := DatabaseHealth{
		Connected:      err == nil,
		LastChecked:    time.Now(),
		ResponseTimeMs: time.Since(start).Milliseconds(),
	}
	if pool, ok := hs.db.(poolReporter); ok {
		stats := pool.GetStats()
		dbStatus.Driver = pool.Driver()
		dbStatus.OpenConnections = stats.OpenConnections
		dbStatus.InUse = stats.InUse
	}

	if err != nil {
		hs.logger.Error("Database health check failed", gecho.Field("error", err))
	}

	return dbStatus, err
}

// GetCacheHealthStatus pings redis when caching is enabled.
func (hs *HealthService) GetCacheHealthStatus(ctx context.Context) (map[string]any, error) {
	stats := hs.cache.GetConnectionStats()
	if err := hs.cache.Ping(ctx); err != nil {
		hs.logger.Error("Cache health check failed", gecho.Field("error", err))
		stats["connected"] = false
		return stats, err
	}
	stats["connected"] = hs.cache.Enabled()
	return stats, nil
}
