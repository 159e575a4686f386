// file: internal/monitoring/monitoring.go
package monitoring

import (
	"encoding/json"
	"net/http"
	"time"

	"vidtube/internal/cache"
	"vidtube/internal/database"

	"go.uber.org/zap"
)

// Status is the operational snapshot served to operators.
type Status struct {
	Environment string                 `json:"environment"`
	UptimeSecs  float64                `json:"uptime_seconds"`
	Database    *database.HealthStatus `json:"database"`
	CacheOK     bool                   `json:"cache_ok"`
	DBPool      PoolStats              `json:"db_pool"`
	Timestamp   time.Time              `json:"timestamp"`
}

// PoolStats summarizes connection pool pressure.
type PoolStats struct {
	OpenConnections int `json:"open_connections"`
	InUse           int `json:"in_use"`
	Idle            int `json:"idle"`
}

// Dashboard exposes operational state over HTTP.
type Dashboard struct {
	db          *database.Manager
	cache       cache.Cache
	environment string
	startedAt   time.Time
	logger      *zap.Logger
}

// NewDashboard creates an operational status endpoint.
func NewDashboard(db *database.Manager, cacheStore cache.Cache, environment string, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		db:          db,
		cache:       cacheStore,
		environment: environment,
		startedAt:   time.Now(),
		logger:      logger,
	}
}

// StatusHandler handles GET /debug/status
func (d *Dashboard) StatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dbHealth := d.db.Health(ctx)

	status := Status{
		Environment: d.environment,
		UptimeSecs:  time.Since(d.startedAt).Seconds(),
		Database:    dbHealth,
		CacheOK:     d.cache.Health(ctx) == nil,
		Timestamp:   time.Now().UTC(),
	}
	poolStats := d.db.Stats()
	status.DBPool = PoolStats{
		OpenConnections: poolStats.OpenConnections,
		InUse:           poolStats.InUse,
		Idle:            poolStats.Idle,
	}

	code := http.StatusOK
	if dbHealth.Status != database.StatusHealthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		d.logger.Error("Failed to encode status", zap.Error(err))
	}
}
