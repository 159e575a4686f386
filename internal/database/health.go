package database

import (
	"context"
	"time"
)

// Health status values.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthStatus reports the current state of the database connection.
type HealthStatus struct {
	Status    string        `json:"status"`
	Latency   time.Duration `json:"latency"`
	OpenConns int           `json:"open_connections"`
	InUse     int           `json:"in_use"`
	Error     string        `json:"error,omitempty"`
}

// Health pings the database and returns a snapshot of connection state.
func (m *Manager) Health(ctx context.Context) *HealthStatus {
	start := time.Now()
	stats := m.db.Stats()

	status := &HealthStatus{
		Status:    StatusHealthy,
		OpenConns: stats.OpenConnections,
		InUse:     stats.InUse,
	}

	if err := m.db.PingContext(ctx); err != nil {
		status.Status = StatusUnhealthy
		status.Error = err.Error()
	}
	status.Latency = time.Since(start)

	return status
}
