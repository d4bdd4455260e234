package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"vyapar-backend/internal/cache"
)

// Checker reports liveness and readiness of the service's dependencies
type Checker struct {
	pool    *pgxpool.Pool
	started time.Time
}

func NewChecker(pool *pgxpool.Pool) *Checker {
	return &Checker{pool: pool, started: time.Now()}
}

type Status struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// DetailedStatus adds timings on top of the readiness components
type DetailedStatus struct {
	Status        string            `json:"status"`
	Components    map[string]string `json:"components"`
	DBLatencyMs   int64             `json:"db_latency_ms"`
	UptimeSeconds int64             `json:"uptime_seconds"`
}

// Live always succeeds while the process runs
func (c *Checker) Live() *Status {
	return &Status{Status: "ok"}
}

// Ready pings the database and reports Redis as degraded rather than down
// since the service works without it.
func (c *Checker) Ready(ctx context.Context) *Status {
	components := map[string]string{}
	status := "ok"

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.pool.Ping(pingCtx); err != nil {
		components["database"] = "down"
		status = "unavailable"
	} else {
		components["database"] = "ok"
	}

	if cache.IsHealthy() {
		components["redis"] = "ok"
	} else {
		components["redis"] = "degraded"
	}

	return &Status{Status: status, Components: components}
}

// Detailed runs the readiness checks and adds ping latency and uptime
func (c *Checker) Detailed(ctx context.Context) *DetailedStatus {
	start := time.Now()
	ready := c.Ready(ctx)
	return &DetailedStatus{
		Status:        ready.Status,
		Components:    ready.Components,
		DBLatencyMs:   time.Since(start).Milliseconds(),
		UptimeSeconds: int64(time.Since(c.started).Seconds()),
	}
}
