package monitoring

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"vyapar-backend/pkg/utils"
)

// Server exposes host and database stats on a separate port so the ops
// view never competes with API traffic.
type Server struct {
	db        *pgxpool.Pool
	port      int
	startedAt time.Time
}

func NewServer(db *pgxpool.Pool, port int) *Server {
	return &Server{db: db, port: port, startedAt: time.Now()}
}

type Stats struct {
	DatabaseStatus    string  `json:"database_status"`
	ActiveConnections int     `json:"active_connections"`
	IdleConnections   int     `json:"idle_connections"`
	DBResponseTimeMs  int64   `json:"db_response_time_ms"`
	DBSize            string  `json:"db_size"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	MemoryUsed        string  `json:"memory_used"`
	MemoryTotal       string  `json:"memory_total"`
	DiskPercent       float64 `json:"disk_percent"`
	DiskUsed          string  `json:"disk_used"`
	DiskTotal         string  `json:"disk_total"`
	Uptime            string  `json:"uptime"`
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

func (s *Server) collect(ctx context.Context) *Stats {
	stats := &Stats{Uptime: time.Since(s.startedAt).Round(time.Second).String()}

	start := time.Now()
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.db.Ping(pingCtx); err != nil {
		stats.DatabaseStatus = "down"
	} else {
		stats.DatabaseStatus = "ok"
		stats.DBResponseTimeMs = time.Since(start).Milliseconds()
	}

	poolStats := s.db.Stat()
	stats.ActiveConnections = int(poolStats.AcquiredConns())
	stats.IdleConnections = int(poolStats.IdleConns())

	var dbSize string
	if err := s.db.QueryRow(ctx,
		`SELECT pg_size_pretty(pg_database_size(current_database()))`).Scan(&dbSize); err == nil {
		stats.DBSize = dbSize
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
		stats.MemoryUsed = formatBytes(vm.Used)
		stats.MemoryTotal = formatBytes(vm.Total)
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
		stats.DiskUsed = formatBytes(du.Used)
		stats.DiskTotal = formatBytes(du.Total)
	}

	return stats
}

// Start blocks serving the monitoring endpoints. Run it in a goroutine.
func (s *Server) Start() error {
	r := mux.NewRouter()
	r.HandleFunc("/stats", func(w http.ResponseWriter, req *http.Request) {
		utils.JSON(w, http.StatusOK, s.collect(req.Context()))
	}).Methods("GET")

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("[Monitoring] Serving stats on %s", addr)
	return http.ListenAndServe(addr, r)
}
