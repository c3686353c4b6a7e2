package server

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/portfolio-analyzer/internal/database"
)

// SystemHandlers handles system monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	dataDir     string
	startupTime time.Time
	catalogDB   *database.DB
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, dataDir string, catalogDB *database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		dataDir:     dataDir,
		startupTime: time.Now(),
		catalogDB:   catalogDB,
	}
}

// SystemStatusResponse represents the system status response
type SystemStatusResponse struct {
	UptimeSeconds  float64 `json:"uptime_seconds"`
	CPUPercent     float64 `json:"cpu_percent"`
	RAMPercent     float64 `json:"ram_percent"`
	DiskPercent    float64 `json:"disk_percent,omitempty"`
	SecurityCount  int     `json:"security_count"`
	DatabaseHealth string  `json:"database_health"`
	LastChecked    string  `json:"last_checked"`
}

// HandleSystemStatus returns host and database status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	cpuPct, ramPct := h.getSystemStats()

	diskPct := 0.0
	if usage, err := disk.Usage(h.dataDir); err == nil {
		diskPct = usage.UsedPercent
	} else {
		h.log.Warn().Err(err).Str("dir", h.dataDir).Msg("Failed to get disk usage")
	}

	dbHealth := "ok"
	if err := h.catalogDB.HealthCheck(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("Catalog database health check failed")
		dbHealth = "unhealthy"
	}

	var securityCount int
	err := h.catalogDB.Conn().QueryRow(`SELECT COUNT(*) FROM securities`).Scan(&securityCount)
	if err != nil && err != sql.ErrNoRows {
		h.log.Error().Err(err).Msg("Failed to count securities")
	}

	response := SystemStatusResponse{
		UptimeSeconds:  time.Since(h.startupTime).Seconds(),
		CPUPercent:     cpuPct,
		RAMPercent:     ramPct,
		DiskPercent:    diskPct,
		SecurityCount:  securityCount,
		DatabaseHealth: dbHealth,
		LastChecked:    time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// getSystemStats calculates CPU and RAM usage percentages.
// Uses a 100ms sampling interval so the status endpoint stays responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
