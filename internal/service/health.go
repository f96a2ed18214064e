package service

import (
	"context"
	"math"
	"runtime"
	"time"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/payment"
)

type CheckStatus string

const (
	CheckPass CheckStatus = "pass"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

type HealthStatus string

const (
	Healthy   HealthStatus = "healthy"
	Degraded  HealthStatus = "degraded"
	Unhealthy HealthStatus = "unhealthy"
)

type DatabaseCheck struct {
	Status       CheckStatus `json:"status"`
	ResponseTime int64       `json:"responseTime,omitempty"` // ms
	Error        string      `json:"error,omitempty"`
}

type MemoryCheck struct {
	Status     CheckStatus `json:"status"`
	Usage      uint64      `json:"usage"`
	Total      uint64      `json:"total"`
	Percentage float64     `json:"percentage"`
}

type ServiceCheck struct {
	Status       CheckStatus `json:"status"`
	ResponseTime int64       `json:"responseTime,omitempty"`
	Error        string      `json:"error,omitempty"`
}

type HealthChecks struct {
	Database         DatabaseCheck           `json:"database"`
	Memory           MemoryCheck             `json:"memory"`
	ExternalServices map[string]ServiceCheck `json:"external_services,omitempty"`
}

type HealthReport struct {
	Status      HealthStatus `json:"status"`
	Timestamp   time.Time    `json:"timestamp"`
	Version     string       `json:"version"`
	Environment string       `json:"environment"`
	Uptime      float64      `json:"uptime"` // seconds
	Checks      HealthChecks `json:"checks"`
}

type HealthService struct {
	db      *gorm.DB
	gateway payment.Gateway
	version string
	env     string
	started time.Time

	// memStats is swapped in tests.
	memStats func() (used, total uint64)
}

func NewHealthService(db *gorm.DB, gateway payment.Gateway, version, env string) *HealthService {
	return &HealthService{
		db:       db,
		gateway:  gateway,
		version:  version,
		env:      env,
		started:  time.Now(),
		memStats: heapStats,
	}
}

func heapStats() (uint64, uint64) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc, m.Sys
}

// Check probes the database, memory and, when configured, the payment
// provider. Any failing check makes the service unhealthy; a warning makes
// it degraded.
func (s *HealthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Timestamp:   time.Now().UTC(),
		Version:     s.version,
		Environment: s.env,
		Uptime:      time.Since(s.started).Seconds(),
		Checks: HealthChecks{
			Database: s.checkDatabase(ctx),
			Memory:   s.checkMemory(),
		},
	}
	statuses := []CheckStatus{report.Checks.Database.Status, report.Checks.Memory.Status}

	if s.gateway != nil {
		stripe := s.checkGateway(ctx)
		report.Checks.ExternalServices = map[string]ServiceCheck{"stripe": stripe}
		statuses = append(statuses, stripe.Status)
	}

	report.Status = Healthy
	for _, st := range statuses {
		if st == CheckFail {
			report.Status = Unhealthy
			break
		}
		if st == CheckWarn {
			report.Status = Degraded
		}
	}
	return report
}

func (s *HealthService) checkDatabase(ctx context.Context) DatabaseCheck {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var one int
	if err := s.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return DatabaseCheck{Status: CheckFail, Error: err.Error()}
	}
	return DatabaseCheck{Status: CheckPass, ResponseTime: time.Since(start).Milliseconds()}
}

func (s *HealthService) checkMemory() MemoryCheck {
	used, total := s.memStats()
	var pct float64
	if total > 0 {
		pct = float64(used) / float64(total) * 100
	}

	status := CheckPass
	switch {
	case pct > 90:
		status = CheckFail
	case pct > 80:
		status = CheckWarn
	}
	return MemoryCheck{
		Status:     status,
		Usage:      used,
		Total:      total,
		Percentage: math.Round(pct*100) / 100,
	}
}

func (s *HealthService) checkGateway(ctx context.Context) ServiceCheck {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.gateway.Ping(ctx); err != nil {
		return ServiceCheck{Status: CheckFail, Error: err.Error()}
	}
	return ServiceCheck{Status: CheckPass, ResponseTime: time.Since(start).Milliseconds()}
}
