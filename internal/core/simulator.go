package core

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// Simulator stands in for a real check scheduler: it periodically applies
// synthetic check results so live queries observe state changing under
// them. Used by the demo daemon only.
type Simulator struct {
	core     *Core
	interval time.Duration
	rng      *rand.Rand
}

func NewSimulator(c *Core, interval time.Duration) *Simulator {
	return &Simulator{
		core:     c,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run applies one batch of results per tick until the context is done.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Simulator) tick() {
	targets := s.pickTargets()
	for _, r := range targets {
		if err := s.core.ApplyCheckResult(r, s.interval); err != nil {
			slog.Error("simulator: apply check result failed", "error", err)
			continue
		}
		slog.Debug("simulator: check applied",
			"host", r.Host, "service", r.Service, "state", r.State)
	}
}

// pickTargets chooses a few random objects and rolls a mostly-healthy
// state for each.
func (s *Simulator) pickTargets() []CheckResult {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	var results []CheckResult
	for i := 0; i < 3 && len(s.core.hosts) > 0; i++ {
		h := s.core.hosts[s.rng.Intn(len(s.core.hosts))]

		if len(h.Services) > 0 && s.rng.Intn(2) == 0 {
			svc := h.Services[s.rng.Intn(len(h.Services))]
			state := s.rollServiceState()
			results = append(results, CheckResult{
				Host:    h.Name,
				Service: svc.Description,
				State:   state,
				Output:  serviceOutput(state, svc.Description),
				Latency: s.rng.Float64() * 0.25,
			})
			continue
		}

		state := s.rollHostState()
		results = append(results, CheckResult{
			Host:    h.Name,
			State:   state,
			Output:  hostOutput(state),
			Latency: s.rng.Float64() * 0.1,
		})
	}
	return results
}

func (s *Simulator) rollHostState() int64 {
	if s.rng.Intn(10) == 0 {
		return HostDown
	}
	return HostUp
}

func (s *Simulator) rollServiceState() int64 {
	switch s.rng.Intn(12) {
	case 0:
		return ServiceCritical
	case 1, 2:
		return ServiceWarning
	default:
		return ServiceOK
	}
}

func hostOutput(state int64) string {
	if state == HostUp {
		return "PING OK - Packet loss = 0%"
	}
	return "PING CRITICAL - Packet loss = 100%"
}

func serviceOutput(state int64, description string) string {
	switch state {
	case ServiceOK:
		return fmt.Sprintf("OK - %s within thresholds", description)
	case ServiceWarning:
		return fmt.Sprintf("WARN - %s above warning threshold", description)
	default:
		return fmt.Sprintf("CRITICAL - %s check failed", description)
	}
}
