package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/statuscore/livequery/internal/table"
)

// Core owns the live monitoring state. It is the one shared resource of
// the system: checks mutate it under the write lock, query scans read it
// under the read lock for their whole duration, so every scan sees a
// consistent snapshot without the column layer doing any locking itself.
type Core struct {
	mu    sync.RWMutex
	hosts []*Host // scan order = registration order
	index map[string]*Host
}

func New() *Core {
	return &Core{index: make(map[string]*Host)}
}

// AddHost registers a host. Hosts are added during configuration load,
// before the server starts accepting queries.
func (c *Core) AddHost(h *Host) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.index[h.Name]; dup {
		return fmt.Errorf("duplicate host %q", h.Name)
	}
	c.hosts = append(c.hosts, h)
	c.index[h.Name] = h
	return nil
}

// AddService attaches a service to an existing host.
func (c *Core) AddService(hostName string, s *Service) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.index[hostName]
	if !ok {
		return fmt.Errorf("service %q: unknown host %q", s.Description, hostName)
	}
	for _, existing := range h.Services {
		if existing.Description == s.Description {
			return fmt.Errorf("duplicate service %q on host %q", s.Description, hostName)
		}
	}
	s.Host = h
	h.Services = append(h.Services, s)
	return nil
}

// CheckResult is one check execution outcome applied to the live state.
type CheckResult struct {
	Host    string
	Service string // empty for a host check
	State   int64
	Output  string
	Latency float64
}

// ApplyCheckResult mutates the addressed host or service under the write
// lock. Unknown targets are reported, not created: object configuration
// is fixed at startup.
func (c *Core) ApplyCheckResult(r CheckResult, interval time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.index[r.Host]
	if !ok {
		return fmt.Errorf("check result for unknown host %q", r.Host)
	}

	now := time.Now()
	if r.Service == "" {
		h.State = r.State
		h.PluginOutput = r.Output
		h.Latency = r.Latency
		h.LastCheck = now
		h.NextCheck = now.Add(interval)
		advanceAttempt(&h.CurrentAttempt, h.MaxAttempts, r.State == HostUp)
		return nil
	}

	for _, s := range h.Services {
		if s.Description == r.Service {
			s.State = r.State
			s.PluginOutput = r.Output
			s.Latency = r.Latency
			s.LastCheck = now
			s.NextCheck = now.Add(interval)
			advanceAttempt(&s.CurrentAttempt, s.MaxAttempts, r.State == ServiceOK)
			return nil
		}
	}
	return fmt.Errorf("check result for unknown service %q on host %q", r.Service, r.Host)
}

func advanceAttempt(attempt *int64, max int64, ok bool) {
	if ok {
		*attempt = 1
		return
	}
	if *attempt < max {
		*attempt++
	}
}

// ScanHosts walks all hosts under the read lock.
func (c *Core) ScanHosts(yield func(table.Record) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, h := range c.hosts {
		if !yield(h) {
			return
		}
	}
}

// ScanServices walks all services, grouped by host, under the read lock.
func (c *Core) ScanServices(yield func(table.Record) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, h := range c.hosts {
		for _, s := range h.Services {
			if !yield(s) {
				return
			}
		}
	}
}

// Counts reports the object population, for startup logging.
func (c *Core) Counts() (hosts, services int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hosts = len(c.hosts)
	for _, h := range c.hosts {
		services += len(h.Services)
	}
	return hosts, services
}
