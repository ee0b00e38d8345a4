package main

import (
	"fmt"
	"time"

	"github.com/statuscore/livequery/internal/core"
)

// seedDemoObjects loads a small fixed object configuration so the daemon
// is queryable out of the box. A real deployment would read the host
// core's configuration instead.
func seedDemoObjects(c *core.Core) error {
	now := time.Now()

	hosts := []*core.Host{
		{
			Name: "web01", Alias: "Web frontend 1", Address: "10.0.1.11",
			State: core.HostUp, PluginOutput: "PING OK - Packet loss = 0%",
			CurrentAttempt: 1, MaxAttempts: 3,
			LastCheck: now, NextCheck: now.Add(time.Minute),
			ContactGroups: []string{"web-ops", "on-call"},
		},
		{
			Name: "web02", Alias: "Web frontend 2", Address: "10.0.1.12",
			State: core.HostUp, PluginOutput: "PING OK - Packet loss = 0%",
			CurrentAttempt: 1, MaxAttempts: 3,
			LastCheck: now, NextCheck: now.Add(time.Minute),
			ContactGroups: []string{"web-ops", "on-call"},
		},
		{
			Name: "db01", Alias: "Primary database", Address: "10.0.2.21",
			State: core.HostUp, PluginOutput: "PING OK - Packet loss = 0%",
			CurrentAttempt: 1, MaxAttempts: 5,
			LastCheck: now, NextCheck: now.Add(time.Minute),
			ContactGroups: []string{"db-ops", "on-call"},
			Notes:         "failover partner of db02",
		},
	}
	for _, h := range hosts {
		if err := c.AddHost(h); err != nil {
			return fmt.Errorf("seed host: %w", err)
		}
	}

	services := map[string][]string{
		"web01": {"HTTP", "HTTPS", "CPU load"},
		"web02": {"HTTP", "HTTPS", "CPU load"},
		"db01":  {"PostgreSQL", "Disk /var/lib", "CPU load"},
	}
	for hostName, descs := range services {
		for _, desc := range descs {
			svc := &core.Service{
				Description:    desc,
				State:          core.ServiceOK,
				PluginOutput:   fmt.Sprintf("OK - %s within thresholds", desc),
				CurrentAttempt: 1, MaxAttempts: 3,
				LastCheck: now, NextCheck: now.Add(time.Minute),
				ContactGroups: []string{"on-call"},
			}
			if err := c.AddService(hostName, svc); err != nil {
				return fmt.Errorf("seed service: %w", err)
			}
		}
	}
	return nil
}
