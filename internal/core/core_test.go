package core

import (
	"sync"
	"testing"
	"time"

	"github.com/statuscore/livequery/internal/table"
)

func testCore(t *testing.T) *Core {
	t.Helper()
	c := New()

	hosts := []*Host{
		{Name: "web01", Alias: "Web 1", Address: "10.0.1.11", State: HostUp,
			PluginOutput: "PING OK", MaxAttempts: 3, ContactGroups: []string{"web-ops"}},
		{Name: "db01", Alias: "Database", Address: "10.0.2.21", State: HostDown,
			PluginOutput: "PING CRITICAL", MaxAttempts: 5},
	}
	for _, h := range hosts {
		if err := c.AddHost(h); err != nil {
			t.Fatalf("AddHost(%s) failed: %v", h.Name, err)
		}
	}

	svcs := map[string][]*Service{
		"web01": {
			{Description: "HTTP", State: ServiceOK, PluginOutput: "OK - 200"},
			{Description: "CPU load", State: ServiceWarning, PluginOutput: "WARN - load 4.2"},
		},
		"db01": {
			{Description: "PostgreSQL", State: ServiceCritical, PluginOutput: "CRITICAL - no connection"},
		},
	}
	for host, list := range svcs {
		for _, s := range list {
			if err := c.AddService(host, s); err != nil {
				t.Fatalf("AddService(%s/%s) failed: %v", host, s.Description, err)
			}
		}
	}
	return c
}

func TestAddRejectsDuplicates(t *testing.T) {
	c := testCore(t)

	if err := c.AddHost(&Host{Name: "web01"}); err == nil {
		t.Errorf("duplicate host should be rejected")
	}
	if err := c.AddService("web01", &Service{Description: "HTTP"}); err == nil {
		t.Errorf("duplicate service should be rejected")
	}
	if err := c.AddService("ghost", &Service{Description: "HTTP"}); err == nil {
		t.Errorf("service on unknown host should be rejected")
	}
}

func TestApplyCheckResult(t *testing.T) {
	c := testCore(t)

	err := c.ApplyCheckResult(CheckResult{
		Host: "web01", State: HostDown, Output: "PING CRITICAL - 100% loss", Latency: 0.04,
	}, time.Minute)
	if err != nil {
		t.Fatalf("ApplyCheckResult failed: %v", err)
	}

	h := c.index["web01"]
	if h.State != HostDown {
		t.Errorf("host state = %d, want %d", h.State, HostDown)
	}
	if h.PluginOutput != "PING CRITICAL - 100% loss" {
		t.Errorf("plugin output = %q", h.PluginOutput)
	}
	if h.CurrentAttempt != 1 {
		t.Errorf("first failure should be attempt 1, got %d", h.CurrentAttempt)
	}

	// Repeated failures advance the attempt up to the maximum
	for i := 0; i < 5; i++ {
		if err := c.ApplyCheckResult(CheckResult{Host: "web01", State: HostDown, Output: "still down"}, time.Minute); err != nil {
			t.Fatalf("ApplyCheckResult failed: %v", err)
		}
	}
	if h.CurrentAttempt != h.MaxAttempts {
		t.Errorf("attempt = %d, want capped at %d", h.CurrentAttempt, h.MaxAttempts)
	}

	// Recovery resets the attempt counter
	if err := c.ApplyCheckResult(CheckResult{Host: "web01", State: HostUp, Output: "PING OK"}, time.Minute); err != nil {
		t.Fatalf("ApplyCheckResult failed: %v", err)
	}
	if h.CurrentAttempt != 1 {
		t.Errorf("attempt after recovery = %d, want 1", h.CurrentAttempt)
	}

	if err := c.ApplyCheckResult(CheckResult{Host: "nope", State: HostUp}, time.Minute); err == nil {
		t.Errorf("check result for unknown host should be rejected")
	}
	if err := c.ApplyCheckResult(CheckResult{Host: "web01", Service: "nope", State: ServiceOK}, time.Minute); err == nil {
		t.Errorf("check result for unknown service should be rejected")
	}
}

func TestScans(t *testing.T) {
	c := testCore(t)

	var hostNames []string
	c.ScanHosts(func(rec table.Record) bool {
		hostNames = append(hostNames, rec.StringAt(HostSlotName))
		return true
	})
	want := []string{"web01", "db01"}
	if len(hostNames) != len(want) {
		t.Fatalf("scanned %d hosts, want %d", len(hostNames), len(want))
	}
	for i := range want {
		if hostNames[i] != want[i] {
			t.Errorf("host[%d] = %q, want %q (scan order = registration order)", i, hostNames[i], want[i])
		}
	}

	var svcCount int
	c.ScanServices(func(rec table.Record) bool {
		svcCount++
		return true
	})
	if svcCount != 3 {
		t.Errorf("scanned %d services, want 3", svcCount)
	}

	hosts, services := c.Counts()
	if hosts != 2 || services != 3 {
		t.Errorf("Counts() = (%d, %d), want (2, 3)", hosts, services)
	}
}

func TestServiceHostIndirection(t *testing.T) {
	c := testCore(t)

	c.ScanServices(func(rec table.Record) bool {
		host := rec.RefAt(ServiceSlotHost)
		if host == nil {
			t.Fatalf("service has no host ref")
		}
		// The ref must reach the owning host's own live fields
		name := host.StringAt(HostSlotName)
		if name != "web01" && name != "db01" {
			t.Errorf("host ref resolved to unexpected name %q", name)
		}
		return true
	})
}

func TestTablesRegisterAndValidate(t *testing.T) {
	c := testCore(t)

	reg, err := Tables(c)
	if err != nil {
		t.Fatalf("Tables failed: %v", err)
	}

	for _, name := range []string{"hosts", "services"} {
		tbl, ok := reg.Table(name)
		if !ok {
			t.Fatalf("table %q not registered", name)
		}
		if len(tbl.Columns()) == 0 {
			t.Errorf("table %q has no columns", name)
		}
	}

	// num_services is computed from the live services list
	hostsTable, _ := reg.Table("hosts")
	col, ok := hostsTable.Column("num_services")
	if !ok {
		t.Fatalf("hosts table has no num_services column")
	}
	var got []string
	hostsTable.Scan(func(rec table.Record) bool {
		got = append(got, col.ValueAsString(rec))
		return true
	})
	if got[0] != "2" || got[1] != "1" {
		t.Errorf("num_services = %v, want [2 1]", got)
	}

	// host_name on services reaches through the ref slot
	svcTable, _ := reg.Table("services")
	hostName, ok := svcTable.Column("host_name")
	if !ok {
		t.Fatalf("services table has no host_name column")
	}
	svcTable.Scan(func(rec table.Record) bool {
		name := hostName.ValueAsString(rec)
		if name == "" {
			t.Errorf("host_name resolved empty")
		}
		return true
	})
}

func TestConcurrentScansDuringWrites(t *testing.T) {
	c := testCore(t)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			state := int64(i % 2)
			_ = c.ApplyCheckResult(CheckResult{Host: "web01", State: state, Output: "flap"}, time.Minute)
		}
	}()

	for i := 0; i < 50; i++ {
		c.ScanHosts(func(rec table.Record) bool {
			// A scan holds the read lock: state and output must agree
			state := rec.IntAt(HostSlotState)
			if state != HostUp && state != HostDown {
				t.Errorf("unexpected state %d", state)
			}
			return true
		})
	}
	close(stop)
	wg.Wait()
}
