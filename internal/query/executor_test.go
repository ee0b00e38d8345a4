package query

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/statuscore/livequery/internal/core"
)

func testExecutor(t *testing.T) *Executor {
	t.Helper()

	c := core.New()
	lastCheck := time.Unix(1700000000, 0)

	hosts := []*core.Host{
		{Name: "web01", Alias: "Web 1", Address: "10.0.1.11", State: core.HostUp,
			PluginOutput: "PING OK - Packet loss = 0%", MaxAttempts: 3,
			CurrentAttempt: 1, LastCheck: lastCheck,
			ContactGroups: []string{"web-ops", "on-call"}},
		{Name: "web02", Alias: "Web 2", Address: "10.0.1.12", State: core.HostDown,
			PluginOutput: "PING CRITICAL - Packet loss = 100%", MaxAttempts: 3,
			CurrentAttempt: 2, LastCheck: lastCheck,
			ContactGroups: []string{"web-ops"}},
		{Name: "db01", Alias: "Database", Address: "10.0.2.21", State: core.HostUp,
			PluginOutput: "PING OK - Packet loss = 0%", MaxAttempts: 5,
			CurrentAttempt: 1, LastCheck: lastCheck},
	}
	for _, h := range hosts {
		if err := c.AddHost(h); err != nil {
			t.Fatalf("AddHost failed: %v", err)
		}
	}
	for _, s := range []struct {
		host string
		svc  *core.Service
	}{
		{"web01", &core.Service{Description: "HTTP", State: core.ServiceOK, PluginOutput: "OK - 200"}},
		{"web01", &core.Service{Description: "CPU load", State: core.ServiceWarning, PluginOutput: "WARN - load 4.2"}},
		{"db01", &core.Service{Description: "PostgreSQL", State: core.ServiceCritical, PluginOutput: "CRITICAL - no connection"}},
	} {
		if err := c.AddService(s.host, s.svc); err != nil {
			t.Fatalf("AddService failed: %v", err)
		}
	}

	reg, err := core.Tables(c)
	if err != nil {
		t.Fatalf("Tables failed: %v", err)
	}
	return NewExecutor(reg)
}

func TestExecuteCSV(t *testing.T) {
	e := testExecutor(t)

	resp := e.Execute("GET hosts\nColumns: name state plugin_output\n")
	if resp.Code != StatusOK {
		t.Fatalf("code = %d, body = %s", resp.Code, resp.Body)
	}

	want := "web01;0;PING OK - Packet loss = 0%\n" +
		"web02;1;PING CRITICAL - Packet loss = 100%\n" +
		"db01;0;PING OK - Packet loss = 0%\n"
	if string(resp.Body) != want {
		t.Errorf("body =\n%s\nwant:\n%s", resp.Body, want)
	}
}

func TestExecuteColumnHeaders(t *testing.T) {
	e := testExecutor(t)

	resp := e.Execute("GET hosts\nColumns: name state\nColumnHeaders: on\n")
	if resp.Code != StatusOK {
		t.Fatalf("code = %d", resp.Code)
	}
	lines := strings.Split(string(resp.Body), "\n")
	if lines[0] != "name;state" {
		t.Errorf("header row = %q", lines[0])
	}
}

func TestExecuteJSON(t *testing.T) {
	e := testExecutor(t)

	resp := e.Execute("GET hosts\nColumns: name state contact_groups\nOutputFormat: json\n")
	if resp.Code != StatusOK {
		t.Fatalf("code = %d, body = %s", resp.Code, resp.Body)
	}

	var rows [][]any
	if err := json.Unmarshal(resp.Body, &rows); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "web01" || rows[0][1] != float64(0) {
		t.Errorf("row 0 = %v", rows[0])
	}
	groups, ok := rows[0][2].([]any)
	if !ok || len(groups) != 2 || groups[0] != "web-ops" {
		t.Errorf("contact_groups = %v", rows[0][2])
	}
}

func TestExecuteFilters(t *testing.T) {
	e := testExecutor(t)

	tests := []struct {
		name    string
		request string
		want    []string
	}{
		{
			"equality",
			"GET hosts\nColumns: name\nFilter: state = 0\n",
			[]string{"web01", "db01"},
		},
		{
			"regex",
			"GET hosts\nColumns: name\nFilter: plugin_output ~ ^PING CRITICAL\n",
			[]string{"web02"},
		},
		{
			"or of two",
			"GET hosts\nColumns: name\nFilter: name = web02\nFilter: name = db01\nOr: 2\n",
			[]string{"web02", "db01"},
		},
		{
			"negate",
			"GET hosts\nColumns: name\nFilter: state = 0\nNegate:\n",
			[]string{"web02"},
		},
		{
			"list membership",
			"GET hosts\nColumns: name\nFilter: contact_groups >= on-call\n",
			[]string{"web01"},
		},
		{
			"empty list",
			"GET hosts\nColumns: name\nFilter: contact_groups =\n",
			[]string{"db01"},
		},
		{
			"indirected host column",
			"GET services\nColumns: description\nFilter: host_name = web01\n",
			[]string{"HTTP", "CPU load"},
		},
		{
			"conjunction is implicit",
			"GET hosts\nColumns: name\nFilter: state = 0\nFilter: contact_groups >= web-ops\n",
			[]string{"web01"},
		},
		{
			"time comparison",
			"GET hosts\nColumns: name\nFilter: last_check > 1600000000\nLimit: 1\n",
			[]string{"web01"},
		},
	}
	for _, tt := range tests {
		resp := e.Execute(tt.request)
		if resp.Code != StatusOK {
			t.Fatalf("%s: code = %d, body = %s", tt.name, resp.Code, resp.Body)
		}
		var got []string
		for _, line := range strings.Split(strings.TrimSpace(string(resp.Body)), "\n") {
			if line != "" {
				got = append(got, line)
			}
		}
		if len(got) != len(tt.want) {
			t.Fatalf("%s: rows = %v, want %v", tt.name, got, tt.want)
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("%s: row[%d] = %q, want %q", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}

func TestExecuteFilterRows(t *testing.T) {
	e := testExecutor(t)

	resp := e.Execute("GET hosts\nColumns: name\nFilter: state = 1\n")
	if resp.Code != StatusOK {
		t.Fatalf("code = %d", resp.Code)
	}
	if string(resp.Body) != "web02\n" {
		t.Errorf("body = %q, want \"web02\\n\"", resp.Body)
	}
}

func TestExecuteLimit(t *testing.T) {
	e := testExecutor(t)

	resp := e.Execute("GET hosts\nColumns: name\nLimit: 2\n")
	if resp.Code != StatusOK {
		t.Fatalf("code = %d", resp.Code)
	}
	lines := strings.Split(strings.TrimSpace(string(resp.Body)), "\n")
	if len(lines) != 2 {
		t.Errorf("got %d rows, want 2", len(lines))
	}

	resp = e.Execute("GET hosts\nColumns: name\nLimit: 0\n")
	if resp.Code != StatusOK {
		t.Fatalf("code = %d", resp.Code)
	}
	if len(resp.Body) != 0 {
		t.Errorf("Limit 0 emitted %q, want empty body", resp.Body)
	}
}

func TestExecuteUnknownTable(t *testing.T) {
	e := testExecutor(t)

	resp := e.Execute("GET nonexistent\n")
	if resp.Code != StatusNotFound {
		t.Errorf("code = %d, want %d", resp.Code, StatusNotFound)
	}
}

func TestExecuteUnknownColumn(t *testing.T) {
	e := testExecutor(t)

	for _, req := range []string{
		"GET hosts\nColumns: name bogus\n",
		"GET hosts\nFilter: bogus = 1\n",
	} {
		resp := e.Execute(req)
		if resp.Code != StatusNotFound {
			t.Errorf("code = %d, want %d for %q", resp.Code, StatusNotFound, req)
		}
	}
}

func TestExecuteUnsupportedOperator(t *testing.T) {
	e := testExecutor(t)

	// Regex on an int column must fail the query, not match wrongly
	resp := e.Execute("GET hosts\nFilter: state ~ 0\n")
	if resp.Code != StatusBadRequest {
		t.Errorf("code = %d, want %d", resp.Code, StatusBadRequest)
	}
	if !strings.Contains(string(resp.Body), "not supported") {
		t.Errorf("body = %q, want operator error", resp.Body)
	}
}

func TestExecuteBadRequests(t *testing.T) {
	e := testExecutor(t)

	tests := []struct {
		name string
		req  string
		code int
	}{
		{"parse error", "HELLO\n", StatusBadRequest},
		{"and underflow", "GET hosts\nFilter: state = 0\nAnd: 2\n", StatusBadRequest},
		{"negate underflow", "GET hosts\nNegate:\n", StatusBadRequest},
		{"bad operand", "GET hosts\nFilter: state = abc\n", StatusBadRequest},
	}
	for _, tt := range tests {
		resp := e.Execute(tt.req)
		if resp.Code != tt.code {
			t.Errorf("%s: code = %d, want %d", tt.name, resp.Code, tt.code)
		}
	}
}

func TestParseErrorKeepsRequestedFraming(t *testing.T) {
	e := testExecutor(t)

	// A malformed header must not strip the framing the client asked
	// for: an unframed 400 would break the client's response reader.
	tests := []struct {
		name    string
		request string
		want    bool
	}{
		{"fixed16 before bad line", "GET hosts\nResponseHeader: fixed16\nBogusHeader: x\n", true},
		{"fixed16 after bad line", "GET hosts\nBogusHeader: x\nResponseHeader: fixed16\n", true},
		{"bad first line", "HELLO\nResponseHeader: fixed16\n", true},
		{"no framing requested", "GET hosts\nBogusHeader: x\n", false},
		{"framing explicitly off", "GET hosts\nBogusHeader: x\nResponseHeader: off\n", false},
	}
	for _, tt := range tests {
		resp := e.Execute(tt.request)
		if resp.Code != StatusBadRequest {
			t.Fatalf("%s: code = %d, want %d", tt.name, resp.Code, StatusBadRequest)
		}
		if resp.Fixed16 != tt.want {
			t.Errorf("%s: Fixed16 = %v, want %v", tt.name, resp.Fixed16, tt.want)
		}
	}
}

func TestExecuteDefaultAllColumns(t *testing.T) {
	e := testExecutor(t)

	resp := e.Execute("GET hosts\nLimit: 1\n")
	if resp.Code != StatusOK {
		t.Fatalf("code = %d", resp.Code)
	}
	row := strings.TrimSpace(string(resp.Body))
	if got := strings.Count(row, ";") + 1; got != 13 {
		t.Errorf("default projection has %d fields, want all 13", got)
	}
}

func TestObserverReceivesLifecycle(t *testing.T) {
	e := testExecutor(t)

	var events []Event
	e.AddObserver(observerFunc(func(ev Event) { events = append(events, ev) }))

	e.Execute("GET hosts\nColumns: name\n")

	want := []EventType{EventParseStart, EventParseEnd, EventExecStart, EventExecEnd}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, ev := range events {
		if ev.Type != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, ev.Type, want[i])
		}
		if ev.QueryID == "" {
			t.Errorf("event[%d] has no query id", i)
		}
		if ev.QueryID != events[0].QueryID {
			t.Errorf("query id changed mid-query")
		}
	}
}

type observerFunc func(Event)

func (f observerFunc) OnEvent(ev Event) { f(ev) }
