package core

import (
	"github.com/statuscore/livequery/internal/table"
)

// Tables builds the queryable schema over a core. Every column's field
// ref is validated against the record layouts here, so a schema/core
// mismatch aborts startup instead of corrupting a scan later.
func Tables(c *Core) (*table.Registry, error) {
	reg := table.NewRegistry()

	hosts := table.New("hosts", HostLayout, c.ScanHosts)
	for _, col := range []table.Column{
		table.NewStringColumn("name", "Host name", table.Direct(HostSlotName)),
		table.NewStringColumn("alias", "Host alias", table.Direct(HostSlotAlias)),
		table.NewStringColumn("address", "IP or DNS address", table.Direct(HostSlotAddress)),
		table.NewStringColumn("notes", "Free-form notes", table.Direct(HostSlotNotes)),
		table.NewStringColumn("plugin_output", "Output of the last host check", table.Direct(HostSlotPluginOutput)),
		table.NewIntColumn("state", "Current state (0: up, 1: down, 2: unreachable)", table.Direct(HostSlotState)),
		table.NewIntColumn("current_attempt", "Number of the current check attempt", table.Direct(HostSlotCurrentAttempt)),
		table.NewIntColumn("max_check_attempts", "Maximum attempts before a hard state", table.Direct(HostSlotMaxAttempts)),
		table.NewIntColumn("num_services", "Number of services on this host", table.Direct(HostSlotNumServices)),
		table.NewFloatColumn("latency", "Check latency in seconds", table.Direct(HostSlotLatency)),
		table.NewTimeColumn("last_check", "Time of the last check (Unix timestamp)", table.Direct(HostSlotLastCheck)),
		table.NewTimeColumn("next_check", "Time of the next scheduled check (Unix timestamp)", table.Direct(HostSlotNextCheck)),
		table.NewListColumn("contact_groups", "Contact groups notified for this host", table.Direct(HostSlotContactGroups)),
	} {
		if err := hosts.Add(col); err != nil {
			return nil, err
		}
	}
	if err := reg.Register(hosts); err != nil {
		return nil, err
	}

	services := table.New("services", ServiceLayout, c.ScanServices)
	for _, col := range []table.Column{
		table.NewStringColumn("description", "Service description", table.Direct(ServiceSlotDescription)),
		table.NewStringColumn("plugin_output", "Output of the last service check", table.Direct(ServiceSlotPluginOutput)),
		table.NewIntColumn("state", "Current state (0: ok, 1: warning, 2: critical, 3: unknown)", table.Direct(ServiceSlotState)),
		table.NewIntColumn("current_attempt", "Number of the current check attempt", table.Direct(ServiceSlotCurrentAttempt)),
		table.NewIntColumn("max_check_attempts", "Maximum attempts before a hard state", table.Direct(ServiceSlotMaxAttempts)),
		table.NewFloatColumn("latency", "Check latency in seconds", table.Direct(ServiceSlotLatency)),
		table.NewTimeColumn("last_check", "Time of the last check (Unix timestamp)", table.Direct(ServiceSlotLastCheck)),
		table.NewTimeColumn("next_check", "Time of the next scheduled check (Unix timestamp)", table.Direct(ServiceSlotNextCheck)),
		table.NewListColumn("contact_groups", "Contact groups notified for this service", table.Direct(ServiceSlotContactGroups)),

		// host_* columns reach the owning host through the ref slot
		table.NewStringColumn("host_name", "Name of the owning host", table.Via(ServiceSlotHost, HostSlotName)),
		table.NewStringColumn("host_alias", "Alias of the owning host", table.Via(ServiceSlotHost, HostSlotAlias)),
		table.NewStringColumn("host_address", "Address of the owning host", table.Via(ServiceSlotHost, HostSlotAddress)),
		table.NewIntColumn("host_state", "Current state of the owning host", table.Via(ServiceSlotHost, HostSlotState)),
	} {
		if err := services.Add(col); err != nil {
			return nil, err
		}
	}
	if err := reg.Register(services); err != nil {
		return nil, err
	}

	return reg, nil
}
