package core

import (
	"fmt"
	"time"

	"github.com/statuscore/livequery/internal/table"
)

// Host state values as reported by checks
const (
	HostUp          = 0
	HostDown        = 1
	HostUnreachable = 2
)

// Slot indices for the host record layout. Columns address host fields
// through these, never through struct offsets; the layout below is
// validated against every registered column at startup.
const (
	HostSlotName = iota
	HostSlotAlias
	HostSlotAddress
	HostSlotNotes
	HostSlotPluginOutput
	HostSlotState
	HostSlotCurrentAttempt
	HostSlotMaxAttempts
	HostSlotNumServices
	HostSlotLatency
	HostSlotLastCheck
	HostSlotNextCheck
	HostSlotContactGroups
)

// HostLayout is the slot table columns are checked against.
var HostLayout = &table.Layout{
	Name: "host",
	Slots: []table.SlotDesc{
		{Key: "name", Kind: table.KindString},
		{Key: "alias", Kind: table.KindString},
		{Key: "address", Kind: table.KindString},
		{Key: "notes", Kind: table.KindString},
		{Key: "plugin_output", Kind: table.KindString},
		{Key: "state", Kind: table.KindInt},
		{Key: "current_attempt", Kind: table.KindInt},
		{Key: "max_check_attempts", Kind: table.KindInt},
		{Key: "num_services", Kind: table.KindInt},
		{Key: "latency", Kind: table.KindFloat},
		{Key: "last_check", Kind: table.KindTime},
		{Key: "next_check", Kind: table.KindTime},
		{Key: "contact_groups", Kind: table.KindList},
	},
}

// Host is one monitored host: live, mutable state owned by the Core and
// mutated only under its write lock. Queries see it through the Record
// accessors below, which return borrowed views valid for one scan step.
type Host struct {
	Name    string
	Alias   string
	Address string
	Notes   string

	State          int64
	PluginOutput   string
	CurrentAttempt int64
	MaxAttempts    int64
	Latency        float64
	LastCheck      time.Time
	NextCheck      time.Time

	ContactGroups []string
	Services      []*Service
}

func (h *Host) StringAt(slot int) string {
	switch slot {
	case HostSlotName:
		return h.Name
	case HostSlotAlias:
		return h.Alias
	case HostSlotAddress:
		return h.Address
	case HostSlotNotes:
		return h.Notes
	case HostSlotPluginOutput:
		return h.PluginOutput
	default:
		panic(fmt.Sprintf("host: no string slot %d", slot))
	}
}

func (h *Host) IntAt(slot int) int64 {
	switch slot {
	case HostSlotState:
		return h.State
	case HostSlotCurrentAttempt:
		return h.CurrentAttempt
	case HostSlotMaxAttempts:
		return h.MaxAttempts
	case HostSlotNumServices:
		return int64(len(h.Services))
	default:
		panic(fmt.Sprintf("host: no int slot %d", slot))
	}
}

func (h *Host) FloatAt(slot int) float64 {
	switch slot {
	case HostSlotLatency:
		return h.Latency
	default:
		panic(fmt.Sprintf("host: no float slot %d", slot))
	}
}

func (h *Host) TimeAt(slot int) time.Time {
	switch slot {
	case HostSlotLastCheck:
		return h.LastCheck
	case HostSlotNextCheck:
		return h.NextCheck
	default:
		panic(fmt.Sprintf("host: no time slot %d", slot))
	}
}

func (h *Host) ListAt(slot int) []string {
	switch slot {
	case HostSlotContactGroups:
		return h.ContactGroups
	default:
		panic(fmt.Sprintf("host: no list slot %d", slot))
	}
}

func (h *Host) RefAt(slot int) table.Record {
	panic(fmt.Sprintf("host: no ref slot %d", slot))
}
