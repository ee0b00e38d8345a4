package core

import (
	"fmt"
	"time"

	"github.com/statuscore/livequery/internal/table"
)

// Service state values as reported by checks
const (
	ServiceOK       = 0
	ServiceWarning  = 1
	ServiceCritical = 2
	ServiceUnknown  = 3
)

// Slot indices for the service record layout. ServiceSlotHost is a ref
// slot: host_* columns on the services table reach the owning host
// through it, the one indirection hop in the schema.
const (
	ServiceSlotDescription = iota
	ServiceSlotPluginOutput
	ServiceSlotState
	ServiceSlotCurrentAttempt
	ServiceSlotMaxAttempts
	ServiceSlotLatency
	ServiceSlotLastCheck
	ServiceSlotNextCheck
	ServiceSlotContactGroups
	ServiceSlotHost
)

var ServiceLayout = &table.Layout{
	Name: "service",
	Slots: []table.SlotDesc{
		{Key: "description", Kind: table.KindString},
		{Key: "plugin_output", Kind: table.KindString},
		{Key: "state", Kind: table.KindInt},
		{Key: "current_attempt", Kind: table.KindInt},
		{Key: "max_check_attempts", Kind: table.KindInt},
		{Key: "latency", Kind: table.KindFloat},
		{Key: "last_check", Kind: table.KindTime},
		{Key: "next_check", Kind: table.KindTime},
		{Key: "contact_groups", Kind: table.KindList},
		{Key: "host", Kind: table.KindRef},
	},
	Refs: map[int]*table.Layout{
		ServiceSlotHost: HostLayout,
	},
}

// Service is one monitored service on a host. Identity within the core
// is (host name, description).
type Service struct {
	Description string

	State          int64
	PluginOutput   string
	CurrentAttempt int64
	MaxAttempts    int64
	Latency        float64
	LastCheck      time.Time
	NextCheck      time.Time

	ContactGroups []string
	Host          *Host
}

func (s *Service) StringAt(slot int) string {
	switch slot {
	case ServiceSlotDescription:
		return s.Description
	case ServiceSlotPluginOutput:
		return s.PluginOutput
	default:
		panic(fmt.Sprintf("service: no string slot %d", slot))
	}
}

func (s *Service) IntAt(slot int) int64 {
	switch slot {
	case ServiceSlotState:
		return s.State
	case ServiceSlotCurrentAttempt:
		return s.CurrentAttempt
	case ServiceSlotMaxAttempts:
		return s.MaxAttempts
	default:
		panic(fmt.Sprintf("service: no int slot %d", slot))
	}
}

func (s *Service) FloatAt(slot int) float64 {
	switch slot {
	case ServiceSlotLatency:
		return s.Latency
	default:
		panic(fmt.Sprintf("service: no float slot %d", slot))
	}
}

func (s *Service) TimeAt(slot int) time.Time {
	switch slot {
	case ServiceSlotLastCheck:
		return s.LastCheck
	case ServiceSlotNextCheck:
		return s.NextCheck
	default:
		panic(fmt.Sprintf("service: no time slot %d", slot))
	}
}

func (s *Service) ListAt(slot int) []string {
	switch slot {
	case ServiceSlotContactGroups:
		return s.ContactGroups
	default:
		panic(fmt.Sprintf("service: no list slot %d", slot))
	}
}

func (s *Service) RefAt(slot int) table.Record {
	switch slot {
	case ServiceSlotHost:
		return s.Host
	default:
		panic(fmt.Sprintf("service: no ref slot %d", slot))
	}
}
