package table

import (
	"fmt"
	"time"
)

// Kind identifies how a record slot's bytes are interpreted
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindTime
	KindList
	KindRef // reference to a substructure record
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTime:
		return "time"
	case KindList:
		return "list"
	case KindRef:
		return "ref"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// NoIndirect marks a FieldRef that addresses the base record directly,
// without reaching through a substructure reference first.
// 0 is a valid slot index, so the sentinel must be negative.
const NoIndirect = -1

// FieldRef locates one field inside a record: an optional indirection slot
// (a KindRef slot resolved through Record.RefAt) followed by the field's own
// slot in the target record's layout. Refs are fixed at table registration
// time and never recomputed per row.
type FieldRef struct {
	Indirect int // KindRef slot on the base record, or NoIndirect
	Slot     int // field slot on the (possibly indirected) record
}

// Direct addresses a slot on the base record itself.
func Direct(slot int) FieldRef {
	return FieldRef{Indirect: NoIndirect, Slot: slot}
}

// Via addresses a slot reached through a substructure reference.
func Via(indirect, slot int) FieldRef {
	return FieldRef{Indirect: indirect, Slot: slot}
}

// Record is an opaque handle to one live object owned by the monitoring
// core. Accessors return borrowed views into the core's memory; callers
// must not retain them past the current row. A slot accessor called with
// the wrong kind or an out-of-range slot panics - layouts are validated
// at registration time, so reaching such a panic is a programming error.
type Record interface {
	StringAt(slot int) string
	IntAt(slot int) int64
	FloatAt(slot int) float64
	TimeAt(slot int) time.Time
	ListAt(slot int) []string
	RefAt(slot int) Record
}

// SlotDesc describes one slot of a record layout.
type SlotDesc struct {
	Key  string // stable field key, used in validation errors
	Kind Kind
}

// Layout is the slot table for one record type. The monitoring core
// publishes a Layout per object type; table registration checks every
// column's FieldRef against it before the first row is ever read.
type Layout struct {
	Name  string
	Slots []SlotDesc
	Refs  map[int]*Layout // target layout per KindRef slot
}

// Slot returns the descriptor for a slot index.
func (l *Layout) Slot(i int) (SlotDesc, error) {
	if i < 0 || i >= len(l.Slots) {
		return SlotDesc{}, &LayoutError{Layout: l.Name, Slot: i, Reason: "slot out of range"}
	}
	return l.Slots[i], nil
}

// Check validates that ref resolves to a slot of the wanted kind,
// following the indirection hop if the ref has one.
func (l *Layout) Check(ref FieldRef, want Kind) error {
	target := l
	if ref.Indirect != NoIndirect {
		desc, err := l.Slot(ref.Indirect)
		if err != nil {
			return err
		}
		if desc.Kind != KindRef {
			return &LayoutError{
				Layout: l.Name,
				Slot:   ref.Indirect,
				Reason: fmt.Sprintf("indirect slot %q is %s, not ref", desc.Key, desc.Kind),
			}
		}
		sub, ok := l.Refs[ref.Indirect]
		if !ok {
			return &LayoutError{Layout: l.Name, Slot: ref.Indirect, Reason: "no target layout registered for ref slot"}
		}
		target = sub
	}

	desc, err := target.Slot(ref.Slot)
	if err != nil {
		return err
	}
	if desc.Kind != want {
		return &LayoutError{
			Layout: target.Name,
			Slot:   ref.Slot,
			Reason: fmt.Sprintf("slot %q is %s, column wants %s", desc.Key, desc.Kind, want),
		}
	}
	return nil
}

// LayoutError reports a FieldRef that does not fit a record layout.
// These indicate schema/core version skew and are raised at startup,
// never per row.
type LayoutError struct {
	Layout string // record type name
	Slot   int    // offending slot index
	Reason string // human-readable explanation
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout mismatch in %s slot %d: %s", e.Layout, e.Slot, e.Reason)
}
