package table

import (
	"fmt"
	"time"
)

// fakeRecord is a slot-indexed record used across the package tests.
// Slot kinds mirror fakeLayout below.
type fakeRecord struct {
	strings map[int]string
	ints    map[int]int64
	floats  map[int]float64
	times   map[int]time.Time
	lists   map[int][]string
	refs    map[int]Record
}

func (r *fakeRecord) StringAt(slot int) string {
	v, ok := r.strings[slot]
	if !ok {
		panic(fmt.Sprintf("fake: no string slot %d", slot))
	}
	return v
}

func (r *fakeRecord) IntAt(slot int) int64 {
	v, ok := r.ints[slot]
	if !ok {
		panic(fmt.Sprintf("fake: no int slot %d", slot))
	}
	return v
}

func (r *fakeRecord) FloatAt(slot int) float64 {
	v, ok := r.floats[slot]
	if !ok {
		panic(fmt.Sprintf("fake: no float slot %d", slot))
	}
	return v
}

func (r *fakeRecord) TimeAt(slot int) time.Time {
	v, ok := r.times[slot]
	if !ok {
		panic(fmt.Sprintf("fake: no time slot %d", slot))
	}
	return v
}

func (r *fakeRecord) ListAt(slot int) []string {
	v, ok := r.lists[slot]
	if !ok {
		panic(fmt.Sprintf("fake: no list slot %d", slot))
	}
	return v
}

func (r *fakeRecord) RefAt(slot int) Record {
	v, ok := r.refs[slot]
	if !ok {
		panic(fmt.Sprintf("fake: no ref slot %d", slot))
	}
	return v
}

// rowCapture records Output calls for assertions.
type rowCapture struct {
	fields []any
}

func (w *rowCapture) WriteString(v string)  { w.fields = append(w.fields, v) }
func (w *rowCapture) WriteInt(v int64)      { w.fields = append(w.fields, v) }
func (w *rowCapture) WriteFloat(v float64)  { w.fields = append(w.fields, v) }
func (w *rowCapture) WriteTime(v time.Time) { w.fields = append(w.fields, v) }
func (w *rowCapture) WriteList(v []string) {
	owned := make([]string, len(v))
	copy(owned, v)
	w.fields = append(w.fields, owned)
}
