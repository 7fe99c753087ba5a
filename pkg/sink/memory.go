package sink

import (
	"fmt"
	"sync"
)

// Record is one tuple appended to a Memory sink, together with the tag
// it was appended under.
type Record struct {
	Tag   Tag
	Tuple []any
}

// Memory retains every appended tuple, in append order, and supports
// the multiset-equality comparisons spec §6 requires of an in-memory
// sink. The zero value is ready to use.
type Memory struct {
	mu      sync.Mutex
	records []Record
}

// NewMemory returns an empty Memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records tuple under tag.
func (m *Memory) Append(tag Tag, tuple []any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, Record{Tag: tag, Tuple: append([]any(nil), tuple...)})
	return nil
}

// Records returns every tuple appended so far, in append order.
func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.records...)
}

// TuplesTagged returns, in append order, the tuples appended under tag.
func (m *Memory) TuplesTagged(tag Tag) [][]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out [][]any
	for _, r := range m.records {
		if r.Tag == tag {
			out = append(out, r.Tuple)
		}
	}
	return out
}

// EqualMultiset reports whether got and want are equal as multisets
// (order-independent, duplicate-sensitive). Used by
// tests to check the scenario-style expectations of spec §8 without
// depending on the depth-first enumeration order of a particular run.
func EqualMultiset(got, want [][]any) bool {
	if len(got) != len(want) {
		return false
	}
	counts := make(map[string]int, len(want))
	for _, t := range want {
		counts[tupleKey(t)]++
	}
	for _, t := range got {
		key := tupleKey(t)
		if counts[key] == 0 {
			return false
		}
		counts[key]--
	}
	return true
}

func tupleKey(tuple []any) string {
	return fmt.Sprint(tuple)
}
