package values

import (
	"github.com/tim-hardcastle/Minnow/source/dtypes"
)

// A Record is a bundle of labeled values: the universal container which the
// factories and the raw constructors pass between themselves. It is
// structural: two records with the same label-to-value mapping are the same
// record however the labels were ordered at the call site.

type Record struct {
	entries map[string]Value
}

func NewRecord() *Record {
	return &Record{entries: make(map[string]Value)}
}

// Returns false if the label is already present: one label, one value.
func (r *Record) Add(label string, v Value) bool {
	if _, ok := r.entries[label]; ok {
		return false
	}
	r.entries[label] = v
	return true
}

func (r *Record) Get(label string) (Value, bool) {
	v, ok := r.entries[label]
	return v, ok
}

func (r *Record) Len() int {
	return len(r.entries)
}

func (r *Record) Labels() dtypes.Set[string] {
	result := dtypes.Set[string]{}
	for k := range r.entries {
		result.Add(k)
	}
	return result
}
