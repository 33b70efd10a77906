package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one value in a frequency table.
type Entry struct {
	Value string
	Count int
}

// FreqTable is an ordered frequency table: highest count first, ties kept
// in first-encountered order so output is deterministic.
type FreqTable []Entry

// NumericSummary describes a numeric column (response time, in hours).
type NumericSummary struct {
	Mean   float64
	Median float64
	Max    float64
}

// GroupMean is a per-group mean, e.g. average severity for one borough.
type GroupMean struct {
	Group string
	Mean  float64
}

// GroupMeans is ordered by group key ascending.
type GroupMeans []GroupMean

// BinaryCount holds the known/unknown suspect-info split.
type BinaryCount struct {
	Known   int `json:"known"`
	Unknown int `json:"unknown"`
}

// Bundle is the full set of computed aggregates. It is built exactly once
// at startup and read-only afterwards; keys exist only when their source
// columns were present in the dataset.
type Bundle struct {
	TotalRecords int
	Columns      []string

	values map[string]interface{}
	order  []string
}

// Has reports whether the named aggregate was computed.
func (b *Bundle) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

// Get returns the named aggregate value.
func (b *Bundle) Get(key string) (interface{}, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Freq returns a frequency-table aggregate by key.
func (b *Bundle) Freq(key string) (FreqTable, bool) {
	v, ok := b.values[key]
	if !ok {
		return nil, false
	}
	ft, ok := v.(FreqTable)
	return ft, ok
}

// Keys returns the computed aggregate keys in registry order.
func (b *Bundle) Keys() []string {
	return b.order
}

func (b *Bundle) put(key string, value interface{}) {
	if b.values == nil {
		b.values = make(map[string]interface{})
	}
	b.values[key] = value
	b.order = append(b.order, key)
}

// MarshalJSON renders the bundle with total_records and columns first,
// then every computed aggregate in registry order.
func (b *Bundle) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(`"total_records":`)
	fmt.Fprintf(&buf, "%d", b.TotalRecords)
	buf.WriteString(`,"columns":`)
	cols, err := json.Marshal(b.Columns)
	if err != nil {
		return nil, err
	}
	buf.Write(cols)
	for _, key := range b.order {
		buf.WriteByte(',')
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(b.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON keeps frequency order by writing the object by hand.
func (ft FreqTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range ft {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		fmt.Fprintf(&buf, ":%d", e.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (gm GroupMeans) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range gm {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(g.Group)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		fmt.Fprintf(&buf, ":%g", g.Mean)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (ns NumericSummary) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"mean_hours":%g,"median_hours":%g,"max_hours":%g}`,
		ns.Mean, ns.Median, ns.Max)), nil
}
