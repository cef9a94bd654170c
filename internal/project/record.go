// Package project defines the archive records browsed by the LASTRO
// frontend and served by the catalog.
package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ID identifies a project. The archive uses the Vimeo video id, which older
// backends serialize as a JSON number.
type ID string

// UnmarshalJSON accepts both string and numeric identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return fmt.Errorf("decode project id: %w", err)
		}
		*id = ID(strings.TrimSpace(value))
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("decode project id: %w", err)
	}
	if _, err := strconv.ParseInt(number.String(), 10, 64); err != nil {
		return fmt.Errorf("decode project id %s: not an integer", number)
	}
	*id = ID(number.String())
	return nil
}

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// Record is one archive entry. Records are immutable once fetched.
type Record struct {
	ID       ID       `json:"id"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Category []string `json:"category"`

	Link string `json:"link,omitempty"`
	Date string `json:"date,omitempty"`

	Direction  []string `json:"direction,omitempty"`
	Sound      []string `json:"sound,omitempty"`
	Production []string `json:"production,omitempty"`
	Support    []string `json:"support,omitempty"`
	Assistance []string `json:"assistance,omitempty"`
	Research   []string `json:"research,omitempty"`

	Location    string   `json:"location,omitempty"`
	Instruments []string `json:"instruments,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	InfoPool    string   `json:"infoPool,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
}

// Clone returns a copy of r that shares no slices with it.
func (r Record) Clone() Record {
	r.Category = slices.Clone(r.Category)
	r.Direction = slices.Clone(r.Direction)
	r.Sound = slices.Clone(r.Sound)
	r.Production = slices.Clone(r.Production)
	r.Support = slices.Clone(r.Support)
	r.Assistance = slices.Clone(r.Assistance)
	r.Research = slices.Clone(r.Research)
	r.Instruments = slices.Clone(r.Instruments)
	r.Keywords = slices.Clone(r.Keywords)
	return r
}

// Collection is an ordered sequence of records. Identifiers may repeat.
type Collection []Record

// Key returns the compound display key of the record at index.
func (c Collection) Key(index int) Key {
	return Key{ID: c[index].ID, Index: index}
}

// Keys returns the display keys for the half-open range [from, to).
func (c Collection) Keys(from, to int) []Key {
	from = max(from, 0)
	to = min(to, len(c))
	if from >= to {
		return nil
	}
	keys := make([]Key, 0, to-from)
	for i := from; i < to; i++ {
		keys = append(keys, c.Key(i))
	}
	return keys
}

// Append returns a new collection holding c followed by batch. c itself is
// never written to, so earlier snapshots stay valid.
func (c Collection) Append(batch []Record) Collection {
	out := make(Collection, 0, len(c)+len(batch))
	out = append(out, c...)
	return append(out, batch...)
}

// Clone returns an independent copy of the collection. Writes to the copy,
// including its list fields, never reach c.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, record := range c {
		out[i] = record.Clone()
	}
	return out
}
