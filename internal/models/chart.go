package models

import (
	"encoding/json"
	"math"
)

// MatchMode describes how a recommendation was obtained.
type MatchMode string

const (
	// MatchModeInRange - the measurement fell inside a range.
	MatchModeInRange MatchMode = "in-range"
	// MatchModeClosest - no range matched, the nearest one was picked.
	MatchModeClosest MatchMode = "closest"
)

// SizeRange is a single row of a size chart.
// Min defaults to 0 and Max to +Inf when the JSON omits them.
type SizeRange struct {
	Size string  `json:"size"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// sizeRangeJSON mirrors the on-disk format. Pointers let us tell
// "absent" apart from an explicit 0.
type sizeRangeJSON struct {
	Size string   `json:"size"`
	Min  *float64 `json:"min"`
	Max  *float64 `json:"max"`
}

func (r *SizeRange) UnmarshalJSON(data []byte) error {
	var raw sizeRangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Size = raw.Size
	r.Min = 0
	r.Max = math.Inf(1)

	if raw.Min != nil {
		r.Min = *raw.Min
	}
	if raw.Max != nil {
		r.Max = *raw.Max
	}
	return nil
}

// Contains reports whether value falls inside the range (bounds inclusive).
func (r *SizeRange) Contains(value float64) bool {
	return r.Min <= value && value <= r.Max
}

// BoundaryDistance is the distance from value to the nearest bound of the
// range. Used to pick the closest range when nothing matches.
func (r *SizeRange) BoundaryDistance(value float64) float64 {
	return math.Min(math.Abs(value-r.Min), math.Abs(value-r.Max))
}

// SizeChart is an immutable chart document loaded from <key>.json.
// Range order is preserved from the source file and is significant:
// the resolver scans it linearly and earlier entries win ties.
type SizeChart struct {
	Key    string      `json:"key"`
	Name   string      `json:"name"`
	Unit   string      `json:"unit"`
	Ranges []SizeRange `json:"ranges"`

	// Raw keeps the source document byte-for-byte for the debug endpoint.
	Raw json.RawMessage `json:"-"`
}

// ApplyDefaults fills Name and Unit the same way the charts have always
// been interpreted: name falls back to the key, unit falls back to "cm".
func (c *SizeChart) ApplyDefaults(key string) {
	c.Key = key
	if c.Name == "" {
		c.Name = key
	}
	if c.Unit == "" {
		c.Unit = "cm"
	}
}
