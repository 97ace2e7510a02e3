package standings

import (
	"encoding/json"
	"strconv"
	"time"
)

// NullFloat is a float64 that may be missing
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Some returns a present NullFloat holding f
func Some(f float64) NullFloat {
	return NullFloat{Float64: f, Valid: true}
}

// None returns the missing NullFloat
func None() NullFloat {
	return NullFloat{}
}

// Get returns the value and whether it is present
func (n NullFloat) Get() (float64, bool) {
	return n.Float64, n.Valid
}

func (n NullFloat) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Float64, 'f', -1, 64)
}

// MarshalJSON encodes a missing value as null
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// UnmarshalJSON decodes null as a missing value
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = None()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Some(f)
	return nil
}

// Record is one team's championship forecast as seen at ObservedAt
type Record struct {
	Team           string    `json:"team"`
	WinProbability NullFloat `json:"win_probability"`
	ObservedAt     time.Time `json:"observed_at"`
}
