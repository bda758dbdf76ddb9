package piping

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Valve positions given as sentinels instead of a distance
const (
	ValveAtStart = "START"
	ValveAtEnd   = "END"
)

// Valve on a segment
type Valve struct {
	Type       string        `json:"type"`
	Position   ValvePosition `json:"position"`
	Length     float64       `json:"length" validate:"gte=0"` // m
	Mass       float64       `json:"mass"`                    // kg
	FlangeType string        `json:"flangeType"`
}

// ValvePosition is "START", "END" or a distance (m) from the segment start.
// It decodes from either a JSON string or a number.
type ValvePosition struct {
	Sentinel string
	Distance float64
}

// AtDistance returns a numeric valve position.
func AtDistance(d float64) ValvePosition { return ValvePosition{Distance: d} }

// ResolveDistance returns the valve distance from the start of a segment of
// the given length.
func (p ValvePosition) ResolveDistance(length float64) float64 {
	switch p.Sentinel {
	case ValveAtStart:
		return 0
	case ValveAtEnd:
		return length
	}
	return p.Distance
}

func (p ValvePosition) String() string {
	if p.Sentinel != "" {
		return p.Sentinel
	}
	return strconv.FormatFloat(p.Distance, 'f', -1, 64)
}

// MarshalJSON writes sentinels as strings and distances as numbers.
func (p ValvePosition) MarshalJSON() ([]byte, error) {
	if p.Sentinel != "" {
		return json.Marshal(p.Sentinel)
	}
	return json.Marshal(p.Distance)
}

// UnmarshalJSON accepts "START", "END", a numeric string or a number.
func (p *ValvePosition) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case ValveAtStart:
			*p = ValvePosition{Sentinel: ValveAtStart}
			return nil
		case ValveAtEnd:
			*p = ValvePosition{Sentinel: ValveAtEnd}
			return nil
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid valve position %q", s)
		}
		*p = ValvePosition{Distance: d}
		return nil
	}
	var d float64
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("invalid valve position %s", string(data))
	}
	*p = ValvePosition{Distance: d}
	return nil
}
