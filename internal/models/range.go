package models

import (
	"errors"
	"fmt"
)

var ErrComponentOutOfDomain = errors.New("range component out of domain")

// Component identifies one of the six slider-bound range values.
type Component int

const (
	HMin Component = iota
	HMax
	SMin
	SMax
	VMin
	VMax
)

var componentNames = [...]string{"HMin", "HMax", "SMin", "SMax", "VMin", "VMax"}

func (c Component) String() string {
	if c < HMin || c > VMax {
		return fmt.Sprintf("Component(%d)", int(c))
	}
	return componentNames[c]
}

// Limit returns the largest value the component accepts.
func (c Component) Limit() int {
	if c == HMin || c == HMax {
		return HueMax
	}
	return SaturationMax
}

// Components lists all six in slider order.
func Components() []Component {
	return []Component{HMin, HMax, SMin, SMax, VMin, VMax}
}

// HSVRange is a closed interval per channel. A channel with min > max
// matches nothing; bounds are never swapped.
type HSVRange struct {
	HMin int `json:"h_min"`
	HMax int `json:"h_max"`
	SMin int `json:"s_min"`
	SMax int `json:"s_max"`
	VMin int `json:"v_min"`
	VMax int `json:"v_max"`
}

// FullRange selects every pixel.
func FullRange() HSVRange {
	return HSVRange{HMin: 0, HMax: HueMax, SMin: 0, SMax: SaturationMax, VMin: 0, VMax: ValueMax}
}

// Contains reports whether the pixel lies inside all three intervals.
func (r HSVRange) Contains(c HSV) bool {
	h, s, v := int(c.H), int(c.S), int(c.V)
	return r.HMin <= h && h <= r.HMax &&
		r.SMin <= s && s <= r.SMax &&
		r.VMin <= v && v <= r.VMax
}

// IsEmpty reports whether some channel interval is empty.
func (r HSVRange) IsEmpty() bool {
	return r.HMin > r.HMax || r.SMin > r.SMax || r.VMin > r.VMax
}

// Get returns one component.
func (r HSVRange) Get(c Component) int {
	switch c {
	case HMin:
		return r.HMin
	case HMax:
		return r.HMax
	case SMin:
		return r.SMin
	case SMax:
		return r.SMax
	case VMin:
		return r.VMin
	case VMax:
		return r.VMax
	}
	return 0
}

// With returns a copy with one component replaced.
func (r HSVRange) With(c Component, value int) (HSVRange, error) {
	if c < HMin || c > VMax {
		return r, fmt.Errorf("%w: unknown component %v", ErrComponentOutOfDomain, c)
	}
	if value < 0 || value > c.Limit() {
		return r, fmt.Errorf("%w: %v=%d not in [0,%d]", ErrComponentOutOfDomain, c, value, c.Limit())
	}
	switch c {
	case HMin:
		r.HMin = value
	case HMax:
		r.HMax = value
	case SMin:
		r.SMin = value
	case SMax:
		r.SMax = value
	case VMin:
		r.VMin = value
	case VMax:
		r.VMax = value
	}
	return r, nil
}

// Validate checks every component against its domain.
func (r HSVRange) Validate() error {
	for _, c := range Components() {
		v := r.Get(c)
		if v < 0 || v > c.Limit() {
			return fmt.Errorf("%w: %v=%d not in [0,%d]", ErrComponentOutOfDomain, c, v, c.Limit())
		}
	}
	return nil
}

func (r HSVRange) String() string {
	return fmt.Sprintf("(hMin = %d, sMin = %d, vMin = %d), (hMax = %d, sMax = %d, vMax = %d)",
		r.HMin, r.SMin, r.VMin, r.HMax, r.SMax, r.VMax)
}

// Fields flattens the range for structured logging.
func (r HSVRange) Fields() map[string]interface{} {
	return map[string]interface{}{
		"h_min": r.HMin, "h_max": r.HMax,
		"s_min": r.SMin, "s_max": r.SMax,
		"v_min": r.VMin, "v_max": r.VMax,
	}
}

// PickMargins are the half-widths applied around a picked colour.
type PickMargins struct {
	Hue        int
	Saturation int
	Value      int
}

// DefaultPickMargins are ±10 hue, ±25 saturation and value.
var DefaultPickMargins = PickMargins{Hue: 10, Saturation: 25, Value: 25}

// RangeAround builds the range centred on c, clamped per channel. Hue does
// not wrap around 0/179.
func RangeAround(c HSV, m PickMargins) HSVRange {
	h, s, v := int(c.H), int(c.S), int(c.V)
	return HSVRange{
		HMin: max(h-m.Hue, 0),
		HMax: min(h+m.Hue, HueMax),
		SMin: max(s-m.Saturation, 0),
		SMax: min(s+m.Saturation, SaturationMax),
		VMin: max(v-m.Value, 0),
		VMax: min(v+m.Value, ValueMax),
	}
}
