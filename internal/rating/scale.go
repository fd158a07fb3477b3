// Package rating renders and edits bounded integer ratings. It keeps no state
// of its own: every widget reflects the value it is given and reports changes
// through a callback. Range checks belong to the review package.
package rating

import (
	"fmt"
	"strings"
)

const (
	DefaultMin = 1
	DefaultMax = 5
)

// Anchor labels shown under a slider at its low, mid and high points.
const (
	AnchorLow  = "Poor"
	AnchorMid  = "Average"
	AnchorHigh = "Excellent"
)

// Scale is a closed integer range [Min, Max].
type Scale struct {
	Min int
	Max int
}

// Default is the 1..5 scale used by every review rating.
var Default = Scale{Min: DefaultMin, Max: DefaultMax}

// Contains reports whether v lies within the scale.
func (s Scale) Contains(v int) bool {
	return v >= s.Min && v <= s.Max
}

// Units returns Max units where unit i (1-based, index i-1) is filled iff i <= v.
func (s Scale) Units(v int) []bool {
	units := make([]bool, s.Max)
	for i := 1; i <= s.Max; i++ {
		units[i-1] = i <= v
	}
	return units
}

// Stars is the discrete-pick presentation of a rating.
type Stars struct {
	Scale    Scale
	Value    int
	ReadOnly bool
	OnChange func(int)
}

// NewStars returns a selectable star row on the default scale.
func NewStars(value int, onChange func(int)) Stars {
	return Stars{Scale: Default, Value: value, OnChange: onChange}
}

// ReadOnlyStars returns a display-only star row on the default scale.
func ReadOnlyStars(value int) Stars {
	return Stars{Scale: Default, Value: value, ReadOnly: true}
}

// Select reports unit upward as the new value. It returns false only when
// the row is read-only.
func (s Stars) Select(unit int) bool {
	if s.ReadOnly {
		return false
	}
	if s.OnChange != nil {
		s.OnChange(unit)
	}
	return true
}

// Render draws the row with filled and empty stars.
func (s Stars) Render() string {
	var b strings.Builder
	for _, filled := range s.Scale.Units(s.Value) {
		if filled {
			b.WriteString("★")
		} else {
			b.WriteString("☆")
		}
	}
	return b.String()
}

// Slider is the continuous presentation of a rating with a step of 1.
type Slider struct {
	Scale    Scale
	Label    string
	Value    int
	OnChange func(int)
}

// NewSlider returns a labelled slider on the default scale.
func NewSlider(label string, value int, onChange func(int)) Slider {
	return Slider{Scale: Default, Label: label, Value: value, OnChange: onChange}
}

// Set reports v upward unchanged and returns it.
func (s Slider) Set(v int) int {
	if s.OnChange != nil {
		s.OnChange(v)
	}
	return v
}

// Readout formats the current value as "v/max".
func (s Slider) Readout() string {
	return fmt.Sprintf("%d/%d", s.Value, s.Scale.Max)
}

// Anchors returns the fixed low, mid and high labels.
func (s Slider) Anchors() [3]string {
	return [3]string{AnchorLow, AnchorMid, AnchorHigh}
}

// Render draws the label, readout and anchors on two lines.
func (s Slider) Render() string {
	a := s.Anchors()
	return fmt.Sprintf("%s %s\n%s  %s  %s", s.Label, s.Readout(), a[0], a[1], a[2])
}
