package grading

import (
	"math"
	"strconv"
	"strings"
)

const (
	MinGrade  = 0.0
	MaxGrade  = 20.0
	PassGrade = 10.0
)

type Slot string

const (
	SlotTD   Slot = "td"
	SlotTP   Slot = "tp"
	SlotExam Slot = "exam"
)

// Component is one raw grade field as typed by the user, guarded by its toggle.
type Component struct {
	Enabled bool   `json:"enabled"`
	Value   string `json:"value"`
}

// Grade returns the parsed value and whether the component counts as provided:
// enabled, parseable and inside [0,20].
func (c Component) Grade() (float64, bool) {
	if !c.Enabled {
		return 0, false
	}
	raw := strings.TrimSpace(c.Value)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < MinGrade || v > MaxGrade {
		return 0, false
	}
	return v, true
}

type Components struct {
	TD   Component `json:"td"`
	TP   Component `json:"tp"`
	Exam Component `json:"exam"`
}

func (c Components) get(slot Slot) Component {
	switch slot {
	case SlotTD:
		return c.TD
	case SlotTP:
		return c.TP
	default:
		return c.Exam
	}
}

func (c *Components) set(slot Slot, v Component) {
	switch slot {
	case SlotTD:
		c.TD = v
	case SlotTP:
		c.TP = v
	default:
		c.Exam = v
	}
}

// DefaultComponents is the toggle layout of a fresh module form: exam always
// on, td and tp on only under a complex scheme.
func DefaultComponents(s Scheme) Components {
	return Components{
		TD:   Component{Enabled: s.IsComplex()},
		TP:   Component{Enabled: s.IsComplex()},
		Exam: Component{Enabled: true},
	}
}

// Toggle flips one toggle and returns the new inputs. Turning a toggle off
// clears its value. Under a simple scheme turning td on switches tp off (and
// the reverse), so at most one continuous source is ever enabled.
func (c Components) Toggle(slot Slot, s Scheme) Components {
	out := c
	cur := out.get(slot)
	cur.Enabled = !cur.Enabled
	if !cur.Enabled {
		cur.Value = ""
	}
	out.set(slot, cur)

	if cur.Enabled && s.IsSimple() {
		switch slot {
		case SlotTD:
			out.TP = Component{}
		case SlotTP:
			out.TD = Component{}
		}
	}
	return out
}

// ResolveGrade combines the provided components under s into one grade,
// rounded to two decimals.
//
// Under a complex scheme a lone td or tp takes the whole continuous weight
// (td+tp) instead of leaving the missing share empty.
func ResolveGrade(in Components, s Scheme) (float64, error) {
	if s.IsSimple() && in.TD.Enabled && in.TP.Enabled {
		return 0, ErrContinuousConflict
	}

	td, tdOK := in.TD.Grade()
	tp, tpOK := in.TP.Grade()
	exam, examOK := in.Exam.Grade()
	if !tdOK && !tpOK && !examOK {
		return 0, ErrNoValidComponent
	}

	var grade float64
	if s.IsComplex() {
		grade = resolveComplex(td, tdOK, tp, tpOK, exam, examOK, s.Complex)
	} else {
		grade = resolveSimple(td, tdOK, tp, tpOK, exam, examOK, s.Simple)
	}
	return Round2(grade), nil
}

func resolveComplex(td float64, tdOK bool, tp float64, tpOK bool, exam float64, examOK bool, w ComplexWeights) float64 {
	totalPoints, totalWeight := 0.0, 0.0

	if examOK {
		totalPoints += exam * w.Exam
		totalWeight += w.Exam
	}

	continuousWeight := w.TD + w.TP
	switch {
	case tdOK && tpOK:
		totalPoints += td*w.TD + tp*w.TP
		totalWeight += continuousWeight
	case tdOK:
		totalPoints += td * continuousWeight
		totalWeight += continuousWeight
	case tpOK:
		totalPoints += tp * continuousWeight
		totalWeight += continuousWeight
	}

	if totalWeight <= 0 {
		return 0
	}
	return totalPoints / totalWeight
}

func resolveSimple(td float64, tdOK bool, tp float64, tpOK bool, exam float64, examOK bool, w SimpleWeights) float64 {
	continuous, continuousOK := td, tdOK
	if !continuousOK {
		continuous, continuousOK = tp, tpOK
	}

	switch {
	case examOK && continuousOK:
		return exam*w.Exam + continuous*w.Continuous
	case examOK:
		return exam
	default:
		return continuous
	}
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
