// Package grading computes module grades, semester results and annual results
// from raw component grades and a weighting scheme. Every function here is
// pure: no I/O, no clocks beyond id generation in the custom scheme builder.
package grading

import (
	"fmt"
	"math"
	"strings"
)

type SchemeKind string

const (
	KindSimple  SchemeKind = "simple"
	KindComplex SchemeKind = "complex"
)

const (
	DefaultSchemeID  = "simple-0.6"
	MaxCustomSchemes = 4

	weightEpsilon = 1e-9
)

// SimpleWeights splits a grade between the exam and one continuous-assessment
// grade.
type SimpleWeights struct {
	Exam       float64 `json:"exam"`
	Continuous float64 `json:"continuous"`
}

// ComplexWeights splits a grade between the exam and the two continuous
// components (directed work and practical work).
type ComplexWeights struct {
	TD   float64 `json:"td"`
	TP   float64 `json:"tp"`
	Exam float64 `json:"exam"`
}

// Scheme is a weighting scheme. Only the weights matching Kind are meaningful.
type Scheme struct {
	ID      string         `json:"id"`
	Kind    SchemeKind     `json:"type"`
	Label   string         `json:"label"`
	Custom  bool           `json:"is_custom,omitempty"`
	Simple  SimpleWeights  `json:"simple_weights"`
	Complex ComplexWeights `json:"complex_weights"`
}

func (s Scheme) IsSimple() bool  { return s.Kind == KindSimple }
func (s Scheme) IsComplex() bool { return s.Kind == KindComplex }

// Validate checks that every weight lies in [0,1] and that the weights of the
// scheme's kind sum to 1.
func (s Scheme) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("scheme id required")
	}
	var ws []float64
	switch s.Kind {
	case KindSimple:
		ws = []float64{s.Simple.Exam, s.Simple.Continuous}
	case KindComplex:
		ws = []float64{s.Complex.TD, s.Complex.TP, s.Complex.Exam}
	default:
		return fmt.Errorf("scheme %q: unknown kind %q", s.ID, s.Kind)
	}
	sum := 0.0
	for _, w := range ws {
		if math.IsNaN(w) || w < 0 || w > 1 {
			return fmt.Errorf("scheme %q: weight %v out of [0,1]", s.ID, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightEpsilon {
		return fmt.Errorf("scheme %q: weights sum to %v", s.ID, sum)
	}
	return nil
}

var predefined = []Scheme{
	{ID: "simple-0.6", Kind: KindSimple, Label: "60% / 40%", Simple: SimpleWeights{Exam: 0.6, Continuous: 0.4}},
	{ID: "simple-0.5", Kind: KindSimple, Label: "50% / 50%", Simple: SimpleWeights{Exam: 0.5, Continuous: 0.5}},
	{ID: "simple-0.67", Kind: KindSimple, Label: "67% / 33%", Simple: SimpleWeights{Exam: 0.67, Continuous: 0.33}},
	{ID: "simple-0.4", Kind: KindSimple, Label: "40% / 60%", Simple: SimpleWeights{Exam: 0.4, Continuous: 0.6}},
	{ID: "simple-0.7", Kind: KindSimple, Label: "70% / 30%", Simple: SimpleWeights{Exam: 0.7, Continuous: 0.3}},
	{ID: "complex-25-25-50", Kind: KindComplex, Label: "25%|25% / 50%", Complex: ComplexWeights{TD: 0.25, TP: 0.25, Exam: 0.50}},
	{ID: "complex-15-15-70", Kind: KindComplex, Label: "15%|15% / 70%", Complex: ComplexWeights{TD: 0.15, TP: 0.15, Exam: 0.70}},
}

// Predefined returns a copy of the built-in schemes in display order.
func Predefined() []Scheme {
	out := make([]Scheme, len(predefined))
	copy(out, predefined)
	return out
}

// DefaultScheme is the 60/40 simple scheme used whenever a lookup misses.
func DefaultScheme() Scheme {
	return predefined[0]
}

// All returns the built-ins followed by the custom schemes.
func All(custom []Scheme) []Scheme {
	out := make([]Scheme, 0, len(predefined)+len(custom))
	out = append(out, predefined...)
	out = append(out, custom...)
	return out
}

// IsPredefined reports whether id names a built-in scheme.
func IsPredefined(id string) bool {
	for _, s := range predefined {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Resolve looks id up among the built-ins and custom, by exact id.
func Resolve(id string, custom []Scheme) (Scheme, error) {
	for _, s := range predefined {
		if s.ID == id {
			return s, nil
		}
	}
	for _, s := range custom {
		if s.ID == id {
			return s, nil
		}
	}
	return Scheme{}, fmt.Errorf("%w: %q", ErrSchemeNotFound, id)
}

// ResolveOrDefault is Resolve with the grade-resolution fallback: an unknown id
// yields the default scheme and found=false.
func ResolveOrDefault(id string, custom []Scheme) (s Scheme, found bool) {
	s, err := Resolve(id, custom)
	if err != nil {
		return DefaultScheme(), false
	}
	return s, true
}
