// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"math"

	"github.com/okian/skillrate/pkg/rating"
)

// Rating is the system-tagged shape a rating takes outside pkg/rating.
// Optional fields are pointers so that "absent" and "zero" stay distinct.
type Rating struct {
	System      System   `json:"system"`
	Rating      float64  `json:"rating"`
	Deviation   *float64 `json:"deviation,omitempty"`
	Volatility  *float64 `json:"volatility,omitempty"`
	Uncertainty *float64 `json:"uncertainty,omitempty"`
	Index       *uint    `json:"index,omitempty"`
	Age         *uint    `json:"age,omitempty"`
}

// FromElo wraps an Elo rating.
func FromElo(e rating.EloRating) Rating {
	return Rating{System: Elo, Rating: e.Rating}
}

// FromGlicko wraps a Glicko rating.
func FromGlicko(g rating.GlickoRating) Rating {
	return Rating{System: Glicko, Rating: g.Rating, Deviation: ptr(g.Deviation)}
}

// FromGlicko2 wraps a Glicko-2 rating.
func FromGlicko2(g rating.Glicko2Rating) Rating {
	return Rating{System: Glicko2, Rating: g.Rating, Deviation: ptr(g.Deviation), Volatility: ptr(g.Volatility)}
}

// FromDWZ wraps a DWZ rating.
func FromDWZ(d rating.DWZRating) Rating {
	return Rating{System: DWZ, Rating: d.Rating, Index: ptr(d.Index), Age: ptr(d.Age)}
}

// FromTrueSkill wraps a TrueSkill rating.
func FromTrueSkill(ts rating.TrueSkillRating) Rating {
	return Rating{System: TrueSkill, Rating: ts.Rating, Uncertainty: ptr(ts.Uncertainty)}
}

// FromIngo wraps an Ingo rating.
func FromIngo(i rating.IngoRating) Rating {
	return Rating{System: Ingo, Rating: i.Rating, Age: ptr(i.Age)}
}

// Default returns the default snapshot of a system.
func Default(s System) (Rating, error) {
	switch s {
	case Elo:
		return FromElo(rating.NewEloRating()), nil
	case Glicko:
		return FromGlicko(rating.NewGlickoRating()), nil
	case Glicko2:
		return FromGlicko2(rating.NewGlicko2Rating()), nil
	case TrueSkill:
		return FromTrueSkill(rating.NewTrueSkillRating()), nil
	case Ingo:
		return FromIngo(rating.NewIngoRating()), nil
	case DWZ:
		return Rating{}, fmt.Errorf("%w: %s", ErrNoDefault, s)
	default:
		return Rating{}, fmt.Errorf("%w: %q", ErrUnknownSystem, string(s))
	}
}

// Validate checks the invariants pkg/rating leaves to its callers: a known
// system, a finite rating, required fields present, unused fields absent and
// spread values non-negative.
func (r Rating) Validate() error {
	if !r.System.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSystem, string(r.System))
	}
	if math.IsNaN(r.Rating) || math.IsInf(r.Rating, 0) {
		return invalid("rating", "must be finite")
	}

	used := fieldsOf(r.System)
	// Fixed order keeps the reported field stable when several are wrong.
	present := []struct {
		name string
		ok   bool
	}{
		{"deviation", r.Deviation != nil},
		{"volatility", r.Volatility != nil},
		{"uncertainty", r.Uncertainty != nil},
		{"index", r.Index != nil},
		{"age", r.Age != nil},
	}
	for _, f := range present {
		req, known := used[f.name]
		switch {
		case f.ok && !known:
			return invalid(f.name, "not used by "+r.System.String())
		case !f.ok && req:
			return invalid(f.name, "required for "+r.System.String())
		}
	}

	spreads := []struct {
		name string
		v    *float64
	}{
		{"deviation", r.Deviation},
		{"volatility", r.Volatility},
		{"uncertainty", r.Uncertainty},
	}
	for _, f := range spreads {
		if f.v == nil {
			continue
		}
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) {
			return invalid(f.name, "must be finite")
		}
		if *f.v < 0 {
			return invalid(f.name, "must not be negative")
		}
	}
	return nil
}

// fieldsOf maps the optional fields a system uses to whether they are required.
func fieldsOf(s System) map[string]bool {
	switch s {
	case Glicko:
		return map[string]bool{"deviation": true}
	case Glicko2:
		return map[string]bool{"deviation": true, "volatility": true}
	case TrueSkill:
		return map[string]bool{"uncertainty": true}
	case DWZ:
		return map[string]bool{"index": true, "age": false}
	case Ingo:
		return map[string]bool{"age": false}
	default:
		return map[string]bool{}
	}
}

// AsElo unwraps an Elo rating.
func (r Rating) AsElo() (rating.EloRating, error) {
	if err := r.expect(Elo); err != nil {
		return rating.EloRating{}, err
	}
	return rating.EloRating{Rating: r.Rating}, nil
}

// AsGlicko unwraps a Glicko rating.
func (r Rating) AsGlicko() (rating.GlickoRating, error) {
	if err := r.expect(Glicko); err != nil {
		return rating.GlickoRating{}, err
	}
	return rating.GlickoRating{Rating: r.Rating, Deviation: val(r.Deviation, rating.DefaultGlickoDeviation)}, nil
}

// AsGlicko2 unwraps a Glicko-2 rating.
func (r Rating) AsGlicko2() (rating.Glicko2Rating, error) {
	if err := r.expect(Glicko2); err != nil {
		return rating.Glicko2Rating{}, err
	}
	return rating.Glicko2Rating{
		Rating:     r.Rating,
		Deviation:  val(r.Deviation, rating.DefaultGlickoDeviation),
		Volatility: val(r.Volatility, rating.DefaultGlicko2Volatility),
	}, nil
}

// AsDWZ unwraps a DWZ rating. A missing age means UnknownAge.
func (r Rating) AsDWZ() (rating.DWZRating, error) {
	if err := r.expect(DWZ); err != nil {
		return rating.DWZRating{}, err
	}
	return rating.DWZRating{Rating: r.Rating, Index: val(r.Index, 0), Age: val(r.Age, rating.UnknownAge)}, nil
}

// AsTrueSkill unwraps a TrueSkill rating.
func (r Rating) AsTrueSkill() (rating.TrueSkillRating, error) {
	if err := r.expect(TrueSkill); err != nil {
		return rating.TrueSkillRating{}, err
	}
	return rating.TrueSkillRating{Rating: r.Rating, Uncertainty: val(r.Uncertainty, rating.DefaultTrueSkillUncertainty)}, nil
}

// AsIngo unwraps an Ingo rating. A missing age means UnknownAge.
func (r Rating) AsIngo() (rating.IngoRating, error) {
	if err := r.expect(Ingo); err != nil {
		return rating.IngoRating{}, err
	}
	return rating.IngoRating{Rating: r.Rating, Age: val(r.Age, rating.UnknownAge)}, nil
}

func (r Rating) expect(s System) error {
	if r.System != s {
		return fmt.Errorf("%w: want %s, got %q", ErrWrongSystem, s, string(r.System))
	}
	return nil
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidRating, field, reason)
}

func ptr[T any](v T) *T { return &v }

func val[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
