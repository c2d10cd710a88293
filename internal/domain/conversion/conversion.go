// Package conversion dispatches rating conversions by (source, target) system.
//
// The set of pairs is deliberately partial. A pair without a registered
// formula is reported as ErrUnsupportedConversion; formulas are never
// chained to bridge two systems.
package conversion

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/okian/skillrate/internal/domain/model"
	"github.com/okian/skillrate/pkg/rating"
)

// Pair is an ordered (from, to) pair of systems.
type Pair struct {
	From model.System `json:"from"`
	To   model.System `json:"to"`
}

func (p Pair) String() string { return p.From.String() + "->" + p.To.String() }

// Func converts a rating of Pair.From into a rating of Pair.To.
type Func func(in model.Rating) (model.Rating, error)

// Converter converts a rating into the target system.
type Converter interface {
	Convert(ctx context.Context, in model.Rating, to model.System) (model.Rating, error)
}

// Registry holds one Func per supported pair. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	funcs map[Pair]Func
}

// NewRegistry builds a Registry from options. Without options it supports
// nothing.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{funcs: make(map[Pair]Func)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultRegistry returns a Registry with the built-in formulas:
// elo->ingo, ingo->elo and elo->dwz.
func DefaultRegistry() *Registry {
	return NewRegistry(WithDefaultConversions())
}

// Convert validates in and converts it to the target system. Converting a
// rating to its own system returns it unchanged. A result that is not a
// finite number is reported as ErrOutOfRange.
func (r *Registry) Convert(ctx context.Context, in model.Rating, to model.System) (model.Rating, error) {
	if err := ctx.Err(); err != nil {
		return model.Rating{}, fmt.Errorf("context cancelled: %w", err)
	}
	if !to.Valid() {
		return model.Rating{}, fmt.Errorf("%w: target: %w", ErrInvalidInput, model.ErrUnknownSystem)
	}
	if err := in.Validate(); err != nil {
		return model.Rating{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if in.System == to {
		return in, nil
	}

	p := Pair{From: in.System, To: to}
	fn, ok := r.funcs[p]
	if !ok {
		return model.Rating{}, fmt.Errorf("%w: %s", ErrUnsupportedConversion, p)
	}
	out, err := fn(in)
	if err != nil {
		return model.Rating{}, fmt.Errorf("convert %s: %w", p, err)
	}
	// A finite input can still overflow, e.g. ingo -1e308 -> elo.
	if math.IsNaN(out.Rating) || math.IsInf(out.Rating, 0) {
		return model.Rating{}, fmt.Errorf("%w: %s of %g", ErrOutOfRange, p, in.Rating)
	}
	return out, nil
}

// Supports reports whether p has a registered formula.
func (r *Registry) Supports(p Pair) bool {
	_, ok := r.funcs[p]
	return ok
}

// Supported lists the registered pairs ordered by source then target.
func (r *Registry) Supported() []Pair {
	out := make([]Pair, 0, len(r.funcs))
	for p := range r.funcs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// builtin wraps the pkg/rating formulas, one adapter per ordered pair.
func builtin() map[Pair]Func {
	return map[Pair]Func{
		{From: model.Elo, To: model.Ingo}: func(in model.Rating) (model.Rating, error) {
			e, err := in.AsElo()
			if err != nil {
				return model.Rating{}, err
			}
			return model.FromIngo(rating.EloToIngo(e)), nil
		},
		{From: model.Ingo, To: model.Elo}: func(in model.Rating) (model.Rating, error) {
			i, err := in.AsIngo()
			if err != nil {
				return model.Rating{}, err
			}
			return model.FromElo(rating.IngoToElo(i)), nil
		},
		{From: model.Elo, To: model.DWZ}: func(in model.Rating) (model.Rating, error) {
			e, err := in.AsElo()
			if err != nil {
				return model.Rating{}, err
			}
			return model.FromDWZ(rating.EloToDWZ(e)), nil
		},
	}
}
