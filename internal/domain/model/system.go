package model

import (
	"fmt"
	"strings"
)

// System names a rating system.
type System string

// Supported rating systems.
const (
	Elo       System = "elo"
	Glicko    System = "glicko"
	Glicko2   System = "glicko2"
	DWZ       System = "dwz"
	TrueSkill System = "trueskill"
	Ingo      System = "ingo"
)

var systems = []System{Elo, Glicko, Glicko2, DWZ, TrueSkill, Ingo} //nolint:gochecknoglobals // fixed enumeration

// Systems returns every supported system in a stable order.
func Systems() []System {
	out := make([]System, len(systems))
	copy(out, systems)
	return out
}

// ParseSystem resolves a system name case-insensitively.
// "glicko-2" and "glicko_2" are accepted for Glicko-2.
func ParseSystem(s string) (System, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("-", "", "_", "").Replace(name)
	for _, sys := range systems {
		if string(sys) == name {
			return sys, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSystem, s)
}

// Valid reports whether s is a supported system.
func (s System) Valid() bool {
	for _, sys := range systems {
		if sys == s {
			return true
		}
	}
	return false
}

// LowerIsBetter is true for systems where a smaller number is stronger.
func (s System) LowerIsBetter() bool { return s == Ingo }

// HasDefault is false for systems that can only be derived.
func (s System) HasDefault() bool { return s.Valid() && s != DWZ }

func (s System) String() string { return string(s) }
