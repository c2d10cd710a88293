// Package rating models player skill ratings of the Elo, Glicko, Glicko-2,
// DWZ, TrueSkill and Ingo systems together with the fixed formulas that
// translate one scale into another.
//
// Every type is a plain value snapshot. Constructors return the documented
// default of the system and never validate: keeping deviation, volatility,
// uncertainty and index non-negative is the caller's job.
//
// Ingo is the odd one out: a lower Ingo number denotes a stronger player and
// negative values are legal.
package rating

// Default values of the supported systems.
const (
	DefaultEloRating = 1000.0

	DefaultGlickoRating    = 1500.0
	DefaultGlickoDeviation = 350.0

	DefaultGlicko2Volatility = 0.06

	DefaultTrueSkillRating      = 25.0
	DefaultTrueSkillUncertainty = DefaultTrueSkillRating / 3

	DefaultIngoRating = 230.0

	// UnknownAge is used whenever a player's age is not known. Anything above
	// 25 counts as an adult in the systems that track age.
	UnknownAge uint = 26
)

// EloRating is the Elo rating of a player. Higher is better.
type EloRating struct {
	Rating float64
}

// NewEloRating returns an EloRating of 1000.
func NewEloRating() EloRating {
	return EloRating{Rating: DefaultEloRating}
}

// GlickoRating is the Glicko rating of a player. For Glicko-2 see
// [Glicko2Rating].
type GlickoRating struct {
	Rating float64
	// Deviation narrows as the system becomes more certain of Rating.
	Deviation float64
}

// NewGlickoRating returns a GlickoRating of 1500 with a deviation of 350.
func NewGlickoRating() GlickoRating {
	return GlickoRating{
		Rating:    DefaultGlickoRating,
		Deviation: DefaultGlickoDeviation,
	}
}

// Equal reports whether both ratings hold exactly the same values.
func (g GlickoRating) Equal(other GlickoRating) bool {
	return g.Rating == other.Rating && g.Deviation == other.Deviation
}

// Glicko2Rating is the Glicko-2 rating of a player.
type Glicko2Rating struct {
	Rating     float64
	Deviation  float64
	Volatility float64
}

// NewGlicko2Rating returns a Glicko2Rating of 1500 with a deviation of 350
// and a volatility of 0.06.
func NewGlicko2Rating() Glicko2Rating {
	return Glicko2Rating{
		Rating:     DefaultGlickoRating,
		Deviation:  DefaultGlickoDeviation,
		Volatility: DefaultGlicko2Volatility,
	}
}

// Equal reports whether both ratings hold exactly the same values.
func (g Glicko2Rating) Equal(other Glicko2Rating) bool {
	return g.Rating == other.Rating &&
		g.Deviation == other.Deviation &&
		g.Volatility == other.Volatility
}

// DWZRating is the Deutsche Wertungszahl of a player.
//
// There is no default DWZ. A value is obtained either by converting an Elo
// rating with [EloToDWZ] or from a first-assignment procedure that lives
// outside this package.
type DWZRating struct {
	Rating float64
	// Index is the number of rated events the player has completed.
	Index uint
	// Age of the player; use UnknownAge when not known.
	Age uint
}

// Equal reports whether both ratings hold exactly the same values.
func (d DWZRating) Equal(other DWZRating) bool {
	return d.Rating == other.Rating && d.Index == other.Index && d.Age == other.Age
}

// TrueSkillRating is the TrueSkill rating of a player.
type TrueSkillRating struct {
	// Rating is the mean (mu).
	Rating float64
	// Uncertainty is the standard deviation (sigma).
	Uncertainty float64
}

// NewTrueSkillRating returns a TrueSkillRating of 25 with an uncertainty of
// 25/3.
func NewTrueSkillRating() TrueSkillRating {
	return TrueSkillRating{
		Rating:      DefaultTrueSkillRating,
		Uncertainty: DefaultTrueSkillUncertainty,
	}
}

// IngoRating is the Ingo rating of a player. Lower is better.
type IngoRating struct {
	Rating float64
	Age    uint
}

// NewIngoRating returns an IngoRating of 230 with an unknown age.
func NewIngoRating() IngoRating {
	return IngoRating{
		Rating: DefaultIngoRating,
		Age:    UnknownAge,
	}
}

// Equal reports whether both ratings hold exactly the same values.
func (i IngoRating) Equal(other IngoRating) bool {
	return i.Rating == other.Rating && i.Age == other.Age
}

// Better reports whether i denotes a stronger player than other.
func (i IngoRating) Better(other IngoRating) bool {
	return i.Rating < other.Rating
}
