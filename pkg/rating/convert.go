package rating

// Constants of the Elo <-> Ingo mapping. ingoEloOffset is exactly
// ingoOffset*ingoEloFactor, which makes the two directions inverse.
const (
	ingoOffset    = 355.0
	ingoEloFactor = 8.0
	ingoEloOffset = 2840.0
)

// dwzDefaultIndex is the event count assumed for a DWZ derived from Elo.
const dwzDefaultIndex uint = 6

// EloToIngo converts an Elo rating to the Ingo scale: 355 - elo/8.
// The age is always UnknownAge since Elo carries none.
func EloToIngo(e EloRating) IngoRating {
	return IngoRating{
		Rating: ingoOffset - (e.Rating / ingoEloFactor),
		Age:    UnknownAge,
	}
}

// IngoToElo converts an Ingo rating to the Elo scale: 2840 - 8*ingo.
// The age is dropped.
func IngoToElo(i IngoRating) EloRating {
	return EloRating{
		Rating: ingoEloOffset - ingoEloFactor*i.Rating,
	}
}

// EloToDWZ builds a DWZ from an Elo rating. The number is copied unchanged and
// the index and age are filled with conventional defaults (6 and
// UnknownAge). This is a convenience starting point, not a calibrated
// statistical mapping.
func EloToDWZ(e EloRating) DWZRating {
	return DWZRating{
		Rating: e.Rating,
		Index:  dwzDefaultIndex,
		Age:    UnknownAge,
	}
}
