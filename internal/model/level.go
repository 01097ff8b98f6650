package model

// Level identifies a position in the catalog hierarchy.
// The crawler walks levels top-down: years → brands → models → detail.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons. The String() method provides human-readable
// output for logs, skip records, and error messages.
type Level int

const (
	// LevelYears is the top-level page enumerating model years.
	LevelYears Level = iota

	// LevelBrands is a per-year page enumerating brands.
	LevelBrands

	// LevelModels is a per-brand listing page enumerating models.
	// Listing pages at this level may be paginated.
	LevelModels

	// LevelDetail is a single model's detail page.
	LevelDetail
)

// String returns a human-readable representation of the hierarchy level.
func (l Level) String() string {
	switch l {
	case LevelYears:
		return "years"
	case LevelBrands:
		return "brands"
	case LevelModels:
		return "models"
	case LevelDetail:
		return "detail"
	default:
		return "unknown"
	}
}
