package models

// Band is a CEFR proficiency tag describing word difficulty.
type Band string

const (
	BandA1 Band = "A1"
	BandA2 Band = "A2"
	BandB1 Band = "B1"
	BandB2 Band = "B2"
	BandC1 Band = "C1"
	BandC2 Band = "C2"
)

// BandGroup is a coarse summary grouping of CEFR bands.
type BandGroup string

const (
	GroupBasic        BandGroup = "basic"
	GroupIntermediate BandGroup = "intermediate"
	GroupAdvanced     BandGroup = "advanced"
)

// Bands returns the six CEFR bands in ascending order.
func Bands() []Band {
	return []Band{BandA1, BandA2, BandB1, BandB2, BandC1, BandC2}
}

// BandGroups returns the summary groups in ascending order.
func BandGroups() []BandGroup {
	return []BandGroup{GroupBasic, GroupIntermediate, GroupAdvanced}
}

// Valid reports whether b is one of the six CEFR bands.
func (b Band) Valid() bool {
	switch b {
	case BandA1, BandA2, BandB1, BandB2, BandC1, BandC2:
		return true
	}
	return false
}

// Group maps the band to its summary group. Unknown bands fall into
// the basic group so dashboard totals stay consistent.
func (b Band) Group() BandGroup {
	switch b {
	case BandB1, BandB2:
		return GroupIntermediate
	case BandC1, BandC2:
		return GroupAdvanced
	default:
		return GroupBasic
	}
}
