package domain

type MarkupType string

const (
	MarkupTypePercentage MarkupType = "percentage"
	MarkupTypeFixed      MarkupType = "fixed"
	MarkupTypeSlab       MarkupType = "slab"
)

// MarkupSlab maps a base-cost range to a markup percentage. MaxAmount == nil
// means the range is unbounded above. Matching is inclusive on both ends.
type MarkupSlab struct {
	MinAmount  float64  `json:"minAmount"`
	MaxAmount  *float64 `json:"maxAmount,omitempty"`
	Percentage float64  `json:"percentage"`
}

// MarkupConfig selects and parameterizes one of the three markup schemes.
type MarkupConfig struct {
	Type        MarkupType   `json:"type"`
	Percentage  float64      `json:"percentage,omitempty"`
	FixedAmount float64      `json:"fixedAmount,omitempty"`
	Slabs       []MarkupSlab `json:"slabs,omitempty"`
}

// Matches reports whether a base cost falls inside this slab's range.
func (s MarkupSlab) Matches(base float64) bool {
	if base < s.MinAmount {
		return false
	}
	return s.MaxAmount == nil || base <= *s.MaxAmount
}
