package fontkit

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Weight specifies the weight of a font face.
type Weight int

const (
	// WeightNormal is regular weight.
	WeightNormal Weight = iota
	// WeightBold is bold weight.
	WeightBold
)

// String returns the string representation of the weight.
func (w Weight) String() string {
	switch w {
	case WeightNormal:
		return "Normal"
	case WeightBold:
		return "Bold"
	default:
		return unknownStr
	}
}

// Slant specifies the slant of a font face.
type Slant int

const (
	// SlantNormal is upright.
	SlantNormal Slant = iota
	// SlantItalic is italic.
	SlantItalic
	// SlantOblique is oblique (slanted upright forms).
	SlantOblique
)

// String returns the string representation of the slant.
func (s Slant) String() string {
	switch s {
	case SlantNormal:
		return "Normal"
	case SlantItalic:
		return "Italic"
	case SlantOblique:
		return "Oblique"
	default:
		return unknownStr
	}
}

// FontDesc describes a font face to load: a family name plus the desired
// style. Style is a free-form named style ("Regular", "Medium Italic");
// when it is empty, Weight and Slant select the face instead.
type FontDesc struct {
	Family string
	Style  string
	Weight Weight
	Slant  Slant
}

// String returns a human-readable description, e.g.
// "Mono - Regular" or "Mono - weight=Bold slant=Italic".
func (d FontDesc) String() string {
	if d.Style != "" {
		return fmt.Sprintf("%s - %s", d.Family, d.Style)
	}
	return fmt.Sprintf("%s - weight=%s slant=%s", d.Family, d.Weight, d.Slant)
}

// NormalizedFamily returns the family name in canonical form for identity
// comparisons: surrounding whitespace trimmed, internal whitespace runs
// collapsed, Unicode NFC, case-folded. Two descriptors whose families
// normalize equally address the same font.
func (d FontDesc) NormalizedFamily() string {
	family := strings.Join(strings.Fields(d.Family), " ")
	family = norm.NFC.String(family)
	return cases.Fold().String(family)
}
