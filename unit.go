// unit.go — physical units and exact conversion between them
//
// Units are grouped into families (length, angle, time, frequency,
// resolution, percentage, none). Within a family every unit carries an exact
// rational factor to the family's canonical unit, so conversion composes
// without rounding. Units from different families are never comparable, and
// per the comparison rules a unitless number only ever meets another
// unitless number.

package grass

import "math/big"

// UnitKind identifies one concrete unit.
type UnitKind int

const (
	UnitNone UnitKind = iota
	UnitPercent

	// lengths (canonical: px)
	UnitPx
	UnitMm
	UnitIn
	UnitCm
	UnitQ
	UnitPt
	UnitPc

	// angles (canonical: deg)
	UnitDeg
	UnitGrad
	UnitRad
	UnitTurn

	// time (canonical: s)
	UnitS
	UnitMs

	// frequency (canonical: Hz)
	UnitHz
	UnitKhz

	// resolution (canonical: dpi)
	UnitDpi
	UnitDpcm
	UnitDppx

	// any unit the table does not know; the spelling is preserved
	UnitUnknown
)

// UnitFamily groups mutually convertible units.
type UnitFamily int

const (
	FamilyNone UnitFamily = iota
	FamilyPercent
	FamilyLength
	FamilyAngle
	FamilyTime
	FamilyFrequency
	FamilyResolution
	FamilyUnknown
)

// Unit is a unit kind plus, for unknown units, the original spelling.
type Unit struct {
	Kind UnitKind
	Name string // set only for UnitUnknown
}

var NoUnit = Unit{Kind: UnitNone}

var unitNames = map[UnitKind]string{
	UnitNone:    "",
	UnitPercent: "%",
	UnitPx:      "px",
	UnitMm:      "mm",
	UnitIn:      "in",
	UnitCm:      "cm",
	UnitQ:       "q",
	UnitPt:      "pt",
	UnitPc:      "pc",
	UnitDeg:     "deg",
	UnitGrad:    "grad",
	UnitRad:     "rad",
	UnitTurn:    "turn",
	UnitS:       "s",
	UnitMs:      "ms",
	UnitHz:      "Hz",
	UnitKhz:     "kHz",
	UnitDpi:     "dpi",
	UnitDpcm:    "dpcm",
	UnitDppx:    "dppx",
}

var unitByName = map[string]UnitKind{
	"%":    UnitPercent,
	"px":   UnitPx,
	"mm":   UnitMm,
	"in":   UnitIn,
	"cm":   UnitCm,
	"q":    UnitQ,
	"pt":   UnitPt,
	"pc":   UnitPc,
	"deg":  UnitDeg,
	"grad": UnitGrad,
	"rad":  UnitRad,
	"turn": UnitTurn,
	"s":    UnitS,
	"ms":   UnitMs,
	"hz":   UnitHz,
	"khz":  UnitKhz,
	"dpi":  UnitDpi,
	"dpcm": UnitDpcm,
	"dppx": UnitDppx,
}

// UnitFromString maps a unit spelling (case-insensitive for the known set)
// to its Unit. Unknown spellings are preserved verbatim.
func UnitFromString(s string) Unit {
	if s == "" {
		return NoUnit
	}
	if k, ok := unitByName[lowerASCII(s)]; ok {
		return Unit{Kind: k}
	}
	return Unit{Kind: UnitUnknown, Name: s}
}

func (u Unit) String() string {
	if u.Kind == UnitUnknown {
		return u.Name
	}
	return unitNames[u.Kind]
}

// Family returns the conversion family of the unit.
func (u Unit) Family() UnitFamily {
	switch u.Kind {
	case UnitNone:
		return FamilyNone
	case UnitPercent:
		return FamilyPercent
	case UnitPx, UnitMm, UnitIn, UnitCm, UnitQ, UnitPt, UnitPc:
		return FamilyLength
	case UnitDeg, UnitGrad, UnitRad, UnitTurn:
		return FamilyAngle
	case UnitS, UnitMs:
		return FamilyTime
	case UnitHz, UnitKhz:
		return FamilyFrequency
	case UnitDpi, UnitDpcm, UnitDppx:
		return FamilyResolution
	default:
		return FamilyUnknown
	}
}

// Comparable reports whether values in u and o can be ordered against each
// other: same family, and unknown units only against themselves.
func (u Unit) Comparable(o Unit) bool {
	if u.Kind == UnitUnknown || o.Kind == UnitUnknown {
		return u == o
	}
	return u.Family() == o.Family()
}

// conversionFactors maps each unit to its exact factor relative to the
// family canonical (px, deg, s, Hz, dpi). rad uses the conventional decimal
// expansion of 180/pi; it is the one factor that is inherently approximate.
var conversionFactors = map[UnitKind]*big.Rat{
	UnitPx: big.NewRat(1, 1),
	UnitIn: big.NewRat(96, 1),
	UnitCm: big.NewRat(9600, 254),
	UnitMm: big.NewRat(960, 254),
	UnitQ:  big.NewRat(240, 254),
	UnitPt: big.NewRat(4, 3),
	UnitPc: big.NewRat(16, 1),

	UnitDeg:  big.NewRat(1, 1),
	UnitGrad: big.NewRat(9, 10),
	UnitRad:  mustRat("57.2957795131"),
	UnitTurn: big.NewRat(360, 1),

	UnitS:  big.NewRat(1, 1),
	UnitMs: big.NewRat(1, 1000),

	UnitHz:  big.NewRat(1, 1),
	UnitKhz: big.NewRat(1000, 1),

	UnitDpi:  big.NewRat(1, 1),
	UnitDpcm: big.NewRat(254, 100),
	UnitDppx: big.NewRat(96, 1),
}

func mustRat(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic("bad conversion factor: " + s)
	}
	return r
}

// convert re-expresses n, currently in unit from, in unit to. Callers must
// have established comparability first; converting within FamilyNone,
// FamilyPercent or an unknown unit is the identity.
func convert(n Number, from, to Unit) Number {
	if from == to {
		return n
	}
	ff, ok1 := conversionFactors[from.Kind]
	tf, ok2 := conversionFactors[to.Kind]
	if !ok1 || !ok2 {
		return n
	}
	factor := new(big.Rat).Quo(ff, tf)
	return n.Mul(Number{v: factor})
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
