package grass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Unit_FromString(t *testing.T) {
	assert.Equal(t, UnitPx, UnitFromString("px").Kind)
	assert.Equal(t, UnitPx, UnitFromString("PX").Kind)
	assert.Equal(t, UnitKhz, UnitFromString("kHz").Kind)
	assert.Equal(t, NoUnit, UnitFromString(""))

	fr := UnitFromString("fr")
	assert.Equal(t, UnitUnknown, fr.Kind)
	assert.Equal(t, "fr", fr.Name)
	assert.Equal(t, "fr", fr.String())
}

func Test_Unit_Comparable(t *testing.T) {
	px := UnitFromString("px")
	in := UnitFromString("in")
	s := UnitFromString("s")
	fr := UnitFromString("fr")
	vw := UnitFromString("vw")

	assert.True(t, px.Comparable(in))
	assert.True(t, in.Comparable(px))
	assert.False(t, px.Comparable(s))
	assert.True(t, NoUnit.Comparable(NoUnit))
	assert.False(t, NoUnit.Comparable(px))
	assert.False(t, px.Comparable(NoUnit))

	// unknown units only match themselves
	assert.True(t, fr.Comparable(fr))
	assert.False(t, fr.Comparable(vw))
	assert.False(t, fr.Comparable(px))
}

func Test_Unit_ConvertExact(t *testing.T) {
	in := UnitFromString("in")
	px := UnitFromString("px")
	cm := UnitFromString("cm")

	assert.Equal(t, "96", convert(NewNumberInt(1), in, px).String())
	assert.Equal(t, "5.08", convert(NewNumberInt(2), in, cm).String())

	// round trip loses nothing
	back := convert(convert(NewNumberInt(7), cm, in), in, cm)
	assert.True(t, back.Equal(NewNumberInt(7)))
}

func Test_Unit_ConvertAngleAndTime(t *testing.T) {
	assert.Equal(t, "360", convert(NewNumberInt(1), UnitFromString("turn"), UnitFromString("deg")).String())
	assert.Equal(t, "100", convert(NewNumberInt(90), UnitFromString("deg"), UnitFromString("grad")).String())
	assert.Equal(t, "1500", convert(num(t, "1.5"), UnitFromString("s"), UnitFromString("ms")).String())
	assert.Equal(t, "2000", convert(NewNumberInt(2), UnitFromString("khz"), UnitFromString("hz")).String())
}

func Test_Unit_Families(t *testing.T) {
	assert.Equal(t, FamilyLength, UnitFromString("pt").Family())
	assert.Equal(t, FamilyAngle, UnitFromString("rad").Family())
	assert.Equal(t, FamilyTime, UnitFromString("ms").Family())
	assert.Equal(t, FamilyFrequency, UnitFromString("hz").Family())
	assert.Equal(t, FamilyResolution, UnitFromString("dppx").Family())
	assert.Equal(t, FamilyPercent, UnitFromString("%").Family())
	assert.Equal(t, FamilyNone, NoUnit.Family())
	assert.Equal(t, FamilyUnknown, UnitFromString("fr").Family())
}
