// builtin_color.go — the color builtin catalog
//
// Channel parameters accept either 0–255 numbers or percentages; alpha
// accepts 0–1 or a percentage. HSL adjustments run through go-colorful and
// clamp back into gamut. Colors produced here are computed colors, so they
// render as hex (or rgba) rather than a preserved source spelling.

package grass

import (
	"math/big"
)

func registerColorBuiltins(m map[string]Builtin) {
	m["rgb"] = rgbBuiltin
	m["rgba"] = rgbBuiltin

	m["hsl"] = hslBuiltin
	m["hsla"] = hslBuiltin

	m["red"] = colorChannelBuiltin(func(c *Color) Value {
		return DimensionVal(NewNumberInt(int64(c.R)), NoUnit)
	})
	m["green"] = colorChannelBuiltin(func(c *Color) Value {
		return DimensionVal(NewNumberInt(int64(c.G)), NoUnit)
	})
	m["blue"] = colorChannelBuiltin(func(c *Color) Value {
		return DimensionVal(NewNumberInt(int64(c.B)), NoUnit)
	})
	m["alpha"] = colorChannelBuiltin(func(c *Color) Value {
		return DimensionVal(floatNumber(c.A), NoUnit)
	})
	m["opacity"] = m["alpha"]

	m["hue"] = colorChannelBuiltin(func(c *Color) Value {
		h, _, _ := c.hsl()
		return DimensionVal(floatNumber(h), Unit{Kind: UnitDeg})
	})
	m["saturation"] = colorChannelBuiltin(func(c *Color) Value {
		_, s, _ := c.hsl()
		return DimensionVal(floatNumber(s*100), Unit{Kind: UnitPercent})
	})
	m["lightness"] = colorChannelBuiltin(func(c *Color) Value {
		_, _, l := c.hsl()
		return DimensionVal(floatNumber(l*100), Unit{Kind: UnitPercent})
	})

	m["lighten"] = hslAdjustBuiltin(func(h, s, l, amt float64) (float64, float64, float64) {
		return h, s, l + amt
	})
	m["darken"] = hslAdjustBuiltin(func(h, s, l, amt float64) (float64, float64, float64) {
		return h, s, l - amt
	})
	m["saturate"] = hslAdjustBuiltin(func(h, s, l, amt float64) (float64, float64, float64) {
		return h, s + amt, l
	})
	m["desaturate"] = hslAdjustBuiltin(func(h, s, l, amt float64) (float64, float64, float64) {
		return h, s - amt, l
	})

	m["grayscale"] = colorChannelBuiltin(func(c *Color) Value {
		h, _, l := c.hsl()
		return ColorVal(c.withHsl(h, 0, l))
	})
	m["complement"] = colorChannelBuiltin(func(c *Color) Value {
		h, s, l := c.hsl()
		return ColorVal(c.withHsl(h+180, s, l))
	})

	m["mix"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(3); err != nil {
			return Value{}, err
		}
		v1, err := arg(args, 0, "color1", scope, sel)
		if err != nil {
			return Value{}, err
		}
		c1, err := wantColor(v1, "color1", args.Span())
		if err != nil {
			return Value{}, err
		}
		v2, err := arg(args, 1, "color2", scope, sel)
		if err != nil {
			return Value{}, err
		}
		c2, err := wantColor(v2, "color2", args.Span())
		if err != nil {
			return Value{}, err
		}
		weight, err := argRatio(args, 2, "weight", 0.5, scope, sel)
		if err != nil {
			return Value{}, err
		}
		return ColorVal(mixColors(c1, c2, weight)), nil
	}

	m["invert"] = func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(2); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "color", scope, sel)
		if err != nil {
			return Value{}, err
		}
		c, err := wantColor(v, "color", args.Span())
		if err != nil {
			return Value{}, err
		}
		weight, err := argRatio(args, 1, "weight", 1, scope, sel)
		if err != nil {
			return Value{}, err
		}
		inv := NewColor(255-c.R, 255-c.G, 255-c.B, c.A)
		return ColorVal(mixColors(inv, c, weight)), nil
	}
}

func rgbBuiltin(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
	if err := args.MaxArgs(4); err != nil {
		return Value{}, err
	}
	first, err := arg(args, 0, "red", scope, sel)
	if err != nil {
		return Value{}, err
	}
	if first.Tag == VColor {
		// rgba($color, $alpha)
		c := first.color()
		a, err := argRatio(args, 1, "alpha", c.A, scope, sel)
		if err != nil {
			return Value{}, err
		}
		return ColorVal(NewColor(c.R, c.G, c.B, a)), nil
	}

	r, err := channelByte(first, "red", args.Span())
	if err != nil {
		return Value{}, err
	}
	gv, err := arg(args, 1, "green", scope, sel)
	if err != nil {
		return Value{}, err
	}
	g, err := channelByte(gv, "green", args.Span())
	if err != nil {
		return Value{}, err
	}
	bv, err := arg(args, 2, "blue", scope, sel)
	if err != nil {
		return Value{}, err
	}
	b, err := channelByte(bv, "blue", args.Span())
	if err != nil {
		return Value{}, err
	}
	a, err := argRatio(args, 3, "alpha", 1, scope, sel)
	if err != nil {
		return Value{}, err
	}
	return ColorVal(NewColor(r, g, b, a)), nil
}

func hslBuiltin(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
	if err := args.MaxArgs(4); err != nil {
		return Value{}, err
	}
	hv, err := arg(args, 0, "hue", scope, sel)
	if err != nil {
		return Value{}, err
	}
	hd, err := wantNumber(hv, "hue", args.Span())
	if err != nil {
		return Value{}, err
	}
	sv, err := arg(args, 1, "saturation", scope, sel)
	if err != nil {
		return Value{}, err
	}
	s, err := ratioOf(sv, "saturation", args.Span())
	if err != nil {
		return Value{}, err
	}
	lv, err := arg(args, 2, "lightness", scope, sel)
	if err != nil {
		return Value{}, err
	}
	l, err := ratioOf(lv, "lightness", args.Span())
	if err != nil {
		return Value{}, err
	}
	a, err := argRatio(args, 3, "alpha", 1, scope, sel)
	if err != nil {
		return Value{}, err
	}
	base := NewColor(0, 0, 0, a)
	return ColorVal(base.withHsl(numFloat(hd.Num), s, l)), nil
}

// colorChannelBuiltin wraps a one-color accessor.
func colorChannelBuiltin(f func(*Color) Value) Builtin {
	return func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(1); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "color", scope, sel)
		if err != nil {
			return Value{}, err
		}
		c, err := wantColor(v, "color", args.Span())
		if err != nil {
			return Value{}, err
		}
		return f(c), nil
	}
}

// hslAdjustBuiltin wraps a (color, amount) HSL transform; amount is a
// percentage applied as a 0..1 delta.
func hslAdjustBuiltin(f func(h, s, l, amt float64) (float64, float64, float64)) Builtin {
	return func(args *CallArgs, scope *Scope, sel Selector) (Value, error) {
		if err := args.MaxArgs(2); err != nil {
			return Value{}, err
		}
		v, err := arg(args, 0, "color", scope, sel)
		if err != nil {
			return Value{}, err
		}
		c, err := wantColor(v, "color", args.Span())
		if err != nil {
			return Value{}, err
		}
		av, err := arg(args, 1, "amount", scope, sel)
		if err != nil {
			return Value{}, err
		}
		ad, err := wantNumber(av, "amount", args.Span())
		if err != nil {
			return Value{}, err
		}
		amt := numFloat(ad.Num)
		if ad.Unit.Kind == UnitPercent {
			amt /= 100
		}
		h, s, l := c.hsl()
		return ColorVal(c.withHsl(f(h, s, l, amt))), nil
	}
}

// channelByte converts a channel argument (0–255 or a percentage) to a byte.
func channelByte(v Value, name string, sp Span) (uint8, error) {
	d, err := wantNumber(v, name, sp)
	if err != nil {
		return 0, err
	}
	f := numFloat(d.Num)
	if d.Unit.Kind == UnitPercent {
		f = f / 100 * 255
	}
	if f < 0 {
		f = 0
	}
	if f > 255 {
		f = 255
	}
	return uint8(f + 0.5), nil
}

// argRatio fetches an optional 0..1 parameter; percentages divide by 100.
func argRatio(args *CallArgs, pos int, name string, def float64, scope *Scope, sel Selector) (float64, error) {
	v, err := argOr(args, pos, name, DimensionVal(floatNumber(def), NoUnit), scope, sel)
	if err != nil {
		return 0, err
	}
	return ratioOf(v, name, args.Span())
}

// ratioOf converts a number value to a clamped 0..1 ratio.
func ratioOf(v Value, name string, sp Span) (float64, error) {
	d, err := wantNumber(v, name, sp)
	if err != nil {
		return 0, err
	}
	f := numFloat(d.Num)
	if d.Unit.Kind == UnitPercent {
		f /= 100
	}
	return clamp01(f), nil
}

// mixColors blends two colors with the given weight for the first, the
// classic alpha-compensated mix.
func mixColors(c1, c2 *Color, weight float64) *Color {
	w := weight*2 - 1
	a := c1.A - c2.A

	var w1 float64
	if w*a == -1 {
		w1 = (w + 1) / 2
	} else {
		w1 = ((w+a)/(1+w*a) + 1) / 2
	}
	w2 := 1 - w1

	blend := func(x, y uint8) uint8 {
		f := float64(x)*w1 + float64(y)*w2
		if f < 0 {
			f = 0
		}
		if f > 255 {
			f = 255
		}
		return uint8(f + 0.5)
	}
	alpha := c1.A*weight + c2.A*(1-weight)
	return NewColor(blend(c1.R, c2.R), blend(c1.G, c2.G), blend(c1.B, c2.B), alpha)
}

func numFloat(n Number) float64 {
	f, _ := n.rat().Float64()
	return f
}

func floatNumber(f float64) Number {
	r, ok := new(big.Rat).SetString(formatAlpha(f))
	if !ok {
		return Number{}
	}
	return Number{v: r}
}
