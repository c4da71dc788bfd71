package blend

import "math"

// separableBlend applies a per-channel blend function B(Cs, Cb) using
// Result = (1 - Sa)·D + (1 - Da)·S + Sa·Da·B(Cs, Cb), where Cs and Cb are
// the unpremultiplied source and backdrop channels in [0,1].
func separableBlend(sr, sg, sb, sa, dr, dg, db, da byte, blendChan func(s, d float64) float64) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	as := float64(sa) / 255
	ab := float64(da) / 255
	a := addClamp(sa, da-mulDiv255(sa, da))

	ch := func(cs, cb byte) byte {
		s := float64(cs) / 255
		d := float64(cb) / 255
		us := math.Min(s/as, 1)
		ud := math.Min(d/ab, 1)
		v := s*(1-ab) + d*(1-as) + as*ab*blendChan(us, ud)
		return minByte(unitToByte(v), a)
	}
	return ch(sr, dr), ch(sg, dg), ch(sb, db), a
}

func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float64) float64 {
		return s * d
	})
}

func blendScreen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float64) float64 {
		return s + d - s*d
	})
}

func blendDarken(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, math.Min)
}

func blendLighten(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, math.Max)
}

// hardLight is B(Cb, Cs) with the source deciding between multiply and screen.
func hardLight(s, d float64) float64 {
	if s <= 0.5 {
		return d * 2 * s
	}
	t := 2*s - 1
	return d + t - d*t
}

// blendOverlay is HardLight with the layers swapped.
func blendOverlay(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float64) float64 {
		return hardLight(d, s)
	})
}

func blendHardLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, hardLight)
}

// blendColorDodge brightens the backdrop to reflect the source.
// Formula: B = 0 if Cb == 0; 1 if Cs == 1; else min(1, Cb / (1 - Cs))
func blendColorDodge(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float64) float64 {
		switch {
		case d == 0:
			return 0
		case s >= 1:
			return 1
		default:
			return math.Min(1, d/(1-s))
		}
	})
}

// blendColorBurn darkens the backdrop to reflect the source.
// Formula: B = 1 if Cb == 1; 0 if Cs == 0; else 1 - min(1, (1 - Cb) / Cs)
func blendColorBurn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float64) float64 {
		switch {
		case d >= 1:
			return 1
		case s == 0:
			return 0
		default:
			return 1 - math.Min(1, (1-d)/s)
		}
	})
}

func blendSoftLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float64) float64 {
		if s <= 0.5 {
			return d - (1-2*s)*d*(1-d)
		}
		var dx float64
		if d <= 0.25 {
			dx = ((16*d-12)*d + 4) * d
		} else {
			dx = math.Sqrt(d)
		}
		return d + (2*s-1)*(dx-d)
	})
}

func blendDifference(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float64) float64 {
		return math.Abs(s - d)
	})
}

func blendExclusion(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d float64) float64 {
		return s + d - 2*s*d
	})
}
