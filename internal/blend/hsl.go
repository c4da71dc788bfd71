package blend

// The non-separable modes (hue, saturation, color, luminosity) work on the
// whole colour triplet in straight-alpha [0, 1] space, following the
// Compositing and Blending Level 1 definitions of Lum, Sat, SetLum and
// SetSat.

type rgb [3]float64

func (c rgb) lum() float64 {
	return 0.30*c[0] + 0.59*c[1] + 0.11*c[2]
}

func (c rgb) sat() float64 {
	return max(c[0], c[1], c[2]) - min(c[0], c[1], c[2])
}

// withLum shifts c to luminance l and pulls out-of-gamut components back
// towards the grey axis.
func (c rgb) withLum(l float64) rgb {
	d := l - c.lum()
	for i := range c {
		c[i] += d
	}
	l = c.lum()
	lo := min(c[0], c[1], c[2])
	hi := max(c[0], c[1], c[2])
	if lo < 0 {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-lo)
		}
	}
	if hi > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(hi-l)
		}
	}
	return c
}

// withSat rescales c so that max - min == s, keeping the order of the
// components. A grey input stays grey.
func (c rgb) withSat(s float64) rgb {
	lo, mid, hi := 0, 1, 2
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[mid] > c[hi] {
		mid, hi = hi, mid
	}
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[hi] <= c[lo] {
		return c
	}
	var out rgb
	out[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
	out[hi] = s
	return out
}

func hue(s, b rgb) rgb        { return s.withSat(b.sat()).withLum(b.lum()) }
func saturation(s, b rgb) rgb { return b.withSat(s.sat()).withLum(b.lum()) }
func colorMode(s, b rgb) rgb  { return s.withLum(b.lum()) }
func luminosity(s, b rgb) rgb { return b.withLum(s.lum()) }

func blendHue(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, hue)
}

func blendSaturation(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, saturation)
}

func blendColor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, colorMode)
}

func blendLuminosity(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, luminosity)
}

// nonSeparable composites premultiplied pixels with a triplet blend:
// result = (1 - Sa)·D + (1 - Da)·S + Sa·Da·B(Cs, Cb).
func nonSeparable(sr, sg, sb, sa, dr, dg, db, da byte, fn func(s, b rgb) rgb) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}
	src := rgb{float64(sr) / float64(sa), float64(sg) / float64(sa), float64(sb) / float64(sa)}
	dst := rgb{float64(dr) / float64(da), float64(dg) / float64(da), float64(db) / float64(da)}
	mixed := fn(src, dst)

	as := float64(sa) / 255
	ab := float64(da) / 255
	a := addClamp(sa, da-mulDiv255(sa, da))
	ch := func(cs, cb byte, v float64) byte {
		out := float64(cs)/255*(1-ab) + float64(cb)/255*(1-as) + as*ab*v
		return minByte(unitToByte(out), a)
	}
	return ch(sr, dr, mixed[0]), ch(sg, dg, mixed[1]), ch(sb, db, mixed[2]), a
}
