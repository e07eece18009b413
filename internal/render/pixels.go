package render

import "image/color"

// fillRGBA converts cell values into RGBA pixels in buf using colorFor.
// The mapping is resolved once per distinct value through a small table,
// so the per-cell loop is a plain copy.
func fillRGBA(buf []byte, cells []uint8, colorFor func(uint8) color.RGBA) {
	var table [256]color.RGBA
	var known [256]bool
	for i, c := range cells {
		if !known[c] {
			table[c] = colorFor(c)
			known[c] = true
		}
		col := table[c]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
