package chip8

const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Graphics is the monochrome frame buffer, one bool per pixel, row major.
type Graphics struct {
	pixels [DisplayWidth * DisplayHeight]bool
}

func (g *Graphics) clear() {
	g.pixels = [DisplayWidth * DisplayHeight]bool{}
}

func (g *Graphics) getPixel(x, y int) bool {
	return g.pixels[x+y*DisplayWidth]
}

// draw XORs an 8-pixel wide sprite at (x, y), wrapping around the screen
// edges. It reports whether any set pixel was cleared.
func (g *Graphics) draw(sprite []uint8, x, y uint8) bool {
	hit := false
	for row, bits := range sprite {
		py := (int(y) + row) % DisplayHeight
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := (int(x) + col) % DisplayWidth
			idx := px + py*DisplayWidth
			if g.pixels[idx] {
				hit = true
			}
			g.pixels[idx] = !g.pixels[idx]
		}
	}
	return hit
}
