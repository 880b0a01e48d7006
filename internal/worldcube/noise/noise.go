// Package noise provides a deterministic terrain sampler matching the
// fn(x, y, z int32) -> u8 contract WorldCube's macro layer consumes.
// The height field is simplex noise fed through a small fractal-sum,
// the standard way of turning single-frequency noise into terrain-scale
// variation.
package noise

import "math"

// Material values this sampler emits. WorldCube treats 0 as empty.
const (
	Empty      uint8 = 0
	Surface    uint8 = 1
	Subsurface uint8 = 2
)

// Generator turns a seed into a deterministic height field and samples
// it into materials for WorldCube's macro layer.
type Generator struct {
	simplex *simplex

	octaves     int
	lacunarity  float64
	persistence float64
	scale       float64

	baseHeight     float64
	amplitude      float64
	subsurfaceDrop float64
}

// New builds a Generator with terrain-scale defaults, seeded
// deterministically from seed.
func New(seed int64) *Generator {
	return &Generator{
		simplex:        newSimplex(seed),
		octaves:        4,
		lacunarity:     2.0,
		persistence:    0.5,
		scale:          0.01,
		baseHeight:     32,
		amplitude:      24,
		subsurfaceDrop: 4,
	}
}

// Sample implements the core's sampler contract: the material at a
// world-lattice voxel, derived from a height field evaluated at (x, z).
func (g *Generator) Sample(x, y, z int32) uint8 {
	h := g.heightAt(float64(x), float64(z))
	fy := float64(y)
	switch {
	case fy >= h:
		return Empty
	case fy >= h-g.subsurfaceDrop:
		return Surface
	default:
		return Subsurface
	}
}

func (g *Generator) heightAt(x, z float64) float64 {
	return g.baseHeight + g.amplitude*g.fbm2D(x, z)
}

// fbm2D sums octaves of simplex noise at increasing frequency and
// decreasing amplitude, normalizing by the maximum possible amplitude so
// the result stays within roughly [-1, 1].
func (g *Generator) fbm2D(x, z float64) float64 {
	value := 0.0
	amplitude := 1.0
	frequency := g.scale
	maxValue := 0.0

	for i := 0; i < g.octaves; i++ {
		value += amplitude * g.simplex.noise2D(x*frequency, z*frequency)
		maxValue += amplitude
		amplitude *= g.persistence
		frequency *= g.lacunarity
	}
	return value / maxValue
}

// simplex implements 2D Simplex noise (Perlin/Gustavson), seeded via a
// linear-congruential shuffle of the permutation table.
type simplex struct {
	perm      [512]uint8
	permMod12 [512]uint8
}

var grad3 = [12][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {1, 0}, {-1, 0},
	{0, 1}, {0, -1}, {0, 1}, {0, -1},
}

const (
	f2 = 0.36602540378 // 0.5 * (sqrt(3) - 1)
	g2 = 0.21132486541 // (3 - sqrt(3)) / 6
)

func newSimplex(seed int64) *simplex {
	s := &simplex{}
	p := make([]uint8, 256)
	for i := range p {
		p[i] = uint8(i)
	}
	cur := seed
	for i := 255; i > 0; i-- {
		cur = (cur * 16807) % 2147483647
		j := int(cur) % (i + 1)
		p[i], p[j] = p[j], p[i]
	}
	for i := 0; i < 512; i++ {
		s.perm[i] = p[i&255]
		s.permMod12[i] = s.perm[i] % 12
	}
	return s
}

func (s *simplex) noise2D(xin, yin float64) float64 {
	t := (xin + yin) * f2
	i := int(math.Floor(xin + t))
	j := int(math.Floor(yin + t))

	t2 := float64(i+j) * g2
	x0 := xin - (float64(i) - t2)
	y0 := yin - (float64(j) - t2)

	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := i & 255
	jj := j & 255
	gi0 := int(s.permMod12[ii+int(s.perm[jj])])
	gi1 := int(s.permMod12[ii+i1+int(s.perm[jj+j1])])
	gi2 := int(s.permMod12[ii+1+int(s.perm[jj+1])])

	n0 := corner(0.5-x0*x0-y0*y0, grad3[gi0], x0, y0)
	n1 := corner(0.5-x1*x1-y1*y1, grad3[gi1], x1, y1)
	n2 := corner(0.5-x2*x2-y2*y2, grad3[gi2], x2, y2)

	return 70.0 * (n0 + n1 + n2)
}

func corner(t, grad [2]float64, x, y float64) float64 {
	if t < 0 {
		return 0
	}
	t *= t
	return t * t * (grad[0]*x + grad[1]*y)
}
