package ember

import opensimplex "github.com/ojrac/opensimplex-go"

// NoiseSource is a coherent 2D noise field returning values in [-1, 1].
type NoiseSource interface {
	Noise2(x, y float64) float64
}

// SimplexNoise is an OpenSimplex field.
type SimplexNoise struct {
	n opensimplex.Noise
}

// NewSimplexNoise returns a field seeded with seed. Equal seeds produce
// identical fields.
func NewSimplexNoise(seed int64) *SimplexNoise {
	return &SimplexNoise{n: opensimplex.New(seed)}
}

// Noise2 implements NoiseSource.
func (s *SimplexNoise) Noise2(x, y float64) float64 {
	return s.n.Eval2(x, y)
}
