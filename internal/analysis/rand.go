package analysis

import "math/rand"

// Rand supplies the random draws used by synthetic generation and forecasting.
// It is injected so tests can pin draws to fixed values.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

type seededRand struct {
	r *rand.Rand
}

// NewRand returns a Rand backed by math/rand with the given seed.
func NewRand(seed int64) Rand {
	return &seededRand{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRand) Float64() float64 {
	return s.r.Float64()
}

// unit maps a draw to the uniform [-1, 1) range.
func unit(r Rand) float64 {
	return r.Float64()*2 - 1
}
