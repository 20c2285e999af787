package confetti

import "math/rand"

// Source is a uniform random source over [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns a Source backed by the process-wide generator.
func DefaultSource() Source { return globalSource{} }

// NewSeededSource returns a deterministic Source, mainly for tests and replays.
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// randomInt returns a uniform integer in [0, max].
func randomInt(src Source, max int) int {
	n := int(src.Float64() * float64(max+1))
	if n > max {
		n = max
	}
	return n
}

// coinFlip 抛硬币
func coinFlip(src Source) bool {
	return src.Float64() > 0.5
}
