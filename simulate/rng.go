package simulate

import (
	"golang.org/x/exp/rand"
)

// ensembleStream tags the noise-ensemble stream so it can never collide
// with a trial stream derived from the same master seed.
const ensembleStream = ^uint64(0)

// deriveSeed mixes (master, stream) through a SplitMix64 step. Each trial
// gets its own stream index, so the resulting sources are independent of
// execution order and of how trials are split across workers.
func deriveSeed(master, stream uint64) uint64 {
	z := master + (stream+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// trialSource returns the random source owned by one trial.
func trialSource(master uint64, trial int) rand.Source {
	return rand.NewSource(deriveSeed(master, uint64(trial)))
}

// ensembleSource returns the random source for the analyzer's independent
// noise draws.
func ensembleSource(master uint64) rand.Source {
	return rand.NewSource(deriveSeed(master, ensembleStream))
}
