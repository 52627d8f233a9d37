package percolation

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible cell run: two runs with
// the same SimulationKey and identical lattice configuration produce
// bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value. Panics on a
// zero seed (see mustPositiveSeed): callers deriving seeds from external
// entropy or from a cell index must never let that derivation collapse to
// zero.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(mustPositiveSeed(seed))
}

// Subsystem names partition the single master seed into independent,
// reproducible pseudorandom streams.
const (
	// SubsystemBonds draws every in-plane and inter-layer bond's
	// Bernoulli trial.
	SubsystemBonds = "bonds"
	// SubsystemSiteTest draws the global and per-layer random test sites
	// consumed by the percolation analyzer's site-test step.
	SubsystemSiteTest = "sitetest"
)

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, so that enabling or disabling one measurement (e.g. jumps)
// never perturbs the random draws another measurement depends on.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName), except for
// SubsystemBonds, which uses the master seed directly for backward
// compatibility with single-stream configurations.
//
// Thread-safety: NOT thread-safe. A worker must own one PartitionedRNG for
// the exclusive duration of one grid cell's runs (see the concurrency
// model in spec.md §5).
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemBonds {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// bernoulli draws a single Bernoulli(p) trial: true with probability p.
func bernoulli(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// drawSiteTest draws the site-test random sites consumed by the analyzer,
// in a fixed order: one global (x, y, l) triple, then one (x, y) pair per
// layer (indexed by its own layer number). This order is the
// reproducibility contract noted in spec.md §9 — re-implementers must
// document and preserve it.
func drawSiteTest(rng *rand.Rand, dims Dims) (globalSite [3]int, perLayer [][2]int) {
	globalSite = [3]int{rng.Intn(dims.Lx), rng.Intn(dims.Ly), rng.Intn(dims.Z)}

	perLayer = make([][2]int, dims.Z)
	for l := 0; l < dims.Z; l++ {
		perLayer[l] = [2]int{rng.Intn(dims.Lx), rng.Intn(dims.Ly)}
	}

	return globalSite, perLayer
}

// mustPositiveSeed guards against a zero seed silently producing the
// math/rand default stream twice across subsystems with identical hashes;
// callers constructing a SimulationKey from external entropy should run the
// value through this check before use.
func mustPositiveSeed(seed int64) int64 {
	if seed == 0 {
		panic("percolation: refusing a zero RNG seed")
	}
	return seed
}
