package board

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// Magic bitboard implementation for sliding piece attacks. Magic numbers
// are not shipped as a baked-in table: they are found at process start by
// a deterministic seeded search, one independent search per square per
// piece kind. The search is pure and reproducible — the same seed always
// finds the same numbers — so the resulting tables are as fixed as a
// constant table would be, just computed once instead of typed in.

// Magic holds the magic bitboard data for a single square.
type Magic struct {
	Mask   Bitboard // Relevant occupancy mask (excludes edges)
	Magic  uint64   // Magic multiplier
	Shift  uint8    // Bits to shift right
	Offset uint32   // Index into the flat attack table
}

const (
	bishopTableSize = 5248
	rookTableSize   = 102400

	// magicSeed seeds the deterministic candidate-number search. Fixed so
	// that BuildMagicTables always finds the same magic numbers.
	magicSeed = 0x9E3779B97F4A7C15
)

var (
	bishopMagics [64]Magic
	rookMagics   [64]Magic

	bishopTable [bishopTableSize]Bitboard
	rookTable   [rookTableSize]Bitboard

	magicsOnce sync.Once
)

// xorshiftPRNG is an xorshift64* stream, the reproducible pseudo-random
// source of the magic-number search's candidates.
type xorshiftPRNG struct {
	state uint64
}

func newXorshiftPRNG(seed uint64) *xorshiftPRNG {
	if seed == 0 {
		seed = 1
	}
	return &xorshiftPRNG{state: seed}
}

func (p *xorshiftPRNG) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// sparseCandidate draws three independent values from the stream and ANDs
// them together, which biases the result toward having few set bits —
// magic multipliers with sparse bit patterns tend to produce fewer index
// collisions.
func (p *xorshiftPRNG) sparseCandidate() uint64 {
	return p.next() & p.next() & p.next()
}

// initMagics builds both slider tables if they have not been built yet;
// it does the same as ensureMagics.
func initMagics() {
	ensureMagics()
}

// ensureMagics triggers the one-time magic search and table build the
// first time any slider lookup is needed, and is a no-op afterward. The
// package's init() does not call it; it is exported as BuildMagicTables
// so a caller can pay the (sub-second) search cost at a moment of its
// choosing, e.g. before a latency-sensitive hot path.
func ensureMagics() {
	magicsOnce.Do(buildMagicTables)
}

// BuildMagicTables forces construction of the magic bitboard tables if it
// has not already happened. Safe to call from multiple goroutines; the
// underlying build runs exactly once.
func BuildMagicTables() {
	ensureMagics()
}

type magicJob struct {
	sq     Square
	isRook bool
	offset uint32
	bits   int
}

// buildMagicTables computes the relevant-occupancy mask and flat-table
// offset for every square of both piece kinds (cheap, sequential — the
// offsets are a running sum of table sizes and must be assigned in a
// fixed order), then fans the 128 independent magic-number searches out
// across an errgroup so the one-time startup cost is paid in parallel.
func buildMagicTables() {
	bishopJobs := make([]magicJob, 64)
	var bishopOffset uint32
	for sq := A1; sq <= H8; sq++ {
		mask := bishopMask(sq)
		bits := mask.PopCount()
		bishopJobs[sq] = magicJob{sq: sq, isRook: false, offset: bishopOffset, bits: bits}
		bishopMagics[sq].Mask = mask
		bishopMagics[sq].Shift = uint8(64 - bits)
		bishopMagics[sq].Offset = bishopOffset
		bishopOffset += uint32(1) << uint(bits)
	}

	rookJobs := make([]magicJob, 64)
	var rookOffset uint32
	for sq := A1; sq <= H8; sq++ {
		mask := rookMask(sq)
		bits := mask.PopCount()
		rookJobs[sq] = magicJob{sq: sq, isRook: true, offset: rookOffset, bits: bits}
		rookMagics[sq].Mask = mask
		rookMagics[sq].Shift = uint8(64 - bits)
		rookMagics[sq].Offset = rookOffset
		rookOffset += uint32(1) << uint(bits)
	}

	var g errgroup.Group
	for _, job := range bishopJobs {
		job := job
		g.Go(func() error {
			searchAndFill(job)
			return nil
		})
	}
	for _, job := range rookJobs {
		job := job
		g.Go(func() error {
			searchAndFill(job)
			return nil
		})
	}
	_ = g.Wait() // searchAndFill never returns an error; the search is exhaustive over a practically unbounded stream

	logTableBuild("bishop", 64, bishopTableSize)
	logTableBuild("rook", 64, rookTableSize)
}

// magicCacheGet and magicCachePut let a caller plug in persistent
// memoization of discovered magic numbers (see SetMagicCacheHooks); both
// are nil by default, meaning every process pays the full search cost
// once per run, as spec.md's one-time init contract assumes.
var (
	magicCacheGet func(sq Square, isRook bool) (magic uint64, ok bool)
	magicCachePut func(sq Square, isRook bool, magic uint64)
)

// SetMagicCacheHooks installs cache callbacks consulted by the next
// BuildMagicTables call: get is tried before searching a (square, isRook)
// pair, put is called after a fresh search finds one. Must be called
// before the first slider lookup — ensureMagics fires the build lazily
// on first use, and the hooks have no effect once that has already
// happened. Passing nil for either argument disables that half of the
// cache.
func SetMagicCacheHooks(get func(sq Square, isRook bool) (uint64, bool), put func(sq Square, isRook bool, magic uint64)) {
	magicCacheGet = get
	magicCachePut = put
}

// searchAndFill finds a magic number for one (square, piece kind) pair and
// fills its segment of the flat attack table. A cached candidate is tried
// first and re-verified against the collision check before being trusted,
// so a stale or corrupt cache entry falls back to a fresh search instead
// of silently producing a wrong attack table.
func searchAndFill(job magicJob) {
	mask := bishopMagics[job.sq].Mask
	slow := bishopAttacksSlow
	if job.isRook {
		mask = rookMagics[job.sq].Mask
		slow = rookAttacksSlow
	}

	numEntries := 1 << job.bits
	occupancies := make([]Bitboard, numEntries)
	attacks := make([]Bitboard, numEntries)
	for i := 0; i < numEntries; i++ {
		occupancies[i] = indexToOccupancy(i, job.bits, mask)
		attacks[i] = slow(job.sq, occupancies[i])
	}

	used := make([]Bitboard, numEntries)

	if magicCacheGet != nil {
		if candidate, ok := magicCacheGet(job.sq, job.isRook); ok {
			if fillTable(candidate, job.bits, occupancies, attacks, used) {
				commitMagic(job, candidate, used)
				return
			}
		}
	}

	rng := newXorshiftPRNG(magicSeed ^ squareSeed(job.sq, job.isRook))

	for {
		candidate := rng.sparseCandidate()
		if Bitboard(uint64(mask)*candidate & 0xFF00000000000000).PopCount() < 6 {
			continue
		}
		if !fillTable(candidate, job.bits, occupancies, attacks, used) {
			continue
		}

		commitMagic(job, candidate, used)
		if magicCachePut != nil {
			magicCachePut(job.sq, job.isRook, candidate)
		}
		return
	}
}

// fillTable tries candidate against every enumerated occupancy of a
// square's mask, filling used with the resulting attack table. Returns
// false on an index collision between two different attack sets, leaving
// used in an indeterminate state the caller must not read.
func fillTable(candidate uint64, bits int, occupancies, attacks, used []Bitboard) bool {
	const unset Bitboard = ^Bitboard(0) // attack bitboards never use every bit, safe sentinel
	for i := range used {
		used[i] = unset
	}

	for i := range occupancies {
		idx := (uint64(occupancies[i]) * candidate) >> uint(64-bits)
		if used[idx] != unset && used[idx] != attacks[i] {
			return false
		}
		used[idx] = attacks[i]
	}
	return true
}

// commitMagic publishes a verified candidate and its filled table segment
// into the package-level magic/table arrays for job's square and kind.
func commitMagic(job magicJob, candidate uint64, used []Bitboard) {
	numEntries := uint32(len(used))
	if job.isRook {
		rookMagics[job.sq].Magic = candidate
		copy(rookTable[job.offset:job.offset+numEntries], used)
	} else {
		bishopMagics[job.sq].Magic = candidate
		copy(bishopTable[job.offset:job.offset+numEntries], used)
	}
}

// squareSeed mixes a square and piece kind into the base seed so every
// one of the 128 searches draws from an independent stream.
func squareSeed(sq Square, isRook bool) uint64 {
	v := uint64(sq) * 0x9E3779B1
	if isRook {
		v ^= 0xA5A5A5A5A5A5A5A5
	}
	return v
}

// bishopMask returns the relevant occupancy mask for bishop at square.
// Excludes edge squares since they don't affect the result.
func bishopMask(sq Square) Bitboard {
	return bishopAttacksSlow(sq, 0) & ^(Rank1 | Rank8 | FileA | FileH)
}

// rookMask returns the relevant occupancy mask for rook at square.
func rookMask(sq Square) Bitboard {
	file := sq.File()
	rank := sq.Rank()

	var mask Bitboard

	for f := 1; f < 7; f++ {
		if f != file {
			mask |= SquareBB(NewSquare(f, rank))
		}
	}

	for r := 1; r < 7; r++ {
		if r != rank {
			mask |= SquareBB(NewSquare(file, r))
		}
	}

	return mask
}

// indexToOccupancy converts an index to an occupancy bitboard.
func indexToOccupancy(index, bits int, mask Bitboard) Bitboard {
	var occ Bitboard
	for i := 0; i < bits; i++ {
		sq := mask.LSB()
		mask &= mask - 1
		if index&(1<<i) != 0 {
			occ |= SquareBB(sq)
		}
	}
	return occ
}

// bishopAttacksSlow computes bishop attacks by ray casting (used during
// table construction — never on the move generation hot path).
func bishopAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	var attacks Bitboard
	file, rank := sq.File(), sq.Rank()

	for f, r := file+1, rank+1; f <= 7 && r <= 7; f, r = f+1, r+1 {
		s := NewSquare(f, r)
		attacks |= SquareBB(s)
		if occupied&SquareBB(s) != 0 {
			break
		}
	}
	for f, r := file-1, rank+1; f >= 0 && r <= 7; f, r = f-1, r+1 {
		s := NewSquare(f, r)
		attacks |= SquareBB(s)
		if occupied&SquareBB(s) != 0 {
			break
		}
	}
	for f, r := file+1, rank-1; f <= 7 && r >= 0; f, r = f+1, r-1 {
		s := NewSquare(f, r)
		attacks |= SquareBB(s)
		if occupied&SquareBB(s) != 0 {
			break
		}
	}
	for f, r := file-1, rank-1; f >= 0 && r >= 0; f, r = f-1, r-1 {
		s := NewSquare(f, r)
		attacks |= SquareBB(s)
		if occupied&SquareBB(s) != 0 {
			break
		}
	}

	return attacks
}

// rookAttacksSlow computes rook attacks by ray casting (used during table
// construction — never on the move generation hot path).
func rookAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	var attacks Bitboard
	file, rank := sq.File(), sq.Rank()

	for r := rank + 1; r <= 7; r++ {
		s := NewSquare(file, r)
		attacks |= SquareBB(s)
		if occupied&SquareBB(s) != 0 {
			break
		}
	}
	for r := rank - 1; r >= 0; r-- {
		s := NewSquare(file, r)
		attacks |= SquareBB(s)
		if occupied&SquareBB(s) != 0 {
			break
		}
	}
	for f := file + 1; f <= 7; f++ {
		s := NewSquare(f, rank)
		attacks |= SquareBB(s)
		if occupied&SquareBB(s) != 0 {
			break
		}
	}
	for f := file - 1; f >= 0; f-- {
		s := NewSquare(f, rank)
		attacks |= SquareBB(s)
		if occupied&SquareBB(s) != 0 {
			break
		}
	}

	return attacks
}

// getBishopAttacks returns bishop attacks using magic bitboards.
func getBishopAttacks(sq Square, occupied Bitboard) Bitboard {
	ensureMagics()
	m := &bishopMagics[sq]
	idx := ((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift
	return bishopTable[m.Offset+uint32(idx)]
}

// getRookAttacks returns rook attacks using magic bitboards.
func getRookAttacks(sq Square, occupied Bitboard) Bitboard {
	ensureMagics()
	m := &rookMagics[sq]
	idx := ((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift
	return rookTable[m.Offset+uint32(idx)]
}
