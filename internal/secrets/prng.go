package secrets

import (
	"crypto/sha512"
	"math/bits"
)

// MT19937 parameters.
const (
	mtN       = 624
	mtM       = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// generator is a 32-bit Mersenne Twister seeded the way CPython seeds
// random.Random from a bytes value, so a selection made here matches one
// made with random.seed(key) followed by random.choice or random.shuffle.
//
// A generator is never shared: every selection builds its own from the seed.
type generator struct {
	state [mtN]uint32
	index int
}

func newGenerator(seed []byte) *generator {
	g := &generator{}
	g.seedByArray(seedWords(seed))
	return g
}

// seedWords turns seed || SHA-512(seed), read as one big-endian integer,
// into 32-bit words ordered least significant first. Leading zero words are
// dropped because the integer's bit length decides the key length.
func seedWords(seed []byte) []uint32 {
	digest := sha512.Sum512(seed)
	material := make([]byte, 0, len(seed)+len(digest))
	material = append(material, seed...)
	material = append(material, digest[:]...)

	words := make([]uint32, 0, len(material)/4+1)
	for end := len(material); end > 0; end -= 4 {
		start := max(end-4, 0)
		var w uint32
		for _, b := range material[start:end] {
			w = w<<8 | uint32(b)
		}
		words = append(words, w)
	}
	for len(words) > 1 && words[len(words)-1] == 0 {
		words = words[:len(words)-1]
	}
	return words
}

func (g *generator) seedScalar(s uint32) {
	g.state[0] = s
	for i := 1; i < mtN; i++ {
		prev := g.state[i-1]
		g.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	g.index = mtN
}

func (g *generator) seedByArray(key []uint32) {
	g.seedScalar(19650218)

	i, j := 1, 0
	for k := max(mtN, len(key)); k > 0; k-- {
		prev := g.state[i-1]
		g.state[i] = (g.state[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			g.state[0] = g.state[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k := mtN - 1; k > 0; k-- {
		prev := g.state[i-1]
		g.state[i] = (g.state[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			g.state[0] = g.state[mtN-1]
			i = 1
		}
	}
	g.state[0] = upperMask
}

func (g *generator) twist() {
	for k := 0; k < mtN; k++ {
		y := (g.state[k] & upperMask) | (g.state[(k+1)%mtN] & lowerMask)
		next := g.state[(k+mtM)%mtN] ^ (y >> 1)
		if y&1 != 0 {
			next ^= matrixA
		}
		g.state[k] = next
	}
	g.index = 0
}

// Uint32 returns the next tempered output word.
func (g *generator) Uint32() uint32 {
	if g.index >= mtN {
		g.twist()
	}
	y := g.state[g.index]
	g.index++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// randBelow returns a uniform integer in [0, n) by drawing bit-length sized
// samples and rejecting those out of range. It panics if n is not in
// (0, 2^32), like math/rand.Intn panics on a non-positive bound.
func (g *generator) randBelow(n int) int {
	if n <= 0 || uint64(n) > 1<<32-1 {
		panic("secrets: randBelow bound out of range")
	}
	k := bits.Len64(uint64(n))
	r := g.Uint32() >> (32 - k)
	for uint64(r) >= uint64(n) {
		r = g.Uint32() >> (32 - k)
	}
	return int(r)
}
