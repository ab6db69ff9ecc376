/*
Copyright 2011-2024 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package huffman

import "sort"

// Build consumes the accumulated histogram and constructs a length-limited
// canonical Huffman code via the Larmore-Hirschberg coin collector
// algorithm (JACM 37(3), 1990). When partial is true and at least one byte
// has a zero count, the lowest-indexed such byte is reserved as the escape
// symbol: Encode falls back to "escape code + 8-bit literal" for any byte
// not otherwise represented.
//
// Build fails unless the Compressor is in the Filled state.
func (c *Compressor) Build(partial bool) error {
	if c == DNAcompressor {
		return newErr(StateViolation, "Build", "cannot build a codec on the DNA singleton")
	}
	if c.st >= stateCodedWithHistogram {
		return newErr(StateViolation, "Build", "compressor already has a codec")
	}
	if c.st == stateEmpty {
		return newErr(EmptyHistogram, "Build", "compressor has no byte distribution data")
	}

	code := make([]int, 0, 256)
	hasEscape := false
	var escape byte

	for i := 0; i < 256; i++ {
		if c.hist[i] > 0 {
			code = append(code, i)
		} else if partial && !hasEscape {
			hasEscape = true
			escape = byte(i)
			code = append(code, i)
		}
	}

	n := len(code)

	// Sort symbols by ascending weight, ties broken by ascending symbol
	// index. The comparator closes over c.hist directly instead of
	// reaching for package-level state (see SPEC_FULL.md 9).
	sort.SliceStable(code, func(a, b int) bool {
		return c.hist[code[a]] < c.hist[code[b]]
	})

	leng := coinCollectorLengths(n, func(i int) uint64 { return c.hist[code[i]] })

	bits := canonicalCodes(leng)

	var length [256]uint8
	var bitv [256]uint16
	for i := 0; i < n; i++ {
		length[code[i]] = uint8(leng[i])
		bitv[code[i]] = bits[i]
	}

	c.length = length
	c.bits = bitv
	c.hasEscape = hasEscape
	c.escape = escape
	c.st = stateCodedWithHistogram
	c.buildLookup()

	return nil
}

// coinCollectorLengths implements steps 3-4 of SPEC_FULL.md 4.2: the
// Larmore-Hirschberg coin collector matrix and its back-trace. weight(i)
// returns the count of the i-th symbol in the caller's already
// weight-sorted order; the result is the code length of that same symbol.
func coinCollectorLengths(n int, weight func(i int) uint64) []int {
	leng := make([]int, n)

	if n == 0 {
		return leng
	}

	countb := make([]uint64, n)
	for i := 0; i < n; i++ {
		countb[i] = weight(i)
	}

	dcode := 2 * n
	matrix := make([][]bool, _HUF_CUTOFF)
	for l := range matrix {
		matrix[l] = make([]bool, dcode)
	}

	lcnt := make([]uint64, dcode)
	copy(lcnt, countb)
	ccnt := make([]uint64, dcode)
	llen := n - 1

	for l := _HUF_CUTOFF - 1; l > 0; l-- {
		j, k := 0, 0
		m := 0
		for j < n || k < llen {
			if k >= llen || (j < n && countb[j] <= lcnt[k]+lcnt[k+1]) {
				ccnt[m] = countb[j]
				matrix[l][m] = true
				j++
			} else {
				ccnt[m] = lcnt[k] + lcnt[k+1]
				matrix[l][m] = false
				k += 2
			}
			m++
		}
		llen = m - 1
		lcnt, ccnt = ccnt, lcnt
	}

	span := 2 * (n - 1)
	for l := 1; l < _HUF_CUTOFF; l++ {
		j := 0
		for m := 0; m < span; m++ {
			if matrix[l][m] {
				leng[j]++
				j++
			}
		}
		span = 2 * (span - j)
	}
	for m := 0; m < span; m++ {
		leng[m]++
	}

	return leng
}

// canonicalCodes assigns canonical bit patterns given code lengths in
// non-increasing order, i.e. for symbols sorted by ascending weight
// (SPEC_FULL.md 4.2 step 5). The first symbol gets the
// all-ones code of its length; each subsequent symbol's code is derived by
// stripping trailing zero bits, decrementing, then padding with ones back
// up to its own length.
func canonicalCodes(leng []int) []uint16 {
	bits := make([]uint16, len(leng))
	if len(leng) == 0 {
		return bits
	}

	llen := leng[0]
	lbits := uint16(1<<uint(llen)) - 1
	bits[0] = lbits

	for n := 1; n < len(leng); n++ {
		for lbits&0x1 == 0 {
			lbits >>= 1
			llen--
		}
		lbits--
		for llen < leng[n] {
			lbits = (lbits << 1) | 0x1
			llen++
		}
		bits[n] = lbits
	}

	return bits
}

// buildLookup populates the 65536-entry decode table: for each coded
// symbol i, every 16-bit prefix whose top length[i] bits equal bits[i]
// maps to i.
func (c *Compressor) buildLookup() {
	for i := 0; i < 256; i++ {
		l := c.length[i]
		if l == 0 {
			continue
		}
		base := uint32(c.bits[i]) << (16 - l)
		span := uint32(1) << (16 - l)
		for j := uint32(0); j < span; j++ {
			c.lookup[base+j] = uint8(i)
		}
	}
}
