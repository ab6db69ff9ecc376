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

// Package huffman implements a length-limited canonical Huffman codec with
// an escape mechanism for symbols absent from the training histogram, a
// packed MSB-first bit encoder/decoder with endian-portable serialisation,
// and a dedicated 2-bit-per-base DNA fast path. It has no I/O, no CLI, and
// no knowledge of any particular file format: callers hand it byte slices
// and get byte slices (or bit counts) back.
package huffman

import "unsafe"

// _HUF_CUTOFF is the hard cap on code length in bits. It cannot exceed 16
// because the decode table is indexed by the next 16 bits of the stream.
const _HUF_CUTOFF = 12

type state int

const (
	stateEmpty state = iota
	stateFilled
	stateCodedWithHistogram
	stateCodedFromDeserialised
)

func (s state) String() string {
	switch s {
	case stateEmpty:
		return "Empty"
	case stateFilled:
		return "Filled"
	case stateCodedWithHistogram:
		return "CodedWithHistogram"
	case stateCodedFromDeserialised:
		return "CodedFromDeserialised"
	default:
		return "Unknown"
	}
}

// Compressor is a length-limited canonical Huffman codec over the 256
// byte values. A zero-value Compressor is not usable; construct one with
// New.
type Compressor struct {
	st         state
	hist       [256]uint64
	length     [256]uint8
	bits       [256]uint16
	hasEscape  bool
	escape     byte
	lookup     [65536]uint8
	isBigEndian bool
}

// DNAcompressor is the process-wide predefined 2-bit DNA codec. It carries
// no histogram and no code table: Encode/Decode/Serialize/Destroy all
// special-case it before touching any Compressor state. It is never freed.
var DNAcompressor = &Compressor{st: stateCodedFromDeserialised}

// New creates an empty Compressor with a zeroed histogram. The host byte
// order is captured once here and carried for the lifetime of the codec.
func New() *Compressor {
	return &Compressor{
		st:          stateEmpty,
		isBigEndian: hostIsBigEndian(),
	}
}

// Reset discards any accumulated histogram or code table and returns the
// Compressor to the Empty state, as if freshly built by New. It is a
// convenience equivalent to discarding the value and calling New again;
// it does not resurrect the DNA singleton (Reset on DNAcompressor is a
// no-op, matching Destroy's treatment of the singleton).
func (c *Compressor) Reset() {
	if c == DNAcompressor {
		return
	}
	*c = Compressor{st: stateEmpty, isBigEndian: c.isBigEndian}
}

// Destroy releases resources owned by the Compressor. Go's garbage
// collector reclaims the backing storage on its own; Destroy exists for
// symmetry with the original C API and is a documented no-op, same as for
// the DNA singleton.
func (c *Compressor) Destroy() {}

// IsDNA reports whether c is the predefined DNA fast-path singleton.
func (c *Compressor) IsDNA() bool {
	return c == DNAcompressor
}

// State reports the Compressor's lifecycle state as a diagnostic string;
// it is not part of the wire contract.
func (c *Compressor) State() string {
	return c.st.String()
}

// Add accumulates the frequency of every byte in data into the histogram
// and advances the state to Filled. It fails once a codec has already been
// built (state >= CodedWithHistogram): histogram mutation and codec
// construction are mutually exclusive phases.
//
// The counting loop is unrolled 16-wide, the same shape the teacher's own
// order-0 histogram routine uses for a flat byte slice with no
// cross-element dependency.
func (c *Compressor) Add(data []byte) error {
	if c == DNAcompressor {
		return newErr(StateViolation, "Add", "cannot accumulate a histogram on the DNA singleton")
	}
	if c.st >= stateCodedWithHistogram {
		return newErr(StateViolation, "Add", "compressor already has a codec")
	}

	end16 := len(data) &^ 15
	i := 0
	for ; i < end16; i += 16 {
		d := data[i : i+16 : i+16]
		c.hist[d[0]]++
		c.hist[d[1]]++
		c.hist[d[2]]++
		c.hist[d[3]]++
		c.hist[d[4]]++
		c.hist[d[5]]++
		c.hist[d[6]]++
		c.hist[d[7]]++
		c.hist[d[8]]++
		c.hist[d[9]]++
		c.hist[d[10]]++
		c.hist[d[11]]++
		c.hist[d[12]]++
		c.hist[d[13]]++
		c.hist[d[14]]++
		c.hist[d[15]]++
	}
	for ; i < len(data); i++ {
		c.hist[data[i]]++
	}

	c.st = stateFilled
	return nil
}

// Histogram returns a copy of the accumulated byte counts. Valid once the
// Compressor has moved past Empty.
func (c *Compressor) Histogram() [256]uint64 {
	return c.hist
}

func hostIsBigEndian() bool {
	var x uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&x))
	return b[0] == 0
}
