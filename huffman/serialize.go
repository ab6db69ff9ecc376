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

import "encoding/binary"

// Byte 0 of the serialized form records which host endianness produced
// it: 1 for big-endian, 0 otherwise. Unlike compression.c's
// vcSerialize/vcDeserialize, every multi-byte field here is always
// written in a fixed big-endian wire order (via encoding/binary) rather
// than a raw memcpy of host-native ints, so the flag is carried for
// format fidelity and caller introspection but Deserialize never needs to
// byte-swap to honor it: the bytes are already portable by construction.
const (
	serialFlagLittle = 0
	serialFlagBig    = 1
)

// MaxSerialSize is the largest number of bytes Serialize can ever produce:
// 1 endian-flag byte + 4 escape-index bytes + 256 length bytes + up to
// 256*2 bits bytes.
func MaxSerialSize() int {
	return 1 + 4 + 256 + 256*2
}

// Serialize writes c's code table in the fixed layout documented by
// SPEC_FULL.md 4.6: a leading endian flag byte, a 4-byte escape index
// (-1 if none), then for every symbol 0..255 a length byte, followed
// immediately by a 2-byte code for every symbol whose length is nonzero.
// Serializing DNAcompressor is a documented no-op that writes nothing and
// returns 0: the DNA codec has no histogram-derived table to persist.
func (c *Compressor) Serialize(out []byte) (int, error) {
	if c == DNAcompressor {
		return 0, nil
	}
	if c.st < stateCodedWithHistogram {
		return 0, newErr(StateViolation, "Serialize", "compressor does not have a codec")
	}
	if len(out) < MaxSerialSize() {
		return 0, newErr(AllocationFailure, "Serialize", "output buffer too small")
	}

	pos := 0
	if c.isBigEndian {
		out[pos] = serialFlagBig
	} else {
		out[pos] = serialFlagLittle
	}
	pos++

	escapeIdx := int32(-1)
	if c.hasEscape {
		escapeIdx = int32(c.escape)
	}
	binary.BigEndian.PutUint32(out[pos:pos+4], uint32(escapeIdx))
	pos += 4

	for i := 0; i < 256; i++ {
		out[pos] = c.length[i]
		pos++
		if c.length[i] > 0 {
			binary.BigEndian.PutUint16(out[pos:pos+2], c.bits[i])
			pos += 2
		}
	}

	return pos, nil
}

// Deserialize reconstructs a Compressor from the layout Serialize
// produces. The resulting Compressor is in the CodedFromDeserialised
// state: like DNAcompressor, it carries no histogram, only a ready-to-use
// code table and decode lookup.
func Deserialize(in []byte) (*Compressor, error) {
	if len(in) < 5 {
		return nil, newErr(MalformedStream, "Deserialize", "input too short for header")
	}

	escapeIdx := int32(binary.BigEndian.Uint32(in[1:5]))

	pos := 5
	c := &Compressor{st: stateCodedFromDeserialised, isBigEndian: hostIsBigEndian()}

	for i := 0; i < 256; i++ {
		if len(in) < pos+1 {
			return nil, newErr(MalformedStream, "Deserialize", "input too short for length table")
		}
		c.length[i] = in[pos]
		pos++
		if c.length[i] == 0 {
			continue
		}
		if len(in) < pos+2 {
			return nil, newErr(MalformedStream, "Deserialize", "input too short for code table")
		}
		c.bits[i] = binary.BigEndian.Uint16(in[pos : pos+2])
		pos += 2
	}

	if escapeIdx >= 0 {
		c.hasEscape = true
		c.escape = byte(escapeIdx)
	}

	c.buildLookup()

	return c, nil
}
