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

import (
	"log/slog"

	"github.com/cespare/xxhash/v2"
)

// Print emits the code table as structured log records, one per coded
// symbol, via the default slog logger. It is a diagnostic convenience
// equivalent to the C original's vcPrint and carries no wire-format
// meaning: nothing here is read back by Deserialize.
func (c *Compressor) Print() {
	if c == DNAcompressor {
		slog.Info("huffman codec", "kind", "DNA", "bitsPerBase", 2)
		return
	}

	slog.Info("huffman codec", "state", c.st.String(), "hasEscape", c.hasEscape, "escape", c.escape)
	for i := 0; i < 256; i++ {
		if c.length[i] == 0 {
			continue
		}
		slog.Debug("huffman symbol", "byte", i, "length", c.length[i], "code", c.bits[i])
	}
}

// Stats reports the number of coded symbols and the maximum code length
// in use, both useful sanity checks before handing a table to Serialize.
func (c *Compressor) Stats() (symbols int, maxLen int) {
	if c == DNAcompressor {
		return 4, 2
	}
	for i := 0; i < 256; i++ {
		if c.length[i] == 0 {
			continue
		}
		symbols++
		if int(c.length[i]) > maxLen {
			maxLen = int(c.length[i])
		}
	}
	return symbols, maxLen
}

// Fingerprint returns a content hash of the code table (length, bits, and
// escape byte for every symbol), useful for cheaply confirming two
// Compressors agree on the same table without comparing 256 entries by
// hand. It is diagnostic only: SPEC_FULL.md 4.6's wire layout has no field
// for it, and two tables with the same fingerprint but built on hosts of
// different endianness still serialize to different bytes.
func (c *Compressor) Fingerprint() uint64 {
	if c == DNAcompressor {
		return 0
	}

	h := xxhash.New()
	var buf [3]byte
	for i := 0; i < 256; i++ {
		buf[0] = c.length[i]
		buf[1] = byte(c.bits[i])
		buf[2] = byte(c.bits[i] >> 8)
		_, _ = h.Write(buf[:])
	}
	if c.hasEscape {
		_, _ = h.Write([]byte{c.escape, 1})
	} else {
		_, _ = h.Write([]byte{0, 0})
	}
	return h.Sum64()
}
