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
	"bytes"
	"testing"
)

func buildCompressorFor(t *testing.T, training string, partial bool) *Compressor {
	t.Helper()
	c := New()
	if err := c.Add([]byte(training)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Build(partial); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return c
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		training string
		input    string
	}{
		{"repeated-letters", "the quick brown fox jumps over the lazy dog", "the fox jumps"},
		{"single-repeated-byte-plus-others", "aaaaaaaaaabbbbccd", "aabbccdd"},
		{"alphabet-a-to-n-near-uniform", "abcdefghijklabcdefghijklmabcdefghijklmn", "kjihgfedcba"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := buildCompressorFor(t, tt.training, false)

			in := []byte(tt.input)
			out := make([]byte, len(in)+1)
			nbits, err := c.Encode(in, out)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}

			decoded := make([]byte, len(in))
			n, err := c.Decode(out, nbits, decoded)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if n != len(in) {
				t.Fatalf("got %d decoded bytes, want %d", n, len(in))
			}
			if !bytes.Equal(decoded, in) {
				t.Fatalf("round trip mismatch: got %q, want %q", decoded, in)
			}
		})
	}
}

func TestEncodeDecodeEscapePath(t *testing.T) {
	c := buildCompressorFor(t, "mnopq", true)

	in := []byte("mnopqz")
	out := make([]byte, len(in)+1)
	nbits, err := c.Encode(in, out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded := make([]byte, len(in))
	n, err := c.Decode(out, nbits, decoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(in) || !bytes.Equal(decoded[:n], in) {
		t.Fatalf("got %q, want %q", decoded[:n], in)
	}
}

func TestEncodeOverflowFallback(t *testing.T) {
	c := buildCompressorFor(t, "ab", false)

	in := []byte("abz") // 'z' has no code and hasEscape is false
	out := make([]byte, len(in)+1)
	nbits, err := c.Encode(in, out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if nbits != 8*(len(in)+1) {
		t.Fatalf("got %d bits, want overflow size %d", nbits, 8*(len(in)+1))
	}
	if out[0] != overflowMarker {
		t.Fatalf("got marker byte %#x, want %#x", out[0], overflowMarker)
	}

	decoded := make([]byte, len(in))
	n, err := c.Decode(out, nbits, decoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(in) || !bytes.Equal(decoded, in) {
		t.Fatalf("got %q, want %q", decoded, in)
	}
}

func TestDecodeZeroLengthStream(t *testing.T) {
	c := buildCompressorFor(t, "ab", false)
	n, err := c.Decode(nil, 0, nil)
	if err != nil || n != 0 {
		t.Fatalf("got (%d, %v), want (0, nil)", n, err)
	}
}
