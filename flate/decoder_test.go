package flate

import (
	"bufio"
	"bytes"
	"compress/flate"
	"math/rand"
	"testing"
)

func decodeBytes(t *testing.T, input []byte) string {
	t.Helper()
	var out bytes.Buffer
	sink := NewWindowSink(&out, 0)
	n, err := Decode(bufio.NewReader(bytes.NewReader(input)), sink)
	if err != nil {
		t.Fatalf("Decode(%x): %v", input, err)
	}
	if n != int64(out.Len()) {
		t.Fatalf("Decode(%x): returned %d but sink holds %d bytes", input, n, out.Len())
	}
	return out.String()
}

func TestStoredEmpty(t *testing.T) {
	got := decodeBytes(t, []byte{0x01, 0x00, 0x00, 0xff, 0xff})
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestStoredSingleByte(t *testing.T) {
	got := decodeBytes(t, []byte{0x01, 0x01, 0x00, 0xfe, 0xff, 0x41})
	if got != "A" {
		t.Errorf("got %q, want %q", got, "A")
	}
}

func TestFixedLiterals(t *testing.T) {
	got := decodeBytes(t, []byte{0x4b, 0x4c, 0x4a, 0x06, 0x00})
	if got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
}

func TestFixedBackReference(t *testing.T) {
	got := decodeBytes(t, []byte{0x4b, 0x4c, 0x44, 0x00, 0x00})
	if got != "aaaa" {
		t.Errorf("got %q, want %q", got, "aaaa")
	}
}

func TestBadBType(t *testing.T) {
	var out bytes.Buffer
	sink := NewWindowSink(&out, 0)
	_, err := Decode(bufio.NewReader(bytes.NewReader([]byte{0x07})), sink)
	var cerr *CorruptInputError
	if !errorsAs(err, &cerr) {
		t.Fatalf("got %v (%T), want *CorruptInputError", err, err)
	}
	if cerr.Kind != BadBType {
		t.Errorf("got kind %v, want BadBType", cerr.Kind)
	}
}

// TestDynamicHello round-trips "Hello, World!" through the standard
// library's compress/flate writer (an independent reference encoder) at a
// compression level that forces a dynamic Huffman block, then checks this
// package decodes it back byte for byte.
func TestDynamicHello(t *testing.T) {
	want := "Hello, World!"
	encoded := deflateRaw(t, []byte(want), flate.BestCompression)
	got := decodeBytes(t, encoded)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func deflateRaw(t *testing.T, plain []byte, level int) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, level)
	if err != nil {
		t.Fatalf("flate.NewWriter: %v", err)
	}
	if _, err := w.Write(plain); err != nil {
		t.Fatalf("flate.Writer.Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("flate.Writer.Close: %v", err)
	}
	return buf.Bytes()
}

// TestRoundTripRandom generates random plaintexts across a range of sizes
// and compressibility, compresses each with compress/flate, and checks this
// package's decoder reproduces the original bytes exactly.
func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sizes := []int{0, 1, 2, 17, 255, 1024, 70000}
	for _, size := range sizes {
		for _, level := range []int{flate.NoCompression, flate.DefaultCompression, flate.BestCompression} {
			plain := randomPlaintext(rng, size)
			encoded := deflateRaw(t, plain, level)
			got := decodeBytes(t, encoded)
			if got != string(plain) {
				t.Fatalf("size=%d level=%d: round trip mismatch (got %d bytes, want %d)", size, level, len(got), len(plain))
			}
		}
	}
}

// randomPlaintext mixes random bytes with repeated runs so both literal and
// back-reference paths get exercised.
func randomPlaintext(rng *rand.Rand, n int) []byte {
	out := make([]byte, 0, n)
	alphabet := []byte("abcabcabcdefxyz \n")
	for len(out) < n {
		if rng.Intn(3) == 0 {
			run := 1 + rng.Intn(40)
			b := alphabet[rng.Intn(len(alphabet))]
			for i := 0; i < run && len(out) < n; i++ {
				out = append(out, b)
			}
		} else {
			out = append(out, alphabet[rng.Intn(len(alphabet))])
		}
	}
	return out
}

// TestTruncatedInput checks that a stream cut off mid-block reports a
// truncation error rather than hanging or panicking.
func TestTruncatedInput(t *testing.T) {
	full := deflateRaw(t, []byte("a reasonably long line of text to compress"), flate.BestCompression)
	for cut := 1; cut < len(full); cut++ {
		var out bytes.Buffer
		sink := NewWindowSink(&out, 0)
		_, err := Decode(bufio.NewReader(bytes.NewReader(full[:cut])), sink)
		if err == nil {
			// A short prefix may still happen to land on a valid EOB for
			// some cut points near the end; anything else must error.
			continue
		}
		var trunc *ErrTruncated
		var corrupt *CorruptInputError
		if !errorsAs(err, &trunc) && !errorsAs(err, &corrupt) {
			t.Fatalf("cut=%d: got %v (%T), want *ErrTruncated or *CorruptInputError", cut, err, err)
		}
	}
}

func errorsAs[T any](err error, target *T) bool {
	if e, ok := err.(T); ok {
		*target = e
		return true
	}
	return false
}

// TestFuzzLikeNoPanic feeds random byte strings of varying length directly
// into the decoder and checks every exit is either a successful decode or
// one of the documented error types -- never a panic.
func TestFuzzLikeNoPanic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		n := rng.Intn(64)
		buf := make([]byte, n)
		rng.Read(buf)

		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("input %x panicked: %v", buf, r)
				}
			}()
			var out bytes.Buffer
			sink := NewWindowSink(&out, 1<<20)
			_, err := Decode(bufio.NewReader(bytes.NewReader(buf)), sink)
			if err == nil {
				return
			}
			switch err.(type) {
			case *CorruptInputError, *ErrTruncated, *ErrIO:
			default:
				if err == ErrOutputFull || err == errDecoderReused {
					return
				}
				t.Fatalf("input %x: undocumented error type %T: %v", buf, err, err)
			}
		}()
	}
}

type recordingTracer struct {
	blocks  []bool
	symbols int
}

func (rt *recordingTracer) TraceBlock(final bool, btype int) { rt.blocks = append(rt.blocks, final) }
func (rt *recordingTracer) TraceSymbol(s DecodedSymbol)      { rt.symbols++ }

func TestTracerReceivesEvents(t *testing.T) {
	tr := &recordingTracer{}
	dec := NewDecoder(bufio.NewReader(bytes.NewReader([]byte{0x4b, 0x4c, 0x4a, 0x06, 0x00})))
	dec.SetTracer(tr)
	var out bytes.Buffer
	if _, err := dec.Decode(NewWindowSink(&out, 0)); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(tr.blocks) != 1 || !tr.blocks[0] {
		t.Errorf("got blocks %v, want a single final block", tr.blocks)
	}
	// 3 literals + EOB.
	if tr.symbols != 4 {
		t.Errorf("got %d symbol events, want 4", tr.symbols)
	}
}

func TestDecodeAfterFinishReturnsReuseError(t *testing.T) {
	dec := NewDecoder(bufio.NewReader(bytes.NewReader([]byte{0x01, 0x00, 0x00, 0xff, 0xff})))
	var out bytes.Buffer
	sink := NewWindowSink(&out, 0)
	if _, err := dec.Decode(sink); err != nil {
		t.Fatalf("first Decode: %v", err)
	}
	if _, err := dec.Decode(sink); err != errDecoderReused {
		t.Errorf("second Decode: got %v, want errDecoderReused", err)
	}
}
