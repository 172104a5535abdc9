package flate

import "errors"

// Tracer receives optional, purely observational decode events. A nil
// Tracer (the default) costs nothing beyond a nil check. This is the Go
// equivalent of the original C source's LOG_DEBUG/LOG_ERROR call sites at
// symbol- and block-granularity; package dlog implements Tracer.
type Tracer interface {
	TraceBlock(final bool, btype int)
	TraceSymbol(s DecodedSymbol)
}

// state is the dispatcher state machine of spec §4.7.
type state int

const (
	stateReady state = iota
	stateInBlock
	stateDone
	stateFailed
)

// Decoder decodes a raw DEFLATE bitstream. All state is owned by the value;
// there are no package-level mutable buffers, so independent Decoders over
// independent Sources/Sinks are fully concurrency-safe with each other.
type Decoder struct {
	r     *bitReader
	st    state
	trace Tracer
}

// NewDecoder returns a Decoder reading from src. Use SetTracer before
// calling Decode to receive per-block/per-symbol trace events.
func NewDecoder(src Source) *Decoder {
	return &Decoder{r: newBitReader(src), st: stateReady}
}

// SetTracer installs an optional observer. Pass nil to disable tracing.
func (d *Decoder) SetTracer(t Tracer) { d.trace = t }

// Decode runs the dispatcher loop of spec §4.7 against sink until BFINAL=1
// and the final block's EOB, or until an error occurs. It returns the
// number of bytes sink accepted and the first error encountered, if any.
// Decode must not be called again on the same Decoder after it returns.
func (d *Decoder) Decode(sink Sink) (int64, error) {
	for {
		switch d.st {
		case stateDone, stateFailed:
			return sink.Written(), errDecoderReused
		}

		final, btype, err := d.readBlockHeader()
		if err != nil {
			d.st = stateFailed
			return sink.Written(), err
		}
		d.st = stateInBlock
		if d.trace != nil {
			d.trace.TraceBlock(final, btype)
		}

		if err := d.decodeOneBlock(btype, sink); err != nil {
			d.st = stateFailed
			return sink.Written(), err
		}

		if final {
			d.st = stateDone
			return sink.Written(), nil
		}
		d.st = stateReady
	}
}

func (d *Decoder) readBlockHeader() (final bool, btype int, err error) {
	finalBit, err := d.r.readBits(1)
	if err != nil {
		return false, 0, err
	}
	typeBits, err := d.r.readBits(2)
	if err != nil {
		return false, 0, err
	}
	return finalBit == 1, int(typeBits), nil
}

func (d *Decoder) decodeOneBlock(btype int, sink Sink) error {
	switch btype {
	case 0:
		return decodeStoredBlock(d.r, sink)
	case 1:
		return d.decodeFixedBlock(sink)
	case 2:
		return d.decodeDynamicBlock(sink)
	default:
		return corrupt(d.r.bitpos, BadBType)
	}
}

// errDecoderReused guards against calling Decode twice on an already
// finished or failed Decoder; the core has no resume/re-sync semantics.
var errDecoderReused = errors.New("flate: Decoder already finished or failed")

// Decode is the memory/streaming-agnostic public entry point of spec §6: a
// one-shot decode of r against sink, returning the bytes written.
func Decode(r Source, sink Sink) (int64, error) {
	return NewDecoder(r).Decode(sink)
}
