package dlog

import "github.com/corehorde/inflate/flate"

// FlateTracer adapts a Logger to flate.Tracer, emitting one DEBUG line per
// block header and one TRACE line per decoded symbol -- the Go equivalent
// of the original C decoder's LOG_DEBUG call sites in read_fixed_block,
// read_dynamic_block and decode_symbol. It is deliberately the only
// consumer of flate.DecodedSymbol's accessor methods outside package flate
// itself.
type FlateTracer struct {
	log *Logger
}

// NewFlateTracer wraps log as a flate.Tracer.
func NewFlateTracer(log *Logger) *FlateTracer {
	return &FlateTracer{log: log}
}

var btypeName = [...]string{"stored", "fixed", "dynamic", "reserved"}

func (t *FlateTracer) TraceBlock(final bool, btype int) {
	name := "reserved"
	if btype >= 0 && btype < len(btypeName) {
		name = btypeName[btype]
	}
	t.log.Debugf("block: type=%s final=%t", name, final)
}

func (t *FlateTracer) TraceSymbol(s flate.DecodedSymbol) {
	switch {
	case s.IsLiteral():
		t.log.Tracef("literal: 0x%02x", s.Literal())
	case s.IsEndOfBlock():
		t.log.Tracef("EOB")
	case s.IsMatch():
		t.log.Tracef("match: length=%d", s.MatchLength())
	}
}
