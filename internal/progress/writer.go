// Copyright 2016 CoreOS Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package progress reports byte-count progress for a single in-flight
// decode, adapted from coreos/pkg's progressutil (whose multi-file TTY bar
// renderer, iocopy.go, was not part of this module's retrieval; this is a
// single-file, non-TTY rendition of the same "wrap a writer, report
// periodically" contract its test file exercises).
package progress

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Writer wraps an io.Writer, forwarding every write unchanged while
// maintaining a running byte count and a running xxhash fingerprint of the
// bytes seen so far -- cheap enough to keep live, and useful for a compact
// "does this match last time" debug line without claiming to be the
// checksum validation this module's decoder explicitly does not perform.
type Writer struct {
	label string
	out   io.Writer
	n     int64
	sum   xxhash.Digest
}

// New wraps out, labeling progress lines with label.
func New(label string, out io.Writer) *Writer {
	w := &Writer{label: label, out: out}
	w.sum.Reset()
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.out.Write(p)
	if n > 0 {
		w.sum.Write(p[:n])
		atomic.AddInt64(&w.n, int64(n))
	}
	return n, err
}

// Written returns the number of bytes forwarded so far.
func (w *Writer) Written() int64 {
	return atomic.LoadInt64(&w.n)
}

// Report formats one progress line: "label: N bytes (fingerprint=...)".
func (w *Writer) Report() string {
	return fmt.Sprintf("%s: %d bytes (fingerprint=%016x)", w.label, w.Written(), w.sum.Sum64())
}

// Ticker calls report every interval until stop is closed, writing each
// line to dst. It returns a channel that closes once the goroutine has
// exited, matching the lifecycle.Stoppable contract.
func Ticker(dst io.Writer, interval time.Duration, report func() string, stop <-chan struct{}) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				fmt.Fprintln(dst, report())
				return
			case <-t.C:
				fmt.Fprintln(dst, report())
			}
		}
	}()
	return done
}
