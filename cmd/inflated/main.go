// Command inflated serves raw DEFLATE decoding over HTTP, adapted from
// coreos/pkg's httputil.LoggingMiddleware generalized off its hard-coded
// logger dependency onto this module's dlog.
package main

import (
	"bufio"
	"context"
	"crypto/tls"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/corehorde/inflate/dlog"
	"github.com/corehorde/inflate/flate"
	"github.com/corehorde/inflate/internal/config"
	"github.com/corehorde/inflate/internal/lifecycle"
	"github.com/corehorde/inflate/internal/selfsignedtls"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional YAML file supplying defaults for unset flags")
		addr       = flag.String("addr", ":8080", "listen address")
		useTLS     = flag.Bool("tls", false, "serve HTTPS using a self-signed certificate")
		logLevel   = flag.String("log-level", "INFO", "dlog level: ERROR, WARNING, INFO, DEBUG, TRACE")
		maxOutput  = flag.Int64("max-output", 64<<20, "cap decoded bytes per request; 0 means unbounded")
	)
	flag.Parse()

	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("inflated: reading config: %v", err)
		}
		if err := config.SetFlagsFromYaml(flag.CommandLine, raw); err != nil {
			log.Fatalf("inflated: %v", err)
		}
	}

	level, err := dlog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("inflated: %v", err)
	}
	logger := dlog.New("inflated", level, dlog.NewGlogFormatter(os.Stderr))

	inflight := lifecycle.NewGroup()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthzHandler)
	mux.Handle("/inflate", &loggingMiddleware{
		log:  logger,
		next: &inflateHandler{logger: logger, maxOutput: *maxOutput, inflight: inflight},
	})

	srv := &http.Server{Addr: *addr, Handler: mux}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Infof("shutting down, draining in-flight requests")
		<-inflight.Stop()
		_ = srv.Shutdown(context.Background())
	}()

	if *useTLS {
		host, _, err := net.SplitHostPort(*addr)
		if err != nil {
			host = *addr
		}
		cert, err := selfsignedtls.Issue(host)
		if err != nil {
			log.Fatalf("inflated: %v", err)
		}
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
		logger.Infof("listening on https://%s", *addr)
		if err := srv.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
		return
	}

	logger.Infof("listening on http://%s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

// inflateHandler streams the decoded body of a raw DEFLATE request back to
// the client as it is produced; a mid-stream decode error truncates the
// response and is logged, since HTTP has no channel to report an error
// after headers and some body bytes are already flushed.
type inflateHandler struct {
	logger    *dlog.Logger
	maxOutput int64
	inflight  *lifecycle.Group
}

func (h *inflateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	done := make(chan struct{})
	h.inflight.AddFunc(func() <-chan struct{} { return done })
	defer close(done)

	flusher, _ := w.(http.Flusher)
	dst := &flushingWriter{w: w, flusher: flusher}

	sink := flate.NewWindowSink(dst, h.maxOutput)
	dec := flate.NewDecoder(bufio.NewReader(r.Body))
	dec.SetTracer(dlog.NewFlateTracer(h.logger))

	n, err := dec.Decode(sink)
	if err != nil {
		h.logger.Errorf("decode failed after %d bytes: %v", n, err)
		return
	}
	h.logger.Debugf("decoded %d bytes", n)
}

type flushingWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (f *flushingWriter) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	if f.flusher != nil {
		f.flusher.Flush()
	}
	return n, err
}

type loggingMiddleware struct {
	log  *dlog.Logger
	next http.Handler
}

func (l *loggingMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l.log.Infof("HTTP %s %s", r.Method, r.URL)
	l.next.ServeHTTP(w, r)
}
