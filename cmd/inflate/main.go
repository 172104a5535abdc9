// Command inflate decodes one or more raw DEFLATE files, adapted from
// JoshVarga/blast's cmd/blast single-file CLI and original_source/main.c's
// file-argument harness, generalized to N files decoded concurrently.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/corehorde/inflate/dlog"
	"github.com/corehorde/inflate/flate"
	"github.com/corehorde/inflate/internal/config"
	"github.com/corehorde/inflate/internal/progress"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional YAML file supplying defaults for unset flags")
		jobs       = flag.Int("j", 1, "max files decoded concurrently")
		showProg   = flag.Bool("progress", false, "print decode progress to stderr")
		logLevel   = flag.String("log-level", "ERROR", "dlog level: ERROR, WARNING, INFO, DEBUG, TRACE")
		journald   = flag.Bool("journald", false, "log through the systemd journal instead of stderr")
		maxOutput  = flag.Int64("max-output", 0, "cap decoded bytes per file; 0 means unbounded")
	)
	flag.Parse()

	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("inflate: reading config: %v", err)
		}
		if err := config.SetFlagsFromYaml(flag.CommandLine, raw); err != nil {
			log.Fatalf("inflate: %v", err)
		}
	}

	level, err := dlog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("inflate: %v", err)
	}
	var formatter dlog.Formatter
	if *journald && dlog.Available() {
		formatter = dlog.NewJournalFormatter("inflate")
	} else {
		formatter = dlog.NewGlogFormatter(os.Stderr)
	}
	logger := dlog.New("inflate", level, formatter)

	args := flag.Args()
	if len(args) == 0 {
		if err := decodeStream(os.Stdin, os.Stdout, "-", *maxOutput, *showProg, logger); err != nil {
			log.Fatalf("inflate: %v", err)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(*jobs)
	for _, path := range args {
		path := path
		g.Go(func() error {
			err := decodeFile(path, *maxOutput, *showProg, logger)
			if err != nil {
				log.Printf("inflate: %v", err)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		os.Exit(1)
	}
}

func decodeFile(path string, maxOutput int64, showProg bool, logger *dlog.Logger) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer in.Close()

	outPath := path + ".out"
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer out.Close()

	if err := decodeStream(in, out, path, maxOutput, showProg, logger); err != nil {
		out.Close()
		os.Remove(outPath)
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func decodeStream(in io.Reader, out io.Writer, label string, maxOutput int64, showProg bool, logger *dlog.Logger) error {
	br := bufio.NewReader(in)

	var dst io.Writer = out
	if showProg {
		prog := progress.New(label, out)
		dst = prog
		stop := make(chan struct{})
		done := progress.Ticker(os.Stderr, 500*time.Millisecond, prog.Report, stop)
		defer func() {
			close(stop)
			<-done
		}()
	}

	sink := flate.NewWindowSink(dst, maxOutput)
	dec := flate.NewDecoder(br)
	dec.SetTracer(dlog.NewFlateTracer(logger))

	n, err := dec.Decode(sink)
	logger.Infof("%s: decoded %d bytes", label, n)
	return err
}
