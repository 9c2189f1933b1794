// extract-participant-credentials prints the username and password of each participant in a study configuration file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aaronland/go-entities-study"
	"github.com/aaronland/go-entities-study/emit"
	"github.com/aaronland/go-entities-study/internal/config"
	"github.com/aaronland/go-entities-study/internal/logger"
	"github.com/aaronland/go-entities-study/walk"
	"github.com/aaronland/go-json-query"
	jw "github.com/aaronland/go-jsonl/walk"
)

// STDIN is the path used to read a study configuration from standard input.
const STDIN string = "-"

func main() {
	ctx := context.Background()
	os.Exit(run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command with 'args' (including the program name) and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {

	defaults := config.Load()

	prog := "extract-participant-credentials"

	if len(args) > 0 {
		prog = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)

	bucket_uri := fs.String("bucket-uri", defaults.BucketURI, "A valid GoCloud bucket URI. Valid schemes are: file://, mem:// and s3://. If set the study config file is treated as a key in this bucket.")
	s3_region := fs.String("s3-region", defaults.S3Region, "An AWS region. If set s3:// buckets are opened with an explicit AWS session for this region.")

	study_index := fs.Int("study-index", 0, "The position of the study to read in the study config file.")
	study_name := fs.String("study-name", "", "The name of the study to read in the study config file. If set -study-index is ignored.")

	desc_formats := fmt.Sprintf("The output format. Valid formats are: %s", strings.Join(emit.Formats(), ", "))
	format := fs.String("format", defaults.Format, desc_formats)

	to_stdout := fs.Bool("stdout", true, "Emit to STDOUT")
	to_devnull := fs.Bool("null", false, "Emit to /dev/null")

	stats := fs.Bool("stats", false, "Display timings and statistics.")
	verbose := fs.Bool("verbose", defaults.Verbose, "Enable verbose (debug) logging.")

	var queries query.QueryFlags
	fs.Var(&queries, "query", "One or more {PATH}={REGEXP} parameters for filtering participant records.")

	valid_modes := strings.Join([]string{query.QUERYSET_MODE_ALL, query.QUERYSET_MODE_ANY}, ", ")
	desc_modes := fmt.Sprintf("Specify how query filtering should be evaluated. Valid modes are: %s", valid_modes)

	query_mode := fs.String("query-mode", defaults.QueryMode, desc_modes)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [options] [--] <study config file>\n\n", prog)
		fmt.Fprintf(stderr, "Use '%s' to read the study config file from STDIN. Use '--' before a path that starts with '-'.\n\n", STDIN)
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	err := fs.Parse(args)

	if err != nil {

		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(stderr, "Too few arguments.\n\n")
		fs.Usage()
		return 0
	}

	level := logger.InfoLevel

	if *verbose {
		level = logger.DebugLevel
	}

	log := logger.New(level, stderr)
	defer log.Sync()

	writers := make([]io.Writer, 0)

	if *to_stdout {
		writers = append(writers, stdout)
	}

	if *to_devnull {
		writers = append(writers, io.Discard)
	}

	if len(writers) == 0 {
		log.Error("Nothing to write to.")
		return 1
	}

	wr := io.MultiWriter(writers...)

	switch *query_mode {
	case query.QUERYSET_MODE_ALL, query.QUERYSET_MODE_ANY:
		// pass
	default:
		log.Errorf("Invalid query mode '%s', valid modes are: %s", *query_mode, valid_modes)
		return 1
	}

	emit_wr, err := emit.NewWriter(*format, wr)

	if err != nil {
		log.Errorf("Failed to create writer, %v", err)
		return 1
	}

	count := uint32(0)

	if *stats {

		t1 := time.Now()

		defer func() {
			final_count := atomic.LoadUint32(&count)
			log.Infof("Processed %d participants in %v", final_count, time.Since(t1))
		}()
	}

	cb := func(ctx context.Context, rec *jw.WalkRecord, err error) error {

		if err != nil {

			if jw.IsEOFError(err) {
				return nil
			}

			return err
		}

		p, err := study.NewParticipant(rec.Body)

		if err != nil {
			return fmt.Errorf("Invalid participant %d in %s, %w", rec.LineNumber, rec.Path, err)
		}

		err = emit_wr.WriteParticipant(ctx, p)

		if err != nil {
			return err
		}

		atomic.AddUint32(&count, 1)
		return nil
	}

	uri := fs.Arg(0)

	opts := &walk.WalkOptions{
		URI: uri,
		Study: &study.SelectOptions{
			Index: *study_index,
			Name:  *study_name,
		},
		Callback: cb,
	}

	if len(queries) > 0 {

		qs := &query.QuerySet{
			Queries: queries,
			Mode:    *query_mode,
		}

		opts.QuerySet = qs
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	err = extract(ctx, opts, stdin, *bucket_uri, *s3_region, log)

	close_err := emit_wr.Close()

	if err != nil {
		log.Errorf("Failed to extract participant credentials from %s, %v", uri, err)
		return 1
	}

	if close_err != nil {
		log.Errorf("Failed to flush output, %v", close_err)
		return 1
	}

	return 0
}

func extract(ctx context.Context, opts *walk.WalkOptions, stdin io.Reader, bucket_uri string, s3_region string, log *logger.Logger) error {

	if bucket_uri == "" {

		if opts.URI == STDIN {
			log.Debug("Reading study config from STDIN")
			return walk.WalkReader(ctx, opts, stdin)
		}

		if !strings.Contains(opts.URI, "://") {
			return extractLocal(ctx, opts, log)
		}

		b_uri, key, err := study.ResolveURI(opts.URI)

		if err != nil {
			return err
		}

		bucket_uri = b_uri
		opts.URI = key
	}

	log.Debugf("Reading %s from %s", opts.URI, bucket_uri)

	bucket_opts := &study.BucketOptions{
		S3Region: s3_region,
	}

	bucket, err := study.OpenBucket(ctx, bucket_uri, bucket_opts)

	if err != nil {
		return err
	}

	defer bucket.Close()

	return walk.WalkBucket(ctx, opts, bucket)
}

// extractLocal reads a plain filesystem path directly rather than through a bucket, so that
// filenames gocloud does not accept as keys (for example "*.attrs" or non-UTF-8 names) still work.
func extractLocal(ctx context.Context, opts *walk.WalkOptions, log *logger.Logger) error {

	log.Debugf("Reading study config from %s", opts.URI)

	r, err := os.Open(opts.URI)

	if err != nil {
		return fmt.Errorf("Failed to open %s, %w", opts.URI, err)
	}

	defer r.Close()

	return walk.WalkReader(ctx, opts, r)
}
