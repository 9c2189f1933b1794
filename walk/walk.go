// package walk provides methods for walking all the participant records in a study configuration document.
package walk

import (
	"context"
	"fmt"
	"io"

	"github.com/aaronland/go-entities-study"
	"github.com/aaronland/go-json-query"
	jw "github.com/aaronland/go-jsonl/walk"
	"github.com/tidwall/gjson"
	"gocloud.dev/blob"
)

// WalkCallbackFunc is invoked once for each participant record in a study. After the last record
// it is invoked with a *jw.WalkError wrapping io.EOF (use jw.IsEOFError to test for it).
type WalkCallbackFunc func(context.Context, *jw.WalkRecord, error) error

// WalkOptions defines the study configuration document to read, the study to walk and where to send its participants.
type WalkOptions struct {
	// The key of the study configuration document in a bucket, or a label for the document when using WalkReader.
	URI string
	// Which study in the document to walk.
	Study *study.SelectOptions
	// An optional set of queries that participant records must match in order to be passed to Callback.
	QuerySet *query.QuerySet
	Callback WalkCallbackFunc
}

// WalkBucket reads the study configuration document opts.URI from 'bucket' and passes each of its
// participant records to opts.Callback.
func WalkBucket(ctx context.Context, opts *WalkOptions, bucket *blob.Bucket) error {

	r, err := bucket.NewReader(ctx, opts.URI, nil)

	if err != nil {
		return fmt.Errorf("Failed to open %s, %w", opts.URI, err)
	}

	defer r.Close()

	return WalkReader(ctx, opts, r)
}

// WalkReader reads a study configuration document from 'r' and passes each of its participant
// records to opts.Callback.
func WalkReader(ctx context.Context, opts *WalkOptions, r io.Reader) error {

	body, err := io.ReadAll(r)

	if err != nil {
		return fmt.Errorf("Failed to read %s, %w", opts.URI, err)
	}

	return WalkDocument(ctx, opts, body)
}

// WalkDocument passes each participant record in the study configuration document 'body' to opts.Callback.
func WalkDocument(ctx context.Context, opts *WalkOptions, body []byte) error {

	if opts.Callback == nil {
		return fmt.Errorf("Missing callback")
	}

	doc, err := study.Decode(body)

	if err != nil {
		return fmt.Errorf("Failed to decode %s, %w", opts.URI, err)
	}

	select_opts := opts.Study

	if select_opts == nil {
		select_opts = &study.SelectOptions{}
	}

	s, _, err := study.Select(doc, select_opts)

	if err != nil {
		return fmt.Errorf("Failed to select study in %s, %w", opts.URI, err)
	}

	participants, err := study.Participants(s)

	if err != nil {
		return fmt.Errorf("Invalid study in %s, %w", opts.URI, err)
	}

	var walk_err error
	line := 0

	participants.ForEach(func(_ gjson.Result, v gjson.Result) bool {

		select {
		case <-ctx.Done():
			walk_err = ctx.Err()
			return false
		default:
			// pass
		}

		line += 1

		if !v.IsObject() {

			rec_err := &jw.WalkError{
				Path:       opts.URI,
				LineNumber: line,
				Err:        study.ErrNotObject,
			}

			walk_err = opts.Callback(ctx, nil, rec_err)
			return walk_err == nil
		}

		body := []byte(v.Raw)

		if opts.QuerySet != nil {

			ok, err := query.Matches(ctx, opts.QuerySet, body)

			if err != nil {
				walk_err = fmt.Errorf("Failed to query participant %d, %w", line, err)
				return false
			}

			if !ok {
				return true
			}
		}

		rec := &jw.WalkRecord{
			Path:       opts.URI,
			LineNumber: line,
			Body:       body,
		}

		walk_err = opts.Callback(ctx, rec, nil)
		return walk_err == nil
	})

	if walk_err != nil {
		return walk_err
	}

	eof := &jw.WalkError{
		Path:       opts.URI,
		LineNumber: line,
		Err:        io.EOF,
	}

	return opts.Callback(ctx, nil, eof)
}
