package study

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// BucketOptions defines optional settings for opening a bucket.
type BucketOptions struct {
	// An AWS region. If not empty 's3://' buckets are opened with an explicit AWS session for this region.
	S3Region string
}

// OpenBucket opens the GoCloud bucket for 'bucket_uri'. Valid schemes are: file://, mem:// and s3://.
func OpenBucket(ctx context.Context, bucket_uri string, opts *BucketOptions) (*blob.Bucket, error) {

	if bucket_uri == "" {
		return nil, fmt.Errorf("Missing bucket URI")
	}

	u, err := url.Parse(bucket_uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse bucket URI, %w", err)
	}

	if u.Scheme == AWS_S3_SCHEME && opts != nil && opts.S3Region != "" {
		return OpenS3Bucket(ctx, u.Host, opts.S3Region)
	}

	bucket, err := blob.OpenBucket(ctx, bucket_uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to open bucket %s, %w", bucket_uri, err)
	}

	return bucket, nil
}

// ResolveURI splits a study configuration location in to a bucket URI and the key of the document
// in that bucket. 'uri' may be a GoCloud blob URI (for example s3://bucket/studies/study.json) or a
// local path.
func ResolveURI(uri string) (string, string, error) {

	if strings.Contains(uri, "://") {

		u, err := url.Parse(uri)

		if err != nil {
			return "", "", fmt.Errorf("Failed to parse %s, %w", uri, err)
		}

		key := strings.TrimLeft(u.Path, "/")

		if key == "" {
			return "", "", fmt.Errorf("%s does not contain a key", uri)
		}

		u.Path = "/"

		if u.Scheme == "file" {
			u.Path = filepath.Dir("/" + key)
			key = filepath.Base(key)
		} else if u.Host != "" {
			u.Path = ""
		}

		return u.String(), key, nil
	}

	abs_path, err := filepath.Abs(uri)

	if err != nil {
		return "", "", fmt.Errorf("Failed to derive absolute path for %s, %w", uri, err)
	}

	u := url.URL{
		Scheme: "file",
		Path:   filepath.Dir(abs_path),
	}

	return u.String(), filepath.Base(abs_path), nil
}
