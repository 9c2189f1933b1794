package study

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveURI(t *testing.T) {
	tests := []struct {
		uri    string
		bucket string
		key    string
	}{
		{uri: "s3://studies/2019/study.json?region=us-east-1", bucket: "s3://studies?region=us-east-1", key: "2019/study.json"},
		{uri: "file:///tmp/studies/study.json", bucket: "file:///tmp/studies", key: "study.json"},
		{uri: "/tmp/studies/study.json", bucket: "file:///tmp/studies", key: "study.json"},
	}

	for _, tc := range tests {
		bucket_uri, key, err := ResolveURI(tc.uri)
		require.NoError(t, err, tc.uri)
		require.Equal(t, tc.bucket, bucket_uri, tc.uri)
		require.Equal(t, tc.key, key, tc.uri)
	}
}

func TestResolveURI_Relative(t *testing.T) {
	abs_path, err := filepath.Abs("study.json")
	require.NoError(t, err)

	bucket_uri, key, err := ResolveURI("study.json")
	require.NoError(t, err)
	require.Equal(t, "file://"+filepath.Dir(abs_path), bucket_uri)
	require.Equal(t, "study.json", key)
}

func TestResolveURI_MissingKey(t *testing.T) {
	_, _, err := ResolveURI("s3://studies")
	require.Error(t, err)
}

func TestOpenBucket(t *testing.T) {
	ctx := context.Background()

	_, err := OpenBucket(ctx, "", nil)
	require.Error(t, err)

	bucket, err := OpenBucket(ctx, "mem://", nil)
	require.NoError(t, err)
	defer bucket.Close()

	err = bucket.WriteAll(ctx, "study.json", []byte(`[]`), nil)
	require.NoError(t, err)

	body, err := bucket.ReadAll(ctx, "study.json")
	require.NoError(t, err)
	require.Equal(t, `[]`, string(body))
}

func TestOpenBucket_Local(t *testing.T) {
	ctx := context.Background()

	bucket_uri, _, err := ResolveURI(filepath.Join(t.TempDir(), "study.json"))
	require.NoError(t, err)

	bucket, err := OpenBucket(ctx, bucket_uri, &BucketOptions{})
	require.NoError(t, err)
	defer bucket.Close()

	exists, err := bucket.Exists(ctx, "study.json")
	require.NoError(t, err)
	require.False(t, exists)
}
