package study

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"gocloud.dev/blob"
	"gocloud.dev/blob/s3blob"
)

// AWS_S3_SCHEME is the URI scheme for buckets stored in AWS S3.
const AWS_S3_SCHEME string = "s3"

// NewAWSSession returns a new AWS session for 'region' using the default credentials chain
// (environment variables, shared credentials file and so on).
func NewAWSSession(region string) (*session.Session, error) {

	opts := session.Options{
		Config: aws.Config{
			Region: aws.String(region),
		},
		SharedConfigState: session.SharedConfigEnable,
	}

	sess, err := session.NewSessionWithOptions(opts)

	if err != nil {
		return nil, fmt.Errorf("Failed to create AWS session, %w", err)
	}

	return sess, nil
}

// OpenS3Bucket opens the S3 bucket named 'bucket_name' in 'region'.
func OpenS3Bucket(ctx context.Context, bucket_name string, region string) (*blob.Bucket, error) {

	sess, err := NewAWSSession(region)

	if err != nil {
		return nil, err
	}

	bucket, err := s3blob.OpenBucket(ctx, sess, bucket_name, nil)

	if err != nil {
		return nil, fmt.Errorf("Failed to open S3 bucket %s, %w", bucket_name, err)
	}

	return bucket, nil
}
