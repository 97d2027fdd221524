package objectstorage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore is the interface for listing objects in an external object storage service such as AWS S3
type ObjectStore interface {
	ListObjects(ctx context.Context, path string) ([]string, error)
}

// SplitS3Path splits s3://bucket/key into its bucket and key. The key may be empty.
func SplitS3Path(path string) (bucket string, key string, err error) {
	if !strings.HasPrefix(path, "s3://") {
		return "", "", fmt.Errorf("path does not contain s3:// protocol prefix: %s", path)
	}
	bucket, key, _ = strings.Cut(path[5:], "/")
	if bucket == "" {
		return "", "", fmt.Errorf("error occurred when retrieving bucket from: %s", path)
	}
	return bucket, key, nil
}

// AWS S3 Implementation of ObjectStore

type awsS3ObjectStore struct {
	s3Client s3.ListObjectsV2APIClient
}

func NewAwsS3ObjectStore(cfg aws.Config) ObjectStore {
	return &awsS3ObjectStore{s3Client: s3.NewFromConfig(cfg)}
}

// NewObjectStoreFromClient wraps any ListObjectsV2 client, such as a preconfigured *s3.Client.
func NewObjectStoreFromClient(client s3.ListObjectsV2APIClient) ObjectStore {
	return &awsS3ObjectStore{s3Client: client}
}

func (store *awsS3ObjectStore) ListObjects(ctx context.Context, path string) ([]string, error) {
	s3Bucket, s3Key, err := SplitS3Path(path)
	if err != nil {
		return nil, err
	}
	paginator := s3.NewListObjectsV2Paginator(store.s3Client, &s3.ListObjectsV2Input{
		Bucket: &s3Bucket,
		Prefix: &s3Key,
	})
	objectPaths := []string{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects under %s: %w", path, err)
		}
		for _, objMetadata := range page.Contents {
			objectPaths = append(objectPaths, fmt.Sprintf("s3://%s/%s", s3Bucket, aws.ToString(objMetadata.Key)))
		}
	}
	return objectPaths, nil
}
