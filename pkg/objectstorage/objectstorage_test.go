package objectstorage

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitS3Path(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		bucket  string
		key     string
		wantErr bool
	}{
		{"s3://bucket/prefix/file.csv", "bucket", "prefix/file.csv", false},
		{"s3://bucket/", "bucket", "", false},
		{"s3://bucket", "bucket", "", false},
		{"s3://", "", "", true},
		{"/local/dir", "", "", true},
		{"https://bucket.s3.amazonaws.com/key", "", "", true},
	}
	for _, tt := range tests {
		bucket, key, err := SplitS3Path(tt.path)
		if tt.wantErr {
			assert.Error(t, err, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.bucket, bucket, tt.path)
		assert.Equal(t, tt.key, key, tt.path)
	}
}

// pagedClient serves one page per call and records the inputs it saw.
type pagedClient struct {
	pages  []*s3.ListObjectsV2Output
	err    error
	inputs []*s3.ListObjectsV2Input
}

func (c *pagedClient) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	c.inputs = append(c.inputs, in)
	if c.err != nil {
		return nil, c.err
	}
	page := c.pages[len(c.inputs)-1]
	return page, nil
}

func TestListObjectsFollowsContinuationTokens(t *testing.T) {
	t.Parallel()

	client := &pagedClient{pages: []*s3.ListObjectsV2Output{
		{
			Contents:              []types.Object{{Key: aws.String("uploads/a.csv")}, {Key: aws.String("uploads/b.csv")}},
			IsTruncated:           aws.Bool(true),
			NextContinuationToken: aws.String("token-1"),
		},
		{
			Contents:    []types.Object{{Key: aws.String("uploads/c.csv")}},
			IsTruncated: aws.Bool(false),
		},
	}}

	paths, err := NewObjectStoreFromClient(client).ListObjects(context.Background(), "s3://peregrine/uploads/")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"s3://peregrine/uploads/a.csv",
		"s3://peregrine/uploads/b.csv",
		"s3://peregrine/uploads/c.csv",
	}, paths)
	require.Len(t, client.inputs, 2)
	assert.Equal(t, "peregrine", aws.ToString(client.inputs[0].Bucket))
	assert.Equal(t, "uploads/", aws.ToString(client.inputs[0].Prefix))
	assert.Equal(t, "token-1", aws.ToString(client.inputs[1].ContinuationToken))
}

func TestListObjectsEmptyBucket(t *testing.T) {
	t.Parallel()

	client := &pagedClient{pages: []*s3.ListObjectsV2Output{{IsTruncated: aws.Bool(false)}}}
	paths, err := NewObjectStoreFromClient(client).ListObjects(context.Background(), "s3://peregrine")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestListObjectsErrors(t *testing.T) {
	t.Parallel()

	_, err := NewObjectStoreFromClient(&pagedClient{}).ListObjects(context.Background(), "peregrine/uploads")
	assert.ErrorContains(t, err, "s3:// protocol prefix")

	client := &pagedClient{err: errors.New("AccessDenied")}
	_, err = NewObjectStoreFromClient(client).ListObjects(context.Background(), "s3://peregrine/uploads")
	assert.EqualError(t, err, "list objects under s3://peregrine/uploads: AccessDenied")
}
