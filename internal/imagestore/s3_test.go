package imagestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lps-ufrj-br/pvectl/internal/config"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

func (m *mockAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestNew_RequiresCredentials(t *testing.T) {
	t.Parallel()
	_, err := New(context.Background(), config.S3Config{Endpoint: "http://minio:9000"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_key")
}

func TestList(t *testing.T) {
	t.Parallel()
	api := &mockAPI{}
	store := &Store{client: api, bucket: "images"}

	modified := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	size := int64(1024)
	api.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return in.ContinuationToken == nil
	})).Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{
			{Key: aws.String("base.vma.zst"), Size: &size, LastModified: &modified},
		},
		NextContinuationToken: aws.String("page2"),
	}, nil)
	api.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.ContinuationToken) == "page2"
	})).Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{
			{Key: aws.String("gpu.vma.zst")},
		},
	}, nil)

	images, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "base.vma.zst", images[0].Key)
	assert.Equal(t, int64(1024), images[0].Size)
	assert.Equal(t, modified, images[0].LastModified)
	assert.Equal(t, "gpu.vma.zst", images[1].Key)
}

func TestList_MissingBucket(t *testing.T) {
	t.Parallel()
	api := &mockAPI{}
	store := &Store{client: api, bucket: "images"}

	api.On("ListObjectsV2", mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "not found"})

	_, err := store.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `image bucket "images" does not exist`)
}

func TestUpload(t *testing.T) {
	t.Parallel()
	api := &mockAPI{}
	store := &Store{client: api, bucket: "images"}

	path := filepath.Join(t.TempDir(), "base.vma.zst")
	require.NoError(t, os.WriteFile(path, []byte("image bytes"), 0o600))

	api.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "images" && aws.ToString(in.Key) == "base.vma.zst"
	})).Return(&s3.PutObjectOutput{}, nil)

	require.NoError(t, store.Upload(context.Background(), "base.vma.zst", path))
	api.AssertExpectations(t)
}

func TestUpload_MissingFile(t *testing.T) {
	t.Parallel()
	store := &Store{client: &mockAPI{}, bucket: "images"}

	err := store.Upload(context.Background(), "x", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open image file")
}
