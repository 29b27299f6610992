package mirror

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	keys    []string
	buckets []string
	bodies  [][]byte
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.keys = append(f.keys, *params.Key)
	f.buckets = append(f.buckets, *params.Bucket)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return nil, errors.New("multipart not expected in tests")
}

func (f *fakeS3) UploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return nil, errors.New("multipart not expected in tests")
}

func (f *fakeS3) CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return nil, errors.New("multipart not expected in tests")
}

func (f *fakeS3) AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return nil, errors.New("multipart not expected in tests")
}

func writeAsset(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestUploadPrefixesKeyWithConfiguredPrefix(t *testing.T) {
	fake := &fakeS3{}
	u := &Uploader{client: fake, bucket: "eo-archive", prefix: "sentinel-2"}

	path := writeAsset(t, "product.zip", "zip bytes")
	require.NoError(t, u.Upload(path))

	require.Len(t, fake.keys, 1)
	assert.Equal(t, "sentinel-2/product.zip", fake.keys[0])
	assert.Equal(t, "eo-archive", fake.buckets[0])
	assert.Equal(t, []byte("zip bytes"), fake.bodies[0])
}

func TestUploadWithoutPrefix(t *testing.T) {
	fake := &fakeS3{}
	u := &Uploader{client: fake, bucket: "eo-archive"}

	require.NoError(t, u.Upload(writeAsset(t, "product.zip", "x")))
	require.Len(t, fake.keys, 1)
	assert.Equal(t, "product.zip", fake.keys[0])
}

func TestUploadMissingFile(t *testing.T) {
	u := &Uploader{client: &fakeS3{}, bucket: "eo-archive"}
	err := u.Upload(filepath.Join(t.TempDir(), "absent.zip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening file")
}

func TestUploadServiceError(t *testing.T) {
	u := &Uploader{client: &fakeS3{err: errors.New("access denied")}, bucket: "eo-archive"}
	err := u.Upload(writeAsset(t, "product.zip", "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uploading to S3")
}
