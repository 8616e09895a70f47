package backup

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutObject struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Upload(t *testing.T) {
	fake := &fakePutObject{}
	u := &S3Uploader{client: fake, bucket: "shop-backups", prefix: "darzi/"}

	require.NoError(t, u.Upload(context.Background(), "backup_2025-03-09.json", []byte(`{"customers":[]}`)))
	assert.Equal(t, "shop-backups", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "darzi/backup_2025-03-09.json", aws.ToString(fake.input.Key))
	assert.Equal(t, "application/json", aws.ToString(fake.input.ContentType))
	assert.Equal(t, `{"customers":[]}`, string(fake.body))
}

func TestS3UploadError(t *testing.T) {
	boom := errors.New("access denied")
	u := &S3Uploader{client: &fakePutObject{err: boom}, bucket: "b"}

	err := u.Upload(context.Background(), "x.json", nil)
	assert.ErrorIs(t, err, boom)
}

func TestNewS3UploaderRequiresBucket(t *testing.T) {
	_, err := NewS3Uploader(context.Background(), S3Config{})
	assert.ErrorIs(t, err, ErrBucketEmpty)
}

func TestNewS3UploaderStaticCredentials(t *testing.T) {
	u, err := NewS3Uploader(context.Background(), S3Config{
		Bucket:          "b",
		Region:          "us-east-1",
		Prefix:          "p/",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "p/x.json", u.Key("x.json"))
}
