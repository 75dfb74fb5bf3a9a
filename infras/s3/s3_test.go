package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/config"
	"roomly/infras/otel/mocks"
)

type fakeClient struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted *s3.DeleteObjectInput
	err     error
}

func (f *fakeClient) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.put = params
	f.body, _ = io.ReadAll(params.Body)

	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.deleted = params

	return &s3.DeleteObjectOutput{}, nil
}

func newTestS3(client objectClient) *s3Impl {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "roomly"
	cfg.External.S3.PublicDomain = "https://cdn.roomly.dev"
	cfg.External.S3.APIEndpoint = "https://s3.roomly.dev"

	return &s3Impl{client: client, config: cfg, otel: mocks.NewOtel()}
}

func TestUploadFileBytes(t *testing.T) {
	client := &fakeClient{}
	svc := newTestS3(client)

	url, err := svc.UploadFileBytes(context.Background(), DirectoryAvatars, "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.roomly.dev/avatars/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	assert.Equal(t, "roomly", *client.put.Bucket)
	assert.Equal(t, "image/png", *client.put.ContentType)
	assert.Equal(t, []byte("png-bytes"), client.body)
}

func TestUploadFileBytes_Errors(t *testing.T) {
	svc := newTestS3(&fakeClient{})

	_, err := svc.UploadFileBytes(context.Background(), DirectoryAvatars, "image/png", nil)
	assert.ErrorIs(t, err, ErrEmptyFile)

	failing := newTestS3(&fakeClient{err: errors.New("denied")})

	_, err = failing.UploadFileBytes(context.Background(), DirectoryAvatars, "image/png", []byte("x"))
	assert.Error(t, err)
}

func TestDeleteFileByURL(t *testing.T) {
	client := &fakeClient{}
	svc := newTestS3(client)

	require.NoError(t, svc.DeleteFileByURL(context.Background(), "https://cdn.roomly.dev/rooms/a.png"))
	assert.Equal(t, "rooms/a.png", *client.deleted.Key)

	require.NoError(t, svc.DeleteFileByURL(context.Background(), "https://s3.roomly.dev/roomly/locations/b.jpg"))
	assert.Equal(t, "locations/b.jpg", *client.deleted.Key)

	client.deleted = nil
	require.NoError(t, svc.DeleteFileByURL(context.Background(), "https://elsewhere.dev/c.jpg"))
	assert.Nil(t, client.deleted)
}
