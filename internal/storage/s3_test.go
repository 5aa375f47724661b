package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitbuilder/server/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	keys []string
	err  error
}

func (f *fakePresigner) PresignGetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, aws.ToString(in.Key))
	return &v4.PresignedHTTPRequest{URL: "https://signed.example/" + aws.ToString(in.Key) + "?X-Amz-Signature=x"}, nil
}

func (f *fakePresigner) PresignPutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.keys = append(f.keys, aws.ToString(in.Key))
	return &v4.PresignedHTTPRequest{URL: "https://signed.example/put/" + aws.ToString(in.Key)}, nil
}

func testS3Config() config.S3Config {
	return config.S3Config{BucketName: "media-bucket", MediaPrefix: "media/", PresignExpiry: time.Minute}
}

func TestS3Media_ResolveMediaURL(t *testing.T) {
	p := &fakePresigner{}
	media := newS3Media(p, testS3Config())
	ctx := context.Background()

	url, err := media.ResolveMediaURL(ctx, "https://cdn.example.com/squat.gif")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/squat.gif", url)

	url, err = media.ResolveMediaURL(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, url)

	url, err = media.ResolveMediaURL(ctx, "media/plank.mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/media/plank.mp4?X-Amz-Signature=x", url)
	assert.Equal(t, []string{"media/plank.mp4"}, p.keys)
}

func TestS3Media_ResolveMediaURLError(t *testing.T) {
	media := newS3Media(&fakePresigner{err: errors.New("no credentials")}, testS3Config())
	_, err := media.ResolveMediaURL(context.Background(), "media/plank.mp4")
	assert.EqualError(t, err, "no credentials")
}

func TestS3Media_UploadURLIsUnderMediaPrefix(t *testing.T) {
	p := &fakePresigner{}
	media := newS3Media(p, testS3Config())

	url, err := media.GeneratePresignedUploadURL(context.Background(), "lunges.gif", "image/gif", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/put/media/lunges.gif", url)
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "", endpointURL("", true))
	assert.Equal(t, "https://minio:9000", endpointURL("minio:9000", true))
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000", false))
	assert.Equal(t, "http://localhost:9000", endpointURL("http://localhost:9000", true))
}

func TestPassthroughMedia(t *testing.T) {
	url, err := PassthroughMedia{}.ResolveMediaURL(context.Background(), "media/x.gif")
	require.NoError(t, err)
	assert.Equal(t, "media/x.gif", url)

	_, err = PassthroughMedia{}.GeneratePresignedUploadURL(context.Background(), "x", "image/gif", 0)
	assert.ErrorIs(t, err, ErrStorageDisabled)
}
