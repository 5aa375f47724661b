package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"fitbuilder/server/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// objectAPI is the part of *s3.Client the slot needs.
type objectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ repository.CASSlot = (*ObjectSlot)(nil)

// ObjectSlot stores each key as one JSON object in a bucket. Conditional
// writes (If-Match / If-None-Match) make CompareAndSwap safe across
// processes.
type ObjectSlot struct {
	client objectAPI
	bucket string
	prefix string
}

func NewObjectSlot(client *s3.Client, bucket, prefix string) *ObjectSlot {
	return newObjectSlot(client, bucket, prefix)
}

func newObjectSlot(client objectAPI, bucket, prefix string) *ObjectSlot {
	return &ObjectSlot{client: client, bucket: bucket, prefix: prefix}
}

func (o *ObjectSlot) objectKey(key string) string {
	return o.prefix + key + ".json"
}

func (o *ObjectSlot) Load(ctx context.Context, key string) ([]byte, bool, error) {
	data, _, err := o.get(ctx, key)
	if errors.Is(err, ErrObjectNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (o *ObjectSlot) Store(ctx context.Context, key string, data []byte) error {
	_, err := o.client.PutObject(ctx, o.putInput(key, data))
	if err != nil {
		return fmt.Errorf("put object %s: %w", o.objectKey(key), err)
	}
	return nil
}

func (o *ObjectSlot) CompareAndSwap(ctx context.Context, key string, old, next []byte) (bool, error) {
	in := o.putInput(key, next)

	if old == nil {
		in.IfNoneMatch = aws.String("*")
	} else {
		current, etag, err := o.get(ctx, key)
		if errors.Is(err, ErrObjectNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if !bytes.Equal(current, old) {
			return false, nil
		}
		in.IfMatch = aws.String(etag)
	}

	_, err := o.client.PutObject(ctx, in)
	if isPreconditionFailure(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("put object %s: %w", o.objectKey(key), err)
	}
	return true, nil
}

func (o *ObjectSlot) get(ctx context.Context, key string) ([]byte, string, error) {
	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.objectKey(key)),
	})
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return nil, "", ErrObjectNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("get object %s: %w", o.objectKey(key), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read object %s: %w", o.objectKey(key), err)
	}
	return data, aws.ToString(out.ETag), nil
}

func (o *ObjectSlot) putInput(key string, data []byte) *s3.PutObjectInput {
	return &s3.PutObjectInput{
		Bucket:      aws.String(o.bucket),
		Key:         aws.String(o.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}
}

// isPreconditionFailure reports a lost conditional write: 412 when the
// ETag no longer matches, 409 when another conditional write is in flight.
func isPreconditionFailure(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "PreconditionFailed", "ConditionalRequestConflict":
		return true
	}
	return false
}
