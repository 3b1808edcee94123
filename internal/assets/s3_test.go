package assets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 keeps objects in memory and mimics NoSuchKey for missing keys.
type fakeS3 struct {
	objects  map[string][]byte
	types    map[string]string
	putInput *s3.PutObjectInput
	putErr   error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInput = in
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	data, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentType:   aws.String(f.types[key]),
		ContentLength: aws.Int64(int64(len(data))),
		ETag:          aws.String(`"etag-1"`),
	}, nil
}

func TestS3Store_PutAndGet(t *testing.T) {
	fake := newFakeS3()
	store := NewS3StoreWithAPI(fake, "avatars-bucket")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "avatars/ana.png", pngBytes, "image/png"))
	require.NotNil(t, fake.putInput)
	assert.Equal(t, "avatars-bucket", aws.ToString(fake.putInput.Bucket))
	assert.Equal(t, int64(len(pngBytes)), aws.ToInt64(fake.putInput.ContentLength))

	obj, err := store.Get(ctx, "avatars/ana.png")
	require.NoError(t, err)
	defer obj.Body.Close()
	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, int64(len(pngBytes)), obj.ContentLength)
	assert.Equal(t, `"etag-1"`, obj.ETag)
}

func TestS3Store_Errors(t *testing.T) {
	fake := newFakeS3()
	store := NewS3StoreWithAPI(fake, "bucket")
	ctx := context.Background()

	_, err := store.Get(ctx, "avatars/missing.png")
	assert.ErrorIs(t, err, ErrNotFound)

	fake.putErr = errors.New("access denied")
	err = store.Put(ctx, "avatars/x.png", pngBytes, "image/png")
	assert.ErrorIs(t, err, fake.putErr)

	assert.ErrorIs(t, store.Put(ctx, "", pngBytes, "image/png"), ErrInvalidKey)
}
