package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr         error
	putKey         string
	putBody        []byte
	putSize        int64
	putContentType string

	statErr error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}

func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, r io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	f.putKey, f.putBody, f.putSize, f.putContentType = key, body, size, opts.ContentType
	return minioLib.UploadInfo{Key: key, Size: size}, nil
}

func (f *fakeMinio) StatObject(_ context.Context, _ string, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

func TestNewClientWithAPI(t *testing.T) {
	tests := []struct {
		name       string
		api        *fakeMinio
		wantErr    string
		wantCreate bool
	}{
		{name: "bucket exists", api: &fakeMinio{bucketExists: true}},
		{name: "bucket created", api: &fakeMinio{}, wantCreate: true},
		{name: "exists check fails", api: &fakeMinio{bucketExistsErr: errors.New("boom")}, wantErr: "failed to ensure bucket exists"},
		{name: "create fails", api: &fakeMinio{makeBucketErr: errors.New("fail")}, wantErr: "failed to create bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClientWithAPI(context.Background(), tt.api, "mail")
			if tt.wantErr != "" {
				assert.Nil(t, c)
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "mail", c.bucket)
			if tt.wantCreate {
				assert.Equal(t, "mail", tt.api.madeBucket)
			}
		})
	}
}

func TestUpload(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "mail")
	require.NoError(t, err)

	body := []byte("Subject: hi\r\n\r\nbody")
	require.NoError(t, c.Upload(context.Background(), "verification/x.eml", bytes.NewReader(body)))

	assert.Equal(t, "verification/x.eml", api.putKey)
	assert.Equal(t, body, api.putBody)
	assert.Equal(t, int64(len(body)), api.putSize)
	assert.Equal(t, "message/rfc822", api.putContentType)

	api.putErr = errors.New("down")
	assert.ErrorContains(t, c.Upload(context.Background(), "k", bytes.NewReader(body)), "failed to upload object")
}

func TestExists(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "mail")
	require.NoError(t, err)

	ok, err := c.Exists(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)

	api.statErr = minioLib.ErrorResponse{Code: "NoSuchKey"}
	ok, err = c.Exists(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)

	api.statErr = errors.New("boom")
	_, err = c.Exists(context.Background(), "k")
	assert.Error(t, err)
}
