package cep

import (
	"context"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectOptions controls access to a record store kept in S3-compatible
// object storage.
type ObjectOptions struct {
	// RequestTimeout bounds every ranged GET. Zero means no timeout.
	RequestTimeout time.Duration
}

// ObjectSource reads records from one object with a ranged GET per probe.
// The object size is fetched once at open time.
type ObjectSource struct {
	client  *minio.Client
	bucket  string
	key     string
	size    int64
	timeout time.Duration
	closed  atomic.Bool
}

// NewMinioClient builds a path-style client for endpoint.
func NewMinioClient(endpoint, accessKeyID, secretAccessKey, region string, useSSL bool) (*minio.Client, error) {
	c, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create minio client for %s", endpoint)
	}
	return c, nil
}

// OpenObject stats bucket/key and returns a source over it. A missing object
// yields an error satisfying errors.Is(err, os.ErrNotExist).
func OpenObject(ctx context.Context, client *minio.Client, bucket, key string, opts ObjectOptions) (*ObjectSource, error) {
	info, err := client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" || resp.Code == "NotFound" {
			return nil, errors.Wrapf(os.ErrNotExist, "object %s/%s", bucket, key)
		}
		return nil, errors.Wrapf(err, "stat object %s/%s", bucket, key)
	}
	return &ObjectSource{
		client:  client,
		bucket:  bucket,
		key:     key,
		size:    info.Size,
		timeout: opts.RequestTimeout,
	}, nil
}

func (o *ObjectSource) Size() int64 { return o.size }

func (o *ObjectSource) ReadAt(p []byte, off int64) (int, error) {
	if o.closed.Load() {
		return 0, ErrSourceClosed
	}
	if off < 0 {
		return 0, errors.Newf("negative offset %d", off)
	}
	if off >= o.size {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	end := off + int64(len(p)) - 1
	if end >= o.size {
		end = o.size - 1
	}
	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, end); err != nil {
		return 0, err
	}

	ctx := context.Background()
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	obj, err := o.client.GetObject(ctx, o.bucket, o.key, opts)
	if err != nil {
		return 0, errors.Wrapf(err, "get object %s/%s", o.bucket, o.key)
	}
	defer obj.Close()

	want := int(end - off + 1)
	n, err := io.ReadFull(obj, p[:want])
	if err != nil {
		return n, errors.Wrapf(err, "read object %s/%s range %d-%d", o.bucket, o.key, off, end)
	}
	if want < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (o *ObjectSource) Close() error {
	if !o.closed.CompareAndSwap(false, true) {
		return ErrSourceClosed
	}
	return nil
}
