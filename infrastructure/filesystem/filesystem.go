// Package filesystem stores uploaded blobs. Production uses S3, local
// development a plain directory.
package filesystem

import (
	"context"
	"io"
)

type BlobStore interface {
	Read(ctx context.Context, key string, out io.Writer) error
	Write(ctx context.Context, key string, in io.Reader) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]string, error)
}
