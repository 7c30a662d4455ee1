package blob

import (
	"context"
	"errors"
	"fmt"
)

// ErrUpload wraps any failed Put. Uploads run before the database write that
// would reference them, so this error always aborts the whole operation.
var ErrUpload = errors.New("blob upload failed")

// Store is durable byte storage addressable by URL. Deletion failures are
// tolerated by callers (logged, never propagated); upload failures are not.
type Store interface {
	Put(ctx context.Context, path string, data []byte) (url string, err error)
	Delete(ctx context.Context, url string) error
}

func UploadError(err error) error {
	return fmt.Errorf("%w: %v", ErrUpload, err)
}
