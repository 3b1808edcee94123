package assets

import (
	"errors"
	"io"
)

var (
	// ErrNotFound is returned when no blob exists under a key.
	ErrNotFound = errors.New("asset not found")
	// ErrInvalidKey is returned for empty keys or keys escaping the store root.
	ErrInvalidKey = errors.New("invalid asset key")
	// ErrInvalidDataURL is returned when an embedded image cannot be decoded.
	ErrInvalidDataURL = errors.New("invalid image data URL")
)

// Object is a stored blob together with its metadata. ContentLength is -1
// and ETag is empty when the backend does not know them.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	ETag          string
}

// Image is a decoded data URL payload.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
}
