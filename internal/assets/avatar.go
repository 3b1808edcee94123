package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// PathPrefix is the public path under which stored assets are served.
const PathPrefix = "/assets/"

const dataURLPrefix = "data:image/"

// imageExtensions lists the accepted avatar types. Only raster formats are
// allowed; SVG can carry script and is served from the API origin.
var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
	"image/avif": "avif",
}

// IsDataURL reports whether s carries an embedded base64 image.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, dataURLPrefix)
}

// DecodeDataURL parses a "data:image/<type>[;param=value...];base64,<payload>"
// string. Only the types in imageExtensions are accepted.
func DecodeDataURL(s string) (*Image, error) {
	if !IsDataURL(s) {
		return nil, ErrInvalidDataURL
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing payload", ErrInvalidDataURL)
	}
	if !strings.HasSuffix(strings.ToLower(header), ";base64") {
		return nil, fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURL)
	}
	contentType, _, _ := strings.Cut(header, ";")
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image type %q", ErrInvalidDataURL, contentType)
	}
	if contentType == "image/jpg" {
		contentType = "image/jpeg"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidDataURL)
	}
	return &Image{Data: data, ContentType: contentType, Ext: ext}, nil
}

// AvatarKey builds a unique object key for a player's avatar.
func AvatarKey(playerName, ext string) string {
	name := slug.Make(playerName)
	if name == "" {
		name = "player"
	}
	return fmt.Sprintf("avatars/%s-%s.%s", name, uuid.NewString(), ext)
}

// PathFor returns the public reference path for a key.
func PathFor(key string) string {
	return PathPrefix + key
}

// UploadAvatar decodes an embedded image, stores it and returns the
// reference path that replaces the data URL on the player.
func UploadAvatar(ctx context.Context, store Store, playerName, dataURL string) (string, error) {
	img, err := DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	key := AvatarKey(playerName, img.Ext)
	if err := store.Put(ctx, key, img.Data, img.ContentType); err != nil {
		return "", err
	}
	return PathFor(key), nil
}
