package recipe

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	_ "golang.org/x/image/webp"
)

const (
	magicNumberSeek = 512
	// MaxImageBytes bounds the decoded size of an uploaded image.
	MaxImageBytes = 10 << 20
)

var (
	ErrMalformedImage      = errors.New("malformed image data")
	ErrUnsupportedMimeType = errors.New("unsupported mime type")
	ErrImageTooLarge       = errors.New("image too large")
)

// allowedImageTypes lists the simple MIME types we accept.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type Image struct {
	Data     []byte
	Suffix   string
	MimeType string
}

// DecodeImage decodes an image sent as a data URI of the form
// data:image/<type>;base64,<payload>. The declared type is ignored in
// favor of the sniffed content type.
func DecodeImage(dataURI string) (Image, error) {
	header, payload, ok := strings.Cut(dataURI, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return Image{}, fmt.Errorf("expected base64 data uri: %w", ErrMalformedImage)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+3 {
		return Image{}, ErrImageTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("decoding base64: %w", errors.Join(ErrMalformedImage, err))
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("empty image: %w", ErrMalformedImage)
	}
	if len(data) > MaxImageBytes {
		return Image{}, ErrImageTooLarge
	}

	contentType := http.DetectContentType(data[:min(len(data), magicNumberSeek)])
	suffix, ok := allowedImageTypes[contentType]
	if !ok {
		return Image{}, fmt.Errorf("mime type %q: %w", contentType, ErrUnsupportedMimeType)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return Image{}, fmt.Errorf("reading image header: %w", errors.Join(ErrMalformedImage, err))
	}

	return Image{
		Data:     data,
		Suffix:   suffix,
		MimeType: contentType,
	}, nil
}
