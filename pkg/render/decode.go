package render

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// imageDecoders is consulted instead of image.Decode: the TGA package
// registers itself with an empty magic string, which matches any input.
var imageDecoders = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"jpeg": jpeg.Decode,
	"bmp":  bmp.Decode,
	"webp": webp.Decode,
	"tga":  tga.Decode,
}

// ImageFormat names the image format of a file extension (".png") or MIME
// type ("image/png"). It returns "" when the name is not recognised.
func ImageFormat(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimPrefix(name, "image/")
	name = strings.TrimPrefix(name, ".")
	switch name {
	case "png", "bmp", "webp", "tga":
		return name
	case "jpg", "jpeg":
		return "jpeg"
	case "x-tga", "x-targa":
		return "tga"
	case "x-ms-bmp":
		return "bmp"
	}
	return ""
}

// sniffFormat recognises the formats that carry a signature. TGA has none.
func sniffFormat(head []byte) string {
	switch {
	case bytes.HasPrefix(head, []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case bytes.HasPrefix(head, []byte{0xff, 0xd8, 0xff}):
		return "jpeg"
	case bytes.HasPrefix(head, []byte("BM")):
		return "bmp"
	case len(head) >= 12 && bytes.HasPrefix(head, []byte("RIFF")) && string(head[8:12]) == "WEBP":
		return "webp"
	}
	return ""
}

// DecodeImage decodes r as format, one of the names ImageFormat returns.
// An empty format is detected from the leading bytes.
func DecodeImage(r io.Reader, format string) (image.Image, error) {
	br := bufio.NewReader(r)
	if format == "" {
		head, _ := br.Peek(12)
		format = sniffFormat(head)
	}
	decode, ok := imageDecoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: image format %q", ErrUnsupportedFormat, format)
	}
	return decode(br)
}
