package encoding

import (
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/oesand/ember/specs"
)

// Compressor is a streaming content encoder. Flush pushes everything written
// so far to the underlying writer without ending the stream.
type Compressor interface {
	io.WriteCloser
	Flush() error
}

func NewWriter(contentEncoding string, writer io.Writer) (Compressor, error) {
	switch contentEncoding {
	case specs.ContentEncodingGzip:
		return gzip.NewWriter(writer), nil
	case specs.ContentEncodingDeflate:
		return zlib.NewWriter(writer), nil
	case specs.ContentEncodingBrotli:
		return brotli.NewWriter(writer), nil
	}
	return nil, fmt.Errorf("unknown content encoding %s", contentEncoding)
}
