package encoding

import (
	"bytes"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/oesand/ember/specs"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestChunkedWriter_EveryWriteIsAChunk(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkedWriter(&buf)

	_, err := cw.Write([]byte("a"))
	assert.NilError(t, err)
	_, err = cw.Write([]byte("b"))
	assert.NilError(t, err)
	_, err = cw.Write(nil)
	assert.NilError(t, err)
	_, err = cw.Write(bytes.Repeat([]byte("x"), 26))
	assert.NilError(t, err)
	assert.NilError(t, cw.Close())

	expected := "1\r\na\r\n1\r\nb\r\n1a\r\n" + string(bytes.Repeat([]byte("x"), 26)) + "\r\n0\r\n\r\n"
	assert.Check(t, is.Equal(buf.String(), expected))
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		accept   string
		expected string
	}{
		{"gzip, deflate, br", specs.ContentEncodingGzip},
		{"br, deflate", specs.ContentEncodingBrotli},
		{"deflate", specs.ContentEncodingDeflate},
		{"GZIP", specs.ContentEncodingGzip},
		{"gzip;q=0, br", specs.ContentEncodingBrotli},
		{"gzip; q=0.5", specs.ContentEncodingGzip},
		{"identity", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			assert.Check(t, is.Equal(Negotiate(tt.accept), tt.expected))
		})
	}
}

func TestNewWriter_FlushedOutputDecodes(t *testing.T) {
	decoders := map[string]func(io.Reader) (io.Reader, error){
		specs.ContentEncodingGzip: func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) },
		specs.ContentEncodingDeflate: func(r io.Reader) (io.Reader, error) {
			return zlib.NewReader(r)
		},
		specs.ContentEncodingBrotli: func(r io.Reader) (io.Reader, error) { return brotli.NewReader(r), nil },
	}

	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			cw, err := NewWriter(name, &buf)
			assert.NilError(t, err)

			_, err = cw.Write([]byte("hello "))
			assert.NilError(t, err)
			assert.NilError(t, cw.Flush())
			assert.Check(t, buf.Len() > 0)

			_, err = cw.Write([]byte("world"))
			assert.NilError(t, err)
			assert.NilError(t, cw.Close())

			reader, err := decode(&buf)
			assert.NilError(t, err)
			plain, err := io.ReadAll(reader)
			assert.NilError(t, err)
			assert.Check(t, is.Equal(string(plain), "hello world"))
		})
	}
}

func TestNewWriter_Unknown(t *testing.T) {
	_, err := NewWriter("compress", io.Discard)
	assert.Check(t, is.ErrorContains(err, "unknown content encoding"))
	assert.Check(t, !IsKnownEncoding("compress"))
	assert.Check(t, IsKnownEncoding(specs.ContentEncodingBrotli))
}
