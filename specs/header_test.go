package specs

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestHeader_SetIsCaseInsensitive(t *testing.T) {
	header := NewHeader(func(header *Header) {
		header.Set("content-type", "text/html")
		header.Set("X-Custom", "1")
	})

	header.Set("Content-Type", "text/plain")

	assert.Check(t, is.Equal(header.Len(), 2))
	assert.Check(t, is.Equal(header.Get("CONTENT-TYPE"), "text/plain"))
	assert.Check(t, is.Equal(string(header.Bytes()), "Content-Type: text/plain\r\nX-Custom: 1\r\n"))
}

func TestHeader_KeepsAcronyms(t *testing.T) {
	header := NewHeader()
	header.Set("ETag", "abc")
	header.Set("sec-websocket-accept", "key")

	var names []string
	for name := range header.All() {
		names = append(names, name)
	}
	assert.DeepEqual(t, names, []string{"ETag", "Sec-Websocket-Accept"})
}

func TestHeader_DelReindexes(t *testing.T) {
	header := NewHeader(func(header *Header) {
		header.Set("A", "1")
		header.Set("B", "2")
		header.Set("C", "3")
	})

	header.Del("b")

	assert.Check(t, !header.Has("B"))
	assert.Check(t, is.Equal(header.Get("C"), "3"))
	header.Set("c", "4")
	assert.Check(t, is.Equal(string(header.Bytes()), "A: 1\r\nC: 4\r\n"))
}

func TestHeader_CloneIsIndependent(t *testing.T) {
	header := NewHeader(func(header *Header) {
		header.Set("A", "1")
	})
	clone := header.Clone()
	clone.Set("A", "2")
	clone.Set("B", "3")

	assert.Check(t, is.Equal(header.Get("A"), "1"))
	assert.Check(t, !header.Has("B"))
	assert.Check(t, is.Equal(clone.Len(), 2))
}
