package specs

import (
	"bytes"
	"iter"
	"strings"

	"github.com/oesand/ember/internal"
)

// NewHeader creates an empty Header and applies the configurators in order.
func NewHeader(conf ...func(*Header)) *Header {
	header := &Header{}
	for _, c := range conf {
		c(header)
	}
	return header
}

// Header is an insertion ordered set of header fields.
// Names are matched case-insensitively; the first spelling set for a name is
// title cased and kept for display.
type Header struct {
	_ internal.NoCopy

	entries []headerEntry
	index   map[string]int
}

type headerEntry struct {
	name  string
	value string
}

func (header *Header) Get(name string) string {
	value, _ := header.TryGet(name)
	return value
}

func (header *Header) TryGet(name string) (string, bool) {
	if header.index == nil {
		return "", false
	}
	i, has := header.index[strings.ToLower(name)]
	if !has {
		return "", false
	}
	return header.entries[i].value, true
}

func (header *Header) Has(name string) bool {
	_, has := header.TryGet(name)
	return has
}

func (header *Header) Set(name, value string) {
	key := strings.ToLower(name)
	if header.index == nil {
		header.index = map[string]int{}
	}
	if i, has := header.index[key]; has {
		header.entries[i].value = value
		return
	}
	header.index[key] = len(header.entries)
	header.entries = append(header.entries, headerEntry{
		name:  internal.TitleCase(name),
		value: value,
	})
}

func (header *Header) Del(name string) {
	if header.index == nil {
		return
	}
	key := strings.ToLower(name)
	i, has := header.index[key]
	if !has {
		return
	}
	header.entries = append(header.entries[:i], header.entries[i+1:]...)
	delete(header.index, key)
	for j := i; j < len(header.entries); j++ {
		header.index[strings.ToLower(header.entries[j].name)] = j
	}
}

func (header *Header) Len() int {
	return len(header.entries)
}

// All yields fields in insertion order.
func (header *Header) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, entry := range header.entries {
			if !yield(entry.name, entry.value) {
				break
			}
		}
	}
}

func (header *Header) Clone() *Header {
	clone := &Header{
		entries: make([]headerEntry, len(header.entries)),
		index:   make(map[string]int, len(header.entries)),
	}
	copy(clone.entries, header.entries)
	for key, i := range header.index {
		clone.index[key] = i
	}
	return clone
}

// Bytes renders every field as "Name: value\r\n".
func (header *Header) Bytes() []byte {
	if len(header.entries) == 0 {
		return make([]byte, 0)
	}
	var buf bytes.Buffer

	for _, entry := range header.entries {
		buf.WriteString(entry.name)
		buf.Write(directColonSpace)
		buf.WriteString(entry.value)
		buf.Write(directCrlf)
	}

	return buf.Bytes()
}
