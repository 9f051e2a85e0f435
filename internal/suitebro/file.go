package suitebro

import (
	"fmt"

	"github.com/brecert/towersave/internal/codecio"
)

// File is the top-level document: the opaque header passthrough followed
// by the placed-item list.
type File struct {
	Header Header
	Items  []Item
}

// Decode parses a complete save file from raw bytes.
func Decode(data []byte) (*File, error) {
	r := codecio.NewReader(data)
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	items := make([]Item, count)
	for i := uint32(0); i < count; i++ {
		item, err := ReadItem(r)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items[i] = item
	}
	return &File{Header: header, Items: items}, nil
}

// Encode renders the document back to bytes. Given a File produced by
// Decode, Encode reproduces the original input exactly, except that bytes
// left over inside a TinyRick's declared size (see ResidueWarnings) are not
// written back and the size word is recomputed from the parsed TinyRick.
func (f *File) Encode() ([]byte, error) {
	w := codecio.NewWriter()
	if err := f.Header.WriteTo(w); err != nil {
		return nil, err
	}
	if err := w.WriteU32(uint32(len(f.Items))); err != nil {
		return nil, err
	}
	for i, item := range f.Items {
		if err := item.WriteTo(w); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return w.Bytes(), nil
}

// ResidueWarnings collects the non-fatal sub-buffer residue warnings found
// across every item's embedded TinyRick, in item order.
func (f *File) ResidueWarnings() []error {
	var warnings []error
	for i, item := range f.Items {
		if item.ResidueWarning != nil {
			warnings = append(warnings, fmt.Errorf("item %d (%s): %w", i, item.Name.Value, item.ResidueWarning))
		}
	}
	return warnings
}
