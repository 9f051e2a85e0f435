// Package suitebro implements the outermost save-file container: the
// header, the Items block, and the per-item TinyRick property tree, along
// with the JSON projection that ties the whole document together.
package suitebro

import (
	"encoding/base64"
	"encoding/json"

	"github.com/brecert/towersave/internal/codecio"
	"github.com/brecert/towersave/internal/gvas"
)

// Header is the save file's standard GVAS preamble: a magic tag, engine and
// package versions, and a custom format version list. Its contents are
// opaque to this tool — only its extent matters, so that the Items block
// that follows it can be located on read and the header reproduced
// byte-for-byte on write.
type Header struct {
	raw []byte
}

var gvasMagic = [4]byte{'G', 'V', 'A', 'S'}

// ReadHeader parses just enough of the standard GVAS preamble to find its
// end, then keeps the consumed bytes verbatim for replay on write.
func ReadHeader(r *codecio.Reader) (Header, error) {
	start := r.Offset()
	magic, err := r.ReadBytes(4)
	if err != nil {
		return Header{}, gvas.IOErrorf(r.Offset(), err)
	}
	if magic[0] != gvasMagic[0] || magic[1] != gvasMagic[1] || magic[2] != gvasMagic[2] || magic[3] != gvasMagic[3] {
		return Header{}, gvas.BadMagic(start, "expected GVAS magic")
	}

	if _, err := r.ReadI32(); err != nil { // SaveGameFileVersion
		return Header{}, err
	}
	if _, err := r.ReadI32(); err != nil { // PackageFileUEVersion.FileVersionUE4
		return Header{}, err
	}
	if _, err := r.ReadI32(); err != nil { // PackageFileUEVersion.FileVersionUE5
		return Header{}, err
	}

	// SavedEngineVersion: major, minor, patch (u16 each), changelist (u32),
	// branch (FString).
	for i := 0; i < 3; i++ {
		if _, err := r.ReadU16(); err != nil {
			return Header{}, err
		}
	}
	if _, err := r.ReadU32(); err != nil {
		return Header{}, err
	}
	if _, err := gvas.ReadFString(r); err != nil {
		return Header{}, err
	}

	if _, err := r.ReadI32(); err != nil { // CustomFormatVersion
		return Header{}, err
	}
	customCount, err := r.ReadI32()
	if err != nil {
		return Header{}, err
	}
	for i := int32(0); i < customCount; i++ {
		if _, err := r.ReadBytes(16); err != nil { // per-entry GUID
			return Header{}, err
		}
		if _, err := r.ReadI32(); err != nil { // per-entry version
			return Header{}, err
		}
	}

	if _, err := gvas.ReadFString(r); err != nil { // SaveGameClassName
		return Header{}, err
	}

	return Header{raw: append([]byte(nil), r.Since(start)...)}, nil
}

// WriteTo replays the header bytes verbatim.
func (h Header) WriteTo(w *codecio.Writer) error {
	return w.WriteBytes(h.raw)
}

// ByteSize is the number of bytes WriteTo emits.
func (h Header) ByteSize() int { return len(h.raw) }

func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(h.raw))
}

func (h *Header) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	h.raw = raw
	return nil
}
