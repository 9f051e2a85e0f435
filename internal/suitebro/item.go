package suitebro

import (
	"fmt"

	"github.com/brecert/towersave/internal/codecio"
	"github.com/brecert/towersave/internal/gvas"
)

var tinyrickMagic = [8]byte{'t', 'i', 'n', 'y', 'r', 'i', 'c', 'k'}

const (
	defaultFormatVersion  uint32 = 1
	defaultUnrealVersion  uint32 = 517
)

// PropertySection is one named, counted block of a TinyRick's section list.
type PropertySection struct {
	Name       gvas.FString
	Properties *gvas.PropertyMap
	Unk        uint32
}

func readPropertySection(r *codecio.Reader) (PropertySection, error) {
	name, err := gvas.ReadFString(r)
	if err != nil {
		return PropertySection{}, err
	}
	props, err := gvas.ReadPropertyMap(r)
	if err != nil {
		return PropertySection{}, err
	}
	unk, err := r.ReadU32()
	if err != nil {
		return PropertySection{}, err
	}
	return PropertySection{Name: name, Properties: props, Unk: unk}, nil
}

func (s PropertySection) writeTo(w *codecio.Writer) error {
	if err := s.Name.WriteTo(w); err != nil {
		return err
	}
	if err := s.Properties.WriteTo(w); err != nil {
		return err
	}
	return w.WriteU32(s.Unk)
}

func (s PropertySection) byteSize() int {
	return s.Name.ByteSize() + s.Properties.ByteSize() + 4
}

// TinyRick is the game-specific property tree embedded in an Item whose
// unk_has_state flag is set.
type TinyRick struct {
	FormatVersion  uint32
	UnrealVersion  uint32
	Properties     *gvas.PropertyMap
	UnkCount       uint32
	PropertySections []PropertySection
}

// ReadTinyRick parses a TinyRick from a reader already bounded to its
// declared size (see ReadItem).
func ReadTinyRick(r *codecio.Reader) (TinyRick, error) {
	magic, err := r.ReadBytes(8)
	if err != nil {
		return TinyRick{}, gvas.IOErrorf(r.Offset(), err)
	}
	for i, b := range tinyrickMagic {
		if magic[i] != b {
			return TinyRick{}, gvas.BadMagic(r.Offset(), "expected tinyrick magic")
		}
	}

	formatVersion, err := r.ReadU32()
	if err != nil {
		return TinyRick{}, err
	}
	unrealVersion, err := r.ReadU32()
	if err != nil {
		return TinyRick{}, err
	}
	properties, err := gvas.ReadPropertyMap(r)
	if err != nil {
		return TinyRick{}, err
	}
	unkCount, err := r.ReadU32()
	if err != nil {
		return TinyRick{}, err
	}
	sectionCount, err := r.ReadU32()
	if err != nil {
		return TinyRick{}, err
	}

	var sections []PropertySection
	if sectionCount > 0 {
		sections = make([]PropertySection, sectionCount)
		for i := uint32(0); i < sectionCount; i++ {
			s, err := readPropertySection(r)
			if err != nil {
				return TinyRick{}, err
			}
			sections[i] = s
		}
	}

	return TinyRick{
		FormatVersion:    formatVersion,
		UnrealVersion:    unrealVersion,
		Properties:       properties,
		UnkCount:         unkCount,
		PropertySections: sections,
	}, nil
}

func (t TinyRick) WriteTo(w *codecio.Writer) error {
	if err := w.WriteBytes(tinyrickMagic[:]); err != nil {
		return err
	}
	if err := w.WriteU32(t.FormatVersion); err != nil {
		return err
	}
	if err := w.WriteU32(t.UnrealVersion); err != nil {
		return err
	}
	if err := t.Properties.WriteTo(w); err != nil {
		return err
	}
	if err := w.WriteU32(t.UnkCount); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(len(t.PropertySections))); err != nil {
		return err
	}
	for _, s := range t.PropertySections {
		if err := s.writeTo(w); err != nil {
			return err
		}
	}
	return nil
}

func (t TinyRick) ByteSize() int {
	size := 8 + 4 + 4 + t.Properties.ByteSize() + 4 + 4
	for _, s := range t.PropertySections {
		size += s.byteSize()
	}
	return size
}

// Item is a single placed object: identity, optional embedded game state,
// and final placement.
type Item struct {
	Name         gvas.FString
	Guid         gvas.GUID
	UnkHasState  uint32
	SteamItemID  uint64
	TinyRick     *TinyRick
	Rotation     gvas.Rotator
	Position     gvas.Vector
	Scale        gvas.Vector

	// ResidueWarning is set when the embedded TinyRick sub-buffer was not
	// consumed exactly; it is non-fatal and carried through for reporting.
	ResidueWarning error
}

// ReadItem reads one Item, including its optional TinyRick payload.
func ReadItem(r *codecio.Reader) (Item, error) {
	name, err := gvas.ReadFString(r)
	if err != nil {
		return Item{}, err
	}
	guid, err := gvas.ReadGUID(r)
	if err != nil {
		return Item{}, err
	}
	unkHasState, err := r.ReadU32()
	if err != nil {
		return Item{}, err
	}
	steamItemID, err := r.ReadU64()
	if err != nil {
		return Item{}, err
	}

	item := Item{Name: name, Guid: guid, UnkHasState: unkHasState, SteamItemID: steamItemID}

	if unkHasState != 0 {
		size, err := r.ReadU32()
		if err != nil {
			return Item{}, err
		}
		outerOffset := r.Offset()
		sub, err := r.Sub(int(size))
		if err != nil {
			return Item{}, err
		}
		rick, err := ReadTinyRick(sub)
		if err != nil {
			return Item{}, err
		}
		if sub.Remaining() != 0 {
			item.ResidueWarning = fmt.Errorf("tinyrick at offset %d: declared size %d but consumed %d bytes, %d left over", outerOffset, size, int(size)-sub.Remaining(), sub.Remaining())
		}
		item.TinyRick = &rick
	}

	rotation, err := gvas.ReadRotator(r)
	if err != nil {
		return Item{}, err
	}
	position, err := gvas.ReadVector(r)
	if err != nil {
		return Item{}, err
	}
	scale, err := gvas.ReadVector(r)
	if err != nil {
		return Item{}, err
	}
	item.Rotation = rotation
	item.Position = position
	item.Scale = scale

	return item, nil
}

func (it Item) WriteTo(w *codecio.Writer) error {
	if err := it.Name.WriteTo(w); err != nil {
		return err
	}
	if err := it.Guid.WriteTo(w); err != nil {
		return err
	}
	if err := w.WriteU32(it.UnkHasState); err != nil {
		return err
	}
	if err := w.WriteU64(it.SteamItemID); err != nil {
		return err
	}
	if it.TinyRick != nil {
		if err := w.WriteU32(uint32(it.TinyRick.ByteSize())); err != nil {
			return err
		}
		if err := it.TinyRick.WriteTo(w); err != nil {
			return err
		}
	}
	if err := it.Rotation.WriteTo(w); err != nil {
		return err
	}
	if err := it.Position.WriteTo(w); err != nil {
		return err
	}
	return it.Scale.WriteTo(w)
}

func (it Item) ByteSize() int {
	size := it.Name.ByteSize() + it.Guid.ByteSize() + 4 + 8
	if it.TinyRick != nil {
		size += 4 + it.TinyRick.ByteSize()
	}
	size += it.Rotation.ByteSize() + it.Position.ByteSize() + it.Scale.ByteSize()
	return size
}
