package suitebro

import (
	"encoding/json"

	"github.com/brecert/towersave/internal/gvas"
)

// The MarshalJSON/UnmarshalJSON pairs below control field presence and
// naming independently of Go's zero values, per the documented JSON
// projection rules (omitted zero GUIDs, omitted tinyrick on absence,
// omitted version fields with restorable defaults).

func (f *File) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, len(f.Items))
	for i, it := range f.Items {
		raw, err := json.MarshalIndent(it, "", "  ")
		if err != nil {
			return nil, err
		}
		items[i] = raw
	}
	return json.Marshal(struct {
		Header Header            `json:"header"`
		Items  []json.RawMessage `json:"items"`
	}{Header: f.Header, Items: items})
}

func (f *File) UnmarshalJSON(data []byte) error {
	var v struct {
		Header Header            `json:"header"`
		Items  []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	items := make([]Item, len(v.Items))
	for i, raw := range v.Items {
		if err := json.Unmarshal(raw, &items[i]); err != nil {
			return err
		}
	}
	f.Header = v.Header
	f.Items = items
	return nil
}

func (it Item) MarshalJSON() ([]byte, error) {
	v := struct {
		Name        string     `json:"name"`
		Guid        *gvas.GUID `json:"guid,omitempty"`
		UnkHasState uint32     `json:"unk_has_state"`
		SteamItemID uint64     `json:"steam_item_id"`
		TinyRick    *TinyRick  `json:"tinyrick,omitempty"`
		Rotation    gvas.Rotator `json:"rotation"`
		Position    gvas.Vector  `json:"position"`
		Scale       gvas.Vector  `json:"scale"`
	}{
		Name:        it.Name.Value,
		UnkHasState: it.UnkHasState,
		SteamItemID: it.SteamItemID,
		TinyRick:    it.TinyRick,
		Rotation:    it.Rotation,
		Position:    it.Position,
		Scale:       it.Scale,
	}
	if !it.Guid.IsZero() {
		g := it.Guid
		v.Guid = &g
	}
	return json.Marshal(v)
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var v struct {
		Name        string     `json:"name"`
		Guid        *gvas.GUID `json:"guid"`
		UnkHasState *uint32    `json:"unk_has_state"`
		SteamItemID uint64     `json:"steam_item_id"`
		TinyRick    *TinyRick  `json:"tinyrick"`
		Rotation    gvas.Rotator `json:"rotation"`
		Position    gvas.Vector  `json:"position"`
		Scale       gvas.Vector  `json:"scale"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	it.Name = gvas.NewFString(v.Name)
	if v.Guid != nil {
		it.Guid = *v.Guid
	}
	switch {
	case v.UnkHasState != nil:
		it.UnkHasState = *v.UnkHasState
	case v.TinyRick != nil:
		it.UnkHasState = 1
	default:
		it.UnkHasState = 0
	}
	it.SteamItemID = v.SteamItemID
	it.TinyRick = v.TinyRick
	it.Rotation = v.Rotation
	it.Position = v.Position
	it.Scale = v.Scale
	return nil
}

func (t TinyRick) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Properties       *gvas.PropertyMap `json:"properties"`
		UnkCount         uint32            `json:"unk_count"`
		PropertySections []PropertySection `json:"property_sections,omitempty"`
	}{
		Properties:       t.Properties,
		UnkCount:         t.UnkCount,
		PropertySections: t.PropertySections,
	})
}

func (t *TinyRick) UnmarshalJSON(data []byte) error {
	var v struct {
		Properties       *gvas.PropertyMap `json:"properties"`
		UnkCount         uint32            `json:"unk_count"`
		PropertySections []PropertySection `json:"property_sections"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	t.FormatVersion = defaultFormatVersion
	t.UnrealVersion = defaultUnrealVersion
	t.Properties = v.Properties
	t.UnkCount = v.UnkCount
	t.PropertySections = v.PropertySections
	return nil
}

func (s PropertySection) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name       string            `json:"name"`
		Properties *gvas.PropertyMap `json:"properties"`
		Unk        uint32            `json:"unk"`
	}{Name: s.Name.Value, Properties: s.Properties, Unk: s.Unk})
}

func (s *PropertySection) UnmarshalJSON(data []byte) error {
	var v struct {
		Name       string            `json:"name"`
		Properties *gvas.PropertyMap `json:"properties"`
		Unk        uint32            `json:"unk"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	s.Name = gvas.NewFString(v.Name)
	s.Properties = v.Properties
	s.Unk = v.Unk
	return nil
}
