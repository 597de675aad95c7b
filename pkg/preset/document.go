// Package preset is the typed model of a RaceMenu .jslot preset.
//
// A Document is a typed view over the raw JSON it was parsed from. Only the
// fields the checker consumes are decoded; every mutation rewrites the one
// JSON path it touches, so unknown fields and key order survive a rewrite.
package preset

import (
	"fmt"

	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Top level keys consumed by the checker.
const (
	KeyHeadParts    = "headParts"
	KeyModNames     = "modNames"
	KeyMods         = "mods"
	KeyFaceTextures = "faceTextures"
	KeyOverrides    = "overrides"
	KeyTintInfo     = "tintInfo"
)

// Extension is the preset file suffix.
const Extension = ".jslot"

// HeadPart is one entry of headParts. A nil field was absent or not of the
// expected JSON type.
type HeadPart struct {
	Index          int
	FormID         *uint32
	FormIdentifier *string
}

// Complete reports whether both encodings of the reference are present.
func (h HeadPart) Complete() bool {
	return h.FormID != nil && h.FormIdentifier != nil
}

// Mod is one entry of mods.
type Mod struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Document is one parsed preset. It is owned by a single processing step and
// must not be shared.
type Document struct {
	raw []byte

	HeadParts    []HeadPart
	ModNames     []string
	Mods         []Mod
	FaceTextures []string
	OverrideData []string
	TintTextures []string
}

// Parse decodes a preset. The root must be a JSON object; missing sections
// are not an error, see Has.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrDocumentInvalid, "preset is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New(errors.ErrDocumentInvalid, "preset root is not an object")
	}

	raw := make([]byte, len(data))
	copy(raw, data)
	doc := &Document{raw: raw}

	if headParts := root.Get(KeyHeadParts); headParts.IsArray() {
		headParts.ForEach(func(_, entry gjson.Result) bool {
			doc.HeadParts = append(doc.HeadParts, decodeHeadPart(len(doc.HeadParts), entry))
			return true
		})
	}
	root.Get(KeyModNames).ForEach(func(_, name gjson.Result) bool {
		if name.Type == gjson.String {
			doc.ModNames = append(doc.ModNames, name.String())
		}
		return true
	})
	root.Get(KeyMods).ForEach(func(_, mod gjson.Result) bool {
		doc.Mods = append(doc.Mods, Mod{
			Index: int(mod.Get("index").Int()),
			Name:  mod.Get("name").String(),
		})
		return true
	})
	doc.FaceTextures = stringsAt(root, KeyFaceTextures+".#.texture")
	root.Get(KeyOverrides).ForEach(func(_, override gjson.Result) bool {
		doc.OverrideData = append(doc.OverrideData, stringsAt(override, "values.#.data")...)
		return true
	})
	doc.TintTextures = stringsAt(root, KeyTintInfo+".#.texture")

	return doc, nil
}

// Has reports whether a top level key is present.
func (d *Document) Has(key string) bool {
	return gjson.GetBytes(d.raw, key).Exists()
}

// SetHeadPart rewrites both encodings of headParts[i].
func (d *Document) SetHeadPart(i int, formID uint32, identifier string) error {
	if i < 0 || i >= len(d.HeadParts) {
		return errors.Newf(errors.ErrInvalidInput, "head part %d out of range", i)
	}
	raw, err := sjson.SetBytes(d.raw, fmt.Sprintf("%s.%d.formId", KeyHeadParts, i), formID)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDocumentInvalid, "cannot set formId of head part %d", i)
	}
	raw, err = sjson.SetBytes(raw, fmt.Sprintf("%s.%d.formIdentifier", KeyHeadParts, i), identifier)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDocumentInvalid, "cannot set formIdentifier of head part %d", i)
	}
	d.raw = raw
	d.HeadParts[i].FormID = &formID
	d.HeadParts[i].FormIdentifier = &identifier
	return nil
}

// SetModNames replaces modNames.
func (d *Document) SetModNames(names []string) error {
	if names == nil {
		names = []string{}
	}
	raw, err := sjson.SetBytes(d.raw, KeyModNames, names)
	if err != nil {
		return errors.Wrap(err, errors.ErrDocumentInvalid, "cannot set modNames")
	}
	d.raw = raw
	d.ModNames = append([]string(nil), names...)
	return nil
}

// SetMods replaces mods.
func (d *Document) SetMods(mods []Mod) error {
	if mods == nil {
		mods = []Mod{}
	}
	raw, err := sjson.SetBytes(d.raw, KeyMods, mods)
	if err != nil {
		return errors.Wrap(err, errors.ErrDocumentInvalid, "cannot set mods")
	}
	d.raw = raw
	d.Mods = append([]Mod(nil), mods...)
	return nil
}

// Raw returns the current JSON exactly as held.
func (d *Document) Raw() []byte {
	return d.raw
}

// Pretty returns the current JSON indented, key order preserved.
func (d *Document) Pretty() []byte {
	return []byte(gjson.GetBytes(d.raw, "@pretty").Raw)
}

func decodeHeadPart(i int, entry gjson.Result) HeadPart {
	hp := HeadPart{Index: i}
	if id := entry.Get("formId"); id.Type == gjson.Number {
		var v uint32
		if n := id.Int(); n < 0 {
			v = uint32(int32(n))
		} else {
			v = uint32(id.Uint())
		}
		hp.FormID = &v
	}
	if ident := entry.Get("formIdentifier"); ident.Type == gjson.String {
		s := ident.String()
		hp.FormIdentifier = &s
	}
	return hp
}

func stringsAt(r gjson.Result, path string) []string {
	var out []string
	r.Get(path).ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			out = append(out, v.String())
		}
		return true
	})
	return out
}
