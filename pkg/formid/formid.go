package formid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/presetcheck/pkg/errors"
)

const (
	// LightFlag marks a packed id that belongs to a light plugin.
	LightFlag uint32 = 0xFE000000
	// LightMask selects the significant bits of a light plugin id.
	LightMask uint32 = 0x00000FFF
	// StandardMask selects the significant bits of a standard plugin id.
	StandardMask uint32 = 0x00FFFFFF

	// Separator joins plugin name and local id in the textual form.
	Separator = "|"
)

// Key identifies a record by plugin file name and local id.
type Key struct {
	Plugin string
	ID     uint32
}

// String renders the textual form with a 6 digit id.
func (k Key) String() string {
	return k.Plugin + Separator + FormatLocalID(k.ID)
}

// Normalized returns a copy usable as a case-insensitive map key.
func (k Key) Normalized() Key {
	return Key{Plugin: strings.ToLower(k.Plugin), ID: k.ID}
}

// Reference is the canonical triple produced by Validate.
type Reference struct {
	Key
	Light bool
}

// DecodePacked splits a packed id into its light flag and significant bits.
func DecodePacked(raw uint32) (isLight bool, localID uint32) {
	isLight = raw&LightFlag == LightFlag
	return isLight, raw & maskFor(isLight)
}

// Encode packs a local id under the standard convention. The light flag is
// never applied.
func Encode(localID uint32) uint32 {
	return localID & StandardMask
}

// FormatLocalID renders a local id as uppercase hex zero padded to 6 digits.
func FormatLocalID(id uint32) string {
	return fmt.Sprintf("%06X", id)
}

// ParseLocalID parses a hex local id.
func ParseLocalID(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 16, 32)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrMalformedReference, "invalid hex local id %q", s)
	}
	return uint32(v), nil
}

// SplitTextual separates "<plugin>|<hex>" into its two parts. The hex part
// must parse; it is returned as written.
func SplitTextual(text string) (pluginName, localIDHex string, err error) {
	parts := strings.Split(text, Separator)
	if len(parts) != 2 {
		return "", "", errors.Newf(errors.ErrMalformedReference,
			"reference %q must have exactly one %q", text, Separator).
			WithDetail("reference", text)
	}
	pluginName, localIDHex = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if pluginName == "" {
		return "", "", errors.Newf(errors.ErrMalformedReference,
			"reference %q has no plugin name", text).
			WithDetail("reference", text)
	}
	if _, err := ParseLocalID(localIDHex); err != nil {
		return "", "", err
	}
	return pluginName, localIDHex, nil
}

// ParseKey parses the textual form into a Key holding the standard-masked id.
func ParseKey(text string) (Key, error) {
	plugin, hex, err := SplitTextual(text)
	if err != nil {
		return Key{}, err
	}
	id, err := ParseLocalID(hex)
	if err != nil {
		return Key{}, err
	}
	return Key{Plugin: plugin, ID: id & StandardMask}, nil
}

// Validate decodes both forms with the packed form's mask and requires them
// to agree. A structural failure of the text is ErrMalformedReference; a
// disagreement is ErrFormIDMismatch.
func Validate(raw uint32, text string) (Reference, error) {
	plugin, hex, err := SplitTextual(text)
	if err != nil {
		return Reference{}, err
	}
	textID, err := ParseLocalID(hex)
	if err != nil {
		return Reference{}, err
	}

	isLight, packedID := DecodePacked(raw)
	if textID&maskFor(isLight) != packedID {
		return Reference{}, errors.Newf(errors.ErrFormIDMismatch,
			"packed id 0x%08X does not match %q", raw, text).
			WithDetail("formId", raw).
			WithDetail("formIdentifier", text).
			WithDetail("light", isLight)
	}

	return Reference{
		Key:   Key{Plugin: plugin, ID: packedID},
		Light: isLight,
	}, nil
}

func maskFor(isLight bool) uint32 {
	if isLight {
		return LightMask
	}
	return StandardMask
}
