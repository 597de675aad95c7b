package formid

import (
	"testing"

	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePacked(t *testing.T) {
	tests := []struct {
		name      string
		raw       uint32
		wantLight bool
		wantID    uint32
	}{
		{"standard", 0x00012345, false, 0x012345},
		{"standard with load order byte", 0x2A012345, false, 0x012345},
		{"light", 0xFE000801, true, 0x801},
		{"light with slot bits", 0xFE123ABC, true, 0xABC},
		{"light max", 0xFE000FFF, true, 0xFFF},
		{"0xFF carries the light bits", 0xFF000801, true, 0x801},
		{"0xFD is not light", 0xFD000801, false, 0x000801},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light, id := DecodePacked(tt.raw)
			assert.Equal(t, tt.wantLight, light)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestDecodePackedLightRange(t *testing.T) {
	for x := uint32(0); x < 0x1000; x += 0x7F {
		light, id := DecodePacked(LightFlag | x)
		assert.True(t, light)
		assert.Equal(t, x, id)
	}
}

func TestSplitTextual(t *testing.T) {
	plugin, hex, err := SplitTextual("Foo.esp|012345")
	require.NoError(t, err)
	assert.Equal(t, "Foo.esp", plugin)
	assert.Equal(t, "012345", hex)

	for _, bad := range []string{"", "Foo.esp", "Foo.esp|", "|012345", "Foo.esp|01|02", "Foo.esp|XYZ", "Foo.esp|123456789"} {
		_, _, err := SplitTextual(bad)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedReference), "input %q", bad)
	}
}

func TestValidate(t *testing.T) {
	t.Run("standard pair", func(t *testing.T) {
		ref, err := Validate(0x00012345, "Foo.esp|012345")
		require.NoError(t, err)
		assert.Equal(t, Reference{Key: Key{Plugin: "Foo.esp", ID: 0x012345}}, ref)
	})

	t.Run("light pair ignores high bits of text", func(t *testing.T) {
		ref, err := Validate(0xFE001801, "Bar.esl|000801")
		require.NoError(t, err)
		assert.True(t, ref.Light)
		assert.Equal(t, uint32(0x801), ref.ID)
	})

	t.Run("lowercase hex", func(t *testing.T) {
		ref, err := Validate(0x0006789A, "Foo.esp|06789a")
		require.NoError(t, err)
		assert.Equal(t, uint32(0x06789A), ref.ID)
	})

	t.Run("local id differs", func(t *testing.T) {
		_, err := Validate(0x00012345, "Foo.esp|012346")
		assert.True(t, errors.IsErrorCode(err, errors.ErrFormIDMismatch))
	})

	t.Run("light local id differs", func(t *testing.T) {
		_, err := Validate(0xFE000801, "Bar.esl|000802")
		assert.True(t, errors.IsErrorCode(err, errors.ErrFormIDMismatch))
	})

	t.Run("malformed text is not a mismatch", func(t *testing.T) {
		_, err := Validate(0x00012345, "Foo.esp:012345")
		assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedReference))
		assert.False(t, errors.IsErrorCode(err, errors.ErrFormIDMismatch))
	})
}

func TestKey(t *testing.T) {
	k := Key{Plugin: "Foo.ESP", ID: 0x6789A}
	assert.Equal(t, "Foo.ESP|06789A", k.String())
	assert.Equal(t, Key{Plugin: "foo.esp", ID: 0x6789A}, k.Normalized())

	parsed, err := ParseKey("Skyrim.esm|01A2B3")
	require.NoError(t, err)
	assert.Equal(t, Key{Plugin: "Skyrim.esm", ID: 0x01A2B3}, parsed)

	parsed, err = ParseKey("Skyrim.esm|FF01A2B3")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01A2B3), parsed.ID)
}

func TestEncode(t *testing.T) {
	assert.Equal(t, uint32(0x0006789A), Encode(0x6789A))
	assert.Equal(t, uint32(0x00000801), Encode(0x801))
	assert.Equal(t, "000801", FormatLocalID(0x801))
}
