package preset

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func loadSample(t *testing.T) *Document {
	t.Helper()
	data, err := os.ReadFile("testdata/sample.jslot")
	require.NoError(t, err)
	doc, err := Parse(data)
	require.NoError(t, err)
	return doc
}

func TestParse_Sample(t *testing.T) {
	doc := loadSample(t)

	require.Len(t, doc.HeadParts, 3)
	assert.True(t, doc.HeadParts[0].Complete())
	assert.Equal(t, uint32(0xFE000801), *doc.HeadParts[0].FormID)
	assert.Equal(t, "KSHairdos.esl|000801", *doc.HeadParts[0].FormIdentifier)
	assert.Equal(t, uint32(0x012345), *doc.HeadParts[1].FormID)
	assert.Nil(t, doc.HeadParts[2].FormID)
	assert.False(t, doc.HeadParts[2].Complete())
	assert.Equal(t, 2, doc.HeadParts[2].Index)

	assert.Equal(t, []string{"Skyrim.esm", "KSHairdos.esl", "Foo.esp"}, doc.ModNames)
	assert.Equal(t, Mod{Index: 42, Name: "Foo.esp"}, doc.Mods[2])

	assert.Equal(t, []string{
		`actors\character\female\femalehead.dds`,
		`actors\character\female\femalehead_msn.dds`,
	}, doc.FaceTextures)
	assert.Equal(t, []string{`actors\x\foo.dds`, "not a texture"}, doc.OverrideData)
	assert.Equal(t, []string{`Actors\Character\Character Assets\TintMasks\SkinTone.dds`}, doc.TintTextures)
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{`{`, `[]`, `"text"`, ``} {
		_, err := Parse([]byte(input))
		assert.True(t, errors.IsErrorCode(err, errors.ErrDocumentInvalid), "input %q", input)
	}
}

func TestDocument_Has(t *testing.T) {
	doc, err := Parse([]byte(`{"headParts": [], "modNames": ["A.esp"]}`))
	require.NoError(t, err)

	assert.True(t, doc.Has(KeyHeadParts))
	assert.True(t, doc.Has(KeyModNames))
	assert.False(t, doc.Has(KeyMods))
	assert.False(t, doc.Has(KeyTintInfo))
	assert.Empty(t, doc.HeadParts)
}

func TestDocument_SetHeadPartPreservesUnknownFields(t *testing.T) {
	doc := loadSample(t)
	before := decode(t, doc.Raw())

	require.NoError(t, doc.SetHeadPart(1, 0x0006789A, "Bar.esp|06789A"))

	after := decode(t, doc.Raw())
	diff := cmp.Diff(before, after)
	assert.Contains(t, diff, "Bar.esp|06789A")

	// Only the two head part fields changed.
	hp := after["headParts"].([]interface{})[1].(map[string]interface{})
	assert.Equal(t, float64(0x0006789A), hp["formId"])
	assert.Equal(t, "Bar.esp|06789A", hp["formIdentifier"])
	assert.Equal(t, float64(1), hp["type"])

	hp["formId"] = float64(74565)
	hp["formIdentifier"] = "Foo.esp|012345"
	assert.Empty(t, cmp.Diff(before, after))

	assert.Equal(t, "Bar.esp|06789A", *doc.HeadParts[1].FormIdentifier)
	assert.Error(t, doc.SetHeadPart(7, 1, "x|1"))
}

func TestDocument_SetModNamesAndMods(t *testing.T) {
	doc := loadSample(t)

	require.NoError(t, doc.SetModNames([]string{"Skyrim.esm", "Bar.esp"}))
	require.NoError(t, doc.SetMods([]Mod{{Index: 0, Name: "Skyrim.esm"}, {Index: 7, Name: "Bar.esp"}}))

	assert.Equal(t, `["Skyrim.esm","Bar.esp"]`, gjson.GetBytes(doc.Raw(), "modNames").Raw)
	assert.Equal(t, int64(7), gjson.GetBytes(doc.Raw(), "mods.1.index").Int())
	assert.Equal(t, "Bar.esp", gjson.GetBytes(doc.Raw(), "mods.1.name").String())
	assert.Equal(t, "NordRace", gjson.GetBytes(doc.Raw(), "actor.race").String())

	require.NoError(t, doc.SetModNames(nil))
	assert.Equal(t, `[]`, gjson.GetBytes(doc.Raw(), "modNames").Raw)
}

func TestDocument_PrettyKeepsKeyOrder(t *testing.T) {
	doc, err := Parse([]byte(`{"zeta":1,"alpha":{"b":2,"a":1}}`))
	require.NoError(t, err)

	pretty := string(doc.Pretty())
	assert.Less(t, strings.Index(pretty, "zeta"), strings.Index(pretty, "alpha"))
	assert.Less(t, strings.Index(pretty, `"b"`), strings.Index(pretty, `"a"`))
	assert.Contains(t, pretty, "\n")
	assert.True(t, json.Valid(doc.Pretty()))
}

func decode(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}
