package generator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONGenerator_ModulePage(t *testing.T) {
	gen := NewJSONGenerator(stubLinker{url: "https://github.com/org/imglib/blob/main/imglib/transforms/blur.py#L12"})
	page, err := gen.ModulePage(fixtureModule())
	require.NoError(t, err)

	var payload ModulePayload
	require.NoError(t, json.Unmarshal([]byte(page), &payload))

	assert.Equal(t, "imglib.transforms.blur", payload.ModuleName)
	assert.Equal(t, "Blur transforms for images.", payload.Docstring.Description)
	require.Len(t, payload.Members, 2)

	t.Run("class member", func(t *testing.T) {
		member := payload.Members[0]
		assert.Equal(t, "Blur", member.Name)
		assert.Equal(t, "class", member.Type)
		assert.Equal(t, 12, member.SourceLine)
		assert.Equal(t, "https://github.com/org/imglib/blob/main/imglib/transforms/blur.py#L12", member.SourceURL)
		assert.Equal(t, "class Blur:\n    pass", member.SourceCode)

		require.Len(t, member.Signature.Params, 2)
		assert.Equal(t, "blur_limit", member.Signature.Params[0].Name)
		// Docstring annotation wins over the source annotation.
		assert.Equal(t, "int | tuple[int, int]", member.Signature.Params[0].Type)
		assert.Equal(t, "7", member.Signature.Params[0].Default)

		sections := make(map[string]SectionPayload)
		for _, sec := range member.Docstring.Sections {
			sections[sec.Name] = sec
		}
		require.Contains(t, sections, "Args")
		assert.Len(t, sections["Args"].Args, 2)
		require.Contains(t, sections, "References")
		require.Len(t, sections["References"].References, 1)
		assert.Equal(t, "Kernel smoothing", sections["References"].References[0].Description)
		assert.Equal(t, "https://en.wikipedia.org/wiki/Kernel_smoother", sections["References"].References[0].Source)
	})

	t.Run("function member", func(t *testing.T) {
		member := payload.Members[1]
		assert.Equal(t, "apply_blur", member.Name)
		assert.Equal(t, "function", member.Type)
		assert.Equal(t, "np.ndarray", member.Signature.ReturnType)
	})
}

func TestValidatePayload(t *testing.T) {
	t.Run("accepts generated payloads", func(t *testing.T) {
		data, err := json.Marshal(BuildModulePayload(fixtureModule(), nil))
		require.NoError(t, err)
		assert.NoError(t, ValidatePayload(data))
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		assert.Error(t, ValidatePayload([]byte(`{"docstring": {"description": "", "sections": []}, "members": []}`)))
	})

	t.Run("rejects unknown member types", func(t *testing.T) {
		data := `{
			"moduleName": "pkg.mod",
			"docstring": {"description": "", "sections": []},
			"members": [{
				"name": "X",
				"type": "variable",
				"signature": {"name": "X", "params": []},
				"source_line": 1,
				"docstring": {"description": "", "sections": []}
			}]
		}`
		assert.Error(t, ValidatePayload([]byte(data)))
	})

	t.Run("rejects unexpected properties", func(t *testing.T) {
		assert.Error(t, ValidatePayload([]byte(`{"moduleName": "m", "docstring": {"description": "", "sections": []}, "members": [], "extra": true}`)))
	})
}
