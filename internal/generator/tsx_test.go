package generator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTSXGenerator_ModulePage(t *testing.T) {
	gen := NewTSXGenerator(nil)
	page, err := gen.ModulePage(fixtureModule())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(page, "import { ModuleDoc } from '@/components/DocComponents';\n"))
	assert.Contains(t, page, "const moduleData = {")
	assert.Contains(t, page, "export default function Page() {")
	assert.Contains(t, page, "return <ModuleDoc {...moduleData} />;")

	t.Run("inlined data is valid JSON", func(t *testing.T) {
		start := strings.Index(page, "const moduleData = ")
		require.GreaterOrEqual(t, start, 0)
		raw := page[start+len("const moduleData = "):]
		end := strings.Index(raw, ";\n")
		require.GreaterOrEqual(t, end, 0)

		var payload ModulePayload
		require.NoError(t, json.Unmarshal([]byte(raw[:end]), &payload))
		assert.Equal(t, "imglib.transforms.blur", payload.ModuleName)
		require.Len(t, payload.Members, 2)
		assert.Equal(t, "Blur", payload.Members[0].Name)
		assert.Equal(t, "class", payload.Members[0].Type)
		assert.Equal(t, "apply_blur", payload.Members[1].Name)
		assert.Equal(t, "function", payload.Members[1].Type)
	})
}
