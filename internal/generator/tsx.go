package generator

import (
	"encoding/json"
	"fmt"

	"docsmith/internal/extractor"
)

// componentsImportPath is where the generated pages import their React
// components from.
const componentsImportPath = "@/components/DocComponents"

// TSXGenerator renders a module as a page.tsx file: the documentation payload
// inlined as a JSON const, handed to a ModuleDoc component.
type TSXGenerator struct {
	linker SourceLinker
}

// NewTSXGenerator creates a TSX generator. linker may be nil.
func NewTSXGenerator(linker SourceLinker) *TSXGenerator {
	return &TSXGenerator{linker: linker}
}

// ModulePage renders the page.tsx content for a module.
func (g *TSXGenerator) ModulePage(mod *extractor.Module) (string, error) {
	payload := BuildModulePayload(mod, g.linker)
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize module %s: %w", mod.Name, err)
	}

	return fmt.Sprintf(
		"import { ModuleDoc } from '%s';\n\n"+
			"// Data structure extracted from Python docstrings\n"+
			"const moduleData = %s;\n\n"+
			"export default function Page() {\n"+
			"  return <ModuleDoc {...moduleData} />;\n"+
			"}\n",
		componentsImportPath, string(data)), nil
}
