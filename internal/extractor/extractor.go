// Package extractor parses Python source files with tree-sitter and extracts
// the classes and functions a documentation page is built from.
package extractor

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Extractor parses Python files into Modules.
type Extractor struct {
	parser *sitter.Parser
}

// NewExtractor creates an extractor backed by the tree-sitter Python grammar.
func NewExtractor() *Extractor {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Extractor{parser: parser}
}

// ExtractFile parses a single source file. moduleName is the dotted module
// name the caller derived from the file's location in the package tree.
func (e *Extractor) ExtractFile(path string, moduleName string) (*Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return e.Extract(source, path, moduleName)
}

// Extract parses source bytes into a Module.
func (e *Extractor) Extract(source []byte, path string, moduleName string) (*Module, error) {
	tree, err := e.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	mod := &Module{
		Name:      moduleName,
		Filepath:  path,
		Docstring: moduleDocstring(root, source),
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		decorators, def := unwrapDecorated(child, source)
		switch def.Type() {
		case nodeClassDefinition:
			if cls := extractClass(def, source, decorators); cls != nil {
				mod.Classes = append(mod.Classes, cls)
			}
		case nodeFunctionDefinition:
			if fn := extractFunction(def, source, decorators); fn != nil {
				mod.Functions = append(mod.Functions, fn)
			}
		}
	}

	return mod, nil
}
