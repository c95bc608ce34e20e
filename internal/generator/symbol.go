// Package generator renders extracted modules into Markdown/MDX, TSX, or
// JSON documents.
package generator

import (
	"sort"
	"strings"

	"docsmith/internal/extractor"
)

// SourceLinker resolves a "view source" URL for a symbol. Implementations
// return "" when no link can be produced; the generators then omit the link.
type SourceLinker interface {
	LinkFor(moduleName, symbolName string, localLine int) string
}

// symbol lets the generators treat classes and functions uniformly.
type symbol interface {
	Name() string
	Kind() string
	Docstring() string
	Params() []extractor.Param
	ReturnType() string
	StartLine() int
	Source() string
}

type classSymbol struct{ cls *extractor.Class }

func (s classSymbol) Name() string              { return s.cls.Name }
func (s classSymbol) Kind() string              { return "class" }
func (s classSymbol) Docstring() string         { return s.cls.Docstring }
func (s classSymbol) Params() []extractor.Param { return s.cls.Params }
func (s classSymbol) ReturnType() string        { return "" }
func (s classSymbol) StartLine() int            { return s.cls.StartLine }
func (s classSymbol) Source() string            { return s.cls.Source }

type functionSymbol struct{ fn *extractor.Function }

func (s functionSymbol) Name() string              { return s.fn.Name }
func (s functionSymbol) Kind() string              { return "function" }
func (s functionSymbol) Docstring() string         { return s.fn.Docstring }
func (s functionSymbol) Params() []extractor.Param { return s.fn.Params }
func (s functionSymbol) ReturnType() string        { return s.fn.ReturnType }
func (s functionSymbol) StartLine() int            { return s.fn.StartLine }
func (s functionSymbol) Source() string            { return s.fn.Source }

// documentableClasses returns the module's public classes sorted by name.
func documentableClasses(mod *extractor.Module) []symbol {
	var out []symbol
	for _, cls := range mod.Classes {
		if strings.HasPrefix(cls.Name, "_") {
			continue
		}
		out = append(out, classSymbol{cls})
	}
	sortSymbols(out)
	return out
}

// documentableFunctions returns the module's public functions sorted by name.
func documentableFunctions(mod *extractor.Module) []symbol {
	var out []symbol
	for _, fn := range mod.Functions {
		if strings.HasPrefix(fn.Name, "_") {
			continue
		}
		out = append(out, functionSymbol{fn})
	}
	sortSymbols(out)
	return out
}

// documentableSymbols returns classes then functions, each group sorted.
func documentableSymbols(mod *extractor.Module) []symbol {
	return append(documentableClasses(mod), documentableFunctions(mod)...)
}

func sortSymbols(symbols []symbol) {
	sort.Slice(symbols, func(i, j int) bool { return symbols[i].Name() < symbols[j].Name() })
}
