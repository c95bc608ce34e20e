package generator

import (
	"fmt"
	"regexp"
	"strings"

	"docsmith/internal/docstring"
	"docsmith/internal/extractor"
	"docsmith/internal/signature"
)

// MarkdownGenerator renders module documentation pages as MDX-safe markdown.
type MarkdownGenerator struct {
	linker SourceLinker
}

// NewMarkdownGenerator creates a markdown generator. linker may be nil, in
// which case no "view source" links are emitted.
func NewMarkdownGenerator(linker SourceLinker) *MarkdownGenerator {
	return &MarkdownGenerator{linker: linker}
}

var (
	anchorStripPattern = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	backslashRuns      = regexp.MustCompile(`\\{2,}`)
)

// NormalizeAnchorID normalizes text for use as an anchor ID: special
// characters removed, lowercased, spaces replaced with hyphens.
func NormalizeAnchorID(text string) string {
	cleaned := anchorStripPattern.ReplaceAllString(text, "")
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cleaned)), " ", "-")
}

// EscapeMDX escapes characters that break MDX/JSX parsing: angle brackets,
// equals signs and curly braces. Runs of two or more backslashes (LaTeX-like
// content) are wrapped in inline code.
func EscapeMDX(text string) string {
	if text == "" {
		return text
	}
	escaped := strings.NewReplacer("<", `\<`, ">", `\>`, "=", `\=`).Replace(text)
	escaped = backslashRuns.ReplaceAllStringFunc(escaped, func(m string) string {
		return "`" + m + "`"
	})
	return strings.NewReplacer("{", `\{`, "}", `\}`).Replace(escaped)
}

// ModulePage renders the full markdown page for a module: heading, table of
// contents, then every public class and function.
func (g *MarkdownGenerator) ModulePage(mod *extractor.Module) string {
	classes := documentableClasses(mod)
	functions := documentableFunctions(mod)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", mod.Name)

	if desc := docstring.Parse(mod.Docstring).Description; desc != "" {
		sb.WriteString(EscapeMDX(desc) + "\n\n")
	}

	sb.WriteString(g.tableOfContents(mod, classes, functions))
	fmt.Fprintf(&sb, "<a id=%q></a>\n\n", strings.ReplaceAll(mod.Name, ".", "-"))

	sb.WriteString(g.symbolGroup(mod, classes, "Classes"))
	sb.WriteString(g.symbolGroup(mod, functions, "Functions"))

	return sb.String()
}

func (g *MarkdownGenerator) tableOfContents(mod *extractor.Module, groups ...[]symbol) string {
	var sb strings.Builder
	sb.WriteString("# Table of Contents\n\n")
	for _, group := range groups {
		for _, sym := range group {
			anchor := symbolAnchor(mod.Name, sym.Name())
			fmt.Fprintf(&sb, "* [%s](#%s)\n", sym.Name(), anchor)
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

func (g *MarkdownGenerator) symbolGroup(mod *extractor.Module, symbols []symbol, title string) string {
	if len(symbols) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**\n\n", title)
	for _, sym := range symbols {
		fmt.Fprintf(&sb, "<a id=%q></a>\n\n", symbolAnchor(mod.Name, sym.Name()))
		// Symbol pages start at h1; inside a module page they sit one level
		// down.
		page := g.SymbolPage(mod, sym)
		if strings.HasPrefix(page, "# ") {
			page = "#" + page
		}
		sb.WriteString(page + "\n\n")
	}
	return sb.String()
}

// SymbolPage renders the documentation block for one class or function.
func (g *MarkdownGenerator) SymbolPage(mod *extractor.Module, sym symbol) string {
	parsed := docstring.Parse(sym.Docstring())
	params := signature.MergeParams(sym.Params(), parsed.Args())

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", sym.Name())
	fmt.Fprintf(&sb, "```python\n%s\n```\n\n", signature.Format(sym.Name(), params, sym.ReturnType()))

	if g.linker != nil {
		if url := g.linker.LinkFor(mod.Name, sym.Name(), sym.StartLine()); url != "" {
			fmt.Fprintf(&sb, "[View source on GitHub](%s)\n\n", url)
		}
	}

	if parsed.Description != "" {
		sb.WriteString(EscapeMDX(parsed.Description) + "\n\n")
	}

	sb.WriteString(paramsTable(params))

	for _, sec := range parsed.Sections {
		if sec.Name == "Args" || sec.Name == "Arguments" {
			continue // already rendered as the parameter table
		}
		content := formatSectionContent(sec)
		if content == "" {
			continue
		}
		fmt.Fprintf(&sb, "**%s**\n\n%s\n\n", sec.Name, content)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// paramsTable renders the merged parameters as a markdown table. Empty when
// there is nothing to document.
func paramsTable(params []signature.Parameter) string {
	if len(params) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("**Parameters**\n\n")
	sb.WriteString("| Name | Type | Description |\n")
	sb.WriteString("|------|------|-------------|\n")
	for _, p := range params {
		desc := EscapeMDX(p.Description)
		if strings.Contains(p.Description, "\n") {
			// Multi-line cells need explicit breaks to survive a table row.
			desc = "<pre>" + strings.ReplaceAll(desc, "\n", "<br/>") + "</pre>"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", EscapeMDX(p.Name), EscapeMDX(p.Type), desc)
	}
	sb.WriteString("\n")
	return sb.String()
}

// formatSectionContent dispatches on the section name: examples become
// fenced python blocks, references a formatted list, Returns/Raises
// structured key/value lines, everything else a plain fenced block.
func formatSectionContent(sec docstring.Section) string {
	switch {
	case isExampleSection(sec):
		return formatExamples(sec.Content)
	case sec.Name == "References" || sec.Name == "Reference":
		refs := docstring.ParseReferences(sec.Content)
		return docstring.FormatReferences(refs, EscapeMDX)
	case sec.Name == "Raises":
		return formatRecords(sec.Raises)
	case sec.Name == "Returns" || sec.Name == "Yields":
		return formatReturns(sec.Content)
	case sec.Name == "Attributes":
		return formatRecords(sec.Args)
	default:
		if strings.TrimSpace(sec.Content) == "" {
			return ""
		}
		return "```\n" + sec.Content + "\n```"
	}
}

func isExampleSection(sec docstring.Section) bool {
	if sec.Name != "Example" && sec.Name != "Examples" {
		return false
	}
	return strings.Contains(sec.Content, ">>>") || strings.Contains(sec.Content, "...")
}

// formatExamples strips REPL prompts (exactly the 4-character ">>> " and
// "... " prefixes), drops blank lines and wraps the rest in a fenced python
// block.
func formatExamples(content string) string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, ">>> "), strings.HasPrefix(trimmed, "... "):
			lines = append(lines, trimmed[4:])
		case trimmed != "":
			lines = append(lines, trimmed)
		}
	}
	return "```python\n" + strings.Join(lines, "\n") + "\n```"
}

func formatRecords(records []docstring.ArgDoc) string {
	var sb strings.Builder
	for i, rec := range records {
		if i > 0 {
			sb.WriteByte('\n')
		}
		label := rec.Name
		if rec.Type != "" {
			label += " (" + rec.Type + ")"
		}
		fmt.Fprintf(&sb, "- **%s**: %s", EscapeMDX(label), EscapeMDX(rec.Description))
	}
	return sb.String()
}

// formatReturns splits "type: description" on the first colon.
func formatReturns(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	if idx := strings.Index(content, ":"); idx > 0 {
		typ := strings.TrimSpace(content[:idx])
		desc := strings.TrimSpace(content[idx+1:])
		return fmt.Sprintf("- **%s**: %s", EscapeMDX(typ), EscapeMDX(desc))
	}
	return "```\n" + content + "\n```"
}

func symbolAnchor(moduleName, symbolName string) string {
	return NormalizeAnchorID(moduleName + "-" + symbolName)
}
