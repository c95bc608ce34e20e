// Package signature renders callable signatures for documentation pages.
package signature

import (
	"strings"

	"docsmith/internal/docstring"
	"docsmith/internal/extractor"
)

// maxSignatureLineLength is the column threshold above which a signature is
// wrapped with one parameter per line.
const maxSignatureLineLength = 100

// Parameter is a display-ready parameter: the extracted signature merged with
// whatever the docstring declares for it.
type Parameter struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// MergeParams overlays docstring Args onto the extracted parameter list by
// name. Signature order is preserved; the docstring supplies descriptions and
// wins on type when it declares one.
func MergeParams(params []extractor.Param, args []docstring.ArgDoc) []Parameter {
	byName := make(map[string]docstring.ArgDoc, len(args))
	for _, arg := range args {
		byName[arg.Name] = arg
	}

	merged := make([]Parameter, 0, len(params))
	for _, p := range params {
		out := Parameter{Name: p.Name, Type: p.Type, Default: p.Default}
		// Docstrings usually drop the stars on *args/**kwargs.
		if doc, ok := byName[p.Name]; ok {
			applyDoc(&out, doc)
		} else if doc, ok := byName[strings.TrimLeft(p.Name, "*")]; ok {
			applyDoc(&out, doc)
		}
		merged = append(merged, out)
	}
	return merged
}

func applyDoc(p *Parameter, doc docstring.ArgDoc) {
	p.Description = doc.Description
	if doc.Type != "" {
		p.Type = doc.Type
	}
}

// Format renders "name(p1, p2=v2) -> ret". A line longer than the threshold
// is rewrapped with one parameter per line, indented to align under the
// opening parenthesis.
func Format(name string, params []Parameter, returnType string) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.Default != "" {
			parts = append(parts, p.Name+"="+p.Default)
		} else {
			parts = append(parts, p.Name)
		}
	}

	sig := name + "(" + strings.Join(parts, ", ") + ")"
	if len(sig) > maxSignatureLineLength {
		sig = formatLong(name, parts)
	}

	if returnType != "" {
		sig += " -> " + returnType
	}
	return sig
}

func formatLong(name string, parts []string) string {
	indent := strings.Repeat(" ", len(name)+1)
	lines := make([]string, 0, len(parts)+2)
	lines = append(lines, name+"(")
	for i, part := range parts {
		suffix := ","
		if i == len(parts)-1 {
			suffix = ""
		}
		lines = append(lines, indent+part+suffix)
	}
	lines = append(lines, ")")
	return strings.Join(lines, "\n")
}
