package generator

import (
	"docsmith/internal/docstring"
	"docsmith/internal/extractor"
	"docsmith/internal/signature"
)

// ModulePayload is the structured document emitted by the TSX and JSON
// targets: one payload per module, consumed by a React ModuleDoc component
// or by downstream tooling.
type ModulePayload struct {
	ModuleName string          `json:"moduleName"`
	Docstring  DocPayload      `json:"docstring"`
	Members    []MemberPayload `json:"members"`
}

// MemberPayload documents one class or function.
type MemberPayload struct {
	Name       string           `json:"name"`
	Type       string           `json:"type"` // "class" or "function"
	Signature  SignaturePayload `json:"signature"`
	SourceLine int              `json:"source_line"`
	Docstring  DocPayload       `json:"docstring"`
	SourceURL  string           `json:"source_url,omitempty"`
	SourceCode string           `json:"source_code,omitempty"`
}

// SignaturePayload is the structured signature for frontend rendering.
type SignaturePayload struct {
	Name       string         `json:"name"`
	Params     []ParamPayload `json:"params"`
	ReturnType string         `json:"return_type,omitempty"`
}

// ParamPayload is one display-ready parameter.
type ParamPayload struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// DocPayload is the serialized form of a parsed docstring. Section order is
// preserved from the source.
type DocPayload struct {
	Description string           `json:"description"`
	Sections    []SectionPayload `json:"sections"`
}

// SectionPayload is one docstring section.
type SectionPayload struct {
	Name       string             `json:"name"`
	Content    string             `json:"content,omitempty"`
	Args       []ArgPayload       `json:"args,omitempty"`
	References []ReferencePayload `json:"references,omitempty"`
}

// ArgPayload is one Args/Attributes/Raises record.
type ArgPayload struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// ReferencePayload is one parsed References entry.
type ReferencePayload struct {
	Description string `json:"description"`
	Source      string `json:"source"`
}

// BuildModulePayload assembles the payload for a module, filtering private
// members the same way the markdown target does.
func BuildModulePayload(mod *extractor.Module, linker SourceLinker) ModulePayload {
	payload := ModulePayload{
		ModuleName: mod.Name,
		Docstring:  buildDocPayload(docstring.Parse(mod.Docstring)),
		Members:    []MemberPayload{},
	}

	for _, sym := range documentableSymbols(mod) {
		payload.Members = append(payload.Members, buildMemberPayload(mod, sym, linker))
	}
	return payload
}

func buildMemberPayload(mod *extractor.Module, sym symbol, linker SourceLinker) MemberPayload {
	parsed := docstring.Parse(sym.Docstring())
	params := signature.MergeParams(sym.Params(), parsed.Args())

	sig := SignaturePayload{
		Name:       sym.Name(),
		Params:     []ParamPayload{},
		ReturnType: sym.ReturnType(),
	}
	for _, p := range params {
		sig.Params = append(sig.Params, ParamPayload{
			Name:        p.Name,
			Type:        p.Type,
			Default:     p.Default,
			Description: p.Description,
		})
	}

	member := MemberPayload{
		Name:       sym.Name(),
		Type:       sym.Kind(),
		Signature:  sig,
		SourceLine: sym.StartLine(),
		Docstring:  buildDocPayload(parsed),
		SourceCode: sym.Source(),
	}
	if linker != nil {
		member.SourceURL = linker.LinkFor(mod.Name, sym.Name(), sym.StartLine())
	}
	return member
}

func buildDocPayload(parsed *docstring.Parsed) DocPayload {
	doc := DocPayload{
		Description: parsed.Description,
		Sections:    []SectionPayload{},
	}

	for _, sec := range parsed.Sections {
		out := SectionPayload{Name: sec.Name}
		switch {
		case len(sec.Args) > 0:
			out.Args = toArgPayloads(sec.Args)
		case len(sec.Raises) > 0:
			out.Args = toArgPayloads(sec.Raises)
		case sec.Name == "References" || sec.Name == "Reference":
			for _, ref := range docstring.ParseReferences(sec.Content) {
				out.References = append(out.References, ReferencePayload(ref))
			}
		default:
			out.Content = sec.Content
		}
		doc.Sections = append(doc.Sections, out)
	}
	return doc
}

func toArgPayloads(args []docstring.ArgDoc) []ArgPayload {
	out := make([]ArgPayload, 0, len(args))
	for _, a := range args {
		out = append(out, ArgPayload(a))
	}
	return out
}
