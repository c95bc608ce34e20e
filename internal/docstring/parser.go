// Package docstring parses Google-style docstrings into structured sections.
package docstring

import (
	"regexp"
	"strings"
)

// Section names recognized as headers. Anything else stays part of the
// surrounding text.
var knownSections = map[string]bool{
	"Args":       true,
	"Arguments":  true,
	"Returns":    true,
	"Yields":     true,
	"Raises":     true,
	"Example":    true,
	"Examples":   true,
	"Note":       true,
	"Notes":      true,
	"Reference":  true,
	"References": true,
	"Attributes": true,
	"Warning":    true,
	"Warnings":   true,
	"See Also":   true,
	"Todo":       true,
}

// Parsed is a docstring split into its sections. Section order is preserved
// so that formatting the same docstring twice yields identical output.
type Parsed struct {
	Description string
	Sections    []Section
}

// Section is one named block of a docstring.
type Section struct {
	Name    string
	Content string   // Dedented raw content
	Args    []ArgDoc // Populated for Args/Arguments/Attributes
	Raises  []ArgDoc // Populated for Raises
}

// ArgDoc is one "name (type): description" record from an Args-like section.
// For Raises records the exception type is stored in Name and Type is empty.
type ArgDoc struct {
	Name        string
	Type        string
	Description string
}

// SectionByName returns the first section with the given name, or nil.
func (p *Parsed) SectionByName(name string) *Section {
	for i := range p.Sections {
		if p.Sections[i].Name == name {
			return &p.Sections[i]
		}
	}
	return nil
}

// Args returns the parsed Args (or Arguments) records, if any.
func (p *Parsed) Args() []ArgDoc {
	for _, name := range []string{"Args", "Arguments"} {
		if sec := p.SectionByName(name); sec != nil {
			return sec.Args
		}
	}
	return nil
}

// headerPattern matches a section header line: the section name followed by a
// colon, with nothing but whitespace after it.
var headerPattern = regexp.MustCompile(`^\s*([A-Z][A-Za-z ]*):\s*$`)

// Parse splits a Google-style docstring into a description and named
// sections. The input is expected to be already dedented (the extractor's
// CleanDocstring output).
func Parse(doc string) *Parsed {
	parsed := &Parsed{}
	if strings.TrimSpace(doc) == "" {
		return parsed
	}

	lines := strings.Split(doc, "\n")
	var description []string
	var current *Section
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = dedent(strings.Join(body, "\n"))
		switch current.Name {
		case "Args", "Arguments", "Attributes":
			current.Args = parseArgRecords(current.Content, true)
		case "Raises":
			current.Raises = parseArgRecords(current.Content, false)
		}
		parsed.Sections = append(parsed.Sections, *current)
		current = nil
		body = nil
	}

	for _, line := range lines {
		if m := headerPattern.FindStringSubmatch(line); m != nil && knownSections[m[1]] {
			flush()
			current = &Section{Name: m[1]}
			continue
		}
		if current != nil {
			body = append(body, line)
		} else {
			description = append(description, line)
		}
	}
	flush()

	parsed.Description = strings.TrimSpace(strings.Join(description, "\n"))
	return parsed
}

// argLinePattern matches the start of an Args record at the section's base
// indentation: "name (type): desc" or "name: desc". Splat names keep their
// stars.
var argLinePattern = regexp.MustCompile(`^([*\w.]+)(?:\s+\(([^)]*)\))?:\s?(.*)$`)

// parseArgRecords parses Args/Attributes/Raises-style records. Lines indented
// deeper than the record's first line are continuation of its description.
func parseArgRecords(content string, withType bool) []ArgDoc {
	var records []ArgDoc
	var currentIndent int

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)

		if m := argLinePattern.FindStringSubmatch(trimmed); m != nil && (len(records) == 0 || indent <= currentIndent) {
			rec := ArgDoc{Name: m[1], Description: strings.TrimSpace(m[3])}
			if withType {
				rec.Type = strings.TrimSpace(m[2])
			}
			records = append(records, rec)
			currentIndent = indent
			continue
		}

		if len(records) > 0 {
			last := &records[len(records)-1]
			if last.Description == "" {
				last.Description = trimmed
			} else {
				last.Description += "\n" + trimmed
			}
		}
	}

	return records
}

func dedent(s string) string {
	lines := strings.Split(s, "\n")
	margin := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin > 0 {
		for i, line := range lines {
			if len(line) >= margin {
				lines[i] = line[margin:]
			} else {
				lines[i] = strings.TrimLeft(line, " \t")
			}
		}
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
