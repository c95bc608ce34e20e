package docstring

import (
	"fmt"
	"regexp"
	"strings"
)

// Reference is one entry of a References section.
type Reference struct {
	Description string
	Source      string
}

// ParseReferences parses a References section into structured entries.
//
// When any line starts with a dash the section is a list: each dashed line
// begins a new reference and more-indented lines continue the previous one.
// Without dashes the whole content is a single reference. An entry splits on
// its first colon into description and source; entries without a colon keep
// the full text as description and an empty source.
func ParseReferences(content string) []Reference {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	hasDashes := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "-") {
			hasDashes = true
			break
		}
	}

	if !hasDashes {
		return []Reference{parseSingleReference(strings.Join(lines, "\n"))}
	}

	var refs []Reference
	var current *Reference
	currentIndent := 0

	for _, line := range lines {
		stripped := strings.TrimLeft(line, " \t")
		indent := len(line) - len(stripped)

		if strings.HasPrefix(stripped, "-") {
			if current != nil {
				refs = append(refs, *current)
			}
			ref := parseSingleReference(strings.TrimSpace(stripped[1:]))
			current = &ref
			currentIndent = indent
			continue
		}
		if current != nil && indent > currentIndent {
			continueReference(current, stripped)
		}
	}
	if current != nil {
		refs = append(refs, *current)
	}

	return refs
}

// parseSingleReference splits on the first colon. Multi-colon content always
// splits on the first one, even when that colon belongs to a URL right after
// the label.
func parseSingleReference(content string) Reference {
	if idx := strings.Index(content, ":"); idx >= 0 {
		return Reference{
			Description: strings.TrimSpace(content[:idx]),
			Source:      strings.TrimSpace(content[idx+1:]),
		}
	}
	return Reference{Description: content}
}

// continueReference appends a continuation line: a "desc: source" line fills
// an empty source, otherwise the text extends whichever part came last.
func continueReference(ref *Reference, stripped string) {
	if idx := strings.Index(stripped, ":"); idx >= 0 && ref.Source == "" {
		ref.Description = ref.Description + " " + strings.TrimSpace(stripped[:idx])
		ref.Source = strings.TrimSpace(stripped[idx+1:])
		return
	}
	if ref.Source != "" {
		ref.Source = ref.Source + " " + stripped
	} else {
		ref.Description = ref.Description + " " + stripped
	}
}

var urlPattern = regexp.MustCompile(`https?://[^\s<>"]+|www\.[^\s<>"]+\.[^\s<>"]{2,}`)

// LinkifyURLs wraps bare URLs in markdown inline links. www-prefixed URLs get
// an https scheme, in the link text as well as the target.
func LinkifyURLs(text string) string {
	return urlPattern.ReplaceAllStringFunc(text, func(url string) string {
		if strings.HasPrefix(url, "www.") {
			url = "https://" + url
		}
		return fmt.Sprintf("[%s](%s)", url, url)
	})
}

// FormatReferences renders references as markdown: a bullet list when there
// are several, a single bold line otherwise. escape is applied to each part
// before URL linkification; pass nil to skip escaping.
func FormatReferences(refs []Reference, escape func(string) string) string {
	if len(refs) == 0 {
		return ""
	}

	process := func(text string) string {
		if escape != nil {
			text = escape(text)
		}
		return LinkifyURLs(text)
	}

	if len(refs) == 1 {
		return fmt.Sprintf("**%s**: %s", process(refs[0].Description), process(refs[0].Source))
	}

	var sb strings.Builder
	for i, ref := range refs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "- **%s**: %s", process(ref.Description), process(ref.Source))
	}
	return sb.String()
}
