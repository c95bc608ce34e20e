package generator

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"docsmith/internal/crawler"
	"docsmith/internal/extractor"
)

// Format selects the output target.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatTSX      Format = "tsx"
	FormatJSON     Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatTSX, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want markdown, tsx or json)", s)
	}
}

// Summary reports the outcome of a generation batch.
type Summary struct {
	Written int
	Skipped int
	Failed  int
}

// Writer turns discovered modules into documentation files, mirroring the
// package's dotted module path onto the output directory tree.
type Writer struct {
	outDir string
	format Format
	ext    *extractor.Extractor
	md     *MarkdownGenerator
	tsx    *TSXGenerator
	json   *JSONGenerator

	// Progress receives one call per processed module. Optional.
	Progress func(done, total int, mod crawler.PyModule)
}

// NewWriter creates a writer for the given output directory and format.
// linker may be nil.
func NewWriter(outDir string, format Format, linker SourceLinker) *Writer {
	return &Writer{
		outDir: outDir,
		format: format,
		ext:    extractor.NewExtractor(),
		md:     NewMarkdownGenerator(linker),
		tsx:    NewTSXGenerator(linker),
		json:   NewJSONGenerator(linker),
	}
}

// Run processes every module sequentially: extract, render, write. Failures
// are logged and counted, never fatal; only an unusable output root aborts.
func (w *Writer) Run(modules []crawler.PyModule) (Summary, error) {
	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return Summary{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	var summary Summary
	for i, mod := range modules {
		if w.Progress != nil {
			w.Progress(i+1, len(modules), mod)
		}
		switch err := w.processModule(mod); {
		case err == errNoMembers:
			summary.Skipped++
		case err != nil:
			log.Printf("⚠️  %s: %v", mod.Name, err)
			summary.Failed++
		default:
			summary.Written++
		}
	}

	if w.format == FormatMarkdown {
		if err := w.generateIndexes(); err != nil {
			log.Printf("⚠️  failed to generate index files: %v", err)
		}
	}

	return summary, nil
}

// errNoMembers marks modules that get no page (empty __init__ files and
// other member-less modules).
var errNoMembers = fmt.Errorf("module has no documentable members")

func (w *Writer) processModule(pyMod crawler.PyModule) error {
	mod, err := w.ext.ExtractFile(pyMod.Path, pyMod.Name)
	if err != nil {
		return err
	}
	if !mod.HasDocumentableMembers() || len(documentableSymbols(mod)) == 0 {
		return errNoMembers
	}

	var content string
	switch w.format {
	case FormatMarkdown:
		content = w.md.ModulePage(mod)
	case FormatTSX:
		content, err = w.tsx.ModulePage(mod)
	case FormatJSON:
		content, err = w.json.ModulePage(mod)
	}
	if err != nil {
		return err
	}

	path := w.OutputPath(pyMod)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// OutputPath derives a module's output file location: the root package
// segment is stripped from the dotted name and the file's own stem becomes
// the trailing component ("pkg.sub.mod" -> "<out>/sub/mod.mdx"). The TSX
// target writes a page.tsx inside a per-module directory instead.
func (w *Writer) OutputPath(mod crawler.PyModule) string {
	segments := strings.Split(mod.Name, ".")[1:]
	stem := mod.Stem()
	if !mod.IsInit && len(segments) > 0 {
		segments = segments[:len(segments)-1]
	}

	dir := filepath.Join(append([]string{w.outDir}, segments...)...)
	switch w.format {
	case FormatTSX:
		if mod.IsInit {
			return filepath.Join(dir, "page.tsx")
		}
		return filepath.Join(dir, stem, "page.tsx")
	case FormatJSON:
		return filepath.Join(dir, stem+".json")
	default:
		return filepath.Join(dir, stem+".mdx")
	}
}

// generateIndexes writes an index.mdx per output directory listing the pages
// and subdirectories it contains, plus a root API index. Links are qualified
// with the directory name so Docusaurus resolves them.
func (w *Writer) generateIndexes() error {
	err := filepath.WalkDir(w.outDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() || path == w.outDir {
			return err
		}

		rel, err := filepath.Rel(w.outDir, path)
		if err != nil {
			return err
		}
		moduleName := strings.ReplaceAll(rel, string(filepath.Separator), ".")

		links, err := directoryLinks(path, filepath.Base(path)+"/")
		if err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}

		content := fmt.Sprintf("# %s\n\n## Contents\n\n%s\n", moduleName, strings.Join(links, "\n"))
		return os.WriteFile(filepath.Join(path, "index.mdx"), []byte(content), 0644)
	})
	if err != nil {
		return err
	}
	return w.generateRootIndex()
}

func (w *Writer) generateRootIndex() error {
	links, err := directoryLinks(w.outDir, "")
	if err != nil {
		return err
	}

	content := fmt.Sprintf("# API Documentation\n\n## Modules\n\n%s\n", strings.Join(links, "\n"))
	return os.WriteFile(filepath.Join(w.outDir, "index.mdx"), []byte(content), 0644)
}

// directoryLinks lists subdirectories first, then pages, both sorted.
func directoryLinks(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var subdirs, pages []string
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case entry.IsDir():
			subdirs = append(subdirs, name)
		case strings.HasSuffix(name, ".mdx") && name != "index.mdx":
			pages = append(pages, strings.TrimSuffix(name, ".mdx"))
		}
	}
	sort.Strings(subdirs)
	sort.Strings(pages)

	var links []string
	for _, sub := range subdirs {
		links = append(links, fmt.Sprintf("- [%s](%s%s)", sub, prefix, sub))
	}
	for _, page := range pages {
		links = append(links, fmt.Sprintf("- [%s](%s%s)", page, prefix, page))
	}
	return links, nil
}
