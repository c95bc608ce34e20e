// Package crawler discovers the module tree of a Python package on disk.
package crawler

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PyModule is one discovered Python module (a .py file with its dotted name).
type PyModule struct {
	Name   string // Dotted module name; __init__.py carries the package name itself
	Path   string // Path to the source file
	IsInit bool
}

// Stem returns the file name without extension ("__init__" for init files).
func (m PyModule) Stem() string {
	base := filepath.Base(m.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Crawler walks a package directory breadth-first and collects its modules.
type Crawler struct {
	excludePrivate bool
	ignored        map[string]bool
}

// NewCrawler creates a crawler. With excludePrivate set, modules whose dotted
// name contains a segment starting with "_" are skipped.
func NewCrawler(excludePrivate bool) *Crawler {
	return &Crawler{
		excludePrivate: excludePrivate,
		ignored: map[string]bool{
			"__pycache__":  true,
			".git":         true,
			"venv":         true,
			".venv":        true,
			"node_modules": true,
			"build":        true,
			"dist":         true,
		},
	}
}

// Discover returns every module under the package rooted at rootDir, sorted
// by dotted name. rootDir must contain an __init__.py; that is the one error
// that aborts a run.
func (c *Crawler) Discover(rootDir string) ([]PyModule, error) {
	rootDir = filepath.Clean(rootDir)
	if _, err := os.Stat(filepath.Join(rootDir, "__init__.py")); err != nil {
		return nil, fmt.Errorf("%s is not a Python package (no __init__.py): %w", rootDir, err)
	}
	packageName := filepath.Base(rootDir)

	type queueItem struct {
		dir    string
		dotted string
	}

	var modules []PyModule
	queue := []queueItem{{dir: rootDir, dotted: packageName}}
	visited := map[string]bool{}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		abs, err := filepath.Abs(item.dir)
		if err != nil {
			abs = item.dir
		}
		if visited[abs] {
			continue
		}
		visited[abs] = true

		entries, err := os.ReadDir(item.dir)
		if err != nil {
			log.Printf("skipping unreadable directory %s: %v", item.dir, err)
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() {
				if c.ignored[name] || strings.HasPrefix(name, ".") {
					continue
				}
				if c.excludePrivate && strings.HasPrefix(name, "_") {
					continue
				}
				// Only directories with an __init__.py are subpackages.
				if _, err := os.Stat(filepath.Join(item.dir, name, "__init__.py")); err == nil {
					queue = append(queue, queueItem{
						dir:    filepath.Join(item.dir, name),
						dotted: item.dotted + "." + name,
					})
				}
				continue
			}

			if !strings.HasSuffix(name, ".py") {
				continue
			}
			stem := strings.TrimSuffix(name, ".py")
			if isTestFile(stem) {
				continue
			}

			if stem == "__init__" {
				modules = append(modules, PyModule{
					Name:   item.dotted,
					Path:   filepath.Join(item.dir, name),
					IsInit: true,
				})
				continue
			}
			if c.excludePrivate && strings.HasPrefix(stem, "_") {
				continue
			}
			modules = append(modules, PyModule{
				Name: item.dotted + "." + stem,
				Path: filepath.Join(item.dir, name),
			})
		}
	}

	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })
	return modules, nil
}

func isTestFile(stem string) bool {
	return strings.HasPrefix(stem, "test_") || strings.HasSuffix(stem, "_test")
}
