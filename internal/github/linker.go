package github

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	fetchTimeout = 10 * time.Second

	// maxSourceSize caps how much of a raw source file is read when locating
	// a symbol's line number.
	maxSourceSize = 1 << 20

	sourceCacheSize = 128
)

type cacheKey struct {
	repo   string
	branch string
	path   string
}

// Linker builds "view source" URLs of the form
// <repo>/blob/<branch>/<module path>.py#L<line>. When a symbol's local line
// is unknown it fetches the file from raw.githubusercontent.com and scans for
// the definition; fetched files are kept in an LRU cache so one module's
// symbols cost a single request.
type Linker struct {
	cfg    RepoConfig
	client *http.Client
	cache  *lru.Cache[cacheKey, []string]
}

// NewLinker creates a linker for the given repository. Returns nil when the
// config is disabled, which generators treat as "no links".
func NewLinker(cfg RepoConfig) *Linker {
	if !cfg.Enabled() {
		return nil
	}
	cache, _ := lru.New[cacheKey, []string](sourceCacheSize)
	return &Linker{
		cfg:    cfg,
		client: &http.Client{Timeout: fetchTimeout},
		cache:  cache,
	}
}

// LinkFor returns the source URL for a symbol. localLine is preferred when
// positive; otherwise the line is located by fetching the file. When the line
// cannot be determined the link still points at the file, without a fragment.
func (l *Linker) LinkFor(moduleName, symbolName string, localLine int) string {
	path := modulePath(moduleName)
	base := fmt.Sprintf("%s/blob/%s/%s", l.cfg.URL, l.cfg.Branch, path)

	line := localLine
	if line <= 0 {
		line = l.remoteSymbolLine(path, symbolName)
	}
	if line <= 0 {
		return base
	}
	return fmt.Sprintf("%s#L%d", base, line)
}

// Clear drops all cached source files.
func (l *Linker) Clear() {
	l.cache.Purge()
}

// modulePath converts a dotted module name to its repository file path
// (pkg.sub.mod -> pkg/sub/mod.py).
func modulePath(moduleName string) string {
	return strings.ReplaceAll(moduleName, ".", "/") + ".py"
}

func (l *Linker) remoteSymbolLine(path, symbolName string) int {
	lines, err := l.sourceLines(path)
	if err != nil {
		return 0
	}
	return findDefinitionLine(lines, symbolName)
}

func (l *Linker) sourceLines(path string) ([]string, error) {
	key := cacheKey{repo: l.cfg.URL, branch: l.cfg.Branch, path: path}
	if lines, ok := l.cache.Get(key); ok {
		return lines, nil
	}

	org := strings.TrimPrefix(l.cfg.URL, "https://github.com/")
	org = strings.TrimPrefix(org, "http://github.com/")
	rawURL := fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s", org, l.cfg.Branch, path)

	resp, err := l.client.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: HTTP %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rawURL, err)
	}

	lines := strings.Split(string(body), "\n")
	l.cache.Add(key, lines)
	return lines, nil
}

// findDefinitionLine scans for the class or def statement introducing the
// symbol. Returns the 1-based line number, or 0 when not found.
func findDefinitionLine(lines []string, symbolName string) int {
	prefixes := []string{
		"class " + symbolName,
		"def " + symbolName,
		"async def " + symbolName,
	}

	for i, line := range lines {
		stripped := strings.TrimLeft(line, " \t")
		for _, prefix := range prefixes {
			if !strings.HasPrefix(stripped, prefix) {
				continue
			}
			// Guard against prefix matches on longer names (Blur vs BlurPool).
			rest := stripped[len(prefix):]
			if rest == "" || rest[0] == '(' || rest[0] == ':' || rest[0] == ' ' {
				return i + 1
			}
		}
	}
	return 0
}
