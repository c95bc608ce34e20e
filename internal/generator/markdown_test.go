package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsmith/internal/extractor"
)

// stubLinker returns a fixed URL for every symbol.
type stubLinker struct{ url string }

func (l stubLinker) LinkFor(moduleName, symbolName string, localLine int) string {
	return l.url
}

func fixtureModule() *extractor.Module {
	blurDoc := `Blur the input image using a random-sized kernel.

Args:
    blur_limit (int | tuple[int, int]): Maximum kernel size. Continuation
        line with more detail.
    p (float): Probability of applying the transform

Returns:
    Blur: configured transform

Examples:
    >>> import imglib
    >>> transform = Blur(blur_limit=3)
    >>> result = transform(image=image)

References:
    - Kernel smoothing: https://en.wikipedia.org/wiki/Kernel_smoother`

	return &extractor.Module{
		Name:      "imglib.transforms.blur",
		Filepath:  "imglib/transforms/blur.py",
		Docstring: "Blur transforms for images.",
		Classes: []*extractor.Class{
			{
				Name:      "Blur",
				Docstring: blurDoc,
				Params: []extractor.Param{
					{Name: "blur_limit", Type: "int", Default: "7"},
					{Name: "p", Type: "float", Default: "0.5"},
				},
				StartLine: 12,
				Source:    "class Blur:\n    pass",
			},
			{Name: "_BaseBlur", Docstring: "Internal base.", StartLine: 4},
		},
		Functions: []*extractor.Function{
			{
				Name:      "apply_blur",
				Docstring: "Apply a blur kernel.\n\nArgs:\n    img (np.ndarray): Input image.",
				Params: []extractor.Param{
					{Name: "img", Type: "np.ndarray"},
				},
				ReturnType: "np.ndarray",
				StartLine:  40,
				Source:     "def apply_blur(img):\n    pass",
			},
			{Name: "_clamp", StartLine: 60},
		},
	}
}

func TestMarkdownGenerator_ModulePage(t *testing.T) {
	gen := NewMarkdownGenerator(nil)
	page := gen.ModulePage(fixtureModule())

	assert.True(t, strings.HasPrefix(page, "# imglib.transforms.blur\n"))
	assert.Contains(t, page, "Blur transforms for images.")

	t.Run("table of contents links public symbols", func(t *testing.T) {
		assert.Contains(t, page, "# Table of Contents")
		assert.Contains(t, page, "* [Blur](#imglibtransformsblur-blur)")
		assert.Contains(t, page, "* [apply_blur](#imglibtransformsblur-applyblur)")
	})

	t.Run("anchors precede each symbol", func(t *testing.T) {
		assert.Contains(t, page, `<a id="imglib-transforms-blur"></a>`)
		assert.Contains(t, page, `<a id="imglibtransformsblur-blur"></a>`)
	})

	t.Run("symbol headings are demoted to h2", func(t *testing.T) {
		assert.Contains(t, page, "## Blur\n")
		assert.Contains(t, page, "## apply_blur\n")
	})

	t.Run("private members are excluded", func(t *testing.T) {
		assert.NotContains(t, page, "_BaseBlur")
		assert.NotContains(t, page, "_clamp")
	})

	t.Run("groups carry titles", func(t *testing.T) {
		assert.Contains(t, page, "**Classes**")
		assert.Contains(t, page, "**Functions**")
	})
}

func TestMarkdownGenerator_SymbolPage(t *testing.T) {
	mod := fixtureModule()
	cls := classSymbol{mod.Classes[0]}

	t.Run("without linker", func(t *testing.T) {
		gen := NewMarkdownGenerator(nil)
		page := gen.SymbolPage(mod, cls)

		assert.True(t, strings.HasPrefix(page, "# Blur\n"))
		assert.Contains(t, page, "```python\nBlur(")
		assert.NotContains(t, page, "View source on GitHub")
		assert.Contains(t, page, "Blur the input image using a random-sized kernel.")
	})

	t.Run("with linker", func(t *testing.T) {
		gen := NewMarkdownGenerator(stubLinker{url: "https://github.com/org/imglib/blob/main/imglib/transforms/blur.py#L12"})
		page := gen.SymbolPage(mod, cls)
		assert.Contains(t, page, "[View source on GitHub](https://github.com/org/imglib/blob/main/imglib/transforms/blur.py#L12)")
	})

	t.Run("parameter table merges signature and docstring", func(t *testing.T) {
		gen := NewMarkdownGenerator(nil)
		page := gen.SymbolPage(mod, cls)

		assert.Contains(t, page, "| Name | Type | Description |")
		// Docstring type wins over the annotation; multi-line descriptions
		// are wrapped so the table row survives.
		assert.Contains(t, page, "| blur_limit | int | tuple[int, int] |")
		assert.Contains(t, page, "<pre>Maximum kernel size. Continuation<br/>line with more detail.</pre>")
		assert.Contains(t, page, "| p | float | Probability of applying the transform |")
	})

	t.Run("sections are rendered after the table", func(t *testing.T) {
		gen := NewMarkdownGenerator(nil)
		page := gen.SymbolPage(mod, cls)

		assert.Contains(t, page, "**Returns**\n\n- **Blur**: configured transform")
		assert.Contains(t, page, "**Examples**\n\n```python\nimport imglib\ntransform = Blur(blur_limit=3)")
		assert.Contains(t, page, "**References**\n\n**Kernel smoothing**: [https://en.wikipedia.org/wiki/Kernel_smoother](https://en.wikipedia.org/wiki/Kernel_smoother)")
		assert.NotContains(t, page, "**Args**")
	})

	t.Run("function page carries return annotation", func(t *testing.T) {
		gen := NewMarkdownGenerator(nil)
		page := gen.SymbolPage(mod, functionSymbol{mod.Functions[0]})
		assert.Contains(t, page, "apply_blur(img) -> np.ndarray")
	})
}

func TestEscapeMDX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"angle brackets", "tuple<int>", `tuple\<int\>`},
		{"equals", "p=0.5", `p\=0.5`},
		{"braces", "{'a': 1}", `\{'a': 1\}`},
		{"backslash run becomes code", `matrix \\ row`, "matrix `\\\\` row"},
		{"plain text untouched", "no special chars", "no special chars"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeMDX(tt.in))
		})
	}
}

func TestNormalizeAnchorID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Blur Transform", "blur-transform"},
		{"pkg.sub.mod-Blur", "pkgsubmod-blur"},
		{"  spaced  ", "spaced"},
		{"Weird_chars!()", "weirdchars"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAnchorID(tt.in))
	}
}

func TestFormatExamples(t *testing.T) {
	content := ">>> import imglib\n>>> t = Blur()\n... extra\n\nplain output"
	got := formatExamples(content)

	require.True(t, strings.HasPrefix(got, "```python\n"))
	assert.Contains(t, got, "import imglib\n")
	assert.Contains(t, got, "t = Blur()\n")
	assert.Contains(t, got, "extra\n")
	assert.Contains(t, got, "plain output")
	assert.NotContains(t, got, ">>>")
	// Blank lines between prompt blocks are dropped.
	assert.NotContains(t, got, "\n\n")
}

func TestModulePage_Idempotent(t *testing.T) {
	gen := NewMarkdownGenerator(nil)
	mod := fixtureModule()
	assert.Equal(t, gen.ModulePage(mod), gen.ModulePage(mod))
}
