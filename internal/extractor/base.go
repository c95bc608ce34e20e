package extractor

// Module is the extracted view of a single Python source file.
type Module struct {
	Name      string      `json:"name"`      // Dotted module name (e.g., "pkg.sub.mod")
	Filepath  string      `json:"filepath"`  // Path to the source file
	Docstring string      `json:"docstring"` // Module-level docstring, quotes stripped
	Classes   []*Class    `json:"classes"`
	Functions []*Function `json:"functions"`
}

// Class represents a class definition.
type Class struct {
	Name       string      `json:"name"`
	Docstring  string      `json:"docstring"`
	Bases      []string    `json:"bases"`      // Superclass expressions as written
	Decorators []string    `json:"decorators"` // Decorator expressions without the leading @
	Params     []Param     `json:"params"`     // __init__ parameters, self stripped
	Methods    []*Function `json:"methods"`
	StartLine  int         `json:"start_line"`
	EndLine    int         `json:"end_line"`
	Source     string      `json:"source"` // Raw source of the definition
}

// Function represents a function or method definition.
type Function struct {
	Name       string   `json:"name"`
	Docstring  string   `json:"docstring"`
	Decorators []string `json:"decorators"`
	Params     []Param  `json:"params"`
	ReturnType string   `json:"return_type"` // Return annotation as written, "" if absent
	Async      bool     `json:"async"`
	StartLine  int      `json:"start_line"`
	EndLine    int      `json:"end_line"`
	Source     string   `json:"source"`
}

// Param is a single parameter from a def's parameter list.
// Splat parameters keep their stars in the name ("*args", "**kwargs");
// the bare "*" and "/" separators are dropped during extraction.
type Param struct {
	Name    string `json:"name"`
	Type    string `json:"type"`    // Annotation as written, "" if absent
	Default string `json:"default"` // Default literal as written, "" if absent
}

// HasDocumentableMembers reports whether the module defines anything worth a
// page. Empty __init__ files are the usual reason this returns false.
func (m *Module) HasDocumentableMembers() bool {
	return len(m.Classes) > 0 || len(m.Functions) > 0
}
