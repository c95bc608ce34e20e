package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// tree-sitter-python node types used during extraction.
const (
	nodeClassDefinition     = "class_definition"
	nodeFunctionDefinition  = "function_definition"
	nodeDecoratedDefinition = "decorated_definition"
	nodeExpressionStatement = "expression_statement"
	nodeString              = "string"
	nodeIdentifier          = "identifier"
	nodeTypedParameter      = "typed_parameter"
	nodeDefaultParameter    = "default_parameter"
	nodeTypedDefaultParam   = "typed_default_parameter"
	nodeListSplat           = "list_splat_pattern"
	nodeDictSplat           = "dictionary_splat_pattern"
	nodeDecorator           = "decorator"
)

// unwrapDecorated resolves a decorated_definition to its inner definition and
// the decorator expressions. Undecorated nodes pass through unchanged.
func unwrapDecorated(node *sitter.Node, source []byte) ([]string, *sitter.Node) {
	if node.Type() != nodeDecoratedDefinition {
		return nil, node
	}

	var decorators []string
	def := node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == nodeDecorator {
			decorators = append(decorators, strings.TrimPrefix(child.Content(source), "@"))
		}
	}
	if inner := node.ChildByFieldName("definition"); inner != nil {
		def = inner
	}
	return decorators, def
}

func extractClass(node *sitter.Node, source []byte, decorators []string) *Class {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	cls := &Class{
		Name:       nameNode.Content(source),
		Decorators: decorators,
		StartLine:  int(node.StartPoint().Row + 1),
		EndLine:    int(node.EndPoint().Row + 1),
		Source:     node.Content(source),
	}

	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			cls.Bases = append(cls.Bases, supers.NamedChild(i).Content(source))
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return cls
	}
	cls.Docstring = blockDocstring(body, source)

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		methodDecorators, def := unwrapDecorated(child, source)
		if def.Type() != nodeFunctionDefinition {
			continue
		}
		if fn := extractFunction(def, source, methodDecorators); fn != nil {
			cls.Methods = append(cls.Methods, fn)
			if fn.Name == "__init__" {
				cls.Params = dropSelf(fn.Params)
			}
		}
	}

	return cls
}

func extractFunction(node *sitter.Node, source []byte, decorators []string) *Function {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	fn := &Function{
		Name:       nameNode.Content(source),
		Decorators: decorators,
		StartLine:  int(node.StartPoint().Row + 1),
		EndLine:    int(node.EndPoint().Row + 1),
		Source:     node.Content(source),
	}

	// "async def" keeps the function_definition node type; the async keyword
	// is the first token.
	if first := node.Child(0); first != nil && first.Type() == "async" {
		fn.Async = true
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Params = extractParams(params, source)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		fn.ReturnType = ret.Content(source)
	}
	if body := node.ChildByFieldName("body"); body != nil {
		fn.Docstring = blockDocstring(body, source)
	}

	return fn
}

func extractParams(paramsNode *sitter.Node, source []byte) []Param {
	var params []Param
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		child := paramsNode.NamedChild(i)
		switch child.Type() {
		case nodeIdentifier:
			params = append(params, Param{Name: child.Content(source)})
		case nodeListSplat, nodeDictSplat:
			// Content keeps the stars: "*args", "**kwargs".
			params = append(params, Param{Name: child.Content(source)})
		case nodeTypedParameter:
			p := Param{}
			if child.NamedChildCount() > 0 {
				p.Name = child.NamedChild(0).Content(source)
			}
			if tn := child.ChildByFieldName("type"); tn != nil {
				p.Type = tn.Content(source)
			}
			if p.Name != "" {
				params = append(params, p)
			}
		case nodeDefaultParameter, nodeTypedDefaultParam:
			p := Param{}
			if nn := child.ChildByFieldName("name"); nn != nil {
				p.Name = nn.Content(source)
			}
			if tn := child.ChildByFieldName("type"); tn != nil {
				p.Type = tn.Content(source)
			}
			if vn := child.ChildByFieldName("value"); vn != nil {
				p.Default = vn.Content(source)
			}
			if p.Name != "" {
				params = append(params, p)
			}
		}
		// positional_separator ("/") and keyword_separator ("*") are dropped.
	}
	return params
}

func dropSelf(params []Param) []Param {
	if len(params) > 0 && (params[0].Name == "self" || params[0].Name == "cls") {
		return params[1:]
	}
	return params
}

// moduleDocstring returns the module-level docstring, if the file opens with
// a string expression.
func moduleDocstring(root *sitter.Node, source []byte) string {
	if root.NamedChildCount() == 0 {
		return ""
	}
	return stringExprContent(root.NamedChild(0), source)
}

// blockDocstring returns the docstring of a def/class body block.
func blockDocstring(body *sitter.Node, source []byte) string {
	if body.NamedChildCount() == 0 {
		return ""
	}
	return stringExprContent(body.NamedChild(0), source)
}

func stringExprContent(stmt *sitter.Node, source []byte) string {
	if stmt.Type() != nodeExpressionStatement || stmt.NamedChildCount() == 0 {
		return ""
	}
	str := stmt.NamedChild(0)
	if str.Type() != nodeString {
		return ""
	}
	return CleanDocstring(str.Content(source))
}

// CleanDocstring strips string quotes and prefixes and dedents the body the
// way Python's inspect.cleandoc does: the first line is trimmed as-is, the
// common leading whitespace of the remaining lines is removed, and blank
// edge lines are dropped.
func CleanDocstring(raw string) string {
	s := strings.TrimLeft(raw, "rRbBuUfF")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			s = s[len(q) : len(s)-len(q)]
			break
		}
	}

	lines := strings.Split(s, "\n")
	if len(lines) == 0 {
		return strings.TrimSpace(s)
	}

	margin := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	out := []string{strings.TrimSpace(lines[0])}
	for _, line := range lines[1:] {
		if margin > 0 && len(line) >= margin {
			line = line[margin:]
		}
		out = append(out, strings.TrimRight(line, " \t"))
	}

	return strings.Trim(strings.Join(out, "\n"), "\n")
}
