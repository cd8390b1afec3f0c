package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
)

// defaultExportName is the variable the default export is rebound to before
// parsing, since the parser only understands script syntax.
const defaultExportName = "__defaultExport__"

// Rewrites applied to a module before parsing. They remove the module and
// TypeScript syntax a resource file typically carries and leave plain
// declarations behind.
var (
	importStatement = regexp.MustCompile(`(?m)^[ \t]*import\s+(?:[^;'"]*?\s+from\s+)?['"][^'"\n]*['"][ \t]*;?`)
	exportDefault   = regexp.MustCompile(`\bexport\s+default\s+`)
	moduleExports   = regexp.MustCompile(`\bmodule\.exports\s*=\s*`)
	exportDecl      = regexp.MustCompile(`\bexport\s+(const|let|var)\b`)
	typedDecl       = regexp.MustCompile(`\b(const|let|var)\s+([A-Za-z_$][\w$]*)\s*:\s*[A-Za-z_$][\w$.]*(?:<[^>=]*>)?(?:\[\])?\s*=`)
	constAssertion  = regexp.MustCompile(`\}\s*as\s+const\b`)
	satisfiesClause = regexp.MustCompile(`\}\s*satisfies\s+[A-Za-z_$][\w$.]*(?:<[^>]*>)?`)
)

// stripModuleSyntax turns a resource module into a script the parser
// accepts, binding the default export to defaultExportName.
func stripModuleSyntax(src string) (string, error) {
	src = importStatement.ReplaceAllString(src, "")
	switch {
	case exportDefault.MatchString(src):
		src = exportDefault.ReplaceAllString(src, "var "+defaultExportName+" = ")
	case moduleExports.MatchString(src):
		src = moduleExports.ReplaceAllString(src, "var "+defaultExportName+" = ")
	default:
		return "", fmt.Errorf("no default export")
	}
	src = exportDecl.ReplaceAllString(src, "$1")
	src = typedDecl.ReplaceAllString(src, "$1 $2 =")
	src = constAssertion.ReplaceAllString(src, "}")
	src = satisfiesClause.ReplaceAllString(src, "}")
	return src, nil
}

// parseModuleResource parses a JS/TS resource module and returns its default
// export as a keyTree. The module is parsed, never evaluated.
func parseModuleResource(name string, data []byte) (keyTree, error) {
	src, err := stripModuleSyntax(string(data))
	if err != nil {
		return nil, err
	}
	prog, err := parser.ParseFile(nil, name, src, 0)
	if err != nil {
		return nil, err
	}

	expr := findBinding(prog.Body, defaultExportName)
	// export default NAME: follow the reference to its declaration.
	for depth := 0; depth < 8; depth++ {
		id, ok := expr.(*ast.Identifier)
		if !ok {
			break
		}
		expr = findBinding(prog.Body, id.Name.String())
	}

	obj, ok := expr.(*ast.ObjectLiteral)
	if !ok {
		return nil, fmt.Errorf("default export is not an object literal")
	}
	return objectTree(obj), nil
}

// findBinding returns the initializer of the top-level variable called name.
func findBinding(body []ast.Statement, name string) ast.Expression {
	for _, stmt := range body {
		var list []*ast.Binding
		switch s := stmt.(type) {
		case *ast.VariableStatement:
			list = s.List
		case *ast.LexicalDeclaration:
			list = s.List
		}
		for _, b := range list {
			if id, ok := b.Target.(*ast.Identifier); ok && id.Name.String() == name {
				return b.Initializer
			}
		}
	}
	return nil
}

func objectTree(obj *ast.ObjectLiteral) keyTree {
	tree := make(keyTree, 0, len(obj.Value))
	index := make(map[string]int, len(obj.Value))
	for _, prop := range obj.Value {
		p, ok := prop.(*ast.PropertyKeyed)
		if !ok || p.Computed {
			continue
		}
		name, ok := propertyName(p.Key)
		if !ok {
			continue
		}
		field := treeField{Name: name, Value: literalValue(p.Value)}
		// A repeated property keeps its first position and takes the last value.
		if i, seen := index[name]; seen {
			tree[i] = field
			continue
		}
		index[name] = len(tree)
		tree = append(tree, field)
	}
	return tree
}

func propertyName(key ast.Expression) (string, bool) {
	switch k := key.(type) {
	case *ast.StringLiteral:
		return k.Value.String(), true
	case *ast.Identifier:
		return k.Name.String(), true
	case *ast.NumberLiteral:
		return k.Literal, true
	}
	return "", false
}

// literalValue maps an expression to a keyTree value: string literals and
// substitution-free template literals become strings, object literals
// become nested trees, anything else is nil.
func literalValue(expr ast.Expression) any {
	switch v := expr.(type) {
	case *ast.StringLiteral:
		return v.Value.String()
	case *ast.TemplateLiteral:
		if v.Tag != nil || len(v.Expressions) > 0 {
			return nil
		}
		var sb strings.Builder
		for _, el := range v.Elements {
			sb.WriteString(el.Parsed.String())
		}
		return sb.String()
	case *ast.ObjectLiteral:
		return objectTree(v)
	}
	return nil
}
