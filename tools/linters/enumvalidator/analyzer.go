package enumvalidator

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// enumTypes are the named string types whose values must come from declared constants.
var enumTypes = map[string]bool{
	"Role": true,
}

var Analyzer = &analysis.Analyzer{
	Name: "enumvalidator",
	Doc:  "checks that enum fields only use defined constants, not string literals",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.AssignStmt:
				for i, lhs := range node.Lhs {
					if i >= len(node.Rhs) {
						continue
					}
					sel, ok := lhs.(*ast.SelectorExpr)
					if ok && isEnumField(pass, sel) && isStringLiteral(node.Rhs[i]) {
						pass.Reportf(node.Pos(),
							"enum field %s assigned string literal; use defined constant instead",
							sel.Sel.Name)
					}
				}

			case *ast.KeyValueExpr:
				key, ok := node.Key.(*ast.Ident)
				if ok && isEnumStructKey(pass, key) && isStringLiteral(node.Value) {
					pass.Reportf(node.Pos(),
						"enum field %s set to string literal; use defined constant instead",
						key.Name)
				}
			}
			return true
		})
	}
	return nil, nil
}

func isEnumField(pass *analysis.Pass, sel *ast.SelectorExpr) bool {
	return isEnumType(pass.TypesInfo.TypeOf(sel))
}

// isEnumStructKey matches field keys in struct literals, not map keys.
func isEnumStructKey(pass *analysis.Pass, key *ast.Ident) bool {
	field, ok := pass.TypesInfo.Uses[key].(*types.Var)
	return ok && field.IsField() && isEnumType(field.Type())
}

func isEnumType(t types.Type) bool {
	if t == nil {
		return false
	}
	named, ok := t.(*types.Named)
	return ok && enumTypes[named.Obj().Name()]
}

func isStringLiteral(expr ast.Expr) bool {
	lit, ok := expr.(*ast.BasicLit)
	return ok && lit.Kind == token.STRING
}
