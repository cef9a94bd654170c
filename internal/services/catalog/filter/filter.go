// Package filter translates AIP-160 filter expressions over catalog
// projects into SQL predicates.
//
// Supported fields are author, title, location and date (strings) and
// category (a list of names). Strings support comparisons and ":" for a
// case-insensitive substring match; category supports ":" for membership.
package filter

import (
	"fmt"
	"strings"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// SQLCondition is a SQL WHERE fragment with positional parameters.
type SQLCondition struct {
	Clause string
	Params []any
}

// Empty reports whether the condition selects every row.
func (c SQLCondition) Empty() bool {
	return strings.TrimSpace(c.Clause) == ""
}

const categoryField = "category"

var stringColumns = map[string]string{
	"author":   "author",
	"title":    "title",
	"location": "location",
	"date":     "date",
}

// Declarations returns the identifiers a project filter may reference.
func Declarations() (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent(categoryField, filtering.TypeList(filtering.TypeString)),
	}
	for name := range stringColumns {
		opts = append(opts, filtering.DeclareIdent(name, filtering.TypeString))
	}
	return filtering.NewDeclarations(opts...)
}

// Parse parses a filter expression and returns its SQL condition. An empty
// filter yields an empty condition.
func Parse(filterStr string) (SQLCondition, error) {
	if strings.TrimSpace(filterStr) == "" {
		return SQLCondition{}, nil
	}
	decls, err := Declarations()
	if err != nil {
		return SQLCondition{}, fmt.Errorf("create declarations: %w", err)
	}
	parsed, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return SQLCondition{}, fmt.Errorf("parse filter: %w", err)
	}
	if parsed.CheckedExpr == nil {
		return SQLCondition{}, nil
	}
	return translateExpr(parsed.CheckedExpr.GetExpr())
}

func translateExpr(e *expr.Expr) (SQLCondition, error) {
	if e == nil {
		return SQLCondition{}, nil
	}
	switch kind := e.GetExprKind().(type) {
	case *expr.Expr_CallExpr:
		return translateCall(kind.CallExpr)
	default:
		return SQLCondition{}, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func translateCall(call *expr.Expr_Call) (SQLCondition, error) {
	switch call.GetFunction() {
	case "_&&_", "AND":
		return translateJunction(call.GetArgs(), "AND")
	case "_||_", "OR":
		return translateJunction(call.GetArgs(), "OR")
	case "NOT", "-":
		return translateNot(call.GetArgs())
	case "_==_", "=":
		return translateComparison(call.GetArgs(), "=")
	case "_!=_", "!=":
		return translateComparison(call.GetArgs(), "!=")
	case "_<_", "<":
		return translateComparison(call.GetArgs(), "<")
	case "_<=_", "<=":
		return translateComparison(call.GetArgs(), "<=")
	case "_>_", ">":
		return translateComparison(call.GetArgs(), ">")
	case "_>=_", ">=":
		return translateComparison(call.GetArgs(), ">=")
	case ":":
		return translateHas(call.GetArgs())
	default:
		return SQLCondition{}, fmt.Errorf("unsupported function: %s", call.GetFunction())
	}
}

func translateJunction(args []*expr.Expr, op string) (SQLCondition, error) {
	if len(args) < 2 {
		return SQLCondition{}, fmt.Errorf("%s requires 2 arguments", op)
	}
	clauses := make([]string, 0, len(args))
	var params []any
	for _, arg := range args {
		part, err := translateExpr(arg)
		if err != nil {
			return SQLCondition{}, err
		}
		clauses = append(clauses, part.Clause)
		params = append(params, part.Params...)
	}
	return SQLCondition{
		Clause: "(" + strings.Join(clauses, " "+op+" ") + ")",
		Params: params,
	}, nil
}

func translateNot(args []*expr.Expr) (SQLCondition, error) {
	if len(args) != 1 {
		return SQLCondition{}, fmt.Errorf("NOT requires 1 argument")
	}
	inner, err := translateExpr(args[0])
	if err != nil {
		return SQLCondition{}, err
	}
	return SQLCondition{Clause: "(NOT " + inner.Clause + ")", Params: inner.Params}, nil
}

func translateComparison(args []*expr.Expr, op string) (SQLCondition, error) {
	if len(args) != 2 {
		return SQLCondition{}, fmt.Errorf("comparison requires 2 arguments")
	}
	field, err := extractFieldName(args[0])
	if err != nil {
		return SQLCondition{}, err
	}
	column, ok := stringColumns[field]
	if !ok {
		return SQLCondition{}, fmt.Errorf("field %s does not support %s", field, op)
	}
	value, err := extractString(args[1])
	if err != nil {
		return SQLCondition{}, err
	}
	return SQLCondition{
		Clause: fmt.Sprintf("%s %s ?", column, op),
		Params: []any{value},
	}, nil
}

func translateHas(args []*expr.Expr) (SQLCondition, error) {
	if len(args) != 2 {
		return SQLCondition{}, fmt.Errorf("has requires 2 arguments")
	}
	field, err := extractFieldName(args[0])
	if err != nil {
		return SQLCondition{}, err
	}
	value, err := extractString(args[1])
	if err != nil {
		return SQLCondition{}, err
	}
	if field == categoryField {
		return SQLCondition{
			Clause: "EXISTS (SELECT 1 FROM json_each(projects.category) WHERE json_each.value = ?)",
			Params: []any{value},
		}, nil
	}
	column, ok := stringColumns[field]
	if !ok {
		return SQLCondition{}, fmt.Errorf("unknown field: %s", field)
	}
	return SQLCondition{
		Clause: fmt.Sprintf("instr(lower(%s), lower(?)) > 0", column),
		Params: []any{value},
	}, nil
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}
	switch kind := e.GetExprKind().(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.GetName(), nil
	default:
		return "", fmt.Errorf("expected identifier, got %T", kind)
	}
}

func extractString(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}
	constant, ok := e.GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return "", fmt.Errorf("expected constant, got %T", e.GetExprKind())
	}
	value, ok := constant.ConstExpr.GetConstantKind().(*expr.Constant_StringValue)
	if !ok {
		return "", fmt.Errorf("expected string constant, got %T", constant.ConstExpr.GetConstantKind())
	}
	return value.StringValue, nil
}
