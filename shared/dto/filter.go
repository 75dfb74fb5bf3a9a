package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLess      = "less"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreater   = "greater"
	FilterOperatorGreaterEq = "greater_eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterIsNull            = "is_null"
	FilterIsNotNull         = "is_not_null"
	// FilterPlainQuery embeds Value as raw SQL. Never feed it request input.
	FilterPlainQuery = "plain"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// comparisons maps binary operators onto their SQL token.
var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLess:      "<",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreater:   ">",
	FilterOperatorGreaterEq: ">=",
}

// Clause renders a SQL predicate using sqlx named parameters.
type Clause interface {
	GetWhereClause() (string, map[string]any)
}

// Filter is a single predicate on one column. ArgName defaults to Field and
// must be unique within the enclosing group.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq not_eq less less_eq greater greater_eq like in is_null is_not_null plain"`
	Table    string
}

func (f Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

// GetWhereClause returns an empty predicate for unknown operators.
func (f Filter) GetWhereClause() (string, map[string]any) {
	column, name := f.column(), f.argName()

	if token, ok := comparisons[f.Operator]; ok {
		return fmt.Sprintf("%s %s :%s", column, token, name), map[string]any{name: f.Value}
	}

	switch f.Operator {
	case FilterOperatorLike:
		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, name), map[string]any{name: fmt.Sprintf("%%%v%%", f.Value)}
	case FilterOperatorIn:
		return f.in(column, name)
	case FilterIsNull:
		return column + " IS NULL", map[string]any{}
	case FilterIsNotNull:
		return column + " IS NOT NULL", map[string]any{}
	case FilterPlainQuery:
		query, _ := f.Value.(string)

		return "(" + query + ")", map[string]any{}
	}

	return "", map[string]any{}
}

// in expands a slice into one named parameter per element. An empty slice
// matches nothing.
func (f Filter) in(column, name string) (string, map[string]any) {
	args := map[string]any{}

	value := reflect.ValueOf(f.Value)
	if kind := value.Kind(); kind != reflect.Slice && kind != reflect.Array {
		args[name] = f.Value

		return fmt.Sprintf("%s IN (:%s)", column, name), args
	}

	if value.Len() == 0 {
		return "FALSE", args
	}

	placeholders := make([]string, value.Len())
	for idx := range value.Len() {
		key := fmt.Sprintf("%s_%d", name, idx)
		args[key] = value.Index(idx).Interface()
		placeholders[idx] = ":" + key
	}

	return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")), args
}

// FilterGroup joins Filters with Operator, AND when unset. Items may be any
// Clause, so groups nest.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (g FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	parts := make([]string, 0, len(g.Filters))

	for _, item := range g.Filters {
		clause, ok := item.(Clause)
		if !ok {
			continue
		}

		where, arg := clause.GetWhereClause()
		if where == "" {
			continue
		}

		parts = append(parts, where)
		maps.Copy(args, arg)
	}

	if len(parts) == 0 {
		return "", args
	}

	operator := g.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(parts, " "+operator+" ") + ")", args
}

// IsEmpty reports whether the group renders no predicate.
func (g FilterGroup) IsEmpty() bool {
	where, _ := g.GetWhereClause()

	return where == ""
}
