package repository

import (
	"reflect"
	"slices"
	"strings"
)

// Joiner is implemented by read models that span more than one table.
type Joiner interface {
	JoinQuery() string
}

// field is one selectable column of T.
//
//	db     result column, also the insert placeholder
//	table  owning table, defaults to the repository table
//	column source column name when it differs from db
//	auto   filled by the database, never inserted
type field struct {
	name   string
	table  string
	source string
}

func (f field) selectExpr() string {
	if f.source == "" {
		return f.table + "." + f.name
	}

	return f.table + "." + f.source + " AS " + f.name
}

type schema struct {
	table      string
	primaryKey string
	join       string
	fields     []field
	insertable []string
}

func newSchema[T any](table, primaryKey string) schema {
	var zero T

	s := schema{table: table, primaryKey: primaryKey}
	s.collect(reflect.TypeOf(zero))

	if joiner, ok := any(zero).(Joiner); ok {
		s.join = joiner.JoinQuery()
	}

	return s
}

// collect walks exported struct fields, flattening embedded structs.
func (s *schema) collect(t reflect.Type) {
	for i := range t.NumField() {
		sf := t.Field(i)

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			s.collect(sf.Type)

			continue
		}

		name := sf.Tag.Get("db")
		if name == "" || name == "-" {
			continue
		}

		owner := sf.Tag.Get("table")
		if owner == "" {
			owner = s.table
		}

		if owner == s.table && sf.Tag.Get("auto") != "true" {
			s.insertable = append(s.insertable, name)
		}

		s.fields = append(s.fields, field{name: name, table: owner, source: sf.Tag.Get("column")})
	}
}

// selectList renders the projection, limited to only when given.
func (s schema) selectList(only ...string) string {
	exprs := make([]string, 0, len(s.fields))

	for _, f := range s.fields {
		if len(only) > 0 && !slices.Contains(only, f.name) {
			continue
		}

		exprs = append(exprs, f.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

// sortable accepts a result name or a qualified table.column of T, so
// sort_by never reaches SQL unless it names a real column.
func (s schema) sortable(sortBy string) bool {
	return slices.ContainsFunc(s.fields, func(f field) bool {
		source := f.name
		if f.source != "" {
			source = f.source
		}

		return sortBy == f.name || sortBy == f.table+"."+source
	})
}
