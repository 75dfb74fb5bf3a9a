package repository

import (
	"maps"
	"slices"
	"strings"

	"roomly/shared/dto"
)

// clause joins non-empty SQL fragments with single spaces.
func clause(parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(part string) bool { return part == "" }), " ")
}

func where(filter dto.FilterGroup) (string, map[string]any) {
	predicate, args := filter.GetWhereClause()
	if predicate == "" {
		return "", map[string]any{}
	}

	return "WHERE " + predicate, args
}

func placeholders(columns []string) string {
	named := make([]string, len(columns))
	for idx, col := range columns {
		named[idx] = ":" + col
	}

	return strings.Join(named, ", ")
}

func (s schema) insertQuery(returning bool) string {
	query := clause(
		"INSERT INTO", s.table,
		"("+strings.Join(s.insertable, ", ")+")",
		"VALUES ("+placeholders(s.insertable)+")",
	)

	if returning {
		query = clause(query, "RETURNING", s.primaryKey)
	}

	return query
}

func (s schema) selectQuery(filter dto.FilterGroup, only ...string) (string, map[string]any) {
	predicate, args := where(filter)

	return clause("SELECT", s.selectList(only...), "FROM", s.table, s.join, predicate), args
}

func (s schema) listQuery(params dto.QueryParams, filter dto.FilterGroup, only ...string) (string, map[string]any) {
	query, args := s.selectQuery(filter, only...)

	if params.SortBy != "" && s.sortable(params.SortBy) {
		dir := dto.NormalizeSortDir(params.SortDir)
		if dir == "" {
			dir = dto.SortDirAsc
		}

		query = clause(query, "ORDER BY", params.SortBy, dir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		query = clause(query, "LIMIT :limit")

		if params.Page > 0 {
			args["offset"] = params.Offset()
			query = clause(query, "OFFSET :offset")
		}
	}

	return query, args
}

func (s schema) countQuery(filter dto.FilterGroup) (string, map[string]any) {
	predicate, args := where(filter)

	return clause("SELECT COUNT("+s.table+"."+s.primaryKey+")", "FROM", s.table, s.join, predicate), args
}

func (s schema) existQuery(filter dto.FilterGroup) (string, map[string]any) {
	predicate, args := where(filter)

	return "SELECT EXISTS(" + clause("SELECT 1 FROM", s.table, predicate) + ")", args
}

// updateQuery binds values under a set_ prefix so they cannot collide with
// filter arguments of the same name.
func (s schema) updateQuery(values map[string]any, filter dto.FilterGroup) (string, map[string]any) {
	predicate, args := where(filter)

	assignments := make([]string, 0, len(values))
	for _, col := range slices.Sorted(maps.Keys(values)) {
		assignments = append(assignments, col+" = :set_"+col)
		args["set_"+col] = values[col]
	}

	return clause("UPDATE", s.table, "SET", strings.Join(assignments, ", "), predicate), args
}

func (s schema) deleteQuery(filter dto.FilterGroup) (string, map[string]any) {
	predicate, args := where(filter)

	return clause("DELETE FROM", s.table, predicate), args
}
