package dto

import (
	"net/http"
	"net/url"
	"roomly/shared/constant"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit (or pageSize), sort_by and sort_dir.
// Malformed or non-positive numbers are ignored. With withDefaults set, a
// missing page or limit falls back to the list defaults.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	if page, ok := positiveInt(values, constant.RequestParamPage); ok {
		q.Page = page
	}

	if limit, ok := positiveInt(values, constant.RequestParamLimit, constant.RequestParamPageSize); ok {
		q.Limit = limit
	}

	if sortBy := values.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if dir := NormalizeSortDir(values.Get(constant.RequestParamSortDir)); dir != "" {
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// Offset is the number of rows skipped before the current page.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

// NormalizeSortDir upper-cases dir and returns "" unless it is ASC or DESC.
func NormalizeSortDir(dir string) string {
	switch upper := strings.ToUpper(strings.TrimSpace(dir)); upper {
	case SortDirAsc, SortDirDesc:
		return upper
	default:
		return ""
	}
}

// positiveInt returns the first key holding a value, if that value is a
// positive integer.
func positiveInt(values url.Values, keys ...string) (int, bool) {
	for _, key := range keys {
		raw := values.Get(key)
		if raw == "" {
			continue
		}

		n, err := strconv.Atoi(raw)

		return n, err == nil && n > 0
	}

	return 0, false
}
