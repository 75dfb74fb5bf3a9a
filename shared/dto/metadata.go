package dto

import (
	"roomly/shared/constant"
	"roomly/shared/model"
	"roomly/shared/timezone"
)

// Metadata renders row timestamps in the API date format.
type Metadata struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	m.CreatedAt = timezone.Format(source.CreatedAt, constant.DateFormat)
	m.UpdatedAt = timezone.Format(source.UpdatedAt, constant.DateFormat)
}

// Pagination is the paging envelope shared by list responses.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	TotalItem int `json:"totalItem"`
	TotalPage int `json:"totalPage"`
}
