package catalog

import (
	"context"
	"errors"

	"app/internal/domain/model"
	"app/internal/filter"
)

var ErrNotFound = errors.New("not found")

// Pagination はページング情報（pages = ceil(total / limit)）
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination は total から pages を計算する
func NewPagination(page int, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = filter.DefaultLimit
	}
	if total < 0 {
		total = 0
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// Result は1回の検索の結果
type Result struct {
	Items      []model.Product `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// Normalize は応答の欠けを補う（items nil→空、pagesの再計算）
func (r Result) Normalize() Result {
	out := r
	if out.Items == nil {
		out.Items = []model.Product{}
	}
	p := out.Pagination
	if p.Limit < 1 || p.Pages != int((p.Total+int64(p.Limit)-1)/int64(p.Limit)) {
		out.Pagination = NewPagination(p.Page, p.Limit, p.Total)
	}
	return out
}

// Querier は商品一覧コラボレーターとの約束。
// 実装はREST API（infra/api）とローカルDB（infra/repository）。
type Querier interface {
	Search(ctx context.Context, c filter.Criteria) (Result, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
}
