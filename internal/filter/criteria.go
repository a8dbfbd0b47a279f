package filter

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// デフォルト値
const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// Sort は並び順のキー
type Sort string

const (
	SortPopular   Sort = "popular"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortNewest    Sort = "newest"
)

func (s Sort) Valid() bool {
	switch s {
	case SortPopular, SortPriceAsc, SortPriceDesc, SortNewest:
		return true
	}
	return false
}

// Criteria は検索・絞り込み条件の全体。
// フィールドは閉じた集合（任意キーは持たない）。
type Criteria struct {
	Category string
	Search   string
	MinPrice int64 // 0 = 下限なし
	MaxPrice int64 // 0 = 上限なし
	Colors   []string
	Sizes    []string
	Tags     []string
	Brand    []string
	Sort     Sort
	Page     int
	Limit    int
}

// Default は初期条件
func Default() Criteria {
	return Criteria{
		Sort:  SortPopular,
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}
}

// Patch は部分更新。nil = 変更なし。
// Category/Search は空文字で解除、MinPrice/MaxPrice は 0 で解除、
// スライスは空スライスで解除。
type Patch struct {
	Category *string
	Search   *string
	MinPrice *int64
	MaxPrice *int64
	Colors   *[]string
	Sizes    *[]string
	Tags     *[]string
	Brand    *[]string
	Sort     *Sort
	Page     *int
	Limit    *int
}

// Constraining は絞り込みに効くフィールドを含むか
// （sort/page/limit は含まない）。
func (p Patch) Constraining() bool {
	return p.Category != nil ||
		p.Search != nil ||
		p.MinPrice != nil ||
		p.MaxPrice != nil ||
		p.Colors != nil ||
		p.Sizes != nil ||
		p.Tags != nil ||
		p.Brand != nil
}

// HasSearch は検索語の変更を含むか
func (p Patch) HasSearch() bool {
	return p.Search != nil
}

// Apply はパッチを適用した新しい Criteria を返す。
// 絞り込みフィールドが変わる場合、pageは1に戻す
// （パッチが明示的にpageを持つ場合はそちらを優先）。
// sortだけの変更ではpageを戻さない。
func (c Criteria) Apply(p Patch) Criteria {
	out := c.Clone()

	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Search != nil {
		out.Search = *p.Search
	}
	if p.MinPrice != nil {
		out.MinPrice = *p.MinPrice
	}
	if p.MaxPrice != nil {
		out.MaxPrice = *p.MaxPrice
	}
	if p.Colors != nil {
		out.Colors = cloneTokens(*p.Colors)
	}
	if p.Sizes != nil {
		out.Sizes = cloneTokens(*p.Sizes)
	}
	if p.Tags != nil {
		out.Tags = cloneTokens(*p.Tags)
	}
	if p.Brand != nil {
		out.Brand = cloneTokens(*p.Brand)
	}
	if p.Sort != nil && p.Sort.Valid() {
		out.Sort = *p.Sort
	}
	if p.Limit != nil && *p.Limit >= 1 {
		out.Limit = *p.Limit
	}

	if p.Constraining() {
		out.Page = DefaultPage
	}
	if p.Page != nil && *p.Page >= 1 {
		out.Page = *p.Page
	}

	return out
}

// Clone はスライスも複製したコピーを返す
func (c Criteria) Clone() Criteria {
	out := c
	out.Colors = cloneTokens(c.Colors)
	out.Sizes = cloneTokens(c.Sizes)
	out.Tags = cloneTokens(c.Tags)
	out.Brand = cloneTokens(c.Brand)
	return out
}

// Equal は全フィールドの一致
func (c Criteria) Equal(o Criteria) bool {
	return c.Category == o.Category &&
		c.Search == o.Search &&
		c.MinPrice == o.MinPrice &&
		c.MaxPrice == o.MaxPrice &&
		slices.Equal(c.Colors, o.Colors) &&
		slices.Equal(c.Sizes, o.Sizes) &&
		slices.Equal(c.Tags, o.Tags) &&
		slices.Equal(c.Brand, o.Brand) &&
		c.Sort == o.Sort &&
		c.Page == o.Page &&
		c.Limit == o.Limit
}

// HasActiveFilters は page/limit/デフォルトsort 以外に
// デフォルトから外れたフィールドがあるか
func (c Criteria) HasActiveFilters() bool {
	return c.ActiveFilterCount() > 0
}

// ActiveFilterCount は有効な絞り込みの数。
// 価格帯は1つ、colors等の複数選択も種類ごとに1つと数える。
func (c Criteria) ActiveFilterCount() int {
	n := 0
	if c.Category != "" {
		n++
	}
	if strings.TrimSpace(c.Search) != "" {
		n++
	}
	if c.MinPrice > 0 || c.MaxPrice > 0 {
		n++
	}
	if len(c.Colors) > 0 {
		n++
	}
	if len(c.Sizes) > 0 {
		n++
	}
	if len(c.Tags) > 0 {
		n++
	}
	if len(c.Brand) > 0 {
		n++
	}
	return n
}

// Normalize は不正な値をデフォルトに寄せる
func (c Criteria) Normalize() Criteria {
	out := c
	if out.Page < 1 {
		out.Page = DefaultPage
	}
	if out.Limit < 1 {
		out.Limit = DefaultLimit
	}
	if !out.Sort.Valid() {
		out.Sort = SortPopular
	}
	return out
}

// Values はコラボレーターへ送るクエリ文字列を組み立てる。
// デフォルト値のフィールドは省略し、複数選択はカンマ区切り。
// page/limit は常に付ける。
func (c Criteria) Values() url.Values {
	c = c.Normalize()

	q := url.Values{}
	if c.Category != "" {
		q.Set("category", c.Category)
	}
	if strings.TrimSpace(c.Search) != "" {
		q.Set("search", strings.TrimSpace(c.Search))
	}
	if c.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatInt(c.MinPrice, 10))
	}
	if c.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatInt(c.MaxPrice, 10))
	}
	if len(c.Colors) > 0 {
		q.Set("colors", strings.Join(c.Colors, ","))
	}
	if len(c.Sizes) > 0 {
		q.Set("sizes", strings.Join(c.Sizes, ","))
	}
	if len(c.Tags) > 0 {
		q.Set("tags", strings.Join(c.Tags, ","))
	}
	if len(c.Brand) > 0 {
		q.Set("brand", strings.Join(c.Brand, ","))
	}
	q.Set("sortBy", string(c.Sort))
	q.Set("page", strconv.Itoa(c.Page))
	q.Set("limit", strconv.Itoa(c.Limit))
	return q
}

func cloneTokens(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
