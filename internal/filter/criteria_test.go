package filter_test

import (
	"testing"

	"app/internal/filter"

	"github.com/stretchr/testify/assert"
)

func TestCriteria_Default(t *testing.T) {
	c := filter.Default()

	assert.Equal(t, 1, c.Page)
	assert.Equal(t, 12, c.Limit)
	assert.Equal(t, filter.SortPopular, c.Sort)
	assert.False(t, c.HasActiveFilters())
	assert.Equal(t, 0, c.ActiveFilterCount())
}

// =====================
// Apply: pageリセットの不変条件
// =====================

func TestCriteria_Apply_ConstrainingChangeResetsPage(t *testing.T) {
	c := filter.Default()
	page := 5
	c = c.Apply(filter.Patch{Page: &page})
	assert.Equal(t, 5, c.Page)

	cat := "shoes"
	c = c.Apply(filter.Patch{Category: &cat})

	assert.Equal(t, "shoes", c.Category)
	assert.Equal(t, 1, c.Page)
}

func TestCriteria_Apply_EveryConstrainingFieldResetsPage(t *testing.T) {
	min := int64(100)
	max := int64(500)
	search := "coffee"
	colors := []string{"red"}
	sizes := []string{"M"}
	tags := []string{"sale"}
	brand := []string{"acme"}

	patches := map[string]filter.Patch{
		"category": {Category: strPtr("x")},
		"search":   {Search: &search},
		"minPrice": {MinPrice: &min},
		"maxPrice": {MaxPrice: &max},
		"colors":   {Colors: &colors},
		"sizes":    {Sizes: &sizes},
		"tags":     {Tags: &tags},
		"brand":    {Brand: &brand},
	}

	for name, p := range patches {
		c := filter.Default()
		page := 7
		c = c.Apply(filter.Patch{Page: &page})

		c = c.Apply(p)
		assert.Equal(t, 1, c.Page, "patch %s should reset page", name)
	}
}

func TestCriteria_Apply_SortOnlyChangeKeepsPage(t *testing.T) {
	c := filter.Default()
	page := 3
	c = c.Apply(filter.Patch{Page: &page})

	sort := filter.SortPriceAsc
	c = c.Apply(filter.Patch{Sort: &sort})

	assert.Equal(t, filter.SortPriceAsc, c.Sort)
	assert.Equal(t, 3, c.Page)
}

func TestCriteria_Apply_PageOnlyChangeKeepsFilters(t *testing.T) {
	cat := "books"
	c := filter.Default().Apply(filter.Patch{Category: &cat})

	page := 4
	c = c.Apply(filter.Patch{Page: &page})

	assert.Equal(t, 4, c.Page)
	assert.Equal(t, "books", c.Category)
}

func TestCriteria_Apply_ExplicitPageWinsOverReset(t *testing.T) {
	// handleSearch 相当：search と page を同時に渡す
	search := "mug"
	page := 1
	c := filter.Default().Apply(filter.Patch{Search: &search, Page: &page})

	assert.Equal(t, "mug", c.Search)
	assert.Equal(t, 1, c.Page)
}

func TestCriteria_Apply_InvalidSortIgnored(t *testing.T) {
	bad := filter.Sort("cheapest")
	c := filter.Default().Apply(filter.Patch{Sort: &bad})

	assert.Equal(t, filter.SortPopular, c.Sort)
}

func TestCriteria_Apply_DoesNotShareSlices(t *testing.T) {
	colors := []string{"red", "blue"}
	c := filter.Default().Apply(filter.Patch{Colors: &colors})

	colors[0] = "green"
	assert.Equal(t, []string{"red", "blue"}, c.Colors)
}

// =====================
// 有効な絞り込みの数
// =====================

func TestCriteria_ActiveFilterCount(t *testing.T) {
	cat := "shoes"
	colors := []string{"red", "blue"}
	search := ""
	min := int64(0)

	c := filter.Default().Apply(filter.Patch{
		Category: &cat,
		Colors:   &colors,
		Search:   &search,
		MinPrice: &min,
	})

	// category + colors の2つ。空のsearchとmin=0は数えない。
	assert.Equal(t, 2, c.ActiveFilterCount())
	assert.True(t, c.HasActiveFilters())
}

func TestCriteria_ActiveFilterCount_PriceRangeIsOneUnit(t *testing.T) {
	min := int64(100)
	max := int64(900)
	c := filter.Default().Apply(filter.Patch{MinPrice: &min, MaxPrice: &max})

	assert.Equal(t, 1, c.ActiveFilterCount())
}

func TestCriteria_ActiveFilterCount_WhitespaceSearchNotCounted(t *testing.T) {
	search := "   "
	c := filter.Default().Apply(filter.Patch{Search: &search})

	assert.Equal(t, 0, c.ActiveFilterCount())
	assert.False(t, c.HasActiveFilters())
}

// =====================
// クエリ文字列
// =====================

func TestCriteria_Values_DefaultsOmitted(t *testing.T) {
	q := filter.Default().Values()

	assert.Equal(t, "popular", q.Get("sortBy"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "12", q.Get("limit"))

	_, hasCategory := q["category"]
	_, hasSearch := q["search"]
	_, hasMin := q["minPrice"]
	_, hasMax := q["maxPrice"]
	_, hasColors := q["colors"]
	assert.False(t, hasCategory)
	assert.False(t, hasSearch)
	assert.False(t, hasMin)
	assert.False(t, hasMax)
	assert.False(t, hasColors)
}

func TestCriteria_Values_AllFields(t *testing.T) {
	cat := "electronics"
	search := " camera "
	min := int64(1000)
	max := int64(50000)
	colors := []string{"black", "silver"}
	sizes := []string{"S", "M"}
	tags := []string{"sale"}
	brand := []string{"acme", "globex"}
	sort := filter.SortPriceDesc
	page := 2
	limit := 24

	c := filter.Default().Apply(filter.Patch{
		Category: &cat,
		Search:   &search,
		MinPrice: &min,
		MaxPrice: &max,
		Colors:   &colors,
		Sizes:    &sizes,
		Tags:     &tags,
		Brand:    &brand,
		Sort:     &sort,
		Page:     &page,
		Limit:    &limit,
	})
	q := c.Values()

	assert.Equal(t, "electronics", q.Get("category"))
	assert.Equal(t, "camera", q.Get("search")) // trimされる
	assert.Equal(t, "1000", q.Get("minPrice"))
	assert.Equal(t, "50000", q.Get("maxPrice"))
	assert.Equal(t, "black,silver", q.Get("colors"))
	assert.Equal(t, "S,M", q.Get("sizes"))
	assert.Equal(t, "sale", q.Get("tags"))
	assert.Equal(t, "acme,globex", q.Get("brand"))
	assert.Equal(t, "price-desc", q.Get("sortBy"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "24", q.Get("limit"))
}

func TestCriteria_Equal(t *testing.T) {
	colors := []string{"red"}
	a := filter.Default().Apply(filter.Patch{Colors: &colors})
	b := filter.Default().Apply(filter.Patch{Colors: &colors})

	assert.True(t, a.Equal(b))

	page := 2
	b = b.Apply(filter.Patch{Page: &page})
	assert.False(t, a.Equal(b))
}

func TestCriteria_Normalize(t *testing.T) {
	c := filter.Criteria{Page: 0, Limit: -1, Sort: "???"}
	n := c.Normalize()

	assert.Equal(t, 1, n.Page)
	assert.Equal(t, 12, n.Limit)
	assert.Equal(t, filter.SortPopular, n.Sort)
}

func strPtr(s string) *string { return &s }
