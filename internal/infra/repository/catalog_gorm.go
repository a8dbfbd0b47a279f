package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/catalog"
	"app/internal/domain/model"
	"app/internal/filter"

	"gorm.io/gorm"
)

// CatalogGormRepository はローカルDBを商品一覧コラボレーターとして使う
// catalog.Querier 実装。オフライン閲覧・開発用。
type CatalogGormRepository struct {
	db *gorm.DB
}

// DI
func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// Search は公開商品のみを、条件・ソート・ページング付きで返す。
// 絞り込みの意味論は REST API 側（infra/api）と揃える。
func (r *CatalogGormRepository) Search(ctx context.Context, c filter.Criteria) (catalog.Result, error) {
	c = c.Normalize()

	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// 公開（is_active=true）のものだけ
	tx = tx.Where("is_active = ?", true)

	if c.Category != "" {
		tx = tx.Where("category = ?", c.Category)
	}

	// search は name / description を対象
	if q := strings.TrimSpace(c.Search); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	// 価格帯
	if c.MinPrice > 0 {
		tx = tx.Where("price >= ?", c.MinPrice)
	}
	if c.MaxPrice > 0 {
		tx = tx.Where("price <= ?", c.MaxPrice)
	}

	// 複数選択（色・サイズ・ブランド）
	if len(c.Colors) > 0 {
		tx = tx.Where("color IN ?", c.Colors)
	}
	if len(c.Sizes) > 0 {
		tx = tx.Where("size IN ?", c.Sizes)
	}
	if len(c.Brand) > 0 {
		tx = tx.Where("brand IN ?", c.Brand)
	}

	// tags はカンマ区切りの文字列。いずれかを含めばヒット。
	if len(c.Tags) > 0 {
		cond := r.db.Where("tags LIKE ?", "%"+c.Tags[0]+"%")
		for _, t := range c.Tags[1:] {
			cond = cond.Or("tags LIKE ?", "%"+t+"%")
		}
		tx = tx.Where(cond)
	}

	// total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return catalog.Result{}, err
	}

	// sort
	switch c.Sort {
	case filter.SortPriceAsc:
		tx = tx.Order("price asc").Order("id asc")
	case filter.SortPriceDesc:
		tx = tx.Order("price desc").Order("id desc")
	case filter.SortNewest:
		tx = tx.Order("created_at desc").Order("id desc")
	default: // popular
		tx = tx.Order("sold_count desc").Order("id desc")
	}

	offset := (c.Page - 1) * c.Limit
	if err := tx.Offset(offset).Limit(c.Limit).Find(&products).Error; err != nil {
		return catalog.Result{}, err
	}

	res := catalog.Result{
		Items:      products,
		Pagination: catalog.NewPagination(c.Page, c.Limit, total),
	}
	return res.Normalize(), nil
}

// FindByID は公開中の商品を1件返す。非公開・削除済みは見えない。
func (r *CatalogGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, catalog.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	if !p.IsActive {
		return model.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

// Seed は開発用の初期データを投入する（既存データがあれば何もしない）
func (r *CatalogGormRepository) Seed(ctx context.Context, products []model.Product) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&products).Error
}
