package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
)

type ProductFilter struct {
	Search      string
	CategoryIDs []string
	Page        Page
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

func (r *ProductRepository) FindAll(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.CategoryIDs != nil {
		q = q.Where("category_id IN ?", f.CategoryIDs)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "product")
	}

	var products []models.Product
	err := q.Preload("Category").
		Order("created_at DESC").
		Scopes(paginate(f.Page)).
		Find(&products).Error
	if err != nil {
		return nil, 0, translate(err, "product")
	}
	return products, total, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err, "product")
	}
	return &p, nil
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&p, "slug = ?", slug).Error; err != nil {
		return nil, translate(err, "product")
	}
	return &p, nil
}

// FindByIDs returns the products found, keyed by id. Missing ids are absent
// from the map.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, translate(err, "product")
	}
	out := make(map[string]models.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return translate(err, "product")
	}
	return nil
}

// Update writes the named columns from p to the product with the given id and
// returns the fresh row. Going through the struct keeps the JSON serializer on
// images and metadata.
func (r *ProductRepository) Update(ctx context.Context, id string, p *models.Product, columns ...string) (*models.Product, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{Base: models.Base{ID: id}}).
		Select(columns).
		Updates(p)
	if res.Error != nil {
		return nil, translate(res.Error, "product")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("product")
	}
	return r.FindByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "product")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("product")
	}
	return nil
}

// IncrementStock adds delta (possibly negative) to the product's stock. When
// allowNegative is false the update only applies if the result stays >= 0.
func (r *ProductRepository) IncrementStock(ctx context.Context, id string, delta int, allowNegative bool) (*models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id)
	if !allowNegative {
		q = q.Where("stock + ? >= 0", delta)
	}

	res := q.UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return nil, translate(res.Error, "product")
	}

	if res.RowsAffected == 0 {
		p, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, apperr.Conflictf("insufficient stock for %s: have %d, change %d", p.Title, p.Stock, delta)
	}
	return r.FindByID(ctx, id)
}

// AveragePrice is the mean price in cents over products in categoryIDs.
func (r *ProductRepository) AveragePrice(ctx context.Context, categoryIDs []string) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_id IN ?", categoryIDs).
		Select("COALESCE(AVG(price_cents), 0)").
		Scan(&avg).Error
	return avg, translate(err, "product")
}

func (r *ProductRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("stock < ?", threshold).Count(&n).Error
	return n, translate(err, "product")
}
