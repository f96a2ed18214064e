package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/repository"
	"github.com/Wesley-SdS/modern-ecommerce/internal/utils"
)

type CreateProductInput struct {
	Title       string         `json:"title" binding:"required,max=200"`
	Slug        string         `json:"slug" binding:"omitempty,max=200"`
	Description string         `json:"description" binding:"required"`
	PriceCents  int64          `json:"priceCents" binding:"required,gt=0"`
	Currency    string         `json:"currency" binding:"omitempty,len=3"`
	SKU         string         `json:"sku" binding:"required,max=50"`
	Stock       int            `json:"stock" binding:"gte=0"`
	CategoryID  *string        `json:"categoryId"`
	Images      []string       `json:"images"`
	Metadata    map[string]any `json:"metadata"`
}

// UpdateProductInput is a partial update; nil fields are left alone. Stock
// only changes through AdjustStock so every change is recorded.
type UpdateProductInput struct {
	Title       *string        `json:"title" binding:"omitempty,min=1,max=200"`
	Slug        *string        `json:"slug" binding:"omitempty,min=1,max=200"`
	Description *string        `json:"description" binding:"omitempty,min=1"`
	PriceCents  *int64         `json:"priceCents" binding:"omitempty,gt=0"`
	SKU         *string        `json:"sku" binding:"omitempty,min=1,max=50"`
	CategoryID  *string        `json:"categoryId"`
	Images      []string       `json:"images"`
	Metadata    map[string]any `json:"metadata"`
}

type AdjustStockInput struct {
	Quantity int    `json:"quantity" binding:"required,ne=0"`
	Note     string `json:"note"`
}

type ProductQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string // slug or id
}

// ProductView is a product as the storefront shows it.
type ProductView struct {
	models.Product
	StockStatus utils.StockStatus `json:"stockStatus"`
}

func NewProductView(p models.Product) ProductView {
	return ProductView{Product: p, StockStatus: utils.GetStockStatus(p.Stock)}
}

type ProductList struct {
	Data       []ProductView         `json:"data"`
	Pagination repository.Pagination `json:"pagination"`
}

type ProductService struct {
	db         *gorm.DB
	products   *repository.ProductRepository
	categories *repository.CategoryRepository
	inventory  *repository.InventoryRepository
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		db:         db,
		products:   repository.NewProductRepository(db),
		categories: repository.NewCategoryRepository(db),
		inventory:  repository.NewInventoryRepository(db),
	}
}

func (s *ProductService) ListProducts(ctx context.Context, q ProductQuery) (*ProductList, error) {
	page := repository.NewPage(q.Page, q.Limit, repository.DefaultLimit)
	filter := repository.ProductFilter{Search: q.Search, Page: page}

	if q.Category != "" {
		ids, err := s.categoryTree(ctx, q.Category)
		if err != nil {
			return nil, err
		}
		filter.CategoryIDs = ids
	}

	products, total, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return &ProductList{Data: views, Pagination: repository.NewPagination(page, total)}, nil
}

// categoryTree resolves a category by slug or id and returns it with all of
// its descendants. An unknown category yields an empty, non-nil list.
func (s *ProductService) categoryTree(ctx context.Context, slugOrID string) ([]string, error) {
	cat, err := s.categories.FindBySlug(ctx, slugOrID)
	if apperr.Is(err, apperr.KindNotFound) {
		cat, err = s.categories.FindByID(ctx, slugOrID)
	}
	if apperr.Is(err, apperr.KindNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	ids, err := utils.GetAllCategoryIDs(ctx, s.db, cat.ID)
	if err != nil {
		return nil, apperr.Wrap(err, "category tree")
	}
	return ids, nil
}

// GetProduct looks the product up by id first, then by slug.
func (s *ProductService) GetProduct(ctx context.Context, idOrSlug string) (*ProductView, error) {
	p, err := s.products.FindByID(ctx, idOrSlug)
	if apperr.Is(err, apperr.KindNotFound) {
		p, err = s.products.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}
	v := NewProductView(*p)
	return &v, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = utils.GenerateSlug(in.Title)
	}
	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = "BRL"
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}

	product := models.Product{
		Title:       in.Title,
		Slug:        slug,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Currency:    currency,
		SKU:         in.SKU,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		Images:      images,
		Metadata:    in.Metadata,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.products.WithTx(tx).Create(ctx, &product); err != nil {
			return err
		}
		if product.Stock > 0 {
			return s.inventory.WithTx(tx).CreateMovement(ctx, &models.InventoryMovement{
				ProductID: product.ID,
				Type:      models.MovementAdd,
				Quantity:  product.Stock,
				Note:      "Initial stock",
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.products.FindByID(ctx, product.ID)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var (
		patch   models.Product
		columns []string
	)
	if in.Title != nil {
		patch.Title = *in.Title
		columns = append(columns, "title")
	}
	if in.Slug != nil {
		patch.Slug = *in.Slug
		columns = append(columns, "slug")
	}
	if in.Description != nil {
		patch.Description = *in.Description
		columns = append(columns, "description")
	}
	if in.PriceCents != nil {
		patch.PriceCents = *in.PriceCents
		columns = append(columns, "price_cents")
	}
	if in.SKU != nil {
		patch.SKU = *in.SKU
		columns = append(columns, "sku")
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			if err := s.checkCategory(ctx, in.CategoryID); err != nil {
				return nil, err
			}
			patch.CategoryID = in.CategoryID
		}
		// an empty id detaches the product from its category
		columns = append(columns, "category_id")
	}
	if in.Images != nil {
		patch.Images = in.Images
		columns = append(columns, "images")
	}
	if in.Metadata != nil {
		patch.Metadata = in.Metadata
		columns = append(columns, "metadata")
	}

	if len(columns) == 0 {
		return s.products.FindByID(ctx, id)
	}
	return s.products.Update(ctx, id, &patch, columns...)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// AdjustStock applies a signed stock change and records an ADJUST movement.
// Changes that would leave the stock negative are rejected.
func (s *ProductService) AdjustStock(ctx context.Context, id string, in AdjustStockInput) (*models.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	note := in.Note
	if note == "" {
		note = "Manual adjustment"
	}

	var product *models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.products.WithTx(tx).IncrementStock(ctx, id, in.Quantity, false)
		if err != nil {
			return err
		}
		product = p
		return s.inventory.WithTx(tx).CreateMovement(ctx, &models.InventoryMovement{
			ProductID: id,
			Type:      models.MovementAdjust,
			Quantity:  in.Quantity,
			Note:      note,
		})
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// AveragePrice is the mean price, in cents, of the products filed under a
// category or any of its descendants.
func (s *ProductService) AveragePrice(ctx context.Context, category string) (float64, error) {
	if category == "" {
		return 0, apperr.Validation("category is required", nil)
	}
	cat, err := s.categories.FindBySlug(ctx, category)
	if apperr.Is(err, apperr.KindNotFound) {
		cat, err = s.categories.FindByID(ctx, category)
	}
	if err != nil {
		return 0, err
	}

	ids, err := utils.GetAllCategoryIDs(ctx, s.db, cat.ID)
	if err != nil {
		return 0, apperr.Wrap(err, "category tree")
	}
	return s.products.AveragePrice(ctx, ids)
}

func (s *ProductService) checkCategory(ctx context.Context, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	if _, err := s.categories.FindByID(ctx, *id); err != nil {
		return err
	}
	return nil
}
