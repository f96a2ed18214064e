// Package seed loads demo fixtures: an admin, a customer, the base
// categories, a handful of products and the homepage banners. Running it
// twice leaves the database as after one run.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/service"
)

//go:embed seed.yaml
var defaultFixtures []byte

type UserFixture struct {
	Name     string      `yaml:"name"`
	Email    string      `yaml:"email"`
	Password string      `yaml:"password"`
	Role     models.Role `yaml:"role"`
}

type CategoryFixture struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

type ProductFixture struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	Description string   `yaml:"description"`
	PriceCents  int64    `yaml:"priceCents"`
	Currency    string   `yaml:"currency"`
	SKU         string   `yaml:"sku"`
	Stock       int      `yaml:"stock"`
	Category    string   `yaml:"category"` // slug
	Images      []string `yaml:"images"`
}

type BannerFixture struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Subtitle  string `yaml:"subtitle"`
	ImageURL  string `yaml:"imageUrl"`
	TargetURL string `yaml:"targetUrl"`
	Position  int    `yaml:"position"`
	Active    bool   `yaml:"active"`
}

type Fixtures struct {
	Users      []UserFixture     `yaml:"users"`
	Categories []CategoryFixture `yaml:"categories"`
	Products   []ProductFixture  `yaml:"products"`
	Banners    []BannerFixture   `yaml:"banners"`
}

func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// Default returns the fixtures shipped with the binary.
func Default() *Fixtures {
	f, err := Parse(defaultFixtures)
	if err != nil {
		panic(err)
	}
	return f
}

// Run upserts f in one transaction. Existing users and categories are left
// untouched; products and banners are refreshed from the fixtures.
func Run(ctx context.Context, db *gorm.DB, f *Fixtures) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range f.Users {
			if err := seedUser(tx, u); err != nil {
				return err
			}
		}

		categoryIDs := make(map[string]string, len(f.Categories))
		for _, c := range f.Categories {
			id, err := seedCategory(tx, c)
			if err != nil {
				return err
			}
			categoryIDs[c.Slug] = id
		}

		for _, p := range f.Products {
			catID, ok := categoryIDs[p.Category]
			if !ok {
				log.Warn().Str("product", p.Slug).Str("category", p.Category).Msg("skipping product with unknown category")
				continue
			}
			if err := seedProduct(tx, p, catID); err != nil {
				return err
			}
		}

		for _, b := range f.Banners {
			banner := models.Banner{
				Base:      models.Base{ID: b.ID},
				Title:     b.Title,
				Subtitle:  b.Subtitle,
				ImageURL:  b.ImageURL,
				TargetURL: b.TargetURL,
				Position:  b.Position,
				Active:    b.Active,
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&banner).Error; err != nil {
				return fmt.Errorf("seed banner %s: %w", b.ID, err)
			}
		}

		log.Info().
			Int("users", len(f.Users)).
			Int("categories", len(f.Categories)).
			Int("products", len(f.Products)).
			Int("banners", len(f.Banners)).
			Msg("seed complete")
		return nil
	})
}

func seedUser(tx *gorm.DB, u UserFixture) error {
	var n int64
	if err := tx.Model(&models.User{}).Where("email = ?", u.Email).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := service.HashPassword(u.Password)
	if err != nil {
		return err
	}
	role := u.Role
	if role == "" {
		role = models.RoleCustomer
	}
	user := models.User{Name: u.Name, Email: u.Email, PasswordHash: hash, Role: role}
	if err := tx.Create(&user).Error; err != nil {
		return fmt.Errorf("seed user %s: %w", u.Email, err)
	}
	return nil
}

func seedCategory(tx *gorm.DB, c CategoryFixture) (string, error) {
	cat := models.Category{Name: c.Name, Slug: c.Slug}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&cat).Error
	if err != nil {
		return "", fmt.Errorf("seed category %s: %w", c.Slug, err)
	}

	var existing models.Category
	if err := tx.Where("slug = ?", c.Slug).First(&existing).Error; err != nil {
		return "", fmt.Errorf("load category %s: %w", c.Slug, err)
	}
	return existing.ID, nil
}

func seedProduct(tx *gorm.DB, p ProductFixture, categoryID string) error {
	currency := p.Currency
	if currency == "" {
		currency = "BRL"
	}
	product := models.Product{
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Currency:    currency,
		SKU:         p.SKU,
		Stock:       p.Stock,
		CategoryID:  &categoryID,
		Images:      p.Images,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "price_cents", "sku", "stock", "category_id", "images", "updated_at",
		}),
	}).Create(&product).Error
	if err != nil {
		return fmt.Errorf("seed product %s: %w", p.Slug, err)
	}
	return nil
}
