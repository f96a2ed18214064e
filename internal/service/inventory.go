package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/repository"
)

const (
	movementPageSize = 50
	historyLimit     = 50
)

type MovementList struct {
	Movements  []models.InventoryMovement `json:"movements"`
	Pagination repository.Pagination      `json:"pagination"`
}

type InventoryService struct {
	inventory *repository.InventoryRepository
	products  *repository.ProductRepository
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{
		inventory: repository.NewInventoryRepository(db),
		products:  repository.NewProductRepository(db),
	}
}

func (s *InventoryService) ListMovements(ctx context.Context, page, limit int) (*MovementList, error) {
	p := repository.NewPage(page, limit, movementPageSize)
	ms, total, err := s.inventory.FindAll(ctx, p)
	if err != nil {
		return nil, err
	}
	if ms == nil {
		ms = []models.InventoryMovement{}
	}
	return &MovementList{Movements: ms, Pagination: repository.NewPagination(p, total)}, nil
}

// ProductHistory returns the latest movements of one product.
func (s *InventoryService) ProductHistory(ctx context.Context, productID string) ([]models.InventoryMovement, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	ms, err := s.inventory.FindByProduct(ctx, productID, historyLimit)
	if err != nil {
		return nil, err
	}
	if ms == nil {
		ms = []models.InventoryMovement{}
	}
	return ms, nil
}
