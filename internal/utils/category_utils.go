package utils

import (
	"context"

	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
)

// GetAllCategoryIDs returns rootID followed by the ids of every descendant
// category, breadth first.
func GetAllCategoryIDs(ctx context.Context, db *gorm.DB, rootID string) ([]string, error) {
	result := []string{rootID}
	queue := []string{rootID}
	seen := map[string]bool{rootID: true}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		var children []models.Category
		if err := db.WithContext(ctx).Where("parent_id = ?", current).Find(&children).Error; err != nil {
			return nil, err
		}

		for _, child := range children {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			result = append(result, child.ID)
			queue = append(queue, child.ID)
		}
	}

	return result, nil
}
