package service

import (
	"time"

	"github.com/rewear-marketplace-api/internal/models"
)

// Fixed ids for the seeded directory so sessions survive restarts.
const (
	seedJohnID  = "550e8400-e29b-41d4-a716-446655440001"
	seedAdminID = "550e8400-e29b-41d4-a716-446655440002"
	seedJaneID  = "550e8400-e29b-41d4-a716-446655440003"
	seedMikeID  = "550e8400-e29b-41d4-a716-446655440004"
)

// seedAccounts returns the fixed account directory. Passwords are
// plaintext demo values; nothing here is a real credential store.
func seedAccounts() []models.Account {
	return []models.Account{
		{
			ID:       seedJohnID,
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "password123",
			Points:   150,
			JoinDate: "2023-01-15",
			Role:     "user",
		},
		{
			ID:       seedAdminID,
			Name:     "Admin User",
			Email:    "admin@example.com",
			Password: "admin123",
			Points:   500,
			JoinDate: "2022-12-01",
			Role:     "admin",
		},
	}
}

// seedItems returns the demo catalog used when the item collection is
// missing or unreadable.
func seedItems() []models.Item {
	return []models.Item{
		{
			ID:             "a1f0c6e2-8b4d-4f3a-9c1e-000000000001",
			Title:          "Vintage Denim Jacket",
			Description:    "Classic blue denim jacket in excellent condition. Perfect for casual outings.",
			Category:       "outerwear",
			Size:           "M",
			Condition:      "Good",
			Type:           models.ItemTypeBoth,
			PointsRequired: 25,
			Images:         []string{"https://images.unsplash.com/photo-1551698618-1dfe5d97d256?w=400"},
			Tags:           []string{"vintage", "casual", "denim"},
			Location:       "New York, NY",
			OwnerID:        seedJohnID,
			OwnerName:      "John Doe",
			OwnerJoinDate:  "2023-01-15",
			Status:         models.ItemStatusAvailable,
			Featured:       true,
			CreatedAt:      time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:             "a1f0c6e2-8b4d-4f3a-9c1e-000000000002",
			Title:          "Floral Summer Dress",
			Description:    "Beautiful floral print dress perfect for summer occasions.",
			Category:       "dresses",
			Size:           "S",
			Condition:      "Like New",
			Type:           models.ItemTypeSwap,
			PointsRequired: 20,
			Images:         []string{"https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?w=400"},
			Tags:           []string{"floral", "summer", "casual"},
			Location:       "Los Angeles, CA",
			OwnerID:        seedJaneID,
			OwnerName:      "Jane Smith",
			OwnerJoinDate:  "2023-02-20",
			Status:         models.ItemStatusAvailable,
			Featured:       true,
			CreatedAt:      time.Date(2024, 1, 20, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:             "a1f0c6e2-8b4d-4f3a-9c1e-000000000003",
			Title:          "Black Leather Boots",
			Description:    "Stylish black leather ankle boots, barely worn.",
			Category:       "shoes",
			Size:           "8",
			Condition:      "Like New",
			Type:           models.ItemTypePoints,
			PointsRequired: 30,
			Images:         []string{"https://images.unsplash.com/photo-1544966503-7cc5ac882d5f?w=400"},
			Tags:           []string{"leather", "boots", "formal"},
			Location:       "Chicago, IL",
			OwnerID:        seedJohnID,
			OwnerName:      "John Doe",
			OwnerJoinDate:  "2023-01-15",
			Status:         models.ItemStatusAvailable,
			Featured:       false,
			CreatedAt:      time.Date(2024, 1, 25, 9, 15, 0, 0, time.UTC),
		},
		{
			ID:             "a1f0c6e2-8b4d-4f3a-9c1e-000000000004",
			Title:          "Cozy Knit Sweater",
			Description:    "Warm and comfortable knit sweater in cream color.",
			Category:       "tops",
			Size:           "L",
			Condition:      "Good",
			Type:           models.ItemTypeBoth,
			PointsRequired: 18,
			Images:         []string{"https://images.unsplash.com/photo-1434389677669-e08b4cac3105?w=400"},
			Tags:           []string{"knit", "cozy", "winter"},
			Location:       "Seattle, WA",
			OwnerID:        seedMikeID,
			OwnerName:      "Mike Johnson",
			OwnerJoinDate:  "2023-03-10",
			Status:         models.ItemStatusAvailable,
			Featured:       true,
			CreatedAt:      time.Date(2024, 2, 1, 16, 45, 0, 0, time.UTC),
		},
	}
}
