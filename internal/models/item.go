package models

import (
	"time"
)

// Item statuses. Transitions are one-directional per workflow:
// available -> pending (swap request), available -> redeemed (redemption),
// pending_review -> available|rejected (moderation).
const (
	ItemStatusAvailable     = "available"
	ItemStatusPending       = "pending"
	ItemStatusRedeemed      = "redeemed"
	ItemStatusRejected      = "rejected"
	ItemStatusPendingReview = "pending_review"
)

// Exchange types
const (
	ItemTypeSwap   = "swap"
	ItemTypePoints = "points"
	ItemTypeBoth   = "both"
)

// ValidCategories defines allowed item categories
var ValidCategories = map[string]bool{
	"tops":        true,
	"bottoms":     true,
	"dresses":     true,
	"outerwear":   true,
	"accessories": true,
	"shoes":       true,
}

// ValidConditions defines allowed item conditions
var ValidConditions = map[string]bool{
	"Like New": true,
	"Good":     true,
	"Fair":     true,
	"Poor":     true,
}

// ValidItemTypes defines allowed exchange types
var ValidItemTypes = map[string]bool{
	ItemTypeSwap:   true,
	ItemTypePoints: true,
	ItemTypeBoth:   true,
}

// ValidItemStatuses defines allowed item statuses
var ValidItemStatuses = map[string]bool{
	ItemStatusAvailable:     true,
	ItemStatusPending:       true,
	ItemStatusRedeemed:      true,
	ItemStatusRejected:      true,
	ItemStatusPendingReview: true,
}

// Item represents a listed garment. Owner name and join date are
// denormalized snapshots taken at creation time; they are not
// re-validated against the directory afterwards.
type Item struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Size           string    `json:"size"`
	Condition      string    `json:"condition"`
	Type           string    `json:"type"`
	PointsRequired int       `json:"pointsRequired"`
	Images         []string  `json:"images"`
	Tags           []string  `json:"tags"`
	Location       string    `json:"location"`
	OwnerID        string    `json:"userId"`
	OwnerName      string    `json:"ownerName"`
	OwnerJoinDate  string    `json:"ownerJoinDate"`
	Status         string    `json:"status"`
	Featured       bool      `json:"featured"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ItemUpdate holds the fields that may be merged into an existing item.
// Nil fields are left untouched.
type ItemUpdate struct {
	Title          *string   `json:"title,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Category       *string   `json:"category,omitempty"`
	Size           *string   `json:"size,omitempty"`
	Condition      *string   `json:"condition,omitempty"`
	Type           *string   `json:"type,omitempty"`
	PointsRequired *int      `json:"pointsRequired,omitempty"`
	Images         *[]string `json:"images,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
	Location       *string   `json:"location,omitempty"`
	Status         *string   `json:"status,omitempty"`
	Featured       *bool     `json:"featured,omitempty"`
}

// ItemFilter narrows catalog listings. Zero values mean "no constraint".
type ItemFilter struct {
	Search   string // matches title, description or tags, case-insensitive
	Category string
	Status   string
	OwnerID  string
	Featured bool   // only featured items
	Sort     string // "newest" or "oldest"
	Limit    int
}
