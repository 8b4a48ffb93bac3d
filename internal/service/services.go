package service

import (
	"context"

	"github.com/rewear-marketplace-api/internal/config"
	"github.com/rewear-marketplace-api/internal/models"
	"github.com/rewear-marketplace-api/internal/storage"
	"github.com/rs/zerolog"
)

// SessionService owns the current authenticated identity and the
// account directory
type SessionService interface {
	Current() *models.Session
	Login(ctx context.Context, email, password string) (bool, error)
	Register(ctx context.Context, name, email, password string) (bool, error)
	Logout(ctx context.Context) error
	Update(ctx context.Context, upd models.SessionUpdate) (*models.Session, error)
	GetAccount(accountID string) (*models.Account, bool)
	AccountCount() int
	Subscribe(fn func())
}

// CatalogService owns the item and swap-request collections
type CatalogService interface {
	Items() []models.Item
	Swaps() []models.SwapRequest
	GetItem(id string) (*models.Item, bool)
	ListItems(filter models.ItemFilter) []models.Item
	FeaturedItems(limit int) []models.Item
	SwapsForUser(accountID string) []models.SwapRequest
	AddItem(ctx context.Context, item models.Item) (*models.Item, error)
	UpdateItem(ctx context.Context, id string, upd models.ItemUpdate) error
	DeleteItem(ctx context.Context, id string) error
	RequestSwap(ctx context.Context, itemID string, requester *models.Session, message string) (*models.SwapRequest, error)
	RedeemWithPoints(ctx context.Context, itemID string) error
	ApproveItem(ctx context.Context, id string) error
	RejectItem(ctx context.Context, id string) error
	Subscribe(fn func())
}

// Stats summarizes the marketplace for the admin panel
type Stats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalItems     int `json:"totalItems"`
	ActiveSwaps    int `json:"activeSwaps"`
	PendingReviews int `json:"pendingReviews"`
}

// Services holds all service interfaces
type Services struct {
	Session SessionService
	Catalog CatalogService
}

// NewServices creates both stores and hydrates them from the backing store
func NewServices(ctx context.Context, store storage.Store, cfg *config.Config, log zerolog.Logger) (*Services, error) {
	sessionSvc, err := newSessionService(ctx, store, cfg, log)
	if err != nil {
		return nil, err
	}

	catalogSvc, err := newCatalogService(ctx, store, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Services{
		Session: sessionSvc,
		Catalog: catalogSvc,
	}, nil
}

// ComputeStats builds admin panel statistics from both stores
func ComputeStats(sessions SessionService, catalog CatalogService) Stats {
	stats := Stats{
		TotalUsers: sessions.AccountCount(),
		TotalItems: len(catalog.Items()),
	}
	for _, swap := range catalog.Swaps() {
		if swap.Status == models.SwapStatusPending {
			stats.ActiveSwaps++
		}
	}
	for _, item := range catalog.Items() {
		if item.Status == models.ItemStatusPendingReview {
			stats.PendingReviews++
		}
	}
	return stats
}
