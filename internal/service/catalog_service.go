package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rewear-marketplace-api/internal/config"
	"github.com/rewear-marketplace-api/internal/models"
	"github.com/rewear-marketplace-api/internal/storage"
	"github.com/rs/zerolog"
)

// catalogService is the concrete implementation of CatalogService. It
// owns both collections and persists each one as a whole record after
// every mutation.
type catalogService struct {
	store      storage.Store
	itemsKey   string
	swapsKey   string
	moderation bool
	log        zerolog.Logger

	mu    sync.RWMutex
	items []models.Item
	swaps []models.SwapRequest

	notifier
}

// newCatalogService creates the catalog store and hydrates both
// collections. A missing or unreadable item record is replaced by the
// demo catalog; a missing or unreadable swap record starts empty and is
// not reseeded.
func newCatalogService(ctx context.Context, store storage.Store, cfg *config.Config, log zerolog.Logger) (*catalogService, error) {
	s := &catalogService{
		store:      store,
		itemsKey:   cfg.Storage.KeyPrefix + "items",
		swapsKey:   cfg.Storage.KeyPrefix + "swaps",
		moderation: cfg.Catalog.Moderation,
		log:        log.With().Str("component", "catalog").Logger(),
	}

	if err := s.hydrateItems(ctx, cfg.Catalog.SeedDemoData); err != nil {
		return nil, err
	}
	s.hydrateSwaps(ctx)

	s.log.Info().
		Int("items", len(s.items)).
		Int("swaps", len(s.swaps)).
		Msg("Catalog hydrated")
	return s, nil
}

func (s *catalogService) hydrateItems(ctx context.Context, seed bool) error {
	value, err := s.store.Get(ctx, s.itemsKey)
	if err == nil {
		items, decodeErr := models.DecodeItems(value)
		if decodeErr == nil {
			s.items = items
			return nil
		}
		s.log.Warn().Err(decodeErr).Msg("Discarding corrupt items record")
	} else if err != storage.ErrKeyNotFound {
		s.log.Warn().Err(err).Msg("Failed to read items record")
	}

	if seed {
		s.items = seedItems()
	} else {
		s.items = []models.Item{}
	}
	return s.persistItems(ctx)
}

func (s *catalogService) hydrateSwaps(ctx context.Context) {
	value, err := s.store.Get(ctx, s.swapsKey)
	if err != nil {
		if err != storage.ErrKeyNotFound {
			s.log.Warn().Err(err).Msg("Failed to read swaps record")
		}
		s.swaps = []models.SwapRequest{}
		return
	}

	swaps, err := models.DecodeSwaps(value)
	if err != nil {
		s.log.Warn().Err(err).Msg("Discarding corrupt swaps record")
		s.swaps = []models.SwapRequest{}
		return
	}
	s.swaps = swaps
}

// Items returns a copy of the item collection in insertion order.
func (s *catalogService) Items() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.Item, len(s.items))
	copy(items, s.items)
	return items
}

// Swaps returns a copy of the swap-request collection in insertion order.
func (s *catalogService) Swaps() []models.SwapRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	swaps := make([]models.SwapRequest, len(s.swaps))
	copy(swaps, s.swaps)
	return swaps
}

// GetItem looks up an item by id.
func (s *catalogService) GetItem(id string) (*models.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(id); idx >= 0 {
		item := s.items[idx]
		return &item, true
	}
	return nil, false
}

// ListItems filters and sorts the item collection.
func (s *catalogService) ListItems(filter models.ItemFilter) []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.Item, 0, len(s.items))
	search := strings.ToLower(filter.Search)
	for _, item := range s.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.OwnerID != "" && item.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Featured && !item.Featured {
			continue
		}
		if search != "" && !matchesSearch(&item, search) {
			continue
		}
		items = append(items, item)
	}

	switch filter.Sort {
	case "newest":
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	case "oldest":
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	}

	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items
}

func matchesSearch(item *models.Item, search string) bool {
	if strings.Contains(strings.ToLower(item.Title), search) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Description), search) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

// FeaturedItems returns up to limit featured items.
func (s *catalogService) FeaturedItems(limit int) []models.Item {
	return s.ListItems(models.ItemFilter{Featured: true, Limit: limit})
}

// SwapsForUser returns swap requests where the account is the requester
// or the item owner.
func (s *catalogService) SwapsForUser(accountID string) []models.SwapRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	swaps := make([]models.SwapRequest, 0)
	for _, swap := range s.swaps {
		if swap.RequesterID == accountID || swap.OwnerID == accountID {
			swaps = append(swaps, swap)
		}
	}
	return swaps
}

// AddItem assigns a new id and creation timestamp, appends the item to
// the collection and persists it. New items start available, or
// pending_review when moderation is enabled.
func (s *catalogService) AddItem(ctx context.Context, item models.Item) (*models.Item, error) {
	changed := false
	defer func() {
		if changed {
			s.notify()
		}
	}()
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = uuid.New().String()
	item.CreatedAt = time.Now()
	if s.moderation {
		item.Status = models.ItemStatusPendingReview
	} else {
		item.Status = models.ItemStatusAvailable
	}

	s.items = append(s.items, item)
	if err := s.persistItems(ctx); err != nil {
		s.items = s.items[:len(s.items)-1]
		return nil, err
	}

	s.log.Info().Str("item_id", item.ID).Str("status", item.Status).Msg("Item listed")
	changed = true
	return &item, nil
}

// UpdateItem shallow-merges the given fields into the item with the
// matching id and persists the collection. A missing id is a silent
// no-op.
func (s *catalogService) UpdateItem(ctx context.Context, id string, upd models.ItemUpdate) error {
	changed := false
	defer func() {
		if changed {
			s.notify()
		}
	}()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	prev := s.items[idx]
	mergeItem(&s.items[idx], upd)
	if err := s.persistItems(ctx); err != nil {
		s.items[idx] = prev
		return err
	}
	changed = true
	return nil
}

func mergeItem(item *models.Item, upd models.ItemUpdate) {
	if upd.Title != nil {
		item.Title = *upd.Title
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Category != nil {
		item.Category = *upd.Category
	}
	if upd.Size != nil {
		item.Size = *upd.Size
	}
	if upd.Condition != nil {
		item.Condition = *upd.Condition
	}
	if upd.Type != nil {
		item.Type = *upd.Type
	}
	if upd.PointsRequired != nil {
		item.PointsRequired = *upd.PointsRequired
	}
	if upd.Images != nil {
		item.Images = *upd.Images
	}
	if upd.Tags != nil {
		item.Tags = *upd.Tags
	}
	if upd.Location != nil {
		item.Location = *upd.Location
	}
	if upd.Status != nil {
		item.Status = *upd.Status
	}
	if upd.Featured != nil {
		item.Featured = *upd.Featured
	}
}

// DeleteItem removes the item with the matching id and persists the
// collection. A missing id is a silent no-op.
func (s *catalogService) DeleteItem(ctx context.Context, id string) error {
	changed := false
	defer func() {
		if changed {
			s.notify()
		}
	}()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}

	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	if err := s.persistItems(ctx); err != nil {
		s.items = append(s.items[:idx], append([]models.Item{removed}, s.items[idx:]...)...)
		return err
	}

	s.log.Info().Str("item_id", id).Msg("Item deleted")
	changed = true
	return nil
}

// RequestSwap creates a pending swap request for an available item and,
// as a side effect, moves the item to pending. The two writes land on
// separate keys; if the second fails the first is compensated so the
// keys stay consistent.
func (s *catalogService) RequestSwap(ctx context.Context, itemID string, requester *models.Session, message string) (*models.SwapRequest, error) {
	changed := false
	defer func() {
		if changed {
			s.notify()
		}
	}()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(itemID)
	if idx < 0 {
		return nil, ErrItemNotFound
	}
	item := &s.items[idx]
	if item.Status != models.ItemStatusAvailable {
		return nil, ErrItemUnavailable
	}

	swap := models.SwapRequest{
		ID:            uuid.New().String(),
		ItemID:        item.ID,
		ItemTitle:     item.Title,
		RequesterID:   requester.ID,
		RequesterName: requester.Name,
		OwnerID:       item.OwnerID,
		OwnerName:     item.OwnerName,
		Message:       message,
		Status:        models.SwapStatusPending,
		CreatedAt:     time.Now(),
	}

	s.swaps = append(s.swaps, swap)
	if err := s.persistSwaps(ctx); err != nil {
		s.swaps = s.swaps[:len(s.swaps)-1]
		return nil, err
	}

	prevStatus := item.Status
	item.Status = models.ItemStatusPending
	if err := s.persistItems(ctx); err != nil {
		// Compensate the first write so the request does not outlive
		// the failed status change.
		item.Status = prevStatus
		s.swaps = s.swaps[:len(s.swaps)-1]
		if compErr := s.persistSwaps(ctx); compErr != nil {
			s.log.Error().Err(compErr).Msg("Failed to compensate swap record after item persist failure")
		}
		return nil, err
	}

	s.log.Info().
		Str("swap_id", swap.ID).
		Str("item_id", item.ID).
		Str("requester_id", swap.RequesterID).
		Msg("Swap requested")
	changed = true
	return &swap, nil
}

// RedeemWithPoints marks an item as redeemed. The store does not debit
// the redeemer or credit the owner; balance gating happens at the API
// boundary.
func (s *catalogService) RedeemWithPoints(ctx context.Context, itemID string) error {
	changed := false
	defer func() {
		if changed {
			s.notify()
		}
	}()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}

	prevStatus := s.items[idx].Status
	s.items[idx].Status = models.ItemStatusRedeemed
	if err := s.persistItems(ctx); err != nil {
		s.items[idx].Status = prevStatus
		return err
	}

	s.log.Info().Str("item_id", itemID).Msg("Item redeemed")
	changed = true
	return nil
}

// ApproveItem releases an item into the catalog. This is a plain status
// set reusing the update path; there is no separate audit trail.
func (s *catalogService) ApproveItem(ctx context.Context, id string) error {
	status := models.ItemStatusAvailable
	return s.UpdateItem(ctx, id, models.ItemUpdate{Status: &status})
}

// RejectItem marks an item as rejected.
func (s *catalogService) RejectItem(ctx context.Context, id string) error {
	status := models.ItemStatusRejected
	return s.UpdateItem(ctx, id, models.ItemUpdate{Status: &status})
}

// Subscribe registers a listener invoked after each committed mutation.
func (s *catalogService) Subscribe(fn func()) {
	s.subscribe(fn)
}

// indexOf returns the position of the item with the given id, or -1.
// Callers must hold the lock.
func (s *catalogService) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *catalogService) persistItems(ctx context.Context) error {
	value, err := models.EncodeItems(s.items)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.itemsKey, value)
}

func (s *catalogService) persistSwaps(ctx context.Context) error {
	value, err := models.EncodeSwaps(s.swaps)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.swapsKey, value)
}

// Compile-time check that catalogService implements CatalogService
var _ CatalogService = (*catalogService)(nil)
