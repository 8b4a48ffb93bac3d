package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rewear-marketplace-api/internal/api"
	"github.com/rewear-marketplace-api/internal/config"
	"github.com/rewear-marketplace-api/internal/models"
	"github.com/rewear-marketplace-api/internal/service"
	"github.com/rewear-marketplace-api/internal/storage"
	"github.com/rs/zerolog"
)

func newTestRouter(t *testing.T) (*gin.Engine, *service.Services) {
	t.Helper()

	cfg := &config.Config{
		Storage: config.StorageConfig{
			Backend:   config.BackendMemory,
			KeyPrefix: "rewear_",
		},
		Catalog: config.CatalogConfig{
			SeedDemoData: true,
		},
	}

	services, err := service.NewServices(context.Background(), storage.NewMemoryStore(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewServices failed: %v", err)
	}

	return api.NewRouter(services, cfg, zerolog.Nop()), services
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

func loginAs(t *testing.T, router *gin.Engine, email, password string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Login as %s failed with status %d: %s", email, w.Code, w.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if decodeBody(t, w)["status"] != "healthy" {
		t.Error("Expected healthy status")
	}
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "john@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["email"] != "john@example.com" {
		t.Errorf("Expected session email, got %v", body["email"])
	}
	if _, leaked := body["password"]; leaked {
		t.Error("Session response must not include a password field")
	}

	w = doJSON(t, router, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    "john@example.com",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for bad credentials, got %d", w.Code)
	}
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/auth/register", gin.H{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "secret99",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["points"] != float64(50) {
		t.Errorf("Expected welcome bonus of 50 points, got %v", body["points"])
	}
	if body["role"] != "user" {
		t.Errorf("Expected role user, got %v", body["role"])
	}

	// Duplicate email conflicts
	w = doJSON(t, router, http.MethodPost, "/v1/auth/register", gin.H{
		"name":     "Imposter",
		"email":    "new@example.com",
		"password": "secret99",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate email, got %d", w.Code)
	}

	// Invalid payloads are rejected before the store sees them
	w = doJSON(t, router, http.MethodPost, "/v1/auth/register", gin.H{
		"name":     "",
		"email":    "not-an-email",
		"password": "x",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid registration, got %d", w.Code)
	}
}

func TestSessionEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	// No session yet
	w := doJSON(t, router, http.MethodGet, "/v1/auth/session", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 before login, got %d", w.Code)
	}

	loginAs(t, router, "john@example.com", "password123")

	w = doJSON(t, router, http.MethodGet, "/v1/auth/session", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 after login, got %d", w.Code)
	}

	// Shallow merge through PATCH
	w = doJSON(t, router, http.MethodPatch, "/v1/auth/session", gin.H{"name": "Johnny"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["name"] != "Johnny" {
		t.Errorf("Expected merged name, got %v", body["name"])
	}
	if body["email"] != "john@example.com" {
		t.Errorf("Untouched fields should survive, got %v", body["email"])
	}

	// Logout clears the session
	w = doJSON(t, router, http.MethodPost, "/v1/auth/logout", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/v1/auth/session", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after logout, got %d", w.Code)
	}
}

func TestListItemsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/v1/items", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if decodeBody(t, w)["count"] != float64(4) {
		t.Errorf("Expected 4 seeded items, got %v", decodeBody(t, w)["count"])
	}

	w = doJSON(t, router, http.MethodGet, "/v1/items?category=shoes", nil)
	if decodeBody(t, w)["count"] != float64(1) {
		t.Error("Expected 1 pair of shoes")
	}

	w = doJSON(t, router, http.MethodGet, "/v1/items?featured=true&limit=2", nil)
	if decodeBody(t, w)["count"] != float64(2) {
		t.Error("Expected featured limit to apply")
	}

	w = doJSON(t, router, http.MethodGet, "/v1/items?search=denim", nil)
	if decodeBody(t, w)["count"] != float64(1) {
		t.Error("Expected search to match the denim jacket")
	}

	w = doJSON(t, router, http.MethodGet, "/v1/items?limit=banana", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a bad limit, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/v1/items?sort=sideways", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a bad sort, got %d", w.Code)
	}
}

func TestItemCRUDEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	// Creation requires a session
	w := doJSON(t, router, http.MethodPost, "/v1/items", gin.H{"title": "Nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without a session, got %d", w.Code)
	}

	loginAs(t, router, "john@example.com", "password123")

	// Invalid listing rejected
	w = doJSON(t, router, http.MethodPost, "/v1/items", gin.H{
		"title":    "",
		"category": "hats",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for an invalid listing, got %d", w.Code)
	}

	// Valid listing created with owner snapshot
	w = doJSON(t, router, http.MethodPost, "/v1/items", gin.H{
		"title":          "Test Jacket",
		"description":    "A jacket for testing",
		"category":       "outerwear",
		"size":           "L",
		"condition":      "Good",
		"type":           "both",
		"pointsRequired": 15,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decodeBody(t, w)
	itemID := created["id"].(string)
	if created["status"] != models.ItemStatusAvailable {
		t.Errorf("New item should be available, got %v", created["status"])
	}
	if created["ownerName"] != "John Doe" {
		t.Errorf("Owner name should be snapshotted, got %v", created["ownerName"])
	}

	// Owner can edit
	w = doJSON(t, router, http.MethodPatch, "/v1/items/"+itemID, gin.H{"title": "Renamed Jacket"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["title"] != "Renamed Jacket" {
		t.Error("Expected merged title")
	}

	// Non-owners may not edit: the floral dress belongs to Jane
	var dressID string
	w = doJSON(t, router, http.MethodGet, "/v1/items?search=floral", nil)
	items := decodeBody(t, w)["items"].([]interface{})
	dressID = items[0].(map[string]interface{})["id"].(string)

	w = doJSON(t, router, http.MethodPatch, "/v1/items/"+dressID, gin.H{"title": "Stolen"})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 editing someone else's item, got %d", w.Code)
	}

	// Owner can delete
	w = doJSON(t, router, http.MethodDelete, "/v1/items/"+itemID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/v1/items/"+itemID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after deletion, got %d", w.Code)
	}
}

func TestSwapEndpoints(t *testing.T) {
	router, services := newTestRouter(t)

	// Sasha registers and requests John's boots
	w := doJSON(t, router, http.MethodPost, "/v1/auth/register", gin.H{
		"name":     "Sasha Swapper",
		"email":    "sasha@example.com",
		"password": "swapswap",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Register failed: %d", w.Code)
	}

	var bootsID, ownID string
	for _, item := range services.Catalog.Items() {
		if item.Title == "Black Leather Boots" {
			bootsID = item.ID
		}
	}

	// Sasha lists something of her own
	w = doJSON(t, router, http.MethodPost, "/v1/items", gin.H{
		"title":       "Sasha's Scarf",
		"description": "A warm scarf",
		"category":    "accessories",
		"size":        "One Size",
		"condition":   "Good",
		"type":        "swap",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("CreateItem failed: %d: %s", w.Code, w.Body.String())
	}
	ownID = decodeBody(t, w)["id"].(string)

	// Own item cannot be swap-requested
	w = doJSON(t, router, http.MethodPost, "/v1/items/"+ownID+"/swap", gin.H{"message": "me!"})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 requesting own item, got %d", w.Code)
	}

	// Requesting John's boots works
	w = doJSON(t, router, http.MethodPost, "/v1/items/"+bootsID+"/swap", gin.H{"message": "hi"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	swap := decodeBody(t, w)
	if swap["status"] != models.SwapStatusPending {
		t.Errorf("Expected pending swap, got %v", swap["status"])
	}

	item, _ := services.Catalog.GetItem(bootsID)
	if item.Status != models.ItemStatusPending {
		t.Errorf("Boots should be pending, got '%s'", item.Status)
	}

	// Second request against the now-pending item conflicts
	w = doJSON(t, router, http.MethodPost, "/v1/items/"+bootsID+"/swap", gin.H{"message": "again"})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for a second request, got %d", w.Code)
	}

	// Missing item
	w = doJSON(t, router, http.MethodPost, "/v1/items/no-such-id/swap", gin.H{"message": "?"})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for a missing item, got %d", w.Code)
	}

	// Sasha sees her swap
	w = doJSON(t, router, http.MethodGet, "/v1/swaps", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if decodeBody(t, w)["count"] != float64(1) {
		t.Errorf("Expected 1 swap for Sasha, got %v", decodeBody(t, w)["count"])
	}
}

func TestRedeemEndpoint(t *testing.T) {
	router, services := newTestRouter(t)

	loginAs(t, router, "john@example.com", "password123")

	// John lists an expensive coat
	w := doJSON(t, router, http.MethodPost, "/v1/items", gin.H{
		"title":          "Couture Coat",
		"description":    "Far too expensive",
		"category":       "outerwear",
		"size":           "M",
		"condition":      "Like New",
		"type":           "points",
		"pointsRequired": 100,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("CreateItem failed: %d", w.Code)
	}
	coatID := decodeBody(t, w)["id"].(string)

	// A fresh account has only the 50-point welcome bonus
	w = doJSON(t, router, http.MethodPost, "/v1/auth/register", gin.H{
		"name":     "Pat Points",
		"email":    "pat@example.com",
		"password": "points99",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Register failed: %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/v1/items/"+coatID+"/redeem", nil)
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("Expected 402 for insufficient points, got %d", w.Code)
	}

	// The 30-point boots are affordable
	var bootsID string
	for _, item := range services.Catalog.Items() {
		if item.Title == "Black Leather Boots" {
			bootsID = item.ID
		}
	}
	w = doJSON(t, router, http.MethodPost, "/v1/items/"+bootsID+"/redeem", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["status"] != models.ItemStatusRedeemed {
		t.Errorf("Boots should be redeemed, got %v", decodeBody(t, w)["status"])
	}
}

func TestAdminEndpoints(t *testing.T) {
	router, services := newTestRouter(t)

	// Regular users are shut out
	loginAs(t, router, "john@example.com", "password123")
	w := doJSON(t, router, http.MethodGet, "/v1/admin/stats", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for a regular user, got %d", w.Code)
	}

	loginAs(t, router, "admin@example.com", "admin123")

	w = doJSON(t, router, http.MethodGet, "/v1/admin/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	stats := decodeBody(t, w)
	if stats["totalItems"] != float64(4) {
		t.Errorf("Expected 4 items in stats, got %v", stats["totalItems"])
	}
	if stats["totalUsers"] != float64(2) {
		t.Errorf("Expected 2 accounts in stats, got %v", stats["totalUsers"])
	}

	itemID := services.Catalog.Items()[0].ID

	// Reject, then approve back into the catalog
	w = doJSON(t, router, http.MethodPost, "/v1/admin/items/"+itemID+"/reject", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if decodeBody(t, w)["status"] != models.ItemStatusRejected {
		t.Error("Item should be rejected")
	}

	w = doJSON(t, router, http.MethodPost, "/v1/admin/items/"+itemID+"/approve", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if decodeBody(t, w)["status"] != models.ItemStatusAvailable {
		t.Error("Item should be available after approval")
	}

	// Admin delete
	w = doJSON(t, router, http.MethodDelete, "/v1/admin/items/"+itemID, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
	if _, ok := services.Catalog.GetItem(itemID); ok {
		t.Error("Item should be gone after admin delete")
	}

	// Missing ids are 404s
	w = doJSON(t, router, http.MethodPost, "/v1/admin/items/no-such-id/approve", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
