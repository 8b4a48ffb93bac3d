package models

import (
	"time"
)

// Swap request statuses. Only "pending" is ever produced by the request
// workflow; the remaining values exist in the schema but no operation
// transitions a request past pending.
const (
	SwapStatusPending   = "pending"
	SwapStatusAccepted  = "accepted"
	SwapStatusCompleted = "completed"
	SwapStatusRejected  = "rejected"
)

// SwapRequest records a request to swap for a listed item. Item title
// and participant names are snapshotted at request time.
type SwapRequest struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"itemId"`
	ItemTitle     string    `json:"itemTitle"`
	RequesterID   string    `json:"requesterId"`
	RequesterName string    `json:"requesterName"`
	OwnerID       string    `json:"ownerId"`
	OwnerName     string    `json:"ownerName"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
