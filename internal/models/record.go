package models

import (
	"encoding/json"
	"fmt"
)

// RecordVersion is the current on-disk record format version. Version 0
// (a bare object or array without an envelope) is the legacy format and
// is migrated transparently on read.
const RecordVersion = 1

type sessionRecord struct {
	Version int      `json:"version"`
	Session *Session `json:"session"`
}

type itemsRecord struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

type swapsRecord struct {
	Version int           `json:"version"`
	Swaps   []SwapRequest `json:"swaps"`
}

// EncodeSession serializes a session into a versioned record.
func EncodeSession(s *Session) (string, error) {
	data, err := json.Marshal(sessionRecord{Version: RecordVersion, Session: s})
	if err != nil {
		return "", fmt.Errorf("failed to encode session record: %w", err)
	}
	return string(data), nil
}

// DecodeSession parses a versioned session record. Legacy unversioned
// records (a bare session object) are accepted and migrated.
func DecodeSession(value string) (*Session, error) {
	var rec sessionRecord
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode session record: %w", err)
	}
	switch {
	case rec.Version == RecordVersion && rec.Session != nil:
		return rec.Session, nil
	case rec.Version > RecordVersion:
		return nil, fmt.Errorf("unsupported session record version %d", rec.Version)
	}

	// Legacy record: the payload is the session itself.
	var legacy Session
	if err := json.Unmarshal([]byte(value), &legacy); err != nil {
		return nil, fmt.Errorf("failed to decode legacy session record: %w", err)
	}
	if legacy.ID == "" {
		return nil, fmt.Errorf("session record has no account id")
	}
	return &legacy, nil
}

// EncodeItems serializes the item collection into a versioned record.
func EncodeItems(items []Item) (string, error) {
	data, err := json.Marshal(itemsRecord{Version: RecordVersion, Items: items})
	if err != nil {
		return "", fmt.Errorf("failed to encode items record: %w", err)
	}
	return string(data), nil
}

// DecodeItems parses a versioned items record. Legacy unversioned
// records (a bare array) are accepted and migrated.
func DecodeItems(value string) ([]Item, error) {
	var rec itemsRecord
	if err := json.Unmarshal([]byte(value), &rec); err == nil {
		if rec.Version == RecordVersion {
			return rec.Items, nil
		}
		if rec.Version > RecordVersion {
			return nil, fmt.Errorf("unsupported items record version %d", rec.Version)
		}
	}

	var legacy []Item
	if err := json.Unmarshal([]byte(value), &legacy); err != nil {
		return nil, fmt.Errorf("failed to decode items record: %w", err)
	}
	return legacy, nil
}

// EncodeSwaps serializes the swap-request collection into a versioned record.
func EncodeSwaps(swaps []SwapRequest) (string, error) {
	data, err := json.Marshal(swapsRecord{Version: RecordVersion, Swaps: swaps})
	if err != nil {
		return "", fmt.Errorf("failed to encode swaps record: %w", err)
	}
	return string(data), nil
}

// DecodeSwaps parses a versioned swaps record. Legacy unversioned
// records (a bare array) are accepted and migrated.
func DecodeSwaps(value string) ([]SwapRequest, error) {
	var rec swapsRecord
	if err := json.Unmarshal([]byte(value), &rec); err == nil {
		if rec.Version == RecordVersion {
			return rec.Swaps, nil
		}
		if rec.Version > RecordVersion {
			return nil, fmt.Errorf("unsupported swaps record version %d", rec.Version)
		}
	}

	var legacy []SwapRequest
	if err := json.Unmarshal([]byte(value), &legacy); err != nil {
		return nil, fmt.Errorf("failed to decode swaps record: %w", err)
	}
	return legacy, nil
}
