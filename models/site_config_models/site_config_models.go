package site_config_models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/carkumbh/backend/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventPackagesKey is the site_config row holding the purchasable package
// catalog.
const EventPackagesKey = "event_packages"

// PackageEntry is one purchasable package. The id doubles as the
// customer-facing package name (the rupee figure, historically).
type PackageEntry struct {
	ID        string `json:"id"`
	BasePrice int    `json:"basePrice"`
}

// DefaultEventPackages is the deployment constant the catalog falls back to
// when the event_packages row is absent or unreadable.
var DefaultEventPackages = []PackageEntry{
	{ID: "10000", BasePrice: 10000},
	{ID: "999", BasePrice: 999},
	{ID: "500", BasePrice: 500},
}

// ErrConfigNotFound is returned when a config key has no row.
var ErrConfigNotFound = errors.New("site config key not found")

// GetValue fetches the raw JSON value stored under a config key.
func GetValue(ctx context.Context, db *pgxpool.Pool, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRow(ctx, `SELECT value FROM site_config WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to fetch site config %q: %w", key, err)
	}
	return value, nil
}

// SetValue upserts a config key with an arbitrary JSON-serializable value.
func SetValue(ctx context.Context, db *pgxpool.Pool, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal site config %q: %w", key, err)
	}
	_, err = db.Exec(ctx, `
		INSERT INTO site_config (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, raw, time.Now())
	if err != nil {
		return fmt.Errorf("failed to store site config %q: %w", key, err)
	}
	return nil
}

// ParseEventPackages decodes a stored event_packages value. An empty or
// malformed value is an error so callers can fall back to the default set.
//
// Package ids must be the rupee figure of their own base price: payment
// verification derives amounts from the request-echoed id alone, so an id
// that does not spell its price would strand verified payments.
func ParseEventPackages(raw []byte) ([]PackageEntry, error) {
	var entries []PackageEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("event_packages value is not a package list: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("event_packages value is empty")
	}
	for _, e := range entries {
		if e.ID == "" || e.BasePrice < 0 {
			return nil, fmt.Errorf("event_packages entry %+v is invalid", e)
		}
		n, err := strconv.Atoi(e.ID)
		if err != nil || n != e.BasePrice {
			return nil, fmt.Errorf("event_packages entry %+v: id must equal the base price", e)
		}
	}
	return entries, nil
}

// EventPackageCatalog resolves the current package catalog from site_config,
// degrading to DefaultEventPackages on any failure. Reads are fresh on every
// call; there is no caching, so admin edits take effect immediately.
type EventPackageCatalog struct {
	DB *pgxpool.Pool

	// readValue fetches the stored catalog row; swappable in tests.
	readValue func(ctx context.Context) ([]byte, error)
}

func NewEventPackageCatalog(db *pgxpool.Pool) *EventPackageCatalog {
	c := &EventPackageCatalog{DB: db}
	c.readValue = func(ctx context.Context) ([]byte, error) {
		return GetValue(ctx, c.DB, EventPackagesKey)
	}
	return c
}

// ListPackages returns the current catalog. It never returns an error:
// storage failures and malformed rows are logged and the default set is
// returned instead.
func (c *EventPackageCatalog) ListPackages(ctx context.Context) []PackageEntry {
	raw, err := c.readValue(ctx)
	if err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			logger.ErrorLogger.Errorf("Failed to read event packages, serving defaults: %v", err)
		}
		return DefaultEventPackages
	}

	entries, err := ParseEventPackages(raw)
	if err != nil {
		logger.WarnLogger.Warnf("Stored event packages unusable, serving defaults: %v", err)
		return DefaultEventPackages
	}
	return entries
}

// FindPackage returns the catalog entry for a package id, if it is currently
// valid.
func (c *EventPackageCatalog) FindPackage(ctx context.Context, id string) (PackageEntry, bool) {
	for _, e := range c.ListPackages(ctx) {
		if e.ID == id {
			return e, true
		}
	}
	return PackageEntry{}, false
}

// IsValidPackage reports whether a package id belongs to the current
// catalog snapshot.
func (c *EventPackageCatalog) IsValidPackage(ctx context.Context, id string) bool {
	_, ok := c.FindPackage(ctx, id)
	return ok
}
