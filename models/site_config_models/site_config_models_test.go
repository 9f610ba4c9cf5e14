package site_config_models

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carkumbh/backend/logger"
)

func TestMain(m *testing.M) {
	logger.InitLoggers()
	os.Exit(m.Run())
}

func TestParseEventPackages(t *testing.T) {
	entries, err := ParseEventPackages([]byte(`[{"id":"999","basePrice":999},{"id":"500","basePrice":500}]`))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "999", entries[0].ID)
	assert.Equal(t, 999, entries[0].BasePrice)
}

func TestParseEventPackagesRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"not a list":     `{"id":"999"}`,
		"empty list":     `[]`,
		"missing id":     `[{"basePrice":999}]`,
		"negative price": `[{"id":"999","basePrice":-1}]`,
		"not json":       `banner.png`,
		// Payment verification derives amounts from the id alone, so an id
		// that does not spell its own price can never be sold safely.
		"named id":          `[{"id":"vip","basePrice":2000}]`,
		"id price mismatch": `[{"id":"999","basePrice":1200}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseEventPackages([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func catalogReading(raw []byte, err error) *EventPackageCatalog {
	c := &EventPackageCatalog{}
	c.readValue = func(ctx context.Context) ([]byte, error) {
		return raw, err
	}
	return c
}

func TestListPackagesServesStoredCatalog(t *testing.T) {
	catalog := catalogReading([]byte(`[{"id":"750","basePrice":750}]`), nil)

	entries := catalog.ListPackages(context.Background())
	require.Len(t, entries, 1)
	assert.Equal(t, PackageEntry{ID: "750", BasePrice: 750}, entries[0])
}

func TestListPackagesDegradesToDefaults(t *testing.T) {
	cases := map[string]*EventPackageCatalog{
		"no stored catalog": catalogReading(nil, ErrConfigNotFound),
		"storage failure":   catalogReading(nil, errors.New("connection refused")),
		"malformed value":   catalogReading([]byte(`{"oops":true}`), nil),
		"named id stored":   catalogReading([]byte(`[{"id":"vip","basePrice":2000}]`), nil),
	}
	for name, catalog := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, DefaultEventPackages, catalog.ListPackages(context.Background()))
		})
	}
}

func TestFindPackageDegradesToDefaults(t *testing.T) {
	catalog := catalogReading(nil, ErrConfigNotFound)

	entry, ok := catalog.FindPackage(context.Background(), "999")
	require.True(t, ok)
	assert.Equal(t, 999, entry.BasePrice)

	_, ok = catalog.FindPackage(context.Background(), "750")
	assert.False(t, ok)
}

func TestDefaultEventPackages(t *testing.T) {
	// The documented deployment constant the catalog degrades to.
	require.Len(t, DefaultEventPackages, 3)
	assert.Equal(t, PackageEntry{ID: "10000", BasePrice: 10000}, DefaultEventPackages[0])
	assert.Equal(t, PackageEntry{ID: "999", BasePrice: 999}, DefaultEventPackages[1])
	assert.Equal(t, PackageEntry{ID: "500", BasePrice: 500}, DefaultEventPackages[2])
}
