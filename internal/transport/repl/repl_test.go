package repl_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarsobcaldas/storage-control/internal/catalog"
	"github.com/tarsobcaldas/storage-control/internal/repository/snapshot"
	"github.com/tarsobcaldas/storage-control/internal/service/storage"
	"github.com/tarsobcaldas/storage-control/internal/transport/repl"
	"github.com/tarsobcaldas/storage-control/internal/warehouse"
)

func runScript(t *testing.T, dir string, script ...string) string {
	t.Helper()

	list := catalog.NewList()
	require.NoError(t, catalog.Bootstrap(list))
	w := warehouse.New(2, 6, 4, 10)
	repo := snapshot.NewFileRepository(dir)
	svc := storage.NewService(list, w, repo, nil, time.Second)

	var out bytes.Buffer
	r := repl.New(svc, strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	require.NoError(t, r.Run(t.Context()))
	return out.String()
}

func TestRestockAndTake(t *testing.T) {
	t.Parallel()

	out := runScript(t, t.TempDir(),
		"restock Apple 10",
		"take Apple 4",
		"space",
	)

	assert.Contains(t, out, `placed 10 units of "Apple"`)
	assert.Contains(t, out, `took 4 units of "Apple"`)
	assert.Contains(t, out, "available: 474 of 480 zones")
}

func TestProductLifecycle(t *testing.T) {
	t.Parallel()

	out := runScript(t, t.TempDir(),
		"product add Grapes 2.50 fragile 2",
		"product price Grapes 3.00",
		"product list",
		"product remove Grapes",
		"product list",
	)

	assert.Contains(t, out, `listed "Grapes" (fragile) at $2.50`)
	assert.Contains(t, out, `"Grapes" now costs $3.00`)
	assert.Contains(t, out, `delisted "Grapes"`)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	out := runScript(t, t.TempDir(),
		"search water",
	)

	assert.Contains(t, out, "Watermelon")
	assert.NotContains(t, out, "Apple")
}

func TestFilter(t *testing.T) {
	t.Parallel()

	out := runScript(t, t.TempDir(),
		"filter quality fragile",
		"filter max-price 0.75",
		"filter min-price 0.80",
	)

	assert.Contains(t, out, "Banana")
	assert.Contains(t, out, "Watermelon")
	assert.Contains(t, out, "Apple")
}

func TestFragileNeedsExpiry(t *testing.T) {
	t.Parallel()

	out := runScript(t, t.TempDir(),
		"restock Banana 5",
	)

	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "expiry")
}

func TestExpiringQuery(t *testing.T) {
	t.Parallel()

	soon := time.Now().Add(48 * time.Hour).Format("2006-01-02")
	far := time.Now().Add(90 * 24 * time.Hour).Format("2006-01-02")

	out := runScript(t, t.TempDir(),
		"restock Banana 3 "+soon,
		"restock Banana 4 "+far,
		"expiring 7",
	)

	assert.Contains(t, out, "3 units expiring within 7 days")
}

func TestStrategyCommand(t *testing.T) {
	t.Parallel()

	out := runScript(t, t.TempDir(),
		"strategy",
		"strategy round-robin",
		"strategy",
		"strategy best-fit",
	)

	assert.Contains(t, out, "strategy: contiguous")
	assert.Contains(t, out, "strategy set to round-robin")
	assert.Contains(t, out, "strategy: round-robin")
	assert.Contains(t, out, "error:")
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := runScript(t, dir,
		"restock Apple 7",
		"save shift",
		"take Apple 7",
		"load shift",
		"items Apple",
	)

	assert.Contains(t, out, `saved snapshot "shift"`)
	assert.Contains(t, out, `loaded snapshot "shift"`)
	assert.Contains(t, out, `7 units of "Apple"`)
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	out := runScript(t, t.TempDir(),
		"frobnicate",
	)

	assert.Contains(t, out, "unknown command")
}

func TestExitStopsTheLoop(t *testing.T) {
	t.Parallel()

	out := runScript(t, t.TempDir(),
		"exit",
		"restock Apple 1",
	)

	assert.NotContains(t, out, "placed")
}
