package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"openmandi/pricing"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func quote(product string, modal float64, date time.Time) pricing.MandiRecord {
	return pricing.MandiRecord{
		MarketName:      "Azadpur Mandi",
		State:           "Delhi",
		District:        "North Delhi",
		ProductName:     product,
		Variety:         product + " Grade A",
		MinPrice:        modal * 0.9,
		MaxPrice:        modal * 1.1,
		ModalPrice:      modal,
		Date:            date,
		ArrivalQuantity: 120,
		Unit:            "quintal",
	}
}

func TestStore_And_Fetch_Recent_Records(t *testing.T) {
	req := require.New(t)
	repository := NewPriceRepository(openTestDB(t), slog.Default(), nil)

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	quotes := []pricing.MandiRecord{
		quote("Rice", 2400, day),
		quote("Rice", 2450, day.AddDate(0, 0, 1)),
		quote("Rice", 2500, day.AddDate(0, 0, 2)),
	}
	for _, q := range quotes {
		req.NoError(repository.StoreRecord(q))
	}

	fetched, _, err := repository.RecentRecords("rice", nil)
	req.NoError(err)

	// Newest first
	req.Len(fetched, 3)
	req.InDelta(2500, fetched[0].ModalPrice, 1e-9)
	req.InDelta(2400, fetched[2].ModalPrice, 1e-9)
}

func TestRecent_Records_Limit_And_Cursor(t *testing.T) {
	req := require.New(t)
	limit := 2
	repository := NewPriceRepository(openTestDB(t), slog.Default(), &limit)

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		req.NoError(repository.StoreRecord(quote("Wheat", 2200+float64(i), day.AddDate(0, 0, i))))
	}

	// First page holds the two newest quotes
	page, cursor, err := repository.RecentRecords("wheat", nil)
	req.NoError(err)
	req.Len(page, 2)
	req.InDelta(2204, page[0].ModalPrice, 1e-9)
	req.NotNil(cursor)

	// Second page resumes where the first stopped
	next, _, err := repository.RecentRecords("wheat", cursor)
	req.NoError(err)
	req.Len(next, 2)
	req.InDelta(2202, next[0].ModalPrice, 1e-9)
}

func TestRecent_Records_Are_Scoped_By_Product(t *testing.T) {
	req := require.New(t)
	repository := NewPriceRepository(openTestDB(t), slog.Default(), nil)

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	req.NoError(repository.StoreRecord(quote("Onion", 3000, day)))
	req.NoError(repository.StoreRecord(quote("Potato", 1800, day)))

	fetched, _, err := repository.RecentRecords("onion", nil)
	req.NoError(err)

	req.Len(fetched, 1)
	req.Equal("Onion", fetched[0].ProductName)
}

func TestRecords_Since_Cutoff(t *testing.T) {
	req := require.New(t)
	repository := NewPriceRepository(openTestDB(t), slog.Default(), nil)

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		req.NoError(repository.StoreRecord(quote("Tomato", 4000+float64(i), day.AddDate(0, 0, i))))
	}

	fetched, err := repository.RecordsSince("tomato", day.AddDate(0, 0, 2))
	req.NoError(err)

	// Oldest first, cutoff inclusive
	req.Len(fetched, 2)
	req.InDelta(4002, fetched[0].ModalPrice, 1e-9)
	req.InDelta(4003, fetched[1].ModalPrice, 1e-9)
}

func TestSeed_Sample_Records(t *testing.T) {
	req := require.New(t)
	repository := NewPriceRepository(openTestDB(t), slog.Default(), nil)

	count, err := repository.SeedSampleRecords(3)
	req.NoError(err)
	req.Positive(count)

	// Every catalog product got at least one quote
	for _, product := range pricing.Products() {
		fetched, _, err := repository.RecentRecords(product.Name, nil)
		req.NoError(err)
		req.NotEmpty(fetched, "product %s", product.Name)
		req.True(lo.EveryBy(fetched, func(r pricing.MandiRecord) bool {
			return r.ProductName == product.Name
		}))
	}
}
