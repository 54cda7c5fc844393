package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"openmandi/pricing"
)

// PriceRepository persists daily mandi quotes in BadgerDB.
type PriceRepository struct {
	db           *badger.DB
	log          *slog.Logger
	limitRecords *int
}

func NewPriceRepository(db *badger.DB, log *slog.Logger, limitRecords *int) PriceRepository {
	return PriceRepository{db: db, log: log, limitRecords: limitRecords}
}

// StoreRecord persists a quote.
// The key is formatted as "price:{product}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two quotes
//     arrive at the same nanosecond.
func (r PriceRepository) StoreRecord(record pricing.MandiRecord) error {
	key := fmt.Sprintf("price:%s:%019d:%s",
		strings.ToLower(record.ProductName),
		record.Date.UnixNano(),
		uuid.NewString(),
	)
	bytes, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// RecentRecords retrieves the newest quotes for a product using a reverse
// prefix scan, newest first. Thanks to the padded timestamp in the key the
// scan is naturally time ordered. It stops once the configured limitRecords
// is reached and returns a cursor for the next page.
func (r PriceRepository) RecentRecords(product string, cursor *string) ([]pricing.MandiRecord, *string, error) {
	var byteRecords [][]byte
	var lastKey string
	err := r.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("price:%s:", strings.ToLower(product))
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past the newest possible timestamp, then walk backwards
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if r.limitRecords != nil && len(byteRecords) == *r.limitRecords {
				r.log.Debug(fmt.Sprintf("Maximum of %d price records reached", *r.limitRecords))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[prefixLen:])
			err := item.Value(func(value []byte) error {
				byteRecords = append(byteRecords, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	records := make([]pricing.MandiRecord, 0, len(byteRecords))
	for _, b := range byteRecords {
		var record pricing.MandiRecord
		if err = json.Unmarshal(b, &record); err != nil {
			return nil, nil, err
		}
		records = append(records, record)
	}
	return records, &lastKey, nil
}

// RecordsSince returns a product's quotes dated at or after the cutoff,
// oldest first.
func (r PriceRepository) RecordsSince(product string, since time.Time) ([]pricing.MandiRecord, error) {
	var byteRecords [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("price:%s:", strings.ToLower(product))
		prefix := []byte(prefixStr)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		seekKey := append(prefix, []byte(fmt.Sprintf("%019d", since.UnixNano()))...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				byteRecords = append(byteRecords, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	records := make([]pricing.MandiRecord, 0, len(byteRecords))
	for _, b := range byteRecords {
		var record pricing.MandiRecord
		if err = json.Unmarshal(b, &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// SeedSampleRecords fills an empty store with generated quotes so the price
// endpoints have data on first boot.
func (r PriceRepository) SeedSampleRecords(daysBack int) (int, error) {
	records := pricing.GenerateSampleRecords(daysBack)
	for _, record := range records {
		if err := r.StoreRecord(record); err != nil {
			return 0, err
		}
	}
	r.log.Info("sample price records seeded", "count", len(records), "days_back", daysBack)
	return len(records), nil
}
