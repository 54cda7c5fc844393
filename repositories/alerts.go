package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"openmandi/safeguards"
)

// AlertRepository is the durable store for protection alerts, keyed per user
// in time order so intervention reviews can replay them.
type AlertRepository struct {
	db  *badger.DB
	log *slog.Logger
}

var _ safeguards.AlertStore = AlertRepository{}

func NewAlertRepository(db *badger.DB, log *slog.Logger) AlertRepository {
	return AlertRepository{db: db, log: log}
}

// SaveAlert persists an alert under "alert:{user}:{timestamp_padded}:{id}".
func (r AlertRepository) SaveAlert(alert safeguards.Alert) error {
	key := fmt.Sprintf("alert:%s:%019d:%s",
		alert.UserID,
		alert.Timestamp.UnixNano(),
		alert.AlertID,
	)
	bytes, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// AlertsSince returns a user's alerts recorded at or after the cutoff,
// oldest first.
func (r AlertRepository) AlertsSince(userID string, since time.Time) ([]safeguards.Alert, error) {
	var byteAlerts [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("alert:%s:", userID)
		prefix := []byte(prefixStr)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		seekKey := append(prefix, []byte(fmt.Sprintf("%019d", since.UnixNano()))...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				byteAlerts = append(byteAlerts, append([]byte(nil), value...))
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

	alerts := make([]safeguards.Alert, 0, len(byteAlerts))
	for _, b := range byteAlerts {
		var alert safeguards.Alert
		if err = json.Unmarshal(b, &alert); err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}
