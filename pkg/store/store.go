// Package store persists console history in a bbolt database.
package store

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.pyweb.sh/pkg/logutil"
)

var logger = logutil.GetLogger("store")

const bucketCmd = "cmd"

// Functions run in one transaction when a database is opened. Keyed by a
// description used in error messages.
var initDB = map[string](func(*bolt.Tx) error){
	"initialize command history table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	},
}

// ErrNoMatchingCmd is returned when a command query has no result.
var ErrNoMatchingCmd = errors.New("no matching command line")

// Cmd is an entry in the command history.
type Cmd struct {
	Text string
	Seq  int
}

// Store is a history database. It is safe for concurrent use.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history database %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("history database opened", "path", path)
	return &Store{db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }
