// Package journal stores named seed sequences, so that reproducible streams
// can be replayed later.
package journal

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/safing/structures/dsd"
	"go.etcd.io/bbolt"

	"github.com/safing/random/base/random"
)

var bucketName = []byte("seeds")

var (
	// ErrNotFound is returned when no entry with the requested name exists.
	ErrNotFound = errors.New("journal entry not found")

	// ErrInvalidName is returned for empty entry names.
	ErrInvalidName = errors.New("invalid journal entry name")
)

// Entry is a named seed sequence.
type Entry struct {
	Name    string
	Seeds   []string
	Created time.Time
}

// Generator returns a new reproducible generator seeded with the entry's seeds.
func (e *Entry) Generator() (*random.Generator, error) {
	seeds := make([]any, 0, len(e.Seeds))
	for _, seed := range e.Seeds {
		seeds = append(seeds, seed)
	}
	return random.CreateWithSeeds(seeds...)
}

// Journal is a bbolt backed store of seed sequences.
type Journal struct {
	db *bbolt.DB
}

// Open opens or creates the journal at the given file path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o0700); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	dbOptions := &bbolt.Options{
		Timeout: 1 * time.Second,
	}

	// Open/Create database, retry if there is a timeout.
	db, err := bbolt.Open(path, 0o0600, dbOptions)
	for i := 0; i < 5 && errors.Is(err, bbolt.ErrTimeout); i++ {
		db, err = bbolt.Open(path, 0o0600, dbOptions)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}

	// Create bucket
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

// Save stores the seeds under the given name, replacing any existing entry.
// Seeds are stored in their textual form, see random.SeedText.
func (j *Journal) Save(name string, seeds ...any) (*Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if len(seeds) == 0 {
		return nil, random.ErrNoSeeds
	}

	e := &Entry{
		Name:    name,
		Seeds:   make([]string, 0, len(seeds)),
		Created: time.Now().UTC().Truncate(time.Second),
	}
	for _, seed := range seeds {
		e.Seeds = append(e.Seeds, random.SeedText(seed))
	}

	data, err := dsd.Dump(e, dsd.JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to encode journal entry: %w", err)
	}

	err = j.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(name), data)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Get returns the entry with the given name. Surrounding whitespace of the
// name is ignored, as in Save.
func (j *Journal) Get(name string) (*Entry, error) {
	name = strings.TrimSpace(name)

	var e *Entry
	err := j.db.View(func(tx *bbolt.Tx) error {
		value := tx.Bucket(bucketName).Get([]byte(name))
		if value == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}

		var txErr error
		e, txErr = decodeEntry(value)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns all entries whose name starts with prefix, sorted by name.
func (j *Journal) List(prefix string) ([]*Entry, error) {
	var entries []*Entry
	err := j.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
			e, err := decodeEntry(v)
			if err != nil {
				return fmt.Errorf("entry %s: %w", k, err)
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// bbolt iterates in byte order already, keep it explicit.
	sort.Slice(entries, func(a, b int) bool {
		return entries[a].Name < entries[b].Name
	})
	return entries, nil
}

// Delete removes the entry with the given name.
func (j *Journal) Delete(name string) error {
	name = strings.TrimSpace(name)
	return j.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return bucket.Delete([]byte(name))
	})
}

// Close closes the journal.
func (j *Journal) Close() error {
	return j.db.Close()
}

func decodeEntry(data []byte) (*Entry, error) {
	// Copy data, as it is only valid during the transaction.
	duplicate := make([]byte, len(data))
	copy(duplicate, data)

	e := &Entry{}
	if _, err := dsd.Load(duplicate, e); err != nil {
		return nil, fmt.Errorf("failed to decode journal entry: %w", err)
	}
	return e, nil
}
