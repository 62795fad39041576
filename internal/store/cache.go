package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// collectionsBucket is the single bbolt bucket holding one serialized
// collection per key.
const collectionsBucket = "collections"

// openTimeout bounds how long opening the cache file may block on the file
// lock held by another process.
const openTimeout = 5 * time.Second

// Cache is the locally persisted fallback store: a key-value byte store
// addressed by collection name whose values are JSON-encoded collections.
type Cache struct {
	db *bolt.DB
}

// OpenCache opens (creating if needed) the cache file.
func OpenCache(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

// Read returns the stored bytes for a collection key. The second return is
// false when the key has never been written.
func (c *Cache) Read(collection string) ([]byte, bool, error) {
	var data []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(collectionsBucket))
		if bucket == nil {
			return nil
		}
		if value := bucket.Get([]byte(collection)); value != nil {
			data = make([]byte, len(value))
			copy(data, value)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("read cache key %s: %w", collection, err)
	}
	return data, data != nil, nil
}

// Write persists the bytes for a collection key.
func (c *Cache) Write(collection string, data []byte) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(collectionsBucket))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(collection), data)
	})
	if err != nil {
		return fmt.Errorf("write cache key %s: %w", collection, err)
	}
	return nil
}

// Close releases the cache file.
func (c *Cache) Close() error {
	return c.db.Close()
}
