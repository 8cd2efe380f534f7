package linkcheck

import (
	"context"
	"encoding/binary"
	"fmt"
	"net/url"
	"time"

	"github.com/dpotapov/go-sdg/sdghtml"
	bolt "go.etcd.io/bbolt"
)

const bucketLive = "live"

// Cache remembers live links in a bbolt database so that repeated validation runs do not
// check them again until the entry expires. Dead links are never cached.
type Cache struct {
	db   *bolt.DB
	next sdghtml.LinkChecker
	ttl  time.Duration
	now  func() time.Time
}

var _ sdghtml.LinkChecker = (*Cache)(nil)

// Open opens or creates the cache database at path. Checks that miss the cache are passed to
// next. Entries older than ttl are checked again; a zero ttl keeps entries forever.
func Open(path string, next sdghtml.LinkChecker, ttl time.Duration) (*Cache, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open link cache: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketLive))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize link cache: %w", err)
	}
	return &Cache{db: db, next: next, ttl: ttl, now: time.Now}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Check implements sdghtml.LinkChecker.
func (c *Cache) Check(ctx context.Context, u *url.URL) error {
	key := []byte(u.String())
	var checked time.Time
	err := c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketLive)).Get(key); len(v) == 8 {
			checked = time.Unix(0, int64(binary.BigEndian.Uint64(v)))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("read link cache: %w", err)
	}
	if !checked.IsZero() && (c.ttl == 0 || c.now().Sub(checked) < c.ttl) {
		return nil
	}

	if err := c.next.Check(ctx, u); err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		v := make([]byte, 8)
		binary.BigEndian.PutUint64(v, uint64(c.now().UnixNano()))
		return tx.Bucket([]byte(bucketLive)).Put(key, v)
	})
}

// Forget removes the entry for u.
func (c *Cache) Forget(u *url.URL) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketLive)).Delete([]byte(u.String()))
	})
}
