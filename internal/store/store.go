package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/filmfusion/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketMovies    = []byte("movies")
	bucketFavorites = []byte("favorites")
)

var allBuckets = [][]byte{bucketMovies, bucketFavorites}

// MovieStore implements domain.MovieCache using BoltDB.
//
// Favorites are stored one record per key, "user:{uid}:movie:{movieID}",
// so a user's list is a prefix scan and a single toggle touches one key.
// A user whose list was fetched at least once also has a "user:{uid}" marker
// so an empty list can be told apart from a cache miss.
type MovieStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewMovieStore opens the cache for one backend project. An empty
// baseCacheDir gives a memory-only store.
func NewMovieStore(baseCacheDir, projectID string) (*MovieStore, error) {
	if baseCacheDir == "" {
		return &MovieStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if projectID != "" {
		dir = filepath.Join(baseCacheDir, hashProjectID(projectID))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "filmfusion.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &MovieStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashProjectID(projectID string) string {
	normalized := strings.TrimSpace(strings.ToLower(projectID))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *MovieStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *MovieStore) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *MovieStore) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *MovieStore) delete(bucket []byte, key string) error {
	s.mu.Lock()
	delete(s.cache, string(bucket)+":"+key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(key))
	})
}

// scanPrefix returns the values under prefix in key order.
func (s *MovieStore) scanPrefix(bucket []byte, prefix string) [][]byte {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()

		cachePrefix := string(bucket) + ":" + prefix
		var keys []string
		for k := range s.cache {
			if strings.HasPrefix(k, cachePrefix) {
				keys = append(keys, k)
			}
		}
		slices.Sort(keys)
		values := make([][]byte, 0, len(keys))
		for _, k := range keys {
			values = append(values, s.cache[k])
		}
		return values
	}

	var values [][]byte
	s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucket).Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(p); k != nil && strings.HasPrefix(string(k), prefix); k, v = c.Next() {
			buf := make([]byte, len(v))
			copy(buf, v)
			values = append(values, buf)
		}
		return nil
	})
	return values
}

func (s *MovieStore) deletePrefix(bucket []byte, prefix string) error {
	s.mu.Lock()
	cachePrefix := string(bucket) + ":" + prefix
	for k := range s.cache {
		if strings.HasPrefix(k, cachePrefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		c := b.Cursor()
		p := []byte(prefix)
		for k, _ := c.Seek(p); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Seek(p) {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Movies ===

func (s *MovieStore) GetMovies() ([]domain.Movie, bool) {
	var movies []domain.Movie
	ok := s.get(bucketMovies, "all", &movies)
	return movies, ok
}

func (s *MovieStore) SaveMovies(movies []domain.Movie) error {
	if err := s.set(bucketMovies, "all", movies); err != nil {
		return err
	}
	return s.set(bucketMovies, "fetched_at", time.Now().Unix())
}

// FetchedAt returns when the movie list was last saved
func (s *MovieStore) FetchedAt() (time.Time, bool) {
	var ts int64
	if !s.get(bucketMovies, "fetched_at", &ts) {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}

// === Favorites (key: user:{uid}:movie:{movieID}) ===

func userMarker(uid string) string {
	return "user:" + uid
}

func favoritePrefix(uid string) string {
	return "user:" + uid + ":movie:"
}

func favoriteKey(uid, movieID string) string {
	return favoritePrefix(uid) + movieID
}

func (s *MovieStore) GetFavorites(uid string) ([]domain.Favorite, bool) {
	var marker bool
	if !s.get(bucketFavorites, userMarker(uid), &marker) {
		return nil, false
	}

	raw := s.scanPrefix(bucketFavorites, favoritePrefix(uid))
	favs := make([]domain.Favorite, 0, len(raw))
	for _, data := range raw {
		var f domain.Favorite
		if err := json.Unmarshal(data, &f); err == nil {
			favs = append(favs, f)
		}
	}
	return favs, true
}

// SaveFavorites replaces the cached favorites of uid
func (s *MovieStore) SaveFavorites(uid string, favs []domain.Favorite) error {
	if err := s.deletePrefix(bucketFavorites, favoritePrefix(uid)); err != nil {
		return err
	}
	for _, f := range favs {
		if err := s.set(bucketFavorites, favoriteKey(uid, f.MovieID), f); err != nil {
			return err
		}
	}
	return s.set(bucketFavorites, userMarker(uid), true)
}

func (s *MovieStore) PutFavorite(uid string, fav domain.Favorite) error {
	return s.set(bucketFavorites, favoriteKey(uid, fav.MovieID), fav)
}

func (s *MovieStore) DeleteFavorite(uid, movieID string) error {
	return s.delete(bucketFavorites, favoriteKey(uid, movieID))
}

// InvalidateAll wipes the entire cache
func (s *MovieStore) InvalidateAll() error {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if err := tx.DeleteBucket(bucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
