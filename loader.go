package dbc

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
)

// defaultLoaderCacheSize bounds the number of distinct DBC file contents
// a Loader keeps parsed in memory at once.
const defaultLoaderCacheSize = 128

// Loader parses DBC file content and caches the resulting *Database by a
// hash of the raw bytes, so a caller that repeatedly loads the same file
// (a daemon re-reading its config on SIGHUP, a test suite re-loading a
// fixture) pays the parse cost once. Loader holds no reference to any
// file path or descriptor; it is keyed purely on content, and a Loader
// is safe for concurrent use.
type Loader struct {
	cache *lru.Cache
}

// NewLoader creates a Loader whose cache holds up to size distinct
// parsed databases. A size of 0 or less uses defaultLoaderCacheSize.
func NewLoader(size int) (*Loader, error) {
	if size <= 0 {
		size = defaultLoaderCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Loader{cache: c}, nil
}

// Load returns the *Database for data, parsing and caching it on first
// use and returning the cached value on every subsequent call with
// byte-identical content.
func (l *Loader) Load(data []byte) (*Database, error) {
	key := xxhash.Sum64(data)
	if cached, ok := l.cache.Get(key); ok {
		return cached.(*Database), nil
	}
	db, err := ParseBytes(data)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, db)
	return db, nil
}

// Purge discards every cached database, forcing the next Load of any
// content to reparse.
func (l *Loader) Purge() {
	l.cache.Purge()
}
