package analysis

import (
	"database/sql"
	"encoding/json"
	"log"

	"github.com/fernapp/fern/internal/db"
)

const cacheKey = "analysis"

// Cache persists the most recent analysis result in the settings table so a
// restart does not lose it.
type Cache struct {
	DB *sql.DB
}

// Load returns the cached result, or (nil, false) when there is none. A
// malformed cached value is treated as a miss.
func (c *Cache) Load() (*Result, bool) {
	raw, ok, err := db.GetSetting(c.DB, cacheKey)
	if err != nil || !ok {
		return nil, false
	}

	var r Result
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		log.Printf("analysis cache: discarding malformed entry: %v", err)
		return nil, false
	}
	return &r, true
}

// Store saves the result, replacing any previous one.
func (c *Cache) Store(r *Result) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return db.SetSetting(c.DB, cacheKey, string(b))
}
