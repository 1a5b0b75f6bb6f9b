package cache

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/forest-guardian/agro-report-poc/internal/properties"
)

type CacheEntry[T any] struct {
	Data      T         `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	Checksum  string    `json:"checksum"`
}

type CacheService[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T) error
	GenerateKey(params ...interface{}) string
}

// FileCache stores one JSON file per key. Entries whose checksum no longer
// matches their data are treated as misses.
type FileCache[T any] struct {
	cacheDir string
}

// NewFileCache caches under <ROOT_PATH>/data/cache/<subDir>.
func NewFileCache[T any](subDir string) *FileCache[T] {
	return NewFileCacheAt[T](properties.DataPath("cache", subDir))
}

func NewFileCacheAt[T any](dir string) *FileCache[T] {
	return &FileCache[T]{cacheDir: dir}
}

// GenerateKey hashes the printed params, each followed by "_".
func (fc *FileCache[T]) GenerateKey(params ...interface{}) string {
	h := sha1.New()
	for _, param := range params {
		fmt.Fprintf(h, "%v_", param)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (fc *FileCache[T]) Get(key string) (T, bool) {
	var zero T
	data, err := os.ReadFile(fc.path(key))
	if err != nil {
		return zero, false
	}

	var entry CacheEntry[T]
	if err := json.Unmarshal(data, &entry); err != nil {
		return zero, false
	}

	if entry.Checksum != fc.calculateChecksum(entry.Data) {
		return zero, false
	}
	return entry.Data, true
}

func (fc *FileCache[T]) Set(key string, data T) error {
	if err := os.MkdirAll(fc.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	entry := CacheEntry[T]{
		Data:      data,
		CreatedAt: time.Now(),
		Checksum:  fc.calculateChecksum(data),
	}
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	// Concurrent writers of one key each get their own temp file; the last
	// rename wins and every entry renamed in is complete.
	tmp, err := os.CreateTemp(fc.cacheDir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	if _, err := tmp.Write(jsonData); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fc.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to rename temp cache file: %w", err)
	}
	return nil
}

func (fc *FileCache[T]) path(key string) string {
	return filepath.Join(fc.cacheDir, key+".json")
}

func (fc *FileCache[T]) calculateChecksum(data T) string {
	jsonData, _ := json.Marshal(data)
	hash := md5.Sum(jsonData)
	return hex.EncodeToString(hash[:])
}

// ContentKey builds the key of data plus extra key parts with c.GenerateKey.
func ContentKey[T any](c CacheService[T], data []byte, params ...interface{}) string {
	sum := sha1.Sum(data)
	return c.GenerateKey(append([]interface{}{hex.EncodeToString(sum[:])}, params...)...)
}

// FileKey is the ContentKey of a file, so renamed or copied files share their
// entry.
func FileKey[T any](c CacheService[T], path string, params ...interface{}) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s for cache key: %w", path, err)
	}
	return ContentKey(c, data, params...), nil
}
