package cache

import (
	"context"
	"errors"
	"time"
)

// Cache interface định nghĩa contract cho cache layer
// Cho phép swap implementation (Redis, in-memory fake trong test)
type Cache interface {
	// Get lấy data từ cache và unmarshal vào dest
	// Returns: (found bool, error)
	// - found = true: cache hit, data đã unmarshal vào dest
	// - found = false: cache miss, dest không bị thay đổi
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu data vào cache với TTL (ttl = 0: không hết hạn)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete xóa các keys khỏi cache
	Delete(ctx context.Context, keys ...string) error

	// Ping kiểm tra connection
	Ping(ctx context.Context) error
}

// ErrUpdateConflict: key vẫn bị ghi đè sau số lần retry tối đa
var ErrUpdateConflict = errors.New("cache: concurrent update conflict")

// UpdateFunc nhận found (key có tồn tại không; dest đã được unmarshal nếu có)
// và trả về giá trị mới cần ghi. Trả error để huỷ update.
type UpdateFunc func(found bool) (interface{}, error)

// Updater is implemented by caches that can do an optimistic
// read-modify-write: Update reads key into dest, calls fn and writes its
// result only if key was not modified in between, re-running fn otherwise.
type Updater interface {
	Update(ctx context.Context, key string, dest interface{}, ttl time.Duration, fn UpdateFunc) error
}
