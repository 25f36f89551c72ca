package cache

import "errors"

var (
	ErrCacheUnavailable = errors.New("cache: redis unavailable")
	ErrDecode           = errors.New("cache: failed to decode cached value")
)
