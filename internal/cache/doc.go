// Package cache provides the LRU cache that keeps rendered style previews
// between atlas rebuilds.
//
//	previews := cache.New[previewKey, *preview](64)
//	if p, ok := previews.Get(key); !ok {
//	    previews.Set(key, render())
//	}
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
