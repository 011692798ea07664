package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

// SyntheticPrefix marks ids generated for articles that carry no URL.
// These ids are stable only within the lifetime of the process.
const SyntheticPrefix = "local-"

// Resolver derives stable internal article ids from canonical URLs
type Resolver struct {
	seq atomic.Uint64
}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the id for an article URL. The same URL always yields the
// same id across processes and restarts. An empty URL yields a synthetic id
// combining wall-clock millis with a monotonic counter so concurrent calls
// in the same millisecond stay distinct.
func (r *Resolver) Resolve(url string) string {
	if url == "" {
		return fmt.Sprintf("%s%d-%d", SyntheticPrefix, time.Now().UnixMilli(), r.seq.Add(1))
	}
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
