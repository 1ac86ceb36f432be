package auth

import (
	"crypto/sha1" //nolint:gosec // upstream requires SHA1 for SAPISIDHASH
	"fmt"
	"time"
)

// Sign computes the SAPISIDHASH authorization header value for one request.
// The timestamp is part of the digest, so the result is single-use and must
// be recomputed for every attempt, including retries.
func Sign(secret, origin string, now time.Time) string {
	timestamp := now.Unix()
	data := fmt.Sprintf("%d %s %s", timestamp, secret, origin)

	h := sha1.New() //nolint:gosec // upstream requires SHA1 for SAPISIDHASH
	h.Write([]byte(data))

	return fmt.Sprintf("SAPISIDHASH %d_%x", timestamp, h.Sum(nil))
}
