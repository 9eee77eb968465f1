package initdata

import (
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Sign produces a complete signed init-data query string for the given
// pairs. When at is non-zero an auth_date pair is stamped from it.
//
// This is the inverse of Verify and exists for local development tooling
// and tests; in production the payload is always issued by Telegram.
func Sign(pairs map[string]string, token string, at time.Time) string {
	data := make(map[string]string, len(pairs)+1)
	for k, v := range pairs {
		if k == "hash" {
			continue
		}
		data[k] = v
	}
	if !at.IsZero() {
		data["auth_date"] = strconv.FormatInt(at.Unix(), 10)
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	values := url.Values{}
	for _, k := range keys {
		lines = append(lines, k+"="+data[k])
		values.Set(k, data[k])
	}

	secretKey := hmacSHA256([]byte(token), []byte(secretKeySalt))
	hash := hex.EncodeToString(hmacSHA256([]byte(strings.Join(lines, "\n")), secretKey))

	return values.Encode() + "&hash=" + hash
}
