package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// secretKeySalt is the fixed HMAC key Telegram uses to derive the signing
// key from the bot token.
const secretKeySalt = "WebAppData"

// Verify checks the signature of a raw init-data query string against the
// bot token and, on success, returns the decoded identity claim.
//
// The algorithm follows the Telegram Mini Apps contract exactly: the hash
// pair is removed, the remaining decoded pairs are sorted bytewise by key
// and joined as "key=value" lines, and the result is authenticated with
// HMAC-SHA256 keyed by HMAC-SHA256("WebAppData", token). Duplicate keys
// resolve to the last value, matching query-string parsing semantics.
//
// Verify never panics across its boundary and never logs the token.
func Verify(raw, token string, opts Options) (verdict Verdict) {
	defer func() {
		if r := recover(); r != nil {
			verdict = Verdict{Reason: ReasonInternalError}
		}
	}()

	values, err := url.ParseQuery(raw)
	if err != nil {
		// Broken percent-encoding. Not a signature problem, but the
		// canonical string cannot be reconstructed.
		return Verdict{Reason: ReasonInternalError}
	}

	suppliedHash := lastValue(values, "hash")
	if _, ok := values["hash"]; !ok {
		return Verdict{Reason: ReasonMissingHash}
	}
	delete(values, "hash")

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+lastValue(values, k))
	}
	dataCheckString := strings.Join(lines, "\n")

	secretKey := hmacSHA256([]byte(token), []byte(secretKeySalt))
	calculated := hex.EncodeToString(hmacSHA256([]byte(dataCheckString), secretKey))

	if !hmac.Equal([]byte(calculated), []byte(suppliedHash)) {
		return Verdict{Reason: ReasonHashMismatch}
	}

	verdict = Verdict{StartParam: lastValue(values, "start_param")}

	if ts, err := strconv.ParseInt(lastValue(values, "auth_date"), 10, 64); err == nil && ts > 0 {
		verdict.AuthDate = time.Unix(ts, 0)
		if opts.MaxAge > 0 {
			now := time.Now
			if opts.Now != nil {
				now = opts.Now
			}
			verdict.Stale = now().Sub(verdict.AuthDate) > opts.MaxAge
		}
	}
	if verdict.Stale && opts.EnforceAge {
		return Verdict{Reason: ReasonExpired}
	}

	userJSON := lastValue(values, "user")
	if userJSON == "" {
		return Verdict{Reason: ReasonMissingUserData}
	}

	var claim User
	if err := json.Unmarshal([]byte(userJSON), &claim); err != nil || claim.ID == 0 {
		return Verdict{Reason: ReasonMalformedUserJSON}
	}

	verdict.Valid = true
	verdict.Claim = &claim
	return verdict
}

// hmacSHA256 computes HMAC-SHA256 of msg under key.
func hmacSHA256(msg, key []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// lastValue returns the last value for a key, empty when absent.
// Last-value-wins keeps the canonical string consistent with how duplicate
// keys are resolved during parsing.
func lastValue(values url.Values, key string) string {
	vs := values[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[len(vs)-1]
}
