package kalshi

import (
	"strconv"
	"strings"
	"time"
)

const (
	AccessKey       = "KALSHI-ACCESS-KEY"
	AccessSignature = "KALSHI-ACCESS-SIGNATURE"
	AccessTimestamp = "KALSHI-ACCESS-TIMESTAMP"
)

// CreateAuthHeaders signs timestamp+method+path. Query strings are not part of
// the signed message.
func CreateAuthHeaders(signer *Signer, method, path string, now time.Time) (map[string]string, error) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	timestamp := strconv.FormatInt(now.UnixMilli(), 10)
	signature, err := signer.Sign(timestamp + method + path)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		AccessKey:       signer.KeyID(),
		AccessSignature: signature,
		AccessTimestamp: timestamp,
	}, nil
}
