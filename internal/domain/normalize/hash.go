package normalize

import (
	"crypto/md5" //nolint:gosec // content fingerprint, not security
	"encoding/hex"
	"strings"
)

// JobHash derives the stable identity of a posting from its company, title
// and raw location. Title and location are trimmed, whitespace-collapsed
// and lowercased first, so cosmetic edits do not change the hash.
func JobHash(companyID, title, location string) string {
	canonical := companyID + "|" + canonField(title) + "|" + canonField(location)
	sum := md5.Sum([]byte(canonical)) //nolint:gosec // content fingerprint, not security
	return hex.EncodeToString(sum[:])
}

func canonField(s string) string {
	return strings.ToLower(CollapseSpace(s))
}
