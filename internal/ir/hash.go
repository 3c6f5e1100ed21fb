package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainRuleset separates ruleset fingerprints from any other hash.
const DomainRuleset = "apigen/ruleset/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint returns a content hash of the compiled tables.
// Two documents that compile to the same tables have the same fingerprint,
// regardless of formatting, comments or +on/+set grouping.
func (rs *Ruleset) Fingerprint() (string, error) {
	canonical, err := MarshalCanonical(rs.Canonical())
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(DomainRuleset, canonical), nil
}
