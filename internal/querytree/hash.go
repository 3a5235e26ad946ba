package querytree

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for fingerprints. The version suffix allows the encoding
// to change without colliding with older fingerprints.
const (
	DomainQueryTree = "portalsearch/querytree/v1"
	DomainQueryText = "portalsearch/querytext/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint identifies a compiled query tree. Two queries that compile to
// the same tree share a fingerprint, however they were written.
func Fingerprint(n Node) (string, error) {
	data, err := Encode(n)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to encode: %w", err)
	}
	return hashWithDomain(DomainQueryTree, data), nil
}

// TextFingerprint identifies canonical query text under a profile.
func TextFingerprint(profile, text string) string {
	return hashWithDomain(DomainQueryText, []byte(profile+"\x00"+text))
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustFingerprint(n Node) string {
	fp, err := Fingerprint(n)
	if err != nil {
		panic(err)
	}
	return fp
}
