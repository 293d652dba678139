package score

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefix for content-addressed timeline identity.
// Version suffix enables future algorithm migration.
const DomainTimeline = "ostinato/timeline/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TimelineHash computes the content-addressed hash of a timeline.
//
// The hash is taken over the canonical snapshot of the time-ordered
// events, so two timelines that sort to the same sequence hash
// identically regardless of insertion interleaving. Rendering the same
// piece with the same seed therefore always reproduces the same hash,
// which is what the replay command verifies.
func TimelineHash(t *Timeline) (string, error) {
	canonical, err := MarshalCanonical(SnapshotEvents(t.Ordered()))
	if err != nil {
		return "", fmt.Errorf("TimelineHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTimeline, canonical), nil
}

// MustTimelineHash is like TimelineHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustTimelineHash(t *Timeline) string {
	h, err := TimelineHash(t)
	if err != nil {
		panic(err)
	}
	return h
}
