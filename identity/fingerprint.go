package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"pitchprice/models"
)

// Fingerprint returns a short stable version id for a raw dataset
// document. Used as the store version in the load log and meta endpoint.
func Fingerprint(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

// BatchesFingerprint derives a version id for batches loaded from a
// database, where no single source document exists. Hashing the batch
// dates and row counts is enough to distinguish snapshots.
func BatchesFingerprint(batches []models.ScrapeBatch) string {
	h := sha256.New()
	for _, b := range batches {
		fmt.Fprintf(h, "%s:%d|", b.ScrapeDate, len(b.Results))
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}
