package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ComputeRecordID computes a deterministic record_id using SHA256.
// Formula: SHA256(store_id|product_id|date)
// Returns hex-encoded hash (64 characters).
//
// One fact row exists per store/product/date observation, so the triple
// fully identifies a record and re-ingesting the same CSV produces the
// same IDs.
func ComputeRecordID(storeID, productID string, date time.Time) string {
	data := fmt.Sprintf("%s|%s|%s",
		storeID,
		productID,
		date.UTC().Format("2006-01-02"),
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
