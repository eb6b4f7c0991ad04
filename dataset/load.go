package dataset

import (
	"context"
	"log"
	"time"

	"pitchprice/identity"
	"pitchprice/models"
)

// Source fetches raw observation documents from wherever they live
// (local file, HTTP, S3). Either fetch may fail independently.
type Source interface {
	Name() string
	FetchAggregated(ctx context.Context) ([]byte, error)
	FetchLatest(ctx context.Context) ([]byte, error)
}

// Load builds a snapshot from a document source. The aggregated document
// is preferred; a latest document becomes one synthetic batch dated today.
// When neither is fetchable the store comes back empty — observation
// failures are never fatal.
func Load(ctx context.Context, src Source, now time.Time) *Store {
	today := now.Format("2006-01-02")

	if data, err := src.FetchAggregated(ctx); err != nil {
		log.Printf("Dataset: aggregated document unavailable from %s: %v", src.Name(), err)
	} else {
		batches, declared, err := ParseAggregated(data)
		if err != nil {
			log.Printf("Dataset: bad aggregated document from %s: %v", src.Name(), err)
		} else {
			return Build(batches, declared, identity.Fingerprint(data), now)
		}
	}

	if data, err := src.FetchLatest(ctx); err != nil {
		log.Printf("Dataset: latest document unavailable from %s: %v", src.Name(), err)
	} else {
		batch, declared, err := ParseLatest(data, today)
		if err != nil {
			log.Printf("Dataset: bad latest document from %s: %v", src.Name(), err)
		} else {
			return Build([]models.ScrapeBatch{batch}, declared, identity.Fingerprint(data), now)
		}
	}

	log.Printf("Dataset: no usable document from %s, store is empty", src.Name())
	return Empty(now)
}
