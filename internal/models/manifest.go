package models

import "time"

// ImageManifest registers the image samples a Phase 2 saliency preview can
// reference. Nothing is fetched or decoded yet; samples are opaque refs.
type ImageManifest struct {
	ID        string    `json:"manifest_id"`
	DatasetID string    `json:"dataset_id"`
	Samples   []string  `json:"samples"`
	Phase     string    `json:"phase"`
	CreatedAt time.Time `json:"created_at"`
}
