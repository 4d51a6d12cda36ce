package domain

import "time"

// ─── Generation Types ───────────────────────────────────────────────────────

// GenerationStatus tracks a generation record through the external workflow.
type GenerationStatus string

const (
	GenerationReady      GenerationStatus = "Ready"
	GenerationProcessing GenerationStatus = "Processing"
	GenerationFailed     GenerationStatus = "Failed"
)

// Generation is a record of one produced ad asset. The asset itself lives
// behind AssetURL; this is only the dashboard-facing metadata.
type Generation struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Title     string           `json:"title"`
	Type      string           `json:"type"` // e.g. "Image", "UGC Video", "VFX"
	Status    GenerationStatus `json:"status"`
	AssetURL  string           `json:"assetUrl,omitempty"`
	Content   string           `json:"content,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
