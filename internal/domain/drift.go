package domain

import "time"

// DriftStatus represents the publication state of a drift.
// Transitions are caller-driven; the server only enforces the enum domain.
type DriftStatus string

const (
	DriftStatusDraft     DriftStatus = "draft"
	DriftStatusPublished DriftStatus = "published"
	DriftStatusArchived  DriftStatus = "archived"
)

// Valid reports whether the value is within the enum domain.
func (s DriftStatus) Valid() bool {
	switch s {
	case DriftStatusDraft, DriftStatusPublished, DriftStatusArchived:
		return true
	}
	return false
}

// Drift is a user's draft/published writing artifact tied to a source passage.
// Each drift is exclusively owned by its UserID.
type Drift struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	Title        string      `json:"title"`
	SourceType   SourceType  `json:"sourceType"`
	SourceID     string      `json:"sourceId"`
	SourceTitle  string      `json:"sourceTitle"`
	SourceAuthor string      `json:"sourceAuthor"`
	SourceRef    string      `json:"sourceRef"`
	SourceAnchor string      `json:"sourceAnchor"`
	Excerpt      string      `json:"excerpt"`
	Content      string      `json:"content"`
	Tags         []string    `json:"tags"`
	Words        int         `json:"words"`
	Status       DriftStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Touch updates the UpdatedAt timestamp.
func (d *Drift) Touch() {
	d.UpdatedAt = time.Now()
}

// DriftPatch is a partial drift update. Nil fields are left untouched.
type DriftPatch struct {
	Title        *string      `json:"title,omitempty"`
	SourceType   *SourceType  `json:"sourceType,omitempty" validate:"omitempty,oneof=Book Article WhitePaper Abstract"`
	SourceID     *string      `json:"sourceId,omitempty"`
	SourceTitle  *string      `json:"sourceTitle,omitempty"`
	SourceAuthor *string      `json:"sourceAuthor,omitempty"`
	SourceRef    *string      `json:"sourceRef,omitempty"`
	SourceAnchor *string      `json:"sourceAnchor,omitempty"`
	Excerpt      *string      `json:"excerpt,omitempty"`
	Content      *string      `json:"content,omitempty"`
	Tags         *[]string    `json:"tags,omitempty"`
	Words        *int         `json:"words,omitempty" validate:"omitempty,gte=0"`
	Status       *DriftStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
}

// Apply merges the patch into the drift. Last writer wins; there is no
// conflict detection.
func (p *DriftPatch) Apply(d *Drift) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.SourceType != nil {
		d.SourceType = *p.SourceType
	}
	if p.SourceID != nil {
		d.SourceID = *p.SourceID
	}
	if p.SourceTitle != nil {
		d.SourceTitle = *p.SourceTitle
	}
	if p.SourceAuthor != nil {
		d.SourceAuthor = *p.SourceAuthor
	}
	if p.SourceRef != nil {
		d.SourceRef = *p.SourceRef
	}
	if p.SourceAnchor != nil {
		d.SourceAnchor = *p.SourceAnchor
	}
	if p.Excerpt != nil {
		d.Excerpt = *p.Excerpt
	}
	if p.Content != nil {
		d.Content = *p.Content
	}
	if p.Tags != nil {
		d.Tags = *p.Tags
	}
	if p.Words != nil {
		d.Words = *p.Words
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
}
