package domain

import "time"

// LayerType classifies an annotation.
type LayerType string

const (
	LayerTypeCommentary  LayerType = "Commentary"
	LayerTypeExplanation LayerType = "Explanation"
	LayerTypeTranslation LayerType = "Translation"
	LayerTypeCrossRef    LayerType = "Cross-ref"
)

// Valid reports whether the value is within the enum domain.
func (t LayerType) Valid() bool {
	switch t {
	case LayerTypeCommentary, LayerTypeExplanation, LayerTypeTranslation, LayerTypeCrossRef:
		return true
	}
	return false
}

// Layer is a user's annotation/commentary attached to a source passage.
// No referential integrity is enforced with Drift.
type Layer struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Title        string     `json:"title"`
	Type         LayerType  `json:"type"`
	SourceType   SourceType `json:"sourceType"`
	SourceID     string     `json:"sourceId"`
	SourceTitle  string     `json:"sourceTitle"`
	SourceAuthor string     `json:"sourceAuthor"`
	SourceRef    string     `json:"sourceRef"`
	Anchor       string     `json:"anchor"`
	Text         string     `json:"text"`
	Tags         []string   `json:"tags"`
	Pinned       bool       `json:"pinned"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Touch updates the UpdatedAt timestamp.
func (l *Layer) Touch() {
	l.UpdatedAt = time.Now()
}

// LayerPatch is a partial layer update. Nil fields are left untouched.
type LayerPatch struct {
	Title        *string     `json:"title,omitempty"`
	Type         *LayerType  `json:"type,omitempty" validate:"omitempty,oneof=Commentary Explanation Translation Cross-ref"`
	SourceType   *SourceType `json:"sourceType,omitempty" validate:"omitempty,oneof=Book Article WhitePaper Abstract"`
	SourceID     *string     `json:"sourceId,omitempty"`
	SourceTitle  *string     `json:"sourceTitle,omitempty"`
	SourceAuthor *string     `json:"sourceAuthor,omitempty"`
	SourceRef    *string     `json:"sourceRef,omitempty"`
	Anchor       *string     `json:"anchor,omitempty"`
	Text         *string     `json:"text,omitempty"`
	Tags         *[]string   `json:"tags,omitempty"`
	Pinned       *bool       `json:"pinned,omitempty"`
}

// Apply merges the patch into the layer.
func (p *LayerPatch) Apply(l *Layer) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Type != nil {
		l.Type = *p.Type
	}
	if p.SourceType != nil {
		l.SourceType = *p.SourceType
	}
	if p.SourceID != nil {
		l.SourceID = *p.SourceID
	}
	if p.SourceTitle != nil {
		l.SourceTitle = *p.SourceTitle
	}
	if p.SourceAuthor != nil {
		l.SourceAuthor = *p.SourceAuthor
	}
	if p.SourceRef != nil {
		l.SourceRef = *p.SourceRef
	}
	if p.Anchor != nil {
		l.Anchor = *p.Anchor
	}
	if p.Text != nil {
		l.Text = *p.Text
	}
	if p.Tags != nil {
		l.Tags = *p.Tags
	}
	if p.Pinned != nil {
		l.Pinned = *p.Pinned
	}
}
