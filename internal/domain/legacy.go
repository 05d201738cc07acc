package domain

import "time"

// LegacyNote is a row from the pre-migration notes collection. The server
// never writes this collection; it survives purely as a read-time fallback
// source for users who have not yet created any drifts.
type LegacyNote struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ArticleTitle string    `json:"articleTitle,omitempty"`
	Title        string    `json:"title,omitempty"`
	BookID       string    `json:"bookId,omitempty"`
	Verse        string    `json:"verse,omitempty"`
	BlockID      string    `json:"blockId,omitempty"`
	Excerpt      string    `json:"excerpt,omitempty"` // may contain HTML
	Timestamp    time.Time `json:"timestamp"`
}

// DisplayTitle returns the legacy title, preferring articleTitle.
func (n *LegacyNote) DisplayTitle() string {
	if n.ArticleTitle != "" {
		return n.ArticleTitle
	}
	return n.Title
}

// AnchorValue returns the legacy anchor, preferring verse over blockId.
func (n *LegacyNote) AnchorValue() string {
	if n.Verse != "" {
		return n.Verse
	}
	return n.BlockID
}
