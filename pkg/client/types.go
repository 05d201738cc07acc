package client

import "time"

// Drift is a drift as served by the API.
type Drift struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	SourceType   string    `json:"sourceType"`
	SourceID     string    `json:"sourceId"`
	SourceTitle  string    `json:"sourceTitle"`
	SourceAuthor string    `json:"sourceAuthor"`
	SourceRef    string    `json:"sourceRef"`
	SourceAnchor string    `json:"sourceAnchor"`
	Excerpt      string    `json:"excerpt"`
	Content      string    `json:"content"`
	Tags         []string  `json:"tags"`
	Words        int       `json:"words"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DriftParams carries the fields of a drift create or update. Nil fields are
// omitted from the request body.
type DriftParams struct {
	Title        *string   `json:"title,omitempty"`
	SourceType   *string   `json:"sourceType,omitempty"`
	SourceID     *string   `json:"sourceId,omitempty"`
	SourceTitle  *string   `json:"sourceTitle,omitempty"`
	SourceAuthor *string   `json:"sourceAuthor,omitempty"`
	SourceRef    *string   `json:"sourceRef,omitempty"`
	SourceAnchor *string   `json:"sourceAnchor,omitempty"`
	Excerpt      *string   `json:"excerpt,omitempty"`
	Content      *string   `json:"content,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	Words        *int      `json:"words,omitempty"`
	Status       *string   `json:"status,omitempty"`
}

// Layer is a layer as served by the API.
type Layer struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	SourceType   string    `json:"sourceType"`
	SourceID     string    `json:"sourceId"`
	SourceTitle  string    `json:"sourceTitle"`
	SourceAuthor string    `json:"sourceAuthor"`
	SourceRef    string    `json:"sourceRef"`
	Anchor       string    `json:"anchor"`
	Text         string    `json:"text"`
	Tags         []string  `json:"tags"`
	Pinned       bool      `json:"pinned"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LayerParams carries the fields of a layer create or update.
type LayerParams struct {
	Title        *string   `json:"title,omitempty"`
	Type         *string   `json:"type,omitempty"`
	SourceType   *string   `json:"sourceType,omitempty"`
	SourceID     *string   `json:"sourceId,omitempty"`
	SourceTitle  *string   `json:"sourceTitle,omitempty"`
	SourceAuthor *string   `json:"sourceAuthor,omitempty"`
	SourceRef    *string   `json:"sourceRef,omitempty"`
	Anchor       *string   `json:"anchor,omitempty"`
	Text         *string   `json:"text,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	Pinned       *bool     `json:"pinned,omitempty"`
}

// LibraryItem is a library item as served by the API.
type LibraryItem struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	RefID     string         `json:"refId"`
	RefType   string         `json:"refType"`
	Title     string         `json:"title"`
	Author    string         `json:"author"`
	CoverURL  string         `json:"coverUrl"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// CollectParams carries the optional fields of a collect call.
type CollectParams struct {
	RefType  *string        `json:"refType,omitempty"`
	Title    *string        `json:"title,omitempty"`
	Author   *string        `json:"author,omitempty"`
	CoverURL *string        `json:"coverUrl,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// collectRequest is CollectParams plus the required refId.
type collectRequest struct {
	RefID string `json:"refId"`
	CollectParams
}
