package domain

import "time"

// LibraryItem is a per-user bookmark referencing an external catalog entry.
// At most one item exists per (UserID, RefID) pair; the store enforces this
// with a compound unique index.
type LibraryItem struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	RefID     string         `json:"refId"`
	RefType   SourceType     `json:"refType"`
	Title     string         `json:"title"`
	Author    string         `json:"author"`
	CoverURL  string         `json:"coverUrl"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Touch updates the UpdatedAt timestamp.
func (i *LibraryItem) Touch() {
	i.UpdatedAt = time.Now()
}

// LibraryItemPatch carries the caller-supplied fields of a collect call.
// Nil fields are left untouched on update and defaulted on insert. A non-nil
// Meta replaces the stored map wholesale.
type LibraryItemPatch struct {
	RefType  *SourceType    `json:"refType,omitempty" validate:"omitempty,oneof=Book Article WhitePaper Abstract"`
	Title    *string        `json:"title,omitempty"`
	Author   *string        `json:"author,omitempty"`
	CoverURL *string        `json:"coverUrl,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// Apply merges the patch into the item.
func (p *LibraryItemPatch) Apply(i *LibraryItem) {
	if p.RefType != nil {
		i.RefType = *p.RefType
	}
	if p.Title != nil {
		i.Title = *p.Title
	}
	if p.Author != nil {
		i.Author = *p.Author
	}
	if p.CoverURL != nil {
		i.CoverURL = *p.CoverURL
	}
	if p.Meta != nil {
		i.Meta = p.Meta
	}
}
