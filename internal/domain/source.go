package domain

// SourceType identifies the kind of catalog entry a drift, layer, or library
// item refers to.
type SourceType string

const (
	SourceTypeBook       SourceType = "Book"
	SourceTypeArticle    SourceType = "Article"
	SourceTypeWhitePaper SourceType = "WhitePaper"
	SourceTypeAbstract   SourceType = "Abstract"
)

// Valid reports whether the value is within the enum domain.
func (t SourceType) Valid() bool {
	switch t {
	case SourceTypeBook, SourceTypeArticle, SourceTypeWhitePaper, SourceTypeAbstract:
		return true
	}
	return false
}
