package model

// DefaultURLColumn is the dataset column holding the page URL.
const DefaultURLColumn = "Full URL"

// Page represents one row of the analyzed dataset.
// The URL is the identity of the page; the other fields are free text and
// may be empty.
type Page struct {
	// URL is the full URL of the page.
	URL string `json:"url"`

	// Title is the raw contents of the <title> element.
	Title string `json:"title"`

	// H1 is the raw text of the page's first <h1> element.
	H1 string `json:"h1"`

	// MetaDescription is the raw content of <meta name="description">.
	MetaDescription string `json:"meta_description"`
}

// Value returns the raw value of the given field.
// The second return value is false when f is not a known field.
func (p Page) Value(f Field) (string, bool) {
	switch f {
	case FieldTitle:
		return p.Title, true
	case FieldH1:
		return p.H1, true
	case FieldMetaDescription:
		return p.MetaDescription, true
	default:
		return "", false
	}
}

// Dataset is an ordered collection of pages loaded from a single source.
// It is never modified after loading; filtering returns a new Dataset.
type Dataset struct {
	// Source names where the pages were loaded from (file path or table).
	Source string

	// Pages holds the rows in source order.
	Pages []Page
}

// NewDataset creates a Dataset over the given pages.
func NewDataset(source string, pages []Page) *Dataset {
	return &Dataset{Source: source, Pages: pages}
}

// Len returns the number of pages in the dataset.
func (d *Dataset) Len() int {
	return len(d.Pages)
}

// Without returns a new Dataset that omits pages whose URL satisfies
// excluded. Page order is preserved.
func (d *Dataset) Without(excluded func(url string) bool) *Dataset {
	pages := make([]Page, 0, len(d.Pages))
	for _, p := range d.Pages {
		if excluded(p.URL) {
			continue
		}
		pages = append(pages, p)
	}
	return &Dataset{Source: d.Source, Pages: pages}
}
