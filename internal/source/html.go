package source

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nao1215/dupmeta/internal/model"
)

// HTMLDirLoader reads a dataset from a directory of saved HTML pages,
// for example a site mirror produced by wget or a static site build.
//
// Design decision: We use golang.org/x/net/html for parsing rather than
// regex because it correctly handles the malformed markup common on the
// web and gives us the same text the browser would show.
type HTMLDirLoader struct {
	dir  string
	opts options
}

// NewHTMLDirLoader creates a loader for the HTML files under dir.
func NewHTMLDirLoader(dir string, opts ...Option) *HTMLDirLoader {
	return &HTMLDirLoader{dir: dir, opts: newOptions(opts)}
}

// Name returns the directory path.
func (l *HTMLDirLoader) Name() string {
	return l.dir
}

// Load parses every .html and .htm file below the directory in lexical
// order. A page's URL is its canonical link when present, otherwise the
// file's slash-separated path relative to the directory.
func (l *HTMLDirLoader) Load(ctx context.Context) (*model.Dataset, error) {
	pages := make([]model.Page, 0)

	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !isHTMLFile(path) {
			return nil
		}

		page, err := l.loadFile(path)
		if err != nil {
			return err
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	l.opts.logger.Debug("loaded html dataset", "dir", l.dir, "pages", len(pages))
	return model.NewDataset(l.dir, pages), nil
}

// loadFile parses one HTML file.
func (l *HTMLDirLoader) loadFile(path string) (model.Page, error) {
	f, err := os.Open(path) //nolint:gosec // Walking a user-provided directory is intentional
	if err != nil {
		return model.Page{}, err
	}
	defer f.Close()

	meta, err := ParseHTML(f)
	if err != nil {
		return model.Page{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	url := meta.Canonical
	if url == "" {
		rel, err := filepath.Rel(l.dir, path)
		if err != nil {
			return model.Page{}, err
		}
		url = filepath.ToSlash(rel)
	}

	return model.Page{
		URL:             url,
		Title:           meta.Title,
		H1:              meta.H1,
		MetaDescription: meta.Description,
	}, nil
}

// isHTMLFile reports whether path has an HTML extension.
func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}

// HTMLMetadata holds the metadata extracted from one HTML document.
type HTMLMetadata struct {
	// Title is the text of the first <title> element.
	Title string

	// H1 is the text of the first <h1> element.
	H1 string

	// Description is the content of <meta name="description">.
	Description string

	// Canonical is the href of <link rel="canonical">.
	Canonical string
}

// ParseHTML extracts the page metadata from an HTML document.
// Element text has runs of whitespace collapsed to single spaces, as a
// browser renders it.
func ParseHTML(r io.Reader) (*HTMLMetadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	meta := &HTMLMetadata{}
	var seenTitle, seenH1, seenDescription, seenCanonical bool

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if !seenTitle {
					meta.Title = nodeText(n)
					seenTitle = true
				}
			case atom.H1:
				if !seenH1 {
					meta.H1 = nodeText(n)
					seenH1 = true
				}
			case atom.Meta:
				if !seenDescription && strings.EqualFold(attr(n, "name"), "description") {
					meta.Description = attr(n, "content")
					seenDescription = true
				}
			case atom.Link:
				if !seenCanonical && hasToken(attr(n, "rel"), "canonical") {
					meta.Canonical = strings.TrimSpace(attr(n, "href"))
					seenCanonical = true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return meta, nil
}

// nodeText returns the collapsed text content of n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

// hasToken reports whether the space-separated list contains token.
func hasToken(list, token string) bool {
	for _, t := range strings.Fields(list) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}
