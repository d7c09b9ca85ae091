package report

import (
	"strconv"

	"github.com/nao1215/dupmeta/internal/dedup"
	"github.com/nao1215/dupmeta/internal/model"
)

// DescriptionLabel fills the Group ID cell of a report's first row.
const DescriptionLabel = "REPORT DESCRIPTION"

// Header is the column header of every stage report.
var Header = []string{"Group ID", "URL", "Title", "H1", "Meta Description"}

// Row is one line of a stage report.
type Row struct {
	GroupID         string
	URL             string
	Title           string
	H1              string
	MetaDescription string
}

// Cells returns the row in Header order.
func (r Row) Cells() []string {
	return []string{r.GroupID, r.URL, r.Title, r.H1, r.MetaDescription}
}

// Rows flattens a stage result into report rows: the description row, a
// blank row, then one row per page, contiguous by group in discovery
// order. Field values are normalized.
func Rows(result *model.StageResult) []Row {
	rows := make([]Row, 0, result.PageCount()+2)
	rows = append(rows,
		Row{GroupID: DescriptionLabel, URL: result.Description},
		Row{},
	)

	for _, g := range result.Groups {
		id := strconv.Itoa(g.ID)
		for _, p := range g.Pages {
			rows = append(rows, Row{
				GroupID:         id,
				URL:             p.URL,
				Title:           dedup.Normalize(p.Title),
				H1:              dedup.Normalize(p.H1),
				MetaDescription: dedup.Normalize(p.MetaDescription),
			})
		}
	}
	return rows
}
