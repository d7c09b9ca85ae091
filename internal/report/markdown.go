package report

import (
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/dupmeta/internal/model"
)

// MarkdownWriter outputs the summary in GitHub Flavored Markdown.
// It is meant for pull request comments and shared documentation.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(analysis *model.Analysis) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, analysis)
	w.writeStages(md, analysis)
	w.writeSamples(md, analysis)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, analysis *model.Analysis) {
	md.H1("SEO Duplicate Content Analysis Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + analysis.Source + "`"},
			{"Analysis Date", analysis.StartedAt.Format(DateLayout)},
			{"Pages Analyzed", strconv.Itoa(analysis.TotalPages)},
			{"Pages Claimed", strconv.Itoa(analysis.ExcludedPages)},
		},
	})
	md.PlainText("")
}

// writeStages writes the per-stage table, the distribution chart and an alert.
func (w *MarkdownWriter) writeStages(md *markdown.Markdown, analysis *model.Analysis) {
	md.H2("Stages")
	md.PlainText("")

	rows := make([][]string, 0, len(analysis.Stages))
	for _, stage := range analysis.Stages {
		artifact := "-"
		if stage.HasGroups() {
			artifact = "`" + stage.ArtifactName() + "`"
		}
		rows = append(rows, []string{
			stage.DisplayLabel(),
			strconv.Itoa(stage.GroupCount()),
			strconv.Itoa(stage.PageCount()),
			artifact,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Stage", "Groups", "Pages", "Report"},
		Rows:   rows,
	})
	md.PlainText("")

	if analysis.HasDuplicates() {
		w.writePieChart(md, analysis)
		md.Warningf("%d duplicate group(s) found across %d stage(s).",
			analysis.TotalGroups(), len(analysis.StagesWithGroups()))
	} else {
		md.Tip("No duplicate metadata detected.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of duplicate pages per stage.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, analysis *model.Analysis) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Duplicate Pages per Stage"),
		piechart.WithShowData(true),
	)

	for _, stage := range analysis.StagesWithGroups() {
		chart.LabelAndIntValue(stage.DisplayLabel(), uint64(stage.PageCount())) //nolint:gosec // page counts are never negative
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeSamples lists the top groups of every stage that found duplicates.
func (w *MarkdownWriter) writeSamples(md *markdown.Markdown, analysis *model.Analysis) {
	stages := analysis.StagesWithGroups()
	if len(stages) == 0 {
		return
	}

	md.H2("Top Groups")
	md.PlainText("")

	for _, stage := range stages {
		md.H3(stage.DisplayLabel())
		md.PlainText("")
		md.PlainText(stage.Description)
		md.PlainText("")

		rows := make([][]string, 0, DefaultSampleCount)
		for i, g := range stage.Groups {
			if i >= DefaultSampleCount {
				break
			}
			rows = append(rows, []string{
				strconv.Itoa(g.ID),
				runewidth.Truncate(g.Key, DefaultSampleWidth, "..."),
				strconv.Itoa(g.Size()),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Group ID", "Key", "Pages"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [dupmeta](https://github.com/nao1215/dupmeta)*")
}
