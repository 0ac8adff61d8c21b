// Package docx writes reports as Word documents, either from scratch or by
// filling the tables of an existing document.
package docx

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/runoshun/jira-reports/internal/domain"
)

// Ensure Writer implements domain.WordWriter.
var _ domain.WordWriter = (*Writer)(nil)

// Writer renders reports into WordprocessingML packages.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteWord writes a new document: a title, then a heading and a table per report table.
func (w *Writer) WriteWord(report *domain.Report, path string, opts domain.WordOptions) error {
	doc := buildDocument(report, opts)
	data, err := doc.WriteToBytes()
	if err != nil {
		return err
	}
	return writeNewPackage(path, data)
}

func buildDocument(report *domain.Report, opts domain.WordOptions) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)
	body := root.CreateElement("w:body")

	color := opts.CellColor
	if color == "" {
		color = domain.DefaultCellColor
	}

	addParagraph(body, "Title", report.Name)
	for _, table := range report.Tables {
		addParagraph(body, "Heading1", table.Name)
		addTable(body, table, shadingColor(color), textWidth(opts.Landscape))
		addParagraph(body, "", "")
	}
	addSection(body, opts.Landscape)
	return doc
}

func addTable(body *etree.Element, table domain.TableData, fill string, width int) {
	cols := len(table.Headers)
	if cols == 0 {
		cols = 1
	}
	colWidth := width / cols

	tbl := body.CreateElement("w:tbl")
	tblPr := tbl.CreateElement("w:tblPr")
	setVal(tblPr.CreateElement("w:tblStyle"), "TableGrid")
	tblW := tblPr.CreateElement("w:tblW")
	tblW.CreateAttr("w:w", strconv.Itoa(colWidth*cols))
	tblW.CreateAttr("w:type", "dxa")

	grid := tbl.CreateElement("w:tblGrid")
	for i := 0; i < cols; i++ {
		grid.CreateElement("w:gridCol").CreateAttr("w:w", strconv.Itoa(colWidth))
	}

	header := tbl.CreateElement("w:tr")
	header.CreateElement("w:trPr").CreateElement("w:tblHeader")
	for _, h := range table.Headers {
		addCell(header, h, cellOptions{width: colWidth, fill: fill, bold: true, centered: true})
	}

	for _, group := range table.Groups {
		if table.Grouped() {
			tr := tbl.CreateElement("w:tr")
			addCell(tr, group.Name, cellOptions{width: colWidth * cols, span: cols, bold: true, centered: true})
		}
		for _, record := range group.Rows {
			tr := tbl.CreateElement("w:tr")
			values := record.Values()
			for c := 0; c < cols; c++ {
				text := ""
				if c < len(values) {
					text = values[c]
				}
				addCell(tr, text, cellOptions{width: colWidth})
			}
		}
	}
}
