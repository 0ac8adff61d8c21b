package docx

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/runoshun/jira-reports/internal/domain"
)

// keywordRow is the zero-based row of a template table holding the keyword.
const keywordRow = 1

// FillTemplate writes a copy of templatePath to path with report rows placed
// into the template tables located by each table's keyword.
//
// A template table matches when the first cell of its second row reads the
// keyword; the last matching table wins. That row is used as the row model:
// it is cloned once per record and the copies replace it. Group headings of
// grouped tables span the whole row. Tables without a keyword are ignored;
// tables whose keyword is absent, or whose row model is narrower than the
// table, are reported as warnings.
func (w *Writer) FillTemplate(report *domain.Report, templatePath, path string) ([]domain.TemplateWarning, error) {
	if same, err := samePath(templatePath, path); err != nil {
		return nil, err
	} else if same {
		return nil, fmt.Errorf("output %s would overwrite the template", filepath.Base(path))
	}

	data, err := readDocumentPart(templatePath)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", documentPart, err)
	}

	tables := doc.FindElements("//w:tbl")
	var warnings []domain.TemplateWarning
	for _, table := range report.Tables {
		if strings.TrimSpace(table.Keyword) == "" {
			continue
		}
		target := findKeywordTable(tables, table.Keyword)
		if target == nil {
			warnings = append(warnings, domain.TemplateWarning{Table: table.Name, Err: domain.ErrTemplateTableNotFound})
			continue
		}
		if !fillTable(target, table) {
			warnings = append(warnings, domain.TemplateWarning{Table: table.Name, Err: domain.ErrTemplateRowTruncated})
		}
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, err
	}
	if err := copyPackage(templatePath, path, out); err != nil {
		return nil, err
	}
	return warnings, nil
}

// findKeywordTable returns the last table whose keyword cell reads keyword.
func findKeywordTable(tables []*etree.Element, keyword string) *etree.Element {
	keyword = strings.TrimSpace(keyword)
	var found *etree.Element
	for _, tbl := range tables {
		rows := tbl.SelectElements("w:tr")
		if len(rows) <= keywordRow {
			continue
		}
		cells := rows[keywordRow].SelectElements("w:tc")
		if len(cells) == 0 {
			continue
		}
		if strings.TrimSpace(cellText(cells[0])) == keyword {
			found = tbl
		}
	}
	return found
}

// templateRow is one row to write into a template table.
type templateRow struct {
	values []string
	group  bool
}

// fillTable replaces the keyword row of tbl with one row per record.
// It returns false when some values did not fit the cells of the row model.
func fillTable(tbl *etree.Element, table domain.TableData) bool {
	model := tbl.SelectElements("w:tr")[keywordRow]
	index := model.Index()
	tbl.RemoveChild(model)

	var rows []templateRow
	for _, group := range table.Groups {
		if table.Grouped() {
			rows = append(rows, templateRow{values: []string{group.Name}, group: true})
		}
		for _, record := range group.Rows {
			rows = append(rows, templateRow{values: record.Values()})
		}
	}
	if len(rows) == 0 {
		rows = append(rows, templateRow{})
	}

	complete := true
	for i, row := range rows {
		tr := model.Copy()
		cells := tr.SelectElements("w:tc")
		if row.group {
			mergeGroupRow(tr, cells, row.values[0])
		} else {
			if len(row.values) > len(cells) {
				complete = false
			}
			for c, tc := range cells {
				text := ""
				if c < len(row.values) {
					text = row.values[c]
				}
				setCellText(tc, text)
			}
		}
		tbl.InsertChildAt(index+i, tr)
	}
	return complete
}

// mergeGroupRow turns a copy of the row model into a single bold, centered
// cell spanning every column of the row.
func mergeGroupRow(tr *etree.Element, cells []*etree.Element, name string) {
	if len(cells) == 0 {
		return
	}
	first := cells[0]
	span, width := 0, 0
	for _, tc := range cells {
		span += gridSpan(tc)
		width += cellWidth(tc)
	}
	for _, tc := range cells[1:] {
		tr.RemoveChild(tc)
	}

	tcPr := ensureFirstChild(first, "w:tcPr")
	if span > 1 {
		gs := tcPr.SelectElement("w:gridSpan")
		if gs == nil {
			gs = etree.NewElement("w:gridSpan")
			insertAfter(tcPr, gs, "tcW", "cnfStyle")
		}
		setVal(gs, strconv.Itoa(span))
	}
	if tcW := tcPr.SelectElement("w:tcW"); tcW != nil && width > 0 {
		tcW.CreateAttr("w:w", strconv.Itoa(width))
	}

	setCellText(first, name)
	p := first.SelectElement("w:p")
	pPr := ensureFirstChild(p, "w:pPr")
	jc := pPr.SelectElement("w:jc")
	if jc == nil {
		jc = etree.NewElement("w:jc")
		if rPr := pPr.SelectElement("w:rPr"); rPr != nil {
			pPr.InsertChildAt(rPr.Index(), jc)
		} else {
			pPr.AddChild(jc)
		}
	}
	setVal(jc, "center")
	for _, r := range p.SelectElements("w:r") {
		rPr := ensureFirstChild(r, "w:rPr")
		if rPr.SelectElement("w:b") == nil {
			insertAfter(rPr, etree.NewElement("w:b"), "rStyle", "rFonts")
		}
	}
}

// gridSpan returns the number of grid columns covered by tc.
func gridSpan(tc *etree.Element) int {
	if gs := tc.FindElement("./w:tcPr/w:gridSpan"); gs != nil {
		if n, err := strconv.Atoi(gs.SelectAttrValue("w:val", "1")); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

// cellWidth returns the dxa width of tc, or 0 when it is not fixed.
func cellWidth(tc *etree.Element) int {
	tcW := tc.FindElement("./w:tcPr/w:tcW")
	if tcW == nil || tcW.SelectAttrValue("w:type", "dxa") != "dxa" {
		return 0
	}
	n, err := strconv.Atoi(tcW.SelectAttrValue("w:w", "0"))
	if err != nil {
		return 0
	}
	return n
}

// ensureFirstChild returns the tag child of parent, creating it as the first child.
func ensureFirstChild(parent *etree.Element, tag string) *etree.Element {
	if e := parent.SelectElement(tag); e != nil {
		return e
	}
	e := etree.NewElement(tag)
	parent.InsertChildAt(0, e)
	return e
}

// insertAfter inserts child into parent after the last element named in
// before, or first when none of them is present.
func insertAfter(parent, child *etree.Element, before ...string) {
	index := 0
	for _, e := range parent.ChildElements() {
		for _, tag := range before {
			if e.Tag == tag {
				index = e.Index() + 1
			}
		}
	}
	parent.InsertChildAt(index, child)
}

// setCellText replaces the content of a cell, keeping the formatting of its
// first paragraph and first run.
func setCellText(tc *etree.Element, text string) {
	paragraphs := tc.SelectElements("w:p")
	if len(paragraphs) == 0 {
		addParagraph(tc, "", text)
		return
	}

	p := paragraphs[0]
	for _, extra := range paragraphs[1:] {
		tc.RemoveChild(extra)
	}
	var rPr *etree.Element
	if r := p.SelectElement("w:r"); r != nil {
		rPr = r.SelectElement("w:rPr")
	}
	for _, child := range p.ChildElements() {
		if child.Tag != "pPr" {
			p.RemoveChild(child)
		}
	}
	if text != "" {
		addRun(p, rPr, text)
	}
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
