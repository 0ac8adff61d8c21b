package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// WordprocessingML namespaces.
const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Page geometry in twentieths of a point (US Letter, 1 inch margins).
const (
	pageShort = 12240
	pageLong  = 15840
	margin    = 1440
)

func setVal(e *etree.Element, val string) *etree.Element {
	e.CreateAttr("w:val", val)
	return e
}

// addParagraph appends a paragraph with an optional style to parent.
func addParagraph(parent *etree.Element, style, text string) *etree.Element {
	p := parent.CreateElement("w:p")
	if style != "" {
		setVal(p.CreateElement("w:pPr").CreateElement("w:pStyle"), style)
	}
	if text != "" {
		addRun(p, nil, text)
	}
	return p
}

// addRun appends a run to p. rPr, when set, is copied into the run.
// Line feeds in text become line breaks.
func addRun(p, rPr *etree.Element, text string) {
	r := p.CreateElement("w:r")
	if rPr != nil {
		r.AddChild(rPr.Copy())
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			r.CreateElement("w:br")
		}
		t := r.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(line)
	}
}

// cellOptions tunes addCell.
type cellOptions struct {
	fill     string // Shading color without '#'
	width    int
	span     int
	bold     bool
	centered bool
}

func addCell(tr *etree.Element, text string, opts cellOptions) {
	tc := tr.CreateElement("w:tc")
	tcPr := tc.CreateElement("w:tcPr")
	tcW := tcPr.CreateElement("w:tcW")
	tcW.CreateAttr("w:w", strconv.Itoa(opts.width))
	tcW.CreateAttr("w:type", "dxa")
	if opts.span > 1 {
		setVal(tcPr.CreateElement("w:gridSpan"), strconv.Itoa(opts.span))
	}
	if opts.fill != "" {
		shd := tcPr.CreateElement("w:shd")
		shd.CreateAttr("w:val", "clear")
		shd.CreateAttr("w:color", "auto")
		shd.CreateAttr("w:fill", opts.fill)
	}
	if opts.centered {
		setVal(tcPr.CreateElement("w:vAlign"), "center")
	}

	p := tc.CreateElement("w:p")
	if opts.centered {
		setVal(p.CreateElement("w:pPr").CreateElement("w:jc"), "center")
	}
	var rPr *etree.Element
	if opts.bold {
		rPr = etree.NewElement("w:rPr")
		rPr.CreateElement("w:b")
	}
	addRun(p, rPr, text)
}

// addSection appends the section properties that close the body.
func addSection(body *etree.Element, landscape bool) {
	sectPr := body.CreateElement("w:sectPr")
	pgSz := sectPr.CreateElement("w:pgSz")
	if landscape {
		pgSz.CreateAttr("w:w", strconv.Itoa(pageLong))
		pgSz.CreateAttr("w:h", strconv.Itoa(pageShort))
		pgSz.CreateAttr("w:orient", "landscape")
	} else {
		pgSz.CreateAttr("w:w", strconv.Itoa(pageShort))
		pgSz.CreateAttr("w:h", strconv.Itoa(pageLong))
	}
	pgMar := sectPr.CreateElement("w:pgMar")
	for _, side := range []string{"top", "right", "bottom", "left"} {
		pgMar.CreateAttr("w:"+side, strconv.Itoa(margin))
	}
	pgMar.CreateAttr("w:header", "720")
	pgMar.CreateAttr("w:footer", "720")
	pgMar.CreateAttr("w:gutter", "0")
}

// textWidth returns the usable width between the margins.
func textWidth(landscape bool) int {
	if landscape {
		return pageLong - 2*margin
	}
	return pageShort - 2*margin
}

// cellText returns the concatenated text of every run in e.
func cellText(e *etree.Element) string {
	var sb strings.Builder
	for _, t := range e.FindElements(".//w:t") {
		sb.WriteString(t.Text())
	}
	return sb.String()
}

// shadingColor turns "#85b1ed" into "85B1ED".
func shadingColor(color string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(color), "#"))
}
