package pptx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Placeholder identifies a placeholder by index and type. Type is "obj"
// when the XML leaves it implicit.
type Placeholder struct {
	Idx  int
	Type string
}

// Shape is a shape element inside a slide, layout or notes tree.
type Shape struct {
	el *etree.Element
}

func nvProps(el *etree.Element) *etree.Element {
	for _, c := range el.ChildElements() {
		if strings.HasPrefix(c.Tag, "nv") && strings.HasSuffix(c.Tag, "Pr") {
			return c
		}
	}
	return nil
}

func shapeID(el *etree.Element) int {
	nv := nvProps(el)
	if nv == nil {
		return 0
	}
	c := nv.SelectElement("p:cNvPr")
	if c == nil {
		return 0
	}
	id, _ := strconv.Atoi(c.SelectAttrValue("id", "0"))
	return id
}

func placeholderOf(el *etree.Element) (Placeholder, bool) {
	nv := nvProps(el)
	if nv == nil {
		return Placeholder{}, false
	}
	ph := nv.FindElement("./p:nvPr/p:ph")
	if ph == nil {
		return Placeholder{}, false
	}
	idx, _ := strconv.Atoi(ph.SelectAttrValue("idx", "0"))
	return Placeholder{Idx: idx, Type: ph.SelectAttrValue("type", "obj")}, true
}

// ID is the shape's cNvPr id, unique within its slide.
func (s *Shape) ID() int { return shapeID(s.el) }

// Kind is the element name: sp, pic, graphicFrame, grpSp or cxnSp.
func (s *Shape) Kind() string { return s.el.Tag }

func (s *Shape) Name() string {
	if nv := nvProps(s.el); nv != nil {
		if c := nv.SelectElement("p:cNvPr"); c != nil {
			return c.SelectAttrValue("name", "")
		}
	}
	return ""
}

// Placeholder reports the shape's placeholder properties, if it is one.
func (s *Shape) Placeholder() (Placeholder, bool) { return placeholderOf(s.el) }

// Offset returns the shape's position in EMU, if it has an explicit one.
func (s *Shape) Offset() (x, y int64, ok bool) {
	off := s.el.FindElement("./p:spPr/a:xfrm/a:off")
	if off == nil {
		return 0, 0, false
	}
	x, _ = strconv.ParseInt(off.SelectAttrValue("x", "0"), 10, 64)
	y, _ = strconv.ParseInt(off.SelectAttrValue("y", "0"), 10, 64)
	return x, y, true
}

// Extent returns the shape's size in EMU, if it has an explicit one.
func (s *Shape) Extent() (cx, cy int64, ok bool) {
	ext := s.el.FindElement("./p:spPr/a:xfrm/a:ext")
	if ext == nil {
		return 0, 0, false
	}
	cx, _ = strconv.ParseInt(ext.SelectAttrValue("cx", "0"), 10, 64)
	cy, _ = strconv.ParseInt(ext.SelectAttrValue("cy", "0"), 10, 64)
	return cx, cy, true
}

// Text returns the shape's paragraphs joined by newlines.
func (s *Shape) Text() string {
	body := s.el.SelectElement("p:txBody")
	if body == nil {
		return ""
	}
	var paras []string
	for _, p := range body.SelectElements("a:p") {
		var b strings.Builder
		for _, t := range p.FindElements(".//a:t") {
			b.WriteString(t.Text())
		}
		paras = append(paras, b.String())
	}
	return strings.Join(paras, "\n")
}

// SetText replaces the shape's text, one paragraph per line. Body and
// list properties are kept.
func (s *Shape) SetText(text string) {
	body := s.el.SelectElement("p:txBody")
	if body == nil {
		body = etree.NewElement("p:txBody")
		body.CreateElement("a:bodyPr")
		body.CreateElement("a:lstStyle")
		insertBefore(s.el, body, "p:extLst")
	}
	for _, p := range body.SelectElements("a:p") {
		body.RemoveChild(p)
	}
	for _, line := range strings.Split(text, "\n") {
		p := body.CreateElement("a:p")
		if line == "" {
			continue
		}
		r := p.CreateElement("a:r")
		r.CreateElement("a:rPr").CreateAttr("lang", "en-US")
		r.CreateElement("a:t").SetText(line)
	}
}

func spTree(doc *etree.Document) *etree.Element {
	return doc.Root().FindElement("./p:cSld/p:spTree")
}

func shapesIn(tree *etree.Element) []*Shape {
	if tree == nil {
		return nil
	}
	var out []*Shape
	for _, c := range tree.ChildElements() {
		switch c.Tag {
		case "nvGrpSpPr", "grpSpPr", "extLst":
			continue
		}
		out = append(out, &Shape{el: c})
	}
	return out
}

func maxShapeID(tree *etree.Element) int {
	n := 0
	for _, c := range tree.FindElements(".//p:cNvPr") {
		if id, err := strconv.Atoi(c.SelectAttrValue("id", "0")); err == nil && id > n {
			n = id
		}
	}
	return n
}

func itoa(n int) string { return strconv.Itoa(n) }
