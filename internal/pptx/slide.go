package pptx

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/ivlev/autoslide/internal/pptx/ooxml"
)

// Slide is a slide of the presentation.
type Slide struct {
	prs    *Presentation
	part   string
	doc    *etree.Document
	rels   *relSet
	layout *Layout
}

// skipped placeholder types are left to the master, as PowerPoint does.
var skipped = map[string]bool{"dt": true, "ftr": true, "sldNum": true}

func (p *Presentation) openSlide(name string) (*Slide, error) {
	doc, err := p.xml(name)
	if err != nil {
		return nil, err
	}
	rels, err := p.relsFor(name)
	if err != nil {
		return nil, err
	}
	s := &Slide{prs: p, part: name, doc: doc, rels: rels}
	if r := rels.first(ooxml.RelSlideLayout); r != nil {
		target := rels.resolve(r)
		for _, l := range p.layouts {
			if l.part == target {
				s.layout = l
			}
		}
	}
	return s, nil
}

// AddSlide appends a slide based on layout. Placeholders of the layout are
// copied except date, footer and slide number.
func (p *Presentation) AddSlide(layout *Layout) (*Slide, error) {
	if layout == nil {
		return nil, fmt.Errorf("add slide: nil layout")
	}
	name := p.nextPartName("ppt/slides/slide", ".xml")
	doc := parseXML(ooxml.Header + `<p:sld xmlns:a="` + ooxml.NsA + `" xmlns:r="` + ooxml.NsR + `" xmlns:p="` + ooxml.NsP + `">` +
		`<p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr/></p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)

	tree := spTree(doc)
	nextID := 2
	for _, src := range layout.Placeholders() {
		ph, _ := src.Placeholder()
		if skipped[ph.Type] {
			continue
		}
		tree.AddChild(clonePlaceholder(src, nextID))
		nextID++
	}
	p.putXML(name, doc, ooxml.CTSlide)

	rels, err := p.relsFor(name)
	if err != nil {
		return nil, err
	}
	rels.add(ooxml.RelSlideLayout, layout.part)

	presRels, err := p.relsFor(p.presPth)
	if err != nil {
		return nil, err
	}
	rID := presRels.add(ooxml.RelSlide, name)
	p.appendSlideID(rID)

	s := &Slide{prs: p, part: name, doc: doc, rels: rels, layout: layout}
	p.slides = append(p.slides, s)
	return s, nil
}

func clonePlaceholder(src *Shape, id int) *etree.Element {
	sp := etree.NewElement("p:sp")
	nv := sp.CreateElement("p:nvSpPr")
	c := nv.CreateElement("p:cNvPr")
	c.CreateAttr("id", strconv.Itoa(id))
	c.CreateAttr("name", src.Name())
	nv.CreateElement("p:cNvSpPr").CreateElement("a:spLocks").CreateAttr("noGrp", "1")
	ph := nv.CreateElement("p:nvPr").CreateElement("p:ph")
	if orig := nvProps(src.el).FindElement("./p:nvPr/p:ph"); orig != nil {
		for _, key := range []string{"type", "orient", "sz", "idx"} {
			if v := orig.SelectAttrValue(key, ""); v != "" {
				ph.CreateAttr(key, v)
			}
		}
	}
	sp.CreateElement("p:spPr")
	if src.Kind() == "sp" {
		body := sp.CreateElement("p:txBody")
		body.CreateElement("a:bodyPr")
		body.CreateElement("a:lstStyle")
		body.CreateElement("a:p")
	}
	return sp
}

func (p *Presentation) appendSlideID(rID string) {
	root := p.presDoc.Root()
	lst := root.SelectElement("p:sldIdLst")
	if lst == nil {
		lst = etree.NewElement("p:sldIdLst")
		insertBefore(root, lst, "p:sldSz", "p:notesSz", "p:smartTags", "p:embeddedFontLst",
			"p:custShowLst", "p:photoAlbum", "p:custDataLst", "p:kinsoku", "p:defaultTextStyle",
			"p:modifyVerifier", "p:extLst")
	}
	id := 255
	for _, s := range lst.SelectElements("p:sldId") {
		if v, err := strconv.Atoi(s.SelectAttrValue("id", "0")); err == nil && v > id {
			id = v
		}
	}
	e := lst.CreateElement("p:sldId")
	e.CreateAttr("id", strconv.Itoa(id+1))
	e.CreateAttr("r:id", rID)
}

// Layout returns the layout the slide was created from, or nil.
func (s *Slide) Layout() *Layout { return s.layout }

// PartName is the slide's path inside the package.
func (s *Slide) PartName() string { return s.part }

// Shapes returns the slide's top-level shapes.
func (s *Slide) Shapes() []*Shape {
	return shapesIn(spTree(s.doc))
}

// Shape returns the shape with the given id.
func (s *Slide) Shape(id int) (*Shape, bool) {
	for _, sh := range s.Shapes() {
		if sh.ID() == id {
			return sh, true
		}
	}
	return nil, false
}

// Placeholder returns the placeholder with the given idx.
func (s *Slide) Placeholder(idx int) (*Shape, bool) {
	for _, sh := range s.Shapes() {
		if ph, ok := sh.Placeholder(); ok && ph.Idx == idx {
			return sh, true
		}
	}
	return nil, false
}

// Placeholders returns the slide's placeholder shapes.
func (s *Slide) Placeholders() []*Shape {
	var out []*Shape
	for _, sh := range s.Shapes() {
		if _, ok := sh.Placeholder(); ok {
			out = append(out, sh)
		}
	}
	return out
}

// appendShape adds el to the shape tree and returns it as a Shape.
func (s *Slide) appendShape(el *etree.Element) *Shape {
	insertBefore(spTree(s.doc), el, "p:extLst")
	return &Shape{el: el}
}

func (s *Slide) nextShapeID() int {
	return maxShapeID(spTree(s.doc)) + 1
}
