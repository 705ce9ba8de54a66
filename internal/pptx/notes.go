package pptx

import (
	"github.com/beevik/etree"

	"github.com/ivlev/autoslide/internal/pptx/ooxml"
)

const pptxNS = `xmlns:a="` + ooxml.NsA + `" xmlns:r="` + ooxml.NsR + `" xmlns:p="` + ooxml.NsP + `"`

const notesShapes = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
	`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Slide Image Placeholder 1"/><p:cNvSpPr><a:spLocks noGrp="1" noRot="1" noChangeAspect="1"/></p:cNvSpPr>` +
	`<p:nvPr><p:ph type="sldImg"/></p:nvPr></p:nvSpPr><p:spPr/></p:sp>` +
	`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Notes Placeholder 2"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>` +
	`<p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr><p:spPr/>` +
	`<p:txBody><a:bodyPr/><a:lstStyle/><a:p/></p:txBody></p:sp>`

const notesMasterXML = ooxml.Header + `<p:notesMaster ` + pptxNS + `><p:cSld>` +
	`<p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg>` +
	`<p:spTree>` + notesShapes + `</p:spTree></p:cSld><p:clrMap ` + ooxml.ClrMap + `/></p:notesMaster>`

const notesSlideXML = ooxml.Header + `<p:notes ` + pptxNS + `><p:cSld><p:spTree>` + notesShapes +
	`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:notes>`

// Notes is a slide's speaker notes page.
type Notes struct {
	doc *etree.Document
}

// Notes returns the slide's notes page, creating it on first access.
// A notes master and its theme are added when the template has none.
func (s *Slide) Notes() (*Notes, error) {
	if r := s.rels.first(ooxml.RelNotesSlide); r != nil {
		doc, err := s.prs.xml(s.rels.resolve(r))
		if err != nil {
			return nil, err
		}
		return &Notes{doc: doc}, nil
	}

	master, err := s.prs.notesMaster()
	if err != nil {
		return nil, err
	}
	name := s.prs.nextPartName("ppt/notesSlides/notesSlide", ".xml")
	doc := parseXML(notesSlideXML)
	s.prs.putXML(name, doc, ooxml.CTNotesSlide)

	rels, err := s.prs.relsFor(name)
	if err != nil {
		return nil, err
	}
	rels.add(ooxml.RelNotesMaster, master)
	rels.add(ooxml.RelSlide, s.part)
	s.rels.add(ooxml.RelNotesSlide, name)
	return &Notes{doc: doc}, nil
}

// HasNotes reports whether the slide already has a notes page.
func (s *Slide) HasNotes() bool {
	return s.rels.first(ooxml.RelNotesSlide) != nil
}

func (p *Presentation) notesMaster() (string, error) {
	presRels, err := p.relsFor(p.presPth)
	if err != nil {
		return "", err
	}
	if r := presRels.first(ooxml.RelNotesMaster); r != nil {
		return presRels.resolve(r), nil
	}

	name := p.nextPartName("ppt/notesMasters/notesMaster", ".xml")
	p.putXML(name, parseXML(notesMasterXML), ooxml.CTNotesMaster)

	theme := p.nextPartName("ppt/theme/theme", ".xml")
	p.putXML(theme, parseXML(ooxml.Theme), ooxml.CTTheme)
	rels, err := p.relsFor(name)
	if err != nil {
		return "", err
	}
	rels.add(ooxml.RelTheme, theme)

	rID := presRels.add(ooxml.RelNotesMaster, name)
	root := p.presDoc.Root()
	lst := root.SelectElement("p:notesMasterIdLst")
	if lst == nil {
		lst = etree.NewElement("p:notesMasterIdLst")
		insertBefore(root, lst, "p:handoutMasterIdLst", "p:sldIdLst", "p:sldSz", "p:notesSz")
	}
	lst.CreateElement("p:notesMasterId").CreateAttr("r:id", rID)
	return name, nil
}

func (n *Notes) body() *Shape {
	for _, sh := range shapesIn(spTree(n.doc)) {
		if ph, ok := sh.Placeholder(); ok && ph.Type == "body" {
			return sh
		}
	}
	return nil
}

// Text returns the notes text.
func (n *Notes) Text() string {
	if b := n.body(); b != nil {
		return b.Text()
	}
	return ""
}

// SetText replaces the notes text, adding a body placeholder if the notes
// page lacks one.
func (n *Notes) SetText(text string) {
	b := n.body()
	if b == nil {
		tree := spTree(n.doc)
		sp := etree.NewElement("p:sp")
		nv := sp.CreateElement("p:nvSpPr")
		c := nv.CreateElement("p:cNvPr")
		c.CreateAttr("id", itoa(maxShapeID(tree)+1))
		c.CreateAttr("name", "Notes Placeholder")
		nv.CreateElement("p:cNvSpPr")
		ph := nv.CreateElement("p:nvPr").CreateElement("p:ph")
		ph.CreateAttr("type", "body")
		ph.CreateAttr("idx", "1")
		sp.CreateElement("p:spPr")
		tree.AddChild(sp)
		b = &Shape{el: sp}
	}
	b.SetText(text)
}
