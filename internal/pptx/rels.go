package pptx

import (
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/ivlev/autoslide/internal/pptx/ooxml"
)

// relSet is the relationships part belonging to one source part.
type relSet struct {
	source string
	doc    *etree.Document
}

func relsPartName(source string) string {
	if source == "" {
		return "_rels/.rels"
	}
	return path.Join(path.Dir(source), "_rels", path.Base(source)+".rels")
}

// relsFor returns the relationships of source, creating an empty set
// (registered as a part) when the package has none.
func (p *Presentation) relsFor(source string) (*relSet, error) {
	if rs, ok := p.rels[source]; ok {
		return rs, nil
	}
	name := relsPartName(source)
	var doc *etree.Document
	if p.has(name) {
		var err error
		if doc, err = p.xml(name); err != nil {
			return nil, err
		}
	} else {
		doc = parseXML(ooxml.Header + `<Relationships xmlns="` + ooxml.NsRelationships + `"/>`)
		p.putXML(name, doc, "")
	}
	rs := &relSet{source: source, doc: doc}
	p.rels[source] = rs
	return rs, nil
}

func (rs *relSet) all() []*etree.Element {
	return rs.doc.Root().SelectElements("Relationship")
}

func (rs *relSet) first(relType string) *etree.Element {
	for _, r := range rs.all() {
		if r.SelectAttrValue("Type", "") == relType {
			return r
		}
	}
	return nil
}

func (rs *relSet) byID(id string) *etree.Element {
	for _, r := range rs.all() {
		if r.SelectAttrValue("Id", "") == id {
			return r
		}
	}
	return nil
}

// resolve returns the package part name a relationship points at.
func (rs *relSet) resolve(r *etree.Element) string {
	target := r.SelectAttrValue("Target", "")
	if strings.HasPrefix(target, "/") {
		return target[1:]
	}
	return path.Clean(path.Join(path.Dir(rs.source), target))
}

// target resolves the part behind relationship id, or "" if unknown.
func (rs *relSet) target(id string) string {
	r := rs.byID(id)
	if r == nil || r.SelectAttrValue("TargetMode", "") == "External" {
		return ""
	}
	return rs.resolve(r)
}

// add links the source to part with relType, reusing an identical
// relationship when one exists.
func (rs *relSet) add(relType, part string) string {
	for _, r := range rs.all() {
		if r.SelectAttrValue("Type", "") == relType && rs.resolve(r) == part {
			return r.SelectAttrValue("Id", "")
		}
	}
	id := rs.nextID()
	r := rs.doc.Root().CreateElement("Relationship")
	r.CreateAttr("Id", id)
	r.CreateAttr("Type", relType)
	r.CreateAttr("Target", relativeTarget(rs.source, part))
	return id
}

func (rs *relSet) nextID() string {
	n := 0
	for _, r := range rs.all() {
		id := r.SelectAttrValue("Id", "")
		if v, err := strconv.Atoi(strings.TrimPrefix(id, "rId")); err == nil && v > n {
			n = v
		}
	}
	return "rId" + strconv.Itoa(n+1)
}
