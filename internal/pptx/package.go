// Package pptx opens a PowerPoint template, adds slides built from its
// layouts and writes the result. It edits the OOXML parts directly as XML
// trees and only understands the parts it needs: layouts, placeholders,
// notes, pictures, embedded media and slide timing.
package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/ivlev/autoslide/internal/apperr"
	"github.com/ivlev/autoslide/internal/pptx/ooxml"
)

const contentTypesPart = "[Content_Types].xml"

// EMUPerCm is the number of English Metric Units in a centimeter.
const EMUPerCm = 360000

// Cm converts centimeters to EMU.
func Cm(cm float64) int64 {
	return int64(cm*EMUPerCm + 0.5*sign(cm))
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

type part struct {
	raw []byte
	doc *etree.Document
}

// Presentation is an opened .pptx package.
type Presentation struct {
	parts   map[string]*part
	order   []string
	rels    map[string]*relSet
	media   map[string]string // sha1 hex -> part name
	presDoc *etree.Document
	presPth string
	layouts []*Layout
	slides  []*Slide
}

// Open reads the template at path.
func Open(path string) (*Presentation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.Wrap(apperr.CodeNotFound, err, "template not found: %s", path)
		}
		return nil, apperr.Wrap(apperr.CodeIO, err, "reading template %s", path)
	}
	prs, err := Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeTemplate, err, "cannot parse template %s", path)
	}
	return prs, nil
}

// Read parses a package from r.
func Read(r io.ReaderAt, size int64) (*Presentation, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	p := &Presentation{
		parts: make(map[string]*part),
		rels:  make(map[string]*relSet),
		media: make(map[string]string),
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		name := strings.TrimPrefix(f.Name, "/")
		p.parts[name] = &part{raw: data}
		p.order = append(p.order, name)
	}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Presentation) load() error {
	if _, err := p.xml(contentTypesPart); err != nil {
		return err
	}
	pkgRels, err := p.relsFor("")
	if err != nil {
		return err
	}
	office := pkgRels.first(ooxml.RelOfficeDocument)
	if office == nil {
		return fmt.Errorf("package has no main presentation part")
	}
	p.presPth = pkgRels.resolve(office)
	if p.presDoc, err = p.xml(p.presPth); err != nil {
		return err
	}
	presRels, err := p.relsFor(p.presPth)
	if err != nil {
		return err
	}

	for _, id := range p.presDoc.FindElements("./p:presentation/p:sldMasterIdLst/p:sldMasterId") {
		masterPath := presRels.target(id.SelectAttrValue("r:id", ""))
		if masterPath == "" {
			continue
		}
		if err := p.loadMaster(masterPath); err != nil {
			return err
		}
	}

	for _, id := range p.presDoc.FindElements("./p:presentation/p:sldIdLst/p:sldId") {
		slidePath := presRels.target(id.SelectAttrValue("r:id", ""))
		if slidePath == "" {
			continue
		}
		s, err := p.openSlide(slidePath)
		if err != nil {
			return err
		}
		p.slides = append(p.slides, s)
	}
	return nil
}

func (p *Presentation) loadMaster(masterPath string) error {
	master, err := p.xml(masterPath)
	if err != nil {
		return err
	}
	rels, err := p.relsFor(masterPath)
	if err != nil {
		return err
	}
	for _, id := range master.FindElements("./p:sldMaster/p:sldLayoutIdLst/p:sldLayoutId") {
		layoutPath := rels.target(id.SelectAttrValue("r:id", ""))
		if layoutPath == "" {
			continue
		}
		doc, err := p.xml(layoutPath)
		if err != nil {
			return err
		}
		name := ""
		if cSld := doc.FindElement("./p:sldLayout/p:cSld"); cSld != nil {
			name = cSld.SelectAttrValue("name", "")
		}
		p.layouts = append(p.layouts, &Layout{name: name, part: layoutPath, doc: doc})
	}
	return nil
}

// xml returns the parsed tree of a part, parsing it on first use.
func (p *Presentation) xml(name string) (*etree.Document, error) {
	pt, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("missing part %s", name)
	}
	if pt.doc == nil {
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(pt.raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		pt.doc = doc
		pt.raw = nil
	}
	return pt.doc, nil
}

func (p *Presentation) has(name string) bool {
	_, ok := p.parts[name]
	return ok
}

func (p *Presentation) putXML(name string, doc *etree.Document, contentType string) {
	if !p.has(name) {
		p.order = append(p.order, name)
	}
	p.parts[name] = &part{doc: doc}
	if contentType != "" {
		p.setOverride(name, contentType)
	}
}

func (p *Presentation) putRaw(name string, data []byte) {
	if !p.has(name) {
		p.order = append(p.order, name)
	}
	p.parts[name] = &part{raw: data}
}

// nextPartName returns prefix+N+suffix for the smallest N above every
// existing part with that pattern.
func (p *Presentation) nextPartName(prefix, suffix string) string {
	n := 0
	for name := range p.parts {
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
			continue
		}
		if v, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, prefix), suffix)); err == nil && v > n {
			n = v
		}
	}
	return prefix + strconv.Itoa(n+1) + suffix
}

func (p *Presentation) setOverride(name, contentType string) {
	types := p.parts[contentTypesPart].doc.Root()
	partName := "/" + name
	for _, o := range types.SelectElements("Override") {
		if o.SelectAttrValue("PartName", "") == partName {
			o.CreateAttr("ContentType", contentType)
			return
		}
	}
	o := types.CreateElement("Override")
	o.CreateAttr("PartName", partName)
	o.CreateAttr("ContentType", contentType)
}

func (p *Presentation) ensureDefault(ext, contentType string) {
	types := p.parts[contentTypesPart].doc.Root()
	for _, d := range types.SelectElements("Default") {
		if strings.EqualFold(d.SelectAttrValue("Extension", ""), ext) {
			return
		}
	}
	d := etree.NewElement("Default")
	d.CreateAttr("Extension", ext)
	d.CreateAttr("ContentType", contentType)
	types.InsertChildAt(0, d)
}

// Layouts returns the template's slide layouts in master order.
func (p *Presentation) Layouts() []*Layout {
	return append([]*Layout(nil), p.layouts...)
}

// LayoutNames returns the name of every layout in master order.
func (p *Presentation) LayoutNames() []string {
	names := make([]string, len(p.layouts))
	for i, l := range p.layouts {
		names[i] = l.name
	}
	return names
}

// Layout returns the first layout named name.
func (p *Presentation) Layout(name string) (*Layout, bool) {
	for _, l := range p.layouts {
		if l.name == name {
			return l, true
		}
	}
	return nil, false
}

// Slides returns the slides in presentation order.
func (p *Presentation) Slides() []*Slide {
	return append([]*Slide(nil), p.slides...)
}

// Save writes the package to path.
func (p *Presentation) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperr.Wrap(apperr.CodeIO, err, "creating %s", path)
	}
	if _, err := p.WriteTo(f); err != nil {
		f.Close()
		return apperr.Wrap(apperr.CodeIO, err, "writing %s", path)
	}
	if err := f.Close(); err != nil {
		return apperr.Wrap(apperr.CodeIO, err, "closing %s", path)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

// WriteTo writes the package as a zip archive.
func (p *Presentation) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	names := append([]string(nil), p.order...)
	sort.SliceStable(names, func(i, j int) bool {
		return names[i] == contentTypesPart && names[j] != contentTypesPart
	})
	for _, name := range names {
		pt := p.parts[name]
		data := pt.raw
		if pt.doc != nil {
			var err error
			if data, err = pt.doc.WriteToBytes(); err != nil {
				return cw.n, fmt.Errorf("serializing %s: %w", name, err)
			}
		}
		method := zip.Deflate
		if strings.HasPrefix(name, "ppt/media/") {
			method = zip.Store
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
		if err != nil {
			return cw.n, err
		}
		if _, err := fw.Write(data); err != nil {
			return cw.n, err
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func parseXML(s string) *etree.Document {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		panic(fmt.Sprintf("pptx: invalid built-in XML: %v", err))
	}
	return doc
}

// insertBefore adds child to parent ahead of the first existing child
// whose tag is in successors, or at the end.
func insertBefore(parent, child *etree.Element, successors ...string) {
	for _, c := range parent.ChildElements() {
		for _, s := range successors {
			if c.FullTag() == s {
				parent.InsertChildAt(c.Index(), child)
				return
			}
		}
	}
	parent.AddChild(child)
}

func relativeTarget(fromPart, toPart string) string {
	from := strings.Split(path.Dir(fromPart), "/")
	to := strings.Split(toPart, "/")
	if path.Dir(fromPart) == "." {
		from = nil
	}
	i := 0
	for i < len(from) && i < len(to)-1 && from[i] == to[i] {
		i++
	}
	var parts []string
	for range from[i:] {
		parts = append(parts, "..")
	}
	return strings.Join(append(parts, to[i:]...), "/")
}
