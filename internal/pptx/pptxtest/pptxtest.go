// Package pptxtest writes small PowerPoint templates for tests.
package pptxtest

import (
	"archive/zip"
	"fmt"
	"html"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ivlev/autoslide/internal/pptx/ooxml"
)

// Placeholder describes a placeholder on a layout.
type Placeholder struct {
	Idx  int
	Type string // empty means the implicit "obj" type
	Name string
	Text string
}

// Layout is a named slide layout.
type Layout struct {
	Name         string
	Placeholders []Placeholder
}

// Template describes the package to write. Slides existing slides are
// created on the first layout, without notes.
type Template struct {
	Layouts []Layout
	Slides  int
}

// VideoLayout has a title at idx 10 and a slide number at idx 11.
func VideoLayout() Layout {
	return Layout{Name: "VideoLayout", Placeholders: []Placeholder{
		{Idx: 10, Type: "title", Name: "Title", Text: "Click to add title"},
		{Idx: 11, Type: "body", Name: "Number"},
		{Idx: 20, Type: "dt", Name: "Date"},
	}}
}

// TitleLayout has a title at idx 10, slide number at 12 and subtitle at 13.
func TitleLayout() Layout {
	return Layout{Name: "TitleLayout", Placeholders: []Placeholder{
		{Idx: 10, Type: "title", Name: "Title"},
		{Idx: 12, Type: "body", Name: "Number"},
		{Idx: 13, Type: "body", Name: "Subtitle", Text: "Series subtitle"},
	}}
}

// Default is a template with VideoLayout and TitleLayout.
func Default() Template {
	return Template{Layouts: []Layout{VideoLayout(), TitleLayout()}}
}

const ns = `xmlns:a="` + ooxml.NsA + `" xmlns:r="` + ooxml.NsR + `" xmlns:p="` + ooxml.NsP + `"`

const groupProps = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`

func rel(id, relType, target string) string {
	return fmt.Sprintf(`<Relationship Id="%s" Type="%s" Target="%s"/>`, id, relType, target)
}

func rels(entries ...string) string {
	return ooxml.Header + `<Relationships xmlns="` + ooxml.NsRelationships + `">` + strings.Join(entries, "") + `</Relationships>`
}

func override(part, ct string) string {
	return fmt.Sprintf(`<Override PartName="/%s" ContentType="%s"/>`, part, ct)
}

func placeholderXML(id int, ph Placeholder) string {
	attrs := fmt.Sprintf(` idx="%d"`, ph.Idx)
	if ph.Type != "" {
		attrs = fmt.Sprintf(` type="%s"`, ph.Type) + attrs
	}
	para := `<a:p/>`
	if ph.Text != "" {
		para = `<a:p><a:r><a:t>` + html.EscapeString(ph.Text) + `</a:t></a:r></a:p>`
	}
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr><p:ph%s/></p:nvPr></p:nvSpPr>`+
		`<p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>%s</p:txBody></p:sp>`, id, html.EscapeString(ph.Name), attrs, para)
}

// Files returns the package parts by name.
func (tpl Template) Files() map[string]string {
	files := map[string]string{}
	var types []string
	types = append(types,
		`<Default Extension="rels" ContentType="`+ooxml.CTRelationships+`"/>`,
		`<Default Extension="xml" ContentType="`+ooxml.CTXML+`"/>`,
		override("ppt/presentation.xml", ooxml.CTPresentation),
		override("ppt/slideMasters/slideMaster1.xml", ooxml.CTSlideMaster),
		override("ppt/theme/theme1.xml", ooxml.CTTheme),
	)

	files["_rels/.rels"] = rels(rel("rId1", ooxml.RelOfficeDocument, "ppt/presentation.xml"))
	files["ppt/theme/theme1.xml"] = ooxml.Theme

	var layoutIDs, masterRels []string
	for i, l := range tpl.Layouts {
		n := i + 1
		name := fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", n)
		var shapes strings.Builder
		for j, ph := range l.Placeholders {
			shapes.WriteString(placeholderXML(j+2, ph))
		}
		files[name] = ooxml.Header + `<p:sldLayout ` + ns + `><p:cSld name="` + html.EscapeString(l.Name) + `"><p:spTree>` +
			groupProps + shapes.String() + `</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`
		files[fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", n)] =
			rels(rel("rId1", ooxml.RelSlideMaster, "../slideMasters/slideMaster1.xml"))
		types = append(types, override(name, ooxml.CTSlideLayout))
		layoutIDs = append(layoutIDs, fmt.Sprintf(`<p:sldLayoutId id="%d" r:id="rId%d"/>`, 2147483648+n, n))
		masterRels = append(masterRels, rel(fmt.Sprintf("rId%d", n), ooxml.RelSlideLayout, fmt.Sprintf("../slideLayouts/slideLayout%d.xml", n)))
	}
	masterRels = append(masterRels, rel(fmt.Sprintf("rId%d", len(tpl.Layouts)+1), ooxml.RelTheme, "../theme/theme1.xml"))

	files["ppt/slideMasters/slideMaster1.xml"] = ooxml.Header + `<p:sldMaster ` + ns + `><p:cSld><p:spTree>` + groupProps +
		`</p:spTree></p:cSld><p:clrMap ` + ooxml.ClrMap + `/><p:sldLayoutIdLst>` + strings.Join(layoutIDs, "") +
		`</p:sldLayoutIdLst></p:sldMaster>`
	files["ppt/slideMasters/_rels/slideMaster1.xml.rels"] = rels(masterRels...)

	presRels := []string{
		rel("rId1", ooxml.RelSlideMaster, "slideMasters/slideMaster1.xml"),
		rel("rId2", ooxml.RelTheme, "theme/theme1.xml"),
	}
	var slideIDs []string
	for i := 0; i < tpl.Slides; i++ {
		n := i + 1
		name := fmt.Sprintf("ppt/slides/slide%d.xml", n)
		files[name] = ooxml.Header + `<p:sld ` + ns + `><p:cSld><p:spTree>` + groupProps +
			`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`
		files[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n)] =
			rels(rel("rId1", ooxml.RelSlideLayout, "../slideLayouts/slideLayout1.xml"))
		types = append(types, override(name, ooxml.CTSlide))
		presRels = append(presRels, rel(fmt.Sprintf("rId%d", n+2), ooxml.RelSlide, fmt.Sprintf("slides/slide%d.xml", n)))
		slideIDs = append(slideIDs, fmt.Sprintf(`<p:sldId id="%d" r:id="rId%d"/>`, 255+n, n+2))
	}

	sldIDLst := ""
	if len(slideIDs) > 0 {
		sldIDLst = `<p:sldIdLst>` + strings.Join(slideIDs, "") + `</p:sldIdLst>`
	}
	files["ppt/presentation.xml"] = ooxml.Header + `<p:presentation ` + ns + `>` +
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` + sldIDLst +
		`<p:sldSz cx="12192000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/></p:presentation>`
	files["ppt/_rels/presentation.xml.rels"] = rels(presRels...)

	files["[Content_Types].xml"] = ooxml.Header + `<Types xmlns="` + ooxml.NsContentTypes + `">` + strings.Join(types, "") + `</Types>`
	return files
}

// Write writes the template to path.
func (tpl Template) Write(t testing.TB, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err, "create template")
	defer f.Close()

	zw := zip.NewWriter(f)
	files := tpl.Files()
	order := []string{"[Content_Types].xml"}
	for name := range files {
		if name != "[Content_Types].xml" {
			order = append(order, name)
		}
	}
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err, "zip %s", name)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err, "zip %s", name)
	}
	require.NoError(t, zw.Close(), "close template")
}
