package pptx

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/ivlev/autoslide/internal/pptx/ooxml"
)

// emuPerPixel renders images at 72 DPI when no size is given.
const emuPerPixel = 12700

// Image is encoded image data with its pixel size.
type Image struct {
	Name   string
	Format string // png, jpeg, gif, bmp or tiff
	Data   []byte
	Width  int
	Height int
}

// Rect is a position and size in EMU. A zero Width or Height is derived
// from the image's aspect ratio.
type Rect struct {
	Left, Top, Width, Height int64
}

func (img Image) size(w, h int64) (int64, int64) {
	if img.Width <= 0 || img.Height <= 0 {
		return w, h
	}
	switch {
	case w == 0 && h == 0:
		return int64(img.Width) * emuPerPixel, int64(img.Height) * emuPerPixel
	case w == 0:
		return h * int64(img.Width) / int64(img.Height), h
	case h == 0:
		return w, w * int64(img.Height) / int64(img.Width)
	}
	return w, h
}

// addMedia stores a copy of data under ppt/media, reusing an identical part.
func (p *Presentation) addMedia(data []byte, ext, contentType string) string {
	sum := sha1.Sum(data)
	key := hex.EncodeToString(sum[:])
	if name, ok := p.media[key]; ok {
		return name
	}
	name := p.nextPartName("ppt/media/media", "."+ext)
	p.putRaw(name, append([]byte(nil), data...))
	p.ensureDefault(ext, contentType)
	p.media[key] = name
	return name
}

func (s *Slide) addImagePart(img Image) (string, error) {
	ct, ext, ok := ooxml.ImageContentType(img.Format)
	if !ok {
		return "", fmt.Errorf("unsupported image format %q", img.Format)
	}
	if len(img.Data) == 0 {
		return "", fmt.Errorf("image %s has no data", img.Name)
	}
	media := s.prs.addMedia(img.Data, ext, ct)
	return s.rels.add(ooxml.RelImage, media), nil
}

func xfrm(spPr *etree.Element, left, top, cx, cy int64) {
	x := spPr.CreateElement("a:xfrm")
	off := x.CreateElement("a:off")
	off.CreateAttr("x", strconv.FormatInt(left, 10))
	off.CreateAttr("y", strconv.FormatInt(top, 10))
	ext := x.CreateElement("a:ext")
	ext.CreateAttr("cx", strconv.FormatInt(cx, 10))
	ext.CreateAttr("cy", strconv.FormatInt(cy, 10))
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
}

func blipFill(pic *etree.Element, rID string) {
	fill := pic.CreateElement("p:blipFill")
	fill.CreateElement("a:blip").CreateAttr("r:embed", rID)
	fill.CreateElement("a:stretch").CreateElement("a:fillRect")
}

// AddPicture places img at r.
func (s *Slide) AddPicture(img Image, r Rect) (*Shape, error) {
	rID, err := s.addImagePart(img)
	if err != nil {
		return nil, err
	}
	cx, cy := img.size(r.Width, r.Height)
	id := s.nextShapeID()

	pic := etree.NewElement("p:pic")
	nv := pic.CreateElement("p:nvPicPr")
	c := nv.CreateElement("p:cNvPr")
	c.CreateAttr("id", strconv.Itoa(id))
	c.CreateAttr("name", fmt.Sprintf("Picture %d", id-1))
	c.CreateAttr("descr", img.Name)
	nv.CreateElement("p:cNvPicPr").CreateElement("a:picLocks").CreateAttr("noChangeAspect", "1")
	nv.CreateElement("p:nvPr")
	blipFill(pic, rID)
	xfrm(pic.CreateElement("p:spPr"), r.Left, r.Top, cx, cy)

	return s.appendShape(pic), nil
}
