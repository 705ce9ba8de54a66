package pptx

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/beevik/etree"

	"github.com/ivlev/autoslide/internal/pptx/ooxml"
)

// Movie is a media file embedded as a video object.
type Movie struct {
	Name     string
	Data     []byte
	MimeType string
	Poster   *Image // nil uses a plain dark frame
}

// AutoplayOutcome tells how EnableAutoplay scheduled a media shape.
type AutoplayOutcome int

const (
	// AutoplayPatched means an existing media timing node was switched to
	// start with the slide.
	AutoplayPatched AutoplayOutcome = iota + 1
	// AutoplayCreated means the slide had no timing node for the shape and
	// a new one was built.
	AutoplayCreated
)

var defaultPoster = sync.OnceValue(func() []byte {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 0x40
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
})

// AddMovie embeds m at r with a poster frame and a click-to-play timing
// node, like PowerPoint's Insert > Video.
func (s *Slide) AddMovie(m Movie, r Rect) (*Shape, error) {
	if len(m.Data) == 0 {
		return nil, fmt.Errorf("media %s has no data", m.Name)
	}
	mime := m.MimeType
	if mime == "" {
		mime = "video/unknown"
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(m.Name)), ".")
	if ext == "" {
		ext = "bin"
	}
	media := s.prs.addMedia(m.Data, ext, mime)
	videoID := s.rels.add(ooxml.RelVideo, media)
	mediaID := s.rels.add(ooxml.RelMedia, media)

	poster := Image{Name: "poster.png", Format: "png", Data: defaultPoster(), Width: 16, Height: 16}
	if m.Poster != nil {
		poster = *m.Poster
	}
	posterID, err := s.addImagePart(poster)
	if err != nil {
		return nil, fmt.Errorf("poster frame: %w", err)
	}

	id := s.nextShapeID()
	pic := etree.NewElement("p:pic")
	nv := pic.CreateElement("p:nvPicPr")
	c := nv.CreateElement("p:cNvPr")
	c.CreateAttr("id", strconv.Itoa(id))
	c.CreateAttr("name", m.Name)
	link := c.CreateElement("a:hlinkClick")
	link.CreateAttr("r:id", "")
	link.CreateAttr("action", "ppaction://media")
	nv.CreateElement("p:cNvPicPr").CreateElement("a:picLocks").CreateAttr("noChangeAspect", "1")
	nvPr := nv.CreateElement("p:nvPr")
	nvPr.CreateElement("a:videoFile").CreateAttr("r:link", videoID)
	ext14 := nvPr.CreateElement("p:extLst").CreateElement("p:ext")
	ext14.CreateAttr("uri", "{DAA4B4D4-6D71-4841-9C94-3DA828B9F2F8}")
	p14 := ext14.CreateElement("p14:media")
	p14.CreateAttr("xmlns:p14", ooxml.NsP14)
	p14.CreateAttr("r:embed", mediaID)
	blipFill(pic, posterID)
	xfrm(pic.CreateElement("p:spPr"), r.Left, r.Top, r.Width, r.Height)

	shape := s.appendShape(pic)
	s.addMediaTiming(id, "indefinite")
	return shape, nil
}

func (s *Slide) timing() *etree.Element {
	return s.doc.Root().SelectElement("p:timing")
}

// rootTimeNodes returns the child list of the slide's tmRoot time node,
// building the timing tree if it is absent.
func (s *Slide) rootTimeNodes() *etree.Element {
	timing := s.timing()
	if timing == nil {
		timing = etree.NewElement("p:timing")
		insertBefore(s.doc.Root(), timing, "p:extLst")
	}
	for _, ctn := range timing.FindElements(".//p:cTn") {
		if ctn.SelectAttrValue("nodeType", "") == "tmRoot" {
			if lst := ctn.SelectElement("p:childTnLst"); lst != nil {
				return lst
			}
			return ctn.CreateElement("p:childTnLst")
		}
	}
	tnLst := timing.SelectElement("p:tnLst")
	if tnLst == nil {
		tnLst = etree.NewElement("p:tnLst")
		timing.InsertChildAt(0, tnLst)
	}
	root := tnLst.CreateElement("p:par").CreateElement("p:cTn")
	root.CreateAttr("id", strconv.Itoa(s.nextTimeNodeID()))
	root.CreateAttr("dur", "indefinite")
	root.CreateAttr("restart", "never")
	root.CreateAttr("nodeType", "tmRoot")
	return root.CreateElement("p:childTnLst")
}

func (s *Slide) nextTimeNodeID() int {
	n := 0
	if timing := s.timing(); timing != nil {
		for _, ctn := range timing.FindElements(".//p:cTn") {
			if v, err := strconv.Atoi(ctn.SelectAttrValue("id", "0")); err == nil && v > n {
				n = v
			}
		}
	}
	return n + 1
}

func (s *Slide) addMediaTiming(shapeID int, delay string) {
	lst := s.rootTimeNodes()
	node := lst.CreateElement("p:video").CreateElement("p:cMediaNode")
	node.CreateAttr("vol", "80000")
	ctn := node.CreateElement("p:cTn")
	ctn.CreateAttr("id", strconv.Itoa(s.nextTimeNodeID()))
	ctn.CreateAttr("fill", "hold")
	ctn.CreateAttr("display", "0")
	ctn.CreateElement("p:stCondLst").CreateElement("p:cond").CreateAttr("delay", delay)
	node.CreateElement("p:tgtEl").CreateElement("p:spTgt").CreateAttr("spid", strconv.Itoa(shapeID))
}

// EnableAutoplay makes the media shape start with the slide. It switches
// the start condition of the shape's media node to delay 0, or builds a
// new media node when the slide's timing has none for the shape.
func (s *Slide) EnableAutoplay(shapeID int) (AutoplayOutcome, error) {
	if _, ok := s.Shape(shapeID); !ok {
		return 0, fmt.Errorf("no shape with id %d on %s", shapeID, s.part)
	}
	if timing := s.timing(); timing != nil {
		spid := strconv.Itoa(shapeID)
		for _, video := range timing.FindElements(".//p:video") {
			for _, tgt := range video.FindElements(".//p:spTgt") {
				if tgt.SelectAttrValue("spid", "") != spid {
					continue
				}
				cond := tgt.Parent().Parent().FindElement("./p:cTn/p:stCondLst/p:cond")
				if cond == nil {
					continue
				}
				cond.CreateAttr("delay", "0")
				return AutoplayPatched, nil
			}
		}
	}
	s.addMediaTiming(shapeID, "0")
	return AutoplayCreated, nil
}
