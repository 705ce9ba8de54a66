// Package ooxml holds the namespace, relationship and content-type
// identifiers of PresentationML packages.
package ooxml

const (
	NsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NsP   = "http://schemas.openxmlformats.org/presentationml/2006/main"
	NsP14 = "http://schemas.microsoft.com/office/powerpoint/2010/main"

	NsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	NsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// Relationship types.
const (
	RelOfficeDocument = NsR + "/officeDocument"
	RelSlideMaster    = NsR + "/slideMaster"
	RelSlideLayout    = NsR + "/slideLayout"
	RelSlide          = NsR + "/slide"
	RelNotesSlide     = NsR + "/notesSlide"
	RelNotesMaster    = NsR + "/notesMaster"
	RelTheme          = NsR + "/theme"
	RelImage          = NsR + "/image"
	RelVideo          = NsR + "/video"
	RelMedia          = "http://schemas.microsoft.com/office/2007/relationships/media"
)

// Content types.
const (
	CTRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	CTXML           = "application/xml"
	CTPresentation  = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	CTSlideMaster   = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	CTSlideLayout   = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	CTSlide         = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	CTNotesSlide    = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
	CTNotesMaster   = "application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"
	CTTheme         = "application/vnd.openxmlformats-officedocument.theme+xml"
)

// Header is the XML declaration every part starts with.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// ClrMap is the identity colour mapping used by masters.
const ClrMap = `bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"`

// Theme is a minimal Office theme, enough for a master to reference.
const Theme = Header + `<a:theme xmlns:a="` + NsA + `" name="Office Theme"><a:themeElements>` +
	`<a:clrScheme name="Office">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
	`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="44546A"/></a:dk2>` +
	`<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4472C4"/></a:accent1>` +
	`<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>` +
	`<a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>` +
	`<a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0563C1"/></a:hlink>` +
	`<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Office">` +
	`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Office">` +
	`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>` +
	`<a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>` +
	`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
	`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements></a:theme>`

// ImageContentType maps an image format name (as reported by
// image.DecodeConfig) to its MIME type and file extension.
func ImageContentType(format string) (contentType, ext string, ok bool) {
	switch format {
	case "png":
		return "image/png", "png", true
	case "jpeg":
		return "image/jpeg", "jpeg", true
	case "gif":
		return "image/gif", "gif", true
	case "bmp":
		return "image/bmp", "bmp", true
	case "tiff":
		return "image/tiff", "tiff", true
	}
	return "", "", false
}
