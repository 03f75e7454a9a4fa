package wikidump

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
)

// The toplevel site info describing basic dump properties.
type SiteInfo struct {
	SiteName   string `xml:"sitename"`
	DBName     string `xml:"dbname"`
	Base       string `xml:"base"`
	Generator  string `xml:"generator"`
	Case       string `xml:"case"`
	Namespaces []struct {
		Key   string `xml:"key,attr"`
		Case  string `xml:"case,attr"`
		Value string `xml:",chardata"`
	} `xml:"namespaces>namespace"`
}

// A revision to a page.
//
// Only the fields needed to describe and classify the revision are
// extracted; everything else stays in the page's raw markup.
type Revision struct {
	ID     uint64
	Model  string // empty when the revision has no <model>
	Format string
}

// A wiki page.
type Page struct {
	Title     string
	Namespace int
	ID        uint64
	// Revisions in document order.
	Revisions []Revision
	// Raw is the page element's markup as it appeared in the input.
	Raw []byte
}

// LatestRevision returns the last revision in document order, or nil
// for a page without revisions.
func (p *Page) LatestRevision() *Revision {
	if len(p.Revisions) == 0 {
		return nil
	}
	return &p.Revisions[len(p.Revisions)-1]
}

// That which emits wiki pages.
type Parser interface {
	// Next returns the next page, or io.EOF after the last one.
	Next() (*Page, error)
	// SiteInfo returns the dump's site info.  It is populated once
	// the parser has moved past the <siteinfo> element, that is after
	// the first call to Next.
	SiteInfo() SiteInfo
}

var errTrailingContent = errors.New("content after the root element")

// Element names are matched on their local part only, so <page>,
// <mw:page> and <page xmlns="..."> are all pages no matter which
// namespace or prefix the dump uses.
func isElement(n xml.Name, local string) bool {
	return n.Local == local
}

type dumpParser struct {
	x        *xml.Decoder
	rec      *recorder
	siteInfo SiteInfo
	// Prefixed namespace declarations on the root element.
	rootNS []xml.Attr
	done   bool
	err    error
}

// NewParser gets a wikipedia dump parser reading from the given reader.
//
// The root element is consumed before NewParser returns, so input that
// is not XML at all fails here, before any output is produced.
func NewParser(r io.Reader) (Parser, error) {
	rec := newRecorder(r)
	p := &dumpParser{x: xml.NewDecoder(rec), rec: rec}
	p.x.Strict = true

	for {
		t, err := p.x.Token()
		if err == io.EOF {
			return nil, p.parseError(io.ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, p.parseError(err)
		}
		if se, ok := t.(xml.StartElement); ok {
			for _, a := range se.Attr {
				if a.Name.Space == "xmlns" {
					p.rootNS = append(p.rootNS, a)
				}
			}
			return p, nil
		}
	}
}

func (p *dumpParser) SiteInfo() SiteInfo {
	return p.siteInfo
}

// Next gets the next page from the parser.
func (p *dumpParser) Next() (*Page, error) {
	for p.err == nil && !p.done {
		off := p.x.InputOffset()
		p.rec.discard(off)

		t, err := p.x.Token()
		if err != nil {
			p.err = p.parseError(err)
			break
		}

		switch t := t.(type) {
		case xml.StartElement:
			switch {
			case isElement(t.Name, "page"):
				page, err := p.readPage(t, off)
				if err != nil {
					p.err = err
					return nil, err
				}
				return page, nil
			case isElement(t.Name, "siteinfo"):
				if err := p.x.DecodeElement(&p.siteInfo, &t); err != nil {
					p.err = p.parseError(err)
				}
			default:
				if err := p.x.Skip(); err != nil {
					p.err = p.parseError(err)
				}
			}
		case xml.EndElement:
			// The root closed.
			p.done = true
			p.err = p.trailing()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return nil, io.EOF
}

// trailing reads to the end of the input after the root element.
// Only whitespace, comments and processing instructions may follow it.
func (p *dumpParser) trailing() error {
	for {
		p.rec.discard(p.x.InputOffset())
		t, err := p.x.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return p.parseError(err)
		}
		switch t := t.(type) {
		case xml.StartElement, xml.EndElement:
			return p.parseError(errTrailingContent)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return p.parseError(errTrailingContent)
			}
		}
	}
}

// readPage consumes a page element whose start tag began at input
// offset start.
func (p *dumpParser) readPage(se xml.StartElement, start int64) (*Page, error) {
	tagEnd := p.x.InputOffset()
	page := &Page{}

	var text []byte
	var assign func(string)
	capture := 0 // depth whose character data feeds assign
	depth := 1

	// Revisions may sit anywhere inside the page; their fields are
	// read from direct children only.
	type openRev struct{ depth, idx int }
	var revs []openRev

	for depth > 0 {
		t, err := p.x.Token()
		if err != nil {
			return nil, p.parseError(err)
		}
		switch t := t.(type) {
		case xml.StartElement:
			depth++
			assign = nil
			switch {
			case isElement(t.Name, "revision"):
				page.Revisions = append(page.Revisions, Revision{})
				revs = append(revs, openRev{depth, len(page.Revisions) - 1})
			case depth == 2:
				assign = page.field(t.Name)
			case len(revs) > 0 && depth == revs[len(revs)-1].depth+1:
				assign = page.Revisions[revs[len(revs)-1].idx].field(t.Name)
			}
			if assign != nil {
				capture = depth
				text = text[:0]
			}
		case xml.CharData:
			if assign != nil && depth == capture {
				text = append(text, t...)
			}
		case xml.EndElement:
			if assign != nil && depth == capture {
				assign(strings.TrimSpace(string(text)))
				assign = nil
			}
			if len(revs) > 0 && depth == revs[len(revs)-1].depth {
				revs = revs[:len(revs)-1]
			}
			depth--
		}
	}

	end := p.x.InputOffset()
	page.Raw = p.rawPage(se, p.rec.span(start, tagEnd), p.rec.span(tagEnd, end))
	return page, nil
}

// rawPage copies the page markup out of the recorder.  Prefixes the
// root declared are declared again on the page start tag, so the page
// stays well-formed on its own.
func (p *dumpParser) rawPage(se xml.StartElement, tag, body []byte) []byte {
	var decls bytes.Buffer
	for _, ns := range p.rootNS {
		if hasNSDecl(se, ns.Name.Local) {
			continue
		}
		decls.WriteString(" xmlns:")
		decls.WriteString(ns.Name.Local)
		decls.WriteString(`="`)
		xml.EscapeText(&decls, []byte(ns.Value))
		decls.WriteByte('"')
	}

	raw := make([]byte, 0, len(tag)+decls.Len()+len(body))
	if decls.Len() == 0 {
		raw = append(raw, tag...)
	} else {
		cut := len(tag) - 1
		if bytes.HasSuffix(tag, []byte("/>")) {
			cut--
		}
		raw = append(raw, tag[:cut]...)
		raw = append(raw, decls.Bytes()...)
		raw = append(raw, tag[cut:]...)
	}
	return append(raw, body...)
}

func hasNSDecl(se xml.StartElement, prefix string) bool {
	for _, a := range se.Attr {
		if a.Name.Space == "xmlns" && a.Name.Local == prefix {
			return true
		}
	}
	return false
}

func (p *Page) field(n xml.Name) func(string) {
	switch n.Local {
	case "title":
		return func(s string) { p.Title = s }
	case "ns":
		return func(s string) { p.Namespace, _ = strconv.Atoi(s) }
	case "id":
		return func(s string) { p.ID, _ = strconv.ParseUint(s, 10, 64) }
	}
	return nil
}

func (r *Revision) field(n xml.Name) func(string) {
	switch n.Local {
	case "model":
		return func(s string) { r.Model = s }
	case "format":
		return func(s string) { r.Format = s }
	case "id":
		return func(s string) { r.ID, _ = strconv.ParseUint(s, 10, 64) }
	}
	return nil
}

func (p *dumpParser) parseError(err error) error {
	if p.rec.err != nil {
		return &IOError{Op: "read", Err: p.rec.err}
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	line, col := p.x.InputPos()
	pe := &ParseError{Line: line, Column: col, Offset: p.x.InputOffset(), Err: err}
	if se, ok := err.(*xml.SyntaxError); ok {
		pe.Line = se.Line
	}
	return pe
}
