package wikidump

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"testing"
)

const testSiteInfo = `<siteinfo>
    <sitename>Wookieepedia</sitename>
    <dbname>starwars</dbname>
    <base>https://starwars.fandom.com/wiki/Main_Page</base>
    <generator>MediaWiki 1.39.3</generator>
    <case>first-letter</case>
    <namespaces>
      <namespace key="0" case="first-letter" />
      <namespace key="828" case="first-letter">Module</namespace>
    </namespaces>
  </siteinfo>`

// testPage renders page n with one revision per model.  An empty model
// renders a revision without <model>.
func testPage(n int, models ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<page>\n    <title>Page %d</title>\n    <ns>0</ns>\n    <id>%d</id>", n, n)
	for i, m := range models {
		fmt.Fprintf(&b, "\n    <revision>\n      <id>%d</id>", n*100+i)
		if m != "" {
			fmt.Fprintf(&b, "\n      <model>%s</model>", m)
		}
		fmt.Fprintf(&b, "\n      <text bytes=\"3\" xml:space=\"preserve\">r%d</text>\n    </revision>", i)
	}
	b.WriteString("\n  </page>")
	return b.String()
}

func testDump(pages ...string) string {
	var b strings.Builder
	b.WriteString(`<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.11/" version="0.11" xml:lang="en">`)
	b.WriteString("\n  " + testSiteInfo)
	for _, p := range pages {
		b.WriteString("\n  " + p)
	}
	b.WriteString("\n</mediawiki>\n")
	return b.String()
}

// fivePages has pages 2 and 4 on interactivemap.
func fivePages() []string {
	return []string{
		testPage(1, "wikitext"),
		testPage(2, "interactivemap"),
		testPage(3, "wikitext", "Scribunto"),
		testPage(4, "wikitext", "interactivemap"),
		testPage(5),
	}
}

func mustParser(t *testing.T, s string) Parser {
	t.Helper()
	p, err := NewParser(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Error creating parser: %v", err)
	}
	return p
}

func readAll(t *testing.T, p Parser) []*Page {
	t.Helper()
	var rv []*Page
	for {
		page, err := p.Next()
		if err == io.EOF {
			return rv
		}
		if err != nil {
			t.Fatalf("Error reading page %d: %v", len(rv)+1, err)
		}
		rv = append(rv, page)
	}
}

type testDoc struct {
	XMLName xml.Name
	Version string `xml:"version,attr"`
	Pages   []struct {
		Title string `xml:"title"`
	} `xml:"page"`
}

// checkDocument verifies doc is a single well-formed output document
// and returns the titles of its pages.
func checkDocument(t *testing.T, doc []byte) []string {
	t.Helper()
	if !bytes.HasPrefix(doc, []byte(XMLHeader+RootOpen)) {
		t.Fatalf("Missing document preamble in %q", doc)
	}
	if !bytes.HasSuffix(doc, []byte(RootClose)) {
		t.Fatalf("Missing closing root tag in %q", doc)
	}

	d := xml.NewDecoder(bytes.NewReader(doc))
	var td testDoc
	if err := d.Decode(&td); err != nil {
		t.Fatalf("Error decoding output document: %v\n%s", err, doc)
	}
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error after root element: %v", err)
		}
		if cd, ok := tok.(xml.CharData); !ok || len(bytes.TrimSpace(cd)) != 0 {
			t.Fatalf("Unexpected content after root element: %#v", tok)
		}
	}

	if td.XMLName.Local != "mediawiki" ||
		td.XMLName.Space != "http://www.mediawiki.org/xml/export-0.11/" {
		t.Errorf("Wrong root element: %v", td.XMLName)
	}
	if td.Version != "0.11" {
		t.Errorf("Wrong root version %q", td.Version)
	}

	rv := []string{}
	for _, p := range td.Pages {
		rv = append(rv, p.Title)
	}
	return rv
}

type failingWriter struct {
	closed bool
}

func (f *failingWriter) Write(p []byte) (int, error) {
	return 0, fmt.Errorf("disk on fire")
}

func (f *failingWriter) Close() error {
	f.closed = true
	return nil
}
