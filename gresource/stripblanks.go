package gresource

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

// StripBlanks removes ignorable whitespace from an XML document: text nodes
// are trimmed and whitespace-only text nodes are dropped. Elements are written
// back with explicit end tags.
func StripBlanks(src []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(src))

	var buf bytes.Buffer
	buf.Grow(len(src))

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "Failed to parse XML")
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			buf.WriteByte('<')
			writeName(&buf, tok.Name)
			for _, attr := range tok.Attr {
				buf.WriteByte(' ')
				writeName(&buf, attr.Name)
				buf.WriteString(`="`)
				xml.EscapeText(&buf, []byte(attr.Value))
				buf.WriteByte('"')
			}
			buf.WriteByte('>')

		case xml.EndElement:
			buf.WriteString("</")
			writeName(&buf, tok.Name)
			buf.WriteByte('>')

		case xml.CharData:
			if text := bytes.TrimSpace(tok); len(text) > 0 {
				xml.EscapeText(&buf, text)
			}

		case xml.Comment:
			buf.WriteString("<!--")
			buf.Write(tok)
			buf.WriteString("-->")

		case xml.ProcInst:
			buf.WriteString("<?")
			buf.WriteString(tok.Target)
			if len(tok.Inst) > 0 {
				buf.WriteByte(' ')
				buf.Write(tok.Inst)
			}
			buf.WriteString("?>")

		case xml.Directive:
			buf.WriteString("<!")
			buf.Write(tok)
			buf.WriteByte('>')
		}
	}

	return buf.Bytes(), nil
}

// writeName writes a raw name; Space holds the namespace prefix as written in
// the source.
func writeName(buf *bytes.Buffer, name xml.Name) {
	if name.Space != "" {
		buf.WriteString(name.Space)
		buf.WriteByte(':')
	}
	buf.WriteString(name.Local)
}
