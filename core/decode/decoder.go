// ABOUTME: Streaming XML decoder turning tokenizer events into the catalog object graph
// ABOUTME: Drives an explicit frame stack over goxpp pull-parser events

package decode

import (
	"bytes"
	"errors"
	"io"
	"strings"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"

	"marketplace-client-api/core/domain"
	cerrors "marketplace-client-api/core/errors"
)

// Unmarshal decodes one catalog response body into its root document.
// The uri is carried into diagnostics only. Exactly one root model is
// produced; a response that parses but contains no marketplace document is
// the same failure class as a tokenizer error.
func Unmarshal(r io.Reader, uri string) (*domain.Marketplace, error) {
	preview := newPreviewRecorder(r)
	p := xpp.NewXMLPullParser(newSanitizingReader(preview), false, charset.NewReaderLabel)

	st := &state{p: p}
	for {
		ev, err := p.Next()
		if err != nil {
			return nil, &cerrors.MalformedContentError{URI: uri, Preview: preview.Preview(), Cause: err}
		}
		if ev == xpp.EndDocument {
			break
		}
		switch ev {
		case xpp.StartTag:
			if err := st.startElement(); err != nil {
				return nil, &cerrors.MalformedContentError{URI: uri, Preview: preview.Preview(), Cause: err}
			}
		case xpp.Text:
			st.text()
		case xpp.EndTag:
			st.endElement()
		}
	}

	if st.root == nil {
		return nil, &cerrors.MalformedContentError{
			URI:     uri,
			Preview: preview.Preview(),
			Cause:   errors.New("response contained no marketplace document"),
		}
	}
	return st.root, nil
}

// state is the per-decode driver state: the frame stack plus the leaf text
// capture buffer. The capturing flag is set only while inside a recognized
// leaf element.
type state struct {
	p     *xpp.XMLPullParser
	stack []*frame
	root  *domain.Marketplace

	capturing bool
	leafName  string
	leafAttrs attrs
	buf       bytes.Buffer
}

func (st *state) top() *frame {
	if len(st.stack) == 0 {
		return nil
	}
	return st.stack[len(st.stack)-1]
}

func (st *state) startElement() error {
	name := strings.ToLower(st.p.Name)

	if st.capturing {
		// Nested structure inside a leaf element is not part of the
		// vocabulary; swallow it.
		return st.p.Skip()
	}

	top := st.top()
	if top != nil && top.spec.leaves != nil {
		if _, ok := top.spec.leaves[name]; ok {
			st.capturing = true
			st.leafName = name
			st.leafAttrs = snapshotAttrs(st.p)
			st.buf.Reset()
			return nil
		}
	}

	spec, known := frameSpecs[name]
	if !known || (top == nil && !spec.root) {
		return st.p.Skip()
	}

	f := &frame{name: name, spec: spec}
	if top != nil {
		f.parentModel = top.model
	}
	if spec.create != nil {
		f.model = spec.create(snapshotAttrs(st.p))
	} else {
		// Grouping element: children attach to the enclosing entity.
		f.model = f.parentModel
		f.passthrough = true
	}
	st.stack = append(st.stack, f)
	return nil
}

func (st *state) text() {
	if st.capturing {
		st.buf.WriteString(st.p.Text)
	}
}

func (st *state) endElement() {
	name := strings.ToLower(st.p.Name)

	if st.capturing && name == st.leafName {
		top := st.top()
		if top != nil {
			if set, ok := top.spec.leaves[name]; ok {
				set(top.model, strings.TrimSpace(st.buf.String()), st.leafAttrs)
			}
		}
		st.capturing = false
		st.leafName = ""
		st.leafAttrs = nil
		st.buf.Reset()
		return
	}

	top := st.top()
	if top == nil || name != top.name {
		return
	}
	st.stack = st.stack[:len(st.stack)-1]

	if top.passthrough {
		return
	}
	if top.parentModel != nil && top.spec.attach != nil {
		top.spec.attach(top.parentModel, top.model)
		return
	}
	if len(st.stack) == 0 {
		if m, ok := top.model.(*domain.Marketplace); ok {
			st.root = m
		}
	}
}

func snapshotAttrs(p *xpp.XMLPullParser) attrs {
	if len(p.Attrs) == 0 {
		return nil
	}
	at := make(attrs, len(p.Attrs))
	for _, a := range p.Attrs {
		at[strings.ToLower(a.Name.Local)] = a.Value
	}
	return at
}
