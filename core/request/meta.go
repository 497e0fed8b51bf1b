// ABOUTME: Client-identification query parameters appended to catalog requests
// ABOUTME: Parameter order is fixed so request URLs are deterministic

package request

import (
	"net/url"
	"strings"
)

// ClientMeta identifies the requesting installation to the catalog server
type ClientMeta struct {
	Client          string
	OS              string
	PlatformVersion string
	ProductVersion  string
	Product         string
}

// metaParams is the fixed emission order of the identification parameters
var metaParams = []struct {
	key   string
	value func(m *ClientMeta) string
}{
	{"client", func(m *ClientMeta) string { return m.Client }},
	{"os", func(m *ClientMeta) string { return m.OS }},
	{"platform.version", func(m *ClientMeta) string { return m.PlatformVersion }},
	{"product.version", func(m *ClientMeta) string { return m.ProductVersion }},
	{"product", func(m *ClientMeta) string { return m.Product }},
}

// AppendTo appends the identification parameters to uri, choosing '?' or
// '&' based on whether a query string already exists. Parameters with empty
// values are skipped.
func (m *ClientMeta) AppendTo(uri string) string {
	if m == nil {
		return uri
	}
	var sb strings.Builder
	sb.WriteString(uri)
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	for _, p := range metaParams {
		v := p.value(m)
		if v == "" {
			continue
		}
		sb.WriteString(sep)
		sb.WriteString(url.QueryEscape(p.key))
		sb.WriteString("=")
		sb.WriteString(url.QueryEscape(v))
		sep = "&"
	}
	return sb.String()
}

// FormFields adds the identification fields to a POST form
func (m *ClientMeta) FormFields(form url.Values) {
	if m == nil {
		return
	}
	for _, p := range metaParams {
		if v := p.value(m); v != "" {
			form.Set(p.key, v)
		}
	}
}
