package rivet

import (
	"net/url"
	"strings"
)

// pathTemplate is a parsed path template. Literal runs and {name}
// placeholders alternate; placeholders are substituted at compile time from
// the request value's path fields.
type pathTemplate struct {
	raw      string
	segments []templateSegment
	names    []string
}

type templateSegment struct {
	literal string
	name    string // placeholder name; empty for literal segments
}

// parsePathTemplate scans raw for {identifier} tokens. An unterminated or
// empty placeholder makes the template malformed.
func parsePathTemplate(raw string) (*pathTemplate, error) {
	t := &pathTemplate{raw: raw}
	rest := raw
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if rest != "" {
				t.segments = append(t.segments, templateSegment{literal: rest})
			}
			return t, nil
		}
		if open > 0 {
			t.segments = append(t.segments, templateSegment{literal: rest[:open]})
		}
		rest = rest[open+1:]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return nil, Errorf(CodeMalformedDescriptor, "path template %q: unterminated placeholder", raw)
		}
		name := rest[:end]
		if name == "" || strings.ContainsAny(name, "{}/") {
			return nil, Errorf(CodeMalformedDescriptor, "path template %q: invalid placeholder name %q", raw, name)
		}
		t.segments = append(t.segments, templateSegment{name: name})
		t.names = append(t.names, name)
		rest = rest[end+1:]
	}
}

// resolve substitutes every placeholder using lookup. A placeholder whose
// lookup reports no value fails before any transport work happens.
//
// Inserted values are percent-encoded unless raw is set; raw reproduces the
// behavior of systems that splice identifiers verbatim, where a value
// containing a path separator changes the request's shape.
func (t *pathTemplate) resolve(lookup func(name string) (string, bool), raw bool) (string, error) {
	var b strings.Builder
	b.Grow(len(t.raw))
	for _, seg := range t.segments {
		if seg.name == "" {
			b.WriteString(seg.literal)
			continue
		}
		v, ok := lookup(seg.name)
		if !ok {
			return "", Errorf(CodeMissingPathField, "path template %q: no value for {%s}", t.raw, seg.name)
		}
		if raw {
			b.WriteString(v)
		} else {
			b.WriteString(url.PathEscape(v))
		}
	}
	return b.String(), nil
}
