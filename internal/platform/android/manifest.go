package android

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/otawire/otawire/internal/errors"
	"github.com/otawire/otawire/internal/updates"
)

// androidNS is the attribute namespace prefix used in Android manifests.
const androidNS = "android"

var (
	nameAttrRe  = regexp.MustCompile(androidNS + `:name\s*=\s*("([^"]*)"|'([^']*)')`)
	valueAttrRe = regexp.MustCompile(androidNS + `:value\s*=\s*("([^"]*)"|'([^']*)')`)

	// firstChildRe captures the indentation of the first line-initial child
	// element inside <application>.
	firstChildRe = regexp.MustCompile(`\n([ \t]+)<[^/!?]`)
)

// Manifest is an AndroidManifest.xml kept as raw text. Queries go through
// an etree parse of the current text; mutations splice byte ranges, so
// everything outside the targeted meta-data nodes survives serialization
// unchanged, including multi-line start tags and self-closing-tag spacing.
type Manifest struct {
	src string
}

// ParseManifest wraps manifest text after checking it is well-formed XML
// with a root element.
func ParseManifest(data []byte) (*Manifest, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(errors.ErrParse, "AndroidManifest.xml: %v", err)
	}
	if doc.Root() == nil {
		return nil, errors.Wrapf(errors.ErrParse, "AndroidManifest.xml: no root element")
	}
	return &Manifest{src: string(data)}, nil
}

// application returns the <application> element of the current text, or nil
// when the manifest lacks one.
func (m *Manifest) application() *etree.Element {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(m.src); err != nil {
		return nil
	}
	root := doc.Root()
	if root == nil {
		return nil
	}
	return root.SelectElement("application")
}

// HasApplication reports whether the manifest has an <application> element.
func (m *Manifest) HasApplication() bool {
	return m.application() != nil
}

// MetaDataValue returns the android:value of the meta-data entry named name
// under <application>, and whether such an entry exists.
func (m *Manifest) MetaDataValue(name string) (string, bool) {
	app := m.application()
	if app == nil {
		return "", false
	}
	for _, child := range app.SelectElements("meta-data") {
		if child.SelectAttrValue(androidNS+":name", "") == name {
			return child.SelectAttrValue(androidNS+":value", ""), true
		}
	}
	return "", false
}

// HasMetaData reports whether a meta-data entry named name exists under
// <application>.
func (m *Manifest) HasMetaData(name string) bool {
	_, ok := m.MetaDataValue(name)
	return ok
}

// UpsertMetaData sets the meta-data entry named name to value. When the
// entry exists, only the bytes of its android:value attribute are replaced;
// position and any other attributes keep their original text. When absent,
// a new element is inserted as the last child of <application> on its own
// line. Reports whether the text changed.
func (m *Manifest) UpsertMetaData(name, value string) (bool, error) {
	current, exists := m.MetaDataValue(name)
	if exists && current == value {
		return false, nil
	}
	if !exists {
		if err := m.insertMetaData(name, value); err != nil {
			return false, err
		}
		return true, nil
	}

	start, end, ok := m.metaDataRange(name)
	if !ok {
		return false, errors.Wrapf(errors.ErrParse, "meta-data %q: element not locatable", name)
	}
	element := m.src[start:end]
	loc := valueAttrRe.FindStringSubmatchIndex(element)
	if loc == nil {
		// Entry has a name but no value attribute; add one before the tag close.
		insertAt := end - 1
		if strings.HasSuffix(element, "/>") {
			insertAt = end - 2
		}
		attr := fmt.Sprintf(androidNS+`:value=%q`, value)
		if c := m.src[insertAt-1]; c != ' ' && c != '\t' && c != '\n' {
			attr = " " + attr
		}
		m.src = m.src[:insertAt] + attr + m.src[insertAt:]
		return true, nil
	}

	// Replace only the quoted attribute content.
	cs, ce := loc[4], loc[5]
	if cs < 0 {
		cs, ce = loc[6], loc[7]
	}
	m.src = m.src[:start+cs] + value + m.src[start+ce:]
	return true, nil
}

// RemoveMetaData deletes the meta-data entry named name, taking its line's
// indentation with it when the element sits alone on a line. It is a no-op
// when the entry is absent.
func (m *Manifest) RemoveMetaData(name string) bool {
	start, end, ok := m.metaDataRange(name)
	if !ok {
		return false
	}

	lineStart := strings.LastIndexByte(m.src[:start], '\n') + 1
	lineEnd := strings.IndexByte(m.src[end:], '\n')
	if strings.TrimSpace(m.src[lineStart:start]) == "" &&
		lineEnd >= 0 && strings.TrimSpace(m.src[end:end+lineEnd]) == "" {
		m.src = m.src[:lineStart] + m.src[end+lineEnd+1:]
	} else {
		m.src = m.src[:start] + m.src[end:]
	}
	return true
}

// ApplyUpdatesConfig brings the manifest's meta-data entries to the desired
// end-state: the active version selector is upserted, the inactive one is
// removed (mutual exclusion), and the update URL is always upserted.
// Reports whether the text changed.
func (m *Manifest) ApplyUpdatesConfig(cfg updates.Config) (bool, error) {
	if !m.HasApplication() {
		return false, errors.ErrApplicationNotFound
	}

	changed := m.RemoveMetaData(cfg.AndroidStaleVersionKey())
	ch, err := m.UpsertMetaData(cfg.AndroidVersionKey(), cfg.VersionValue())
	if err != nil {
		return changed, err
	}
	changed = changed || ch
	ch, err = m.UpsertMetaData(updates.AndroidUpdateURLKey, cfg.UpdateURL)
	if err != nil {
		return changed, err
	}
	return changed || ch, nil
}

// Serialize returns the full manifest text.
func (m *Manifest) Serialize() []byte {
	return []byte(m.src)
}

// applicationRange returns the byte offset just past the <application>
// start tag and the offset of its closing tag. For a self-closing
// <application/> both offsets point just past the tag.
func (m *Manifest) applicationRange() (openEnd, closeStart int, err error) {
	start := indexOfTag(m.src, "application")
	if start < 0 {
		return 0, 0, errors.ErrApplicationNotFound
	}
	openEnd = tagEnd(m.src, start)
	if openEnd < 0 {
		return 0, 0, errors.Wrapf(errors.ErrParse, "unterminated <application> tag")
	}
	if strings.HasSuffix(m.src[start:openEnd], "/>") {
		return openEnd, openEnd, nil
	}
	rel := strings.Index(m.src[openEnd:], "</application")
	if rel < 0 {
		return 0, 0, errors.Wrapf(errors.ErrParse, "missing </application> tag")
	}
	return openEnd, openEnd + rel, nil
}

// metaDataRange returns the byte range of the meta-data element named name,
// including its closing tag when not self-closed.
func (m *Manifest) metaDataRange(name string) (start, end int, ok bool) {
	openEnd, closeStart, err := m.applicationRange()
	if err != nil {
		return 0, 0, false
	}

	pos := openEnd
	for pos < closeStart {
		rel := indexOfTag(m.src[pos:closeStart], "meta-data")
		if rel < 0 {
			return 0, 0, false
		}
		elStart := pos + rel
		te := tagEnd(m.src, elStart)
		if te < 0 {
			return 0, 0, false
		}
		elEnd := te
		if !strings.HasSuffix(m.src[elStart:te], "/>") {
			c := strings.Index(m.src[te:], "</meta-data")
			if c < 0 {
				return 0, 0, false
			}
			g := strings.IndexByte(m.src[te+c:], '>')
			if g < 0 {
				return 0, 0, false
			}
			elEnd = te + c + g + 1
		}
		if attrValue(m.src[elStart:te], nameAttrRe) == name {
			return elStart, elEnd, true
		}
		pos = elEnd
	}
	return 0, 0, false
}

// insertMetaData inserts a new meta-data element as the last child of
// <application>, indented like its siblings.
func (m *Manifest) insertMetaData(name, value string) error {
	openEnd, closeStart, err := m.applicationRange()
	if err != nil {
		return err
	}

	element := fmt.Sprintf(`<meta-data `+androidNS+`:name=%q `+androidNS+`:value=%q />`, name, value)

	if openEnd == closeStart {
		// Self-closing <application/>: expand it to hold the new child.
		tagStart := indexOfTag(m.src, "application")
		indent := lineIndent(m.src, tagStart)
		opened := strings.TrimRight(strings.TrimSuffix(m.src[tagStart:openEnd], "/>"), " \t") + ">"
		m.src = m.src[:tagStart] + opened +
			"\n" + indent + "    " + element +
			"\n" + indent + "</application>" + m.src[openEnd:]
		return nil
	}

	inner := m.src[openEnd:closeStart]
	closeIndent := lineIndent(m.src, closeStart)
	if closeIndent == "" {
		closeIndent = lineIndent(m.src, indexOfTag(m.src, "application"))
	}
	childIndent := closeIndent + "    "
	if match := firstChildRe.FindStringSubmatch(inner); match != nil {
		childIndent = match[1]
	}

	if nl := strings.LastIndexByte(inner, '\n'); nl >= 0 && strings.TrimSpace(inner[nl:]) == "" {
		// The closing tag starts its own line; give the element the line above.
		insertAt := openEnd + nl + 1
		m.src = m.src[:insertAt] + childIndent + element + "\n" + m.src[insertAt:]
	} else {
		// Single-line <application>…</application>.
		m.src = m.src[:closeStart] + "\n" + childIndent + element + "\n" + closeIndent + m.src[closeStart:]
	}
	return nil
}

// indexOfTag returns the offset of the first start tag with the given name,
// or -1. A name match requires the following byte to terminate the name.
func indexOfTag(s, name string) int {
	for i := 0; ; {
		rel := strings.Index(s[i:], "<"+name)
		if rel < 0 {
			return -1
		}
		j := i + rel
		k := j + 1 + len(name)
		if k < len(s) {
			switch s[k] {
			case ' ', '\t', '\n', '\r', '>', '/':
				return j
			}
		}
		i = j + 1
	}
}

// tagEnd returns the offset just past the '>' closing the tag opened at
// start, skipping '>' inside quoted attribute values. Returns -1 when the
// tag is unterminated.
func tagEnd(s string, start int) int {
	var quote byte
	for i := start; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '>':
			return i + 1
		}
	}
	return -1
}

// attrValue extracts the quoted attribute content matched by re from a
// start tag's text, tolerating either quote style.
func attrValue(tag string, re *regexp.Regexp) string {
	match := re.FindStringSubmatch(tag)
	if match == nil {
		return ""
	}
	if strings.HasPrefix(match[1], `"`) {
		return match[2]
	}
	return match[3]
}

// lineIndent returns the whitespace between the start of pos's line and
// pos, or "" when anything else precedes pos on its line.
func lineIndent(s string, pos int) string {
	start := strings.LastIndexByte(s[:pos], '\n') + 1
	if strings.TrimSpace(s[start:pos]) != "" {
		return ""
	}
	return s[start:pos]
}
