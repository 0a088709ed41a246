package kdl

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxDepth = 64

// ParseError reports malformed input with a 1-based position
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

type parser struct {
	src        []byte
	pos        int
	floor      int
	depth      int
	lineStarts []int
}

// Parse parses a whole document. Slashdashed nodes and entries are dropped,
// except slashdashed properties which are kept in Node.Hidden.
func Parse(src []byte) (*Document, error) {
	p := &parser{src: src, lineStarts: []int{0}}
	for i, c := range src {
		if c == '\n' {
			p.lineStarts = append(p.lineStarts, i+1)
		}
	}
	if bytes.HasPrefix(src, []byte("\xef\xbb\xbf")) {
		p.pos = 3
		p.floor = 3
	}

	nodes, err := p.parseNodes(true)
	if err != nil {
		return nil, err
	}
	p.computeSpans(nodes)
	return &Document{Nodes: nodes, Source: src}, nil
}

// ParseFile reads and parses path. Parse errors carry the path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

func (p *parser) errorf(off int, format string, args ...any) error {
	line, col := p.position(off)
	return &ParseError{Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) position(off int) (int, int) {
	idx := sort.Search(len(p.lineStarts), func(i int) bool { return p.lineStarts[i] > off }) - 1
	if idx < 0 {
		idx = 0
	}
	return idx + 1, off - p.lineStarts[idx] + 1
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(n int) byte {
	if p.pos+n >= len(p.src) {
		return 0
	}
	return p.src[p.pos+n]
}

func (p *parser) hasPrefix(s string) bool {
	return bytes.HasPrefix(p.src[p.pos:], []byte(s))
}

func (p *parser) parseNodes(top bool) ([]*Node, error) {
	var nodes []*Node
	for {
		if err := p.skipLineSpace(); err != nil {
			return nil, err
		}
		if p.peek() == ';' {
			p.pos++
			continue
		}
		if p.eof() {
			if !top {
				return nil, p.errorf(p.pos, "unclosed block")
			}
			return nodes, nil
		}
		if p.peek() == '}' {
			if top {
				return nil, p.errorf(p.pos, "unexpected '}'")
			}
			return nodes, nil
		}

		dashed := false
		if p.hasPrefix("/-") {
			dashed = true
			p.pos += 2
			if err := p.skipLineSpace(); err != nil {
				return nil, err
			}
			if p.eof() {
				return nil, p.errorf(p.pos, "slashdash without a node")
			}
		}
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		if !dashed {
			nodes = append(nodes, n)
		}
	}
}

func (p *parser) parseNode() (*Node, error) {
	start := p.pos
	line, col := p.position(start)
	if err := p.skipTypeAnnotation(); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	n := &Node{Name: name, Line: line, Column: col, Start: start}
	end := p.pos
	blockDone := false

	for {
		spaced, err := p.skipInlineSpace()
		if err != nil {
			return nil, err
		}
		c := p.peek()
		switch {
		case p.eof(), c == '\n', c == '\r', c == '}', p.hasPrefix("//"):
			n.End = end
			return n, nil
		case c == ';':
			p.pos++
			n.End = end
			return n, nil
		case c == '{':
			if blockDone {
				return nil, p.errorf(p.pos, "node %q has more than one block", name)
			}
			children, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			n.Children = children
			n.HasBlock = true
			blockDone = true
			end = p.pos
		case p.hasPrefix("/-"):
			mark := p.pos
			p.pos += 2
			if _, err := p.skipInlineSpace(); err != nil {
				return nil, err
			}
			if p.peek() == '{' {
				if _, err := p.parseBlock(); err != nil {
					return nil, err
				}
				end = p.pos
				continue
			}
			if blockDone {
				// a slashdashed node follows on the same line
				p.pos = mark
				n.End = end
				return n, nil
			}
			key, isProp, v, err := p.parseEntry()
			if err != nil {
				return nil, err
			}
			if isProp {
				n.Hidden = append(n.Hidden, Prop{Key: key, Value: v})
			}
			end = p.pos
		default:
			if blockDone {
				// the block closes the node, the next one may share the line
				if !spaced {
					return nil, p.errorf(p.pos, "expected whitespace after block")
				}
				n.End = end
				return n, nil
			}
			if !spaced {
				return nil, p.errorf(p.pos, "expected whitespace before entry")
			}
			key, isProp, v, err := p.parseEntry()
			if err != nil {
				return nil, err
			}
			if isProp {
				n.Props = append(n.Props, Prop{Key: key, Value: v})
			} else {
				n.Args = append(n.Args, v)
			}
			end = p.pos
		}
	}
}

func (p *parser) parseBlock() ([]*Node, error) {
	open := p.pos
	p.depth++
	if p.depth > maxDepth {
		return nil, p.errorf(open, "blocks nested too deeply")
	}
	p.pos++
	children, err := p.parseNodes(false)
	if err != nil {
		return nil, err
	}
	// parseNodes(false) only returns cleanly when positioned on '}'
	p.pos++
	p.depth--
	return children, nil
}

func (p *parser) parseName() (string, error) {
	if p.peek() == '"' || p.rawStart() {
		return p.parseString()
	}
	off := p.pos
	if c := p.peek(); c >= '0' && c <= '9' {
		return "", p.errorf(off, "node name cannot start with a digit")
	}
	name := p.readIdent()
	if name == "" {
		return "", p.errorf(off, "expected node name, found %s", p.describe())
	}
	return name, nil
}

// parseEntry reads one argument or property
func (p *parser) parseEntry() (key string, isProp bool, v Value, err error) {
	if p.peek() == '(' {
		v, err = p.parseValue()
		return "", false, v, err
	}
	if p.peek() == '"' || p.rawStart() {
		s, err := p.parseString()
		if err != nil {
			return "", false, Value{}, err
		}
		if p.peek() == '=' {
			p.pos++
			v, err = p.parseValue()
			return s, true, v, err
		}
		return "", false, String(s), nil
	}
	if p.numberStart() || p.peek() == '#' {
		v, err = p.parseValue()
		return "", false, v, err
	}
	off := p.pos
	ident := p.readIdent()
	if ident == "" {
		return "", false, Value{}, p.errorf(off, "unexpected %s", p.describe())
	}
	if p.peek() == '=' {
		p.pos++
		v, err = p.parseValue()
		return ident, true, v, err
	}
	return "", false, bareValue(ident), nil
}

func (p *parser) parseValue() (Value, error) {
	if err := p.skipTypeAnnotation(); err != nil {
		return Value{}, err
	}
	off := p.pos
	switch {
	case p.peek() == '"' || p.rawStart():
		s, err := p.parseString()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case p.numberStart():
		return p.parseNumber()
	case p.peek() == '#':
		p.pos++
		word := p.readIdent()
		switch word {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		case "null":
			return Null(), nil
		case "inf":
			return Float(math.Inf(1)), nil
		case "-inf":
			return Float(math.Inf(-1)), nil
		case "nan":
			return Float(math.NaN()), nil
		}
		return Value{}, p.errorf(off, "unknown keyword #%s", word)
	}
	ident := p.readIdent()
	if ident == "" {
		return Value{}, p.errorf(off, "expected value, found %s", p.describe())
	}
	return bareValue(ident), nil
}

func bareValue(ident string) Value {
	switch ident {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	case "null":
		return Null()
	}
	return String(ident)
}

func (p *parser) numberStart() bool {
	c := p.peek()
	if c >= '0' && c <= '9' {
		return true
	}
	if c == '+' || c == '-' {
		d := p.peekAt(1)
		return d >= '0' && d <= '9'
	}
	return false
}

func (p *parser) parseNumber() (Value, error) {
	off := p.pos
	tok := p.readIdent()
	v, ok := parseNumber(tok)
	if !ok {
		return Value{}, p.errorf(off, "invalid number %q", tok)
	}
	return v, nil
}

func parseNumber(tok string) (Value, bool) {
	clean := strings.ReplaceAll(tok, "_", "")
	sign, body := "", clean
	if strings.HasPrefix(body, "+") || strings.HasPrefix(body, "-") {
		sign, body = body[:1], body[1:]
	}
	base := 0
	switch {
	case strings.HasPrefix(body, "0x"):
		base = 16
	case strings.HasPrefix(body, "0o"):
		base = 8
	case strings.HasPrefix(body, "0b"):
		base = 2
	}
	if base != 0 {
		i, err := strconv.ParseInt(sign+body[2:], base, 64)
		if err != nil {
			return Value{}, false
		}
		return Int(i), true
	}
	if strings.ContainsAny(body, ".eE") {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return Value{}, false
		}
		return Float(f), true
	}
	i, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return Value{}, false
	}
	return Int(i), true
}

func (p *parser) rawStart() bool {
	i := p.pos
	if i < len(p.src) && p.src[i] == 'r' {
		i++
	}
	hashes := 0
	for i < len(p.src) && p.src[i] == '#' {
		i++
		hashes++
	}
	if i >= len(p.src) || p.src[i] != '"' {
		return false
	}
	// a plain "..." string is not raw
	return i > p.pos && (p.src[p.pos] == 'r' || hashes > 0)
}

func (p *parser) parseString() (string, error) {
	if p.peek() == '"' {
		return p.parseQuoted()
	}
	return p.parseRaw()
}

func (p *parser) parseRaw() (string, error) {
	start := p.pos
	if p.peek() == 'r' {
		p.pos++
	}
	hashes := 0
	for p.peek() == '#' {
		p.pos++
		hashes++
	}
	p.pos++ // opening quote
	closing := []byte("\"" + strings.Repeat("#", hashes))
	idx := bytes.Index(p.src[p.pos:], closing)
	if idx < 0 {
		return "", p.errorf(start, "unterminated raw string")
	}
	s := string(p.src[p.pos : p.pos+idx])
	p.pos += idx + len(closing)
	return s, nil
}

func (p *parser) parseQuoted() (string, error) {
	start := p.pos
	p.pos++
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errorf(start, "unterminated string")
		}
		c := p.src[p.pos]
		if c == '"' {
			p.pos++
			return b.String(), nil
		}
		if c != '\\' {
			b.WriteByte(c)
			p.pos++
			continue
		}

		escOff := p.pos
		p.pos++
		if p.eof() {
			return "", p.errorf(start, "unterminated string")
		}
		e := p.src[p.pos]
		switch e {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 's':
			b.WriteByte(' ')
		case '"', '\\', '/':
			b.WriteByte(e)
		case 'u':
			r, err := p.parseUnicodeEscape(escOff)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			continue
		case ' ', '\t', '\n', '\r':
			for !p.eof() && isSpaceOrNewline(p.src[p.pos]) {
				p.pos++
			}
			continue
		default:
			return "", p.errorf(escOff, "invalid escape \\%c", e)
		}
		p.pos++
	}
}

// parseUnicodeEscape reads {hex} after \u and leaves pos after the brace
func (p *parser) parseUnicodeEscape(escOff int) (rune, error) {
	p.pos++
	if p.peek() != '{' {
		return 0, p.errorf(escOff, "expected '{' in unicode escape")
	}
	p.pos++
	end := bytes.IndexByte(p.src[p.pos:], '}')
	if end < 1 || end > 6 {
		return 0, p.errorf(escOff, "invalid unicode escape")
	}
	hex := string(p.src[p.pos : p.pos+end])
	code, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || !utf8.ValidRune(rune(code)) {
		return 0, p.errorf(escOff, "invalid unicode escape \\u{%s}", hex)
	}
	p.pos += end + 1
	return rune(code), nil
}

func (p *parser) skipTypeAnnotation() error {
	if p.peek() != '(' {
		return nil
	}
	off := p.pos
	end := bytes.IndexByte(p.src[p.pos:], ')')
	if end < 0 {
		return p.errorf(off, "unterminated type annotation")
	}
	p.pos += end + 1
	return nil
}

func (p *parser) readIdent() string {
	start := p.pos
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRune(p.src[p.pos:])
		if !isIdentRune(r) {
			break
		}
		p.pos += size
	}
	return string(p.src[start:p.pos])
}

func isIdentRune(r rune) bool {
	if r <= 0x20 || r == 0x7f || r == utf8.RuneError || r == '\uFEFF' {
		return false
	}
	if strings.ContainsRune(`\/(){};[]="`, r) {
		return false
	}
	return !unicode.IsSpace(r)
}

func isSpaceOrNewline(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (p *parser) describe() string {
	if p.eof() {
		return "end of input"
	}
	r, _ := utf8.DecodeRune(p.src[p.pos:])
	return strconv.QuoteRune(r)
}

// skipInlineSpace skips spaces, block comments and line continuations. It
// reports whether anything was skipped.
func (p *parser) skipInlineSpace() (bool, error) {
	spaced := false
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t':
			p.pos++
		case p.hasPrefix("\uFEFF"):
			p.pos += 3
		case p.hasPrefix("/*"):
			if err := p.skipBlockComment(); err != nil {
				return spaced, err
			}
		case c == '\\':
			off := p.pos
			p.pos++
			for p.peek() == ' ' || p.peek() == '\t' {
				p.pos++
			}
			if p.hasPrefix("//") {
				p.skipToNewline()
			}
			if p.peek() == '\r' {
				p.pos++
			}
			switch {
			case p.peek() == '\n':
				p.pos++
			case p.eof():
			default:
				return spaced, p.errorf(off, "line continuation must be followed by a newline")
			}
		default:
			return spaced, nil
		}
		spaced = true
	}
	return spaced, nil
}

func (p *parser) skipBlockComment() error {
	start := p.pos
	p.pos += 2
	depth := 1
	for depth > 0 {
		if p.eof() {
			return p.errorf(start, "unterminated block comment")
		}
		switch {
		case p.hasPrefix("/*"):
			depth++
			p.pos += 2
		case p.hasPrefix("*/"):
			depth--
			p.pos += 2
		default:
			p.pos++
		}
	}
	return nil
}

func (p *parser) skipToNewline() {
	for !p.eof() && p.src[p.pos] != '\n' {
		p.pos++
	}
}

func (p *parser) skipLineSpace() error {
	for {
		if _, err := p.skipInlineSpace(); err != nil {
			return err
		}
		switch {
		case p.eof():
			return nil
		case p.peek() == '\n' || p.peek() == '\r':
			p.pos++
		case p.hasPrefix("//"):
			p.skipToNewline()
		default:
			return nil
		}
	}
}

func (p *parser) computeSpans(nodes []*Node) {
	floor := p.floor
	for _, n := range nodes {
		n.SpanStart = p.leadingStart(n.Start, floor)
		n.SpanEnd = p.trailingEnd(n.End)
		floor = n.SpanEnd
	}
}

func (p *parser) lineStart(off int) int {
	for off > 0 && p.src[off-1] != '\n' {
		off--
	}
	return off
}

// leadingStart widens start to the beginning of its line and over any
// directly preceding // comment lines.
func (p *parser) leadingStart(start, floor int) int {
	ls := p.lineStart(start)
	if ls < floor || strings.TrimLeft(string(p.src[ls:start]), " \t") != "" {
		return start
	}
	s := ls
	for s > floor {
		nl := s - 1
		prev := p.lineStart(nl)
		if prev < floor {
			break
		}
		line := strings.TrimSpace(string(p.src[prev:nl]))
		if !strings.HasPrefix(line, "//") {
			break
		}
		s = prev
	}
	return s
}

// trailingEnd extends end over a same-line terminator, trailing comment
// and the newline when nothing else follows on the line.
func (p *parser) trailingEnd(end int) int {
	i := end
	skip := func() {
		for i < len(p.src) && (p.src[i] == ' ' || p.src[i] == '\t') {
			i++
		}
	}
	skip()
	if i < len(p.src) && p.src[i] == ';' {
		i++
		skip()
	}
	if bytes.HasPrefix(p.src[i:], []byte("//")) {
		for i < len(p.src) && p.src[i] != '\n' {
			i++
		}
	}
	if i < len(p.src) && p.src[i] == '\r' {
		i++
	}
	if i >= len(p.src) {
		return len(p.src)
	}
	if p.src[i] == '\n' {
		return i + 1
	}
	return end
}
