package kdl

import (
	"strings"
	"unicode/utf8"
)

const indentUnit = "    "

// Format renders nodes as canonical text, one node per line with
// four-space indentation.
func Format(nodes []*Node) string {
	var b strings.Builder
	for _, n := range nodes {
		writeNode(&b, n, 0)
	}
	return b.String()
}

// FormatInline renders a node on a single line without a terminator.
func FormatInline(n *Node) string {
	var b strings.Builder
	writeInline(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat(indentUnit, depth))
	writeHead(b, n)
	if !n.HasBlock && len(n.Children) == 0 {
		b.WriteByte('\n')
		return
	}
	if len(n.Children) == 0 {
		b.WriteString(" {}\n")
		return
	}
	b.WriteString(" {\n")
	for _, c := range n.Children {
		writeNode(b, c, depth+1)
	}
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString("}\n")
}

func writeInline(b *strings.Builder, n *Node) {
	writeHead(b, n)
	if !n.HasBlock && len(n.Children) == 0 {
		return
	}
	if len(n.Children) == 0 {
		b.WriteString(" {}")
		return
	}
	b.WriteString(" {")
	for _, c := range n.Children {
		b.WriteByte(' ')
		writeInline(b, c)
		b.WriteByte(';')
	}
	b.WriteString(" }")
}

func writeHead(b *strings.Builder, n *Node) {
	b.WriteString(Ident(n.Name))
	for _, a := range n.Args {
		b.WriteByte(' ')
		b.WriteString(a.Text())
	}
	for _, p := range n.Props {
		b.WriteByte(' ')
		b.WriteString(Ident(p.Key))
		b.WriteByte('=')
		b.WriteString(p.Value.Text())
	}
	for _, p := range n.Hidden {
		b.WriteString(" /-")
		b.WriteString(Ident(p.Key))
		b.WriteByte('=')
		b.WriteString(p.Value.Text())
	}
}

// Ident renders s bare when it reads back as the same identifier and
// quoted otherwise.
func Ident(s string) string {
	if isBareIdent(s) {
		return s
	}
	return Quote(s)
}

func isBareIdent(s string) bool {
	if s == "" || s == "true" || s == "false" || s == "null" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	if first == '#' || (first >= '0' && first <= '9') {
		return false
	}
	if (first == '+' || first == '-') && len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
		return false
	}
	if first == 'r' && len(s) > 1 && (s[1] == '#' || s[1] == '"') {
		return false
	}
	for _, r := range s {
		if !isIdentRune(r) {
			return false
		}
	}
	return true
}
