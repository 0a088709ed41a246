package kdl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicNode(t *testing.T) {
	doc, err := Parse([]byte(`layout { gaps inner=20 outer=10; focus-ring { width 4; active-color "#7fc8ff" } }`))
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)

	layout := doc.Nodes[0]
	assert.Equal(t, "layout", layout.Name)
	assert.True(t, layout.HasBlock)

	gaps := layout.Child("gaps")
	require.NotNil(t, gaps)
	inner, ok := gaps.Prop("inner")
	require.True(t, ok)
	assert.Equal(t, Int(20), inner)

	ring := layout.Child("focus-ring")
	require.NotNil(t, ring)
	width, ok := ring.Child("width").Arg(0)
	require.True(t, ok)
	assert.Equal(t, int64(4), width.Int)
	color, _ := ring.Child("active-color").Arg(0)
	assert.Equal(t, "#7fc8ff", color.Str)
}

func TestParseValues(t *testing.T) {
	doc, err := Parse([]byte(`n 1 -2 3.5 1e3 0x1f true false null #true "esc\t\"q\"" r"raw\n" r#"with "quotes""# bare`))
	require.NoError(t, err)
	args := doc.Nodes[0].Args
	require.Len(t, args, 13)

	assert.Equal(t, Int(1), args[0])
	assert.Equal(t, Int(-2), args[1])
	assert.Equal(t, Float(3.5), args[2])
	assert.Equal(t, Float(1000), args[3])
	assert.Equal(t, Int(31), args[4])
	assert.Equal(t, Bool(true), args[5])
	assert.Equal(t, Bool(false), args[6])
	assert.True(t, args[7].IsNull())
	assert.Equal(t, Bool(true), args[8])
	assert.Equal(t, String("esc\t\"q\""), args[9])
	assert.Equal(t, String(`raw\n`), args[10])
	assert.Equal(t, String(`with "quotes"`), args[11])
	assert.Equal(t, String("bare"), args[12])
}

func TestParseComments(t *testing.T) {
	src := `// leading
a 1 /* inline */ 2
/- b 3
c /-4 5 /-id=7 {
    /* block
       /* nested */ comment */
    d
    /-e { f }
}
g \
  "continued"
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "g"}, doc.Names())

	a := doc.Nodes[0]
	assert.Len(t, a.Args, 2)

	c := doc.Nodes[1]
	assert.Equal(t, []Value{Int(5)}, c.Args)
	id, ok := c.HiddenProp("id")
	require.True(t, ok)
	assert.Equal(t, int64(7), id.Int)
	require.Len(t, c.Children, 1)
	assert.Equal(t, "d", c.Children[0].Name)

	g := doc.Nodes[2]
	assert.Equal(t, []Value{String("continued")}, g.Args)
}

func TestParseUnicodeEscape(t *testing.T) {
	doc, err := Parse([]byte(`n "\u{1F600}x"`))
	require.NoError(t, err)
	assert.Equal(t, "\U0001F600x", doc.Nodes[0].Args[0].Str)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{name: "unclosed block", src: "layout {\n  gaps 1\n", line: 3},
		{name: "stray brace", src: "a\n}\n", line: 2},
		{name: "unterminated string", src: "a \"x\n", line: 1},
		{name: "bad number", src: "a 1.2.3", line: 1},
		{name: "missing space", src: "a\n b\"x\"", line: 2},
		{name: "unterminated comment", src: "a /* x", line: 1},
		{name: "no space after block", src: "a { }b", line: 1},
		{name: "second block", src: "a { } { }", line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Line)
			assert.Greater(t, pe.Column, 0)
		})
	}
}

func TestParseNodesSharingALine(t *testing.T) {
	src := `layout { gaps inner=20 outer=10 } custom-node { foo "bar" } /-gone { } last 1`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 3)

	assert.Equal(t, "layout", doc.Nodes[0].Name)
	assert.Equal(t, "layout { gaps inner=20 outer=10 }", src[doc.Nodes[0].Start:doc.Nodes[0].End])
	assert.Equal(t, "custom-node", doc.Nodes[1].Name)
	assert.Equal(t, `custom-node { foo "bar" }`, doc.Text(doc.Nodes[1]))
	assert.Equal(t, "last", doc.Nodes[2].Name)
}

func TestParseFileSetsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.kdl")
	require.NoError(t, os.WriteFile(path, []byte("a {"), 0o644))

	_, err := ParseFile(path)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, path, pe.Path)
	assert.Contains(t, err.Error(), path)
}

func TestSpansCoverAttachedComments(t *testing.T) {
	src := "// header\n\n// about layout\nlayout {\n    gaps 16\n} // trailing\ncustom-node { foo \"bar\" }\nx 1; y 2\n"
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 4)

	assert.Equal(t, "// about layout\nlayout {\n    gaps 16\n} // trailing\n", doc.Text(doc.Nodes[0]))
	assert.Equal(t, "custom-node { foo \"bar\" }\n", doc.Text(doc.Nodes[1]))
	assert.Equal(t, "x 1", doc.Text(doc.Nodes[2]))
	assert.Equal(t, "y 2\n", doc.Text(doc.Nodes[3]))
}

func TestFormatRoundTrip(t *testing.T) {
	nodes := []*Node{
		NewNode("layout").Add(
			NewNode("gaps", Float(16)),
			NewNode("focus-ring").Add(
				NewNode("width", Int(4)),
				NewNode("active-color", String("#7fc8ff")),
			),
			NewNode("empty").Add(),
		),
		NewNode("output", String("eDP-1")).WithHidden("id", Int(3)),
		NewNode("Mod+Shift+Slash").Add(NewNode("show-hotkey-overlay")),
		NewNode("needs quoting", String("a\"b")).With("key", Bool(true)),
	}

	text := Format(nodes)
	assert.Equal(t, `layout {
    gaps 16.0
    focus-ring {
        width 4
        active-color "#7fc8ff"
    }
    empty {}
}
output "eDP-1" /-id=3
Mod+Shift+Slash {
    show-hotkey-overlay
}
"needs quoting" "a\"b" key=true
`, text)

	doc, err := Parse([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, text, Format(doc.Nodes))
}

func TestFormatInline(t *testing.T) {
	n := NewNode("spawn", String("alacritty"), String("-e"), String("htop"))
	assert.Equal(t, `spawn "alacritty" "-e" "htop"`, FormatInline(n))

	n = NewNode("quit").With("skip-confirmation", Bool(true))
	assert.Equal(t, `quit skip-confirmation=true`, FormatInline(n))
}

func TestIdent(t *testing.T) {
	assert.Equal(t, "window-rule", Ident("window-rule"))
	assert.Equal(t, `"1abc"`, Ident("1abc"))
	assert.Equal(t, `"-1"`, Ident("-1"))
	assert.Equal(t, `"true"`, Ident("true"))
	assert.Equal(t, `"a b"`, Ident("a b"))
	assert.Equal(t, `""`, Ident(""))
}

func TestValueCoercion(t *testing.T) {
	f, ok := String("1.5").AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	i, ok := Float(7.9).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(7), i)

	_, ok = String("abc").AsInt()
	assert.False(t, ok)

	b, ok := String("false").AsBool()
	assert.True(t, ok)
	assert.False(t, b)

	assert.Equal(t, "2.0", FormatFloat(2))
	assert.Equal(t, "0.25", FormatFloat(0.25))
	assert.Equal(t, `"\u{1}"`, Quote("\x01"))
}
