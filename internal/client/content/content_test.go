package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"empty":      {"", ""},
		"text only":  {"hello   world", "hello world"},
		"paragraphs": {"<p>First <b>bold</b></p><p>Second</p>", "First bold\nSecond"},
		"script":     {"<p>a</p><script>alert(1)</script><style>p{}</style>", "a"},
		"entities":   {"<p>Tom &amp; Jerry &lt;3</p>", "Tom & Jerry <3"},
		"line break": {"one<br>two", "one\ntwo"},
		"list":       {"<ul><li>x</li><li>y</li></ul>", "x\ny"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, PlainText(tc.in))
		})
	}
}

func TestExcerpt(t *testing.T) {
	short := "<p>Short post</p>"
	assert.Equal(t, "Short post", Excerpt(short, DefaultExcerptLength))

	long := "<p>" + strings.Repeat("a", 200) + "</p>"
	got := Excerpt(long, DefaultExcerptLength)
	assert.Equal(t, strings.Repeat("a", 150)+"...", got)

	exact := strings.Repeat("b", 150)
	assert.Equal(t, exact, Excerpt(exact, DefaultExcerptLength))

	// counted in runes, trailing space trimmed before the ellipsis
	assert.Equal(t, "жжж...", Excerpt("жжж жжж", 4))

	assert.Equal(t, "one two", Excerpt("<p>one</p><p>two</p>", 0))
}

func TestFirstImageURL(t *testing.T) {
	assert.Equal(t, "", FirstImageURL("<p>no images</p>"))
	assert.Equal(t, "a.png", FirstImageURL(`<p>x<img src="a.png"></p><img src="b.png">`))
	assert.Equal(t, "b.png", FirstImageURL(`<img alt="no src"><div><img src="b.png"></div>`))
}

func TestFromMarkdown(t *testing.T) {
	out, err := FromMarkdown("# Title\n\nSome *text* and ~~gone~~.\n\n![pic](https://x/y.png)")
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<em>text</em>")
	assert.Contains(t, out, "<del>gone</del>")
	assert.Equal(t, "https://x/y.png", FirstImageURL(out))
	assert.Equal(t, "Title\nSome text and gone.", PlainText(out))
}

func TestFromMarkdown_PassesHTMLThrough(t *testing.T) {
	body := `<p>kept <img src="k.png"></p>`
	out, err := FromMarkdown(body)
	require.NoError(t, err)
	assert.Equal(t, body, out)
}
