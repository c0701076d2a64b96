package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenBlocks(t *testing.T) {
	in := `<html><head><title>ignored</title></head><body>
        <p>First paragraph.</p>
        <div>Second block.</div>
        Line one<br>Line two
    </body></html>`
	got := Flatten(in)

	assert.Equal(t, "First paragraph.\nSecond block.\nLine one\nLine two", got)
}

func TestFlattenDropsHeadAndScripts(t *testing.T) {
	in := `<html><head><title>The Title</title><style>p{color:red}</style></head>
        <body><script>var x = "hidden";</script><p>visible</p><noscript>also hidden</noscript></body></html>`
	got := Flatten(in)

	assert.Equal(t, "visible", got)
	assert.NotContains(t, got, "The Title")
	assert.NotContains(t, got, "hidden")
	assert.NotContains(t, got, "color")
}

func TestFlattenDropsComments(t *testing.T) {
	got := Flatten(`<body><p>before</p><!-- secret note --><p>after</p></body>`)
	assert.Equal(t, "before\nafter", got)
}

func TestFlattenCollapsesWhitespace(t *testing.T) {
	got := Flatten("<body><p>a\t\t b   c</p>\n\n\n<p>d</p></body>")
	assert.Equal(t, "a b c\nd", got)
}

func TestFlattenInlineTags(t *testing.T) {
	got := Flatten(`<body><p>born on <a href="/x">May 17, 1990</a> in Berlin</p></body>`)
	assert.Contains(t, got, "born on May 17, 1990 in Berlin")
}

func TestFlattenPlainText(t *testing.T) {
	// Fragments without an explicit body still flatten.
	got := Flatten("just some text")
	assert.Equal(t, "just some text", got)
}
