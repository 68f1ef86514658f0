// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseBody(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<body>" + markup + "</body>"))
	require.NoError(t, err)
	var body *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil && body == nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	require.NotNil(t, body)
	return body
}

func TestRenderChildren(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"quotes in text", `<p>Don't say "hi"</p>`, `<p>Don't say "hi"</p>`},
		{"markup characters in text", `<p>a &lt; b &amp;&amp; c &gt; d</p>`, `<p>a &lt; b &amp;&amp; c &gt; d</p>`},
		{"attributes escaped", `<img src="/a.png" alt="say &quot;cheese&quot;">`, `<img src="/a.png" alt="say &#34;cheese&#34;"/>`},
		{"void and nested", `<p>a<br>b <em><strong>c</strong></em></p>`, `<p>a<br/>b <em><strong>c</strong></em></p>`},
		{"comments kept", `<!-- note --><p>x</p>`, `<!-- note --><p>x</p>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderChildren(parseBody(t, tt.markup)))
		})
	}
}
