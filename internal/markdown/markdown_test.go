package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		in       string
		contains []string
		absent   []string
	}{
		{
			name:     "heading and emphasis",
			in:       "# Arrays\n\nUse **two pointers** and `i++`.",
			contains: []string{`<h1 id="arrays">Arrays</h1>`, "<strong>two pointers</strong>", "<code>i++</code>"},
		},
		{
			name:     "wiki link",
			in:       "See [[Binary Search]] next.",
			contains: []string{`<span class="wikilink">Binary Search</span>`},
			absent:   []string{"[["},
		},
		{
			name:     "wiki link escapes title",
			in:       "[[a<b]]",
			contains: []string{`<span class="wikilink">a&lt;b</span>`},
		},
		{
			name:     "regular link untouched",
			in:       "[docs](https://example.com)",
			contains: []string{`<a href="https://example.com">docs</a>`},
			absent:   []string{"wikilink"},
		},
		{
			name:     "empty wiki link stays text",
			in:       "[[]] and [[ ]]",
			absent:   []string{"wikilink"},
		},
		{
			name:     "gfm strikethrough and tasks",
			in:       "~~old~~\n\n- [x] done",
			contains: []string{"<del>old</del>", `type="checkbox"`},
		},
		{
			name:   "raw html omitted",
			in:     "<script>alert(1)</script>",
			absent: []string{"<script>"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.in)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}
