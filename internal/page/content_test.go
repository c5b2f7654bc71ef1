package page

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContent(t *testing.T) {
	c, err := DefaultContent()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Name)
	assert.NotEmpty(t, c.Projects)
	assert.NotEmpty(t, c.Skills)
	assert.Contains(t, string(c.About.HTML), "<strong>Muay Thai</strong>")
}

func TestParseContentRendersMarkdownSafely(t *testing.T) {
	c, err := ParseContent(strings.NewReader(`
name: Test
about:
  body: "Hello *there* <script>alert(1)</script>"
`))
	require.NoError(t, err)

	assert.Contains(t, string(c.About.HTML), "<em>there</em>")
	assert.NotContains(t, string(c.About.HTML), "<script>")
}

func TestParseContentErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "unknown field", yaml: "name: A\nnmae: B\n", want: "decode content"},
		{name: "missing name", yaml: "title: A\n", want: "name is required"},
		{name: "untitled project", yaml: "name: A\nprojects:\n  - description: x\n", want: "projects[0]: title is required"},
		{name: "empty href", yaml: "name: A\nnav:\n  - label: About\n", want: `link "About": href is required`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseContent(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWithContentRendersCustomCopy(t *testing.T) {
	c, err := ParseContent(strings.NewReader(`
name: Ada
projects:
  - title: Engine
    tags: [math]
`))
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, Must(WithContent(c)).Render(&b))
	assert.Contains(t, b.String(), "<title>Ada</title>")
	assert.Contains(t, b.String(), "Engine")
}
