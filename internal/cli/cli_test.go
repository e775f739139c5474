package cli

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/galaxymap/internal/app"
	"github.com/kittclouds/galaxymap/internal/config"
	"github.com/kittclouds/galaxymap/pkg/mindmap"
)

func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Backend = config.BackendMemory
	cfg.Autosave.Delay = time.Hour

	a, err := app.Open(cfg, app.Deps{})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	var out bytes.Buffer
	return NewCLI(a, nil, &out), &out
}

func run(t *testing.T, c *CLI, line string) {
	t.Helper()
	require.NoError(t, c.ExecuteCommand(c.ParseArgs(line)))
}

func TestParseArgs(t *testing.T) {
	c := &CLI{}
	tests := []struct {
		input string
		want  []string
	}{
		{"ls", []string{"ls"}},
		{"edit js-1  \"React Hooks\" \"use them well\"", []string{"edit", "js-1", "React Hooks", "use them well"}},
		{"search \"a  b\"", []string{"search", "a  b"}},
		{"   ", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.ParseArgs(tt.input), tt.input)
	}
}

func TestPromptFollowsGalaxy(t *testing.T) {
	c, _ := newTestCLI(t)
	assert.Equal(t, "galaxies > ", c.Prompt)

	run(t, c, "enter galaxy-js")
	assert.Equal(t, "JavaScript > ", c.Prompt)

	run(t, c, "up")
	assert.Equal(t, "galaxies > ", c.Prompt)
}

func TestEnterAndList(t *testing.T) {
	c, out := newTestCLI(t)

	run(t, c, "ls")
	assert.Contains(t, out.String(), "galaxy-design")
	assert.Contains(t, out.String(), "(3 notes)")

	out.Reset()
	run(t, c, "enter galaxy-js")
	assert.Contains(t, out.String(), "Entered JavaScript Galaxy")

	out.Reset()
	run(t, c, "connect js-1 js-2")
	run(t, c, "ls")
	assert.Contains(t, out.String(), "React Hooks")
	assert.Contains(t, out.String(), "edge-js-1-js-2: js-1 -> js-2")
}

func TestCommandErrors(t *testing.T) {
	c, _ := newTestCLI(t)

	assert.Error(t, c.ExecuteCommand(nil))
	assert.Error(t, c.ExecuteCommand([]string{"fly"}))
	assert.Error(t, c.ExecuteCommand([]string{"enter", "galaxy-nope"}))
	assert.Error(t, c.ExecuteCommand([]string{"up"}))
	assert.Error(t, c.ExecuteCommand([]string{"move", "js-1", "x", "1"}))
	assert.Error(t, c.ExecuteCommand([]string{"goto", "ghost"}))
	assert.Error(t, c.ExecuteCommand([]string{"search"}))
}

func TestExitRequested(t *testing.T) {
	c, out := newTestCLI(t)

	err := c.ExecuteCommand([]string{"quit"})
	assert.True(t, errors.Is(err, io.EOF))
	assert.Contains(t, out.String(), "Exiting...")
}

func TestNoteWorkflow(t *testing.T) {
	c, out := newTestCLI(t)

	run(t, c, "enter galaxy-js")
	run(t, c, "add")
	assert.Contains(t, out.String(), "Note Created")

	run(t, c, `edit js-1 "Hooks" "useState and useEffect"`)
	run(t, c, "type js-1 TASK")
	run(t, c, "priority js-1 high")
	run(t, c, "tag set js-1 todo")
	run(t, c, "connect js-1 js-2")
	run(t, c, "link js-3")
	assert.Contains(t, out.String(), "Linking from js-3")
	run(t, c, "link js-1")

	out.Reset()
	run(t, c, "show js-1")
	text := out.String()
	assert.Contains(t, text, "Hooks [")
	assert.Contains(t, text, "Type: Task")
	assert.Contains(t, text, "Priority: high")
	assert.Contains(t, text, "Tags: todo")
	assert.Contains(t, text, "-> ")
	assert.Contains(t, text, "<- ")

	run(t, c, "move js-1 10 20")
	n, ok := c.App.Store.Note("js-1")
	require.True(t, ok)
	assert.Equal(t, mindmap.Position{X: 10, Y: 20}, n.Position)

	run(t, c, "disconnect edge-js-1-js-2")
	run(t, c, "select js-1")
	run(t, c, "del")
	_, ok = c.App.Store.Note("js-1")
	assert.False(t, ok)
	assert.Empty(t, c.App.Store.View().Edges)
}

func TestSearchAndGoto(t *testing.T) {
	c, out := newTestCLI(t)

	run(t, c, "search react")
	assert.Contains(t, out.String(), "React Hooks (JavaScript)")

	out.Reset()
	run(t, c, "search zzz")
	assert.Contains(t, out.String(), "No notes found.")

	run(t, c, "goto design-2")
	assert.Equal(t, "Design > ", c.Prompt)
}

func TestTagsTemplatesAndReset(t *testing.T) {
	c, out := newTestCLI(t)

	run(t, c, `tag add "Needs Review"`)
	assert.Contains(t, out.String(), "Added tag needs-review")
	assert.Error(t, c.ExecuteCommand([]string{"tag", "add", "needs review"}), "slug collides")
	run(t, c, "tag del needs-review")

	run(t, c, "templates")
	assert.Contains(t, out.String(), "brainstorming")

	run(t, c, "template brainstorming")
	assert.Len(t, c.App.Store.View().Nodes, 6)

	run(t, c, "reset")
	assert.Len(t, c.App.Store.View().Nodes, 3)
}

func TestSave(t *testing.T) {
	c, out := newTestCLI(t)

	run(t, c, "enter galaxy-js")
	run(t, c, "save")
	assert.Contains(t, out.String(), "Saved at ")
}

func TestHelp(t *testing.T) {
	c, out := newTestCLI(t)

	run(t, c, "help")
	assert.Contains(t, out.String(), "Available commands:")

	out.Reset()
	run(t, c, "help goto")
	assert.Contains(t, out.String(), "Syntax: goto <note id>")
}

func TestListFilteredByCategory(t *testing.T) {
	c, out := newTestCLI(t)

	run(t, c, `tag add "Needs Review"`)
	out.Reset()
	run(t, c, "tag list custom")
	text := out.String()
	assert.Contains(t, text, "research")
	assert.Contains(t, text, "needs-review")
	assert.NotContains(t, text, "High Priority")
	assert.Error(t, c.ExecuteCommand([]string{"tag", "list", "colour"}))

	out.Reset()
	run(t, c, "templates learning")
	assert.Contains(t, out.String(), "learning-path")
	assert.NotContains(t, out.String(), "project-planning")

	out.Reset()
	run(t, c, "templates research")
	assert.Contains(t, out.String(), "No templates in research.")
}

func TestOrphans(t *testing.T) {
	c, out := newTestCLI(t)

	assert.Error(t, c.ExecuteCommand([]string{"orphans"}), "needs an open galaxy")

	run(t, c, "enter galaxy-js")
	run(t, c, "connect js-1 js-2")
	out.Reset()
	run(t, c, "orphans")
	assert.Contains(t, out.String(), "js-3")
	assert.NotContains(t, out.String(), "js-1")

	run(t, c, "connect js-3 js-1")
	out.Reset()
	run(t, c, "orphans")
	assert.Contains(t, out.String(), "Every note is connected.")
}
