package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kittclouds/galaxymap/pkg/catalog"
	"github.com/kittclouds/galaxymap/pkg/mindmap"
	"github.com/kittclouds/galaxymap/pkg/navigation"
	"github.com/kittclouds/galaxymap/pkg/state"
)

func (c *CLI) printOutcome(out navigation.Outcome) {
	if out.Notice != nil {
		fmt.Fprintf(c.Out, "%s: %s\n", out.Notice.Title, out.Notice.Description)
	}
}

func (c *CLI) handleList(args []string) error {
	v := c.App.Store.View()
	if v.Mode == mindmap.ViewGalaxies {
		if len(v.Nodes) == 0 {
			fmt.Fprintln(c.Out, "No galaxies. Try 'templates'.")
			return nil
		}
		for _, n := range v.Nodes {
			g := n.Data.(mindmap.Galaxy)
			fmt.Fprintf(c.Out, "%s %-20s %s (%d notes) %s\n", mark(n.Selected), g.ID, g.Name, g.NoteCount, themeLabel(g.Theme))
		}
		return nil
	}

	for _, n := range v.Nodes {
		note := n.Data.(mindmap.Note)
		fmt.Fprintf(c.Out, "%s %-20s %s %s\n", mark(n.Selected), note.ID, note.Title, themeLabel(note.Theme))
	}
	if len(v.Edges) > 0 {
		fmt.Fprintln(c.Out, "Connections:")
		for _, e := range v.Edges {
			fmt.Fprintf(c.Out, "%s %s: %s -> %s\n", mark(e.Selected), e.ID, e.Source, e.Target)
		}
	}
	return nil
}

func mark(selected bool) string {
	if selected {
		return "*"
	}
	return " "
}

func (c *CLI) handleEnter(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: enter <galaxy id>")
	}
	if c.App.Store.Mode() != mindmap.ViewGalaxies {
		return fmt.Errorf("already inside a galaxy, use 'up' first")
	}
	out := c.App.Controller.Dispatch(navigation.Gesture{Kind: navigation.GestureClick, NodeID: args[0]})
	if out.Notice == nil {
		return fmt.Errorf("galaxy not found: %s", args[0])
	}
	c.printOutcome(out)
	return nil
}

func (c *CLI) handleUp(args []string) error {
	if c.App.Store.Mode() == mindmap.ViewGalaxies {
		return fmt.Errorf("already viewing all galaxies")
	}
	c.printOutcome(c.App.Controller.Exit())
	return nil
}

func (c *CLI) handleAdd(args []string) error {
	out := c.App.Controller.AddNote()
	c.printOutcome(out)
	if out.Note != nil {
		fmt.Fprintf(c.Out, "Added note %s\n", out.Note.ID)
	}
	return nil
}

func (c *CLI) handleSelect(args []string) error {
	edges := slices.Contains(args, "--edges")
	ids := slices.DeleteFunc(slices.Clone(args), func(a string) bool { return a == "--edges" })
	if edges {
		c.App.Store.SelectEdges(ids...)
	} else {
		c.App.Store.Select(ids...)
	}
	fmt.Fprintf(c.Out, "Selected: %s\n", strings.Join(c.App.Store.Selected(), ", "))
	return nil
}

func (c *CLI) handleDelete(args []string) error {
	c.printOutcome(c.App.Controller.DeleteSelected())
	return nil
}

func (c *CLI) handleMove(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: move <id> <x> <y>")
	}
	x, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}
	if !c.visible(args[0]) {
		return fmt.Errorf("no node %s in this view", args[0])
	}
	c.App.Controller.NodesChange([]state.NodeChange{{
		Type:     state.ChangePosition,
		ID:       args[0],
		Position: &mindmap.Position{X: x, Y: y},
	}})
	return nil
}

func (c *CLI) visible(id string) bool {
	return slices.ContainsFunc(c.App.Store.View().Nodes, func(n state.Node) bool { return n.ID == id })
}

func (c *CLI) handleLink(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: link <note id> | link --cancel")
	}
	g := navigation.Gesture{Kind: navigation.GestureLink, NodeID: args[0]}
	if args[0] == "--cancel" {
		g = navigation.Gesture{Kind: navigation.GestureCancelLink}
	}
	out := c.App.Controller.Dispatch(g)
	c.printOutcome(out)
	if out.Link.Active {
		fmt.Fprintf(c.Out, "Linking from %s\n", out.Link.From)
	}
	return nil
}

func (c *CLI) handleConnect(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: connect <source id> <target id>")
	}
	c.printOutcome(c.App.Controller.Connect(args[0], args[1]))
	return nil
}

func (c *CLI) handleDisconnect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: disconnect <edge id>")
	}
	if err := c.App.Store.DeleteEdge(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "Removed %s\n", args[0])
	return nil
}

func (c *CLI) handleOrphans(args []string) error {
	notes, err := c.App.Store.Orphans()
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(c.Out, "Every note is connected.")
		return nil
	}
	for _, n := range notes {
		fmt.Fprintf(c.Out, "  %-20s %s\n", n.ID, n.Title)
	}
	return nil
}

func (c *CLI) handleEdit(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: edit <note id> <title> <content>")
	}
	c.printOutcome(c.App.Controller.SaveNote(args[0], args[1], args[2]))
	return nil
}

func (c *CLI) handleShow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <note id>")
	}
	out := c.App.Controller.Dispatch(navigation.Gesture{Kind: navigation.GestureRead, NodeID: args[0]})
	if out.Note == nil {
		return fmt.Errorf("note not found in this galaxy: %s", args[0])
	}

	n := out.Note
	fmt.Fprintf(c.Out, "%s %s\n", n.Title, themeLabel(n.Theme))
	if info, ok := catalog.NoteTypeByID(n.NoteType); ok {
		fmt.Fprintf(c.Out, "Type: %s\n", info.Name)
	}
	if n.Priority != "" {
		fmt.Fprintf(c.Out, "Priority: %s\n", n.Priority)
	}
	if len(n.Tags) > 0 {
		fmt.Fprintf(c.Out, "Tags: %s\n", strings.Join(n.Tags, ", "))
	}
	fmt.Fprintf(c.Out, "\n%s\n", n.Content)

	if out.Connections != nil {
		for _, o := range out.Connections.Outgoing {
			fmt.Fprintf(c.Out, "  -> %s (%s)\n", o.Title, o.ID)
		}
		for _, in := range out.Connections.Incoming {
			fmt.Fprintf(c.Out, "  <- %s (%s)\n", in.Title, in.ID)
		}
	}
	return nil
}

func (c *CLI) handleTag(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tag list | add | del | set")
	}
	switch args[0] {
	case "list":
		if len(args) > 2 {
			return fmt.Errorf("usage: tag list [category]")
		}
		list := c.App.Store.Tags()
		if len(args) == 2 {
			cat := mindmap.TagCategory(strings.ToLower(args[1]))
			if !cat.Valid() {
				return fmt.Errorf("unknown tag category: %s", args[1])
			}
			list = c.App.Store.TagsByCategory(cat)
		}
		for _, t := range list {
			fmt.Fprintf(c.Out, "  %-16s %-18s %s\n", t.ID, t.Name, t.Category)
		}
		return nil
	case "add":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: tag add <name> [color]")
		}
		color := ""
		if len(args) == 3 {
			color = args[2]
		}
		t, err := c.App.Store.AddCustomTag(args[1], color)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Out, "Added tag %s\n", t.ID)
		return nil
	case "del":
		if len(args) != 2 {
			return fmt.Errorf("usage: tag del <tag id>")
		}
		return c.App.Store.RemoveCustomTag(args[1])
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("usage: tag set <note id> [tag id]...")
		}
		return c.App.Store.SetNoteTags(args[1], args[2:])
	default:
		return fmt.Errorf("unknown tag command: %s", args[0])
	}
}

func (c *CLI) handleType(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: type <note id> <note type>")
	}
	return c.App.Store.SetNoteType(args[0], mindmap.NoteType(strings.ToLower(args[1])))
}

func (c *CLI) handlePriority(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: priority <note id> [low|medium|high]")
	}
	var p mindmap.Priority
	if len(args) == 2 {
		p = mindmap.Priority(strings.ToLower(args[1]))
	}
	return c.App.Store.SetNotePriority(args[0], p)
}

func (c *CLI) handleSearch(args []string) error {
	results, show := c.App.Controller.Search(strings.Join(args, " "))
	if !show {
		return fmt.Errorf("usage: search <query>")
	}
	if len(results) == 0 {
		fmt.Fprintln(c.Out, "No notes found.")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(c.Out, "  %-20s %s (%s)\n", r.NoteID, r.Title, r.GalaxyName)
	}
	return nil
}

func (c *CLI) handleGoto(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: goto <note id>")
	}
	out := c.App.Controller.NavigateToNote(args[0])
	if out.Focus == "" && out.Notice == nil {
		return fmt.Errorf("note not found: %s", args[0])
	}
	c.printOutcome(out)
	return nil
}

func (c *CLI) handleTemplates(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: templates [category]")
	}
	list := catalog.Templates()
	if len(args) == 1 {
		list = catalog.TemplatesByCategory(catalog.TemplateCategory(strings.ToLower(args[0])))
		if len(list) == 0 {
			fmt.Fprintf(c.Out, "No templates in %s.\n", args[0])
			return nil
		}
	}
	for _, t := range list {
		fmt.Fprintf(c.Out, "  %-18s %s: %s\n", t.ID, t.Name, t.Description)
	}
	return nil
}

func (c *CLI) handleTemplate(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: template <template id>")
	}
	c.printOutcome(c.App.Controller.ApplyTemplate(args[0]))
	return nil
}

func (c *CLI) handleSave(args []string) error {
	if err := c.App.Store.Flush(); err != nil {
		return err
	}
	if at, ok := c.App.Gateway.LastSaved(); ok {
		fmt.Fprintf(c.Out, "Saved at %s\n", at.Format("15:04:05"))
	} else {
		fmt.Fprintln(c.Out, "Nothing to save.")
	}
	return nil
}

func (c *CLI) handleReset(args []string) error {
	c.printOutcome(c.App.Controller.Reset())
	return nil
}

func (c *CLI) handleHelp(args []string) error {
	if len(args) > 1 {
		return errors.New("usage: help [command]")
	}
	if len(args) == 0 {
		c.printHelp("")
	} else {
		c.printHelp(args[0])
	}
	return nil
}
