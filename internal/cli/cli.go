// Package cli is the interactive terminal front end of galaxymap.
package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/chzyer/readline"

	"github.com/kittclouds/galaxymap/internal/app"
	"github.com/kittclouds/galaxymap/pkg/mindmap"
)

type CLI struct {
	App    *app.App
	RL     *readline.Instance
	Out    io.Writer
	Prompt string
}

func NewCLI(a *app.App, rl *readline.Instance, out io.Writer) *CLI {
	c := &CLI{
		App: a,
		RL:  rl,
		Out: out,
	}
	c.UpdatePrompt()
	return c
}

// UpdatePrompt shows the galaxy being viewed, if any.
func (c *CLI) UpdatePrompt() {
	if g, ok := c.App.Store.CurrentGalaxy(); ok {
		c.Prompt = g.Name + " > "
	} else {
		c.Prompt = "galaxies > "
	}
}

func (c *CLI) Run() error {
	line, err := c.RL.Readline()
	if err != nil {
		return err
	}

	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return nil
	}

	args := c.ParseArgs(line)
	return c.ExecuteCommand(args)
}

// ParseArgs splits a line on spaces, keeping double-quoted runs together.
func (c *CLI) ParseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes {
				if currentArg.Len() > 0 {
					args = append(args, currentArg.String())
					currentArg.Reset()
				}
			} else {
				currentArg.WriteRune(char)
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 {
		args = append(args, currentArg.String())
	}

	return args
}

func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided")
	}
	defer c.UpdatePrompt()

	switch args[0] {
	case "ls":
		return c.handleList(args[1:])
	case "enter":
		return c.handleEnter(args[1:])
	case "up":
		return c.handleUp(args[1:])
	case "add":
		return c.handleAdd(args[1:])
	case "select":
		return c.handleSelect(args[1:])
	case "del":
		return c.handleDelete(args[1:])
	case "move":
		return c.handleMove(args[1:])
	case "link":
		return c.handleLink(args[1:])
	case "connect":
		return c.handleConnect(args[1:])
	case "disconnect":
		return c.handleDisconnect(args[1:])
	case "orphans":
		return c.handleOrphans(args[1:])
	case "edit":
		return c.handleEdit(args[1:])
	case "show":
		return c.handleShow(args[1:])
	case "tag":
		return c.handleTag(args[1:])
	case "type":
		return c.handleType(args[1:])
	case "priority":
		return c.handlePriority(args[1:])
	case "search":
		return c.handleSearch(args[1:])
	case "goto":
		return c.handleGoto(args[1:])
	case "templates":
		return c.handleTemplates(args[1:])
	case "template":
		return c.handleTemplate(args[1:])
	case "save":
		return c.handleSave(args[1:])
	case "reset":
		return c.handleReset(args[1:])
	case "help":
		return c.handleHelp(args[1:])
	case "exit", "quit":
		fmt.Fprintln(c.Out, "Exiting...")
		if c.RL != nil {
			if err := c.RL.Close(); err != nil {
				fmt.Fprintf(c.Out, "Error closing readline: %v\n", err)
			}
		}
		return fmt.Errorf("exit requested: %w", io.EOF)
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (c *CLI) printHelp(command string) {
	if command == "" {
		fmt.Fprintln(c.Out, "Available commands:")
		names := make([]string, 0, len(commandHelp))
		for cmd := range commandHelp {
			names = append(names, cmd)
		}
		slices.Sort(names)
		for _, cmd := range names {
			fmt.Fprintf(c.Out, "  %s\n", cmd)
		}
		fmt.Fprintln(c.Out, "\nUse 'help <command>' for more information about a specific command.")
	} else if help, ok := commandHelp[command]; ok {
		fmt.Fprintln(c.Out, help)
	} else {
		fmt.Fprintf(c.Out, "Unknown command: %s\n", command)
	}
}

func themeLabel(t mindmap.Theme) string {
	return "[" + string(t) + "]"
}

// commandHelp contains help text for each command.
var commandHelp = map[string]string{
	"ls": `Syntax: ls
Description: Lists the galaxies, or the notes and connections of the current galaxy.`,

	"enter": `Syntax: enter <galaxy id>
Description: Opens a galaxy and shows its notes.
Example: enter galaxy-js`,

	"up": `Syntax: up
Description: Leaves the current galaxy and returns to the galaxies view.`,

	"add": `Syntax: add
Description: Creates a note at a random position in the current galaxy.`,

	"select": `Syntax: select <id>... [--edges]
Description: Replaces the selection with the given nodes, or edges with --edges.
Example: select js-1 js-2`,

	"del": `Syntax: del
Description: Deletes the selected nodes and edges. Deleting a galaxy deletes its notes.`,

	"move": `Syntax: move <id> <x> <y>
Description: Moves a galaxy or note on the canvas.
Example: move js-1 320 180`,

	"link": `Syntax: link <note id> | link --cancel
Description: Starts linking from a note; linking a second note connects the two.`,

	"connect": `Syntax: connect <source id> <target id>
Description: Connects two notes of the current galaxy.`,

	"disconnect": `Syntax: disconnect <edge id>
Description: Removes a connection.
Example: disconnect edge-js-1-js-2`,

	"orphans": `Syntax: orphans
Description: Lists the notes of the current galaxy that have no connections.`,

	"edit": `Syntax: edit <note id> <title> <content>
Description: Saves a note's title and content. Use quotes for text with spaces.
Example: edit js-1 "Hooks" "useState and useEffect"`,

	"show": `Syntax: show <note id>
Description: Shows a note and its outgoing and incoming connections.`,

	"tag": `Syntax: tag list [category] | tag add <name> [color] | tag del <tag id> | tag set <note id> [tag id]...
Description: Manages custom tags and note tags.
Example: tag add "Needs Review" #f97316`,

	"type": `Syntax: type <note id> <note type>
Description: Sets the type of a note (task, idea, resource, deadline, note).`,

	"priority": `Syntax: priority <note id> [low|medium|high]
Description: Sets the priority of a note. Omit the priority to clear it.`,

	"search": `Syntax: search <query>
Description: Finds notes in every galaxy whose title or content contains the query.
Example: search "react hooks"`,

	"goto": `Syntax: goto <note id>
Description: Opens the galaxy that owns a note and focuses it.`,

	"templates": `Syntax: templates [category]
Description: Lists the starter templates, optionally only one category (project, learning, brainstorming, research).`,

	"template": `Syntax: template <template id>
Description: Adds the galaxies and notes of a template to the mind map.
Example: template brainstorming`,

	"save": `Syntax: save
Description: Writes pending changes to storage now instead of waiting for autosave.`,

	"reset": `Syntax: reset
Description: Deletes the saved mind map and restores the starter galaxies.`,

	"help": `Syntax: help [command]
Description: Lists commands or shows help for one command.`,

	"exit": `Syntax: exit | quit
Description: Saves pending changes and leaves the program.`,
}
