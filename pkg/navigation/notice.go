package navigation

import (
	"errors"
	"fmt"

	"github.com/kittclouds/galaxymap/pkg/state"
)

// Notice is a short user-facing status message.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Notifier receives notices. Losing one never affects state.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

var (
	noticeNeedGalaxy  = Notice{"Navigate to a Galaxy", "Click on a galaxy to add notes to it."}
	noticeNoteCreated = Notice{"Note Created", "A new note has been added to your galaxy."}
	noticeDeleted     = Notice{"Notes Deleted", "Selected notes have been removed from your galaxy."}
	noticeConnected   = Notice{"Notes Connected", "Successfully linked your notes together."}
	noticeLinkActive  = Notice{"Link Mode Active", "Click another note to create a connection."}
	noticeLinkOff     = Notice{"Link Mode Cancelled", "No connection was created."}
	noticeZoomedOut   = Notice{"Zoomed Out", "Now viewing all galaxies."}
	noticeNoteSaved   = Notice{"Note Saved", "Your changes have been saved."}
	noticeReset       = Notice{"Mind Map Reset", "Your mind map has been restored to the default galaxies."}
)

func enteredNotice(name string, notes int) Notice {
	return Notice{
		Title:       fmt.Sprintf("Entered %s Galaxy", name),
		Description: fmt.Sprintf("Now viewing %d notes in this galaxy.", notes),
	}
}

func foundNotice(title, galaxy string) Notice {
	return Notice{
		Title:       "Note Found",
		Description: fmt.Sprintf("Navigated to %q in %s galaxy.", title, galaxy),
	}
}

func templateNotice(name string, galaxies int) Notice {
	return Notice{
		Title:       "Template Applied",
		Description: fmt.Sprintf("Added %d galaxies from %s.", galaxies, name),
	}
}

// rejectedNotice explains a mutation the store refused.
func rejectedNotice(err error) Notice {
	switch {
	case errors.Is(err, state.ErrNotInGalaxy):
		return noticeNeedGalaxy
	case errors.Is(err, state.ErrSelfLoop):
		return Notice{"Cannot Connect", "A note cannot be linked to itself."}
	case errors.Is(err, state.ErrEdgeExists):
		return Notice{"Already Connected", "These notes are already linked."}
	case errors.Is(err, state.ErrUnknownNote):
		return Notice{"Note Not Found", "That note is not in the current galaxy."}
	case errors.Is(err, state.ErrUnknownGalaxy):
		return Notice{"Galaxy Not Found", "That galaxy no longer exists."}
	case errors.Is(err, state.ErrUnknownTemplate):
		return Notice{"Template Not Found", "Choose a template from the gallery."}
	case errors.Is(err, state.ErrTagExists):
		return Notice{"Tag Exists", "A tag with that name already exists."}
	case errors.Is(err, state.ErrInvalidAttribute):
		return Notice{"Invalid Value", err.Error()}
	default:
		return Notice{"Action Failed", err.Error()}
	}
}
