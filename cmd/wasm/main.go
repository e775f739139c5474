//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/indexeddb"
	"go.uber.org/zap"

	"github.com/kittclouds/galaxymap/internal/app"
	"github.com/kittclouds/galaxymap/internal/config"
	"github.com/kittclouds/galaxymap/internal/logging"
	"github.com/kittclouds/galaxymap/pkg/catalog"
	"github.com/kittclouds/galaxymap/pkg/mindmap"
	"github.com/kittclouds/galaxymap/pkg/navigation"
	"github.com/kittclouds/galaxymap/pkg/state"
)

// Version info
const Version = "0.1.0"

// Global state
var session *app.App

// lifecycle serializes the handlers that wait on IndexedDB.
var lifecycle app.Queue

func main() {
	println("[GalaxyMap] WASM Ready v" + Version)

	// Register exports
	js.Global().Set("GalaxyMap", js.ValueOf(map[string]interface{}{
		"version":    js.FuncOf(getVersion),
		"initialize": js.FuncOf(initialize),
		"teardown":   js.FuncOf(teardown),
		"view":       js.FuncOf(view),
		// Gestures
		"click":      js.FuncOf(gesture(navigation.GestureClick)),
		"link":       js.FuncOf(gesture(navigation.GestureLink)),
		"cancelLink": js.FuncOf(gesture(navigation.GestureCancelLink)),
		"edit":       js.FuncOf(gesture(navigation.GestureEdit)),
		"read":       js.FuncOf(gesture(navigation.GestureRead)),
		"connect":    js.FuncOf(connect),
		// Renderer deltas
		"nodesChange": js.FuncOf(nodesChange),
		"edgesChange": js.FuncOf(edgesChange),
		// Toolbar and panels
		"addNote":         js.FuncOf(addNote),
		"deleteSelected":  js.FuncOf(deleteSelected),
		"exit":            js.FuncOf(exit),
		"saveNote":        js.FuncOf(saveNote),
		"setNoteTags":     js.FuncOf(setNoteTags),
		"setNoteType":     js.FuncOf(setNoteType),
		"setNotePriority": js.FuncOf(setNotePriority),
		// Search
		"search":         js.FuncOf(search),
		"navigateToNote": js.FuncOf(navigateToNote),
		// Catalog
		"templates":       js.FuncOf(templates),
		"applyTemplate":   js.FuncOf(applyTemplate),
		"noteTypes":       js.FuncOf(noteTypes),
		"tags":            js.FuncOf(tags),
		"addCustomTag":    js.FuncOf(addCustomTag),
		"removeCustomTag": js.FuncOf(removeCustomTag),
		// Persistence
		"reset":     js.FuncOf(reset),
		"lastSaved": js.FuncOf(lastSaved),
		"flush":     js.FuncOf(flush),
	}))

	select {}
}

// getVersion returns the module version
func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// initialize opens the session.
// Args: [configJSON string (optional), onNotice function(title, description) (optional)]
// autosave.delay in configJSON must be a duration string such as "2s".
// Returns a Promise of the JSON result.
func initialize(this js.Value, args []js.Value) interface{} {
	return async(func() interface{} { return openSession(args) })
}

func openSession(args []js.Value) interface{} {
	if session != nil {
		session.Close()
		session = nil
	}

	base := config.Default()
	base.Storage.Backend = config.BackendIndexedDB
	var raw []byte
	if len(args) > 0 && args[0].Type() == js.TypeString {
		raw = []byte(args[0].String())
	}
	cfg, err := config.ParseWith(base, raw)
	if err != nil {
		return errorResult(err.Error())
	}

	log, err := logging.New(string(cfg.Environment))
	if err != nil {
		return errorResult("failed to build logger: " + err.Error())
	}

	var fsys hackpadfs.FS
	if cfg.Storage.Backend == config.BackendIndexedDB || cfg.Storage.Backend == config.BackendFS {
		fsys, err = indexeddb.NewFS(context.Background(), cfg.Storage.Database, indexeddb.Options{})
		if err != nil {
			return errorResult("failed to create idb fs: " + err.Error())
		}
	}

	deps := app.Deps{FS: fsys, Log: log}
	if len(args) > 1 && args[1].Type() == js.TypeFunction {
		cb := args[1]
		deps.Notifier = navigation.NotifierFunc(func(n navigation.Notice) {
			cb.Invoke(n.Title, n.Description)
		})
	}

	session, err = app.Open(cfg, deps)
	if err != nil {
		return errorResult(err.Error())
	}
	return successResult("initialized")
}

// teardown flushes the pending save and releases storage.
// Returns a Promise of the JSON result.
func teardown(this js.Value, args []js.Value) interface{} {
	return async(func() interface{} {
		if session == nil {
			return successResult("not initialized")
		}
		err := session.Close()
		session = nil
		if err != nil {
			return errorResult("teardown: " + err.Error())
		}
		return successResult("closed")
	})
}

func view(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	return jsonResult(session.Store.View())
}

// gesture builds the handler for one gesture kind.
// Args: [nodeId string]
func gesture(kind navigation.GestureKind) func(js.Value, []js.Value) interface{} {
	return func(this js.Value, args []js.Value) interface{} {
		if session == nil {
			return notInitialized()
		}
		g := navigation.Gesture{Kind: kind}
		if len(args) > 0 {
			g.NodeID = args[0].String()
		}
		return jsonResult(session.Controller.Dispatch(g))
	}
}

// connect: [source string, target string]
func connect(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: source, target")
	}
	return jsonResult(session.Controller.Connect(args[0].String(), args[1].String()))
}

// nodesChange: [changesJSON string]
func nodesChange(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: changesJSON")
	}
	var changes []state.NodeChange
	if err := json.Unmarshal([]byte(args[0].String()), &changes); err != nil {
		return errorResult("invalid changes json: " + err.Error())
	}
	session.Controller.NodesChange(changes)
	return successResult("applied")
}

// edgesChange: [changesJSON string]
func edgesChange(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: changesJSON")
	}
	var changes []state.EdgeChange
	if err := json.Unmarshal([]byte(args[0].String()), &changes); err != nil {
		return errorResult("invalid changes json: " + err.Error())
	}
	session.Controller.EdgesChange(changes)
	return successResult("applied")
}

func addNote(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	return jsonResult(session.Controller.AddNote())
}

func deleteSelected(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	return jsonResult(session.Controller.DeleteSelected())
}

func exit(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	return jsonResult(session.Controller.Exit())
}

// saveNote: [id string, title string, content string]
func saveNote(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	if len(args) < 3 {
		return errorResult("requires 3 args: id, title, content")
	}
	return jsonResult(session.Controller.SaveNote(args[0].String(), args[1].String(), args[2].String()))
}

// setNoteTags: [id string, tagsJSON string]
func setNoteTags(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: id, tagsJSON")
	}
	var ids []string
	if err := json.Unmarshal([]byte(args[1].String()), &ids); err != nil {
		return errorResult("invalid tags json: " + err.Error())
	}
	if err := session.Store.SetNoteTags(args[0].String(), ids); err != nil {
		return errorResult(err.Error())
	}
	return successResult("tags updated")
}

// setNoteType: [id string, type string]
func setNoteType(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: id, type")
	}
	if err := session.Store.SetNoteType(args[0].String(), mindmap.NoteType(args[1].String())); err != nil {
		return errorResult(err.Error())
	}
	return successResult("type updated")
}

// setNotePriority: [id string, priority string ("" clears)]
func setNotePriority(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: id, priority")
	}
	if err := session.Store.SetNotePriority(args[0].String(), mindmap.Priority(args[1].String())); err != nil {
		return errorResult(err.Error())
	}
	return successResult("priority updated")
}

// search: [query string]
// Returns: {"results": [...], "show": bool}
func search(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	query := ""
	if len(args) > 0 {
		query = args[0].String()
	}
	results, show := session.Controller.Search(query)
	return jsonResult(map[string]interface{}{
		"results": results,
		"show":    show,
	})
}

// navigateToNote: [noteId string]
func navigateToNote(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: noteId")
	}
	return jsonResult(session.Controller.NavigateToNote(args[0].String()))
}

// templates: [category string (optional)]
func templates(this js.Value, args []js.Value) interface{} {
	if len(args) > 0 && args[0].Type() == js.TypeString && args[0].String() != "" {
		return jsonResult(catalog.TemplatesByCategory(catalog.TemplateCategory(args[0].String())))
	}
	return jsonResult(catalog.Templates())
}

// applyTemplate: [templateId string]
func applyTemplate(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: templateId")
	}
	return jsonResult(session.Controller.ApplyTemplate(args[0].String()))
}

func noteTypes(this js.Value, args []js.Value) interface{} {
	return jsonResult(catalog.NoteTypes())
}

// tags: [category string (optional)]
func tags(this js.Value, args []js.Value) interface{} {
	if len(args) > 0 && args[0].Type() == js.TypeString && args[0].String() != "" {
		cat := mindmap.TagCategory(args[0].String())
		if !cat.Valid() {
			return errorResult("unknown tag category: " + args[0].String())
		}
		if session == nil {
			return jsonResult(catalog.TagsByCategory(cat))
		}
		return jsonResult(session.Store.TagsByCategory(cat))
	}
	if session == nil {
		return jsonResult(catalog.DefaultTags())
	}
	return jsonResult(session.Store.Tags())
}

// addCustomTag: [name string, color string (optional)]
func addCustomTag(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	if len(args) < 1 {
		return errorResult("requires 1+ args: name, [color]")
	}
	color := ""
	if len(args) > 1 {
		color = args[1].String()
	}
	tag, err := session.Store.AddCustomTag(args[0].String(), color)
	if err != nil {
		return errorResult(err.Error())
	}
	return jsonResult(tag)
}

// removeCustomTag: [id string]
func removeCustomTag(this js.Value, args []js.Value) interface{} {
	if session == nil {
		return notInitialized()
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: id")
	}
	if err := session.Store.RemoveCustomTag(args[0].String()); err != nil {
		return errorResult(err.Error())
	}
	return successResult("removed")
}

// reset deletes the saved map and restores the starter galaxies.
// Returns a Promise of the JSON outcome.
func reset(this js.Value, args []js.Value) interface{} {
	return async(func() interface{} {
		if session == nil {
			return notInitialized()
		}
		return jsonResult(session.Controller.Reset())
	})
}

// lastSaved resolves to the epoch ms of the last write, or null.
func lastSaved(this js.Value, args []js.Value) interface{} {
	return async(func() interface{} {
		if session == nil {
			return nil
		}
		at, ok := session.Gateway.LastSaved()
		if !ok {
			return nil
		}
		return float64(at.UnixMilli())
	})
}

// flush writes the pending snapshot immediately.
// Returns a Promise of the JSON result.
func flush(this js.Value, args []js.Value) interface{} {
	return async(func() interface{} {
		if session == nil {
			return notInitialized()
		}
		if err := session.Store.Flush(); err != nil {
			session.Log.Warn("Flush failed", zap.Error(err))
			return errorResult("flush: " + err.Error())
		}
		return successResult("flushed")
	})
}

// async returns a Promise resolved with the result of job, which runs on the
// lifecycle queue. IndexedDB calls block until the event loop runs again, so
// they must not run inside the js.FuncOf callback itself.
func async(job func() interface{}) interface{} {
	executor := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		resolve := args[0]
		lifecycle.Submit(job, func(v interface{}) {
			resolve.Invoke(v)
		})
		return nil
	})
	p := js.Global().Get("Promise").New(executor)
	executor.Release()
	return p
}

func notInitialized() interface{} {
	return errorResult("not initialized")
}

func jsonResult(v interface{}) interface{} {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return errorResult(err.Error())
	}
	return string(jsonBytes)
}

// errorResult creates a JSON error response
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// successResult creates a JSON success response
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}
