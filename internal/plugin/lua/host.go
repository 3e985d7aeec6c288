package lua

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textcutter/internal/dispatcher/handler"
	"github.com/dshills/textcutter/internal/scene"
)

// ModuleName is the global table scripts use.
const ModuleName = "textcutter"

// Document is the part of the host document a script can see.
type Document interface {
	Lookup(id string) (scene.Node, error)
	Walk() []scene.Node
	Selection() []scene.Node
	SetSelection(nodes []scene.Node)
}

// Runner executes one named request against a selection.
type Runner interface {
	Run(ctx context.Context, name string, sel []scene.Node) handler.Result
	Commands() []string
}

// Host binds a document and a runner to the textcutter module.
type Host struct {
	doc    Document
	runner Runner

	results []handler.Result
}

// NewHost creates a host.
func NewHost(doc Document, runner Runner) *Host {
	return &Host{doc: doc, runner: runner}
}

// Install registers the module into s.
func (h *Host) Install(s *State) {
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"nodes":     h.nodes,
		"select":    h.selectNodes,
		"selection": h.selection,
		"run":       h.run,
		"text":      h.text,
		"commands":  h.commands,
	})
}

// Results returns every request result in the order the script ran them.
func (h *Host) Results() []handler.Result {
	return append([]handler.Result(nil), h.results...)
}

// nodes() -> {{id, name, type, x, y, text}, ...}
func (h *Host) nodes(L *lua.LState) int {
	list := L.NewTable()
	for _, n := range h.doc.Walk() {
		list.Append(nodeTable(L, n))
	}
	L.Push(list)
	return 1
}

// select(id, ...) or select({id, ...}) -> count
func (h *Host) selectNodes(L *lua.LState) int {
	var ids []string
	for i := 1; i <= L.GetTop(); i++ {
		switch v := L.Get(i).(type) {
		case *lua.LTable:
			v.ForEach(func(_, item lua.LValue) {
				ids = append(ids, item.String())
			})
		default:
			ids = append(ids, L.CheckString(i))
		}
	}

	sel := make([]scene.Node, 0, len(ids))
	for _, id := range ids {
		n, err := h.doc.Lookup(id)
		if err != nil {
			L.RaiseError("select: %v", err)
			return 0
		}
		sel = append(sel, n)
	}
	h.doc.SetSelection(sel)
	L.Push(lua.LNumber(len(sel)))
	return 1
}

// selection() -> {id, ...}
func (h *Host) selection(L *lua.LState) int {
	ids := L.NewTable()
	for _, n := range h.doc.Selection() {
		ids.Append(lua.LString(n.ID()))
	}
	L.Push(ids)
	return 1
}

// run(command) -> message, ok
func (h *Host) run(L *lua.LState) int {
	name := L.CheckString(1)

	ctx := L.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res := h.runner.Run(ctx, name, h.doc.Selection())
	h.results = append(h.results, res)

	L.Push(lua.LString(res.String()))
	L.Push(lua.LBool(!res.IsError() && res.Status != handler.StatusCancelled))
	return 2
}

// text(id) -> string or nil
func (h *Host) text(L *lua.LState) int {
	id := L.CheckString(1)
	n, err := h.doc.Lookup(id)
	if err != nil {
		L.RaiseError("text: %v", err)
		return 0
	}
	t, ok := scene.AsText(n)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(t.Characters()))
	return 1
}

// commands() -> {name, ...}
func (h *Host) commands(L *lua.LState) int {
	names := L.NewTable()
	for _, name := range h.runner.Commands() {
		names.Append(lua.LString(name))
	}
	L.Push(names)
	return 1
}

func nodeTable(L *lua.LState, n scene.Node) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "id", lua.LString(n.ID()))
	L.SetField(t, "name", lua.LString(n.Name()))
	L.SetField(t, "type", lua.LString(string(n.Type())))
	L.SetField(t, "x", lua.LNumber(n.X()))
	L.SetField(t, "y", lua.LNumber(n.Y()))
	if tn, ok := scene.AsText(n); ok {
		L.SetField(t, "text", lua.LString(tn.Characters()))
	}
	return t
}
