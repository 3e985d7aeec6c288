// Package lua runs batch scripts against a document.
//
// Scripts run in a gopher-lua state opened with the base, table, string and
// math libraries only. Loaders (dofile, loadfile, load, loadstring, require)
// are removed and print writes to a host-supplied writer.
//
// # State
//
//	state := lua.NewState(lua.WithTimeout(5 * time.Second))
//	defer state.Close()
//
//	if err := state.DoFile(ctx, "batch.lua"); err != nil {
//	    if errors.Is(err, lua.ErrTimeout) {
//	        ...
//	    }
//	}
//
// Every call installs the caller's context, bounded by the state timeout, on
// the VM. An expired deadline stops the script between instructions.
//
// # Host module
//
// Host exposes the global table textcutter:
//
//	textcutter.nodes()            -- {{id, name, type, x, y, text}, ...}
//	textcutter.select(id, ...)    -- replaces the selection, returns its size
//	textcutter.selection()        -- {id, ...}
//	textcutter.run("split-lines") -- message, ok
//	textcutter.text(id)           -- characters, or nil for non-text nodes
//	textcutter.commands()         -- {name, ...}
//
// Each run is one complete request over the current selection. Requests that
// change the selection (split, join) leave it pointing at their results, so
// a script can chain them.
package lua
