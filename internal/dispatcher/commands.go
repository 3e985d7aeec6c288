package dispatcher

import (
	"context"

	"github.com/dshills/textcutter/internal/cutter"
	"github.com/dshills/textcutter/internal/dispatcher/handler"
	"github.com/dshills/textcutter/internal/join"
)

// Command names.
const (
	CmdSplitLines   = "split-lines"
	CmdSplitWords   = "split-words"
	CmdJoin         = "join"
	CmdJoinSpace    = "join-space"
	CmdJoinNewline  = "join-newline"
	CmdStripBullets = "strip-bullets"
)

// EngineOption configures RegisterEngine.
type EngineOption func(*engineCommands)

type engineCommands struct {
	joinSeparator join.Separator
}

// WithJoinSeparator sets the separator of the plain join command. The
// join-space and join-newline commands are not affected.
func WithJoinSeparator(sep join.Separator) EngineOption {
	return func(c *engineCommands) {
		c.joinSeparator = sep
	}
}

// RegisterEngine registers every engine operation under its command name.
func RegisterEngine(d *Dispatcher, e *cutter.Engine, opts ...EngineOption) {
	cfg := engineCommands{joinSeparator: join.None}
	for _, opt := range opts {
		opt(&cfg)
	}

	d.RegisterHandlerFunc(CmdSplitLines, func(ctx context.Context, cmd Command) handler.Result {
		return fromEngine(e.SplitLines(ctx, cmd.Selection))
	})
	d.RegisterHandlerFunc(CmdSplitWords, func(ctx context.Context, cmd Command) handler.Result {
		return fromEngine(e.SplitWords(ctx, cmd.Selection))
	})
	for name, sep := range map[string]join.Separator{
		CmdJoin:        cfg.joinSeparator,
		CmdJoinSpace:   join.Space,
		CmdJoinNewline: join.Newline,
	} {
		d.RegisterHandlerFunc(name, func(ctx context.Context, cmd Command) handler.Result {
			return fromEngine(e.Join(ctx, cmd.Selection, sep))
		})
	}
	d.RegisterHandlerFunc(CmdStripBullets, func(ctx context.Context, cmd Command) handler.Result {
		return fromEngine(e.StripBullets(ctx, cmd.Selection))
	})
}

// fromEngine converts an engine outcome into a dispatch result.
func fromEngine(res cutter.Result, err error) handler.Result {
	if err != nil {
		return handler.Error(err).WithMessage(cutter.Message(err))
	}
	if res.NoOp {
		return handler.NoOpWithMessage(res.Status)
	}
	return handler.SuccessWithMessage(res.Status).WithNodes(res.Created, res.Modified, res.Removed)
}
