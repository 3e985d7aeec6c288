// Package app wires configuration, the document host, the request engine,
// the dispatcher and the script host into one application.
package app

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/dshills/textcutter/internal/bullets"
	"github.com/dshills/textcutter/internal/config"
	"github.com/dshills/textcutter/internal/cutter"
	"github.com/dshills/textcutter/internal/dispatcher"
	"github.com/dshills/textcutter/internal/dispatcher/handler"
	"github.com/dshills/textcutter/internal/fonts"
	"github.com/dshills/textcutter/internal/plugin/lua"
	"github.com/dshills/textcutter/internal/richtext"
	"github.com/dshills/textcutter/internal/scene/memdoc"
)

// Application runs requests against one open document.
type Application struct {
	mu sync.Mutex

	cfg    *config.Config
	logger *Logger
	output io.Writer

	doc        *memdoc.Document
	engine     *cutter.Engine
	dispatcher *dispatcher.Dispatcher

	results []handler.Result
}

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the application logger.
func WithLogger(l *Logger) Option {
	return func(app *Application) {
		if l != nil {
			app.logger = l
		}
	}
}

// WithOutput sets where script print output goes.
func WithOutput(w io.Writer) Option {
	return func(app *Application) {
		if w != nil {
			app.output = w
		}
	}
}

// New creates an application. A nil cfg means the built-in defaults.
func New(cfg *config.Config, opts ...Option) *Application {
	if cfg == nil {
		cfg = config.Default()
	}
	app := &Application{
		cfg:    cfg,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = NewLogger(LoggerConfig{
			Level:  ParseLogLevel(cfg.Logging.Level),
			Prefix: "textcutter",
		})
	}
	return app
}

// Config returns the application configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Open loads a document file and makes it current.
func (app *Application) Open(path string) error {
	doc, err := memdoc.LoadFile(path, app.documentOptions()...)
	if err != nil {
		return NewOperationError("open", path, err)
	}
	app.attach(doc)
	app.logger.Info("opened %s", path)
	return nil
}

// Load reads a document from r and makes it current.
func (app *Application) Load(r io.Reader) error {
	doc, err := memdoc.Load(r, app.documentOptions()...)
	if err != nil {
		return NewOperationError("load", "", err)
	}
	app.attach(doc)
	return nil
}

// Document returns the current document, or nil.
func (app *Application) Document() *memdoc.Document {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.doc
}

// Dispatcher returns the command dispatcher, or nil before a document is
// open.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.dispatcher
}

func (app *Application) documentOptions() []memdoc.Option {
	attrs := richtext.DefaultAttributes()
	attrs.FontName = richtext.FontName{
		Family: app.cfg.Fonts.DefaultFamily,
		Style:  app.cfg.Fonts.DefaultStyle,
	}
	return []memdoc.Option{memdoc.WithDefaultAttributes(attrs)}
}

// attach builds the engine and dispatcher for doc.
func (app *Application) attach(doc *memdoc.Document) {
	cfg := app.cfg

	engineOpts := []cutter.Option{
		cutter.WithLogger(app.logger.WithComponent("cutter")),
		cutter.WithScheduler(fonts.NewScheduler(doc, fonts.WithMaxConcurrent(cfg.Fonts.MaxConcurrent))),
		cutter.WithDefaultFont(fonts.Key{Family: cfg.Fonts.DefaultFamily, Style: cfg.Fonts.DefaultStyle}),
		cutter.WithWordGap(cfg.Words.Gap),
		cutter.WithFallbackFontSize(cfg.Words.FallbackSize),
		cutter.WithLineGap(cfg.Split.LineGap),
		cutter.WithKeepOriginal(cfg.Split.KeepOriginal),
		cutter.WithCoalesce(cfg.Split.Coalesce),
	}
	if glyphs := cfg.GlyphRunes(); len(glyphs) > 0 {
		engineOpts = append(engineOpts, cutter.WithStripper(bullets.New(glyphs...)))
	}
	engine := cutter.New(doc, engineOpts...)

	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	dispatcher.RegisterEngine(d, engine, dispatcher.WithJoinSeparator(cfg.JoinSeparator()))
	hook := dispatcher.NewLoggingHook(app.logger.WithComponent("dispatcher"))
	d.RegisterPreHook(hook)
	d.RegisterPostHook(hook)

	app.mu.Lock()
	defer app.mu.Unlock()
	app.doc = doc
	app.engine = engine
	app.dispatcher = d
	app.results = nil
}

// Select replaces the document selection with the nodes named by ids.
func (app *Application) Select(ids ...string) error {
	doc := app.Document()
	if doc == nil {
		return ErrNoDocument
	}
	nodes, err := doc.LookupAll(ids...)
	if err != nil {
		return NewOperationError("select", "", err)
	}
	doc.SetSelection(nodes)
	return nil
}

// Run executes one command over the current selection.
func (app *Application) Run(ctx context.Context, command string) handler.Result {
	doc, d := app.Document(), app.Dispatcher()
	if doc == nil || d == nil {
		return handler.Error(ErrNoDocument).WithMessage("Open a document first.")
	}
	res := d.Run(ctx, command, doc.Selection())
	app.record(res)
	return res
}

// RunScript executes a Lua file against the current document. Every request
// the script makes is recorded as if issued through Run.
func (app *Application) RunScript(ctx context.Context, path string) error {
	doc, d := app.Document(), app.Dispatcher()
	if doc == nil || d == nil {
		return ErrNoDocument
	}

	state := lua.NewState(
		lua.WithTimeout(app.cfg.Script.Timeout),
		lua.WithOutput(app.output),
	)
	defer state.Close()

	host := lua.NewHost(doc, d)
	host.Install(state)

	app.logger.Info("running script %s", path)
	err := state.DoFile(ctx, path)
	for _, res := range host.Results() {
		app.record(res)
	}
	if err != nil {
		return NewOperationError("script", path, err)
	}
	return nil
}

// Results returns every result produced since the document was opened.
func (app *Application) Results() []handler.Result {
	app.mu.Lock()
	defer app.mu.Unlock()
	return append([]handler.Result(nil), app.results...)
}

func (app *Application) record(res handler.Result) {
	app.mu.Lock()
	app.results = append(app.results, res)
	app.mu.Unlock()
}

// Save writes the current document to path.
func (app *Application) Save(path string) error {
	doc := app.Document()
	if doc == nil {
		return ErrNoDocument
	}
	if err := doc.SaveFile(path); err != nil {
		return NewOperationError("save", path, err)
	}
	app.logger.Info("saved %s", path)
	return nil
}

// WriteTo writes the current document as YAML to w.
func (app *Application) WriteTo(w io.Writer) error {
	doc := app.Document()
	if doc == nil {
		return ErrNoDocument
	}
	return doc.Save(w)
}

// LogSummary logs per-command dispatch statistics.
func (app *Application) LogSummary() {
	d := app.Dispatcher()
	if d == nil || d.Metrics() == nil {
		return
	}
	m := d.Metrics()
	log := app.logger.WithComponent("metrics")
	for _, s := range m.Commands() {
		log.Info("%s: %d runs, %d no-ops, %d errors, avg %s", s.Name, s.DispatchCount, s.NoOpCount, s.ErrorCount, s.AverageDuration())
	}
	if m.TotalPanics() > 0 {
		log.Warn("%d commands panicked", m.TotalPanics())
	}
}
