// Package runtime provides the application runtime context for Crewboard.
// It is the composition root: it owns storage, configuration and the one
// live project, and hands the project to the pure metrics, timeline and
// report packages as a parameter.
package runtime

import (
	"time"

	"github.com/manav03panchal/crewboard/internal/config"
	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/logging"
	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/notify"
	"github.com/manav03panchal/crewboard/internal/output"
	"github.com/manav03panchal/crewboard/internal/storage"
)

// MemoryPath selects an in-memory database when used as the database path.
const MemoryPath = ":memory:"

// Context holds the application runtime context.
type Context struct {
	DB        *storage.DB
	Formatter *output.Formatter
	Config    *config.RuntimeConfig

	// Repositories
	ProjectRepo *storage.ProjectRepo
	ReportRepo  *storage.ReportRepo
	WebhookRepo *storage.WebhookRepo
	UndoRepo    *storage.UndoRepo

	Sender *notify.Sender

	// Debug mode
	Debug bool

	// Now is the clock handed to the engine. Tests replace it.
	Now func() time.Time
}

// Options configures the runtime context.
type Options struct {
	DBPath    string
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
	Config    *config.RuntimeConfig
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath:    storage.DefaultPath(),
		InMemory:  false,
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Debug:     false,
	}
}

// New creates a new runtime context. The database path comes from opts,
// then the configured storage path, then the default location.
func New(opts Options) (*Context, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Global
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = cfg.Storage.Path
	}
	if dbPath == "" {
		dbPath = storage.DefaultPath()
	}
	if dbPath == MemoryPath {
		opts.InMemory = true
	}

	// Open database
	db, err := storage.Open(storage.Options{
		Path:     dbPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}

	webhookRepo := storage.NewWebhookRepo(db)

	// Create formatter
	formatter := output.NewFormatter()
	if opts.Format != "" {
		formatter.Format = opts.Format
	}
	if opts.ColorMode != "" {
		formatter.ColorMode = opts.ColorMode
	}

	logging.DebugLog("runtime ready", "db_path", dbPath, "in_memory", opts.InMemory)

	return &Context{
		DB:          db,
		Formatter:   formatter,
		Config:      cfg,
		ProjectRepo: storage.NewProjectRepo(db),
		ReportRepo:  storage.NewReportRepo(db),
		WebhookRepo: webhookRepo,
		UndoRepo:    storage.NewUndoRepo(db),
		Sender:      notify.NewSender(webhookRepo, cfg),
		Debug:       opts.Debug,
		Now:         time.Now,
	}, nil
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}

// Project loads the live project. A missing project is a UserError
// pointing at 'project init'.
func (c *Context) Project() (*model.Project, error) {
	p, err := c.ProjectRepo.Get()
	if err != nil {
		if errors.Is(err, errors.ErrProjectNotInitialized) {
			return nil, errors.NewUserErrorFrom(errors.ErrProjectNotInitialized, "", "")
		}
		return nil, err
	}
	return p, nil
}

// HasProject reports whether a project has been set up.
func (c *Context) HasProject() (bool, error) {
	return c.ProjectRepo.Exists()
}

// InitProject stores p as the live project. An existing project is only
// replaced when force is set, and the replaced state can be undone.
func (c *Context) InitProject(p *model.Project, force bool) error {
	exists, err := c.ProjectRepo.Exists()
	if err != nil {
		return err
	}
	if !exists {
		return c.ProjectRepo.Save(p)
	}
	if !force {
		return errors.NewUserErrorFrom(errors.ErrProjectExists, "", "")
	}
	return c.ProjectRepo.SaveWithUndo(p, model.UndoActionEdit, "replace project "+p.Name)
}

// EditProject loads the project, applies fn and saves the result together
// with an undo checkpoint. Nothing is saved when fn fails.
func (c *Context) EditProject(action model.UndoAction, description string, fn func(p *model.Project) error) (*model.Project, error) {
	p, err := c.Project()
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	if err := c.ProjectRepo.SaveWithUndo(p, action, description); err != nil {
		return nil, err
	}
	logging.DebugLog("project saved", "action", string(action), "description", description)
	return p, nil
}

// ClearProject removes the project and its weekly reports. It can be undone.
func (c *Context) ClearProject() error {
	exists, err := c.ProjectRepo.Exists()
	if err != nil {
		return err
	}
	if !exists {
		return errors.NewUserErrorFrom(errors.ErrProjectNotInitialized, "", "")
	}
	return c.ProjectRepo.ClearWithUndo("clear all data")
}
