package di

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/tdd/internal/adapter/presenter"
	"github.com/YoshitsuguKoike/tdd/internal/app"
	appconfig "github.com/YoshitsuguKoike/tdd/internal/app/config"
	"github.com/YoshitsuguKoike/tdd/internal/application/port/output"
	"github.com/YoshitsuguKoike/tdd/internal/application/service"
	"github.com/YoshitsuguKoike/tdd/internal/infra/schemastore"
	"github.com/YoshitsuguKoike/tdd/internal/telemetry"
	changevalidator "github.com/YoshitsuguKoike/tdd/internal/validator/change"
)

// Output formats accepted by Config.OutputFormat
const (
	FormatCLI  = "cli"
	FormatJSON = "json"
)

// Container is the DI container that holds all dependencies.
// Dependencies are wired by hand, in layer order.
type Container struct {
	// Infrastructure
	fs      afero.Fs
	paths   app.Paths
	schemas *schemastore.Store

	// Application services
	statuses  *service.ArtifactStatusService
	coverage  *service.CoverageSyncService
	changes   *service.ChangeService
	archive   *service.ArchiveService
	dashboard *service.DashboardService
	project   *service.ProjectService
	validator *changevalidator.Validator

	// Adapters
	presenter output.Presenter
	reporter  *telemetry.Reporter

	config Config
}

// Config holds configuration for the container
type Config struct {
	Fs           afero.Fs
	ProjectRoot  string
	OutputFormat string // cli or json
	OutputWriter io.Writer
	Settings     appconfig.Config
	Telemetry    telemetry.Settings
}

// NewContainer creates and initializes the DI container
func NewContainer(config Config) (*Container, error) {
	c := &Container{config: config}

	if c.config.Fs == nil {
		c.config.Fs = afero.NewOsFs()
	}
	if c.config.OutputWriter == nil {
		c.config.OutputWriter = os.Stdout
	}
	if c.config.ProjectRoot == "" {
		return nil, fmt.Errorf("project root is required")
	}
	if c.config.Settings == nil {
		return nil, fmt.Errorf("settings are required")
	}

	c.initializeInfrastructure()
	c.initializeApplication()
	if err := c.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("failed to initialize adapters: %w", err)
	}
	return c, nil
}

func (c *Container) initializeInfrastructure() {
	c.fs = c.config.Fs
	c.paths = app.ResolvePaths(c.config.ProjectRoot)
	c.schemas = schemastore.New(c.fs, c.paths)
}

func (c *Container) initializeApplication() {
	c.statuses = service.NewArtifactStatusService(c.fs, c.paths)
	c.coverage = service.NewCoverageSyncService(c.fs)
	c.changes = service.NewChangeService(c.fs, c.paths, c.schemas)
	c.archive = service.NewArchiveService(c.fs, c.paths, c.coverage)
	c.dashboard = service.NewDashboardService(c.changes, c.statuses, c.schemas)
	c.project = service.NewProjectService(c.fs, c.paths)
	c.validator = changevalidator.NewValidator(c.fs)
}

func (c *Container) initializeAdapters() error {
	switch c.config.OutputFormat {
	case FormatJSON:
		c.presenter = presenter.NewJSONPresenter(c.config.OutputWriter)
	case FormatCLI, "":
		c.presenter = presenter.NewCLIPresenter(c.config.OutputWriter)
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.config.OutputFormat, FormatCLI, FormatJSON)
	}

	c.reporter = telemetry.NewReporter(c.config.Telemetry, app.GetLogger())
	return nil
}

// Fs returns the filesystem every service works on
func (c *Container) Fs() afero.Fs { return c.fs }

// Paths returns the resolved project layout
func (c *Container) Paths() app.Paths { return c.paths }

// Settings returns the resolved project configuration
func (c *Container) Settings() appconfig.Config { return c.config.Settings }

// GetSchemaStore returns the schema store
func (c *Container) GetSchemaStore() *schemastore.Store { return c.schemas }

// GetArtifactStatusService returns the artifact status service
func (c *Container) GetArtifactStatusService() *service.ArtifactStatusService { return c.statuses }

// GetCoverageSyncService returns the coverage sync service
func (c *Container) GetCoverageSyncService() *service.CoverageSyncService { return c.coverage }

// GetChangeService returns the change service
func (c *Container) GetChangeService() *service.ChangeService { return c.changes }

// GetArchiveService returns the archive service
func (c *Container) GetArchiveService() *service.ArchiveService { return c.archive }

// GetDashboardService returns the dashboard service
func (c *Container) GetDashboardService() *service.DashboardService { return c.dashboard }

// GetProjectService returns the project service
func (c *Container) GetProjectService() *service.ProjectService { return c.project }

// GetChangeValidator returns the change validator
func (c *Container) GetChangeValidator() *changevalidator.Validator { return c.validator }

// GetPresenter returns the presenter
func (c *Container) GetPresenter() output.Presenter { return c.presenter }

// GetTelemetry returns the telemetry reporter
func (c *Container) GetTelemetry() *telemetry.Reporter { return c.reporter }
