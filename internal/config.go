package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/notebookd/internal/gist"
	"github.com/starford/notebookd/internal/state"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App         ApplicationConfig `yaml:"app"`
	Workspace   WorkspaceConfig   `yaml:"workspace"`
	Journal     JournalConfig     `yaml:"journal"`
	Auth        AuthConfig        `yaml:"auth"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Host        HostConfig        `yaml:"host"`
	Kernelspecs KernelspecsConfig `yaml:"kernelspecs"`
	Export      ExportConfig      `yaml:"export"`
	Gist        GistConfig        `yaml:"gist"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	for _, v := range []validation.Validatable{
		&c.App, &c.Workspace, &c.Journal, &c.Auth, &c.Preferences,
		&c.Host, &c.Kernelspecs, &c.Export, &c.Gist,
	} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
	Version  string     `yaml:"version"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// WorkspaceConfig holds the directory documents are opened from and saved to.
type WorkspaceConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the workspace configuration.
func (c *WorkspaceConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// JournalConfig holds the SQLite command journal location.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the journal configuration.
func (c *JournalConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// PreferencesConfig holds the user preferences file location.
type PreferencesConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// Validate validates the preferences configuration.
func (c *PreferencesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// HostConfig describes the host kernels run on.
type HostConfig struct {
	Type        string `yaml:"type"`
	Origin      string `yaml:"origin"`
	BasePath    string `yaml:"base_path"`
	CrossDomain bool   `yaml:"cross_domain"`
	Token       string `yaml:"token"`
}

// Validate validates the host configuration.
func (c *HostConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Type, validation.Required, validation.In(state.HostLocal, state.HostJupyter)),
		validation.Field(&c.Origin, validation.When(c.Type == state.HostJupyter, validation.Required)),
	)
}

// Record converts the configuration into a host record without a ref.
func (c *HostConfig) Record() state.Host {
	return state.Host{
		Type:        c.Type,
		Origin:      c.Origin,
		BasePath:    c.BasePath,
		CrossDomain: c.CrossDomain,
		Token:       c.Token,
	}
}

// KernelspecsConfig is the kernel catalog offered by the host.
type KernelspecsConfig struct {
	Default string             `yaml:"default"`
	Specs   []state.KernelSpec `yaml:"specs"`
}

// Validate validates the kernel catalog.
func (c *KernelspecsConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Specs, validation.Required),
	); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Specs))
	for i, spec := range c.Specs {
		if spec.Name == "" {
			return fmt.Errorf("kernelspecs: spec %d has no name", i)
		}
		if seen[spec.Name] {
			return fmt.Errorf("kernelspecs: duplicate spec %q", spec.Name)
		}
		seen[spec.Name] = true
	}
	if c.Default == "" {
		c.Default = c.Specs[0].Name
	}
	if !seen[c.Default] {
		return fmt.Errorf("kernelspecs: default %q is not in the catalog", c.Default)
	}
	return nil
}

// ExportConfig holds the external converter used for PDF export.
type ExportConfig struct {
	Command []string      `yaml:"command"`
	Timeout time.Duration `yaml:"timeout"`
}

// Validate validates the export configuration.
func (c *ExportConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Command, validation.Required),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// GistConfig holds the gist API endpoint.
type GistConfig struct {
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Validate validates the gist configuration.
func (c *GistConfig) Validate() error {
	if c.APIURL == "" {
		return errors.New("gist: api_url is empty")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
			Version: "dev",
		},
		Workspace: WorkspaceConfig{
			Path: "./notebooks",
		},
		Journal: JournalConfig{
			Path: "./notebookd.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Preferences: PreferencesConfig{
			Path:  "./preferences.yaml",
			Watch: true,
		},
		Host: HostConfig{
			Type:     state.HostLocal,
			BasePath: "/",
		},
		Kernelspecs: KernelspecsConfig{
			Default: "python3",
			Specs: []state.KernelSpec{
				{
					Name:        "python3",
					DisplayName: "Python 3",
					Language:    "python",
					Argv:        []string{"python3", "-m", "ipykernel_launcher", "-f", "{connection_file}"},
				},
			},
		},
		Export: ExportConfig{
			Command: []string{"jupyter", "nbconvert", "--to", "pdf", "{input}"},
			Timeout: 2 * time.Minute,
		},
		Gist: GistConfig{
			APIURL:  gist.DefaultAPIURL,
			Timeout: 30 * time.Second,
		},
	}
}
