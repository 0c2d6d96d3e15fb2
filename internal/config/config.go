package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

// DetectTimeout is how long a run waits for a single qualifying volume.
const DetectTimeout = 30 * time.Second

// SelectionTimeout bounds the wait for the operator's file choice.
const SelectionTimeout = 180 * time.Second

type Config struct {
	BaseDir        string
	Archive        bool
	Unmount        bool
	FallbackLatest bool
	NoTUI          bool
	Verbose        bool
}

// ApplyDefaults fills unset fields from the GARMAIL_* environment and the
// built-in defaults. Flag values set by the caller win.
func (c *Config) ApplyDefaults() {
	if c.BaseDir == "" {
		c.BaseDir = envOrEmpty("GARMAIL_BASE_DIR")
	}
	if c.BaseDir == "" {
		c.BaseDir = defaultBaseDir()
	}
	if !c.Verbose {
		c.Verbose = envTruthy("GARMAIL_VERBOSE")
	}
}

// defaultBaseDir resolves <Documents>/GarminMailer, falling back to the home
// directory when no Documents folder is known.
func defaultBaseDir() string {
	docs := xdg.UserDirs.Documents
	if docs == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		docs = filepath.Join(home, "Documents")
	}
	return filepath.Join(docs, "GarminMailer")
}

func (c Config) SentRoot() string    { return filepath.Join(c.BaseDir, "sent") }
func (c Config) ArchiveRoot() string { return filepath.Join(c.BaseDir, "archive") }
func (c Config) DevicesDir() string  { return filepath.Join(c.BaseDir, "Devices") }
func (c Config) LabelsPath() string  { return filepath.Join(c.BaseDir, "watch-labels.csv") }
func (c Config) TemplatePath() string {
	return filepath.Join(c.BaseDir, "mail-template.txt")
}
func (c Config) MailerConfPath() string {
	return filepath.Join(c.BaseDir, "mailer.conf.json")
}
func (c Config) RunLogPath() string {
	return filepath.Join(c.BaseDir, "GarminMailSend.log")
}
func (c Config) DebugLogPath() string {
	return filepath.Join(c.BaseDir, "garmail-debug.log")
}

// Mailer holds the SMTP submission settings read from mailer.conf.json.
// It is required only when a run actually sends mail.
type Mailer struct {
	SMTPServer  string `json:"smtp_server"`
	SMTPPort    int    `json:"smtp_port"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	FromAddress string `json:"from_address"`
}

func (m Mailer) From() string {
	if m.FromAddress != "" {
		return m.FromAddress
	}
	return m.Username
}

func ReadMailer(fsys afero.Fs, path string) (Mailer, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Mailer{}, fmt.Errorf(
			"config not found: %s (create JSON with the SMTP server, port 465, your username and App Password)", path)
	}
	var m Mailer
	if err := json.Unmarshal(data, &m); err != nil {
		return Mailer{}, fmt.Errorf("config not valid JSON: %w", err)
	}
	switch {
	case m.SMTPServer == "":
		return Mailer{}, errors.New("config missing key: smtp_server")
	case m.SMTPPort == 0:
		return Mailer{}, errors.New("config missing key: smtp_port")
	case m.Username == "":
		return Mailer{}, errors.New("config missing key: username")
	case m.Password == "":
		return Mailer{}, errors.New("config missing key: password")
	}
	if m.SMTPPort != 465 && m.SMTPPort != 587 {
		return Mailer{}, fmt.Errorf("config smtp_port must be 465 or 587, got %d", m.SMTPPort)
	}
	return m, nil
}

// DefaultTemplate is written on first run when no mail template exists. The
// {name} placeholder is substituted when present and otherwise the body is
// used verbatim.
const DefaultTemplate = "Hi {name},\n\nAttached is the latest Garmin FIT file.\n\n- Garmin Mailer\n"

const defaultLabelsCSV = "# watch-labels.csv\n" +
	"# Format: device_id,label\n" +
	"# Add one line per watch to map Garmin device IDs to your workshop label numbers.\n" +
	"# Example:\n" +
	"# A1B2C3D4,21\n" +
	"# E7F8G9H0,7\n"

// EnsureFirstRun creates the base folder layout and the editable seed files.
// Seeding failures are swallowed; the loaders fall back to built-in defaults.
func EnsureFirstRun(fsys afero.Fs, cfg Config) error {
	for _, dir := range []string{cfg.BaseDir, cfg.SentRoot(), cfg.ArchiveRoot(), cfg.DevicesDir()} {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	ensureFile(fsys, cfg.TemplatePath(), DefaultTemplate)
	ensureFile(fsys, cfg.LabelsPath(), defaultLabelsCSV)
	return nil
}

func ensureFile(fsys afero.Fs, path, content string) {
	if ok, _ := afero.Exists(fsys, path); ok {
		return
	}
	_ = afero.WriteFile(fsys, path, []byte(content), 0o644)
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
