package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"garmail/internal/config"
	"garmail/internal/device"
	"garmail/internal/domain"
	"garmail/internal/eject"
	apperr "garmail/internal/errors"
	"garmail/internal/infra/fit"
	"garmail/internal/locate"
	"garmail/internal/logging"
	"garmail/internal/mail"
	"garmail/internal/pipeline"
	"garmail/internal/presentation"
	"garmail/internal/scanner"
	"garmail/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config
	var name, email string

	cmd := &cobra.Command{
		Use:          "garmail",
		Short:        "Copy activity files off a Garmin watch and mail or archive them",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ApplyDefaults()
			return run(cfg, name, email)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseDir, "base-dir", "", "Base directory for config, logs and copies")
	f.BoolVar(&cfg.Archive, "archive", false, "Start in archive mode (copy only, no mail)")
	f.BoolVar(&cfg.Unmount, "unmount", true, "Eject the watch after copying")
	f.BoolVar(&cfg.FallbackLatest, "fallback-latest", false, "In send mode, fall back to the most recent file when none match today")
	f.BoolVar(&cfg.NoTUI, "no-tui", false, "Plain line output instead of the interactive UI")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose diagnostic logging")
	f.StringVar(&name, "name", "", "Recipient name (plain output send mode)")
	f.StringVar(&email, "email", "", "Recipient address (plain output send mode)")
	return cmd
}

func run(cfg config.Config, name, email string) error {
	fsys := afero.NewOsFs()
	clock := clockwork.NewRealClock()

	if err := config.EnsureFirstRun(fsys, cfg); err != nil {
		return apperr.Wrap(apperr.InvalidConfig, "setup", cfg.BaseDir, err)
	}
	log := logging.New(cfg.DebugLogPath(), cfg.Verbose)

	p := &pipeline.Pipeline{
		FS:       fsys,
		Clock:    clock,
		Log:      log,
		Cfg:      cfg,
		Detector: scanner.New(fsys, clock),
		Identify: func(vol domain.Volume) domain.Identity {
			return device.Identify(fsys, vol)
		},
		Locator: locate.New(fsys),
		Ejector: eject.New(),
		FitTime: fit.Reader{FS: fsys},
		MailFactory: func() (pipeline.MailSender, error) {
			m, err := config.ReadMailer(fsys, cfg.MailerConfPath())
			if err != nil {
				return nil, err
			}
			return mail.Sender{Conf: m}, nil
		},
	}
	sup := pipeline.NewSupervisor(p)

	if cfg.NoTUI {
		return runPlain(sup, cfg, name, email)
	}

	model := tui.NewModel(tui.Config{
		Supervisor: sup,
		Archive:    cfg.Archive,
		Unmount:    cfg.Unmount,
	})
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// runPlain drives a single non-interactive run and exits non-zero when it
// fails. Send mode needs the recipient on the command line here.
func runPlain(sup *pipeline.Supervisor, cfg config.Config, name, email string) error {
	mode := domain.ModeSend
	if cfg.Archive {
		mode = domain.ModeArchive
	}
	if mode == domain.ModeSend {
		if name == "" || email == "" || !strings.Contains(email, "@") {
			return fmt.Errorf("send mode needs --name and a valid --email")
		}
	}

	printer := presentation.Printer{Writer: os.Stdout, Reader: os.Stdin, Verbose: cfg.Verbose}
	failure, err := printer.Run(sup, pipeline.Params{
		Mode:    mode,
		Name:    name,
		Email:   email,
		Unmount: cfg.Unmount,
	})
	if err != nil {
		return err
	}
	if failure != "" {
		os.Exit(1)
	}
	return nil
}
