package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	InvalidConfig    Kind = "invalid_config"
	DetectionTimeout Kind = "detection_timeout"
	NoFilesFound     Kind = "no_files_found"
	NoTodayFiles     Kind = "no_today_files"
	NoSelection      Kind = "no_selection"
	CopyPermission   Kind = "copy_permission"
	CopyFailure      Kind = "copy_failure"
	MailAuth         Kind = "mail_auth"
	MailTransport    Kind = "mail_transport"
	MailFailure      Kind = "mail_failure"
	Cancelled        Kind = "cancelled"
	Internal         Kind = "internal"
)

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// New builds an AppError without an underlying cause, for conditions the
// pipeline raises itself (timeouts, empty selections).
func New(kind Kind, op string) error {
	return &AppError{Kind: kind, Op: op}
}

// KindOf extracts the failure category, defaulting to Internal for errors
// that did not originate in this module.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// UserMessage maps an error to the operator-facing text shown in the status
// line. Messages carry enough context to act on; they are not structured
// codes.
func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("Config: %v", appErr.Err)
	case DetectionTimeout:
		return "No Garmin watch detected. Connect the watch and press Retry."
	case NoFilesFound:
		return "No .fit files found on the watch."
	case NoTodayFiles:
		return "No activity from today on the watch. Record an activity or use copy-only mode."
	case NoSelection:
		return "No file selected."
	case CopyPermission:
		return "Permission denied reading FIT. Grant Full Disk Access to the terminal in System Settings."
	case CopyFailure:
		return fmt.Sprintf("Copy failed: %v", appErr.Err)
	case MailAuth:
		return "AUTH: the mail server rejected the login. Use an App Password in mailer.conf.json."
	case MailTransport:
		return fmt.Sprintf("TLS: %v. Check the server certificate and port.", appErr.Err)
	case MailFailure:
		return fmt.Sprintf("Send failed: %v", appErr.Err)
	case Cancelled:
		return "Cancelled by user."
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
