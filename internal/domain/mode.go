package domain

// Mode selects the terminal action of a run.
type Mode int

const (
	// ModeSend copies, renames and emails the selected activities.
	ModeSend Mode = iota
	// ModeArchive copies and renames without sending mail.
	ModeArchive
)

// Tag returns the mode marker written to run log lines and done events.
func (m Mode) Tag() string {
	if m == ModeArchive {
		return "ARCHIVE_ONLY"
	}
	return "EMAIL"
}

func (m Mode) String() string {
	if m == ModeArchive {
		return "archive"
	}
	return "send"
}
