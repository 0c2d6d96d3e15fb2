package pipeline

import (
	"garmail/internal/domain"
	apperr "garmail/internal/errors"
)

// Events flow one way, worker to presentation layer, over the supervisor's
// outbound channel. AskSelection is the single bidirectional exchange: the
// presentation layer answers on the per-request Reply channel.
type Event interface{ isEvent() }

// Countdown reports the seconds remaining in the detection window, or hides
// the counter when detection ends.
type Countdown struct {
	SecondsLeft int
	Hidden      bool
}

// Step labels the current stage. Percent is meaningful only when the
// progress indicator is not indeterminate.
type Step struct {
	Text          string
	Indeterminate bool
	Percent       int
}

// AskSelection asks the operator to choose one or more candidates. The
// worker blocks on Reply with a bounded wait; an empty reply means nothing
// was chosen.
type AskSelection struct {
	Candidates []domain.ActivityFile
	Preselect  bool
	Reply      chan<- []domain.ActivityFile
}

// Done is the terminal success event.
type Done struct {
	Message string
	Percent int
	DestDir string
	Mode    domain.Mode
}

// Error is the terminal failure event. Message is operator-facing text.
type Error struct {
	Message string
	Kind    apperr.Kind
}

func (Countdown) isEvent()    {}
func (Step) isEvent()         {}
func (AskSelection) isEvent() {}
func (Done) isEvent()         {}
func (Error) isEvent()        {}
