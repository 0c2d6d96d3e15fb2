package pipeline

// State is the externally visible position of the acquisition state machine.
// Done, Errored and Cancelled are terminal; a new run starts a fresh machine.
type State int32

const (
	StateIdle State = iota
	StateDetecting
	StateIdentifying
	StateLocating
	StateSelecting
	StateCopying
	StateEjecting
	StateFinalizing
	StateDone
	StateErrored
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDetecting:
		return "detecting"
	case StateIdentifying:
		return "identifying"
	case StateLocating:
		return "locating"
	case StateSelecting:
		return "selecting"
	case StateCopying:
		return "copying"
	case StateEjecting:
		return "ejecting"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	case StateErrored:
		return "error"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
