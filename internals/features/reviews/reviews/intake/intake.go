// Package intake models the lifecycle of a single submission from the
// moment a visitor opens the form until the review is persisted or the
// attempt ends. Every transition is explicit; an event that is not legal
// in the current state returns a StateError and leaves the machine
// untouched.
package intake

import "fmt"

type State string

const (
	StateIdle       State = "idle"
	StateCapturing  State = "capturing"
	StateCaptured   State = "captured"
	StateComposing  State = "composing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
	StateFailed     State = "failed"
	StateAbandoned  State = "abandoned"
)

// terminal states accept no further events
func (s State) Terminal() bool {
	return s == StateSubmitted || s == StateAbandoned
}

// StateError reports an event fired in a state that does not accept it.
type StateError struct {
	From  State
	Event string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("intake: event %q not allowed in state %q", e.Event, e.From)
}

// Config is the slice of the space setting that drives the flow.
type Config struct {
	CollectionType     string // "video" or "text"
	VideoDuration      int    // hard cap in seconds for a recording
	DisableVideoRecord bool
	ThirdpartyEnabled  bool
}

// Draft carries the submitter's work in progress. It survives a failed
// submission so a retry does not start from scratch.
type Draft struct {
	VideoURL       string
	Text           string
	ThirdpartyLink string
}

type Machine struct {
	cfg     Config
	state   State
	draft   Draft
	elapsed int
	// set when recording was bypassed via a third-party import
	imported bool
}

func NewMachine(cfg Config) *Machine {
	return &Machine{cfg: cfg, state: StateIdle}
}

func (m *Machine) State() State   { return m.state }
func (m *Machine) Draft() Draft   { return m.draft }
func (m *Machine) Imported() bool { return m.imported }

func (m *Machine) fail(event string) error {
	return &StateError{From: m.state, Event: event}
}

// Start leaves idle. A video space opens the recorder; when recording is
// disabled the flow only continues if a third-party import is configured,
// otherwise the submitter has no way to produce a video. A text space goes
// straight to composing.
func (m *Machine) Start() error {
	if m.state != StateIdle {
		return m.fail("start")
	}
	switch m.cfg.CollectionType {
	case "video":
		if m.cfg.DisableVideoRecord {
			if !m.cfg.ThirdpartyEnabled {
				return m.fail("start")
			}
			m.imported = true
			m.state = StateComposing
			return nil
		}
		m.state = StateCapturing
	default:
		m.state = StateComposing
	}
	return nil
}

// Tick advances the recording clock. Reaching the configured duration
// forces the capture to stop, mirroring the hard cap on the recorder.
func (m *Machine) Tick(seconds int) error {
	if m.state != StateCapturing {
		return m.fail("tick")
	}
	m.elapsed += seconds
	if m.cfg.VideoDuration > 0 && m.elapsed >= m.cfg.VideoDuration {
		m.state = StateCaptured
	}
	return nil
}

// StopCapture ends the recording early.
func (m *Machine) StopCapture(videoURL string) error {
	if m.state != StateCapturing {
		return m.fail("stop_capture")
	}
	m.draft.VideoURL = videoURL
	m.state = StateCaptured
	return nil
}

// SetVideo attaches the uploaded artifact to a finished capture.
func (m *Machine) SetVideo(videoURL string) error {
	if m.state != StateCaptured && m.state != StateComposing {
		return m.fail("set_video")
	}
	m.draft.VideoURL = videoURL
	return nil
}

// Compose moves from a finished capture into the detail form.
func (m *Machine) Compose() error {
	if m.state != StateCaptured {
		return m.fail("compose")
	}
	m.state = StateComposing
	return nil
}

func (m *Machine) SetText(text string) error {
	if m.state != StateComposing {
		return m.fail("set_text")
	}
	m.draft.Text = text
	return nil
}

func (m *Machine) SetThirdpartyLink(link string) error {
	if m.state != StateComposing || !m.imported {
		return m.fail("set_thirdparty_link")
	}
	m.draft.ThirdpartyLink = link
	return nil
}

// Submit runs validate against the draft before anything leaves the
// machine. A validation failure keeps the machine composing with the
// draft intact.
func (m *Machine) Submit(validate func(Draft) error) error {
	if m.state != StateComposing {
		return m.fail("submit")
	}
	if validate != nil {
		if err := validate(m.draft); err != nil {
			return err
		}
	}
	m.state = StateSubmitting
	return nil
}

func (m *Machine) MarkSubmitted() error {
	if m.state != StateSubmitting {
		return m.fail("mark_submitted")
	}
	m.state = StateSubmitted
	return nil
}

// MarkFailed records a failed persistence attempt. The draft is kept.
func (m *Machine) MarkFailed() error {
	if m.state != StateSubmitting {
		return m.fail("mark_failed")
	}
	m.state = StateFailed
	return nil
}

// Retry returns a failed attempt to composing with the draft preserved.
func (m *Machine) Retry() error {
	if m.state != StateFailed {
		return m.fail("retry")
	}
	m.state = StateComposing
	return nil
}

// Abandon ends the attempt from any non-terminal state.
func (m *Machine) Abandon() error {
	if m.state.Terminal() {
		return m.fail("abandon")
	}
	m.state = StateAbandoned
	return nil
}

// Run drives a complete server-side pass: start, attach the artifact for
// the active mode, then validate and persist. It returns the machine so
// callers can inspect the final state.
func Run(cfg Config, draft Draft, validate func(Draft) error, persist func(Draft) error) (*Machine, error) {
	m := NewMachine(cfg)
	if err := m.Start(); err != nil {
		return m, err
	}

	switch m.state {
	case StateCapturing:
		if err := m.StopCapture(draft.VideoURL); err != nil {
			return m, err
		}
		if err := m.Compose(); err != nil {
			return m, err
		}
	case StateComposing:
		if m.imported {
			if err := m.SetThirdpartyLink(draft.ThirdpartyLink); err != nil {
				return m, err
			}
		}
	}
	if draft.Text != "" {
		if err := m.SetText(draft.Text); err != nil {
			return m, err
		}
	}

	if err := m.Submit(validate); err != nil {
		return m, err
	}
	if err := persist(m.draft); err != nil {
		if markErr := m.MarkFailed(); markErr != nil {
			return m, markErr
		}
		return m, err
	}
	if err := m.MarkSubmitted(); err != nil {
		return m, err
	}
	return m, nil
}
