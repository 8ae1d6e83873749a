package intake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func videoCfg() Config {
	return Config{CollectionType: "video", VideoDuration: 60}
}

func textCfg() Config {
	return Config{CollectionType: "text"}
}

func TestVideoFlowHappyPath(t *testing.T) {
	m := NewMachine(videoCfg())

	require.NoError(t, m.Start())
	assert.Equal(t, StateCapturing, m.State())

	require.NoError(t, m.StopCapture("https://cdn.example.com/v.webm"))
	assert.Equal(t, StateCaptured, m.State())

	require.NoError(t, m.Compose())
	require.NoError(t, m.Submit(nil))
	assert.Equal(t, StateSubmitting, m.State())

	require.NoError(t, m.MarkSubmitted())
	assert.Equal(t, StateSubmitted, m.State())
}

func TestTextFlowSkipsCapture(t *testing.T) {
	m := NewMachine(textCfg())

	require.NoError(t, m.Start())
	assert.Equal(t, StateComposing, m.State())

	require.NoError(t, m.SetText("Great product"))
	require.NoError(t, m.Submit(nil))
	require.NoError(t, m.MarkSubmitted())
	assert.Equal(t, StateSubmitted, m.State())
}

func TestTickForcesCaptureStopAtDuration(t *testing.T) {
	m := NewMachine(videoCfg())
	require.NoError(t, m.Start())

	require.NoError(t, m.Tick(30))
	assert.Equal(t, StateCapturing, m.State())

	require.NoError(t, m.Tick(30))
	assert.Equal(t, StateCaptured, m.State())
}

func TestDisabledRecordingUsesImportBranch(t *testing.T) {
	cfg := videoCfg()
	cfg.DisableVideoRecord = true
	cfg.ThirdpartyEnabled = true

	m := NewMachine(cfg)
	require.NoError(t, m.Start())
	assert.Equal(t, StateComposing, m.State())
	assert.True(t, m.Imported())

	require.NoError(t, m.SetThirdpartyLink("https://youtu.be/abc"))
	assert.Equal(t, "https://youtu.be/abc", m.Draft().ThirdpartyLink)
}

func TestDisabledRecordingWithoutThirdpartyCannotStart(t *testing.T) {
	cfg := videoCfg()
	cfg.DisableVideoRecord = true

	m := NewMachine(cfg)
	err := m.Start()

	var se *StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StateIdle, m.State())
}

func TestIllegalEventLeavesStateUntouched(t *testing.T) {
	m := NewMachine(textCfg())
	require.NoError(t, m.Start())
	require.NoError(t, m.SetText("draft"))

	var se *StateError
	require.ErrorAs(t, m.StopCapture("x"), &se)
	assert.Equal(t, StateComposing, se.From)
	assert.Equal(t, "stop_capture", se.Event)

	assert.Equal(t, StateComposing, m.State())
	assert.Equal(t, "draft", m.Draft().Text)
}

func TestValidationFailureKeepsComposingAndDraft(t *testing.T) {
	m := NewMachine(textCfg())
	require.NoError(t, m.Start())
	require.NoError(t, m.SetText("draft"))

	boom := errors.New("invalid")
	err := m.Submit(func(Draft) error { return boom })
	require.ErrorIs(t, err, boom)

	assert.Equal(t, StateComposing, m.State())
	assert.Equal(t, "draft", m.Draft().Text)
}

func TestRetryAfterFailurePreservesDraft(t *testing.T) {
	m := NewMachine(textCfg())
	require.NoError(t, m.Start())
	require.NoError(t, m.SetText("draft"))
	require.NoError(t, m.Submit(nil))
	require.NoError(t, m.MarkFailed())
	assert.Equal(t, StateFailed, m.State())

	require.NoError(t, m.Retry())
	assert.Equal(t, StateComposing, m.State())
	assert.Equal(t, "draft", m.Draft().Text)

	require.NoError(t, m.Submit(nil))
	require.NoError(t, m.MarkSubmitted())
	assert.Equal(t, StateSubmitted, m.State())
}

func TestAbandonIsTerminal(t *testing.T) {
	m := NewMachine(textCfg())
	require.NoError(t, m.Start())
	require.NoError(t, m.Abandon())
	assert.Equal(t, StateAbandoned, m.State())

	var se *StateError
	require.ErrorAs(t, m.Start(), &se)
	require.ErrorAs(t, m.Abandon(), &se)
}

func TestSubmittedIsTerminal(t *testing.T) {
	m := NewMachine(textCfg())
	require.NoError(t, m.Start())
	require.NoError(t, m.SetText("done"))
	require.NoError(t, m.Submit(nil))
	require.NoError(t, m.MarkSubmitted())

	var se *StateError
	require.ErrorAs(t, m.Abandon(), &se)
	require.ErrorAs(t, m.Submit(nil), &se)
}

func TestRunDrivesFullVideoLifecycle(t *testing.T) {
	persisted := false
	m, err := Run(videoCfg(),
		Draft{VideoURL: "https://cdn.example.com/v.webm"},
		nil,
		func(d Draft) error {
			persisted = true
			assert.Equal(t, "https://cdn.example.com/v.webm", d.VideoURL)
			return nil
		})

	require.NoError(t, err)
	assert.True(t, persisted)
	assert.Equal(t, StateSubmitted, m.State())
}

func TestRunMarksFailedWhenPersistErrors(t *testing.T) {
	boom := errors.New("db down")
	m, err := Run(textCfg(), Draft{Text: "hello"}, nil,
		func(Draft) error { return boom })

	require.ErrorIs(t, err, boom)
	assert.Equal(t, StateFailed, m.State())
	assert.Equal(t, "hello", m.Draft().Text)
}

func TestRunStopsOnValidationError(t *testing.T) {
	invalid := errors.New("text required")
	persisted := false

	m, err := Run(textCfg(), Draft{}, func(Draft) error { return invalid },
		func(Draft) error { persisted = true; return nil })

	require.ErrorIs(t, err, invalid)
	assert.False(t, persisted)
	assert.Equal(t, StateComposing, m.State())
}
