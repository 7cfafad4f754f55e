package supervise

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"signaler-launcher/internal/history"
)

type fixedResolver struct {
	entry string
	err   error
}

func (f fixedResolver) ResolveEntry() (string, error) { return f.entry, f.err }

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func newTestSupervisor(t *testing.T, scriptBody string) (*Supervisor, string) {
	t.Helper()
	dataDir := t.TempDir()
	entry := writeScript(t, scriptBody)
	s := New("sh", dataDir, fixedResolver{entry: entry}, history.NewStore(dataDir), zap.NewNop().Sugar())
	return s, dataDir
}

func collectUntilTerminated(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var events []Event
	deadline := time.After(10 * time.Second)
	for {
		select {
		case e := <-ch:
			events = append(events, e)
			if e.Kind == EventTerminated {
				return events
			}
		case <-deadline:
			t.Fatalf("timed out waiting for terminal event; got %d events", len(events))
		}
	}
}

func TestStartRun_URLModeStreamsTaggedEvents(t *testing.T) {
	s, dataDir := newTestSupervisor(t,
		`echo '{"type":"progress","pct":50}'
echo 'not json'
echo 'boom' >&2`)

	id, ch := s.Subscribe()
	defer s.Unsubscribe(id)

	result, err := s.StartRun(RunRequest{Mode: ModeURL, Target: "https://example.com"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dataDir, "runs"), filepath.Dir(result.OutputDir))

	events := collectUntilTerminated(t, ch)
	require.Equal(t, EventTerminated, events[len(events)-1].Kind)

	var structured []string
	var raw []string
	for _, e := range events[:len(events)-1] {
		switch e.Kind {
		case EventStructured:
			structured = append(structured, string(e.Structured))
		case EventRaw:
			raw = append(raw, e.Raw)
		}
	}
	require.Equal(t, []string{`{"type":"progress","pct":50}`}, structured)
	// stderr interleaving with stdout is OS-determined; membership only.
	require.ElementsMatch(t, []string{"not json", "boom"}, raw)

	// Workspace contains the synthesized engine config.
	raw2, err := os.ReadFile(filepath.Join(result.OutputDir, "apex.config.json"))
	require.NoError(t, err)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal(raw2, &cfg))
	require.Equal(t, "https://example.com", cfg["baseUrl"])

	// The attempt is in history, newest first.
	entries := history.NewStore(dataDir).List()
	require.NotEmpty(t, entries)
	require.Equal(t, result.OutputDir, entries[0].OutputDir)
	require.Equal(t, ModeURL, entries[0].Mode)
	require.Equal(t, "https://example.com", entries[0].Target)
	require.Equal(t, filepath.Base(result.OutputDir), entries[0].ID)

	require.Equal(t, result.OutputDir, s.LastOutputDir())
}

func TestStartRun_FolderModeForwardsArgs(t *testing.T) {
	// The fake engine echoes its argument vector back as one raw line.
	s, _ := newTestSupervisor(t, `echo "$@"`)

	id, ch := s.Subscribe()
	defer s.Unsubscribe(id)

	result, err := s.StartRun(RunRequest{Mode: ModeFolder, Target: "/srv/site"})
	require.NoError(t, err)

	events := collectUntilTerminated(t, ch)
	require.GreaterOrEqual(t, len(events), 2)
	require.Equal(t, EventRaw, events[0].Kind)
	require.Equal(t,
		"folder --engine-json --output-dir "+result.OutputDir+" -- --root /srv/site",
		events[0].Raw)

	// Folder mode synthesizes no config file.
	_, statErr := os.Stat(filepath.Join(result.OutputDir, "apex.config.json"))
	require.True(t, os.IsNotExist(statErr))
}

func TestStartRun_ConflictFailsFast(t *testing.T) {
	s, _ := newTestSupervisor(t, `sleep 5`)

	id, ch := s.Subscribe()
	defer s.Unsubscribe(id)

	_, err := s.StartRun(RunRequest{Mode: ModeFolder, Target: "/srv/site"})
	require.NoError(t, err)

	_, err = s.StartRun(RunRequest{Mode: ModeURL, Target: "https://example.com"})
	require.ErrorIs(t, err, ErrRunActive)

	require.NoError(t, s.Cancel())
	require.False(t, s.Active())

	// The killed run still produces its single terminal event.
	events := collectUntilTerminated(t, ch)
	require.Equal(t, EventTerminated, events[len(events)-1].Kind)

	// And the slot is reusable.
	_, err = s.StartRun(RunRequest{Mode: ModeFolder, Target: "/srv/site"})
	require.NoError(t, err)
	require.NoError(t, s.Cancel())
}

func TestCancel_NoActiveRunIsNoop(t *testing.T) {
	s, _ := newTestSupervisor(t, `true`)
	require.NoError(t, s.Cancel())
	require.NoError(t, s.Cancel())
}

func TestStartRun_InvalidRequestLeavesSlotFree(t *testing.T) {
	s, _ := newTestSupervisor(t, `true`)

	_, err := s.StartRun(RunRequest{Mode: "watch", Target: "x"})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrRunActive)

	_, err = s.StartRun(RunRequest{Mode: ModeURL, Target: ""})
	require.Error(t, err)

	id, ch := s.Subscribe()
	defer s.Unsubscribe(id)
	_, err = s.StartRun(RunRequest{Mode: ModeFolder, Target: "/srv/site"})
	require.NoError(t, err)
	collectUntilTerminated(t, ch)
}

func TestStartRun_ResolutionFailureFreesSlot(t *testing.T) {
	dataDir := t.TempDir()
	s := New("sh", dataDir, fixedResolver{err: errors.New("engine entry not found")}, history.NewStore(dataDir), zap.NewNop().Sugar())

	_, err := s.StartRun(RunRequest{Mode: ModeURL, Target: "https://example.com"})
	require.Error(t, err)
	require.False(t, s.Active())

	// Optimistic logging: the failed attempt was still recorded.
	entries := history.NewStore(dataDir).List()
	require.Len(t, entries, 1)
}

func TestEventWireJSON(t *testing.T) {
	require.Equal(t, `{"type":"progress","pct":50}`, string(StructuredEvent(json.RawMessage(`{"type":"progress","pct":50}`)).WireJSON()))
	require.Equal(t, `"not json"`, string(RawEvent("not json").WireJSON()))
	require.Equal(t, `{"type":"launcher_terminated"}`, string(TerminatedEvent().WireJSON()))
}
