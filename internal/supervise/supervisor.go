package supervise

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"signaler-launcher/internal/history"
	"signaler-launcher/internal/workspace"
)

const (
	ModeURL    = "url"
	ModeFolder = "folder"
)

// ErrRunActive is returned when a run is requested while one is in flight.
// There is no queue: the caller retries manually.
var ErrRunActive = errors.New("run already in progress")

// RunRequest is the caller-supplied run description.
type RunRequest struct {
	Mode   string `json:"mode" validate:"required,oneof=url folder"`
	Target string `json:"target" validate:"required"`
}

type StartResult struct {
	OutputDir string `json:"outputDir"`
}

// EntryResolver yields the engine entry path for the next run. Resolution
// happens per run so freshly installed engines are picked up.
type EntryResolver interface {
	ResolveEntry() (string, error)
}

const subscriberBuffer = 64

// Supervisor owns the single engine run slot: it starts runs, streams their
// line-delimited output to subscribers as tagged events, and guarantees the
// slot is cleared exactly once however a run ends.
type Supervisor struct {
	runtime  string
	dataDir  string
	resolver EntryResolver
	store    *history.Store
	validate *validator.Validate
	log      *zap.SugaredLogger

	mu    sync.Mutex
	busy  bool
	child *exec.Cmd

	lastMu        sync.Mutex
	lastOutputDir string

	subsMu sync.Mutex
	subs   map[string]chan Event
}

func New(runtime string, dataDir string, resolver EntryResolver, store *history.Store, log *zap.SugaredLogger) *Supervisor {
	return &Supervisor{
		runtime:  runtime,
		dataDir:  dataDir,
		resolver: resolver,
		store:    store,
		validate: validator.New(),
		log:      log,
		subs:     make(map[string]chan Event),
	}
}

// StartRun validates the request, claims the run slot, prepares the
// workspace, records history, and spawns the engine. The caller gets the
// resolved output directory immediately; events stream to subscribers.
func (s *Supervisor) StartRun(req RunRequest) (StartResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return StartResult{}, fmt.Errorf("invalid run request: %w", err)
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return StartResult{}, ErrRunActive
	}
	s.busy = true
	s.mu.Unlock()

	result, err := s.launch(req)
	if err != nil {
		s.mu.Lock()
		s.busy = false
		s.child = nil
		s.mu.Unlock()
		return StartResult{}, err
	}
	return result, nil
}

func (s *Supervisor) launch(req RunRequest) (StartResult, error) {
	outputDir := workspace.NewOutputDir(s.dataDir)
	s.setLastOutputDir(outputDir)

	// Optimistic logging: the attempt is recorded before the engine is known
	// to have started. A history write failure aborts the spawn.
	entry := history.Entry{
		ID:        filepath.Base(outputDir),
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Mode:      req.Mode,
		Target:    req.Target,
		OutputDir: outputDir,
	}
	if err := s.store.Record(entry); err != nil {
		return StartResult{}, fmt.Errorf("record history: %w", err)
	}

	var forwarded []string
	if req.Mode == ModeFolder {
		forwarded = []string{"folder", "--engine-json", "--output-dir", outputDir, "--", "--root", req.Target}
	} else {
		configPath, err := workspace.WriteURLModeConfig(outputDir, req.Target)
		if err != nil {
			return StartResult{}, fmt.Errorf("write url-mode config: %w", err)
		}
		forwarded = []string{"audit", "--engine-json", "--output-dir", outputDir, "--", "--config", configPath}
	}

	entryPath, err := s.resolver.ResolveEntry()
	if err != nil {
		return StartResult{}, err
	}

	cmd := exec.Command(s.runtime, append([]string{entryPath}, forwarded...)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return StartResult{}, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return StartResult{}, err
	}
	if err := cmd.Start(); err != nil {
		return StartResult{}, fmt.Errorf("spawn engine: %w", err)
	}

	s.mu.Lock()
	s.child = cmd
	s.mu.Unlock()

	go s.superviseRun(cmd, stdout, stderr)

	s.log.Infow("run_started", "mode", req.Mode, "target", req.Target, "output_dir", outputDir)
	return StartResult{OutputDir: outputDir}, nil
}

func (s *Supervisor) superviseRun(cmd *exec.Cmd, stdout, stderr io.Reader) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.readLines(stdout, true)
	}()
	go func() {
		defer wg.Done()
		s.readLines(stderr, false)
	}()
	wg.Wait()

	err := cmd.Wait()

	// Exactly one terminal event and one slot clear per run, whether the
	// engine exited, failed, or was killed.
	s.publish(TerminatedEvent())
	s.clearSlot(cmd)

	if err != nil {
		s.log.Infow("run_exited", "err", err)
	} else {
		s.log.Infow("run_exited")
	}
}

func (s *Supervisor) readLines(r io.Reader, isStdout bool) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if isStdout && json.Valid([]byte(line)) {
			s.publish(StructuredEvent(json.RawMessage(line)))
		} else {
			s.publish(RawEvent(line))
		}
	}
}

// Cancel forcibly terminates the active run and frees the slot. Canceling
// with no active run is a no-op success.
func (s *Supervisor) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.child == nil {
		return nil
	}
	cmd := s.child
	s.child = nil
	s.busy = false
	if cmd.Process != nil {
		if err := cmd.Process.Kill(); err != nil {
			return fmt.Errorf("kill engine: %w", err)
		}
	}
	return nil
}

// clearSlot frees the run slot held by cmd. A newer run that reclaimed the
// slot after a cancel is left alone.
func (s *Supervisor) clearSlot(cmd *exec.Cmd) {
	s.mu.Lock()
	if s.child == cmd {
		s.child = nil
		s.busy = false
	}
	s.mu.Unlock()
}

// Active reports whether a run currently occupies the slot.
func (s *Supervisor) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Supervisor) setLastOutputDir(dir string) {
	s.lastMu.Lock()
	s.lastOutputDir = dir
	s.lastMu.Unlock()
}

// LastOutputDir returns the output directory of the most recently started
// run, empty when none has started this process.
func (s *Supervisor) LastOutputDir() string {
	s.lastMu.Lock()
	defer s.lastMu.Unlock()
	return s.lastOutputDir
}

// Subscribe registers an event consumer. Delivery is best-effort: a full or
// abandoned subscriber drops events rather than stalling the read loop.
func (s *Supervisor) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, subscriberBuffer)
	s.subsMu.Lock()
	s.subs[id] = ch
	s.subsMu.Unlock()
	return id, ch
}

func (s *Supervisor) Unsubscribe(id string) {
	s.subsMu.Lock()
	ch, ok := s.subs[id]
	if ok {
		delete(s.subs, id)
	}
	s.subsMu.Unlock()
	if ok {
		close(ch)
	}
}

func (s *Supervisor) publish(e Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
