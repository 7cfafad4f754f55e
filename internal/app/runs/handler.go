package runs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"signaler-launcher/internal/pkg/render"
	"signaler-launcher/internal/supervise"
	"signaler-launcher/internal/workspace"
)

// Handler is the desktop shell's run surface: start, cancel, event stream,
// report lookup.
type Handler struct {
	supervisor *supervise.Supervisor
	logger     *zap.SugaredLogger
}

func NewHandler(supervisor *supervise.Supervisor, logger *zap.SugaredLogger) *Handler {
	return &Handler{supervisor: supervisor, logger: logger}
}

func (h *Handler) RegisterRoute(r *chi.Mux) {
	r.Post("/api/runs", h.Handle)
	r.Post("/api/runs/cancel", h.handleCancel)
	r.Get("/api/runs/events", h.handleEvents)
	r.Get("/api/runs/last", h.handleLast)
	r.Get("/api/runs/report", h.handleReport)
}

// Handle starts a run. The response carries the resolved output directory;
// progress flows over /api/runs/events.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req supervise.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.ChiErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.supervisor.StartRun(req)
	if err != nil {
		var verrs validator.ValidationErrors
		switch {
		case errors.Is(err, supervise.ErrRunActive):
			render.ChiErr(w, http.StatusConflict, err.Error())
		case errors.As(err, &verrs):
			render.ChiErr(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Errorw("run_start_failed", "mode", req.Mode, "err", err)
			render.ChiErr(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	render.ChiJSON(w, http.StatusAccepted, result)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	if err := h.supervisor.Cancel(); err != nil {
		h.logger.Errorw("run_cancel_failed", "err", err)
		render.ChiErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleEvents streams engine events as JSON lines until the run terminates
// or the client goes away.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		render.ChiErr(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	id, events := h.supervisor.Subscribe()
	defer h.supervisor.Unsubscribe(id)

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, open := <-events:
			if !open {
				return
			}
			if _, err := w.Write(append(e.WireJSON(), '\n')); err != nil {
				return
			}
			flusher.Flush()
			if e.Kind == supervise.EventTerminated {
				return
			}
		}
	}
}

// handleLast reports the output directory of the most recently started run
// in this process, so the UI can re-open a report after a reload.
func (h *Handler) handleLast(w http.ResponseWriter, r *http.Request) {
	render.ChiJSON(w, http.StatusOK, map[string]string{"outputDir": h.supervisor.LastOutputDir()})
}

// handleReport resolves the HTML report inside a finished run's output
// directory via the engine-written run index.
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	outputDir := strings.TrimSpace(r.URL.Query().Get("outputDir"))
	if outputDir == "" {
		render.ChiErr(w, http.StatusBadRequest, "missing outputDir")
		return
	}
	reportPath, err := workspace.ResolveReportPath(outputDir)
	if err != nil {
		render.ChiErr(w, http.StatusNotFound, err.Error())
		return
	}
	render.ChiJSON(w, http.StatusOK, map[string]string{"reportPath": reportPath})
}
