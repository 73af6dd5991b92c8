package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/shasank0001/Quantum-State-Visualizer/pkg/presets"
	"github.com/shasank0001/Quantum-State-Visualizer/qsim"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// server is the thin HTTP adapter over the simulation core. It owns no
// simulation state; every request is handed to the orchestrator and the
// result record (or error record) is written back as JSON.
type server struct {
	orch      *qsim.Orchestrator
	startTime time.Time
}

func newServer(orch *qsim.Orchestrator) *server {
	return &server{orch: orch, startTime: time.Now()}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/simulate", s.handleSimulate)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/presets", s.handlePresets)
	return mux
}

// errorRecord is the wire shape of a failed request.
type errorRecord struct {
	Kind    qsim.ErrorKind `json:"kind"`
	Message string         `json:"message"`
	Detail  string         `json:"detail,omitempty"`
	Line    int            `json:"line,omitempty"`
	Request string         `json:"request_id,omitempty"`
}

func (s *server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req qsim.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, uuid.New().String(), &qsim.Error{
			Kind:    qsim.KindParse,
			Message: "request body is not valid JSON",
			Detail:  err.Error(),
		})
		return
	}

	resp, err := s.orch.Simulate(r.Context(), &req)
	if err != nil {
		writeError(w, uuid.New().String(), err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := resp.Encode(w); err != nil {
		log.Error("response write failed", "err", err)
	}
}

// writeError maps an error kind to an HTTP status and emits the error record.
// No per-qubit fields accompany an error.
func writeError(w http.ResponseWriter, reqID string, err error) {
	rec := errorRecord{Kind: qsim.KindInternal, Message: "unexpected condition", Request: reqID}
	var qerr *qsim.Error
	if errors.As(err, &qerr) {
		rec.Kind = qerr.Kind
		rec.Message = qerr.Message
		rec.Detail = qerr.Detail
		rec.Line = qerr.Line
	}

	status := http.StatusInternalServerError
	switch rec.Kind {
	case qsim.KindParse, qsim.KindValidation, qsim.KindRouter:
		status = http.StatusBadRequest
	case qsim.KindResource:
		status = http.StatusRequestEntityTooLarge
	case qsim.KindCancelled:
		status = http.StatusRequestTimeout
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(rec); encErr != nil {
		log.Error("error record write failed", "err", encErr)
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status    string     `json:"status"`
		Uptime    string     `json:"uptime"`
		Pipelines []string   `json:"pipelines"`
		Stats     qsim.Stats `json:"stats"`
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(health{
		Status: "healthy",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
		Pipelines: []string{
			string(qsim.PipelineUnitary),
			string(qsim.PipelineExactDensity),
			string(qsim.PipelineTrajectory),
		},
		Stats: s.orch.Stats(),
	})
}

func (s *server) handlePresets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if id := r.URL.Query().Get("id"); id != "" {
		p, ok := presets.ByID(id)
		if !ok {
			http.Error(w, "unknown preset", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(p)
		return
	}
	_ = json.NewEncoder(w).Encode(presets.Library)
}

// serve runs the HTTP listener until ctx is cancelled, then shuts down
// gracefully.
func (s *server) serve(ctx context.Context, listen string, readTimeout, writeTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         listen,
		Handler:      s.routes(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("⚛️  simulation service listening", "addr", listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info("shutting down", "grace", shutdownTimeout)
	return srv.Shutdown(shutdownCtx)
}
