// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/google/uuid"
)

// Request is the single inbound operation of the simulation core.
type Request struct {
	QASMCode         string  `json:"qasm_code"`
	Shots            int     `json:"shots,omitempty"`
	PipelineOverride string  `json:"pipeline_override,omitempty"`
	Seed             *uint64 `json:"seed,omitempty"`
}

// DefaultTimeout is the wall-clock budget for one simulation.
const DefaultTimeout = 300 * time.Second

// DefaultShots is used when a request leaves the shot count unset.
const DefaultShots = 1024

var (
	simulateTimer    = metrics.NewRegisteredTimer("qsim/simulate", nil)
	simulateFailures = metrics.NewRegisteredCounter("qsim/simulate/failures", nil)
	unitaryRuns      = metrics.NewRegisteredCounter("qsim/pipeline/unitary", nil)
	densityRuns      = metrics.NewRegisteredCounter("qsim/pipeline/exact_density", nil)
	trajectoryRuns   = metrics.NewRegisteredCounter("qsim/pipeline/trajectory", nil)
)

// Options tunes an Orchestrator. Zero values select the defaults.
type Options struct {
	Timeout      time.Duration // wall-clock cap per simulation
	Workers      int           // trajectory worker cap
	DefaultShots int           // shot count when the request leaves it unset
}

// Stats tracks orchestrator counters for the health endpoint.
type Stats struct {
	TotalRequests      uint64               `json:"total_requests"`
	SuccessfulRequests uint64               `json:"successful_requests"`
	FailedRequests     uint64               `json:"failed_requests"`
	FailuresByKind     map[ErrorKind]uint64 `json:"failures_by_kind"`
	LastRequestTime    time.Time            `json:"last_request_time"`
}

// Orchestrator drives the parse -> validate -> route -> simulate ->
// postprocess -> report pipeline for one request at a time. It holds no state
// across simulations beyond counters.
type Orchestrator struct {
	timeout      time.Duration
	workers      int
	defaultShots int

	mu    sync.RWMutex
	stats Stats
}

// NewOrchestrator builds an orchestrator with the given options.
func NewOrchestrator(opts Options) *Orchestrator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.DefaultShots <= 0 {
		opts.DefaultShots = DefaultShots
	}
	return &Orchestrator{
		timeout:      opts.Timeout,
		workers:      opts.Workers,
		defaultShots: opts.DefaultShots,
		stats:        Stats{FailuresByKind: make(map[ErrorKind]uint64)},
	}
}

// Stats returns a snapshot of the orchestrator counters.
func (o *Orchestrator) Stats() Stats {
	o.mu.RLock()
	defer o.mu.RUnlock()
	snap := o.stats
	snap.FailuresByKind = make(map[ErrorKind]uint64, len(o.stats.FailuresByKind))
	for k, v := range o.stats.FailuresByKind {
		snap.FailuresByKind[k] = v
	}
	return snap
}

// Simulate runs one request to completion and returns either a full response
// or an error from the closed taxonomy. No partial result is ever returned;
// panics do not cross this boundary.
func (o *Orchestrator) Simulate(ctx context.Context, req *Request) (resp *Response, err error) {
	start := time.Now()
	reqID := uuid.New().String()
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, internalErrorf("simulation panicked: %v", r)
		}
		simulateTimer.UpdateSince(start)
		o.record(err)
		if err != nil {
			simulateFailures.Inc(1)
			log.Error("simulation failed", "request", reqID, "elapsed", time.Since(start), "err", err)
		}
	}()

	log.Info("simulation request received", "request", reqID, "qasm_bytes", len(req.QASMCode), "shots", req.Shots, "override", req.PipelineOverride)

	shots := req.Shots
	if shots == 0 {
		shots = o.defaultShots
	}

	circ, err := ParseQASM(req.QASMCode)
	if err != nil {
		return nil, err
	}
	info, err := Validate(circ, shots)
	if err != nil {
		return nil, err
	}
	kind, warnings, err := Route(info, shots, PipelineKind(req.PipelineOverride))
	if err != nil {
		return nil, err
	}
	info.Warnings = append(info.Warnings, warnings...)

	runCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	pipe := pipelineFor(kind)
	res, err := pipe.Run(runCtx, circ, RunOptions{Shots: shots, Seed: req.Seed, Workers: o.workers})
	if err != nil {
		return nil, err
	}

	resp, err = assembleResponse(kind, res, info, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	countPipelineRun(kind)

	log.Info("✅ simulation complete", "request", reqID, "pipeline", kind,
		"qubits", info.NumQubits, "ops", info.NumOperations, "shots_used", resp.ShotsUsed,
		"elapsed", time.Since(start))
	return resp, nil
}

func countPipelineRun(kind PipelineKind) {
	switch kind {
	case PipelineUnitary:
		unitaryRuns.Inc(1)
	case PipelineExactDensity:
		densityRuns.Inc(1)
	case PipelineTrajectory:
		trajectoryRuns.Inc(1)
	}
}

func (o *Orchestrator) record(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stats.TotalRequests++
	o.stats.LastRequestTime = time.Now()
	if err == nil {
		o.stats.SuccessfulRequests++
		return
	}
	o.stats.FailedRequests++
	if qerr, ok := err.(*Error); ok {
		o.stats.FailuresByKind[qerr.Kind]++
	} else {
		o.stats.FailuresByKind[KindInternal]++
	}
}
