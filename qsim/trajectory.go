// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"context"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"runtime"
	"sync"

	"github.com/ethereum/go-ethereum/log"
)

const (
	// maxTrajectoryWorkers caps the worker pool; larger pools gain little.
	maxTrajectoryWorkers = 16
	// trajectoryChunk is the fixed batch a worker accumulates before handing
	// its partial sums back. Fixed-size chunks reduced in index order keep
	// the final average bitwise stable across worker counts and scheduling.
	trajectoryChunk = 256
)

// trajectoryPipeline samples stochastic pure-state trajectories with
// projective collapse at every measure and reset, then averages the
// per-qubit marginals over all shots. Trajectories run on a bounded worker
// pool; each trajectory draws from its own deterministic substream of the
// master seed, so a seeded request reproduces exactly at any parallelism.
type trajectoryPipeline struct{}

func (trajectoryPipeline) Kind() PipelineKind { return PipelineTrajectory }

func (trajectoryPipeline) Run(ctx context.Context, circ *Circuit, opts RunOptions) (*PipelineResult, error) {
	shots := opts.Shots
	if shots < MinShots {
		log.Warn("shot count clamped up for trajectory statistics", "requested", opts.Shots, "using", MinShots)
		shots = MinShots
	}
	if shots > MaxShots {
		log.Warn("shot count clamped down", "requested", opts.Shots, "using", MaxShots)
		shots = MaxShots
	}

	master, err := masterSeed(opts.Seed)
	if err != nil {
		return nil, err
	}

	n := circ.NumQubits
	numChunks := (shots + trajectoryChunk - 1) / trajectoryChunk
	chunkSums := make([][]Mat2, numChunks)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > maxTrajectoryWorkers {
		workers = maxTrajectoryWorkers
	}
	if workers > numChunks {
		workers = numChunks
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		workErr  error
		chunkIdx = make(chan int, numChunks)
	)
	for i := 0; i < numChunks; i++ {
		chunkIdx <- i
	}
	close(chunkIdx)

	fail := func(e error) {
		errOnce.Do(func() {
			workErr = e
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state, aerr := newStatevector(n)
			if aerr != nil {
				fail(aerr)
				return
			}
			for idx := range chunkIdx {
				sums, terr := runChunk(runCtx, circ, state, master, idx, shots)
				if terr != nil {
					fail(terr)
					return
				}
				chunkSums[idx] = sums
			}
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, cancelErr(ctx)
	}
	if workErr != nil {
		return nil, workErr
	}

	// Reduce chunk partials in index order, then average and clean up.
	rdms := make([]Mat2, n)
	for _, sums := range chunkSums {
		for q := 0; q < n; q++ {
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					rdms[q][i][j] += sums[q][i][j]
				}
			}
		}
	}
	inv := complex(1/float64(shots), 0)
	for q := 0; q < n; q++ {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				rdms[q][i][j] *= inv
			}
		}
		out, nerr := hermitizeAndNormalize(rdms[q], q)
		if nerr != nil {
			return nil, nerr
		}
		rdms[q] = out
	}

	log.Debug("trajectory pipeline finished", "qubits", n, "shots", shots, "workers", workers)
	return &PipelineResult{RDMs: rdms, ShotsUsed: shots}, nil
}

// runChunk simulates the trajectories of one fixed-size chunk on a reused
// statevector and returns the per-qubit marginal sums.
func runChunk(ctx context.Context, circ *Circuit, state *statevector, master uint64, chunk, shots int) ([]Mat2, error) {
	n := circ.NumQubits
	sums := make([]Mat2, n)

	first := chunk * trajectoryChunk
	last := first + trajectoryChunk
	if last > shots {
		last = shots
	}
	for traj := first; traj < last; traj++ {
		if ctx.Err() != nil {
			return nil, cancelErr(ctx)
		}
		rng := rand.New(rand.NewSource(subSeed(master, uint64(traj))))
		state.reset()
		for _, ins := range circ.Instructions {
			if ctx.Err() != nil {
				return nil, cancelErr(ctx)
			}
			switch ins.Op {
			case OpGate:
				if err := state.applyGate(ins); err != nil {
					return nil, err
				}
			case OpMeasure:
				state.collapse(ins.Qubits[0], rng)
			case OpReset:
				state.collapseReset(ins.Qubits[0], rng)
			case OpBarrier:
				// no-op
			}
		}
		for q := 0; q < n; q++ {
			rho := reducedFromState(state.amps, q)
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					sums[q][i][j] += rho[i][j]
				}
			}
		}
	}
	return sums, nil
}

// masterSeed resolves the request seed, falling back to system entropy.
func masterSeed(seed *uint64) (uint64, *Error) {
	if seed != nil {
		return *seed, nil
	}
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, internalErrorf("entropy source unavailable: %v", err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// subSeed derives the deterministic substream seed for one trajectory from
// the master seed, keeping parallel workers reproducible without a shared
// generator.
func subSeed(master, trajectory uint64) int64 {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], master)
	binary.BigEndian.PutUint64(buf[8:], trajectory)
	sum := sha256.Sum256(buf[:])
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
