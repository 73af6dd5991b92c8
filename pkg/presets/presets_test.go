package presets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shasank0001/Quantum-State-Visualizer/qsim"
)

func TestEveryPresetSimulates(t *testing.T) {
	orch := qsim.NewOrchestrator(qsim.Options{})
	for _, p := range Library {
		t.Run(p.ID, func(t *testing.T) {
			resp, err := orch.Simulate(context.Background(), &qsim.Request{QASMCode: p.QASM})
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Qubits)
			for _, q := range resp.Qubits {
				assert.GreaterOrEqual(t, q.Purity, 0.0)
				assert.LessOrEqual(t, q.Purity, 1.0)
			}
		})
	}
}

func TestPresetRouting(t *testing.T) {
	orch := qsim.NewOrchestrator(qsim.Options{})

	bell, _ := ByID("bell")
	resp, err := orch.Simulate(context.Background(), &qsim.Request{QASMCode: bell.QASM})
	require.NoError(t, err)
	assert.Equal(t, qsim.PipelineUnitary, resp.PipelineUsed)

	measured, _ := ByID("measured_bell")
	resp, err = orch.Simulate(context.Background(), &qsim.Request{QASMCode: measured.QASM})
	require.NoError(t, err)
	assert.Equal(t, qsim.PipelineExactDensity, resp.PipelineUsed)
}

func TestByID(t *testing.T) {
	p, ok := ByID("ghz")
	require.True(t, ok)
	assert.Equal(t, "GHZ State", p.Name)

	_, ok = ByID("missing")
	assert.False(t, ok)
}
