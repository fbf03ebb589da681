package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agentsvc "authority_agent/internal/api/agent/service"
	"authority_agent/internal/api/posts/store"
)

func newTestCycleService() *agentsvc.AgentCycleService {
	return agentsvc.NewAgentCycleService(store.NewMemoryStore(), nil, agentsvc.CycleConfig{
		Subreddit:     "test_automation_jobs",
		IngestLimit:   25,
		ApprovedLimit: 5,
	})
}

func TestNewAgentCycleWorker_InvalidSchedule(t *testing.T) {
	_, err := NewAgentCycleWorker(newTestCycleService(), "not a cron spec")
	assert.Error(t, err)
}

func TestNewAgentCycleWorker_ValidSchedule(t *testing.T) {
	w, err := NewAgentCycleWorker(newTestCycleService(), "*/15 * * * *")
	require.NoError(t, err)
	assert.NotNil(t, w)
}

func TestAgentCycleWorker_StopsOnContextCancel(t *testing.T) {
	w, err := NewAgentCycleWorker(newTestCycleService(), "0 0 1 1 *")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after context cancel")
	}
}
