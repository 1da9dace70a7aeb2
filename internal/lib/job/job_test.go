package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWelcomeSender struct {
	to, name string
	err      error
}

func (f *fakeWelcomeSender) SendWelcomeEmail(to, name string) error {
	f.to, f.name = to, name
	return f.err
}

func newTestJobService(sender welcomeSender) *JobService {
	log := zerolog.Nop()
	return &JobService{email: sender, logger: &log}
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("ann@example.com", "Ann")
	require.NoError(t, err)

	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "ann@example.com", Name: "Ann"}, p)
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	sender := &fakeWelcomeSender{}
	j := newTestJobService(sender)

	task, err := NewWelcomeEmailTask("ann@example.com", "Ann")
	require.NoError(t, err)

	require.NoError(t, j.handleWelcomeEmailTask(context.Background(), task))
	assert.Equal(t, "ann@example.com", sender.to)
	assert.Equal(t, "Ann", sender.name)
}

func TestHandleWelcomeEmailTask_SendFailureIsRetried(t *testing.T) {
	boom := errors.New("provider down")
	j := newTestJobService(&fakeWelcomeSender{err: boom})

	task, err := NewWelcomeEmailTask("ann@example.com", "Ann")
	require.NoError(t, err)

	err = j.handleWelcomeEmailTask(context.Background(), task)
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleWelcomeEmailTask_BadPayloadSkipsRetry(t *testing.T) {
	j := newTestJobService(&fakeWelcomeSender{})

	err := j.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandler_RoutesWelcomeTask(t *testing.T) {
	sender := &fakeWelcomeSender{}
	j := newTestJobService(sender)

	task, err := NewWelcomeEmailTask("bo@example.com", "Bo")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, j.Handler().ProcessTask(ctx, task))
	assert.Equal(t, "bo@example.com", sender.to)
}
