package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch", watchCmd.Use)
}

func TestWatchCmd_PushesOnChangeUntilClosed(t *testing.T) {
	mock := &mockPipeline{report: sampleReport()}
	oldPipeline := pipeline
	oldWatch := watchSignal
	pipeline = mock

	changes := make(chan struct{}, 1)
	watchSignal = func(_ context.Context, _ time.Duration) (<-chan struct{}, error) {
		return changes, nil
	}
	defer func() {
		pipeline = oldPipeline
		watchSignal = oldWatch
	}()

	changes <- struct{}{}
	close(changes)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"watch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	// Initial push plus one change-triggered push.
	assert.Equal(t, 2, mock.pushes)
	assert.Contains(t, buf.String(), "Watching for changes...")
	assert.Contains(t, buf.String(), "Change detected, pushing...")
}

func TestWatchCmd_InitialPushFailureStops(t *testing.T) {
	mock := &mockPipeline{err: assert.AnError}
	oldPipeline := pipeline
	oldWatch := watchSignal
	pipeline = mock
	watchSignal = func(_ context.Context, _ time.Duration) (<-chan struct{}, error) {
		return make(chan struct{}), nil
	}
	defer func() {
		pipeline = oldPipeline
		watchSignal = oldWatch
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"watch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "initial push failed")
}
