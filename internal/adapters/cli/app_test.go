package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/application/logging"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/test/helpers"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.messages = append(l.messages, message)
}

func TestAppSend_AttachesLogger(t *testing.T) {
	// Arrange
	logger := &recordingLogger{}
	mock := helpers.NewMockMediator()
	mock.On(&catalog.ListComponentsQuery{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "handled", nil)
		return &catalog.ListComponentsResponse{Source: "fixture"}, nil
	})
	app := &App{Mediator: mock, Logger: logger}

	// Act
	resp, err := app.Send(context.Background(), &catalog.ListComponentsQuery{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "fixture", resp.(*catalog.ListComponentsResponse).Source)
	assert.Equal(t, []string{"handled"}, logger.messages)
	assert.Len(t, mock.Sent(), 1)
}

func TestAppSend_PropagatesErrors(t *testing.T) {
	app := &App{Mediator: helpers.NewMockMediator(), Logger: &recordingLogger{}}

	_, err := app.Send(context.Background(), &catalog.ListClassesQuery{})

	assert.Error(t, err)
}
