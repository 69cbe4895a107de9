package setup_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge-go/internal/application/battle"
	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/application/design"
	"github.com/andrescamacho/shipforge-go/internal/application/logging"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/internal/application/setup"
	"github.com/andrescamacho/shipforge-go/test/helpers"
)

type recordedLog struct {
	level    string
	message  string
	metadata map[string]interface{}
}

type captureLogger struct {
	mu      sync.Mutex
	entries []recordedLog
}

func (l *captureLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, recordedLog{level: level, message: message, metadata: metadata})
}

func (l *captureLogger) find(message string) (recordedLog, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.message == message {
			return e, true
		}
	}
	return recordedLog{}, false
}

func TestHandlerRegistry_CreateConfiguredMediator(t *testing.T) {
	// Arrange
	store := helpers.NewFixtureStore(t)
	registry := setup.NewHandlerRegistry(store, helpers.NewMockDesignRepository(), helpers.NewMockBattleReportRepository(), battle.Defaults{}, nil)

	// Act
	m, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	// Assert
	ctx := context.Background()
	classes, err := m.Send(ctx, &catalog.ListClassesQuery{})
	require.NoError(t, err)
	assert.Len(t, classes.(*catalog.ListClassesResponse).Classes, 1)

	created, err := m.Send(ctx, &design.CreateDesignCommand{Name: "Lancer", ClassName: helpers.FrigateClass})
	require.NoError(t, err)
	assert.NotEmpty(t, created.(*design.CreateDesignResponse).Design.ID)

	_, err = m.Send(ctx, &battle.ListReportsQuery{})
	assert.NoError(t, err)
}

func TestHandlerRegistry_SkipsBattlesWithoutReportRepository(t *testing.T) {
	// Arrange
	registry := setup.NewHandlerRegistry(helpers.NewFixtureStore(t), helpers.NewMockDesignRepository(), nil, battle.Defaults{}, nil)

	// Act
	m, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)
	_, err = m.Send(context.Background(), &battle.RunBattleCommand{})

	// Assert
	assert.Error(t, err)
}

func TestLoggingMiddleware(t *testing.T) {
	logger := &captureLogger{}
	ctx := logging.WithLogger(context.Background(), logger)
	mw := setup.LoggingMiddleware()

	t.Run("logs handled requests at debug", func(t *testing.T) {
		_, err := mw(ctx, &design.ListDesignsQuery{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
			return "ok", nil
		})

		require.NoError(t, err)
		entry, ok := logger.find("request handled")
		require.True(t, ok)
		assert.Equal(t, logging.LevelDebug, entry.level)
		assert.Equal(t, "ListDesignsQuery", entry.metadata["request"])
	})

	t.Run("logs failures at warn and passes the error through", func(t *testing.T) {
		boom := errors.New("boom")

		_, err := mw(ctx, &design.ValidateDesignQuery{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
			return nil, boom
		})

		assert.ErrorIs(t, err, boom)
		entry, ok := logger.find("request failed")
		require.True(t, ok)
		assert.Equal(t, logging.LevelWarn, entry.level)
		assert.Equal(t, "boom", entry.metadata["error"])
	})
}
