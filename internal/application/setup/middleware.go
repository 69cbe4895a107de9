package setup

import (
	"context"
	"reflect"
	"time"

	"github.com/andrescamacho/shipforge-go/internal/application/logging"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
)

// LoggingMiddleware logs every request at debug level and failures at warn
func LoggingMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := logging.LoggerFromContext(ctx)
		name := requestName(request)

		start := time.Now()
		response, err := next(ctx, request)
		elapsed := time.Since(start)

		if err != nil {
			logger.Log(logging.LevelWarn, "request failed", map[string]interface{}{
				"request":  name,
				"duration": elapsed.String(),
				"error":    err.Error(),
			})
			return response, err
		}
		logger.Log(logging.LevelDebug, "request handled", map[string]interface{}{
			"request":  name,
			"duration": elapsed.String(),
		})
		return response, nil
	}
}

func requestName(request mediator.Request) string {
	t := reflect.TypeOf(request)
	if t == nil {
		return "unknown"
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
