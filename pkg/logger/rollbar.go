package logger

import (
	"errors"

	"github.com/rollbar/rollbar-go"
	"go.uber.org/zap/zapcore"
)

// NewRollbarHook configures the global rollbar client and returns a zap hook
// forwarding error-level entries.
func NewRollbarHook(token, env, codeVersion string) func(zapcore.Entry) error {
	rollbar.SetToken(token)
	rollbar.SetEnvironment(env)
	rollbar.SetCodeVersion(codeVersion)
	rollbar.SetEnabled(true)
	return rollbarHook
}

func rollbarHook(entry zapcore.Entry) error {
	switch {
	case entry.Level >= zapcore.DPanicLevel:
		rollbar.Critical(errors.New(entry.Message), map[string]interface{}{"caller": entry.Caller.String()})
	case entry.Level == zapcore.ErrorLevel:
		rollbar.Error(errors.New(entry.Message), map[string]interface{}{"caller": entry.Caller.String()})
	}
	return nil
}

// FlushRollbar blocks until queued rollbar items are delivered.
func FlushRollbar() {
	rollbar.Wait()
}
