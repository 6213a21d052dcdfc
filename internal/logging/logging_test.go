package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zapcore.Level
		wantError bool
	}{
		{"defaults", "", "", zapcore.InfoLevel, false},
		{"debug console", "debug", "console", zapcore.DebugLevel, false},
		{"warning alias", "WARNING", "json", zapcore.WarnLevel, false},
		{"error level", "error", "json", zapcore.ErrorLevel, false},
		{"parsed by zap", "DPANIC", "console", zapcore.DPanicLevel, false},
		{"bad level", "loud", "json", zapcore.InfoLevel, true},
		{"bad format", "info", "xml", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.format)
			if (err != nil) != tt.wantError {
				t.Fatalf("New() error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError {
				return
			}
			if !logger.Core().Enabled(tt.wantLevel) {
				t.Errorf("level %s should be enabled", tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && logger.Core().Enabled(tt.wantLevel-1) {
				t.Errorf("level %s should be disabled", tt.wantLevel-1)
			}
		})
	}
}
