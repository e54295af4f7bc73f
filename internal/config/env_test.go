package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ROOTS_TEST_VALUE", "set")
	if got := GetEnv("ROOTS_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("GetEnv() = %q, want %q", got, "set")
	}
	if got := GetEnv("ROOTS_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %q, want %q", got, "fallback")
	}
}

func TestGetEnvTyped(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantInt int
		wantDur time.Duration
	}{
		{"valid int", "42", 42, 5 * time.Second},
		{"valid duration", "3s", 7, 3 * time.Second},
		{"garbage", "abc", 7, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ROOTS_TEST_TYPED", tt.value)
			if got := GetEnvInt("ROOTS_TEST_TYPED", 7); got != tt.wantInt {
				t.Errorf("GetEnvInt() = %d, want %d", got, tt.wantInt)
			}
			if got := GetEnvDuration("ROOTS_TEST_TYPED", 5*time.Second); got != tt.wantDur {
				t.Errorf("GetEnvDuration() = %v, want %v", got, tt.wantDur)
			}
		})
	}

	if got := GetEnvInt("ROOTS_TEST_MISSING", 9); got != 9 {
		t.Errorf("GetEnvInt() on unset = %d, want 9", got)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"nonsense", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("ROOTS_LOG_LEVEL", tt.env)
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
			logger.Error("boom", "key", "value")
			if !strings.Contains(buf.String(), "key=value") {
				t.Errorf("log output %q lacks key=value", buf.String())
			}
		})
	}
}
