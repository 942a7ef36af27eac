package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/limejump/corona-analytics/pkg/config"
)

func testConfig(level, format string) *config.Config {
	return &config.Config{
		LogLevel:  level,
		LogFormat: format,
		Corona:    config.CoronaConfig{Env: config.EnvDev},
	}
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLevel zerolog.Level
	}{
		{"debug level", "debug", zerolog.DebugLevel},
		{"info level", "info", zerolog.InfoLevel},
		{"warn level", "warn", zerolog.WarnLevel},
		{"error level", "error", zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(testConfig(tt.level, "json"), &buf)
			if log.Level() != tt.wantLevel {
				t.Errorf("Expected level %v, got %v", tt.wantLevel, log.Level())
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestServiceFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(testConfig("info", "json"), &buf)

	log.Component("corona").Info("quotes fetched")

	entry := decode(t, &buf)
	if entry["service"] != serviceName {
		t.Errorf("Expected service %q, got %v", serviceName, entry["service"])
	}
	if entry["corona_env"] != config.EnvDev {
		t.Errorf("Expected corona_env dev, got %v", entry["corona_env"])
	}
	if entry["component"] != "corona" {
		t.Errorf("Expected component corona, got %v", entry["component"])
	}
	if entry["message"] != "quotes fetched" {
		t.Errorf("Expected message 'quotes fetched', got %v", entry["message"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(testConfig("warn", "json"), &buf)

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered at warn level, got %s", buf.String())
	}

	log.Warnf("attempt %d", 2)
	entry := decode(t, &buf)
	if entry["level"] != "warn" || entry["message"] != "attempt 2" {
		t.Errorf("Unexpected entry %v", entry)
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(testConfig("debug", "json"), &buf)

	log.WithFields(map[string]interface{}{
		"mpan":      "008450062012345678910",
		"contracts": 3,
	}).Debug("summary resolved")

	entry := decode(t, &buf)
	if entry["mpan"] != "008450062012345678910" {
		t.Errorf("Expected mpan field, got %v", entry["mpan"])
	}
	if entry["contracts"] != float64(3) {
		t.Errorf("Expected contracts=3, got %v", entry["contracts"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(testConfig("info", "json"), &buf)

	log.WithError(errors.New("corona unreachable")).WithField("path", "ppa/quotes").Error("fetch failed")

	entry := decode(t, &buf)
	if entry["error"] != "corona unreachable" {
		t.Errorf("Expected error field, got %v", entry["error"])
	}
	if entry["path"] != "ppa/quotes" {
		t.Errorf("Expected path field, got %v", entry["path"])
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(testConfig("info", "console"), &buf)

	log.Info("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", buf.String())
	}
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("Expected console output, got JSON: %s", buf.String())
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.WithField("k", "v").Error("nothing happens")
}
