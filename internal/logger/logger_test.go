package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLogRotation(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "harbor.log")

	// MaxSize is in MB; 1 is the smallest lumberjack allows.
	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 1,
		Compress:   false,
	}
	if err := Init(Options{Level: "debug", File: cfg}); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	longMessage := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Info("tick", zap.Int("frame", i), zap.String("payload", longMessage))
	}
	Sync()

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Error("main log file does not exist")
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}

	rotated := 0
	for _, f := range files {
		name := f.Name()
		if name == "harbor.log" || !strings.HasPrefix(name, "harbor") {
			continue
		}
		rotated++
		// Rotated files are named harbor-YYYY-MM-DDTHH-MM-SS.SSS.log.
		if !strings.Contains(name, "-20") {
			t.Errorf("rotated file %s doesn't have expected timestamp format", name)
		}
	}
	if rotated == 0 {
		t.Error("no rotated files found")
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := Build(Options{Level: tt.level, Console: &buf})
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message")
			l.Error("error message")
			_ = l.Sync()

			out := buf.String()
			for _, exp := range tt.expected {
				if !strings.Contains(out, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(out, exc) {
					t.Errorf("unexpected %s in log output for level %q", exc, tt.level)
				}
			}
		})
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	Log = zap.NewNop()
	before := Log
	if err := Init(Options{Level: "verbose", Console: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if Log != before {
		t.Error("failed Init replaced the global logger")
	}
}

func TestBuildWithoutSinks(t *testing.T) {
	l, err := Build(Options{Level: "debug"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if l.Core().Enabled(zap.ErrorLevel) {
		t.Error("logger without sinks should discard everything")
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("harbor.log")
	want := FileConfig{Path: "harbor.log", MaxSizeMB: 10, MaxBackups: 5, MaxAgeDays: 14, Compress: true}
	if cfg != want {
		t.Errorf("DefaultFileConfig = %+v, want %+v", cfg, want)
	}
	if DefaultFileConfig("").Path != "" {
		t.Error("empty path should keep file output disabled")
	}
}

func TestNamedBeforeInit(t *testing.T) {
	// The default logger is a no-op; logging through it must not panic.
	Log = zap.NewNop()
	Named("scene").Info("composed", zap.Int("nodes", 3))
	Info("no-op")
}

func TestNamedTagsComponent(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "named.log")
	cfg := FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}
	if err := Init(Options{Level: "debug", File: cfg}); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	Named("vessel").Info("trajectory ready")
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "vessel") {
		t.Errorf("expected component name in log output, got %q", content)
	}
}
