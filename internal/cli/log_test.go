package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestCLILogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("cache lookup", "format", "dxf")
	if !strings.Contains(buf.String(), "cache lookup") || !strings.Contains(buf.String(), "format=dxf") {
		t.Errorf("debug line missing after --verbose: %q", buf.String())
	}
}

func TestLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("generated")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("line should start with an HH:MM:SS.ms timestamp: %q", buf.String())
	}
}

func TestProgressDoneReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("Wrote 2 file(s)")

	if !regexp.MustCompile(`Wrote 2 file\(s\) \([0-9.]+m?s\)`).MatchString(buf.String()) {
		t.Errorf("done line = %q, want message with elapsed time", buf.String())
	}
}

func TestWriteArtifactsLogsThroughContext(t *testing.T) {
	restore := uiOut
	uiOut = io.Discard
	defer func() { uiOut = restore }()

	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.DebugLevel))
	base := filepath.Join(t.TempDir(), "lid")

	err := writeArtifacts(ctx, artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>"), "dxf": []byte("EOF\n")},
		formats:   []string{"svg", "dxf"},
		output:    base,
	})
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"wrote artifact", "path=" + base + ".svg", "path=" + base + ".dxf", "Wrote 2 file(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestWriteArtifactsMissingFormat(t *testing.T) {
	ctx := withLogger(context.Background(), newLogger(io.Discard, log.InfoLevel))
	err := writeArtifacts(ctx, artifactWriteParams{
		artifacts: map[string][]byte{},
		formats:   []string{"pdf"},
		output:    filepath.Join(t.TempDir(), "x.pdf"),
	})
	if err == nil || !strings.Contains(err.Error(), "no pdf artifact") {
		t.Errorf("err = %v, want missing artifact error", err)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should fall back to log.Default()")
	}

	l := newLogger(io.Discard, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("loggerFromContext should return the stored logger")
	}
}
