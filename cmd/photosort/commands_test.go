package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"

	"photosort/internal/testsupport"
)

func TestResolveCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	photo := filepath.Join(env.source, "IMG_1.jpg")
	testsupport.WriteJPEG(t, photo, time.Date(2021, 3, 14, 15, 9, 26, 0, time.Local), time.Now())
	notes := filepath.Join(env.source, "notes.txt")
	testsupport.WriteFile(t, notes, []byte("x"))

	out, _, err := runCLI(t, []string{"resolve", photo, notes}, env.configPath)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	requireContains(t, out, "2021-03-14 15:09:26")
	requireContains(t, out, "2021-03")
	requireContains(t, out, "metadata")
	requireContains(t, out, "unsupported")
	testsupport.RequireExists(t, photo)

	if _, _, err := runCLI(t, []string{"resolve", filepath.Join(env.source, "gone.jpg")}, env.configPath); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", "--source", env.source, "--dest", env.dest}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "[OK]")
	requireContains(t, out, "will be created")
	testsupport.RequireMissing(t, env.dest)

	out, _, err = runCLI(t, []string{"check", "--source", filepath.Join(env.baseDir, "nope"), "--dest", env.dest}, env.configPath)
	if err == nil {
		t.Fatal("expected failure for missing source")
	}
	requireContains(t, out, "[ERROR]")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Language: English")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, target); err != nil {
		t.Fatalf("validate sample: %v", err)
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, env.configPath); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Source folder", statusError, "missing", false)
	want := "  Source folder:           [ERROR] missing"
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
	if got := renderStatusLine("Log directory", statusOK, "", false); strings.HasSuffix(got, " ") {
		t.Fatalf("unexpected trailing space in %q", got)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Destination", statusOK, "ok", true)
	want := text.Colors{text.FgGreen}.Sprint(renderStatusLine("Destination", statusOK, "ok", false))
	if got != want {
		t.Fatalf("expected green line, got %q", got)
	}
}

func TestRenderTableAlignsNumericColumns(t *testing.T) {
	out := renderTable([]column{textCol("File"), numCol("Moved")}, [][]string{{"a.jpg", "7", "extra"}, {"b.jpg"}})
	for _, want := range []string{"File", "Moved", "a.jpg", "b.jpg", "7"} {
		requireContains(t, out, want)
	}
	requireNotContains(t, out, "extra")
	if renderTable(nil, nil) != "" {
		t.Fatal("expected empty output without columns")
	}
}

func TestLogsCommandPrintsRunLog(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.source, "a.png"), []byte("png"))

	if _, stderr, err := runCLI(t, []string{"sort", "-s", env.source, "-d", env.dest}, env.configPath); err != nil {
		t.Fatalf("sort: %v (stderr: %s)", err, stderr)
	}
	runLogs, err := filepath.Glob(filepath.Join(env.logDir, "run-*.log"))
	if err != nil || len(runLogs) != 1 {
		t.Fatalf("expected one run log, got %v (%v)", runLogs, err)
	}
	runID := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(runLogs[0]), "run-"), ".log")

	out, _, err := runCLI(t, []string{"logs", runID[:8], "--lines", "100"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, runID)
	requireContains(t, out, "file placed")

	if _, _, err := runCLI(t, []string{"logs", "ffffffff"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestInvalidLogLevelFlagRejected(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"--log-level", "loud", "config", "validate"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown log level")
	}
	out, _, err := runCLI(t, []string{"--log-level", "DEBUG", "config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "History: "+filepath.Join(env.stateDir, "history.db"))
}
