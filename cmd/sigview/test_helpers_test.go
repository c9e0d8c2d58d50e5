package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"sigview/internal/config"
	"sigview/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	archive    string
}

// setupCLITestEnv writes a config file pointing at fresh temp directories and
// seeds the archive with three recordings: two parseable (three rows) and one
// missing its data file.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	t.Setenv("SIGVIEW_ARCHIVE_DIR", "")

	cfg := testsupport.NewConfig(t)
	cfg.Logging.Level = "error"
	cfg.Display.Columns = []string{"meta_filename", "snr_db", "ml_wifi_prob"}

	archive := cfg.Paths.ArchiveDir
	testsupport.WriteRecording(t, archive, testsupport.Recording{
		Name:      "alpha",
		DataBytes: 800,
		Captures:  []map[string]any{{"core:sample_start": 0, "core:frequency": 915e6}},
		Annotations: []map[string]any{
			testsupport.MLAnnotation(915.1e6, map[string]any{"ds:snr": 12.0, "ds:customClassifierProbs": []map[string]any{{"className": "wifi", "classProb": 0.8}}}),
			testsupport.MLAnnotation(915.2e6, map[string]any{"ds:snr": 3.0}),
		},
	})
	testsupport.WriteRecording(t, archive, testsupport.Recording{
		Name:      "nested/bravo",
		DataBytes: 80,
		Captures:  []map[string]any{{"core:sample_start": 0, "core:frequency": 2.4e9}},
	})
	testsupport.WriteRecording(t, archive, testsupport.Recording{Name: "orphan", DataBytes: testsupport.NoDataFile})

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, archive: archive}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRunCLI(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, args, env.configPath)
	if err != nil {
		t.Fatalf("sigview %s: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return out
}

func decodeJSON[T any](t *testing.T, raw string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("decode json: %v\n%s", err, raw)
	}
	return v
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected output to contain %q\noutput:\n%s", substr, output)
	}
}
