package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testExport = `[
  {"ts": "2024-01-01T10:00:00Z", "ms_played": 3600000, "master_metadata_track_name": "Song A",
   "master_metadata_album_artist_name": "Alpha", "master_metadata_album_album_name": "First"},
  {"ts": "2024-02-01T10:00:00Z", "ms_played": 1800000, "master_metadata_track_name": "Song B",
   "master_metadata_album_artist_name": "Beta", "master_metadata_album_album_name": "Second"},
  {"ts": "not a time", "ms_played": 1}
]`

func writeTestExport(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Streaming_History_Audio_2024.json")
	if err := os.WriteFile(path, []byte(testExport), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	return dir
}

func executeCommand(t *testing.T, args ...string) (string, string) {
	t.Helper()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return stdout.String(), stderr.String()
}

func TestTopArtistsCommand(t *testing.T) {
	dir := writeTestExport(t)
	stdout, stderr := executeCommand(t, "top-artists", "--dir", dir)

	if !strings.Contains(stdout, "Alpha") || !strings.Contains(stdout, "Beta") {
		t.Fatalf("Expected both artists in output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Found 2 artists and 1.50 hours over all time") {
		t.Fatalf("Unexpected summary:\n%s", stdout)
	}
	if !strings.Contains(stderr, "Skipped 1 records") {
		t.Fatalf("Expected skipped record count on stderr:\n%s", stderr)
	}
}

func TestTopArtistsCommandDateRange(t *testing.T) {
	dir := writeTestExport(t)
	stdout, _ := executeCommand(t, "top-artists", "--dir", dir, "2024-02")

	if strings.Contains(stdout, "Alpha") || !strings.Contains(stdout, "Beta") {
		t.Fatalf("Expected only February's artist:\n%s", stdout)
	}
}

func TestReportCommand(t *testing.T) {
	dir := writeTestExport(t)
	stdout, _ := executeCommand(t, "report", "--dir", dir)

	for _, want := range []string{"metadata:", "period: all time", "skipped_records: 1", "name: Alpha"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected report to contain %q:\n%s", want, stdout)
		}
	}
}

func TestSearchCommandExport(t *testing.T) {
	dir := writeTestExport(t)
	out := t.TempDir()
	executeCommand(t, "search", "--dir", dir, "--export", "xlsx", "--out", out, "alpha")

	if _, err := os.Stat(filepath.Join(out, "alpha_listening_history.xlsx")); err != nil {
		t.Fatalf("Expected xlsx export: %v", err)
	}
}

func TestRootFlagDefaults(t *testing.T) {
	for name, want := range map[string]string{
		"dir":        "./MyData",
		"ext":        ".json",
		"timezone":   "UTC",
		"week-start": "monday",
		"strict":     "false",
	} {
		flag := rootCmd.PersistentFlags().Lookup(name)
		if flag == nil {
			t.Errorf("Missing flag --%s", name)
			continue
		}
		if flag.DefValue != want {
			t.Errorf("--%s defaults to %q, want %q", name, flag.DefValue, want)
		}
	}
}

func TestCalendarCommandTimezone(t *testing.T) {
	dir := t.TempDir()
	export := `[{"ts": "2024-01-01T05:00:00Z", "ms_played": 3600000,
  "master_metadata_track_name": "Late", "master_metadata_album_artist_name": "Alpha"}]`
	if err := os.WriteFile(filepath.Join(dir, "history.json"), []byte(export), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	defer rootCmd.PersistentFlags().Set("timezone", "UTC")

	// Still New Year's Eve in Los Angeles.
	stdout, _ := executeCommand(t, "calendar", "--dir", dir, "--timezone", "America/Los_Angeles", "2024")
	if strings.Contains(stdout, "2023") || !strings.Contains(stdout, "0 years") {
		t.Fatalf("Expected no plays in 2024 Los Angeles time:\n%s", stdout)
	}

	stdout, _ = executeCommand(t, "calendar", "--dir", dir, "--timezone", "America/Los_Angeles", "2023")
	if !strings.Contains(stdout, "2023") || !strings.Contains(stdout, "1 years") {
		t.Fatalf("Expected the play in 2023 Los Angeles time:\n%s", stdout)
	}
}
