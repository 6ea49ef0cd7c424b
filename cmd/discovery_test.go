package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

func TestNewArtistsAnalyzer(t *testing.T) {
	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)

	all := testEvents(t)
	inRange := analysis.FilterByRange(all, start, end)
	analyzer := &NewArtistsAnalyzer{}
	analyzer.withHistory(all)

	result, err := analyzer.GetResults(inRange, start, end)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	// Beta and Gamma first appear in March; Gamma's 0.25 hours is too little.
	if len(result.results) != 2 || result.results[1][1] != "Beta" {
		t.Fatalf("Expected only Beta, got %v", result.results)
	}
}

func TestNewArtistsAnalyzerNeedsStart(t *testing.T) {
	_, err := (&NewArtistsAnalyzer{}).GetResults(testEvents(t), time.Time{}, time.Time{})
	if err == nil {
		t.Fatalf("Expected an error without a start date")
	}
}

func TestNewAlbumsAnalyzer(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	result, err := (&NewAlbumsAnalyzer{}).GetResults(testEvents(t), start, time.Time{})
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(result.results) != 3 || strings.Join(result.results[1], "|") != "1|Alpha|First|2.00" {
		t.Fatalf("Unexpected new albums %v", result.results)
	}
}

func TestPrintForgotten(t *testing.T) {
	var events []history.PlayEvent
	for day := range 30 {
		e := history.NewPlayEvent(time.Date(2020, 1, day+1, 0, 0, 0, 0, time.UTC), 3_600_000, "Hit", "Old Band", time.UTC)
		e.AlbumName = "Old Album"
		events = append(events, e)
	}

	out := new(bytes.Buffer)
	printForgotten(out, history.NewCollection(events), analysis.ForgottenOptions{
		Now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	output := out.String()
	for _, want := range []string{"## Forgotten Artists", "Old Band", "Strong interest (20h+)", "## Forgotten Albums", "Old Album", "Obsession interest (25h+)"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, output)
		}
	}
}

func TestForgottenOptions(t *testing.T) {
	lastListenBeforeStr = "2023-06"
	defer func() { lastListenBeforeStr = "90d" }()

	opts, err := forgottenOptions(time.Now(), time.UTC)
	if err != nil {
		t.Fatalf("forgottenOptions: %v", err)
	}
	if want := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC); !opts.LastPlayedBefore.Equal(want) {
		t.Fatalf("Expected last listen before %v, got %v", want, opts.LastPlayedBefore)
	}
}
