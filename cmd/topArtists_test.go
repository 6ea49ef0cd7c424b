/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

func testEvents(t *testing.T) *history.Collection {
	t.Helper()
	plays := []struct {
		ts     string
		ms     int64
		track  string
		artist string
		album  string
	}{
		{"2023-01-02T08:00:00Z", 3_600_000, "Song A", "Alpha", "First"},
		{"2023-01-03T09:00:00Z", 3_600_000, "Song B", "Alpha", "First"},
		{"2023-03-10T22:15:00Z", 5_400_000, "Song C", "Beta", "Second"},
		{"2023-03-11T12:00:00Z", 900_000, "Song D", "Gamma", ""},
	}

	var events []history.PlayEvent
	for _, p := range plays {
		ts, err := time.Parse(time.RFC3339, p.ts)
		if err != nil {
			t.Fatalf("time.Parse(%q): %v", p.ts, err)
		}
		e := history.NewPlayEvent(ts, p.ms, p.track, p.artist, time.UTC)
		e.AlbumName = p.album
		events = append(events, e)
	}
	return history.NewCollection(events)
}

func TestTopArtistsAnalyzer(t *testing.T) {
	result, err := TopArtistsAnalyzer{}.SetConfig(AnalyserConfig{NumToReturn: 2}).GetResults(testEvents(t), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}

	if len(result.results) != 3 {
		t.Fatalf("Expected header and 2 rows, got %v", result.results)
	}
	if got := strings.Join(result.results[1], "|"); got != "1|Alpha|2.00" {
		t.Fatalf("Expected Alpha first, got %q", got)
	}
	if got := strings.Join(result.results[2], "|"); got != "2|Beta|1.50" {
		t.Fatalf("Expected Beta second, got %q", got)
	}
	if !strings.Contains(result.summary, "Found 3 artists and 3.75 hours over all time") {
		t.Fatalf("Unexpected summary: %q", result.summary)
	}
}

func TestTopArtistsAnalyzerThreshold(t *testing.T) {
	result, err := TopArtistsAnalyzer{Config: AnalyserConfig{FilterThreshold: 1}}.GetResults(testEvents(t), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	// Gamma, at 0.25 hours, is filtered out.
	if len(result.results) != 3 {
		t.Fatalf("Expected 2 artists over the threshold, got %v", result.results)
	}
}

func TestTopArtistsRendersTable(t *testing.T) {
	result, err := TopArtistsAnalyzer{}.GetResults(testEvents(t), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	out := result.String()
	for _, want := range []string{"Alpha", "Beta", "Gamma", "0.25"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, out)
		}
	}
}

func TestTopTracksAnalyzer(t *testing.T) {
	result, err := TopTracksAnalyzer{Config: AnalyserConfig{NumToReturn: 1}}.GetResults(testEvents(t), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if got := strings.Join(result.results[1], "|"); got != "1|Song C|1.50" {
		t.Fatalf("Expected Song C first, got %q", got)
	}
}

func TestTopAlbumsAnalyzer(t *testing.T) {
	result, err := TopAlbumsAnalyzer{}.GetResults(testEvents(t), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	// Gamma has no album.
	if len(result.results) != 3 {
		t.Fatalf("Expected 2 albums, got %v", result.results)
	}
	if got := strings.Join(result.results[1], "|"); got != "1|Alpha|First|2.00" {
		t.Fatalf("Expected First first, got %q", got)
	}
}

func TestRunAnalyserInvalidDateString(t *testing.T) {
	err := runAnalyser(&cobra.Command{}, TopArtistsAnalyzer{}, []string{"derp"})
	if err == nil {
		t.Fatalf("runAnalyser should have errored with an invalid date string")
	}

	err = runAnalyser(&cobra.Command{}, TopArtistsAnalyzer{}, []string{"2020", "2021", "2022"})
	if err == nil {
		t.Fatalf("runAnalyser should have errored with too many date strings")
	}
}
