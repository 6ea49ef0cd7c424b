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
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

// loadOptions builds the loader options from the root flags.
func loadOptions(stderr io.Writer) (history.LoadOptions, error) {
	loc, err := location()
	if err != nil {
		return history.LoadOptions{}, err
	}
	return history.LoadOptions{
		Extension: viper.GetString("ext"),
		Location:  loc,
		Strict:    viper.GetBool("strict"),
		Workers:   viper.GetInt("workers"),
		Logger:    slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}, nil
}

// location is the --timezone that play times and date arguments are read in.
func location() (*time.Location, error) {
	loc, err := time.LoadLocation(viper.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}
	return loc, nil
}

func weekStart() (time.Weekday, error) {
	return analysis.ParseWeekday(viper.GetString("week-start"))
}

// loadHistory reads the export directory named by --dir.
func loadHistory(cmd *cobra.Command) (*history.Result, error) {
	stderr := cmd.ErrOrStderr()
	opts, err := loadOptions(stderr)
	if err != nil {
		return nil, err
	}

	dir := viper.GetString("dir")
	if viper.GetBool("progress") {
		files, err := history.ListExportFiles(dir, opts.Extension)
		if err != nil {
			return nil, err
		}
		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("Loading history"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		opts.OnFile = func(string) { bar.Add(1) }
		defer bar.Finish()
	}

	result, err := history.Load(cmd.Context(), dir, opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dir, err)
	}
	if len(result.Files) == 0 {
		fmt.Fprintf(stderr, "No %s files found in %s\n", opts.Extension, dir)
	}
	if result.Skipped > 0 || len(result.FileErrors) > 0 {
		fmt.Fprintf(stderr, "Skipped %d records and %d files\n", result.Skipped, len(result.FileErrors))
	}
	return result, nil
}

// loadEvents loads the history and narrows it to the date range in args and
// the --year flag.
func loadEvents(cmd *cobra.Command, args []string) (events *history.Collection, result *history.Result, start, end time.Time, err error) {
	loc, err := location()
	if err != nil {
		return
	}
	start, end, err = parseDateRangeFromArgs(args, loc)
	if err != nil {
		return
	}

	result, err = loadHistory(cmd)
	if err != nil {
		return
	}

	events = analysis.FilterByRange(result.Events, start, end)
	events = analysis.FilterByYears(events, viper.GetIntSlice("year"))
	return
}

func describeRange(start, end time.Time) string {
	const dateFormat = "2006-01-02"
	var parts []string
	if !start.IsZero() {
		parts = append(parts, "from "+start.Format(dateFormat))
	}
	if !end.IsZero() {
		parts = append(parts, "to "+end.Format(dateFormat))
	}
	if len(parts) == 0 {
		return "over all time"
	}
	return strings.Join(parts, " ")
}
