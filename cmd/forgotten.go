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
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

var (
	resultsPerBand       int
	sortBy               string
	lastListenBeforeStr  string
	firstListenAfterStr  string
	firstListenBeforeStr string
)

var forgottenCmd = &cobra.Command{
	Use:   "forgotten",
	Short: "Surfaces artists and albums heavily listened to in the past but not recently",
	Long:  `Identifies music that has fallen out of rotation based on dormancy and historical hours played.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := runForgotten(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(forgottenCmd)

	forgottenCmd.Flags().IntVar(&resultsPerBand, "results", 10, "Max results shown per interest band")
	forgottenCmd.Flags().StringVar(&sortBy, "sort", "dormancy", "Sort order: 'dormancy' or 'hours'")
	forgottenCmd.Flags().StringVar(&lastListenBeforeStr, "last_listen_before", "90d", "Only include entities with last listen before this date (YYYY-MM-DD or duration like 90d)")
	forgottenCmd.Flags().StringVar(&firstListenAfterStr, "first_listen_after", "", "Only include entities with first listen after this date (YYYY-MM-DD)")
	forgottenCmd.Flags().StringVar(&firstListenBeforeStr, "first_listen_before", "", "Only include entities with first listen before this date (YYYY-MM-DD)")
}

func forgottenOptions(now time.Time, loc *time.Location) (opts analysis.ForgottenOptions, err error) {
	opts = analysis.ForgottenOptions{ResultsPerBand: resultsPerBand, SortBy: sortBy, Now: now}
	for _, f := range []struct {
		value string
		dest  *time.Time
	}{
		{lastListenBeforeStr, &opts.LastPlayedBefore},
		{firstListenAfterStr, &opts.FirstPlayedAfter},
		{firstListenBeforeStr, &opts.FirstPlayedBefore},
	} {
		if f.value == "" {
			continue
		}
		var pd ParsedDate
		pd, err = parseSingleDatestring(f.value, loc)
		if err != nil {
			return
		}
		*f.dest = pd.Date
	}
	return
}

func runForgotten(cmd *cobra.Command) error {
	loc, err := location()
	if err != nil {
		return err
	}
	opts, err := forgottenOptions(time.Now(), loc)
	if err != nil {
		return err
	}
	result, err := loadHistory(cmd)
	if err != nil {
		return err
	}
	events := analysis.FilterByYears(result.Events, viper.GetIntSlice("year"))
	printForgotten(cmd.OutOrStdout(), events, opts)
	return nil
}

func printForgotten(out io.Writer, events *history.Collection, opts analysis.ForgottenOptions) {
	const dateFormat = "2006-01-02"

	artists := analysis.ForgottenArtists(events, opts)
	fmt.Fprintf(out, "## Forgotten Artists\n")
	for _, band := range analysis.Bands {
		items := artists[band]
		if len(items) == 0 {
			continue
		}
		table := Analysis{
			results: [][]string{{"Artist", "Hours", "Last Listen"}},
			summary: fmt.Sprintf("%s interest (%.0fh+)\n", band, analysis.ArtistBandHours[band]),
		}
		for _, a := range items {
			table.results = append(table.results, []string{a.Key, formatHours(a.Hours), a.LastPlayed.Format(dateFormat)})
		}
		fmt.Fprintln(out, table)
	}

	albums := analysis.ForgottenAlbums(events, opts)
	fmt.Fprintf(out, "## Forgotten Albums\n")
	for _, band := range analysis.Bands {
		items := albums[band]
		if len(items) == 0 {
			continue
		}
		table := Analysis{
			results: [][]string{{"Artist", "Album", "Hours", "Last Listen"}},
			summary: fmt.Sprintf("%s interest (%.0fh+)\n", band, analysis.AlbumBandHours[band]),
		}
		for _, a := range items {
			table.results = append(table.results,
				[]string{a.Key.Artist, a.Key.Name, formatHours(a.Hours), a.LastPlayed.Format(dateFormat)})
		}
		fmt.Fprintln(out, table)
	}
}
