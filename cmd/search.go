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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/export"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

var searchExportFormat string
var searchOutDir string

var searchCmd = &cobra.Command{
	Use:   "search <artist>",
	Short: "Shows hours played per track for artists matching a name",
	Long: `Matches every artist whose name contains the given text, ignoring case, and
lists hours played per track. With --export the table is also written to
'<artist>_listening_history.csv' or '.xlsx' in --out.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := runSearch(cmd, strings.Join(args, " "))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchExportFormat, "export", "", "also export the results: csv or xlsx")
	searchCmd.Flags().StringVar(&searchOutDir, "out", ".", "directory to write exports to")
}

func runSearch(cmd *cobra.Command, artist string) error {
	result, err := loadHistory(cmd)
	if err != nil {
		return err
	}
	events := analysis.FilterByYears(result.Events, viper.GetIntSlice("year"))
	return searchAndExport(cmd.OutOrStdout(), events, artist, searchExportFormat, searchOutDir)
}

func searchAndExport(out io.Writer, events *history.Collection, artist, format, dir string) error {
	query, err := analysis.ArtistTracks(events, artist)
	fmt.Fprintln(out, searchTable(query, err))
	if err != nil && !errors.Is(err, analysis.ErrEmptyQuery) {
		return err
	}
	if format == "" {
		return nil
	}

	if query == nil || query.Empty() {
		return export.ErrNothingToExport
	}
	path, err := export.Write(dir, artist, format, query)
	if err != nil {
		return fmt.Errorf("exporting %q: %w", artist, err)
	}
	fmt.Fprintf(out, "Data exported to %s\n", path)
	return nil
}

// searchTable renders a query result, or the reason there is none, as a table.
func searchTable(query *analysis.QueryResult, err error) Analysis {
	switch {
	case errors.Is(err, analysis.ErrEmptyQuery):
		return Analysis{results: [][]string{{"Error"}, {"Please enter an artist name."}}}
	case err != nil:
		return Analysis{results: [][]string{{"Error"}, {err.Error()}}}
	case query.Empty():
		return Analysis{results: [][]string{{"Error"}, {query.Message}}}
	}

	results := [][]string{export.Header}
	var total float64
	for _, row := range query.Rows {
		results = append(results, []string{row.Track, formatHours(row.Hours)})
		total += row.Hours
	}
	return Analysis{
		results: results,
		summary: fmt.Sprintf("%d tracks and %s hours for artists matching %q\n", len(query.Rows), formatHours(total), query.Query),
	}
}
