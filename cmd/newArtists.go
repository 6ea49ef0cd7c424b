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
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

var newArtistsNumber int
var newArtistsCmd = &cobra.Command{
	Use:   "new-artists [from] [to (optional)]",
	Short: "Gets artists first listened to in the given time period",
	Long:  `Uses the specified date or date range. Date strings look like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd', or relative like '30d'.`,
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		config := AnalyserConfig{NumToReturn: newArtistsNumber}
		err := runAnalyser(cmd, &NewArtistsAnalyzer{Config: config}, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(newArtistsCmd)

	newArtistsCmd.Flags().IntVarP(&newArtistsNumber, "number", "n", 0, "number of results to return")
}

// NewArtistsAnalyzer needs the full history, since "new" depends on what was
// played before the period.
type NewArtistsAnalyzer struct {
	Config AnalyserConfig
	all    *history.Collection
}

func (t *NewArtistsAnalyzer) GetName() string {
	return "New artists"
}

func (t *NewArtistsAnalyzer) withHistory(all *history.Collection) {
	t.all = all
}

func (t *NewArtistsAnalyzer) GetResults(events *history.Collection, start time.Time, end time.Time) (result Analysis, err error) {
	if start.IsZero() {
		err = fmt.Errorf("new artists needs a start date")
		return
	}
	source := events
	if t.all != nil {
		source = t.all
	}
	ranked := analysis.NewArtists(source, start, end, analysis.DefaultDiscoveryOptions)

	result.results = [][]string{{"Rank", "Artist", "Hours"}}
	var hours float64
	for i, artist := range ranked {
		if t.Config.keep(i+1, artist.Hours) {
			result.results = append(result.results, []string{strconv.Itoa(i + 1), artist.Key, formatHours(artist.Hours)})
		}
		hours += artist.Hours
	}

	result.summary = fmt.Sprintf("Found %d new artists with %s hours %s\n",
		len(ranked), formatHours(hours), describeRange(start, end))
	return
}
