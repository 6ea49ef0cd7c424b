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

var topArtistsNumber int
var topArtistsCmd = &cobra.Command{
	Use:   "top-artists [from (optional)] [to (optional)]",
	Short: "Gets the artists with the most hours played",
	Long:  `Uses the specified date or date range, or all time. Date strings look like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd', or relative like '30d', '6m'.`,
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		config := AnalyserConfig{NumToReturn: topArtistsNumber}
		err := runAnalyser(cmd, TopArtistsAnalyzer{}.SetConfig(config), args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)

	topArtistsCmd.Flags().IntVarP(&topArtistsNumber, "number", "n", 10, "number of results to return")
}

type TopArtistsAnalyzer struct {
	Config AnalyserConfig
}

func (t TopArtistsAnalyzer) SetConfig(config AnalyserConfig) TopArtistsAnalyzer {
	t.Config = config
	return t
}

func (t TopArtistsAnalyzer) GetName() string {
	return "Top artists"
}

func (t TopArtistsAnalyzer) GetResults(events *history.Collection, start time.Time, end time.Time) (result Analysis, err error) {
	ranked := analysis.TopArtists(events, 0)

	result.results = [][]string{{"Rank", "Artist", "Hours"}}
	for i, artist := range ranked {
		if t.Config.keep(i+1, artist.Hours) {
			result.results = append(result.results, []string{strconv.Itoa(i + 1), artist.Key, formatHours(artist.Hours)})
		}
	}

	result.summary = fmt.Sprintf("Found %d artists and %s hours %s\n",
		len(ranked), formatHours(events.TotalHours()), describeRange(start, end))
	return
}
