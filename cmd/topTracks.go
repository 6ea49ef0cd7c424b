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

var topTracksNumber int
var topTracksCmd = &cobra.Command{
	Use:   "top-tracks [from (optional)] [to (optional)]",
	Short: "Gets the tracks with the most hours played",
	Long:  `Uses the specified date or date range, or all time. Date strings look like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd', or relative like '30d', '6m'.`,
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		config := AnalyserConfig{NumToReturn: topTracksNumber}
		err := runAnalyser(cmd, TopTracksAnalyzer{Config: config}, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topTracksCmd)

	topTracksCmd.Flags().IntVarP(&topTracksNumber, "number", "n", 10, "number of results to return")
}

type TopTracksAnalyzer struct {
	Config AnalyserConfig
}

func (t TopTracksAnalyzer) GetName() string {
	return "Top tracks"
}

func (t TopTracksAnalyzer) GetResults(events *history.Collection, start time.Time, end time.Time) (result Analysis, err error) {
	ranked := analysis.TopTracks(events, 0)

	result.results = [][]string{{"Rank", "Track", "Hours"}}
	for i, track := range ranked {
		if t.Config.keep(i+1, track.Hours) {
			result.results = append(result.results, []string{strconv.Itoa(i + 1), track.Key, formatHours(track.Hours)})
		}
	}

	result.summary = fmt.Sprintf("Found %d tracks and %s hours %s\n",
		len(ranked), formatHours(events.TotalHours()), describeRange(start, end))
	return
}
