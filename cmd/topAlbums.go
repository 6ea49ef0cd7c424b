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

var topAlbumsNumber int
var topAlbumsCmd = &cobra.Command{
	Use:   "top-albums [from (optional)] [to (optional)]",
	Short: "Gets the albums with the most hours played",
	Long:  `Uses the specified date or date range, or all time. Date strings look like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd', or relative like '30d', '6m'.`,
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		config := AnalyserConfig{NumToReturn: topAlbumsNumber}
		err := runAnalyser(cmd, TopAlbumsAnalyzer{Config: config}, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topAlbumsCmd)

	topAlbumsCmd.Flags().IntVarP(&topAlbumsNumber, "number", "n", 10, "number of results to return")
}

type TopAlbumsAnalyzer struct {
	Config AnalyserConfig
}

func (t TopAlbumsAnalyzer) GetName() string {
	return "Top albums"
}

func (t TopAlbumsAnalyzer) GetResults(events *history.Collection, start time.Time, end time.Time) (result Analysis, err error) {
	ranked := analysis.TopAlbums(events, 0)

	result.results = [][]string{{"Rank", "Artist", "Album", "Hours"}}
	for i, album := range ranked {
		if t.Config.keep(i+1, album.Hours) {
			result.results = append(result.results,
				[]string{strconv.Itoa(i + 1), album.Key.Artist, album.Key.Name, formatHours(album.Hours)})
		}
	}

	result.summary = fmt.Sprintf("Found %d albums and %s hours %s\n",
		len(ranked), formatHours(events.TotalHours()), describeRange(start, end))
	return
}
