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

var newAlbumsNumber int
var newAlbumsCmd = &cobra.Command{
	Use:   "new-albums [from] [to (optional)]",
	Short: "Gets albums first listened to in the given time period",
	Long:  `Uses the specified date or date range. Date strings look like 'yyyy', 'yyyy-mm', 'yyyy-mm-dd', or relative like '30d', '6m'.`,
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		config := AnalyserConfig{NumToReturn: newAlbumsNumber}
		err := runAnalyser(cmd, &NewAlbumsAnalyzer{Config: config}, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(newAlbumsCmd)

	newAlbumsCmd.Flags().IntVarP(&newAlbumsNumber, "number", "n", 0, "number of results to return")
}

type NewAlbumsAnalyzer struct {
	Config AnalyserConfig
	all    *history.Collection
}

func (t *NewAlbumsAnalyzer) GetName() string {
	return "New albums"
}

func (t *NewAlbumsAnalyzer) withHistory(all *history.Collection) {
	t.all = all
}

func (t *NewAlbumsAnalyzer) GetResults(events *history.Collection, start time.Time, end time.Time) (result Analysis, err error) {
	if start.IsZero() {
		err = fmt.Errorf("new albums needs a start date")
		return
	}
	source := events
	if t.all != nil {
		source = t.all
	}
	ranked := analysis.NewAlbums(source, start, end, analysis.DefaultDiscoveryOptions)

	result.results = [][]string{{"Rank", "Artist", "Album", "Hours"}}
	for i, album := range ranked {
		if t.Config.keep(i+1, album.Hours) {
			result.results = append(result.results,
				[]string{strconv.Itoa(i + 1), album.Key.Artist, album.Key.Name, formatHours(album.Hours)})
		}
	}

	result.summary = fmt.Sprintf("Found %d new albums %s\n", len(ranked), describeRange(start, end))
	return
}
