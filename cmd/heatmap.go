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

var heatmapCmd = &cobra.Command{
	Use:   "heatmap [from (optional)] [to (optional)]",
	Short: "Shows hours played by day of week and hour of day",
	Long:  `Prints a 7x24 table of hours played. Rows start at --week-start; hours are in --timezone.`,
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		start, err := weekStart()
		if err == nil {
			err = runAnalyser(cmd, HeatmapAnalyzer{WeekStart: start}, args)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(heatmapCmd)
}

type HeatmapAnalyzer struct {
	WeekStart time.Weekday
}

func (h HeatmapAnalyzer) GetName() string {
	return "Weekday heatmap"
}

func (h HeatmapAnalyzer) GetResults(events *history.Collection, start time.Time, end time.Time) (result Analysis, err error) {
	grid := analysis.HourByWeekdayMatrix(events, h.WeekStart)

	header := []string{"Day"}
	for hour := range 24 {
		header = append(header, strconv.Itoa(hour))
	}
	result.results = [][]string{header}

	for i, day := range grid.Days {
		row := []string{day.String()[:3]}
		for _, hours := range grid.Hours[i] {
			row = append(row, strconv.FormatFloat(hours, 'f', 1, 64))
		}
		result.results = append(result.results, row)
	}

	result.summary = fmt.Sprintf("%s hours %s\n", formatHours(events.TotalHours()), describeRange(start, end))
	return
}
