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

var calendarCmd = &cobra.Command{
	Use:   "calendar [from (optional)] [to (optional)]",
	Short: "Shows hours played by year and month",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := runAnalyser(cmd, CalendarAnalyzer{}, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

type CalendarAnalyzer struct{}

func (c CalendarAnalyzer) GetName() string {
	return "Calendar"
}

func (c CalendarAnalyzer) GetResults(events *history.Collection, start time.Time, end time.Time) (result Analysis, err error) {
	grid := analysis.YearMonthMatrix(events)

	header := []string{"Year"}
	for _, name := range analysis.MonthNames() {
		header = append(header, name[:3])
	}
	header = append(header, "Total")
	result.results = [][]string{header}

	for i, year := range grid.Years {
		row := []string{strconv.Itoa(year)}
		var total float64
		for _, hours := range grid.Hours[i] {
			row = append(row, strconv.FormatFloat(hours, 'f', 1, 64))
			total += hours
		}
		row = append(row, strconv.FormatFloat(total, 'f', 1, 64))
		result.results = append(result.results, row)
	}

	result.summary = fmt.Sprintf("%d years %s\n", len(grid.Years), describeRange(start, end))
	return
}
