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
	"time"

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly [from (optional)] [to (optional)]",
	Short: "Shows hours played per month",
	Long:  `Lists every month from the first to the last play, including months without listening.`,
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := runAnalyser(cmd, MonthlyAnalyzer{}, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

type MonthlyAnalyzer struct{}

func (m MonthlyAnalyzer) GetName() string {
	return "Monthly hours"
}

func (m MonthlyAnalyzer) GetResults(events *history.Collection, start time.Time, end time.Time) (result Analysis, err error) {
	series := analysis.MonthlySeries(events)

	result.results = [][]string{{"Month", "Hours"}}
	busiest := -1
	for i, point := range series {
		result.results = append(result.results, []string{point.Month.String(), formatHours(point.Hours)})
		if busiest < 0 || point.Hours > series[busiest].Hours {
			busiest = i
		}
	}

	if busiest < 0 {
		result.summary = fmt.Sprintf("No plays %s\n", describeRange(start, end))
		return
	}
	result.summary = fmt.Sprintf("%d months %s, busiest was %s with %s hours\n",
		len(series), describeRange(start, end), series[busiest].Month, formatHours(series[busiest].Hours))
	return
}
