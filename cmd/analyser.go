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
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

type Analysis struct {
	results [][]string
	summary string
}

type AnalyserConfig struct {
	// Number of results to return, default is all results.
	NumToReturn int

	// Only return results with more hours than this. Default is all results.
	FilterThreshold float64
}

type Analyser interface {
	GetResults(events *history.Collection, start time.Time, end time.Time) (Analysis, error)

	GetName() string
}

// historyAware analysers also see the plays outside the requested range.
type historyAware interface {
	withHistory(all *history.Collection)
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}

func (c AnalyserConfig) keep(rank int, hours float64) bool {
	return (c.NumToReturn == 0 || rank <= c.NumToReturn) && (c.FilterThreshold == 0 || hours > c.FilterThreshold)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

// runAnalyser loads the history for args and prints a's table.
func runAnalyser(cmd *cobra.Command, a Analyser, args []string) error {
	events, loaded, start, end, err := loadEvents(cmd, args)
	if err != nil {
		return err
	}
	if h, ok := a.(historyAware); ok {
		h.withHistory(loaded.Events)
	}
	out, err := a.GetResults(events, start, end)
	if err != nil {
		return fmt.Errorf("%s: %w", a.GetName(), err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
