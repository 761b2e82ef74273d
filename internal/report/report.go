// Package report renders pipeline artifacts as terminal tables.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/help-intl/aidcluster/internal/cluster"
	"github.com/help-intl/aidcluster/internal/dataset"
	"github.com/help-intl/aidcluster/internal/stats"
)

var heading = color.New(color.FgCyan, color.Bold)

func printHeading(w io.Writer, text string) {
	fmt.Fprintln(w)
	heading.Fprintln(w, text)
}

func num(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if math.IsInf(v, 0) {
		if v > 0 {
			return "+inf"
		}
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Describe renders per-feature descriptive statistics.
func Describe(w io.Writer, summaries []dataset.ColumnSummary) {
	printHeading(w, "Feature summary")
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"feature", "count", "mean", "std", "min", "q1", "median", "q3", "max"})
	for _, s := range summaries {
		tw.Append([]string{
			s.Name, strconv.Itoa(s.Count),
			num(s.Mean), num(s.Std), num(s.Min), num(s.Q1), num(s.Median), num(s.Q3), num(s.Max),
		})
	}
	tw.Render()
}

// Correlations renders the Pearson correlation matrix.
func Correlations(w io.Writer, m *dataset.CorrMatrix) {
	printHeading(w, "Correlation matrix")
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(append([]string{""}, m.Columns...))
	for i, name := range m.Columns {
		row := make([]string, 0, len(m.Columns)+1)
		row = append(row, name)
		for j := range m.Columns {
			row = append(row, num(m.Values[i][j]))
		}
		tw.Append(row)
	}
	tw.Render()
}

// Profiles renders per-cluster feature means for one method, ordered by
// descending child mortality so the vulnerable cluster tops the table.
func Profiles(w io.Writer, method cluster.Method, p cluster.Profile) {
	printHeading(w, fmt.Sprintf("%s cluster profiles (standardized means)", method))
	labels := p.Labels()
	sort.SliceStable(labels, func(i, j int) bool {
		return p[labels[i]]["child_mort"] > p[labels[j]]["child_mort"]
	})
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(append([]string{"cluster"}, dataset.Features...))
	for _, l := range labels {
		name := strconv.Itoa(l)
		if l == cluster.Noise {
			name = "noise"
		}
		row := []string{name}
		for _, feat := range dataset.Features {
			row = append(row, num(p[l][feat]))
		}
		tw.Append(row)
	}
	tw.Render()
}

// Sweep renders the elbow and silhouette curves as a table.
func Sweep(w io.Writer, points []cluster.SweepPoint) {
	printHeading(w, "K-means model selection (diagnostic)")
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"k", "inertia", "silhouette"})
	for _, p := range points {
		tw.Append([]string{strconv.Itoa(p.K), num(p.Inertia), num(p.Silhouette)})
	}
	tw.Render()
}

// Priority renders the aid priority list in raw child-mortality units.
func Priority(w io.Writer, entries []cluster.PriorityEntry) {
	printHeading(w, "Aid priority list (raw child mortality, descending)")
	if len(entries) == 0 {
		fmt.Fprintln(w, "no priority cluster identified")
		return
	}
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"rank", "country", "child_mort", "cluster"})
	for i, e := range entries {
		tw.Append([]string{strconv.Itoa(i + 1), e.Country, num(e.ChildMortality), strconv.Itoa(e.Cluster)})
	}
	tw.Render()
}

// Hypotheses renders the t-test outcomes.
func Hypotheses(w io.Writer, results []*stats.TTestResult) {
	printHeading(w, "Hypothesis tests")
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"test", "split median", "high n", "low n", "high mean", "low mean", "t", "p", "pearson r", "significant"})
	for _, r := range results {
		corr := ""
		if r.HasCorr {
			corr = num(r.Correlation)
		}
		verdict := "no"
		if r.Significant {
			verdict = color.GreenString("yes")
		}
		tw.Append([]string{
			r.Name, num(r.SplitMedian),
			strconv.Itoa(r.HighN), strconv.Itoa(r.LowN),
			num(r.HighMean), num(r.LowMean),
			num(r.T), strconv.FormatFloat(r.P, 'g', 4, 64), corr, verdict,
		})
	}
	tw.Render()
}
