package cluster

import (
	"errors"
	"fmt"
	"sort"

	"github.com/help-intl/aidcluster/internal/dataset"
)

// PriorityEntry is one country in the aid priority list, reported with its
// raw-scale child mortality so a human can read the number directly.
type PriorityEntry struct {
	Country        string  `json:"country"`
	ChildMortality float64 `json:"child_mort"`
	Cluster        int     `json:"cluster"`
}

// MostVulnerable selects the cluster label with the highest mean child
// mortality from a profile in standardized units. When two clusters tie
// exactly, the smallest label wins; that resolution is implementation-
// defined, not something to rely on.
func MostVulnerable(p Profile) (int, error) {
	if len(p) == 0 {
		return 0, errors.New("priority: empty profile")
	}
	best := 0
	found := false
	var bestMean float64
	for _, l := range p.Labels() {
		mean, ok := p[l]["child_mort"]
		if !ok {
			return 0, fmt.Errorf("priority: profile for cluster %d lacks child_mort", l)
		}
		if !found || mean > bestMean {
			best, bestMean, found = l, mean, true
		}
	}
	return best, nil
}

// RankPriority picks the most vulnerable cluster from the standardized-space
// profile, then lists that cluster's members from the raw-scale table sorted
// by descending raw child mortality.
func RankPriority(raw *dataset.Table, labels []int, p Profile) ([]PriorityEntry, error) {
	if len(labels) != raw.Rows() {
		return nil, fmt.Errorf("priority: %d labels for %d rows", len(labels), raw.Rows())
	}
	target, err := MostVulnerable(p)
	if err != nil {
		return nil, err
	}
	childMort, err := raw.Column("child_mort")
	if err != nil {
		return nil, fmt.Errorf("priority: %w", err)
	}

	var entries []PriorityEntry
	for i, l := range labels {
		if l != target {
			continue
		}
		entries = append(entries, PriorityEntry{
			Country:        raw.Country(i),
			ChildMortality: childMort[i],
			Cluster:        l,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ChildMortality > entries[j].ChildMortality
	})
	return entries, nil
}
