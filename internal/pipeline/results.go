package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/help-intl/aidcluster/internal/cluster"
	"github.com/help-intl/aidcluster/internal/dataset"
)

// writeResults exports the raw table plus one label column per method, the
// shape downstream spreadsheets expect.
func (a *Artifacts) writeResults(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{dataset.CountryColumn}, dataset.Features...)
	methods := []cluster.Method{cluster.MethodKMeans, cluster.MethodHierarchical, cluster.MethodDBSCAN}
	for _, m := range methods {
		header = append(header, string(m)+"_cluster")
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write results header: %w", err)
	}

	cols := make([][]float64, len(dataset.Features))
	for j, feat := range dataset.Features {
		col, err := a.Raw.Column(feat)
		if err != nil {
			return err
		}
		cols[j] = col
	}
	for i := 0; i < a.Raw.Rows(); i++ {
		rec := make([]string, 0, len(header))
		rec = append(rec, a.Raw.Country(i))
		for j := range dataset.Features {
			rec = append(rec, strconv.FormatFloat(cols[j][i], 'g', -1, 64))
		}
		for _, m := range methods {
			rec = append(rec, strconv.Itoa(a.Labels[m][i]))
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write results row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush results: %w", err)
	}
	return nil
}
