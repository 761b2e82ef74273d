package preprocess

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/stat"

	"github.com/help-intl/aidcluster/internal/dataset"
	"github.com/help-intl/aidcluster/internal/utils"
)

// ErrZeroVariance marks a constant column that cannot be standardized.
// Rejecting the column outright beats silently emitting NaN that would
// poison every later cluster mean.
var ErrZeroVariance = errors.New("zero variance in column")

// Scaler is a fitted z-score transform: per-feature mean and population
// standard deviation. Fit exactly once per pipeline run, on the winsorized
// but not-yet-engineered table; every later scale or unscale, including live
// predictions, must go through the same instance.
type Scaler struct {
	Features []string
	Mean     []float64
	Std      []float64
}

// FitScaler computes per-feature mean and standard deviation over the given
// table. A constant column is reported as ErrZeroVariance.
func FitScaler(t *dataset.Table, features []string) (*Scaler, error) {
	s := &Scaler{
		Features: append([]string(nil), features...),
		Mean:     make([]float64, len(features)),
		Std:      make([]float64, len(features)),
	}
	for j, feat := range features {
		col, err := t.Column(feat)
		if err != nil {
			return nil, fmt.Errorf("fit scaler: %w", err)
		}
		mean := stat.Mean(col, nil)
		var ss float64
		for _, v := range col {
			d := v - mean
			ss += d * d
		}
		std := math.Sqrt(ss / float64(len(col)))
		if std == 0 {
			return nil, fmt.Errorf("fit scaler: %w: %q", ErrZeroVariance, feat)
		}
		s.Mean[j] = mean
		s.Std[j] = std
	}
	return s, nil
}

// Transform returns a new table with every fitted feature replaced by its
// z-score. Columns outside the fitted feature set pass through untouched.
func (s *Scaler) Transform(t *dataset.Table) (*dataset.Table, error) {
	out := t
	for j, feat := range s.Features {
		col, err := out.Column(feat)
		if err != nil {
			return nil, fmt.Errorf("transform: %w", err)
		}
		for i, v := range col {
			col[i] = (v - s.Mean[j]) / s.Std[j]
		}
		out, err = out.WithColumn(feat, col)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// InverseTransform maps standardized features back to raw scale, x*sigma+mu.
func (s *Scaler) InverseTransform(t *dataset.Table) (*dataset.Table, error) {
	out := t
	for j, feat := range s.Features {
		col, err := out.Column(feat)
		if err != nil {
			return nil, fmt.Errorf("inverse transform: %w", err)
		}
		for i, v := range col {
			col[i] = v*s.Std[j] + s.Mean[j]
		}
		out, err = out.WithColumn(feat, col)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// TransformRow standardizes a single observation given in fitted feature
// order. This is the inference-time path; it never refits.
func (s *Scaler) TransformRow(row []float64) ([]float64, error) {
	if len(row) != len(s.Features) {
		return nil, fmt.Errorf("transform row: got %d values, scaler fitted on %d features", len(row), len(s.Features))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out, nil
}

// Save writes the fitted scaler as a gob blob, atomically.
func (s *Scaler) Save(path string) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encode scaler: %w", err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("save scaler: %w", err)
	}
	return nil
}

// LoadScaler reads a scaler previously written by Save. The loaded object
// transforms exactly like the freshly fitted one.
func LoadScaler(path string) (*Scaler, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}
	var s Scaler
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scaler: %w", err)
	}
	if len(s.Features) == 0 || len(s.Mean) != len(s.Features) || len(s.Std) != len(s.Features) {
		return nil, fmt.Errorf("decode scaler: blob is malformed")
	}
	return &s, nil
}
