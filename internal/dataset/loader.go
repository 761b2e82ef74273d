package dataset

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
)

// Load reads a delimited country indicator table from path. The header must
// contain the country column and all nine numeric features; extra columns are
// ignored. A missing column or a value that does not parse as a float is a
// configuration error, not something to recover from.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Error() != nil {
		return nil, fmt.Errorf("read csv: %w", df.Error())
	}
	return fromDataFrame(df)
}

func fromDataFrame(df dataframe.DataFrame) (*Table, error) {
	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	if !present[CountryColumn] {
		return nil, fmt.Errorf("required column %q missing from input", CountryColumn)
	}
	for _, feat := range Features {
		if !present[feat] {
			return nil, fmt.Errorf("required column %q missing from input", feat)
		}
	}
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("input contains no data rows")
	}

	countries := df.Col(CountryColumn).Records()
	columns := make(map[string][]float64, len(Features))
	for _, feat := range Features {
		vals := df.Col(feat).Float()
		for i, v := range vals {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("column %q row %d: value is not numeric", feat, i+1)
			}
		}
		columns[feat] = vals
	}
	return New(countries, append([]string(nil), Features...), columns)
}
