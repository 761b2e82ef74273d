package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/help-intl/aidcluster/internal/cluster"
	"github.com/help-intl/aidcluster/internal/dataset"
	"github.com/help-intl/aidcluster/internal/preprocess"
)

// syntheticTable builds six struggling and six prosperous countries with
// clean separation on every indicator.
func syntheticTable(t *testing.T) *dataset.Table {
	t.Helper()
	n := 12
	countries := make([]string, n)
	cols := map[string][]float64{}
	for _, feat := range dataset.Features {
		cols[feat] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		f := float64(i)
		if i < 6 {
			countries[i] = "poor" + strconv.Itoa(i)
			cols["child_mort"][i] = 90 + f
			cols["exports"][i] = 10 + f
			cols["health"][i] = 5 + 0.1*f
			cols["imports"][i] = 40 + f
			cols["income"][i] = 1500 + 10*f
			cols["inflation"][i] = 9 + 0.2*f
			cols["life_expec"][i] = 55 + 0.5*f
			cols["total_fer"][i] = 5 + 0.1*f
			cols["gdpp"][i] = 500 + 5*f
		} else {
			countries[i] = "rich" + strconv.Itoa(i)
			cols["child_mort"][i] = 4 + 0.2*f
			cols["exports"][i] = 50 + f
			cols["health"][i] = 9 + 0.1*f
			cols["imports"][i] = 30 + f
			cols["income"][i] = 45000 + 100*f
			cols["inflation"][i] = 1.5 + 0.1*f
			cols["life_expec"][i] = 80 + 0.2*f
			cols["total_fer"][i] = 1.6 + 0.05*f
			cols["gdpp"][i] = 40000 + 100*f
		}
	}
	tb, err := dataset.New(countries, dataset.Features, cols)
	require.NoError(t, err)
	return tb
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.KMeans = cluster.KMeansConfig{K: 2, MaxIter: 100, Restarts: 5}
	opts.Hierarchical = cluster.HierarchicalConfig{K: 2}
	opts.DBSCAN = cluster.DBSCANConfig{Eps: 1.5, MinSamples: 3}
	return opts
}

func TestRunTable(t *testing.T) {
	tb := syntheticTable(t)
	arts, err := RunTable(tb, testOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, arts.RunID)
	require.NotNil(t, arts.Winsorized)
	require.NotNil(t, arts.Standardized)
	require.NotNil(t, arts.Engineered)
	assert.Len(t, arts.Bounds, 3)
	assert.True(t, arts.Engineered.HasColumn(preprocess.HighChildMortalityColumn))
	assert.True(t, arts.Engineered.HasColumn(preprocess.ExportsImportsRatioColumn))

	require.Len(t, arts.Labels, 3)
	for method, labels := range arts.Labels {
		assert.Len(t, labels, tb.Rows(), "labels for %s", method)
	}
	assert.Len(t, arts.Linkage, tb.Rows()-1)
	require.Len(t, arts.Profiles, 3)
}

func TestRunTableSeparatesGroups(t *testing.T) {
	tb := syntheticTable(t)
	arts, err := RunTable(tb, testOptions())
	require.NoError(t, err)

	for _, method := range []cluster.Method{cluster.MethodKMeans, cluster.MethodHierarchical} {
		labels := arts.Labels[method]
		for i := 1; i < 6; i++ {
			assert.Equal(t, labels[0], labels[i], "%s: struggling block splits", method)
		}
		for i := 7; i < 12; i++ {
			assert.Equal(t, labels[6], labels[i], "%s: prosperous block splits", method)
		}
		assert.NotEqual(t, labels[0], labels[6], "%s: blocks merged", method)
	}
}

func TestRunTablePriority(t *testing.T) {
	tb := syntheticTable(t)
	arts, err := RunTable(tb, testOptions())
	require.NoError(t, err)

	require.Len(t, arts.Priority, 6, "only the vulnerable cluster is ranked")
	for _, e := range arts.Priority {
		assert.True(t, strings.HasPrefix(e.Country, "poor"), "ranked %q", e.Country)
	}
	for i := 1; i < len(arts.Priority); i++ {
		assert.LessOrEqual(t, arts.Priority[i].ChildMortality, arts.Priority[i-1].ChildMortality)
	}
	assert.Equal(t, "poor5", arts.Priority[0].Country)
}

func TestRunTableThreeCountryOracle(t *testing.T) {
	countries := []string{"Norway", "Chad", "Haiti"}
	cols := map[string][]float64{
		"child_mort": {5, 50, 90},
		"exports":    {50, 20, 10},
		"health":     {9, 5, 4},
		"imports":    {30, 40, 45},
		"income":     {40000, 2000, 1000},
		"inflation":  {2, 8, 12},
		"life_expec": {82, 62, 55},
		"total_fer":  {1.5, 4, 5.5},
		"gdpp":       {45000, 1500, 800},
	}
	tb, err := dataset.New(countries, dataset.Features, cols)
	require.NoError(t, err)

	opts := testOptions()
	arts, err := RunTable(tb, opts)
	require.NoError(t, err)

	labels := arts.Labels[cluster.MethodKMeans]
	assert.Equal(t, labels[1], labels[2], "the two high-mortality rows co-cluster")
	assert.NotEqual(t, labels[0], labels[1], "the prosperous row stands apart")

	require.Len(t, arts.Priority, 2)
	assert.Equal(t, "Haiti", arts.Priority[0].Country)
	assert.Equal(t, "Chad", arts.Priority[1].Country)
}

func TestRunTablePCA(t *testing.T) {
	tb := syntheticTable(t)
	arts, err := RunTable(tb, testOptions())
	require.NoError(t, err)

	require.NotNil(t, arts.PCA)
	assert.Equal(t, 2, arts.PCA.Components)
	assert.Len(t, arts.PCA.Coords, tb.Rows())
	assert.Greater(t, arts.PCA.Explained[0], 0.5, "one axis dominates well-separated groups")

	opts := testOptions()
	opts.PCAComponents = 0
	arts, err = RunTable(tb, opts)
	require.NoError(t, err)
	assert.Nil(t, arts.PCA, "projection is skipped when disabled")
}

func TestRunFromCSV(t *testing.T) {
	tb := syntheticTable(t)
	path := filepath.Join(t.TempDir(), "countries.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.Write(append([]string{dataset.CountryColumn}, dataset.Features...)))
	for i := 0; i < tb.Rows(); i++ {
		rec := []string{tb.Country(i)}
		for _, feat := range dataset.Features {
			v, err := tb.Value(feat, i)
			require.NoError(t, err)
			rec = append(rec, strconv.FormatFloat(v, 'f', -1, 64))
		}
		require.NoError(t, w.Write(rec))
	}
	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, f.Close())

	opts := testOptions()
	opts.DataPath = path
	arts, err := Run(opts)
	require.NoError(t, err)
	assert.Equal(t, tb.Rows(), arts.Raw.Rows())
}

func TestArtifactsSave(t *testing.T) {
	tb := syntheticTable(t)
	arts, err := RunTable(tb, testOptions())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "models")
	require.NoError(t, arts.Save(dir))

	for _, name := range []string{ScalerFile, KMeansFile, ResultsFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "missing artifact %s", name)
	}

	f, err := os.Open(filepath.Join(dir, ResultsFile))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, tb.Rows()+1)
	header := records[0]
	assert.Equal(t, dataset.CountryColumn, header[0])
	assert.Contains(t, header, "kmeans_cluster")
	assert.Contains(t, header, "hierarchical_cluster")
	assert.Contains(t, header, "dbscan_cluster")

	loaded, err := preprocess.LoadScaler(filepath.Join(dir, ScalerFile))
	require.NoError(t, err)
	assert.Equal(t, arts.Scaler.Mean, loaded.Mean)
}
