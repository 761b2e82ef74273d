package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure. Defaults mirror the production analysis
// parameters; a config file or AIDCLUSTER_* env vars override them.
type Global struct {
	DataPath  string `mapstructure:"data_path" yaml:"data_path"`
	ModelsDir string `mapstructure:"models_dir" yaml:"models_dir"`

	OutlierColumns []string `mapstructure:"outlier_columns" yaml:"outlier_columns"`
	IQRMultiplier  float64  `mapstructure:"iqr_multiplier" yaml:"iqr_multiplier"`

	KMeansK        int   `mapstructure:"kmeans_k" yaml:"kmeans_k"`
	KMeansMaxIter  int   `mapstructure:"kmeans_max_iter" yaml:"kmeans_max_iter"`
	KMeansRestarts int   `mapstructure:"kmeans_restarts" yaml:"kmeans_restarts"`
	KMeansSeed     int64 `mapstructure:"kmeans_seed" yaml:"kmeans_seed"`
	SweepMaxK      int   `mapstructure:"sweep_max_k" yaml:"sweep_max_k"`

	HierarchicalK int `mapstructure:"hierarchical_k" yaml:"hierarchical_k"`

	DBSCANEps        float64 `mapstructure:"dbscan_eps" yaml:"dbscan_eps"`
	DBSCANMinSamples int     `mapstructure:"dbscan_min_samples" yaml:"dbscan_min_samples"`

	PCAComponents int     `mapstructure:"pca_components" yaml:"pca_components"`
	Alpha         float64 `mapstructure:"alpha" yaml:"alpha"`

	APIHost string `mapstructure:"api_host" yaml:"api_host"`
	APIPort int    `mapstructure:"api_port" yaml:"api_port"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.aidcluster/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".aidcluster")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("AIDCLUSTER")
	v.AutomaticEnv()

	v.SetDefault("data_path", "data/countries.csv")
	v.SetDefault("models_dir", "models")
	v.SetDefault("outlier_columns", []string{"child_mort", "income", "gdpp"})
	v.SetDefault("iqr_multiplier", 1.5)
	v.SetDefault("kmeans_k", 3)
	v.SetDefault("kmeans_max_iter", 300)
	v.SetDefault("kmeans_restarts", 10)
	v.SetDefault("kmeans_seed", 42)
	v.SetDefault("sweep_max_k", 10)
	v.SetDefault("hierarchical_k", 3)
	v.SetDefault("dbscan_eps", 1.5)
	v.SetDefault("dbscan_min_samples", 3)
	v.SetDefault("pca_components", 2)
	v.SetDefault("alpha", 0.05)
	v.SetDefault("api_host", "0.0.0.0")
	v.SetDefault("api_port", 5000)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".aidcluster")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
