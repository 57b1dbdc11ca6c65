package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable, e.g. LINREG_DATA_PATH.
const EnvPrefix = "LINREG"

// flagBindings maps viper keys (= YAML keys, and env var names once
// upper-cased and prefixed) to pflag names.
var flagBindings = map[string]string{
	"data_path":              "data",
	"model_path":             "model",
	"format":                 "format",
	"learning_rates":         "learning-rates",
	"convergence_thresholds": "convergence-thresholds",
	"iterations":             "iterations",
	"workers":                "workers",
	"metrics_path":           "metrics-file",
	"mysql_dsn":              "mysql-dsn",
	"mysql_table":            "mysql-table",
	"ntp_server":             "ntp-server",
	"log_level":              "v",
	"development":            "development",
}

// BindFlags defines the training flags on fs.
func BindFlags(fs *flag.FlagSet) {
	fs.String("data", "data.csv", "Path to the CSV dataset with km and price columns")
	fs.String("model", "model.json", "Path of the exported model")
	fs.String("format", "", "Model format: json or yaml (default: from the model file extension)")
	fs.StringSlice("learning-rates", formatFloats(DefaultLearningRates), "Learning rate candidates")
	fs.StringSlice("convergence-thresholds", formatFloats(DefaultConvergenceThresholds), "Convergence threshold candidates")
	fs.Int("iterations", 500, "Iteration budget of each gradient descent run")
	fs.Int("workers", 1, "Number of candidates evaluated concurrently")
	fs.String("metrics-file", "", "Write search metrics to this file in Prometheus text format")
	fs.String("mysql-dsn", "", "Also store the model in this MySQL database")
	fs.String("mysql-table", "", "MySQL table for the model parameters")
	fs.String("ntp-server", "", "NTP server used to timestamp stored models")
	fs.Int("v", 0, "Log verbosity")
	fs.Bool("development", false, "Human readable logs")
}

// Load builds the configuration with precedence flags > env > file > defaults
// and validates it. flagSet may be nil and file may be empty.
func Load(flagSet *flag.FlagSet, file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_path", "data.csv")
	v.SetDefault("model_path", "model.json")
	v.SetDefault("format", "")
	v.SetDefault("learning_rates", DefaultLearningRates)
	v.SetDefault("convergence_thresholds", DefaultConvergenceThresholds)
	v.SetDefault("iterations", 500)
	v.SetDefault("workers", 1)
	v.SetDefault("metrics_path", "")
	v.SetDefault("mysql_dsn", "")
	v.SetDefault("mysql_table", "")
	v.SetDefault("ntp_server", "")
	v.SetDefault("log_level", 0)
	v.SetDefault("development", false)

	if file != "" {
		m, err := readFile(file)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(m); err != nil {
			return nil, fmt.Errorf("config: merge %s: %w", file, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if flagSet != nil {
		for key, name := range flagBindings {
			if f := flagSet.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	m := map[string]any{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return m, nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	lrs, err := toFloats(v.Get("learning_rates"))
	if err != nil {
		return nil, fmt.Errorf("%w: learning_rates: %v", ErrInvalidConfig, err)
	}
	cts, err := toFloats(v.Get("convergence_thresholds"))
	if err != nil {
		return nil, fmt.Errorf("%w: convergence_thresholds: %v", ErrInvalidConfig, err)
	}
	return &Config{
		DataPath:              v.GetString("data_path"),
		ModelPath:             v.GetString("model_path"),
		Format:                strings.ToLower(v.GetString("format")),
		LearningRates:         lrs,
		ConvergenceThresholds: cts,
		Iterations:            v.GetInt("iterations"),
		Workers:               v.GetInt("workers"),
		MetricsPath:           v.GetString("metrics_path"),
		MySQLDSN:              v.GetString("mysql_dsn"),
		MySQLTable:            v.GetString("mysql_table"),
		NTPServer:             v.GetString("ntp_server"),
		LogLevel:              v.GetInt("log_level"),
		Development:           v.GetBool("development"),
	}, nil
}

// toFloats accepts the shapes a float list takes in viper: []float64 from
// defaults, []any from YAML, []string from pflag and a comma separated
// string from the environment.
func toFloats(raw any) ([]float64, error) {
	switch val := raw.(type) {
	case nil:
		return nil, nil
	case []float64:
		return append([]float64(nil), val...), nil
	case []string:
		return parseFloats(val)
	case string:
		val = strings.Trim(strings.TrimSpace(val), "[]")
		if val == "" {
			return nil, nil
		}
		return parseFloats(strings.Split(val, ","))
	case []any:
		out := make([]float64, 0, len(val))
		for _, item := range val {
			switch n := item.(type) {
			case float64:
				out = append(out, n)
			case int:
				out = append(out, float64(n))
			case string:
				f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
				if err != nil {
					return nil, err
				}
				out = append(out, f)
			default:
				return nil, fmt.Errorf("unsupported value %v (%T)", item, item)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported list %v (%T)", raw, raw)
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, 0, len(fields))
	for _, s := range fields {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func formatFloats(values []float64) []string {
	out := make([]string, len(values))
	for i, f := range values {
		out[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return out
}
