package config

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"strings"
)

// EnvPrefix prefixes environment variable overrides, e.g.
// TRAVERSALPLOT_OUTPUT_FORMAT=svg.
const EnvPrefix = "TRAVERSALPLOT"

type Config struct {
	Output  Output  `mapstructure:"output" validate:"required"`
	Chart   Chart   `mapstructure:"chart" validate:"required"`
	Summary Summary `mapstructure:"summary" validate:"required"`
	View    View    `mapstructure:"view" validate:"required"`
	Logging Logging `mapstructure:"logging" validate:"required"`
}

type Output struct {
	Format *string `mapstructure:"format" validate:"required,oneof=png svg pdf jpg jpeg tif tiff eps"`
}

type Chart struct {
	// Width and Height are in inches.
	Width  *float64 `mapstructure:"width" validate:"required,gt=0"`
	Height *float64 `mapstructure:"height" validate:"required,gt=0"`
	// BoxWidth is in x axis (worker count) units.
	BoxWidth *float64 `mapstructure:"boxWidth" validate:"required,gt=0"`
	Title    *string  `mapstructure:"title"`
}

type Summary struct {
	Enabled   *bool   `mapstructure:"enabled" validate:"required"`
	Collector *string `mapstructure:"collector" validate:"oneof=array tachymeter"`
	// Window is only used by the tachymeter collector.
	Window *int `mapstructure:"window" validate:"required,gt=0"`
	// Comparison is the KS-test confidence used to compare neighbouring
	// worker counts, or off.
	Comparison *string `mapstructure:"comparison" validate:"oneof=off p90 p95 p97.5 p99 p99.5 p99.9"`
}

type View struct {
	Driver *string `mapstructure:"driver" validate:"oneof=http command"`
	Addr   *string `mapstructure:"addr" validate:"required_if=Driver http"`
	// Command is run with the chart's temporary file path appended. It must
	// be non-empty when Driver is command.
	Command *string `mapstructure:"command"`
}

type Logging struct {
	Driver *string `mapstructure:"driver" validate:"oneof=noop stdout influxdb"`
	// InfluxDB must be fully set when Driver is influxdb.
	InfluxDB InfluxDB `mapstructure:"influxdb"`
}

type InfluxDB struct {
	Host   *string `mapstructure:"host"`
	Token  *string `mapstructure:"token"`
	Org    *string `mapstructure:"org"`
	Bucket *string `mapstructure:"bucket"`
}

// ValidationError lists every configuration value that failed validation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("encountered validation errors:\n\t%s", strings.Join(e.Problems, "\n\t"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Output.Format", "png")

	v.SetDefault("Chart.Width", 10)
	v.SetDefault("Chart.Height", 5)
	v.SetDefault("Chart.BoxWidth", 0.5)
	v.SetDefault("Chart.Title", "")

	v.SetDefault("Summary.Enabled", true)
	v.SetDefault("Summary.Collector", "array")
	v.SetDefault("Summary.Window", 10000)
	v.SetDefault("Summary.Comparison", "p95")

	v.SetDefault("View.Driver", "http")
	v.SetDefault("View.Addr", "127.0.0.1:0")
	v.SetDefault("View.Command", "xdg-open")

	v.SetDefault("Logging.Driver", "stdout")
	// Registered so that TRAVERSALPLOT_LOGGING_INFLUXDB_* variables are seen.
	v.SetDefault("Logging.InfluxDB.Host", "")
	v.SetDefault("Logging.InfluxDB.Token", "")
	v.SetDefault("Logging.InfluxDB.Org", "")
	v.SetDefault("Logging.InfluxDB.Bucket", "")
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"format":     "Output.Format",
	"log-driver": "Logging.Driver",
}

// ReadConfig layers, from lowest to highest precedence: defaults, the YAML
// file at path (skipped if path is empty), TRAVERSALPLOT_* environment
// variables and any flags in flags that were set on the command line.
func ReadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error when reading config file at %s: err = %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag --%s: err = %w", name, err)
				}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error occured while reading configuration: err = %w", err)
	}
	if err := Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// validateLogging requires every InfluxDB setting when the influxdb driver is
// selected. Tags on nested structs are not evaluated by the validator, so this
// runs at the struct level instead.
func validateLogging(sl validator.StructLevel) {
	logging := sl.Current().Interface().(Logging)
	if logging.Driver == nil || *logging.Driver != "influxdb" {
		return
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"Host", logging.InfluxDB.Host},
		{"Token", logging.InfluxDB.Token},
		{"Org", logging.InfluxDB.Org},
		{"Bucket", logging.InfluxDB.Bucket},
	}
	for _, f := range fields {
		if f.value == nil || *f.value == "" {
			sl.ReportError(f.value, "InfluxDB."+f.name, f.name, "required_if", "Driver influxdb")
		}
	}
}

func validateView(sl validator.StructLevel) {
	view := sl.Current().Interface().(View)
	if view.Driver == nil || *view.Driver != "command" {
		return
	}
	if view.Command == nil || strings.TrimSpace(*view.Command) == "" {
		sl.ReportError(view.Command, "Command", "Command", "required_if", "Driver command")
	}
}

// Validate checks config against its struct tags.
func Validate(config *Config) error {
	validate := validator.New()
	validate.RegisterStructValidation(validateLogging, Logging{})
	validate.RegisterStructValidation(validateView, View{})
	err := validate.Struct(config)
	if err == nil {
		return nil
	}

	var invalidErr *validator.InvalidValidationError
	if errors.As(err, &invalidErr) {
		return fmt.Errorf("unable to validate config: err = %w", err)
	}

	var problems []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		problems = append(problems, fieldErr.Error())
	}
	return &ValidationError{Problems: problems}
}
