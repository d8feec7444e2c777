package config

import (
	"fmt"
	"os"

	"github.com/fxnlabs/densolver/fixtures"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logger struct {
		Verbosity string `yaml:"verbosity"`
		Format    string `yaml:"format"`
	} `yaml:"logger"`
	Bench struct {
		Function  string `yaml:"function"`
		Precision string `yaml:"precision"`
		Iters     int    `yaml:"iters"`
		Device    int    `yaml:"device"`
		M         int    `yaml:"m"`
		N         int    `yaml:"n"`
	} `yaml:"bench"`
	Metrics struct {
		Out string `yaml:"out"`
	} `yaml:"metrics"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var config Config
	if err := yaml.Unmarshal(fixtures.ConfigTemplate, &config); err != nil {
		panic(fmt.Sprintf("config: embedded template: %v", err))
	}
	return &config
}

// LoadConfig reads a yaml file on top of the defaults. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return config, nil
}
