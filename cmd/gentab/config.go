package main

import (
	"os"

	"github.com/calebcase/oops"
	"gopkg.in/yaml.v3"
)

// Config lists the tables to emit in one run.
//
//	package: tables
//	output: sine_tables.go
//	tables:
//	  - name: q16
//	    intbits: 4
//	    fracbits: 12
type Config struct {
	Package string   `yaml:"package"`
	Output  string   `yaml:"output"`
	Tables  []Format `yaml:"tables"`
}

// LoadConfig reads a Config from a yaml file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, oops.Trace(Error.Wrap(err))
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, oops.Trace(Error.Wrap(err))
	}

	return &config, nil
}
