package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/mgbalog"
)

// Scenario describes one replay run: the host's disposition and the records
// to emit through the transport.
type Scenario struct {
	// HostAbsent runs the scenario against a console that never
	// acknowledges the enable handshake, exercising the degraded paths.
	HostAbsent bool `yaml:"host_absent"`

	// SerializeRecords enables the strict interrupt discipline around
	// every record emission.
	SerializeRecords bool `yaml:"serialize_records"`

	Emit []Emission `yaml:"emit"`
}

// Emission is one logging call to replay.
type Emission struct {
	Level   string `yaml:"level"`
	Message string `yaml:"message"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, errors.Wrap(err, "parse scenario")
	}
	return &s, nil
}

// Validate checks scenario correctness. It does not mutate the scenario.
func Validate(s *Scenario) error {
	if len(s.Emit) == 0 {
		return fmt.Errorf("scenario has no emissions")
	}
	for i, e := range s.Emit {
		if _, err := mgbalog.ParseLevel(e.Level); err != nil {
			return fmt.Errorf("emit[%d]: %v", i, err)
		}
	}
	return nil
}
