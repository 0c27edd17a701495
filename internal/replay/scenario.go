package replay

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"go.llib.dev/frameless/pkg/errorkit"
	"gopkg.in/yaml.v3"

	"go.llib.dev/containerkit/port/seq"
)

const (
	ErrScenarioFailed errorkit.Error = "ErrScenarioFailed"
	ErrUnknownFormat  errorkit.Error = "ErrUnknownFormat"
)

// Scenario describes a replayable script with its expected outcome.
type Scenario struct {
	Name    string   `yaml:"name" toml:"name"`
	Initial []int    `yaml:"initial" toml:"initial"`
	Ops     []string `yaml:"ops" toml:"ops"`
	Expect  []int    `yaml:"expect" toml:"expect"`
}

type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios" toml:"scenarios"`
}

// LoadScenarioFile reads a scenario file, choosing the decoder by the file extension.
func LoadScenarioFile(path string) (_ []Scenario, returnErr error) {
	var load func(io.Reader) ([]Scenario, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		load = LoadScenarios
	case ".toml":
		load = LoadScenariosTOML
	default:
		return nil, ErrUnknownFormat.F("%q, expected .yaml, .yml or .toml", ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer errorkit.Finish(&returnErr, f.Close)
	return load(f)
}

// LoadScenarios decodes a YAML scenario file.
func LoadScenarios(r io.Reader) ([]Scenario, error) {
	var f scenarioFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return f.validate()
}

// LoadScenariosTOML decodes a TOML scenario file, where every scenario is a [[scenarios]] table.
func LoadScenariosTOML(r io.Reader) ([]Scenario, error) {
	var f scenarioFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, err
	}
	if keys := md.Undecoded(); 0 < len(keys) {
		return nil, ErrScenarioFailed.F("unknown fields: %v", keys)
	}
	return f.validate()
}

func (f scenarioFile) validate() ([]Scenario, error) {
	for i, sc := range f.Scenarios {
		if sc.Name == "" {
			return nil, ErrScenarioFailed.F("scenario #%d has no name", i)
		}
	}
	return f.Scenarios, nil
}

// Check fills the subject with the initial values, replays the operations and compares the outcome with Expect.
func (sc Scenario) Check(ctx context.Context, r Runner, subject seq.Sequence[int]) (Result, error) {
	ops, err := ParseOps(sc.Ops)
	if err != nil {
		return Result{}, ErrScenarioFailed.Wrap(err)
	}
	subject.Reset()
	subject.Append(sc.Initial...)
	res, err := r.Run(ctx, subject, ops)
	if err != nil {
		return res, ErrScenarioFailed.Wrap(err)
	}
	if !slices.Equal(sc.Expect, res.Values) {
		return res, ErrScenarioFailed.F("%s: expected %v, got %v", sc.Name, sc.Expect, res.Values)
	}
	return res, nil
}
