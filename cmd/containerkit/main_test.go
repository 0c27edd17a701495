package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/containerkit/pkg/dynarray"
)

const scenarioFile = "../../testdata/scenarios.yaml"

func serve(tb testing.TB, args ...string) *cli.ResponseRecorder {
	tb.Helper()
	logger, _ := logging.Stub(tb)
	conf := Config{LogLevel: logging.LevelDebug}
	conf.Array.Init()
	var w cli.ResponseRecorder
	NewMux(conf, logger).ServeCLI(&w, &cli.Request{Args: args})
	return &w
}

func TestReplayCommand(t *testing.T) {
	t.Run("all kinds", func(t *testing.T) {
		w := serve(t, "replay", "--initial", "1,2,3", "push_front:0", "erase:3", "insert:1:9", "erase:10")
		assert.Equal(t, cli.ExitCodeOK, w.Code)
		assert.Contains(t, w.Out.String(), "array: [0 9 1 2] (rejected: 1)")
		assert.Contains(t, w.Out.String(), "linked: [0 9 1 2] (rejected: 1)")
	})

	t.Run("single kind", func(t *testing.T) {
		w := serve(t, "replay", "--kind", "linked", "push_back:1")
		assert.Equal(t, cli.ExitCodeOK, w.Code)
		assert.Contains(t, w.Out.String(), "linked: [1]")
		assert.NotContains(t, w.Out.String(), "array:")
	})

	t.Run("malformed op", func(t *testing.T) {
		w := serve(t, "replay", "push_back")
		assert.Equal(t, cli.ExitCodeBadRequest, w.Code)
	})

	t.Run("malformed initial", func(t *testing.T) {
		w := serve(t, "replay", "--initial", "1,x")
		assert.Equal(t, cli.ExitCodeBadRequest, w.Code)
	})

	t.Run("unknown kind", func(t *testing.T) {
		w := serve(t, "replay", "--kind", "tree", "push_back:1")
		assert.Equal(t, cli.ExitCodeBadRequest, w.Code)
	})
}

func TestReplayCommand_logsRunID(t *testing.T) {
	logger, out := logging.Stub(t)
	logger.Level = logging.LevelInfo
	var w cli.ResponseRecorder
	ReplayCommand{Kind: "array", Logger: logger}.ServeCLI(&w, &cli.Request{Args: []string{"push_back:1"}})
	assert.Equal(t, cli.ExitCodeOK, w.Code)
	assert.Contains(t, out.String(), "replay finished")
	assert.Contains(t, out.String(), "run_id")
}

func TestReplayCommand_withoutLogger(t *testing.T) {
	var w cli.ResponseRecorder
	cli.ServeCLI(ReplayCommand{}, &w, &cli.Request{Args: []string{"push_back:1", "push_back:2"}})
	assert.Equal(t, cli.ExitCodeOK, w.Code)
	assert.Contains(t, w.Out.String(), "array: [1 2]")
}

func TestScenarioCommand(t *testing.T) {
	t.Run("passing scenarios", func(t *testing.T) {
		w := serve(t, "scenario", "--file", scenarioFile)
		assert.Equal(t, cli.ExitCodeOK, w.Code)
		assert.Contains(t, w.Out.String(), "ok   array/push front")
		assert.Contains(t, w.Out.String(), "ok   linked/push front")
		assert.NotContains(t, w.Out.String(), "FAIL")
	})

	t.Run("toml scenarios", func(t *testing.T) {
		w := serve(t, "scenario", "--kind", "linked", "--file", "../../testdata/scenarios.toml")
		assert.Equal(t, cli.ExitCodeOK, w.Code)
		assert.Contains(t, w.Out.String(), "ok   linked/push front and back")
	})

	t.Run("unsupported file format", func(t *testing.T) {
		w := serve(t, "scenario", "--file", "../../testdata/scenarios.json")
		assert.Equal(t, cli.ExitCodeError, w.Code)
	})

	t.Run("failing scenario", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "failing.yaml")
		assert.NoError(t, os.WriteFile(path, []byte(`
scenarios:
  - name: wrong expectation
    initial: [1]
    ops: ["push_back:2"]
    expect: [2, 1]
`), 0o600))

		w := serve(t, "scenario", "--kind", "array", "--file", path)
		assert.Equal(t, cli.ExitCodeError, w.Code)
		assert.Contains(t, w.Out.String(), "FAIL array/wrong expectation")
	})

	t.Run("missing file", func(t *testing.T) {
		w := serve(t, "scenario", "--file", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Equal(t, cli.ExitCodeError, w.Code)
	})

	t.Run("file flag is required", func(t *testing.T) {
		w := serve(t, "scenario")
		assert.Equal(t, cli.ExitCodeBadRequest, w.Code)
	})
}

func TestLoadConfig(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("defaults", func(t *testcase.T) {
		testcase.UnsetEnv(t, "CONTAINERKIT_LOG_LEVEL")
		testcase.UnsetEnv(t, "CONTAINERKIT_ARRAY_GROWTH_FACTOR")

		conf, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, logging.LevelInfo, conf.LogLevel)
		assert.Equal(t, dynarray.DefaultGrowthFactor, conf.Array.GrowthFactor)
	})

	s.Test("from environment", func(t *testcase.T) {
		testcase.SetEnv(t, "CONTAINERKIT_LOG_LEVEL", "debug")
		testcase.SetEnv(t, "CONTAINERKIT_ARRAY_GROWTH_FACTOR", "3")

		conf, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, logging.LevelDebug, conf.LogLevel)
		assert.Equal(t, 3, conf.Array.GrowthFactor)
	})

	s.Test("invalid level", func(t *testcase.T) {
		testcase.SetEnv(t, "CONTAINERKIT_LOG_LEVEL", "verbose")

		_, err := LoadConfig()
		assert.ErrorIs(t, err, ErrInvalidLogLevel)
	})
}
