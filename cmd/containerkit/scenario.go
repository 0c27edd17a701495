package main

import (
	"fmt"

	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/containerkit/internal/replay"
	"go.llib.dev/containerkit/pkg/dynarray"
)

type ScenarioCommand struct {
	File string `flag:"file" required:"true" desc:"path to a .yaml or .toml scenario file"`
	Kind string `flag:"kind" default:"all" enum:"array,linked,all," desc:"container kind to check"`

	Logger       *logging.Logger
	ArrayOptions []dynarray.Option
}

func (cmd ScenarioCommand) Summary() string {
	return "check the scenarios of a YAML or TOML file against the containers"
}

func (cmd ScenarioCommand) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	ctx := withRunID(r.Context())
	logger := loggerOrDiscard(cmd.Logger)

	scenarios, err := replay.LoadScenarioFile(cmd.File)
	if err != nil {
		handleError(w, err)
		return
	}

	var (
		runner = replay.Runner{Logger: logger}
		failed int
	)
	for _, kind := range kindsOf(cmd.Kind) {
		for _, sc := range scenarios {
			subject, err := replay.Make(kind, cmd.ArrayOptions...)
			if err != nil {
				handleError(w, err)
				return
			}
			if _, err := sc.Check(ctx, runner, subject); err != nil {
				failed++
				logger.Warn(ctx, "scenario failed",
					logging.Field("kind", kind),
					logging.Field("scenario", sc.Name),
					logging.ErrField(err))
				fmt.Fprintf(w, "FAIL %s/%s: %s\n", kind, sc.Name, err.Error())
				continue
			}
			fmt.Fprintf(w, "ok   %s/%s\n", kind, sc.Name)
		}
	}

	logger.Info(ctx, "scenarios checked",
		logging.Field("file", cmd.File),
		logging.Field("scenarios", len(scenarios)),
		logging.Field("failed", failed))

	if 0 < failed {
		w.ExitCode(cli.ExitCodeError)
	}
}
