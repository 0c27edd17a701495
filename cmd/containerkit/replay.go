package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/containerkit/internal/replay"
	"go.llib.dev/containerkit/pkg/dynarray"
)

const ErrInvalidInitial errorkit.Error = "ErrInvalidInitial"

const kindAll = "all"

type ReplayCommand struct {
	Kind    string `flag:"kind" default:"all" enum:"array,linked,all," desc:"container kind to replay against"`
	Initial string `flag:"initial" desc:"comma separated values loaded before the first operation"`

	Logger       *logging.Logger
	ArrayOptions []dynarray.Option
}

func (cmd ReplayCommand) Summary() string {
	return "replay operations against the containers and a reference model"
}

func (cmd ReplayCommand) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	ctx := withRunID(r.Context())
	ops, err := replay.ParseOps(r.Args)
	if err != nil {
		badRequest(w, err)
		return
	}
	initial, err := parseInitial(cmd.Initial)
	if err != nil {
		badRequest(w, err)
		return
	}
	runner := replay.Runner{Logger: loggerOrDiscard(cmd.Logger)}
	for _, kind := range kindsOf(cmd.Kind) {
		subject, err := replay.Make(kind, cmd.ArrayOptions...)
		if err != nil {
			handleError(w, err)
			return
		}
		subject.Append(initial...)
		res, err := runner.Run(ctx, subject, ops)
		if err != nil {
			runner.Logger.Error(ctx, "replay diverged", logging.Field("kind", kind), logging.ErrField(err))
			handleError(w, err)
			return
		}
		runner.Logger.Info(ctx, "replay finished",
			logging.Field("kind", kind),
			logging.Field("ops", len(ops)),
			logging.Field("rejected", res.Rejected))
		fmt.Fprintf(w, "%s: %v (rejected: %d)\n", kind, res.Values, res.Rejected)
	}
}

func parseInitial(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var vs []int
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, ErrInvalidInitial.F("%q", part)
		}
		vs = append(vs, v)
	}
	return vs, nil
}

func kindsOf(kind string) []string {
	if kind == kindAll || kind == "" {
		return replay.Kinds
	}
	return []string{kind}
}

// withRunID tags every log entry of a command invocation with a shared run id.
func withRunID(ctx context.Context) context.Context {
	return logging.ContextWith(ctx, logging.Field("run_id", uuid.NewString()))
}

func loggerOrDiscard(l *logging.Logger) *logging.Logger {
	if l != nil {
		return l
	}
	return &logging.Logger{Out: io.Discard}
}

func handleError(w cli.ResponseWriter, err error) {
	w.ExitCode(cli.ExitCodeError)
	fmt.Fprintln(w, err.Error())
}

func badRequest(w cli.ResponseWriter, err error) {
	w.ExitCode(cli.ExitCodeBadRequest)
	fmt.Fprintln(w, err.Error())
}
