// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

package reach

import (
	"context"
	"runtime"
	"strconv"

	"github.com/sharedco/decom/internal/command"
)

// Pinger probes a host and returns the probe's textual output. An error means
// the host did not answer.
type Pinger interface {
	Ping(ctx context.Context, host string) (string, error)
}

// ExecPinger shells out to the system ping utility.
type ExecPinger struct {
	runner command.Runner
	binary string
	count  int
	goos   string
}

func NewExecPinger(runner command.Runner, binary string, count int) *ExecPinger {
	return &ExecPinger{
		runner: runner,
		binary: binary,
		count:  count,
		goos:   runtime.GOOS,
	}
}

func (p *ExecPinger) Ping(ctx context.Context, host string) (string, error) {
	res, err := p.runner.Run(ctx, p.binary, pingArgs(p.goos, p.count, host)...)
	return res.Stdout, err
}

// pingArgs builds the echo-count flag the host OS's ping understands.
func pingArgs(goos string, count int, host string) []string {
	flag := "-c"
	if goos == "windows" {
		flag = "-n"
	}
	return []string{flag, strconv.Itoa(count), host}
}
