// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharedco/decom/internal/command"
	"github.com/sharedco/decom/internal/reach"
	"github.com/sharedco/decom/internal/session"
)

type call struct {
	name string
	args []string
}

// scriptedRunner stands in for the heroku and ping binaries.
type scriptedRunner struct {
	calls      []call
	authErr    error
	pingErr    error
	pingOutput string
	destroyErr error
}

func (r *scriptedRunner) Run(_ context.Context, name string, args ...string) (command.Result, error) {
	r.calls = append(r.calls, call{name: name, args: args})

	switch {
	case name == "heroku" && len(args) > 0 && args[0] == "auth:whoami":
		if r.authErr != nil {
			return command.Result{ExitCode: 100}, r.authErr
		}
		return command.Result{Stdout: "ops@example.com\n"}, nil
	case name == "heroku" && len(args) > 0 && args[0] == "apps:destroy":
		return command.Result{}, r.destroyErr
	case name == "ping":
		return command.Result{Stdout: r.pingOutput}, r.pingErr
	}
	return command.Result{ExitCode: 127}, errors.New("unexpected command " + name)
}

func (r *scriptedRunner) called(name, sub string) []call {
	var out []call
	for _, c := range r.calls {
		if c.name == name && (sub == "" || (len(c.args) > 0 && c.args[0] == sub)) {
			out = append(out, c)
		}
	}
	return out
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func statusTransport(status int) roundTripperFunc {
	return func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Server": []string{"Kestrel"}},
			Body:       io.NopCloser(strings.NewReader("")),
			Request:    r,
		}, nil
	}
}

type testEnv struct {
	runner  *scriptedRunner
	stdout  *bytes.Buffer
	home    string
	metrics string
	missing map[string]bool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("DECOM_HOME", home)
	t.Setenv("HEROKU_BIN", "heroku")
	t.Setenv("DECOM_PING_BIN", "ping")

	return &testEnv{
		runner:  &scriptedRunner{pingOutput: "PING myapp.azurewebsites.net (20.1.2.3): 56 data bytes\n"},
		stdout:  &bytes.Buffer{},
		home:    home,
		metrics: filepath.Join(home, "metrics", "decom.prom"),
	}
}

func (e *testEnv) run(stdin string, transport http.RoundTripper, args ...string) error {
	cmd := NewRootCmd(Env{
		Stdin:     strings.NewReader(stdin),
		Stdout:    e.stdout,
		Runner:    e.runner,
		Transport: transport,
		LookPath: func(name string) (string, error) {
			if e.missing[name] {
				return "", errors.New("executable file not found in $PATH")
			}
			return "/usr/bin/" + name, nil
		},
	})
	base := []string{
		"--env-file=",
		"--log-file=" + filepath.Join(e.home, "decom.log"),
		"--metrics-file=" + e.metrics,
	}
	cmd.SetArgs(append(base, args...))
	return cmd.Execute()
}

func TestSweepDeletesAfterAllGates(t *testing.T) {
	env := newTestEnv(t)

	err := env.run("no\nyes\nmyapp.botics.co\nyes\nno\n", statusTransport(http.StatusOK))
	require.NoError(t, err)
	assert.Equal(t, 0, ExitCode(err))

	destroys := env.runner.called("heroku", "apps:destroy")
	require.Len(t, destroys, 1)
	assert.Equal(t, []string{"apps:destroy", "--app", "myapp", "--confirm", "myapp"}, destroys[0].args)

	pings := env.runner.called("ping", "")
	require.Len(t, pings, 1)
	assert.Equal(t, "myapp.botics.co", pings[0].args[len(pings[0].args)-1])
	assert.Equal(t, "4", pings[0].args[1])

	out := env.stdout.String()
	assert.Contains(t, out, "DNS: myapp.botics.co resolves through Azure.")
	assert.Contains(t, out, "Response status code: 200")
	assert.Contains(t, out, "Session summary: 1 app(s) processed (deleted=1)")
	assert.Contains(t, out, "Deleted: myapp")

	data, err := os.ReadFile(env.metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `decom_apps_processed_total{outcome="deleted"} 1`)
	assert.Contains(t, string(data), `decom_reach_verdicts_total{verdict="destination"} 1`)

	logData, err := os.ReadFile(filepath.Join(env.home, "decom.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "session=")
	assert.Contains(t, string(logData), "outcome=deleted")
}

func TestSweepAuthFailureExitsOne(t *testing.T) {
	env := newTestEnv(t)
	env.runner.authErr = &command.ExitError{Name: "heroku", ExitCode: 100, Stderr: "Invalid credentials provided."}

	err := env.run("no\nyes\nmyapp.botics.co\nyes\nno\n", statusTransport(http.StatusOK))
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))

	out := env.stdout.String()
	assert.Contains(t, out, "Not authenticated with Heroku CLI")
	assert.NotContains(t, out, "custom domain")
	assert.Empty(t, env.runner.called("ping", ""))
	assert.Empty(t, env.runner.called("heroku", "apps:destroy"))
}

func TestSweepCustomDomainGoesStraightToNextApp(t *testing.T) {
	env := newTestEnv(t)

	err := env.run("yes\nno\n", statusTransport(http.StatusOK))
	require.NoError(t, err)

	out := env.stdout.String()
	assert.Contains(t, out, "Custom domain detected.")
	assert.Contains(t, out, "Process another app?")
	assert.NotContains(t, out, "migrated to Azure")
	assert.Empty(t, env.runner.called("ping", ""))
	assert.Empty(t, env.runner.called("heroku", "apps:destroy"))
}

func TestSweepUnreachableExitsZero(t *testing.T) {
	env := newTestEnv(t)

	err := env.run("no\nyes\nmyapp.botics.co\nno\n", statusTransport(http.StatusServiceUnavailable))
	require.NoError(t, err)

	assert.Contains(t, env.stdout.String(), "App is not reachable.")
	assert.Empty(t, env.runner.called("heroku", "apps:destroy"))
}

func TestSweepRefusesConcurrentSession(t *testing.T) {
	env := newTestEnv(t)

	lock, err := session.Acquire(filepath.Join(env.home, "session.lock"))
	require.NoError(t, err)
	defer lock.Release()

	err = env.run("no\n", statusTransport(http.StatusOK))
	require.ErrorIs(t, err, session.ErrLocked)
	assert.Equal(t, 1, ExitCode(err))
	assert.Empty(t, env.runner.calls)
}

func TestSweepRejectsBadConfig(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("DECOM_PING_COUNT", "0")

	err := env.run("", statusTransport(http.StatusOK))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping count")
	assert.Empty(t, env.runner.calls)
}

func TestCheckCommand(t *testing.T) {
	env := newTestEnv(t)

	err := env.run("", statusTransport(http.StatusOK), "check", "https://myapp.botics.co/health")
	require.NoError(t, err)
	assert.Contains(t, env.stdout.String(), "Available: yes")
	assert.Empty(t, env.runner.called("heroku", ""))
}

func TestCheckCommandUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.runner.pingErr = &command.ExitError{Name: "ping", ExitCode: 68, Stderr: "cannot resolve gone.botics.co"}

	err := env.run("", statusTransport(http.StatusOK), "check", "gone.botics.co")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))

	out := env.stdout.String()
	assert.Contains(t, out, "Ping failed")
	assert.Contains(t, out, "Available: no")
	assert.NotContains(t, out, "Checking HTTP response")
}

func TestDoctorCommand(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", nil, "doctor"))
	out := env.stdout.String()
	assert.Contains(t, out, "/usr/bin/heroku")
	assert.Contains(t, out, "ops@example.com")
	assert.Contains(t, out, "All checks passed")
}

func TestDoctorCommandReportsFailures(t *testing.T) {
	env := newTestEnv(t)
	env.runner.authErr = errors.New("not logged in")

	err := env.run("", nil, "doctor")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, env.stdout.String(), "1 check(s) failed")
}

func TestDoctorSkipsLoginWhenPlatformCLIMissing(t *testing.T) {
	env := newTestEnv(t)
	env.missing = map[string]bool{"heroku": true}

	err := env.run("", nil, "doctor")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))

	out := env.stdout.String()
	assert.Contains(t, out, "Checking Heroku login... skipped, Heroku CLI not found")
	assert.Contains(t, out, "1 check(s) failed")
	assert.Empty(t, env.runner.called("heroku", "auth:whoami"))
}

func TestSweepRejectsHostWithUserInfo(t *testing.T) {
	env := newTestEnv(t)

	err := env.run("no\nyes\nvictim.botics.co@live.botics.co\nno\n", statusTransport(http.StatusOK))
	require.NoError(t, err)

	out := env.stdout.String()
	assert.Contains(t, out, "user info. Skipping deletion for this app.")
	assert.Contains(t, out, "(invalid-hostname=1)")
	assert.Empty(t, env.runner.called("ping", ""))
	assert.Empty(t, env.runner.called("heroku", "apps:destroy"))
}

func TestSweepProbesAndDeletesSameHost(t *testing.T) {
	env := newTestEnv(t)
	var requested []string
	transport := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		requested = append(requested, r.URL.Host)
		return statusTransport(http.StatusOK)(r)
	})

	err := env.run("no\nyes\nhttps://myapp.botics.co/health\nyes\nno\n", transport)
	require.NoError(t, err)

	pings := env.runner.called("ping", "")
	require.Len(t, pings, 1)
	assert.Equal(t, "myapp.botics.co", pings[0].args[len(pings[0].args)-1])
	assert.Equal(t, []string{"myapp.botics.co"}, requested)

	destroys := env.runner.called("heroku", "apps:destroy")
	require.Len(t, destroys, 1)
	assert.Equal(t, []string{"apps:destroy", "--app", "myapp", "--confirm", "myapp"}, destroys[0].args)
}

func TestCheckCommandRejectsInvalidTarget(t *testing.T) {
	env := newTestEnv(t)

	err := env.run("", statusTransport(http.StatusOK), "check", "ops@myapp.botics.co")
	require.ErrorIs(t, err, reach.ErrInvalidTarget)
	assert.Equal(t, 1, ExitCode(err))
	assert.Empty(t, env.runner.called("ping", ""))
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", nil, "version"))
	assert.True(t, strings.HasPrefix(env.stdout.String(), "decom "))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 3, ExitCode(&ExitError{Code: 3}))
	assert.Equal(t, "exit status 3", (&ExitError{Code: 3}).Error())
}
