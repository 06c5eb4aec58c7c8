package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ricky512227/MedshipmentTrackingTool/internal/pipeline"
	"github.com/Ricky512227/MedshipmentTrackingTool/internal/schedule"
	"github.com/Ricky512227/MedshipmentTrackingTool/internal/tracking"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"run", "schedule", "classify", "version"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "medship", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestScheduleCommand_Flags(t *testing.T) {
	flag := scheduleCmd.Flags().Lookup("at")
	require.NotNil(t, flag, "schedule command should have --at flag")
	assert.Equal(t, "", flag.DefValue)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		configPath = ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	out, err := execute(t, "classify", "Deliver", "item", "(Inb)")
	require.NoError(t, err)
	assert.Equal(t, "\"Deliver item (Inb)\": Delivered\n", out)

	out, err = execute(t, "classify", "deliver item (inb)")
	require.NoError(t, err)
	assert.Contains(t, out, "unclassified")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "medship dev\n", out)
}

func TestRunCommand_MissingConfig(t *testing.T) {
	_, err := execute(t, "run", "--config", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestExitCode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 0, exitCode(nil, &buf))
	assert.Empty(t, buf.String())

	buf.Reset()
	assert.Equal(t, 130, exitCode(eris.Wrap(context.Canceled, "pipeline: interrupted"), &buf))
	assert.Contains(t, buf.String(), "interrupted")

	buf.Reset()
	assert.Equal(t, 1, exitCode(eris.New("boom"), &buf))
	assert.Contains(t, buf.String(), "boom")
}

type fakeRunner struct {
	result *pipeline.RunResult
	err    error
}

func (f fakeRunner) Run(context.Context) (*pipeline.RunResult, error) {
	return f.result, f.err
}

func TestRunOnce_NoDataIsNotAnError(t *testing.T) {
	var out bytes.Buffer
	err := runOnce(context.Background(), fakeRunner{
		result: &pipeline.RunResult{Miscellaneous: []string{"T1"}},
		err:    pipeline.ErrNoData,
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No tracking data was successfully retrieved.")
}

func TestRunOnce_PrintsSummary(t *testing.T) {
	cats := tracking.NewCategoryMap()
	cats[tracking.Booked] = []int{1}

	var out bytes.Buffer
	err := runOnce(context.Background(), fakeRunner{
		result: &pipeline.RunResult{Records: make([]tracking.Record, 1), Categories: cats, ReportPath: "r.xlsx"},
	}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Booked: 1")
	assert.Contains(t, out.String(), "Report generated: r.xlsx")
}

func TestRunOnce_PropagatesError(t *testing.T) {
	err := runOnce(context.Background(), fakeRunner{err: eris.New("read input")}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
}

func TestRunAt_Fires(t *testing.T) {
	task := schedule.New()
	called := false

	err := runAt(context.Background(), task, time.Now().Add(10*time.Millisecond), func(context.Context) error {
		called = true
		return eris.New("run failed")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run failed")
	assert.True(t, called)
	assert.Equal(t, schedule.Fired, task.State())
}

func TestRunAt_InterruptedBeforeFiring(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := schedule.New()

	time.AfterFunc(10*time.Millisecond, cancel)
	err := runAt(ctx, task, time.Now().Add(time.Hour), func(context.Context) error {
		t.Error("fn must not run")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, schedule.Cancelled, task.State())
	assert.Equal(t, 130, exitCode(err, &bytes.Buffer{}))
}
