package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"alcyxob/workout-analytics/internal/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const workoutsJSON = `[
  {"id": "65f000000000000000000001", "userId": "65f0000000000000000000aa", "name": "Push",
   "startedAt": "2024-03-14T17:00:00Z", "completedAt": "2024-03-14T18:00:00Z", "durationSeconds": 3600,
   "exercises": [{"exerciseId": "65f0000000000000000000e1", "sets": [{"weight": 100, "reps": 10}]}]},
  {"id": "65f000000000000000000002", "userId": "65f0000000000000000000aa", "name": "Legacy push",
   "startedAt": 1710349200, "completedAt": 1710352800, "durationSeconds": 3000,
   "exercises": [{"exerciseId": "65f0000000000000000000e1", "sets": [{"weight": 50, "reps": 20}]}]},
  {"id": "65f000000000000000000003", "userId": "65f0000000000000000000aa", "name": "Broken",
   "startedAt": "garbage", "completedAt": "garbage",
   "exercises": [{"exerciseId": "65f0000000000000000000e1", "sets": [{"weight": 10, "reps": 10}]}]}
]`

const exercisesJSON = `[
  {"id": "65f0000000000000000000e1", "ownerId": "65f0000000000000000000aa", "name": "Bench Press",
   "primaryMuscleGroup": "chest", "secondaryMuscleGroups": ["triceps"]}
]`

const scheduleJSON = `[
  {"id": "65f0000000000000000000d1", "userId": "65f0000000000000000000aa", "date": "2024-03-14",
   "templateId": "65f0000000000000000000c1", "completed": false}
]`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func fixtureArgs(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	return []string{
		"dashboard",
		"--workouts", writeFixture(t, dir, "workouts.json", workoutsJSON),
		"--exercises", writeFixture(t, dir, "exercises.json", exercisesJSON),
		"--schedule", writeFixture(t, dir, "schedule.json", scheduleJSON),
		"--now", "2024-03-15T12:00:00Z",
		"--period", "last7Days",
	}
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "analyticsctl", cmd.Use)

	dashboardCmd, _, err := cmd.Find([]string{"dashboard"})
	require.NoError(t, err)
	for _, name := range []string{"workouts", "schedule", "exercises", "period", "now", "tz", "week-start"} {
		assert.NotNil(t, dashboardCmd.Flags().Lookup(name), name)
	}
	output := cmd.PersistentFlags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "json", output.DefValue)
}

func TestDashboardCommand_JSON(t *testing.T) {
	out, err := runCLI(t, fixtureArgs(t)...)
	require.NoError(t, err)

	var dashboard analytics.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &dashboard))
	assert.Equal(t, analytics.PeriodLast7Days, dashboard.Period)
	assert.Equal(t, 2000.0, dashboard.Volume.Total)
	assert.Equal(t, 1, dashboard.Volume.Skipped)
	require.NotEmpty(t, dashboard.Muscles.Groups)
	assert.Equal(t, "chest", dashboard.Muscles.Groups[0].Group)
	assert.Equal(t, 2, dashboard.Duration.Count)
	assert.Equal(t, 1, dashboard.Adherence.Overall.Completed)
	assert.Len(t, dashboard.Heatmap.Cells, analytics.HeatmapCells)
}

func TestDashboardCommand_YAML(t *testing.T) {
	out, err := runCLI(t, append(fixtureArgs(t), "--output", "yaml")...)
	require.NoError(t, err)
	assert.Contains(t, out, "period: last7Days")

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	volume, ok := doc["volume"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 2000, volume["total"])
}

func TestDashboardCommand_Errors(t *testing.T) {
	_, err := runCLI(t, "dashboard", "--now", "2024-03-15T12:00:00Z")
	assert.Error(t, err)

	_, err = runCLI(t, append(fixtureArgs(t), "--period", "fortnight")...)
	assert.ErrorIs(t, err, analytics.ErrInvalidPeriod)

	_, err = runCLI(t, append(fixtureArgs(t), "--week-start", "someday")...)
	assert.ErrorIs(t, err, analytics.ErrInvalidWeekStart)

	_, err = runCLI(t, append(fixtureArgs(t), "--tz", "Mars/Olympus")...)
	assert.Error(t, err)

	_, err = runCLI(t, append(fixtureArgs(t), "--output", "xml")...)
	assert.Error(t, err)
}
