package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"alcyxob/workout-analytics/internal/analytics"
	"alcyxob/workout-analytics/internal/domain"

	"github.com/spf13/cobra"
)

// DashboardOptions holds the flags of the dashboard command.
type DashboardOptions struct {
	WorkoutsFile  string
	ScheduleFile  string
	ExercisesFile string
	Period        string
	Granularity   string
	Now           string
	Timezone      string
	WeekStart     string
	LookbackWeeks int
	HorizonDays   int
	MaxRestDays   int
	StreakType    string
}

// NewDashboardCommand creates the dashboard command.
func NewDashboardCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DashboardOptions{}

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Compute every analytics view for one period",
		Long: `Compute volume trend, muscle distribution, duration stats, progressive overload,
adherence and the activity heatmap from JSON exports of workouts, schedule and exercises.

All dates are evaluated in --tz relative to --now, so output is reproducible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := opts.input()
			if err != nil {
				return err
			}
			dashboard, err := analytics.BuildDashboard(in)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), rootOpts.Output, dashboard)
		},
	}

	cmd.Flags().StringVar(&opts.WorkoutsFile, "workouts", "", "JSON array of workout records (required)")
	cmd.Flags().StringVar(&opts.ScheduleFile, "schedule", "", "JSON array of schedule days")
	cmd.Flags().StringVar(&opts.ExercisesFile, "exercises", "", "JSON array of exercise definitions")
	cmd.Flags().StringVar(&opts.Period, "period", string(analytics.PeriodLast30Days), "period identifier")
	cmd.Flags().StringVar(&opts.Granularity, "granularity", string(analytics.GranularityDay), "volume trend granularity (day|week)")
	cmd.Flags().StringVar(&opts.Now, "now", "", "evaluation instant, RFC3339 (default current time)")
	cmd.Flags().StringVar(&opts.Timezone, "tz", "UTC", "IANA time zone of the user")
	cmd.Flags().StringVar(&opts.WeekStart, "week-start", "monday", "first day of the week")
	cmd.Flags().IntVar(&opts.LookbackWeeks, "lookback-weeks", analytics.DefaultLookbackWeeks, "adherence lookback in weeks")
	cmd.Flags().IntVar(&opts.HorizonDays, "horizon-days", analytics.DefaultHorizonDays, "planned days shown after today")
	cmd.Flags().IntVar(&opts.MaxRestDays, "max-rest-days", 0, "missed planned days per week that keep a streak alive")
	cmd.Flags().StringVar(&opts.StreakType, "streak-type", string(domain.StreakDaily), "streak unit (daily|weekly)")
	_ = cmd.MarkFlagRequired("workouts")

	return cmd
}

// input validates the flags and loads the files.
func (o *DashboardOptions) input() (analytics.DashboardInput, error) {
	var in analytics.DashboardInput

	period, err := analytics.ParsePeriod(o.Period)
	if err != nil {
		return in, err
	}
	granularity, err := analytics.ParseGranularity(o.Granularity)
	if err != nil {
		return in, err
	}
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return in, fmt.Errorf("invalid --tz: %w", err)
	}
	weekStart, err := analytics.ParseWeekday(o.WeekStart)
	if err != nil {
		return in, err
	}
	now := time.Now()
	if o.Now != "" {
		if now, err = time.Parse(time.RFC3339, o.Now); err != nil {
			return in, fmt.Errorf("invalid --now: %w", err)
		}
	}
	streakType := domain.StreakType(o.StreakType)
	if streakType != domain.StreakDaily && streakType != domain.StreakWeekly {
		return in, fmt.Errorf("invalid --streak-type %q", o.StreakType)
	}
	if o.MaxRestDays < 0 || o.MaxRestDays > 7 {
		return in, fmt.Errorf("invalid --max-rest-days %d: must be 0-7", o.MaxRestDays)
	}

	var records []domain.WorkoutRecord
	if err := readJSONFile(o.WorkoutsFile, &records); err != nil {
		return in, err
	}
	var schedule []domain.ScheduleDay
	if o.ScheduleFile != "" {
		if err := readJSONFile(o.ScheduleFile, &schedule); err != nil {
			return in, err
		}
	}
	var exercises []domain.Exercise
	if o.ExercisesFile != "" {
		if err := readJSONFile(o.ExercisesFile, &exercises); err != nil {
			return in, err
		}
	}

	return analytics.DashboardInput{
		Period:        period,
		Now:           now,
		Location:      loc,
		WeekStart:     weekStart,
		Granularity:   granularity,
		Records:       records,
		Schedule:      schedule,
		Lookup:        analytics.MuscleLookupFromExercises(exercises),
		LookbackWeeks: o.LookbackWeeks,
		HorizonDays:   o.HorizonDays,
		Streak:        domain.StreakConfig{MaxRestDaysPerWeek: o.MaxRestDays, StreakType: streakType},
	}, nil
}

func readJSONFile(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
