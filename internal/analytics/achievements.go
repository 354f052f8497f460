package analytics

type Achievement struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Unlocked    bool   `json:"unlocked" yaml:"unlocked"`
}

type achievementRule struct {
	id, title, description string
	unlocked               func(streak int, adherence *float64) bool
}

func streakAtLeast(n int) func(int, *float64) bool {
	return func(streak int, _ *float64) bool { return streak >= n }
}

func adherenceAtLeast(pct float64) func(int, *float64) bool {
	return func(_ int, adherence *float64) bool { return adherence != nil && *adherence >= pct }
}

var achievementTable = []achievementRule{
	{"first-step", "First Step", "Complete your first scheduled workout", streakAtLeast(1)},
	{"on-fire", "On Fire", "Reach a 7 day streak", streakAtLeast(7)},
	{"unstoppable", "Unstoppable", "Reach a 30 day streak", streakAtLeast(30)},
	{"committed", "Committed", "Keep adherence at 80% or above", adherenceAtLeast(80)},
	{"flawless", "Flawless", "Complete every scheduled workout", adherenceAtLeast(100)},
}

// EvaluateAchievements checks every rule independently and lists all of them.
func EvaluateAchievements(currentStreak int, adherencePct *float64) []Achievement {
	out := make([]Achievement, len(achievementTable))
	for i, rule := range achievementTable {
		out[i] = Achievement{
			ID:          rule.id,
			Title:       rule.title,
			Description: rule.description,
			Unlocked:    rule.unlocked(currentStreak, adherencePct),
		}
	}
	return out
}
