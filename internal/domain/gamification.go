package domain

// Difficulty grades a challenge
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Challenge is a time-boxed goal suggested to a user
type Challenge struct {
	ID           string     `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Description  string     `json:"description" yaml:"description"`
	DurationDays int        `json:"durationDays" yaml:"duration_days"`
	Reward       float64    `json:"reward" yaml:"reward"`
	Difficulty   Difficulty `json:"difficulty" yaml:"difficulty"`
}

// Achievement is a milestone with its current progress (0-1)
type Achievement struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Unlocked    bool    `json:"unlocked" yaml:"-"`
	Progress    float64 `json:"progress" yaml:"-"`
}

// GamificationStrategy is presentation-only output with no effect on scoring
type GamificationStrategy struct {
	Achievements               []Achievement `json:"achievements"`
	Challenges                 []Challenge   `json:"challenges"`
	SocialFeatures             []string      `json:"socialFeatures,omitempty"`
	Priority                   string        `json:"priority"`
	ExpectedEngagementIncrease float64       `json:"expectedEngagementIncrease"`
}
