// Package scoring turns a user's accumulated safety actions into a bounded
// safety score and a named tier.
package scoring

const (
	BaseScore = 100
	MaxScore  = 650
)

// ScoreInputs holds the per-category action counts.
type ScoreInputs struct {
	TipsSaved           int `json:"tipsSaved"`
	MovesLearned        int `json:"movesLearned"`
	ChecklistsCompleted int `json:"checklistsCompleted"`
	StoriesAuthored     int `json:"storiesAuthored"`
	ReportsFiled        int `json:"reportsFiled"`
	ProductsSaved       int `json:"productsSaved"`
}

// category weights: points per action and the cap for the category
type weight struct {
	points int
	cap    int
}

var (
	tipsWeight       = weight{points: 5, cap: 100}
	movesWeight      = weight{points: 10, cap: 100}
	checklistsWeight = weight{points: 15, cap: 75}
	storiesWeight    = weight{points: 20, cap: 100}
	reportsWeight    = weight{points: 25, cap: 125}
	productsWeight   = weight{points: 2, cap: 50}
)

func (w weight) apply(count int) int {
	if count <= 0 {
		return 0
	}
	// compare before multiplying so huge counts cannot overflow
	if count >= (w.cap+w.points-1)/w.points {
		return w.cap
	}
	return min(count*w.points, w.cap)
}

// Compute returns the safety score for in, always within [BaseScore, MaxScore].
func Compute(in ScoreInputs) int {
	score := BaseScore +
		tipsWeight.apply(in.TipsSaved) +
		movesWeight.apply(in.MovesLearned) +
		checklistsWeight.apply(in.ChecklistsCompleted) +
		storiesWeight.apply(in.StoriesAuthored) +
		reportsWeight.apply(in.ReportsFiled) +
		productsWeight.apply(in.ProductsSaved)

	return min(score, MaxScore)
}

// Level is the badge shown for a score.
type Level struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var levels = []struct {
	min   int
	level Level
}{
	{500, Level{Label: "Safety Champion", Color: "text-purple-600"}},
	{400, Level{Label: "Safety Pro", Color: "text-green-600"}},
	{300, Level{Label: "Safety Warrior", Color: "text-accent-gold"}},
	{200, Level{Label: "Safety Seeker", Color: "text-blue-600"}},
	{100, Level{Label: "Safety Starter", Color: "text-primary-deep"}},
}

// Beginner is returned for scores below every threshold.
var Beginner = Level{Label: "Beginner", Color: "text-gray-600"}

// LevelFor maps a score to its tier, checking thresholds from highest to lowest.
func LevelFor(score int) Level {
	for _, l := range levels {
		if score >= l.min {
			return l.level
		}
	}
	return Beginner
}

// Progress returns score as a percentage of MaxScore, clamped to [0, 100].
func Progress(score int) float64 {
	p := float64(score) / float64(MaxScore) * 100
	return max(0, min(p, 100))
}
