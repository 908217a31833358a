package model

// ScorePoint is one contestant's score after a given hand
type ScorePoint struct {
	Hand  int `json:"hand"`
	Score int `json:"score"`
}

// ScoreSeries is the score history for one contestant. A contestant is
// a team when the game has teams, otherwise an individual player.
type ScoreSeries struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Points []ScorePoint `json:"points"`
}

// Final returns the most recent score in the series
func (s *ScoreSeries) Final() int {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Score
}
