package matching

// Profile is a candidate shown to the user
type Profile struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Age           int      `json:"age"`
	Location      string   `json:"location"`
	Profession    string   `json:"profession"`
	Education     string   `json:"education"`
	Bio           string   `json:"bio"`
	Interests     []string `json:"interests"`
	Photos        []string `json:"photos,omitempty"`
	Distance      float64  `json:"distance,omitempty"`
	Compatibility float64  `json:"compatibility,omitempty"`
}

// Subject is the partial profile of the user matches are ranked for.
// Zero values mean the attribute is unknown.
type Subject struct {
	Age        int      `json:"age,omitempty"`
	Interests  []string `json:"interests,omitempty"`
	Profession string   `json:"profession,omitempty"`
	Education  string   `json:"education,omitempty"`
	Location   string   `json:"location,omitempty"`
}

// Preferences narrow the candidate pool before local scoring
type Preferences struct {
	AgeRange   [2]int   `json:"age_range"`
	Location   string   `json:"location,omitempty"`
	Interests  []string `json:"interests,omitempty"`
	Profession string   `json:"profession,omitempty"`
	Education  string   `json:"education,omitempty"`
}

// Filters are the browse filters applied to an already ranked list.
// Zero values disable the corresponding check.
type Filters struct {
	AgeRange    [2]int   `json:"age_range"`
	MaxDistance float64  `json:"max_distance,omitempty"`
	Profession  string   `json:"profession,omitempty"`
	Education   string   `json:"education,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	Search      string   `json:"search,omitempty"`
}

// Breakdown shows how a local compatibility score was built
type Breakdown struct {
	Interests  float64 `json:"interests"`
	Age        float64 `json:"age"`
	Education  float64 `json:"education"`
	Profession float64 `json:"profession"`
	Noise      float64 `json:"noise"`
	Score      float64 `json:"score"`
}

// CompatibilityResult is the answer of a single compatibility check
type CompatibilityResult struct {
	CandidateID int        `json:"candidate_id"`
	Score       float64    `json:"score"`
	Breakdown   *Breakdown `json:"breakdown,omitempty"`
}
