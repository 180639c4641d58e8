package server

// techniqueLabels maps a throw-technique value from the dataset to its
// display label. The keys double as the accepted throw_type enumeration for
// submissions.
var techniqueLabels = map[string]string{
	"left":          "Left Click",
	"right":         "Right Click",
	"left_jump":     "Jump Throw",
	"right_jump":    "Right + Jump",
	"left_right":    "Left + Right",
	"run_left":      "Run + Left",
	"run_right":     "Run + Right",
	"run_left_jump": "Run + Jump",
}

// TechniqueLabel returns the display label for a technique value, falling
// back to the raw value for anything unknown.
func TechniqueLabel(value string) string {
	if label, ok := techniqueLabels[value]; ok {
		return label
	}
	return value
}
