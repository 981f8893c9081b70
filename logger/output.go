package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Generated files, errors with hints, final status
//	1 (-v)      - + Per-language progress, skipped definitions
//	2 (-vv)     - + Effective configuration, hoisting plan, timing
//	3 (-vvv)    - + Every emitted definition

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Generated files and summaries
	OutputErrors                           // Errors with hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress // Per-language progress
	OutputSkipped  // Definitions skipped by policy

	// Level 2 (-vv) - Detailed
	OutputConfig // Effective configuration
	OutputPlan   // Hoisting plan (synthesized records)
	OutputTiming // Generation timing

	// Level 3 (-vvv) - Trace
	OutputDefinitions // Every emitted definition
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress: VerbosityInfo,
	OutputSkipped:  VerbosityInfo,

	OutputConfig: VerbosityDebug,
	OutputPlan:   VerbosityDebug,
	OutputTiming: VerbosityDebug,

	OutputDefinitions: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the verbosity level
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return false
	}
	return verbosity >= minLevel
}
