// Package harness provides scenario testing for rendered pieces.
//
// A scenario names a piece file, renders it, and checks assertions
// against the resulting timeline. Scenarios live in YAML files:
//
//	name: single_voice_cycle
//	description: "A lone voice walks its pitch cycle"
//	piece: pieces/minimal.cue
//	assertions:
//	  - type: event_count
//	    count: 4
//	  - type: time_ordered
//	  - type: pitch_range
//	    min: 60
//	    max: 65
//	  - type: channel_present
//	    channel: 0
//	  - type: first_event
//	    start: 0
//	    pitch: 60
//
// # Assertion Types
//
//   - event_count: the timeline holds exactly N events
//   - time_ordered: event start times never decrease in time order
//   - pitch_range: every pitch lies within [min, max]
//   - channel_present: at least one event on the given channel
//   - first_event: the earliest event matches the given fields
//     (subset match; omitted fields are not checked)
//
// # Golden Comparison
//
// RunWithGolden renders the scenario's piece and compares the canonical
// JSON snapshot of its timeline against testdata/golden/{name}.golden.
// Scenario pieces must avoid stochastic generators, or pin a seed, so
// the snapshot is stable across runs.
package harness
