// Package lab defines the practice-lab schema shared by the generator,
// the HTTP API, and the download artifact.
package lab

import (
	"encoding/json"
	"strings"
)

// Lab represents a complete generated practice lab.
// This is the validated output from the AI generator. A Lab is never
// mutated after construction; a new generation replaces it wholesale.
type Lab struct {
	// Short lab title
	Title string `json:"title" validate:"required"`

	// Business context for the exercise
	Scenario string `json:"scenario" validate:"required"`

	// Raw topology entries, each expected to look like
	// "Router1 (G0/0) -> Switch1 (G0/1)". Malformed entries are
	// tolerated here and dropped during topology extraction.
	Connections []string `json:"connections" validate:"required"`

	// Per-device configuration facts (device name -> config text)
	DeviceConfigs map[string]string `json:"device_configs" validate:"required"`

	// Ordered task list presented to the student
	Tasks []string `json:"tasks" validate:"required"`

	// Full IOS command block that solves the lab
	SolutionCommands string `json:"solution_commands" validate:"required"`

	// "show" command block used to verify the solution
	VerificationCommands string `json:"verification_commands" validate:"required"`
}

// MarshalIndented serializes the lab as indented JSON, the format used
// for the downloadable artifact.
func (l *Lab) MarshalIndented() ([]byte, error) {
	return json.MarshalIndent(l, "", "    ")
}

// DownloadFilename returns the download name for a lab generated from
// the given topic, e.g. "lab_OSPF_Single_Area.json".
func DownloadFilename(topic string) string {
	return "lab_" + strings.ReplaceAll(topic, " ", "_") + ".json"
}
