// Package generator builds lab prompts, calls the model provider, and
// turns the raw response into a validated lab.
package generator

import (
	"fmt"

	"netlabgen.io/netlabgen/pkg/lab"
)

// promptTemplate frames the model's role and pins down the exact JSON
// schema of the response. The "JSON only" instruction is advisory at
// best; the sanitize step in this package assumes the model ignores it.
const promptTemplate = `Act as a Cisco Certified Internetwork Expert (CCIE).
Create a CCNA Practice Lab for the topic: %s.
Difficulty Level: %s.

You MUST return the output in valid JSON format ONLY. Do not add markdown backticks.
Structure the JSON exactly like this:
{
    "title": "String",
    "scenario": "String (Short business context)",
    "connections": [
        "Router1 (G0/0) -> Switch1 (G0/1)",
        "Switch1 (F0/1) -> PC1"
    ],
    "device_configs": {
        "Router1": "IP: 192.168.1.1/24",
        "PC1": "IP: 192.168.1.10/24"
    },
    "tasks": [
        "Step 1: ...",
        "Step 2: ..."
    ],
    "solution_commands": "Full IOS command list to solve it",
    "verification_commands": "List of 'show' commands to verify"
}`

// BuildPrompt produces the deterministic instruction text for one
// (topic, difficulty) pair. Pure; both values appear verbatim.
func BuildPrompt(topic lab.Topic, difficulty lab.Difficulty) string {
	return fmt.Sprintf(promptTemplate, topic, difficulty)
}
