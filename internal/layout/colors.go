package layout

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"epicgraph/internal/graph"
)

const (
	rainbowChroma    = 0.55
	rainbowLuminance = 0.7
)

// Rainbow returns the fallback color for the i-th of n nodes in traversal
// order, spreading hues evenly around the HCL wheel.
func Rainbow(i, n int) string {
	hue := 0.0
	if n > 1 {
		hue = 360 * float64(i) / float64(n)
	}
	return colorful.Hcl(hue, rainbowChroma, rainbowLuminance).Clamped().Hex()
}

// nodeColor prefers the configured pipeline color. Config keys are
// lowercased by the loader, so the lookup falls back to the lowercase name.
func nodeColor(iss graph.Issue, rank, n int, s Settings) string {
	if c, ok := pipelineColor(s.PipelineColors, iss.PipelineName); ok {
		return c
	}
	return Rainbow(rank, n)
}

func pipelineColor(colors map[string]string, pipeline string) (string, bool) {
	if len(colors) == 0 || pipeline == "" {
		return "", false
	}
	if c, ok := colors[pipeline]; ok && validColor(c) {
		return c, true
	}
	if c, ok := colors[strings.ToLower(pipeline)]; ok && validColor(c) {
		return c, true
	}
	return "", false
}

func validColor(hex string) bool {
	_, err := colorful.Hex(hex)
	return err == nil
}
