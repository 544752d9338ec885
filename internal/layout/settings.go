package layout

import (
	"epicgraph/internal/config"
	"epicgraph/internal/overrides"
)

// Settings control sizes and algorithm choices for Compute.
type Settings struct {
	NodeWidth  float64 `json:"nodeWidth"`
	NodeHeight float64 `json:"nodeHeight"`
	GapX       float64 `json:"gapX"`
	GapY       float64 `json:"gapY"`
	ZStep      float64 `json:"zStep"`
	ArrowSize  float64 `json:"arrowSize"`
	// OptimalThreshold is the largest real node count that still gets the
	// exhaustive crossing minimization.
	OptimalThreshold int  `json:"optimalThreshold"`
	Snap             bool `json:"snap"`
	// PipelineColors maps a pipeline name to a color that replaces the
	// rainbow fallback.
	PipelineColors map[string]string `json:"pipelineColors,omitempty"`
}

// DefaultSettings mirrors the configuration defaults.
func DefaultSettings() Settings {
	return Settings{
		NodeWidth:        160,
		NodeHeight:       60,
		GapX:             40,
		GapY:             60,
		ZStep:            80,
		ArrowSize:        6,
		OptimalThreshold: 20,
		Snap:             true,
	}
}

// SettingsFromConfig reads the layout.* keys.
func SettingsFromConfig() Settings {
	s := Settings{
		NodeWidth:        config.GetFloat64(config.KeyLayoutNodeWidth),
		NodeHeight:       config.GetFloat64(config.KeyLayoutNodeHeight),
		GapX:             config.GetFloat64(config.KeyLayoutGapX),
		GapY:             config.GetFloat64(config.KeyLayoutGapY),
		ZStep:            config.GetFloat64(config.KeyLayoutZStep),
		ArrowSize:        config.GetFloat64(config.KeyLayoutArrowSize),
		OptimalThreshold: config.GetInt(config.KeyLayoutOptimalThreshold),
		Snap:             config.GetBool(config.KeyLayoutSnap),
		PipelineColors:   config.GetStringMapString(config.KeyLayoutPipelineColors),
	}
	return s.normalized()
}

// normalized replaces non-positive sizes with defaults.
func (s Settings) normalized() Settings {
	def := DefaultSettings()
	if s.NodeWidth <= 0 {
		s.NodeWidth = def.NodeWidth
	}
	if s.NodeHeight <= 0 {
		s.NodeHeight = def.NodeHeight
	}
	if s.GapX < 0 {
		s.GapX = def.GapX
	}
	if s.GapY < 0 {
		s.GapY = def.GapY
	}
	if s.ArrowSize < 0 {
		s.ArrowSize = 0
	}
	if s.OptimalThreshold < 0 {
		s.OptimalThreshold = 0
	}
	return s
}

// Grid returns the snapping grid for these settings: half a layout cell in
// each direction, so computed positions are already on it.
func (s Settings) Grid() overrides.Grid {
	s = s.normalized()
	return overrides.NewGrid(s.NodeWidth+s.GapX, s.NodeHeight+s.GapY)
}
