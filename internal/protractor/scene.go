package protractor

// Arc is a guide circle drawn across the span at a normalized radius.
type Arc struct {
	Radius float64
	Start  float64 // degrees
	End    float64 // degrees
}

// Scene is the drawable primitive set of one render pass. It holds plain
// geometry; painting it is up to a rasterizer.
type Scene struct {
	Config    Config
	Params    StyleParams
	Frame     Frame
	Ticks     []Tick
	ZeroLines []Tick
	GuideArcs []Arc
	Labels    []Label
}

// BuildScene derives ticks, guide arcs and labels for cfg.
func BuildScene(cfg Config, pal Palette) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	params := cfg.Style.Params()
	s := &Scene{
		Config:    cfg,
		Params:    params,
		Frame:     NewFrame(cfg.Size, PlotInset),
		Ticks:     GenerateTicks(cfg.Span, params.RingDepths),
		ZeroLines: ZeroLines(),
		Labels:    GenerateLabels(cfg.Span, cfg.Style, pal),
	}
	for _, r := range params.GuideArcs {
		s.GuideArcs = append(s.GuideArcs, Arc{Radius: r, Start: 0, End: float64(cfg.Span.Degrees())})
	}
	return s, nil
}

// LineWidth returns the stroke width of t in points.
func (s *Scene) LineWidth(t Tick) float64 {
	if t.Thick() {
		return s.Params.ThickWidth
	}
	return s.Params.ThinWidth
}
