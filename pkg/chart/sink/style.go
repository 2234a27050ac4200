package sink

// Style holds the colors of a rendered chart as CSS color values.
type Style struct {
	Background  string  `toml:"background"`
	Mark        string  `toml:"mark"`
	MarkOpacity float64 `toml:"mark_opacity"`
	MarkText    string  `toml:"mark_text"`
	Axis        string  `toml:"axis"`
	Active      string  `toml:"active"`
	Inactive    string  `toml:"inactive"`
	Font        string  `toml:"font"`
}

// DefaultStyle draws translucent dark cyan circles with white abbreviations.
var DefaultStyle = Style{
	Background:  "white",
	Mark:        "darkcyan",
	MarkOpacity: 0.5,
	MarkText:    "white",
	Axis:        "#000",
	Active:      "#000",
	Inactive:    "#aaa",
	Font:        "sans-serif",
}

// Merge returns s with every empty field taken from DefaultStyle.
func (s Style) Merge() Style {
	d := DefaultStyle
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	s.Background = pick(s.Background, d.Background)
	s.Mark = pick(s.Mark, d.Mark)
	s.MarkText = pick(s.MarkText, d.MarkText)
	s.Axis = pick(s.Axis, d.Axis)
	s.Active = pick(s.Active, d.Active)
	s.Inactive = pick(s.Inactive, d.Inactive)
	s.Font = pick(s.Font, d.Font)
	if s.MarkOpacity <= 0 || s.MarkOpacity > 1 {
		s.MarkOpacity = d.MarkOpacity
	}
	return s
}
