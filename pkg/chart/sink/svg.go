package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/chart"
)

const (
	tickSize    = 6
	tipWidth    = 150
	tipHeight   = 58
	tipLineStep = 16
)

const chartCSS = `
    .label { cursor: pointer; font-size: 16px; }
    .label.active { font-weight: bold; fill: %[1]s; }
    .label.inactive { fill: %[2]s; }
    .label.inactive:hover { fill: %[1]s; }
    .abbr { font-size: 11px; pointer-events: none; }
    .tick text { font-size: 10px; }`

const transitionCSS = `
    .node { transition: transform %[1]dms cubic-bezier(0.645, 0.045, 0.355, 1); }
    .ticks { opacity: 0; transition: opacity %[1]dms ease-in-out; }
    .ticks.active { opacity: 1; }`

const tooltipCSS = `
    .node { cursor: pointer; }
    .tip-bg { fill: #333; opacity: 0.85; }
    .tip-line { fill: #fff; font-size: 12px; }`

const scriptHead = `
    (function() {
      var svg = document.currentScript ? document.currentScript.ownerSVGElement || document.querySelector('svg') : document.querySelector('svg');
      var chosen = {x: %q, y: %q};
      function at(n) {
        return [+n.getAttribute('data-x-' + chosen.x), +n.getAttribute('data-y-' + chosen.y)];
      }`

const scriptSelect = `
      function place() {
        svg.querySelectorAll('.node').forEach(function(n) {
          var p = at(n);
          n.style.transform = 'translate(' + p[0] + 'px,' + p[1] + 'px)';
        });
        svg.querySelectorAll('.ticks').forEach(function(g) {
          g.classList.toggle('active', g.getAttribute('data-field') === chosen[g.getAttribute('data-axis')]);
        });
      }
      svg.querySelectorAll('.label').forEach(function(l) {
        l.addEventListener('click', function() {
          var axis = l.getAttribute('data-axis'), field = l.getAttribute('data-field');
          if (chosen[axis] === field) return;
          chosen[axis] = field;
          svg.querySelectorAll('.label[data-axis="' + axis + '"]').forEach(function(s) {
            s.classList.toggle('active', s === l);
            s.classList.toggle('inactive', s !== l);
          });
          place();
        });
      });`

const scriptTooltip = `
      var tip = svg.querySelector('#tooltip');
      svg.querySelectorAll('.node').forEach(function(n) {
        n.addEventListener('click', function() {
          var lines = [n.getAttribute('data-state'),
            '%% Poverty: ' + n.getAttribute('data-poverty'),
            '%% Healthcare: ' + n.getAttribute('data-healthcare')];
          tip.querySelectorAll('.tip-line').forEach(function(t, i) { t.textContent = lines[i]; });
          var p = at(n);
          tip.setAttribute('transform', 'translate(' + (p[0] - %d) + ',' + (p[1] - %d) + ')');
          tip.setAttribute('visibility', 'visible');
        });
        n.addEventListener('mouseout', function() { tip.setAttribute('visibility', 'hidden'); });
      });`

const scriptTail = `
    })();`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interactive bool
	tooltips    bool
	style       Style
}

// WithInteraction makes the axis labels clickable.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithTooltips shows a tooltip when a mark is clicked.
func WithTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = true } }

// WithStyle sets the colors (default [DefaultStyle]).
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s.Merge() } }

// RenderSVG renders sc as a standalone SVG document.
func RenderSVG(sc chart.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{style: DefaultStyle}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	l := sc.Layout
	canvas.Start(px(l.Width), px(l.Height))
	canvas.Title("censusplot: " + labelText(sc, census.AxisY) + " vs. " + labelText(sc, census.AxisX))
	r.renderStyle(canvas, sc)
	canvas.Rect(0, 0, px(l.Width), px(l.Height), "fill:"+r.style.Background)

	canvas.Group(`id="chart-`+sc.DatasetID+`"`,
		fmt.Sprintf(`transform="translate(%d,%d)"`, px(l.Margin.Left), px(l.Margin.Top)),
		"font-family:"+r.style.Font)
	r.renderXAxis(canvas, sc)
	r.renderYAxis(canvas, sc)
	r.renderMarks(canvas, sc)
	r.renderLabels(canvas, sc)
	if r.tooltips {
		renderTooltip(canvas)
	}
	canvas.Gend()

	if r.interactive || r.tooltips {
		canvas.Script("application/javascript", r.script(sc))
	}
	canvas.End()
	return buf.Bytes()
}

func (r *svgRenderer) renderStyle(canvas *svg.SVG, sc chart.Scene) {
	css := fmt.Sprintf(chartCSS, r.style.Active, r.style.Inactive)
	if r.interactive {
		css += fmt.Sprintf(transitionCSS, sc.Duration.Milliseconds())
	}
	if r.tooltips {
		css += tooltipCSS
	}
	canvas.Style("text/css", css)
}

func (r *svgRenderer) script(sc chart.Scene) string {
	var b strings.Builder
	fmt.Fprintf(&b, scriptHead, string(sc.Selection.X), string(sc.Selection.Y))
	if r.interactive {
		b.WriteString(scriptSelect)
	}
	if r.tooltips {
		fmt.Fprintf(&b, scriptTooltip, tipWidth/2, tipHeight+px(sc.Radius))
	}
	b.WriteString(scriptTail)
	return b.String()
}

// tickSets returns the tick groups of an axis: the displayed ticks of the
// bound field, plus the settled ticks of every sibling field when the chart
// is interactive.
func (r *svgRenderer) tickSets(sc chart.Scene, a census.Axis, shown chart.AxisScene) []tickSet {
	sets := []tickSet{{field: sc.Selection.Get(a), ticks: shown.Ticks, active: true}}
	if !r.interactive {
		return sets
	}
	for _, f := range census.FieldsFor(a) {
		if f == sc.Selection.Get(a) {
			continue
		}
		s, ok := sc.Scales[f]
		if !ok {
			continue
		}
		var ticks []chart.AxisTick
		for _, t := range s.Ticks() {
			ticks = append(ticks, chart.AxisTick{Tick: t, Opacity: 1})
		}
		sets = append(sets, tickSet{field: f, ticks: ticks})
	}
	return sets
}

type tickSet struct {
	field  census.Field
	ticks  []chart.AxisTick
	active bool
}

func (t tickSet) attrs(a census.Axis) []string {
	class := "ticks"
	if t.active {
		class += " active"
	}
	return []string{
		`class="` + class + `"`,
		`data-axis="` + a.String() + `"`,
		`data-field="` + string(t.field) + `"`,
	}
}

func (r *svgRenderer) renderXAxis(canvas *svg.SVG, sc chart.Scene) {
	l := sc.Layout
	canvas.Group(`class="x-axis"`, fmt.Sprintf(`transform="translate(0,%d)"`, px(l.PlotHeight())))
	canvas.Line(0, 0, px(l.PlotWidth()), 0, "stroke:"+r.style.Axis)
	for _, set := range r.tickSets(sc, census.AxisX, sc.XAxis) {
		canvas.Group(set.attrs(census.AxisX)...)
		for _, t := range set.ticks {
			x := px(t.Pos)
			canvas.Group(`class="tick"`, opacity(t.Opacity))
			canvas.Line(x, 0, x, tickSize, "stroke:"+r.style.Axis)
			canvas.Text(x, tickSize+12, t.Label, `text-anchor="middle"`)
			canvas.Gend()
		}
		canvas.Gend()
	}
	canvas.Gend()
}

func (r *svgRenderer) renderYAxis(canvas *svg.SVG, sc chart.Scene) {
	l := sc.Layout
	canvas.Group(`class="y-axis"`)
	canvas.Line(0, 0, 0, px(l.PlotHeight()), "stroke:"+r.style.Axis)
	for _, set := range r.tickSets(sc, census.AxisY, sc.YAxis) {
		canvas.Group(set.attrs(census.AxisY)...)
		for _, t := range set.ticks {
			y := px(t.Pos)
			canvas.Group(`class="tick"`, opacity(t.Opacity))
			canvas.Line(-tickSize, y, 0, y, "stroke:"+r.style.Axis)
			canvas.Text(-tickSize-3, y+4, t.Label, `text-anchor="end"`)
			canvas.Gend()
		}
		canvas.Gend()
	}
	canvas.Gend()
}

func (r *svgRenderer) renderMarks(canvas *svg.SVG, sc chart.Scene) {
	canvas.Group(`class="marks"`)
	for _, m := range sc.Marks {
		attrs := []string{
			`class="node"`,
			`id="mark-` + escape(m.Key) + `"`,
			fmt.Sprintf(`transform="translate(%s,%s)"`, num(m.Center.X), num(m.Center.Y)),
		}
		if r.interactive || r.tooltips {
			attrs = append(attrs, r.markData(sc, m)...)
		}
		canvas.Group(attrs...)
		canvas.Circle(0, 0, px(sc.Radius),
			`class="mark"`, "fill:"+r.style.Mark, fmt.Sprintf("opacity:%g", r.style.MarkOpacity))
		canvas.Text(0, px(m.Label.Y-m.Center.Y), m.Key,
			`class="abbr"`, `text-anchor="middle"`, "fill:"+r.style.MarkText)
		canvas.Gend()
	}
	canvas.Gend()
}

// markData returns the data-* attributes a script needs to move or describe
// mark m without consulting the scene again.
func (r *svgRenderer) markData(sc chart.Scene, m chart.MarkScene) []string {
	var attrs []string
	for _, f := range census.AllFields() {
		s, ok := sc.Scales[f]
		if !ok {
			continue
		}
		attrs = append(attrs, fmt.Sprintf(`data-%s-%s="%s"`, f.Axis(), f, num(s.Map(m.Record.Value(f)))))
	}
	if r.tooltips {
		attrs = append(attrs,
			`data-state="`+escape(m.Tooltip.State)+`"`,
			`data-poverty="`+strconv.FormatFloat(m.Tooltip.Poverty, 'g', -1, 64)+`"`,
			`data-healthcare="`+strconv.FormatFloat(m.Tooltip.Healthcare, 'g', -1, 64)+`"`,
		)
	}
	return attrs
}

func (r *svgRenderer) renderLabels(canvas *svg.SVG, sc chart.Scene) {
	for _, a := range []census.Axis{census.AxisX, census.AxisY} {
		canvas.Group(`class="` + a.String() + `-labels"`)
		for _, l := range sc.Labels {
			if l.Field.Axis() != a {
				continue
			}
			class := "label inactive"
			if l.Active {
				class = "label active"
			}
			x, y := px(l.Anchor.X), px(l.Anchor.Y)
			attrs := []string{
				`class="` + class + `"`,
				`data-axis="` + a.String() + `"`,
				`data-field="` + string(l.Field) + `"`,
				`text-anchor="middle"`,
			}
			if l.Anchor.Rotate != 0 {
				attrs = append(attrs, fmt.Sprintf(`transform="rotate(%g %d %d)"`, l.Anchor.Rotate, x, y))
			}
			canvas.Text(x, y, l.Text, attrs...)
		}
		canvas.Gend()
	}
}

func renderTooltip(canvas *svg.SVG) {
	canvas.Group(`id="tooltip"`, `visibility="hidden"`, `pointer-events="none"`)
	canvas.Rect(0, 0, tipWidth, tipHeight, `class="tip-bg"`, `rx="4"`)
	for i := range 3 {
		canvas.Text(8, 16+i*tipLineStep, "", `class="tip-line"`)
	}
	canvas.Gend()
}

func labelText(sc chart.Scene, a census.Axis) string {
	if l, ok := sc.ActiveLabel(a); ok {
		return l.Text
	}
	return string(sc.Selection.Get(a))
}

func px(v float64) int { return int(math.Round(v)) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func opacity(o float64) string {
	if o >= 1 {
		return `opacity="1"`
	}
	return fmt.Sprintf(`opacity="%.3f"`, math.Max(0, o))
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func escape(s string) string { return attrEscaper.Replace(s) }
