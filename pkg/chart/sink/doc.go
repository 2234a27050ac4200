// Package sink turns a [chart.Scene] into output formats.
//
// # Formats
//
//   - SVG: [RenderSVG], written with svgo. With [WithInteraction] the
//     document carries the positions of every mark under every field and a
//     small script that rebinds an axis when one of its labels is clicked,
//     animating marks and ticks with 1 second CSS transitions. With
//     [WithTooltips] clicking a mark shows the state's name, poverty rate
//     and healthcare rate until the pointer leaves it.
//   - PNG and PDF: [RenderPNG] and [RenderPDF] draw a static snapshot with
//     gonum/plot.
//   - JSON: [RenderJSON] exports the scene.
//   - Terminal: [RenderTerminal] draws the scene onto an ntcharts canvas for
//     the explore command.
//
// Sinks only read the scene; they never compute scales or positions of
// their own beyond what the scene carries.
//
// [chart.Scene]: github.com/matzehuels/censusplot/pkg/chart.Scene
package sink
