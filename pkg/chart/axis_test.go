package chart

import (
	"testing"
	"time"

	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/scale"
)

func TestAxis_Ticks(t *testing.T) {
	from := scale.Linear{Field: census.Poverty, Domain: [2]float64{8, 24}, Range: scale.Range{0, 820}}
	to := scale.Linear{Field: census.Age, Domain: [2]float64{26, 46}, Range: scale.Range{0, 820}}

	ax := NewAxis(Bottom, from)
	if !ax.Settled(t0) {
		t.Fatal("new axis should be settled")
	}
	for _, tk := range ax.Ticks(t0) {
		if tk.Opacity != 1 || !approx(tk.Pos, from.Map(tk.Value)) {
			t.Errorf("settled tick %+v", tk)
		}
	}

	ax.RenderAxis(to, time.Second, t0)
	if ax.Scale() != to {
		t.Error("Scale() should return the new target")
	}

	mid := t0.Add(500 * time.Millisecond)
	var entering, leaving int
	for _, tk := range ax.Ticks(mid) {
		want := (from.Map(tk.Value) + to.Map(tk.Value)) / 2
		if !approx(tk.Pos, want) {
			t.Errorf("tick %v at %v, want %v", tk.Value, tk.Pos, want)
		}
		switch {
		case to.Contains(tk.Value) && tk.Opacity == 0.5:
			entering++
		case tk.Opacity == 0.5:
			leaving++
		}
	}
	if entering == 0 || leaving == 0 {
		t.Errorf("entering %d, leaving %d; want both", entering, leaving)
	}

	end := t0.Add(time.Second)
	if !ax.Settled(end) || !ax.Current(end).Equal(to) {
		t.Error("axis should settle on the new scale")
	}
	if got, want := len(ax.Ticks(end)), len(to.Ticks()); got != want {
		t.Errorf("%d ticks after the transition, want %d", got, want)
	}
}

func TestAxis_ZeroDuration(t *testing.T) {
	from := scale.Linear{Field: census.Healthcare, Domain: [2]float64{8, 24}, Range: scale.Range{400, 0}}
	to := scale.Linear{Field: census.Smokes, Domain: [2]float64{9, 30}, Range: scale.Range{400, 0}}

	ax := NewAxis(Left, from).RenderAxis(to, 0, t0)
	if !ax.Settled(t0) || !ax.Current(t0).Equal(to) {
		t.Error("zero duration should apply immediately")
	}
	if ax.Orient().String() != "left" {
		t.Errorf("Orient() = %s", ax.Orient())
	}
}
