package trends

import (
	"math"
	"testing"
)

func f64(v float64) *float64 { return &v }

func TestWeightChangePercent_NoResultSentinels(t *testing.T) {
	cases := []struct {
		name     string
		current  *float64
		previous *float64
	}{
		{"no current", nil, f64(100)},
		{"no previous", f64(100), nil},
		{"both missing", nil, nil},
		{"previous zero", f64(100), f64(0)},
	}

	for _, tc := range cases {
		if _, ok := WeightChangePercent(tc.current, tc.previous); ok {
			t.Fatalf("%s: expected no result", tc.name)
		}
	}
}

func TestWeightChangePercent_Values(t *testing.T) {
	pct, ok := WeightChangePercent(f64(110), f64(100))
	if !ok || pct != 10 {
		t.Fatalf("expected +10%%, got %v ok=%v", pct, ok)
	}

	pct, ok = WeightChangePercent(f64(90), f64(100))
	if !ok || pct != -10 {
		t.Fatalf("expected -10%%, got %v ok=%v", pct, ok)
	}

	pct, ok = WeightChangePercent(f64(350), f64(350))
	if !ok || pct != 0 {
		t.Fatalf("expected 0%% for no change, got %v ok=%v", pct, ok)
	}
}

// Los umbrales son simétricos: la misma variación absoluta dispara
// alerta para ambos lados.
func TestClassifyAlert_SymmetricThresholds(t *testing.T) {
	cases := []struct {
		pct  float64
		want AlertStatus
	}{
		{-10, AlertLossWarning},
		{-5, AlertLossWarning},
		{-4.9, AlertNormal},
		{0, AlertNormal},
		{4.9, AlertNormal},
		{5, AlertGainNotable},
		{10, AlertGainNotable},
	}

	for _, tc := range cases {
		if got := ClassifyAlert(tc.pct, true); got != tc.want {
			t.Fatalf("pct %v: expected %s, got %s", tc.pct, tc.want, got)
		}
	}

	for _, pct := range []float64{4.9, 5, 10} {
		loss := ClassifyAlert(-pct, true)
		gain := ClassifyAlert(pct, true)
		lossAlerted := loss == AlertLossWarning
		gainAlerted := gain == AlertGainNotable
		if lossAlerted != gainAlerted {
			t.Fatalf("asymmetric thresholds at |%v|: loss=%s gain=%s", pct, loss, gain)
		}
	}
}

func TestClassifyAlert_NoData(t *testing.T) {
	// sin resultado nunca hay alerta, ni siquiera con un pct residual
	if got := ClassifyAlert(math.Inf(-1), false); got != AlertNoData {
		t.Fatalf("expected no_data, got %s", got)
	}
}
