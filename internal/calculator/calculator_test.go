package calculator

import (
	"math"
	"testing"

	"SilverSentinel/internal/model"

	"github.com/markcheno/go-talib"
)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (diff=%.6f)", label, got, want, math.Abs(got-want))
	}
}

func ramp(from, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(from + i)
	}
	return out
}

func flat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// wave is a deterministic, non-monotonic series.
func wave(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 25 + 3*math.Sin(float64(i)/3) + 0.5*math.Cos(float64(i)*1.7)
	}
	return out
}

func TestSMA_ShortSeriesUndefined(t *testing.T) {
	for n := 0; n < 5; n++ {
		for i, v := range CalculateSMA(ramp(1, n), 5) {
			if v.Valid {
				t.Errorf("len %d: SMA_5[%d] should be undefined", n, i)
			}
		}
	}
}

func TestSMA_Correctness(t *testing.T) {
	closes := ramp(10, 11) // 10..20
	sma := CalculateSMA(closes, 5)
	for i := 0; i < 4; i++ {
		if sma[i].Valid {
			t.Errorf("SMA_5[%d] should be undefined", i)
		}
	}
	assertClose(t, "SMA_5[4]", sma[4].Value, 12, 1e-12)
	assertClose(t, "SMA_5[10]", sma[10].Value, 18, 1e-12)
	for i := 4; i < len(closes); i++ {
		want := (closes[i] + closes[i-1] + closes[i-2] + closes[i-3] + closes[i-4]) / 5
		assertClose(t, "SMA_5 trailing mean", sma[i].Value, want, 1e-9)
	}
}

func TestSMA_MatchesTalib(t *testing.T) {
	closes := wave(200)
	for _, period := range []int{2, 5, 14, 20, 50} {
		got := CalculateSMA(closes, period)
		want := talib.Sma(closes, period)
		for i := period - 1; i < len(closes); i++ {
			if !got[i].Valid {
				t.Fatalf("period %d: SMA[%d] undefined", period, i)
			}
			assertClose(t, "SMA vs talib", got[i].Value, want[i], 1e-9)
		}
	}
}

func TestSMA_NonPositivePeriod(t *testing.T) {
	for _, v := range CalculateSMA(ramp(1, 10), 0) {
		if v.Valid {
			t.Fatal("period 0 should leave every value undefined")
		}
	}
}

func TestEMA_DefinedFromStart(t *testing.T) {
	closes := []float64{10, 11, 12, 13}
	out := CalculateEMA(closes, 3)
	if !out[0].Valid || out[0].Value != 10 {
		t.Fatalf("EMA[0] = %+v, want 10", out[0])
	}
	// alpha = 0.5
	assertClose(t, "EMA[1]", out[1].Value, 10.5, 1e-12)
	assertClose(t, "EMA[2]", out[2].Value, 11.25, 1e-12)
	assertClose(t, "EMA[3]", out[3].Value, 12.125, 1e-12)
}

func TestEMA_Empty(t *testing.T) {
	if out := CalculateEMA(nil, 12); len(out) != 0 {
		t.Fatalf("expected empty output, got %d", len(out))
	}
}

func TestMACD_PositiveOnRisingSeries(t *testing.T) {
	for _, n := range []int{27, 30, 60} {
		macd, sig := CalculateMACD(ramp(100, n), 12, 26, 9)
		last := macd[n-1]
		if !last.Valid || last.Value <= 0 {
			t.Errorf("len %d: MACD(last) = %+v, want > 0", n, last)
		}
		if !sig[n-1].Valid {
			t.Errorf("len %d: signal undefined", n)
		}
	}
}

func TestMACD_SignalSeededOnMACD(t *testing.T) {
	closes := wave(40)
	macd, sig := CalculateMACD(closes, 12, 26, 9)
	if macd[0].Value != 0 {
		t.Errorf("MACD[0] = %f, want 0", macd[0].Value)
	}
	if sig[0].Value != macd[0].Value {
		t.Errorf("Signal[0] = %f, want MACD[0] = %f", sig[0].Value, macd[0].Value)
	}
	alpha := 2.0 / 10.0
	for i := 1; i < len(closes); i++ {
		want := alpha*macd[i].Value + (1-alpha)*sig[i-1].Value
		assertClose(t, "signal recursion", sig[i].Value, want, 1e-12)
	}
}

func TestRSI_Bounds(t *testing.T) {
	series := [][]float64{wave(100), ramp(1, 50), flat(7, 30), {5, 1, 9, 2, 8, 3, 7, 4, 6, 5, 5, 9, 1, 10, 0.5, 12}}
	for _, closes := range series {
		for i, v := range CalculateRSI(closes, 14) {
			if v.Valid && (v.Value < 0 || v.Value > 100) {
				t.Errorf("RSI[%d] = %f out of [0,100]", i, v.Value)
			}
		}
	}
}

func TestRSI_FlatSeriesTieBreak(t *testing.T) {
	rsi := CalculateRSI(flat(50, 25), 14)
	for i, v := range rsi {
		if i < 14 {
			if v.Valid {
				t.Errorf("RSI[%d] should be undefined", i)
			}
			continue
		}
		if !v.Valid || v.Value != 50 {
			t.Errorf("RSI[%d] = %+v, want 50", i, v)
		}
	}
}

func TestRSI_OnlyGainsIs100(t *testing.T) {
	rsi := CalculateRSI(ramp(1, 20), 14)
	if v := rsi[19]; !v.Valid || v.Value != 100 {
		t.Fatalf("RSI = %+v, want 100", v)
	}
}

func TestRSI_OnlyLossesIsZero(t *testing.T) {
	closes := ramp(1, 20)
	for i, j := 0, len(closes)-1; i < j; i, j = i+1, j-1 {
		closes[i], closes[j] = closes[j], closes[i]
	}
	rsi := CalculateRSI(closes, 14)
	assertClose(t, "RSI falling", rsi[19].Value, 0, 1e-12)
}

func TestRSI_SimpleAverages(t *testing.T) {
	// period 2, closes 1,3,2: gains (2,0) losses (0,1) -> rs = 1/0.5 = 2 -> 66.67
	rsi := CalculateRSI([]float64{1, 3, 2}, 2)
	if rsi[1].Valid {
		t.Error("RSI[1] should be undefined with period 2")
	}
	assertClose(t, "RSI[2]", rsi[2].Value, 100-100/3.0, 1e-9)
}

func TestRSI_RecoversAfterFlatWindow(t *testing.T) {
	closes := append(ramp(1, 10), flat(10, 20)...)
	rsi := CalculateRSI(closes, 5)
	if v := rsi[len(rsi)-1]; v.Value != 50 {
		t.Errorf("flat tail RSI = %f, want 50", v.Value)
	}
}

func TestBollinger_FlatSeriesZeroSpread(t *testing.T) {
	for _, v := range []float64{50, 0.1, 1234.5678} {
		closes := flat(v, 30)
		b := CalculateBollinger(closes, 20, 2)
		sma := CalculateSMA(closes, 20)
		for i := 19; i < len(closes); i++ {
			if b.Upper[i] != b.Lower[i] || b.Upper[i] != sma[i] {
				t.Errorf("value %v index %d: upper %+v lower %+v sma %+v", v, i, b.Upper[i], b.Lower[i], sma[i])
			}
		}
	}
}

func TestBollinger_SampleStdDev(t *testing.T) {
	closes := wave(120)
	const period = 20
	b := CalculateBollinger(closes, period, 2)
	mid := talib.Sma(closes, period)
	popStd := talib.StdDev(closes, period, 1)
	bessel := math.Sqrt(float64(period) / float64(period-1))
	for i := 0; i < len(closes); i++ {
		if i < period-1 {
			if b.Upper[i].Valid || b.Lower[i].Valid || b.Middle[i].Valid {
				t.Fatalf("bands defined at %d", i)
			}
			continue
		}
		spread := popStd[i] * bessel
		assertClose(t, "middle", b.Middle[i].Value, mid[i], 1e-9)
		assertClose(t, "upper", b.Upper[i].Value, mid[i]+2*spread, 1e-6)
		assertClose(t, "lower", b.Lower[i].Value, mid[i]-2*spread, 1e-6)
	}
}

func TestDefinedness_IsMonotonic(t *testing.T) {
	closes := wave(60)
	b := CalculateBollinger(closes, 20, 2)
	columns := map[string][]model.Optional{
		"sma5":  CalculateSMA(closes, 5),
		"sma20": CalculateSMA(closes, 20),
		"rsi":   CalculateRSI(closes, 14),
		"upper": b.Upper,
		"lower": b.Lower,
	}
	for name, col := range columns {
		seen := false
		for i, v := range col {
			if seen && !v.Valid {
				t.Errorf("%s: undefined at %d after being defined", name, i)
			}
			seen = seen || v.Valid
		}
		if !seen {
			t.Errorf("%s: never defined", name)
		}
	}
}

func TestWindow_NonFiniteLeavesWindow(t *testing.T) {
	closes := []float64{1, 2, math.NaN(), 4, 5, 6, 7}
	sma := CalculateSMA(closes, 3)
	for i := 2; i <= 4; i++ {
		if sma[i].Valid {
			t.Errorf("SMA[%d] should be undefined while NaN is in the window", i)
		}
	}
	assertClose(t, "SMA after NaN left", sma[5].Value, 5, 1e-12)
	assertClose(t, "SMA after NaN left", sma[6].Value, 6, 1e-12)
}

func TestSessionRange(t *testing.T) {
	bars := []model.PriceBar{
		{High: 10, Low: 8, Close: 9},
		{High: 12, Low: 9, Close: 11},
		{High: 11, Low: 7, Close: 8},
		{Close: 6.5},
		{High: math.NaN(), Low: math.NaN(), Close: math.NaN()},
	}
	high, low := SessionRange(bars)
	if high != model.Some(12) || low != model.Some(6.5) {
		t.Errorf("range = %v/%v, want 12/6.5", high, low)
	}
	if h, l := SessionRange(nil); h.Valid || l.Valid {
		t.Error("empty input should give an undefined range")
	}

	assertClose(t, "position", RangePosition(9.5, model.Some(12), model.Some(7)).Value, 0.5, 1e-12)
	if pos := RangePosition(5, model.Some(5), model.Some(5)); pos != model.Some(0.5) {
		t.Errorf("flat range position = %v, want 0.5", pos)
	}
	if pos := RangePosition(20, model.Some(12), model.Some(7)); pos != model.Some(1) {
		t.Errorf("position above range = %v, want clamped 1", pos)
	}
	if pos := RangePosition(9, model.None(), model.Some(7)); pos.Valid {
		t.Error("undefined high should give an undefined position")
	}
	if pos := RangePosition(9, model.Some(7), model.Some(12)); pos.Valid {
		t.Error("inverted range should give an undefined position")
	}
}

func TestInfinityInWindowIsUndefined(t *testing.T) {
	closes := []float64{1, 2, math.Inf(1), 3, 4, 5}
	sma := CalculateSMA(closes, 3)
	for i := 2; i <= 4; i++ {
		if sma[i].Valid {
			t.Errorf("SMA[%d] = %v, want undefined while +Inf is in the window", i, sma[i])
		}
	}
	assertClose(t, "SMA after +Inf left", sma[5].Value, 4, 1e-12)

	bands := CalculateBollinger([]float64{1, 2, math.Inf(-1), 3, 4, 5}, 3, 2)
	for i := 2; i <= 4; i++ {
		if bands.Upper[i].Valid || bands.Lower[i].Valid || bands.Middle[i].Valid {
			t.Errorf("bands[%d] should be undefined while -Inf is in the window", i)
		}
	}
	if !bands.Upper[5].Valid {
		t.Error("bands should recover once -Inf leaves the window")
	}

	rsi := CalculateRSI([]float64{1, 2, math.Inf(1), 3, 4, 5, 6, 7}, 3)
	for i, v := range rsi {
		if v.Valid && (v.Value < 0 || v.Value > 100) {
			t.Errorf("RSI[%d] = %v out of bounds", i, v.Value)
		}
	}
	if rsi[3].Valid {
		t.Errorf("RSI[3] = %v, want undefined with an infinite delta", rsi[3])
	}
	if v, ok := rsi[7].Get(); !ok || v != 100 {
		t.Errorf("RSI[7] = %v, want 100 once the infinite deltas left", rsi[7])
	}
}

func TestOverflowingSumRecovers(t *testing.T) {
	closes := []float64{1e308, 1e308, 1e308, 1, 2, 3}
	sma := CalculateSMA(closes, 3)
	if sma[2].Valid || sma[3].Valid {
		t.Errorf("overflowing windows should be undefined, got %v %v", sma[2], sma[3])
	}
	if !sma[4].Valid {
		t.Error("SMA[4] fits in a float64 and should be defined")
	}
	if sma[5] != model.Some(2) {
		t.Errorf("SMA[5] = %v, want exactly 2 after the huge values left", sma[5])
	}

	bands := CalculateBollinger(flat(1e308, 25), 20, 2)
	if last := len(bands.Upper) - 1; bands.Upper[last].Valid || bands.Middle[last].Valid {
		t.Errorf("overflowing bands should be undefined, got %v/%v", bands.Middle[last], bands.Upper[last])
	}
}

func TestSomeRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if model.Some(v).Valid {
			t.Errorf("Some(%v) should be undefined", v)
		}
	}
	if o := model.Some(1e308); !o.Valid || o.Value != 1e308 {
		t.Errorf("Some(1e308) = %v, want defined", o)
	}
}
