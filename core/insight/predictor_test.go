package insight

import "testing"

func TestPredictNextGPA(t *testing.T) {
	tests := []struct {
		name string
		gpas []float64
		want float64
	}{
		{name: "no history", gpas: nil, want: 0.0},
		{name: "empty history", gpas: []float64{}, want: 0.0},
		{name: "single semester predicts itself", gpas: []float64{3.1}, want: 3.1},
		{name: "steady upward trend", gpas: []float64{3.0, 3.2, 3.4, 3.6}, want: 3.8},
		{name: "steady downward trend", gpas: []float64{3.5, 3.0, 2.5}, want: 2.0},
		{name: "flat line", gpas: []float64{3.0, 3.0, 3.0}, want: 3.0},
		{name: "clamped to scale max", gpas: []float64{2.0, 3.0, 4.0}, want: 4.0},
		{name: "clamped to zero", gpas: []float64{0.5, 0.1}, want: 0.0},
		{name: "noisy but improving", gpas: []float64{2.0, 2.6, 2.4, 3.0}, want: 3.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PredictNextGPA(tt.gpas); got != tt.want {
				t.Errorf("PredictNextGPA() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPredictNextGPA_alwaysOnScale(t *testing.T) {
	histories := [][]float64{
		{0.0, 0.0, 0.0},
		{4.0, 4.0, 4.0, 4.0},
		{0.1, 3.9, 0.1, 3.9},
		{1.0, 2.0, 3.0, 4.0, 4.0},
	}
	for _, gpas := range histories {
		if got := PredictNextGPA(gpas); got < 0 || got > 4 {
			t.Errorf("PredictNextGPA(%v) = %v, out of [0, 4]", gpas, got)
		}
	}
}
