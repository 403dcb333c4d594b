package reports

import "testing"

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		month, year int
		want        string
	}{
		{1, 2024, "January 2024"},
		{6, 2023, "June 2023"},
		{12, 2025, "December 2025"},
	}
	for _, tt := range tests {
		if got := MonthLabel(tt.month, tt.year); got != tt.want {
			t.Errorf("MonthLabel(%d, %d) = %q, want %q", tt.month, tt.year, got, tt.want)
		}
	}
}

func TestMonthLabelPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MonthLabel(0, ...) did not panic")
		}
	}()
	MonthLabel(0, 2024)
}

func TestDiagnosisPercentage(t *testing.T) {
	tests := []struct {
		name         string
		count, total int
		want         float64
	}{
		{"half", 5, 10, 50},
		{"all", 10, 10, 100},
		{"none registered", 5, 0, 0},
		{"negative total", 5, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiagnosisPercentage(tt.count, tt.total); got != tt.want {
				t.Errorf("DiagnosisPercentage(%d, %d) = %v, want %v", tt.count, tt.total, got, tt.want)
			}
		})
	}
}

func TestAverageVisitsPerPatient(t *testing.T) {
	if got := AverageVisitsPerPatient(10, 4); got != 2.5 {
		t.Errorf("AverageVisitsPerPatient(10, 4) = %v, want 2.5", got)
	}
	if got := AverageVisitsPerPatient(10, 0); got != 0 {
		t.Errorf("AverageVisitsPerPatient(10, 0) = %v, want 0", got)
	}
}
