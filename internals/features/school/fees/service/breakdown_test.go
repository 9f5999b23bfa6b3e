package service

import (
	"testing"
	"time"

	model "shiksha_backend/internals/features/school/fees/model"
)

func noService() ServiceTerm { return ServiceTerm{StartMonth: -1} }

func TestComputeMonthlyBreakdownSpreadsAnnualAmount(t *testing.T) {
	months, annual := ComputeMonthlyBreakdown(BreakdownInput{
		AnnualAmount: 12000,
		Hostel:       noService(),
		Transport:    noService(),
	})

	if len(months) != 12 {
		t.Fatalf("got %d months, want 12", len(months))
	}
	if months[0].Month != "April" || months[11].Month != "March" {
		t.Errorf("month order %s..%s, want April..March", months[0].Month, months[11].Month)
	}
	for _, m := range months {
		if m.Tuition != 1000 {
			t.Errorf("%s tuition = %d, want 1000", m.Month, m.Tuition)
		}
		if m.Total != 1000 {
			t.Errorf("%s total = %d, want 1000", m.Month, m.Total)
		}
	}
	if annual != 12000 {
		t.Errorf("annual = %d, want 12000", annual)
	}
}

func TestComputeMonthlyBreakdownCeilsUnevenSpread(t *testing.T) {
	// 10000/12 = 833.33, spread rounds up per month.
	months, annual := ComputeMonthlyBreakdown(BreakdownInput{
		AnnualAmount: 10000,
		Hostel:       noService(),
		Transport:    noService(),
	})
	for _, m := range months {
		if m.Tuition != 834 {
			t.Errorf("%s tuition = %d, want 834", m.Month, m.Tuition)
		}
	}
	if annual != 834*12 {
		t.Errorf("annual = %d, want %d", annual, 834*12)
	}
}

func TestComputeMonthlyBreakdownExplicitSchedule(t *testing.T) {
	months, annual := ComputeMonthlyBreakdown(BreakdownInput{
		AnnualAmount: 99999, // ignored when a schedule exists
		Months: []model.TemplateMonth{
			{Month: "April", Components: []model.TemplateComponent{
				{Name: "Tuition", Amount: 800},
				{Name: "Admission", Amount: 1200},
			}},
			{Month: "May", Total: 800},
		},
		Hostel:    noService(),
		Transport: noService(),
	})

	if months[0].Tuition != 2000 {
		t.Errorf("April tuition = %d, want 2000 (components summed)", months[0].Tuition)
	}
	if len(months[0].Components) != 2 {
		t.Errorf("April components = %d, want 2", len(months[0].Components))
	}
	if months[1].Tuition != 800 {
		t.Errorf("May tuition = %d, want 800", months[1].Tuition)
	}
	// months absent from an explicit schedule carry nothing
	if months[2].Tuition != 0 || months[2].Total != 0 {
		t.Errorf("June = %d/%d, want 0/0", months[2].Tuition, months[2].Total)
	}
	if annual != 2800 {
		t.Errorf("annual = %d, want 2800", annual)
	}
}

func TestComputeMonthlyBreakdownServiceStartsMidSession(t *testing.T) {
	// Hostel picked up in the third session month (June, index 2) at 500/mo:
	// June..March = 10 months of hostel.
	start := SessionMonthIndex(time.June)
	months, annual := ComputeMonthlyBreakdown(BreakdownInput{
		AnnualAmount: 12000,
		Hostel:       ServiceTerm{Name: "Hostel", MonthlyFee: 500, StartMonth: start},
		Transport:    noService(),
	})

	for i, m := range months {
		wantHostel := 0
		if i >= start {
			wantHostel = 500
		}
		if m.Hostel != wantHostel {
			t.Errorf("%s hostel = %d, want %d", m.Month, m.Hostel, wantHostel)
		}
		if m.Total != m.Tuition+m.Hostel {
			t.Errorf("%s total = %d, want tuition+hostel", m.Month, m.Total)
		}
	}
	if annual != 12000+500*10 {
		t.Errorf("annual = %d, want %d", annual, 12000+500*10)
	}
}

func TestComputeMonthlyBreakdownBothServices(t *testing.T) {
	months, annual := ComputeMonthlyBreakdown(BreakdownInput{
		AnnualAmount: 0,
		Hostel:       ServiceTerm{Name: "Hostel", MonthlyFee: 500, StartMonth: 0},
		Transport:    ServiceTerm{Name: "Transport", MonthlyFee: 300, StartMonth: 6},
	})
	if months[0].Total != 500 {
		t.Errorf("April total = %d, want 500", months[0].Total)
	}
	if months[6].Total != 800 {
		t.Errorf("October total = %d, want 800", months[6].Total)
	}
	if annual != 500*12+300*6 {
		t.Errorf("annual = %d, want %d", annual, 500*12+300*6)
	}
}

func TestParseTemplateMonths(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLen int
		wantErr bool
	}{
		{"empty", "", 0, false},
		{"null", "null", 0, false},
		{"valid", `[{"month":"April","total":100}]`, 1, false},
		{"garbage", `{not json`, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			months, err := ParseTemplateMonths([]byte(tc.raw))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(months) != tc.wantLen {
				t.Errorf("len = %d, want %d", len(months), tc.wantLen)
			}
		})
	}
}
