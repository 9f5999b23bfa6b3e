package service

import (
	"encoding/json"
	"fmt"

	model "shiksha_backend/internals/features/school/fees/model"
)

// ServiceTerm is a recurring monthly charge (hostel room, transport stop)
// active from a session month onward. StartMonth < 0 means no service.
type ServiceTerm struct {
	Name       string
	MonthlyFee int
	StartMonth int
}

// BreakdownInput carries everything ComputeMonthlyBreakdown needs; the
// function itself performs no I/O.
type BreakdownInput struct {
	AnnualAmount int
	Months       []model.TemplateMonth // nil when the template has no explicit schedule
	Hostel       ServiceTerm
	Transport    ServiceTerm
}

type BreakdownComponent struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

type MonthBreakdown struct {
	Month      string               `json:"month"`
	Tuition    int                  `json:"tuition"`
	Hostel     int                  `json:"hostel,omitempty"`
	Transport  int                  `json:"transport,omitempty"`
	Total      int                  `json:"total"`
	Components []BreakdownComponent `json:"components"`
}

// ParseTemplateMonths decodes a template's JSONB schedule. A null/empty
// column yields nil (spread the annual amount instead).
func ParseTemplateMonths(raw []byte) ([]model.TemplateMonth, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var months []model.TemplateMonth
	if err := json.Unmarshal(raw, &months); err != nil {
		return nil, fmt.Errorf("invalid monthly breakdown: %w", err)
	}
	return months, nil
}

// tuitionForMonth resolves one month's tuition: the explicit month entry when
// a schedule exists (components summed, else its total), otherwise
// ceil(annual/12). Months missing from an explicit schedule are 0.
func tuitionForMonth(in BreakdownInput, monthName string) (int, []BreakdownComponent) {
	if in.Months == nil {
		amt := (in.AnnualAmount + 11) / 12
		if amt == 0 {
			return 0, nil
		}
		return amt, []BreakdownComponent{{Name: "Tuition", Amount: amt}}
	}
	for _, tm := range in.Months {
		if tm.Month != monthName {
			continue
		}
		if len(tm.Components) > 0 {
			sum := 0
			comps := make([]BreakdownComponent, 0, len(tm.Components))
			for _, c := range tm.Components {
				sum += c.Amount
				comps = append(comps, BreakdownComponent{Name: c.Name, Amount: c.Amount})
			}
			return sum, comps
		}
		if tm.Total == 0 {
			return 0, nil
		}
		return tm.Total, []BreakdownComponent{{Name: "Tuition", Amount: tm.Total}}
	}
	return 0, nil
}

// ComputeMonthlyBreakdown produces the 12 academic months April..March with
// itemized components, plus the accumulated annual total. Pure compute, no
// side effects; the annual total doubles as the derived netTotal base when no
// fee record has been materialized yet.
func ComputeMonthlyBreakdown(in BreakdownInput) ([]MonthBreakdown, int) {
	out := make([]MonthBreakdown, 0, 12)
	annual := 0

	for idx, name := range SessionMonths {
		tuition, comps := tuitionForMonth(in, name)

		mb := MonthBreakdown{
			Month:      name,
			Tuition:    tuition,
			Components: comps,
		}

		if in.Hostel.StartMonth >= 0 && in.Hostel.MonthlyFee > 0 && idx >= in.Hostel.StartMonth {
			mb.Hostel = in.Hostel.MonthlyFee
			mb.Components = append(mb.Components, BreakdownComponent{Name: "Hostel", Amount: in.Hostel.MonthlyFee})
		}
		if in.Transport.StartMonth >= 0 && in.Transport.MonthlyFee > 0 && idx >= in.Transport.StartMonth {
			mb.Transport = in.Transport.MonthlyFee
			mb.Components = append(mb.Components, BreakdownComponent{Name: "Transport", Amount: in.Transport.MonthlyFee})
		}

		mb.Total = mb.Tuition + mb.Hostel + mb.Transport
		annual += mb.Total
		out = append(out, mb)
	}

	return out, annual
}
