package usecase

import (
	"context"
	"math"
	"time"

	"github.com/mkovalcik/mcrm-backend/internal/entity"
)

// PayrollUseCase computes monthly salaries: full base salary plus KPI
// threshold bonuses from the global salary rules. Attendance-pro-rated
// pay for the employee's own view is computed separately by
// AttendancePay.
type PayrollUseCase struct {
	Profiles entity.ProfileRepositoryInterface
	Records  entity.RecordRepositoryInterface
	Settings entity.SettingsRepositoryInterface
}

func NewPayrollUseCase(
	profiles entity.ProfileRepositoryInterface,
	records entity.RecordRepositoryInterface,
	settings entity.SettingsRepositoryInterface,
) *PayrollUseCase {
	return &PayrollUseCase{Profiles: profiles, Records: records, Settings: settings}
}

type SalarySummary struct {
	UserID          string  `json:"user_id"`
	Name            string  `json:"name"`
	Base            float64 `json:"base"`
	Bonus           float64 `json:"bonus"`
	Total           float64 `json:"total"`
	Minutes         int     `json:"minutes"`
	SuccessfulCalls int     `json:"successful_calls"`
	Accounts        int     `json:"accounts"`

	// Attendance view: base pay pro-rated by days actually worked.
	PresentDays   int     `json:"present_days"`
	Workdays      int     `json:"workdays"`
	AttendancePay float64 `json:"attendance_pay"`
}

// Execute computes summaries for all active employees when the viewer
// is an admin, otherwise only for the viewer.
func (uc *PayrollUseCase) Execute(ctx context.Context, viewer *entity.Profile, monthStart, monthEnd string) ([]SalarySummary, error) {
	if viewer == nil {
		return nil, &DomainError{Code: "MISSING_USER_ID", Message: "viewer profile is required"}
	}

	var who []entity.Profile
	if viewer.IsAdmin() {
		all, err := uc.Profiles.List(ctx)
		if err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to list profiles: " + err.Error()}
		}
		for _, p := range all {
			if p.Active {
				who = append(who, p)
			}
		}
	} else {
		who = []entity.Profile{*viewer}
	}

	records, err := uc.Records.List(ctx, entity.RecordFilter{From: monthStart, To: monthEnd})
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to list records: " + err.Error()}
	}

	rules := entity.DefaultSalaryRules()
	if settings, err := uc.Settings.Get(ctx); err == nil && settings != nil {
		rules = settings.SalaryRules
	}

	workdays := CountWorkdaysBetween(monthStart, monthEnd)

	summaries := make([]SalarySummary, 0, len(who))
	for _, u := range who {
		var minutes, calls, accounts, presentDays int
		for _, r := range records {
			if r.UserID != u.ID {
				continue
			}
			minutes += r.Minutes
			calls += r.SuccessfulCalls
			accounts += r.Accounts
			if r.Present {
				presentDays++
			}
		}

		var bonus float64
		if rules.BonusEnabled {
			if minutes >= rules.MinutesThreshold {
				bonus += rules.MinutesBonus
			}
			if calls >= rules.SuccessfulCallsThreshold {
				bonus += rules.SuccessfulCallsBonus
			}
			if accounts >= rules.AccountsThreshold {
				bonus += rules.AccountsBonus
			}
		}

		summaries = append(summaries, SalarySummary{
			UserID:          u.ID,
			Name:            u.DisplayName(),
			Base:            u.BaseSalary,
			Bonus:           bonus,
			Total:           u.BaseSalary + bonus,
			Minutes:         minutes,
			SuccessfulCalls: calls,
			Accounts:        accounts,
			PresentDays:     presentDays,
			Workdays:        workdays,
			AttendancePay:   AttendancePay(u.BaseSalary, presentDays, workdays),
		})
	}

	return summaries, nil
}

// AttendancePay pro-rates the base salary by present days over
// workdays in the month, rounded to cents.
func AttendancePay(baseSalary float64, presentDays, workdays int) float64 {
	if baseSalary == 0 || workdays == 0 {
		return 0
	}
	return round2(baseSalary * float64(presentDays) / float64(workdays))
}

// CountWorkdaysBetween counts Mon-Fri days in the inclusive
// YYYY-MM-DD range. Malformed bounds count as zero workdays.
func CountWorkdaysBetween(fromDate, toDate string) int {
	from, err := time.Parse("2006-01-02", fromDate)
	if err != nil {
		return 0
	}
	to, err := time.Parse("2006-01-02", toDate)
	if err != nil {
		return 0
	}

	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd >= time.Monday && wd <= time.Friday {
			n++
		}
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
