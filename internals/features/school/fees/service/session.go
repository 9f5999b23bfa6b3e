package service

import (
	"time"

	"github.com/google/uuid"
)

// The academic session runs April through March. Every proration in the
// ledger uses the same session-relative month index.

// SessionMonths in fixed session order (index 0 = April .. 11 = March).
var SessionMonths = [12]string{
	"April", "May", "June", "July", "August", "September",
	"October", "November", "December", "January", "February", "March",
}

// SessionMonthIndex maps a calendar month to its session index
// (April=0 .. March=11).
func SessionMonthIndex(m time.Month) int {
	return (int(m) + 8) % 12
}

// MonthsRemaining counts the months left in the current session, inclusive
// of the current month (March yields exactly 1).
func MonthsRemaining(now time.Time) int {
	return 12 - SessionMonthIndex(now.Month())
}

// SessionStart returns April 1 of the session containing now. This is also
// the fee record due date.
func SessionStart(now time.Time) time.Time {
	year := now.Year()
	if now.Month() < time.April {
		year--
	}
	return time.Date(year, time.April, 1, 0, 0, 0, 0, now.Location())
}

// TenantContext scopes every ledger operation to an authenticated tenant.
// Controllers build it from token claims; the engine never reads ambient
// request state.
type TenantContext struct {
	BranchID uuid.UUID
	ActorID  uuid.UUID
}
