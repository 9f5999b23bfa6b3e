package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	branchModel "shiksha_backend/internals/features/school/branches/model"
	"shiksha_backend/internals/features/school/fees/service"
)

// StartFeeSummaryScheduler refreshes every branch's fee summary snapshot
// nightly at 02:00. Best-effort: a failed branch is logged and skipped.
func StartFeeSummaryScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("0 2 * * *", func() {
		refreshAll(db)
	})
	if err != nil {
		log.Printf("fee summary scheduler setup failed: %v", err)
		return c
	}

	c.Start()
	log.Println("fee summary scheduler started (nightly 02:00)")
	return c
}

func refreshAll(db *gorm.DB) {
	var branches []branchModel.BranchModel
	if err := db.Find(&branches).Error; err != nil {
		log.Printf("fee summary refresh: list branches: %v", err)
		return
	}
	for _, b := range branches {
		if _, err := service.RefreshFeeSummary(db, b.BranchID); err != nil {
			log.Printf("fee summary refresh: branch %s: %v", b.BranchID, err)
		}
	}
	log.Printf("fee summary refresh done for %d branches", len(branches))
}
