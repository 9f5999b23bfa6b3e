package seeds

import (
	"errors"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shiksha_backend/internals/constants"
	branchModel "shiksha_backend/internals/features/school/branches/model"
	staffModel "shiksha_backend/internals/features/school/staff/model"
)

// SeedBootstrapBranch creates the first branch and its admin so a fresh
// install has something to log in against. Controlled by env:
//
//	SEED_BRANCH_NAME / SEED_BRANCH_CODE
//	SEED_ADMIN_NAME / SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD
func SeedBootstrapBranch(db *gorm.DB) error {
	code := envOr("SEED_BRANCH_CODE", "MAIN")
	name := envOr("SEED_BRANCH_NAME", "Main Branch")

	var branch branchModel.BranchModel
	err := db.Where("branch_code = ?", code).First(&branch).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		branch = branchModel.BranchModel{
			BranchName: name,
			BranchCode: code,
		}
		if err := db.Create(&branch).Error; err != nil {
			return err
		}
		log.Printf("[SEED] created branch %s (%s)", name, code)
	case err != nil:
		return err
	}

	return seedAdmin(db, branch.BranchID)
}

func seedAdmin(db *gorm.DB, branchID uuid.UUID) error {
	email := envOr("SEED_ADMIN_EMAIL", "admin@shiksha.local")

	var count int64
	if err := db.Model(&staffModel.StaffModel{}).
		Where("staff_email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := envOr("SEED_ADMIN_PASSWORD", "changeme123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := staffModel.StaffModel{
		StaffBranchID:     branchID,
		StaffName:         envOr("SEED_ADMIN_NAME", "Administrator"),
		StaffEmail:        email,
		StaffRole:         constants.RoleAdmin,
		StaffPasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("[SEED] created admin %s", email)
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
