package seeds

import (
	"gorm.io/gorm"
)

// Run executes all bootstrap seeds. Every seed is idempotent, so running
// this on an already-seeded database is safe.
func Run(db *gorm.DB) error {
	if err := SeedBootstrapBranch(db); err != nil {
		return err
	}
	return nil
}
