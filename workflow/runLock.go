package workflow

import (
	"fmt"

	"gorm.io/gorm"
)

// AcquireRunLock serializes pipeline runs across instances using MySQL
// advisory locks.
// NOTE: GET_LOCK is connection-scoped, so this must be called on the same
// *gorm.DB that will execute the run.
func AcquireRunLock(tx *gorm.DB, pipeline string) error {
	lockName := fmt.Sprintf("analytics:%s", pipeline)
	var ok int
	if err := tx.Raw("SELECT GET_LOCK(?, 30)", lockName).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire run lock for pipeline=%s", pipeline)
	}
	return nil
}

func ReleaseRunLock(tx *gorm.DB, pipeline string) {
	lockName := fmt.Sprintf("analytics:%s", pipeline)
	var _ok int
	_ = tx.Raw("SELECT RELEASE_LOCK(?)", lockName).Scan(&_ok).Error
}
