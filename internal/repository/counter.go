package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tasktracker/internal/models"
)

// maxSequence is the largest number the four-digit identifier suffix can
// carry. Allocation fails loudly past it rather than wrapping into collisions.
const maxSequence = 9999

// ErrSequenceExhausted is returned when a (kind, year) sequence has issued
// all 9999 identifiers.
var ErrSequenceExhausted = errors.New("identifier sequence exhausted for this year")

// nextSequence increments and returns the counter for (kind, year). It must
// run inside the transaction that inserts the owning entity: the UPDATE takes
// the row lock, so two concurrent allocations for the same key serialize, and
// an aborted caller rolls the increment back with everything else.
func nextSequence(tx *gorm.DB, kind, yearKey string) (int, error) {
	res := tx.Model(&models.IDCounter{}).
		Where("entity_kind = ? AND year = ?", kind, yearKey).
		Update("last_number", gorm.Expr("last_number + 1"))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to increment id counter: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		// First allocation for this key. A concurrent first allocation loses
		// the insert race with gorm.ErrDuplicatedKey, aborting the caller's
		// transaction; a full retry of the operation is then safe.
		counter := models.IDCounter{EntityKind: kind, Year: yearKey, LastNumber: 1}
		if err := tx.Create(&counter).Error; err != nil {
			return 0, fmt.Errorf("failed to seed id counter: %w", err)
		}
		return 1, nil
	}

	var counter models.IDCounter
	if err := tx.Where("entity_kind = ? AND year = ?", kind, yearKey).
		First(&counter).Error; err != nil {
		return 0, fmt.Errorf("failed to read id counter: %w", err)
	}

	if counter.LastNumber > maxSequence {
		return 0, ErrSequenceExhausted
	}

	return counter.LastNumber, nil
}
