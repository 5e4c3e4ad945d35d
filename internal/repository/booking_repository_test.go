package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestBackstopConflictNamesOnlyTakenSeats(t *testing.T) {
	// B2 is the seat that tripped the unique key; A1 is still free and
	// must not be reported as a conflict.
	err := backstopConflict([]string{"A1", "B2"}, []string{"B2", "C3"})
	assert.Equal(t, []string{"B2"}, err.Seats)

	err = backstopConflict([]string{"C3", "B2"}, []string{"B2", "C3"})
	assert.Equal(t, []string{"C3", "B2"}, err.Seats)
}

func TestBackstopConflictWithoutFreshRead(t *testing.T) {
	// When the ledger cannot be re-read, the full request is the best
	// available answer.
	err := backstopConflict([]string{"A1", "B2"}, nil)
	assert.Equal(t, []string{"A1", "B2"}, err.Seats)

	// An empty intersection means the re-read missed the competing
	// commit; still fall back rather than claim no conflict.
	err = backstopConflict([]string{"A1"}, []string{"D4"})
	assert.Equal(t, []string{"A1"}, err.Seats)
}

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	assert.True(t, isDuplicateKey(dup))
	assert.True(t, isDuplicateKey(fmt.Errorf("insert seats: %w", dup)))

	assert.False(t, isDuplicateKey(&mysql.MySQLError{Number: 1213}))
	assert.False(t, isDuplicateKey(errors.New("connection refused")))
	assert.False(t, isDuplicateKey(nil))
}
