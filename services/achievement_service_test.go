package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestLostUnlockRace(t *testing.T) {
	if !lostUnlockRace(pgx.ErrNoRows) {
		t.Error("a no-rows result is the lost-race case")
	}
	if !lostUnlockRace(fmt.Errorf("scan: %w", pgx.ErrNoRows)) {
		t.Error("wrapped no-rows result is still the lost-race case")
	}
	if lostUnlockRace(errors.New("connection reset by peer")) {
		t.Error("a transport error must not be treated as a lost race")
	}
	if lostUnlockRace(nil) {
		t.Error("nil error is a successful unlock, not a lost race")
	}
}
