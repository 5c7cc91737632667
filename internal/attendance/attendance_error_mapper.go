package attendance

import (
	"errors"
	"strings"

	attendanceerrors "go-empms/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapCreateError translates the unique (employee_id, attendance_date)
// violation into the same conflict the in-transaction check raises, so
// the loser of a concurrent clock-in race sees AlreadyClockedIn and
// never a raw storage error.
func mapCreateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_employee_date" {
			return attendanceerrors.ErrAlreadyClockedIn
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_employee_date") {
		return attendanceerrors.ErrAlreadyClockedIn
	}

	return err
}
