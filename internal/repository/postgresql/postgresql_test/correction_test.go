package postgresql_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/database"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/jwt"
	"github.com/workpulse/workpulse-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workpulse/workpulse-backend-go/internal/service/attendance"
)

var testJWT = jwt.NewJWTService("integration-test-secret", "1h", "24h")

// authedCtx builds the request context the middleware would produce for u.
func authedCtx(t *testing.T, u user.User) context.Context {
	t.Helper()

	tokenString, _, err := testJWT.GenerateAccessToken(u.ID, u.Email, u.Role)
	require.NoError(t, err)

	token, err := testJWT.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func createStaffUser(t *testing.T, db *database.DB, role user.Role) user.User {
	t.Helper()
	repo := postgresql.NewUserRepository(db)

	created, err := repo.Create(context.Background(), user.User{
		Name:       "Test Supervisor",
		Email:      fmt.Sprintf("supervisor-%d@example.com", time.Now().UnixNano()),
		Role:       role,
		Status:     user.StatusActive,
		Department: "people",
		JoinDate:   time.Now().UTC(),
		Schedule:   user.DefaultSchedule(),
	})
	require.NoError(t, err)
	return created
}

func TestCorrectionApprovalHold(t *testing.T) {
	db := testConn(t)
	truncateTables(t, db)
	ctx := context.Background()

	u := createTestUser(t, db)
	admin := createStaffUser(t, db, user.RoleAdmin)
	repo := postgresql.NewAttendanceRepository(db)
	svc := attendanceService.NewAttendanceService(db, repo)

	checkIn := time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC)
	day, err := repo.Create(ctx, attendance.AttendanceDay{
		UserID:   u.ID,
		WorkDate: "2026-03-02",
		CheckIn:  &checkIn,
		Status:   attendance.StatusPresent,
	})
	require.NoError(t, err)

	correction, err := svc.SubmitCorrection(authedCtx(t, u), attendance.CorrectionInput{
		Field:    "check_out",
		NewValue: "17:30",
		Reason:   "forgot to badge out",
		Date:     "2026-03-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", correction.Status)

	// Submitting puts the record on hold until someone resolves it.
	held, err := repo.GetByID(ctx, day.ID)
	require.NoError(t, err)
	assert.True(t, held.ApprovalRequired)
	require.NotNil(t, held.ApprovalReason)
	assert.Contains(t, *held.ApprovalReason, "check_out")

	resolved, err := svc.ResolveCorrection(authedCtx(t, admin), correction.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "approved", resolved.Status)

	applied, err := repo.GetByID(ctx, day.ID)
	require.NoError(t, err)
	require.NotNil(t, applied.CheckOut)
	assert.Equal(t, time.Date(2026, time.March, 2, 17, 30, 0, 0, time.UTC), applied.CheckOut.UTC())
	assert.Equal(t, 540, applied.WorkingMinutes)

	// Resolving the last pending correction releases the hold.
	assert.False(t, applied.ApprovalRequired)
	assert.Nil(t, applied.ApprovalReason)
}

func TestCorrectionRejectReleasesHold(t *testing.T) {
	db := testConn(t)
	truncateTables(t, db)
	ctx := context.Background()

	u := createTestUser(t, db)
	hr := createStaffUser(t, db, user.RoleHR)
	repo := postgresql.NewAttendanceRepository(db)
	svc := attendanceService.NewAttendanceService(db, repo)

	checkIn := time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC)
	checkOut := time.Date(2026, time.March, 2, 17, 0, 0, 0, time.UTC)
	day, err := repo.Create(ctx, attendance.AttendanceDay{
		UserID:   u.ID,
		WorkDate: "2026-03-02",
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		Status:   attendance.StatusPresent,
	})
	require.NoError(t, err)

	correction, err := svc.SubmitCorrection(authedCtx(t, u), attendance.CorrectionInput{
		Field:    "status",
		NewValue: attendance.StatusLate,
		Reason:   "badge reader was down",
		Date:     "2026-03-02",
	})
	require.NoError(t, err)

	resolved, err := svc.ResolveCorrection(authedCtx(t, hr), correction.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "rejected", resolved.Status)

	after, err := repo.GetByID(ctx, day.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, after.Status)
	assert.False(t, after.ApprovalRequired)
	assert.Nil(t, after.ApprovalReason)
}

func TestCorrectionApprovalRejectsInvertedTimes(t *testing.T) {
	db := testConn(t)
	truncateTables(t, db)
	ctx := context.Background()

	u := createTestUser(t, db)
	admin := createStaffUser(t, db, user.RoleAdmin)
	repo := postgresql.NewAttendanceRepository(db)
	svc := attendanceService.NewAttendanceService(db, repo)

	checkIn := time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC)
	day, err := repo.Create(ctx, attendance.AttendanceDay{
		UserID:   u.ID,
		WorkDate: "2026-03-02",
		CheckIn:  &checkIn,
		Status:   attendance.StatusPresent,
	})
	require.NoError(t, err)

	correction, err := svc.SubmitCorrection(authedCtx(t, u), attendance.CorrectionInput{
		Field:    "check_out",
		NewValue: "07:00",
		Reason:   "typo",
		Date:     "2026-03-02",
	})
	require.NoError(t, err)

	_, err = svc.ResolveCorrection(authedCtx(t, admin), correction.ID, true)
	assert.ErrorIs(t, err, attendance.ErrCorrectionOutOfOrder)

	// The failed approval rolls back; the request stays pending.
	after, err := repo.GetCorrection(ctx, correction.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", after.Status)

	held, err := repo.GetByID(ctx, day.ID)
	require.NoError(t, err)
	assert.True(t, held.ApprovalRequired)
}

func TestCurrentBreakStatus(t *testing.T) {
	db := testConn(t)
	truncateTables(t, db)
	ctx := context.Background()

	u := createTestUser(t, db)
	repo := postgresql.NewAttendanceRepository(db)
	svc := attendanceService.NewAttendanceService(db, repo)

	// No record yet: not on break.
	status, err := svc.CurrentBreak(authedCtx(t, u))
	require.NoError(t, err)
	assert.False(t, status.OnBreak)
	assert.Nil(t, status.Break)

	now := time.Now().UTC()
	workDate := now.Format("2006-01-02")
	checkIn := now.Add(-2 * time.Hour)
	day, err := repo.Create(ctx, attendance.AttendanceDay{
		UserID:   u.ID,
		WorkDate: workDate,
		CheckIn:  &checkIn,
		Status:   attendance.StatusPresent,
	})
	require.NoError(t, err)

	b, err := repo.AddBreak(ctx, attendance.BreakInterval{
		AttendanceID: day.ID,
		Category:     attendance.BreakLunch,
		StartAt:      now.Add(-10 * time.Minute),
	})
	require.NoError(t, err)

	status, err = svc.CurrentBreak(authedCtx(t, u))
	require.NoError(t, err)
	assert.True(t, status.OnBreak)
	require.NotNil(t, status.Break)
	assert.Equal(t, b.ID, status.Break.ID)

	end := now
	dur := 10
	require.NoError(t, repo.CloseBreak(ctx, attendance.BreakInterval{
		ID:              b.ID,
		EndAt:           &end,
		DurationMinutes: &dur,
	}))

	status, err = svc.CurrentBreak(authedCtx(t, u))
	require.NoError(t, err)
	assert.False(t, status.OnBreak)
}
