package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/database"
	"github.com/workpulse/workpulse-backend-go/internal/repository/postgresql"
)

var testDB *database.DB

// testConn connects to TEST_DATABASE_URL, skipping the suite when unset so
// the tests pass on machines without a database.
func testConn(t *testing.T) *database.DB {
	t.Helper()

	if testDB != nil {
		return testDB
	}

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	testDB = db
	return testDB
}

func truncateTables(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()
	_, err := db.Exec(ctx, "TRUNCATE TABLE users CASCADE")
	require.NoError(t, err)
}

func createTestUser(t *testing.T, db *database.DB) user.User {
	t.Helper()
	repo := postgresql.NewUserRepository(db)

	email := fmt.Sprintf("worker-%d@example.com", time.Now().UnixNano())
	created, err := repo.Create(context.Background(), user.User{
		Name:       "Test Worker",
		Email:      email,
		Role:       user.RoleEmployee,
		Status:     user.StatusActive,
		Department: "engineering",
		JoinDate:   time.Now().UTC(),
		Schedule:   user.DefaultSchedule(),
	})
	require.NoError(t, err)
	return created
}

func TestAttendanceCreateAndDuplicate(t *testing.T) {
	db := testConn(t)
	truncateTables(t, db)
	ctx := context.Background()

	u := createTestUser(t, db)
	repo := postgresql.NewAttendanceRepository(db)

	checkIn := time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC)
	day, err := repo.Create(ctx, attendance.AttendanceDay{
		UserID:   u.ID,
		WorkDate: "2026-03-02",
		CheckIn:  &checkIn,
		Status:   attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, day.ID)

	// Same user, same day: the unique constraint turns the second insert
	// into the check-in conflict error.
	_, err = repo.Create(ctx, attendance.AttendanceDay{
		UserID:   u.ID,
		WorkDate: "2026-03-02",
		CheckIn:  &checkIn,
		Status:   attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	got, err := repo.GetByUserAndDate(ctx, u.ID, "2026-03-02")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, day.ID, got.ID)
	assert.Equal(t, "2026-03-02", got.WorkDate)

	missing, err := repo.GetByUserAndDate(ctx, u.ID, "2026-03-03")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttendanceBreakLifecycle(t *testing.T) {
	db := testConn(t)
	truncateTables(t, db)
	ctx := context.Background()

	u := createTestUser(t, db)
	repo := postgresql.NewAttendanceRepository(db)

	checkIn := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	day, err := repo.Create(ctx, attendance.AttendanceDay{
		UserID:   u.ID,
		WorkDate: "2026-03-02",
		CheckIn:  &checkIn,
		Status:   attendance.StatusPresent,
	})
	require.NoError(t, err)

	b1, err := repo.AddBreak(ctx, attendance.BreakInterval{
		AttendanceID: day.ID,
		Category:     attendance.BreakLunch,
		StartAt:      checkIn.Add(4 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, b1.Seq)

	end := checkIn.Add(4*time.Hour + 30*time.Minute)
	dur := 30
	require.NoError(t, repo.CloseBreak(ctx, attendance.BreakInterval{
		ID:              b1.ID,
		EndAt:           &end,
		DurationMinutes: &dur,
	}))

	// Closing an already-closed break reports the no-open-break state.
	err = repo.CloseBreak(ctx, attendance.BreakInterval{
		ID:              b1.ID,
		EndAt:           &end,
		DurationMinutes: &dur,
	})
	assert.ErrorIs(t, err, attendance.ErrNoOpenBreak)

	b2, err := repo.AddBreak(ctx, attendance.BreakInterval{
		AttendanceID: day.ID,
		Category:     attendance.BreakCoffee,
		StartAt:      checkIn.Add(6 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, b2.Seq)

	got, err := repo.GetByUserAndDate(ctx, u.ID, "2026-03-02")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Breaks, 2)
	assert.Equal(t, attendance.BreakLunch, got.Breaks[0].Category)
	open := got.OpenBreak()
	require.NotNil(t, open)
	assert.Equal(t, b2.ID, open.ID)
}

func TestBreakWithLocation(t *testing.T) {
	db := testConn(t)
	truncateTables(t, db)
	ctx := context.Background()

	u := createTestUser(t, db)
	repo := postgresql.NewAttendanceRepository(db)

	checkIn := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	day, err := repo.Create(ctx, attendance.AttendanceDay{
		UserID:   u.ID,
		WorkDate: "2026-03-02",
		CheckIn:  &checkIn,
		Status:   attendance.StatusPresent,
	})
	require.NoError(t, err)

	address := "Warung Kopi Sederhana"
	_, err = repo.AddBreak(ctx, attendance.BreakInterval{
		AttendanceID: day.ID,
		Category:     attendance.BreakCoffee,
		StartAt:      checkIn.Add(2 * time.Hour),
		Location: &attendance.Location{
			Latitude:  -6.2146,
			Longitude: 106.8451,
			Address:   &address,
		},
	})
	require.NoError(t, err)

	got, err := repo.GetByUserAndDate(ctx, u.ID, "2026-03-02")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Breaks, 1)

	loc := got.Breaks[0].Location
	require.NotNil(t, loc)
	assert.Equal(t, -6.2146, loc.Latitude)
	assert.Equal(t, 106.8451, loc.Longitude)
	require.NotNil(t, loc.Address)
	assert.Equal(t, address, *loc.Address)
}

func TestUserEmailUniqueness(t *testing.T) {
	db := testConn(t)
	truncateTables(t, db)
	ctx := context.Background()

	repo := postgresql.NewUserRepository(db)
	u := createTestUser(t, db)

	_, err := repo.Create(ctx, user.User{
		Name:       "Duplicate",
		Email:      u.Email,
		Role:       user.RoleEmployee,
		Status:     user.StatusActive,
		Department: "engineering",
		JoinDate:   time.Now().UTC(),
		Schedule:   user.DefaultSchedule(),
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	byEmail, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
}
