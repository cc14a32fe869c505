package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduledOn(t *testing.T) {
	u := User{Schedule: DefaultSchedule()}

	assert.True(t, u.ScheduledOn("monday"))
	assert.True(t, u.ScheduledOn("friday"))
	assert.False(t, u.ScheduledOn("saturday"))
	assert.False(t, u.ScheduledOn("sunday"))
}

func TestRoleHelpers(t *testing.T) {
	admin := User{Role: RoleAdmin, Status: StatusActive}
	hr := User{Role: RoleHR, Status: StatusActive}
	emp := User{Role: RoleEmployee, Status: StatusInactive}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.IsStaff())
	assert.False(t, hr.IsAdmin())
	assert.True(t, hr.IsStaff())
	assert.False(t, emp.IsStaff())

	assert.True(t, admin.IsActive())
	assert.False(t, emp.IsActive())
}
