package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionEmployeeDelete))
	assert.True(t, HasPermission(RoleHR, PermissionEmployeeManage))
	assert.True(t, HasPermission(RoleEmployee, PermissionAttendanceOwn))

	assert.False(t, HasPermission(RoleHR, PermissionEmployeeDelete))
	assert.False(t, HasPermission(RoleEmployee, PermissionTaskManage))
	assert.False(t, HasPermission(Role("ghost"), PermissionViewOwnProfile))
}

func TestAllows(t *testing.T) {
	admin := Actor{UserID: "u-admin", Role: RoleAdmin}
	hr := Actor{UserID: "u-hr", Role: RoleHR}
	employee := Actor{UserID: "u-emp", Role: RoleEmployee}

	cases := []struct {
		name       string
		actor      Actor
		permission Permission
		relation   Relation
		allowed    []Relation
		want       bool
	}{
		{
			name:       "role permission wins regardless of relation",
			actor:      admin,
			permission: PermissionTaskViewAll,
			relation:   RelationNone,
			want:       true,
		},
		{
			name:       "hr manages tasks without ownership",
			actor:      hr,
			permission: PermissionTaskManage,
			relation:   RelationNone,
			want:       true,
		},
		{
			name:       "assignee sees own task without view_all",
			actor:      employee,
			permission: PermissionTaskViewAll,
			relation:   RelationAssignee,
			allowed:    []Relation{RelationAssignee, RelationAssigner},
			want:       true,
		},
		{
			name:       "assigner deletes own assignment",
			actor:      employee,
			permission: PermissionTaskDelete,
			relation:   RelationAssigner,
			allowed:    []Relation{RelationAssigner},
			want:       true,
		},
		{
			name:       "unrelated employee is denied",
			actor:      employee,
			permission: PermissionTaskViewAll,
			relation:   RelationNone,
			allowed:    []Relation{RelationAssignee, RelationAssigner},
			want:       false,
		},
		{
			name:       "relation outside the allowed set is denied",
			actor:      employee,
			permission: PermissionTaskDelete,
			relation:   RelationAssignee,
			allowed:    []Relation{RelationAssigner},
			want:       false,
		},
		{
			name:       "no relations allowed means permission only",
			actor:      employee,
			permission: PermissionReportsView,
			relation:   RelationSelf,
			want:       false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Allows(c.actor, c.permission, c.relation, c.allowed...)
			assert.Equal(t, c.want, got)
		})
	}
}
