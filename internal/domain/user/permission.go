package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Attendance
	PermissionAttendanceOwn     Permission = "attendance.own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceCorrect Permission = "attendance.approve_correction"

	// Tasks
	PermissionTaskCreate       Permission = "task.create"
	PermissionTaskManage       Permission = "task.manage"
	PermissionTaskViewAll      Permission = "task.view_all"
	PermissionTaskUpdateOwn    Permission = "task.update_own"
	PermissionTaskDelete       Permission = "task.delete"
	PermissionTaskTrackTimeOwn Permission = "task.track_time_own"

	// Directory
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"
	PermissionEmployeeDelete  Permission = "employee.delete"

	// Reports
	PermissionReportsView Permission = "reports.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceCorrect,
		PermissionTaskCreate,
		PermissionTaskManage,
		PermissionTaskViewAll,
		PermissionTaskUpdateOwn,
		PermissionTaskDelete,
		PermissionTaskTrackTimeOwn,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionEmployeeDelete,
		PermissionReportsView,
	},
	RoleHR: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceCorrect,
		PermissionTaskCreate,
		PermissionTaskManage,
		PermissionTaskViewAll,
		PermissionTaskUpdateOwn,
		PermissionTaskTrackTimeOwn,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceOwn,
		PermissionTaskUpdateOwn,
		PermissionTaskTrackTimeOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
