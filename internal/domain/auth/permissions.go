package auth

const (
	RoleEmployee = "Employee"
	RoleManager  = "Manager"
	RoleHR       = "HR"
	RoleAdmin    = "Admin"
)

const (
	PermDirectoryRead      = "directory.read"
	PermDirectoryWrite     = "directory.write"
	PermPeriodsRead        = "periods.read"
	PermPeriodsWrite       = "periods.write"
	PermEvaluationsRead    = "evaluations.read"
	PermEvaluationsSelf    = "evaluations.self"
	PermEvaluationsTeam    = "evaluations.team"
	PermEvaluationsLock    = "evaluations.lock"
	PermGoalsRead          = "goals.read"
	PermGoalsWrite         = "goals.write"
	PermIDPRead            = "idp.read"
	PermIDPWrite           = "idp.write"
	PermDelegationWrite    = "delegation.write"
	PermDelegationComplete = "delegation.complete"
	PermEngagementRead     = "engagement.read"
	PermEngagementWrite    = "engagement.write"
	PermEngagementManage   = "engagement.manage"
	PermReportsRead        = "reports.read"
	PermAuditRead          = "audit.read"
	PermAdminUsers         = "admin.users"
	PermAdminBackup        = "admin.backup"
	PermAdminExport        = "admin.export"
)

var DefaultPermissions = []string{
	PermDirectoryRead,
	PermDirectoryWrite,
	PermPeriodsRead,
	PermPeriodsWrite,
	PermEvaluationsRead,
	PermEvaluationsSelf,
	PermEvaluationsTeam,
	PermEvaluationsLock,
	PermGoalsRead,
	PermGoalsWrite,
	PermIDPRead,
	PermIDPWrite,
	PermDelegationWrite,
	PermDelegationComplete,
	PermEngagementRead,
	PermEngagementWrite,
	PermEngagementManage,
	PermReportsRead,
	PermAuditRead,
	PermAdminUsers,
	PermAdminBackup,
	PermAdminExport,
}

// RolePermissions is the capability table consulted on every route. Role
// checks never compare role names directly.
var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermDirectoryRead,
		PermPeriodsRead,
		PermEvaluationsRead,
		PermEvaluationsSelf,
		PermGoalsRead,
		PermIDPRead,
		PermEngagementRead,
		PermEngagementWrite,
		PermReportsRead,
	},
	RoleManager: {
		PermDirectoryRead,
		PermPeriodsRead,
		PermEvaluationsRead,
		PermEvaluationsSelf,
		PermEvaluationsTeam,
		PermEvaluationsLock,
		PermGoalsRead,
		PermGoalsWrite,
		PermIDPRead,
		PermIDPWrite,
		PermDelegationWrite,
		PermDelegationComplete,
		PermEngagementRead,
		PermEngagementWrite,
		PermReportsRead,
	},
	RoleHR: {
		PermDirectoryRead,
		PermDirectoryWrite,
		PermPeriodsRead,
		PermPeriodsWrite,
		PermEvaluationsRead,
		PermEvaluationsSelf,
		PermEvaluationsTeam,
		PermEvaluationsLock,
		PermGoalsRead,
		PermGoalsWrite,
		PermIDPRead,
		PermIDPWrite,
		PermDelegationWrite,
		PermDelegationComplete,
		PermEngagementRead,
		PermEngagementWrite,
		PermEngagementManage,
		PermReportsRead,
		PermAuditRead,
		PermAdminUsers,
		PermAdminBackup,
		PermAdminExport,
	},
	RoleAdmin: {
		PermDirectoryRead,
		PermDirectoryWrite,
		PermPeriodsRead,
		PermPeriodsWrite,
		PermEvaluationsRead,
		PermEvaluationsTeam,
		PermEvaluationsLock,
		PermGoalsRead,
		PermGoalsWrite,
		PermIDPRead,
		PermIDPWrite,
		PermDelegationWrite,
		PermDelegationComplete,
		PermEngagementRead,
		PermEngagementManage,
		PermReportsRead,
		PermAuditRead,
		PermAdminUsers,
		PermAdminBackup,
		PermAdminExport,
	},
}
