package auth

import "testing"

func TestEveryRoleGrantsOnlyKnownPermissions(t *testing.T) {
	known := map[string]bool{}
	for _, perm := range DefaultPermissions {
		known[perm] = true
	}

	for role, perms := range RolePermissions {
		for _, perm := range perms {
			if !known[perm] {
				t.Fatalf("role %s grants unknown permission %s", role, perm)
			}
		}
	}
}

func TestEmployeeCannotManage(t *testing.T) {
	for _, perm := range RolePermissions[RoleEmployee] {
		switch perm {
		case PermDirectoryWrite, PermPeriodsWrite, PermEvaluationsTeam, PermDelegationWrite,
			PermAdminUsers, PermAdminBackup, PermAdminExport, PermAuditRead:
			t.Fatalf("employee role must not hold %s", perm)
		}
	}
}

func TestHRCoversAdministration(t *testing.T) {
	granted := map[string]bool{}
	for _, perm := range RolePermissions[RoleHR] {
		granted[perm] = true
	}
	for _, perm := range []string{PermDirectoryWrite, PermPeriodsWrite, PermAdminBackup, PermAdminExport, PermAuditRead} {
		if !granted[perm] {
			t.Fatalf("HR role must hold %s", perm)
		}
	}
}
