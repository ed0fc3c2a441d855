package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforce(t *testing.T) {
	svc, err := NewService()
	require.NoError(t, err)

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		want     bool
	}{
		{"employee can file leave", "employee", "leave", "create", true},
		{"employee can download documents", "employee", "document", "read", true},
		{"employee can read reference data", "employee", "refdata", "read", true},
		{"employee cannot decide leave", "employee", "leave", "decide", false},
		{"employee cannot manage workers", "employee", "worker", "manage", false},
		{"employee cannot read the audit log", "employee", "auditlog", "read", false},

		{"hr_admin can decide leave", "hr_admin", "leave", "decide", true},
		{"hr_admin can write credits", "hr_admin", "credit", "write", true},
		{"hr_admin can manage workers", "hr_admin", "worker", "manage", true},
		{"hr_admin can manage employees", "hr_admin", "employee", "manage", true},
		{"hr_admin inherits leave filing", "hr_admin", "leave", "create", true},
		{"hr_admin inherits document download", "hr_admin", "document", "read", true},

		{"unknown role gets nothing", "auditor", "leave", "create", false},
		{"unknown resource is denied", "hr_admin", "payroll", "manage", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tt.role, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}
