package authz

import (
	"testing"

	"github.com/recipebox/recipebox/internal/model"
)

func TestOwnerPolicy_Allow(t *testing.T) {
	policy := NewOwnerPolicy()

	owner := &model.AuthContext{UserID: "user-1"}
	other := &model.AuthContext{UserID: "user-2"}
	staff := &model.AuthContext{UserID: "user-3", IsStaff: true}

	tests := []struct {
		name     string
		identity *model.AuthContext
		ownerID  string
		want     bool
	}{
		{"owner_allowed", owner, "user-1", true},
		{"non_owner_denied", other, "user-1", false},
		{"staff_not_implicitly_allowed", staff, "user-1", false},
		{"nil_identity_denied", nil, "user-1", false},
		{"empty_user_id_denied", &model.AuthContext{}, "user-1", false},
		{"empty_owner_denied_for_empty_identity", &model.AuthContext{}, "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := policy.Allow(test.identity, test.ownerID); got != test.want {
				t.Fatalf("Allow(%v, %q) = %v, want %v", test.identity, test.ownerID, got, test.want)
			}
		})
	}
}
