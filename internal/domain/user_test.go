package domain

import "testing"

func TestRoleSatisfies(t *testing.T) {
	t.Parallel()

	roles := []Role{RoleLearner, RoleCreator, RoleAdmin}

	for _, required := range roles {
		for _, have := range roles {
			want := have == required || have == RoleAdmin
			if got := have.Satisfies(required); got != want {
				t.Errorf("Role(%s).Satisfies(%s) = %v, want %v", have, required, got, want)
			}
		}
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"Learner", RoleLearner, false},
		{"Creator", RoleCreator, false},
		{"Admin", RoleAdmin, false},
		{"admin", "", true},
		{"", "", true},
		{"Superuser", "", true},
	}

	for _, tc := range tests {
		got, err := ParseRole(tc.input)
		if tc.wantErr {
			if err != ErrInvalidRole {
				t.Errorf("ParseRole(%q) error = %v, want %v", tc.input, err, ErrInvalidRole)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q) unexpected error %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("ParseRole(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("learner@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Role != RoleLearner {
		t.Errorf("Expected new users to be Learner, got %s", user.Role)
	}

	if _, err := NewUser("", "s3cret-password"); err != ErrEmptyEmail {
		t.Errorf("Expected %v, got %v", ErrEmptyEmail, err)
	}

	if _, err := NewUser("not-an-email", "s3cret-password"); err != ErrInvalidEmail {
		t.Errorf("Expected %v, got %v", ErrInvalidEmail, err)
	}

	if _, err := NewUser("learner@example.com", ""); err != ErrEmptyPassword {
		t.Errorf("Expected %v, got %v", ErrEmptyPassword, err)
	}
}
