package models

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"student", RoleStudent, true},
		{"teacher", RoleTeacher, true},
		{"admin", RoleAdmin, true},
		{"Student", "", false},
		{"superuser", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.input)
		if (err == nil) != tc.ok || got != tc.want {
			t.Fatalf("ParseRole(%q) = (%q, %v), want (%q, ok=%v)", tc.input, got, err, tc.want, tc.ok)
		}
	}
}

func TestRoleValidAndHasProfile(t *testing.T) {
	cases := []struct {
		role       Role
		valid      bool
		hasProfile bool
	}{
		{RoleStudent, true, true},
		{RoleTeacher, true, true},
		{RoleAdmin, true, false},
		{Role("superuser"), false, false},
		{Role(""), false, false},
	}
	for _, tc := range cases {
		if got := tc.role.Valid(); got != tc.valid {
			t.Fatalf("%q.Valid() = %v, want %v", tc.role, got, tc.valid)
		}
		if got := tc.role.HasProfile(); got != tc.hasProfile {
			t.Fatalf("%q.HasProfile() = %v, want %v", tc.role, got, tc.hasProfile)
		}
	}
}

func TestAssociatedID(t *testing.T) {
	studentID := int64(5)
	teacherID := int64(9)

	student := &User{Role: RoleStudent, StudentID: &studentID}
	if got := student.AssociatedID(); got == nil || *got != 5 {
		t.Fatalf("student AssociatedID = %v", got)
	}

	teacher := &User{Role: RoleTeacher, TeacherID: &teacherID}
	if got := teacher.AssociatedID(); got == nil || *got != 9 {
		t.Fatalf("teacher AssociatedID = %v", got)
	}

	admin := &User{Role: RoleAdmin}
	if got := admin.AssociatedID(); got != nil {
		t.Fatalf("admin AssociatedID = %v, want nil", got)
	}
}
