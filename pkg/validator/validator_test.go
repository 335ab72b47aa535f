package validator

import "testing"

func strPtr(s string) *string { return &s }

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		email     string
		password  string
		wantField string
	}{
		{"valid", "Alice", "Smith", "alice@x.com", "password1", ""},
		{"missing first name", "", "Smith", "alice@x.com", "password1", "first_name"},
		{"missing last name", "Alice", "", "alice@x.com", "password1", "last_name"},
		{"missing email", "Alice", "Smith", "", "password1", "email"},
		{"bad email", "Alice", "Smith", "not-an-email", "password1", "email"},
		{"short password", "Alice", "Smith", "alice@x.com", "pw1", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister(tt.firstName, tt.lastName, tt.email, tt.password)
			if tt.wantField == "" {
				if errs.HasErrors() {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Fatalf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidateProfileUpdate(t *testing.T) {
	if errs := ValidateProfileUpdate(strPtr("Alice S."), strPtr("alice_42")); errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}

	if errs := ValidateProfileUpdate(nil, nil); errs.HasErrors() {
		t.Fatalf("all-nil update should pass, got %v", errs)
	}

	if errs := ValidateProfileUpdate(nil, strPtr("bad handle!")); !errs.HasErrors() {
		t.Fatal("expected handle error")
	}

	if errs := ValidateProfileUpdate(strPtr(""), nil); !errs.HasErrors() {
		t.Fatal("expected display_name error for empty string")
	}
}

func TestValidateSubscribe(t *testing.T) {
	if errs := ValidateSubscribe("channel-42", "Channel 42", "https://cdn.example/t.jpg"); errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}

	errs := ValidateSubscribe("", "", "")
	for _, field := range []string{"channel_id", "channel_title", "channel_thumbnail"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error on %q", field)
		}
	}
}

func TestValidateLogin(t *testing.T) {
	if errs := ValidateLogin("alice@x.com", "pw"); errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if errs := ValidateLogin("", ""); len(errs) != 2 {
		t.Fatalf("expected email and password errors, got %v", errs)
	}
}
