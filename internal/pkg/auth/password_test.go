package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "correct horse battery staple") {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong password") {
		t.Fatal("expected mismatch to fail")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct salts to produce distinct digests")
	}
}
