package helpers

import "testing"

func TestHashPassword_Verify(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if !CompareHashAndPassword(hash, "secret1") {
		t.Fatal("expected matching password to verify")
	}
	if CompareHashAndPassword(hash, "secret2") {
		t.Fatal("expected mismatching password to fail")
	}
}

func TestHashIdentity_Verify(t *testing.T) {
	t.Parallel()

	hash, err := HashIdentity("mom")
	if err != nil {
		t.Fatalf("HashIdentity error: %v", err)
	}
	if !CompareHashAndPassword(hash, "mom") {
		t.Fatal("expected matching identity secret to verify")
	}
	if CompareHashAndPassword(hash, "dad") {
		t.Fatal("expected mismatching identity secret to fail")
	}
}

func TestHashes_NotInterchangeable(t *testing.T) {
	t.Parallel()

	p, err := HashPassword("same-value")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	i, err := HashIdentity("same-value")
	if err != nil {
		t.Fatalf("HashIdentity error: %v", err)
	}
	// different work factors yield different digests, both verifiable
	if p == i {
		t.Fatal("expected distinct digests")
	}
	if !CompareHashAndPassword(p, "same-value") || !CompareHashAndPassword(i, "same-value") {
		t.Fatal("both digests must verify against the original value")
	}
}
