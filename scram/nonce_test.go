package scram

import "testing"

func TestGenerateNonceLengthAndAlphabet(t *testing.T) {
	t.Parallel()
	n, err := GenerateNonce(24)
	if err != nil {
		t.Fatalf("GenerateNonce: %v", err)
	}
	if len(n) != 24 {
		t.Fatalf("len(nonce) = %d, want 24", len(n))
	}
	for _, c := range n {
		if c == ',' {
			t.Fatalf("nonce contains a comma: %q", n)
		}
	}
}

func TestGenerateNonceDistinct(t *testing.T) {
	t.Parallel()
	a, err := GenerateNonce(24)
	if err != nil {
		t.Fatalf("GenerateNonce: %v", err)
	}
	b, err := GenerateNonce(24)
	if err != nil {
		t.Fatalf("GenerateNonce: %v", err)
	}
	if a == b {
		t.Error("two generated nonces collided, extremely unlikely for random input")
	}
}

func TestGenerateNonceRejectsNonPositive(t *testing.T) {
	t.Parallel()
	if _, err := GenerateNonce(0); err == nil {
		t.Error("expected error for zero-length nonce")
	}
}
