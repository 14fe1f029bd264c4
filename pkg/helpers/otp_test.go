package helpers

import "testing"

func TestGenOTPCode_Format(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		code, err := GenOTPCode()
		if err != nil {
			t.Fatalf("GenOTPCode error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 characters, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expected digits only, got %q", code)
			}
		}
	}
}
