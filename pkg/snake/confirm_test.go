package snake

import "testing"

func TestParseBool(t *testing.T) {
	yes := []string{"y", "Yes", "SIM", "s", "true", "1", " t "}
	no := []string{"n", "No", "não", "NAO", "false", "0"}
	for _, in := range yes {
		if got, err := ParseBool(in); err != nil || !got {
			t.Fatalf("ParseBool(%q) = %v, %v; want true", in, got, err)
		}
	}
	for _, in := range no {
		if got, err := ParseBool(in); err != nil || got {
			t.Fatalf("ParseBool(%q) = %v, %v; want false", in, got, err)
		}
	}
	if _, err := ParseBool("talvez"); err == nil {
		t.Fatalf("expected an error for an unknown answer")
	}
}
