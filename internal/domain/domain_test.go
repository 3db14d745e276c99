package domain

import "testing"

func TestNormalizeSize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"M", "M"},
		{" M ", "M"},
		{"10", "10"},
		{"10.0", "10"},
		{"10.5", "10.5"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeSize(tc.in); got != tc.want {
			t.Errorf("NormalizeSize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus(" Shipped ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != OrderStatusShipped {
		t.Fatalf("unexpected status: %q", s)
	}

	if _, err := ParseOrderStatus("teleported"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if _, err := ParseOrderStatus(""); err == nil {
		t.Fatal("expected error for empty status")
	}
}

func TestProductColorHelpers(t *testing.T) {
	p := Product{Colors: []string{"navy", "black"}, Sizes: []string{"M"}}
	if !p.Orderable() {
		t.Fatal("expected orderable product")
	}
	if !p.HasColor("navy") || p.HasColor("chartreuse") {
		t.Fatal("unexpected HasColor result")
	}
	if p.DefaultColor() != "navy" {
		t.Fatalf("unexpected default color: %q", p.DefaultColor())
	}

	stub := Product{}
	if stub.Orderable() {
		t.Fatal("stub product must not be orderable")
	}
	if stub.DefaultColor() != "" {
		t.Fatal("stub product has no default color")
	}
}
