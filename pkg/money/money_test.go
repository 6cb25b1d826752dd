package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount string
		want   string
	}{
		{"0", "R$ 0,00"},
		{"12.34", "R$ 12,34"},
		{"5", "R$ 5,00"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.8", "R$ 1.234.567,80"},
		{"-9.9", "-R$ 9,90"},
	}

	for _, tt := range tests {
		amount, err := decimal.NewFromString(tt.amount)
		if err != nil {
			t.Fatalf("bad fixture %q: %v", tt.amount, err)
		}
		if got := Format(amount); got != tt.want {
			t.Fatalf("Format(%s) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"R$ 1.234,56", "1234.56"},
		{"12,34", "12.34"},
		{"12.34", "12.34"},
		{" R$ 5,00 ", "5"},
		{"100", "100"},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
		}
		want, _ := decimal.NewFromString(tt.want)
		if !got.Equal(want) {
			t.Fatalf("Parse(%q) = %s, want %s", tt.input, got, want)
		}
	}

	if _, err := Parse(""); err == nil {
		t.Fatal("expected error for empty amount")
	}
	if _, err := Parse("abc"); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
}

func TestCentsRoundTrip(t *testing.T) {
	t.Parallel()

	amount := FromCents(4550)
	if got := Format(amount); got != "R$ 45,50" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := Cents(amount); got != 4550 {
		t.Fatalf("expected 4550 cents, got %d", got)
	}
}
