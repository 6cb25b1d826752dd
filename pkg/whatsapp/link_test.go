package whatsapp

import (
	"strings"
	"testing"
)

func TestLinkStripsFormattingAndPrependsCountryCode(t *testing.T) {
	t.Parallel()

	link, err := Link("(11) 91234-5678", "55", "Novo Pedido")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(link, "https://wa.me/5511912345678?") {
		t.Fatalf("unexpected link %q", link)
	}
	if !strings.Contains(link, "text=Novo+Pedido") {
		t.Fatalf("expected encoded message in %q", link)
	}
}

func TestLinkKeepsExistingCountryCode(t *testing.T) {
	t.Parallel()

	link, err := Link("5511912345678", "55", "oi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(link, "https://wa.me/5511912345678?") {
		t.Fatalf("country code should not be doubled: %q", link)
	}
}

func TestLinkRejectsEmptyPhone(t *testing.T) {
	t.Parallel()

	if _, err := Link("---", "55", "oi"); err == nil {
		t.Fatal("expected error for phone without digits")
	}
}
