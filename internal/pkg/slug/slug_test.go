package slug

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestMake(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"whitespace runs", "Hello   World", "hello-world"},
		{"empty", "", ""},
		{"ampersand and accents", "Café & Co.", "cafe-and-co"},
		{"leading trailing junk", "--The Shop--", "the-shop"},
		{"numbers", "7-Eleven #204", "7-eleven-204"},
		{"accent table", "Crème Brûlée Niño", "creme-brulee-nino"},
		{"only junk", "!!! ???", ""},
		{"unicode outside table", "Sushi 寿司 House", "sushi-house"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Make(tc.in); got != tc.want {
				t.Fatalf("Make(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMake_CharsetAndLength(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Hello World",
		"  A&W Restaurant (Downtown)  ",
		strings.Repeat("Very Long Business Name ", 10),
		strings.Repeat("a", 59) + "-b",
		"Ñandú & Çiçek Imports Ltd.",
	}

	for _, in := range inputs {
		got := Make(in)
		if got == "" {
			t.Fatalf("Make(%q) unexpectedly empty", in)
		}
		if !slugPattern.MatchString(got) {
			t.Fatalf("Make(%q) = %q does not match slug pattern", in, got)
		}
		if len(got) > MaxLength {
			t.Fatalf("Make(%q) = %q exceeds max length", in, got)
		}
	}
}

func TestMake_TruncationStripsTrailingHyphen(t *testing.T) {
	t.Parallel()

	// 59 slug chars followed by a separator puts a hyphen exactly on the cut.
	in := strings.Repeat("a", 59) + " bbbb"
	got := Make(in)
	if strings.HasSuffix(got, "-") {
		t.Fatalf("Make(%q) = %q has trailing hyphen", in, got)
	}
	if len(got) > MaxLength {
		t.Fatalf("Make(%q) = %q exceeds max length", in, got)
	}
}

func TestMake_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"Hello World", "Café & Co.", "7-Eleven #204", "The--Shop"}
	for _, in := range inputs {
		once := Make(in)
		if twice := Make(once); twice != once {
			t.Fatalf("Make not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestMakeUnique_NoCollision(t *testing.T) {
	t.Parallel()

	got, err := MakeUnique("Hello World", "BL123456", func(string) (bool, error) {
		return false, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello-world" {
		t.Fatalf("expected base slug, got %q", got)
	}
}

func TestMakeUnique_CollisionAppendsExternalID(t *testing.T) {
	t.Parallel()

	got, err := MakeUnique("Hello World", "BL123456", func(s string) (bool, error) {
		return s == "hello-world", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello-world-bl123456" {
		t.Fatalf("expected disambiguated slug, got %q", got)
	}
}

func TestMakeUnique_CollisionCounterFallback(t *testing.T) {
	t.Parallel()

	taken := map[string]bool{
		"hello-world":          true,
		"hello-world-bl123456": true,
	}
	got, err := MakeUnique("Hello World", "BL123456", func(s string) (bool, error) {
		return taken[s], nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello-world-bl123456-2" {
		t.Fatalf("expected counter suffix, got %q", got)
	}
}

func TestMakeUnique_CollisionWithUnfoldableExternalID(t *testing.T) {
	t.Parallel()

	// An external id with no slug-safe characters leaves nothing to append,
	// so disambiguation must go straight to a bare counter suffix.
	got, err := MakeUnique("Hello World", "???", func(s string) (bool, error) {
		return s == "hello-world", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello-world-2" {
		t.Fatalf("expected bare counter suffix, got %q", got)
	}
	if !slugPattern.MatchString(got) {
		t.Fatalf("disambiguated slug %q does not match slug pattern", got)
	}
}

func TestMakeUnique_EmptyBaseFallsBackToExternalID(t *testing.T) {
	t.Parallel()

	got, err := MakeUnique("!!!", "BL123456", func(string) (bool, error) {
		return false, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "bl123456" {
		t.Fatalf("expected external id fallback, got %q", got)
	}
}

func TestMakeUnique_NoUsableIdentifier(t *testing.T) {
	t.Parallel()

	if _, err := MakeUnique("!!!", "???", func(string) (bool, error) { return false, nil }); err == nil {
		t.Fatalf("expected error when nothing slug-safe remains")
	}
}

func TestMakeUnique_LengthStaysBounded(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("Calgary Coffee Roasters ", 5)
	got, err := MakeUnique(long, "BL999999", func(s string) (bool, error) {
		return s == Make(long), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) > MaxLength {
		t.Fatalf("disambiguated slug %q exceeds max length", got)
	}
	if !slugPattern.MatchString(got) {
		t.Fatalf("disambiguated slug %q does not match slug pattern", got)
	}
}

func TestMakeUnique_PropagatesLookupError(t *testing.T) {
	t.Parallel()

	boom := errors.New("storage down")
	if _, err := MakeUnique("Hello World", "BL1", func(string) (bool, error) { return false, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}
