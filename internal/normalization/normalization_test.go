package normalization

import "testing"

func TestParseInputString(t *testing.T) {
  if got := ParseInputString("  Alice@Example.COM  "); got != "alice@example.com" {
    t.Fatalf("ParseInputString = %q", got)
  }
}

func TestParseName(t *testing.T) {
  cases := []struct {
    in   string
    want string
  }{
    {"Bob Smith", "Bob Smith"},
    {"  Bob   Smith  ", "Bob Smith"},
    {"\tBob\nSmith", "Bob Smith"},
    {"", ""},
  }
  for _, tc := range cases {
    if got := ParseName(tc.in); got != tc.want {
      t.Fatalf("ParseName(%q) = %q, want %q", tc.in, got, tc.want)
    }
  }
}

func TestFoldName(t *testing.T) {
  if FoldName("  BOB   Smith ") != FoldName("bob smith") {
    t.Fatalf("folded names should match regardless of case and spacing")
  }
  if FoldName("Bob Smith") == FoldName("Bob Smyth") {
    t.Fatalf("different names should not fold together")
  }
}
