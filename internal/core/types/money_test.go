package types

import "testing"

func TestRound2_HalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"879.696", "879.7"},
		{"-2.675", "-2.68"},
		{"100", "100"},
	}
	for _, tt := range tests {
		got := Round2(MustMoney(tt.in))
		if !got.Equal(MustMoney(tt.want)) {
			t.Errorf("Round2(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRoundDown2_NeverOvershoots(t *testing.T) {
	got := RoundDown2(MustMoney("1540.789"))
	if !got.Equal(MustMoney("1540.78")) {
		t.Errorf("RoundDown2 = %s, want 1540.78", got)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"", "0", true},
		{"  ", "0", true},
		{"1,234.50", "1234.50", true},
		{"42", "42", true},
		{"abc", "0", false},
		{"12..3", "0", false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.raw)
		if ok != tt.ok {
			t.Errorf("ParseNumber(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if !got.Equal(MustMoney(tt.want)) {
			t.Errorf("ParseNumber(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestParseNumberOrZero_CoercesGarbage(t *testing.T) {
	if !ParseNumberOrZero("n/a").IsZero() {
		t.Error("expected non-numeric cell to coerce to zero")
	}
}

func TestPercent_NoIntermediateRounding(t *testing.T) {
	got := Percent(MustMoney("4887.20"), MustMoney("18"))
	if !got.Equal(MustMoney("879.696")) {
		t.Errorf("Percent = %s, want 879.696", got)
	}
}
