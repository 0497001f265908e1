package cipher

import "testing"

func TestEncodeDefaultShift(t *testing.T) {
	got := Encode("hello", DefaultShift)
	if got != "khoor" {
		t.Fatalf("Encode(%q, %d) = %q, want %q", "hello", DefaultShift, got, "khoor")
	}
}

func TestDecodeDefaultShift(t *testing.T) {
	got := Decode("khoor", DefaultShift)
	if got != "hello" {
		t.Fatalf("Decode(%q, %d) = %q, want %q", "khoor", DefaultShift, got, "hello")
	}
}

func TestRoundTripAllShifts(t *testing.T) {
	plaintext := "The quick brown Fox jumps over the lazy Dog"
	for shift := 0; shift < 26; shift++ {
		encoded := Encode(plaintext, shift)
		decoded := Decode(encoded, shift)
		if decoded != plaintext {
			t.Errorf("shift %d: round trip produced %q, want %q", shift, decoded, plaintext)
		}
	}
}

func TestCasePreserved(t *testing.T) {
	got := Encode("AzBy", 1)
	if got != "BaCz" {
		t.Fatalf("Encode(%q, 1) = %q, want %q", "AzBy", got, "BaCz")
	}
}

func TestNonLettersUntouched(t *testing.T) {
	input := "attack at 09:00! (zulu)"
	got := Encode(input, 5)
	want := "fyyfhp fy 09:00! (ezqz)"
	if got != want {
		t.Fatalf("Encode(%q, 5) = %q, want %q", input, got, want)
	}
}

func TestNegativeShiftNormalized(t *testing.T) {
	if got := Encode("abc", -1); got != "zab" {
		t.Fatalf("Encode(%q, -1) = %q, want %q", "abc", got, "zab")
	}
	if got := Encode("abc", 27); got != "bcd" {
		t.Fatalf("Encode(%q, 27) = %q, want %q", "abc", got, "bcd")
	}
}
