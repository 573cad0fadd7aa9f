package isbn

import (
	"errors"
	"testing"

	"github.com/yourusername/open-stdnum-gateway/pkg/stdnum"
)

func TestCheckdigit(t *testing.T) {
	testCases := []struct {
		input string
		want  rune
	}{
		{"0139381430", '0'},
		{"0-8044-2957-X", 'X'},
		{"9781449373320", '0'},
		{"9780306406152", '7'},
		{"ISBN: 0-306-40615-2", '2'},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Checkdigit(tc.input)
			if err != nil {
				t.Fatalf("Checkdigit(%q) returned error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("Checkdigit(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCheckdigitWrongLength(t *testing.T) {
	for _, input := range []string{"", "Bad ISBN", "013938143", "01393814300", "1"} {
		if _, err := Checkdigit(input); !errors.Is(err, stdnum.ErrInvalid) {
			t.Errorf("Checkdigit(%q) error = %v, want ErrInvalid", input, err)
		}
		if Valid(input) {
			t.Errorf("Valid(%q) = true for a wrong length input", input)
		}
	}
}

func TestValid(t *testing.T) {
	valid := []string{"0139381430", "9781449373320", "0-8044-2957-X", "ABC0139381430", "ISBN: 978-0-306-40615-7", "9798531132178"}
	for _, s := range valid {
		if !Valid(s) {
			t.Errorf("Valid(%q) = false, want true", s)
		}
	}

	invalid := []string{"01393814300", "0139381432", "9781449373322", "0-306-40615-X", "", "ISBN", "٠١٣٩٣٨١٤٣٠"}
	for _, s := range invalid {
		if Valid(s) {
			t.Errorf("Valid(%q) = true, want false", s)
		}
	}
}

func TestReduceToBasic(t *testing.T) {
	testCases := map[string]string{
		"0-8044-2957-X":           "080442957X",
		"ABC0139381430":           "0139381430",
		"A1":                      "1",
		"A123":                    "123",
		"ABC080442957X":           "080442957X",
		"ABC080442957Y":           "080442957",
		"0306406152 (pbk.)":       "0306406152",
		"ISBN: 978-0-306-40615-7": "9780306406157",
		"no digits here":          "",
	}
	for input, want := range testCases {
		if got := reduceToBasic(input); got != want {
			t.Errorf("reduceToBasic(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestConvertTo13(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"9781449373320", "9781449373320"},
		{"978-1-449-37332-0", "9781449373320"},
		{"0-306-40615-2", "9780306406157"},
		{"0-8044-2957-X", "9780804429573"},
	}
	for _, tc := range testCases {
		got, err := ConvertTo13(tc.input)
		if err != nil {
			t.Fatalf("ConvertTo13(%q) returned error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("ConvertTo13(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}

	if _, err := ConvertTo13("013938143"); !errors.Is(err, stdnum.ErrInvalid) {
		t.Errorf("ConvertTo13 of a short ISBN: error = %v, want ErrInvalid", err)
	}
}

func TestConvertTo10(t *testing.T) {
	got, err := ConvertTo10("9780306406157")
	if err != nil || got != "0306406152" {
		t.Errorf("ConvertTo10(9780306406157) = %q, %v; want 0306406152", got, err)
	}
	got, err = ConvertTo10("0306406152")
	if err != nil || got != "0306406152" {
		t.Errorf("ConvertTo10(0306406152) = %q, %v; want 0306406152", got, err)
	}

	if _, err := ConvertTo10("9798531132178"); !errors.Is(err, ErrNoISBN10) {
		t.Errorf("ConvertTo10 of a 979 ISBN: error = %v, want ErrNoISBN10", err)
	}
	for _, s := range []string{"1", "9780306406157978030640615797803064061579780306406157"} {
		if _, err := ConvertTo10(s); !errors.Is(err, stdnum.ErrInvalid) {
			t.Errorf("ConvertTo10(%q) error = %v, want ErrInvalid", s, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"0139381430", "0-8044-2957-X", "0306406152", "1449373321"} {
		if !Valid(s) {
			t.Fatalf("fixture %q is not a valid ISBN", s)
		}
		thirteen, err := ConvertTo13(s)
		if err != nil {
			t.Fatalf("ConvertTo13(%q): %v", s, err)
		}
		ten, err := ConvertTo10(thirteen)
		if err != nil {
			t.Fatalf("ConvertTo10(%q): %v", thirteen, err)
		}
		back, err := ConvertTo13(ten)
		if err != nil {
			t.Fatalf("ConvertTo13(%q): %v", ten, err)
		}
		if back != thirteen {
			t.Errorf("round trip of %q: got %q, want %q", s, back, thirteen)
		}
	}
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"0-306-40615-2", "9780306406157", false},
		{"0-306-40615-X", "", true},
		{"ISBN: 978-0-306-40615-7", "9780306406157", false},
		{"ISBN: 978-0-306-40615-3", "", true},
		{"013938143", "", true},
	}
	for _, tc := range testCases {
		got, err := New(tc.input).Normalize()
		if tc.wantErr {
			if !errors.Is(err, stdnum.ErrInvalid) {
				t.Errorf("Normalize(%q) error = %v, want ErrInvalid", tc.input, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("Normalize(%q) = %q, %v; want %q", tc.input, got, err, tc.want)
		}
		again, err := Normalize(got)
		if err != nil || again != got {
			t.Errorf("Normalize is not stable on %q: got %q, %v", got, again, err)
		}
	}
}

func TestISBNImplementsNormalizer(t *testing.T) {
	var n stdnum.Normalizer = New("0139381430")
	if !n.Valid() {
		t.Error("expected ISBN value to be valid")
	}
	if got, _ := n.Normalize(); got != "9780139381430" {
		t.Errorf("Normalize() = %q, want 9780139381430", got)
	}
}
