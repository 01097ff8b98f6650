package parse

import "testing"

// TestParsePrice tests numeric price recovery from localized text.
func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		want   float64
		wantOK bool
	}{
		{name: "plain integer", text: "999", want: 999, wantOK: true},
		{name: "us currency", text: "$1,299.00", want: 1299, wantOK: true},
		{name: "us without cents", text: "$1,299", want: 1299, wantOK: true},
		{name: "european currency", text: "1.299,00 €", want: 1299, wantOK: true},
		{name: "european thousands only", text: "1.299 EUR", want: 1299, wantOK: true},
		{name: "decimal point", text: "1099.99", want: 1099.99, wantOK: true},
		{name: "decimal comma", text: "1099,99", want: 1099.99, wantOK: true},
		{name: "sub-unit price", text: "0.99", want: 0.99, wantOK: true},
		{name: "crossed thousands", text: "12.345.678", want: 12345678, wantOK: true},
		{name: "surrounding words", text: "from $2,499.50 incl. shipping", wantOK: false},
		{name: "empty", text: "", wantOK: false},
		{name: "no digits", text: "Call for price", wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParsePrice(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ParsePrice(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
