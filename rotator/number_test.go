package rotator

import "testing"

func TestParseNumber(t *testing.T) {
	for _, test := range []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"az045.0", 45, false},
		{"el030.0\n", 30, false},
		{"180.000000", 180, false},
		{"-10", 10, false},
		{"AZ=12\r", 12, false},
		{"az", 0, true},
		{"", 0, true},
		{"1.2.3", 0, true},
	} {
		got, err := ParseNumber(test.in)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseNumber(%q) error = %v, wantErr %v", test.in, err, test.wantErr)
			continue
		}
		if !test.wantErr && got != test.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}
