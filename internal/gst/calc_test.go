package gst

import (
	"math"
	"testing"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeExclusive, false},
		{"exclusive", ModeExclusive, false},
		{"inclusive", ModeInclusive, false},
		{"  Inclusive ", ModeInclusive, false},
		{"EXCLUSIVE", ModeExclusive, false},
		{"gross", "", true},
		{"both", "", true},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestComputeExclusive(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		rate   float64
		want   Breakdown
	}{
		{"standard rate", 100, 18, Breakdown{Net: 100, GST: 18, Gross: 118}},
		{"five percent", 200, 5, Breakdown{Net: 200, GST: 10, Gross: 210}},
		{"zero amount", 0, 18, Breakdown{Net: 0, GST: 0, Gross: 0}},
		{"zero rate", 100, 0, Breakdown{Net: 100, GST: 0, Gross: 100}},
		{"rounds half up", 10.01, 5, Breakdown{Net: 10.01, GST: 0.5, Gross: 10.51}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.amount, ModeExclusive, tc.rate)
			if got != tc.want {
				t.Errorf("Compute(%v, exclusive, %v) = %+v, want %+v", tc.amount, tc.rate, got, tc.want)
			}
		})
	}
}

func TestComputeInclusive(t *testing.T) {
	got := Compute(118, ModeInclusive, 18)
	want := Breakdown{Net: 100, GST: 18, Gross: 118}
	if got != want {
		t.Fatalf("Compute(118, inclusive, 18) = %+v, want %+v", got, want)
	}

	// Net and tax always recombine to the input gross exactly, because the
	// tax is derived as gross minus rounded net.
	for _, gross := range []float64{1, 99.99, 118, 1234.56, 0.01} {
		b := Compute(gross, ModeInclusive, 12)
		if diff := math.Abs(b.Net + b.GST - b.Gross); diff > 1e-9 {
			t.Errorf("gross %v: net %v + gst %v != gross %v", gross, b.Net, b.GST, b.Gross)
		}
	}
}

func TestComputeRoundTrip(t *testing.T) {
	// Taxing a net amount and then extracting tax from the resulting gross
	// should land within a cent of the original.
	for _, net := range []float64{1, 10.01, 99.99, 250, 4999.95} {
		ex := Compute(net, ModeExclusive, 18)
		in := Compute(ex.Gross, ModeInclusive, 18)
		if diff := math.Abs(in.Net - net); diff > 0.01 {
			t.Errorf("round trip net %v: got %v back (diff %v)", net, in.Net, diff)
		}
	}
}
