package engine

import "testing"

func TestParsePortSet(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{name: "single port", spec: "22"},
		{name: "port list", spec: "22,80,443"},
		{name: "single range", spec: "1000-2000"},
		{name: "mixed list and range", spec: "22,80,1000-2000"},
		{name: "overlapping ranges", spec: "1000-2000,1500-1600"},
		{name: "whitespace tolerated", spec: " 22 , 80 "},
		{name: "zero port", spec: "0"},
		{name: "max port", spec: "65535"},
		{name: "empty", spec: "", wantErr: true},
		{name: "empty entry", spec: "22,,80", wantErr: true},
		{name: "trailing comma", spec: "22,", wantErr: true},
		{name: "inverted range", spec: "2000-1000", wantErr: true},
		{name: "non-numeric", spec: "ssh", wantErr: true},
		{name: "negative", spec: "-1", wantErr: true},
		{name: "out of range", spec: "70000", wantErr: true},
		{name: "range missing end", spec: "1000-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePortSet(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Errorf("parsePortSet(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
		})
	}
}

func TestPortSetContains(t *testing.T) {
	set, err := parsePortSet("22,80,1000-2000")
	if err != nil {
		t.Fatalf("parsePortSet failed: %v", err)
	}

	tests := []struct {
		port uint16
		want bool
	}{
		{22, true},
		{80, true},
		{443, false},
		{999, false},
		{1000, true},
		{1500, true},
		{2000, true},
		{2001, false},
	}

	for _, tt := range tests {
		if got := set.contains(tt.port); got != tt.want {
			t.Errorf("contains(%d) = %v, want %v", tt.port, got, tt.want)
		}
	}
}

func TestPortRangeBoundsInclusive(t *testing.T) {
	set, err := parsePortSet("8000-8010")
	if err != nil {
		t.Fatalf("parsePortSet failed: %v", err)
	}
	if !set.contains(8000) || !set.contains(8010) {
		t.Error("range bounds must be inclusive")
	}
}
