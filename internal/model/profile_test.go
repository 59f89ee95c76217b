package model

import "testing"

func TestValidateColor(t *testing.T) {
	tests := []struct {
		color   ColorInfo
		wantErr bool
	}{
		{ColorInfo{"Red", "#F00"}, false},
		{ColorInfo{"Red", "#ff0000"}, false},
		{ColorInfo{"Forest Green", "#228B22"}, false},
		{ColorInfo{"", "#F00"}, true},
		{ColorInfo{"  ", "#F00"}, true},
		{ColorInfo{"Red", "F00"}, true},
		{ColorInfo{"Red", "#FF00"}, true},
		{ColorInfo{"Red", "#GG0000"}, true},
		{ColorInfo{"Red", "#"}, true},
	}

	for _, tt := range tests {
		err := ValidateColor(tt.color)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateColor(%+v) error = %v, wantErr %v", tt.color, err, tt.wantErr)
		}
	}
}

func TestProfileNormalize(t *testing.T) {
	p := UserProfile{
		SkinTone:        " Fair with cool undertones ",
		ColorPalette:    []ColorInfo{{Name: "Navy", Hex: "#000080"}, {Name: "rose", Hex: "#ff007f"}},
		PreferredStyles: []string{" casual", "", "minimalist "},
		Region:          "UK",
	}

	got, err := p.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got.SkinTone != "Fair with cool undertones" {
		t.Errorf("skin tone not trimmed: %q", got.SkinTone)
	}
	if got.ColorPalette[1].Hex != "#FF007F" {
		t.Errorf("expected upper-case hex, got %q", got.ColorPalette[1].Hex)
	}
	if len(got.PreferredStyles) != 2 || got.PreferredStyles[0] != "casual" || got.PreferredStyles[1] != "minimalist" {
		t.Errorf("unexpected styles: %q", got.PreferredStyles)
	}
}

func TestProfileNormalizeRejects(t *testing.T) {
	if _, err := (UserProfile{Region: ""}).Normalize(); err == nil {
		t.Error("expected error for empty region")
	}

	bad := DefaultProfile()
	bad.ColorPalette = []ColorInfo{{Name: "x", Hex: "red"}}
	if _, err := bad.Normalize(); err == nil {
		t.Error("expected error for invalid color")
	}
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	if p.Region != "US" {
		t.Errorf("expected region US, got %q", p.Region)
	}
	if len(p.PreferredStyles) != 2 || p.PreferredStyles[0] != "casual" || p.PreferredStyles[1] != "chic" {
		t.Errorf("unexpected default styles: %q", p.PreferredStyles)
	}
	if p.ColorPalette == nil {
		t.Error("default palette should be empty, not nil")
	}
}
