package crs

import (
	"strings"
	"testing"
)

func TestParseEPSG(t *testing.T) {
	for _, code := range []string{
		"EPSG:4326",
		"epsg:4326",
		"EPSG:4269",
		"EPSG:3857",
		"EPSG:32601",
		"EPSG:32631",
		"EPSG:32660",
		"EPSG:32701",
		"EPSG:32760",
	} {
		if _, err := Parse(code); err != nil {
			t.Errorf("Parse(%q): %v", code, err)
		}
	}
}

func TestParseProj4(t *testing.T) {
	sr, err := Parse("+proj=longlat +datum=WGS84 +no_defs")
	if err != nil {
		t.Fatal(err)
	}
	want, err := Parse(DefaultDestination)
	if err != nil {
		t.Fatal(err)
	}
	if !sr.Equal(want, 3) {
		t.Error("PROJ.4 longlat and EPSG:4326 should resolve to equal spatial references")
	}
}

func TestParseUTMSouth(t *testing.T) {
	if def, err := epsgProj4(32733); err != nil || !strings.Contains(def, "+south") {
		t.Errorf("epsgProj4(32733) = %q, %v; want a southern hemisphere UTM definition", def, err)
	}
	if def, err := epsgProj4(32633); err != nil || strings.Contains(def, "+south") {
		t.Errorf("epsgProj4(32633) = %q, %v; want a northern hemisphere UTM definition", def, err)
	}
}

func TestParseErrors(t *testing.T) {
	for _, code := range []string{
		"EPSG:99999",
		"EPSG:abc",
		"EPSG:32600",
		"EPSG:32761",
	} {
		if _, err := Parse(code); err == nil {
			t.Errorf("Parse(%q): expected an error", code)
		}
	}
}
