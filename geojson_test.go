package rasterfootprint

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/ctessum/geom"
)

func TestGeometryEncode(t *testing.T) {
	p := geom.Polygon{squareRing}
	g := NewGeometry(p)
	b, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeGeometry(b)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded, p) {
		t.Errorf("round trip = %v, want %v", decoded, p)
	}
}

func TestGeometryEncodeMultiPolygon(t *testing.T) {
	mp := geom.MultiPolygon{{squareRing}, {concaveRing}}
	b, err := json.Marshal(NewGeometry(mp))
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeGeometry(b)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded, mp) {
		t.Errorf("round trip = %v, want %v", decoded, mp)
	}
}

func TestGeometryEncodeEmpty(t *testing.T) {
	b, err := json.Marshal(NewGeometry(geom.Polygon{}))
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"type":"Polygon","coordinates":[]}`; string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestDecodeGeometryRejectsOtherTypes(t *testing.T) {
	_, err := DecodeGeometry([]byte(`{"type":"Point","coordinates":[1,2]}`))
	var iae *InvalidArgumentError
	if !errors.As(err, &iae) {
		t.Fatalf("got %v, want an InvalidArgumentError", err)
	}
}

func TestDecodeGeometryMalformed(t *testing.T) {
	cases := []string{
		`{"type":"Polygon","coordinates":[[["a","b"]]]}`,
		`{"type":"Polygon","coordinates":[[[1]]]}`,
		`{"type":"Polygon","coordinates":42}`,
		`{"type":"MultiPolygon","coordinates":[42]}`,
	}
	for _, c := range cases {
		if _, err := DecodeGeometry([]byte(c)); err == nil {
			t.Errorf("%s: expected an error", c)
		}
	}
}
