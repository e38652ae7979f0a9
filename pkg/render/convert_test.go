package render

import (
	"testing"

	"github.com/matzehuels/hingecut/pkg/errors"
)

func TestMissingConverter(t *testing.T) {
	old := rsvgBinary
	rsvgBinary = "hingecut-no-such-converter"
	defer func() { rsvgBinary = old }()

	if Available() {
		t.Fatal("Available() should be false for a missing binary")
	}

	_, err := ToPDF([]byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want UNSUPPORTED", err)
	}
}

func TestToPNGRejectsBadScale(t *testing.T) {
	_, err := ToPNG([]byte("<svg/>"), 0)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ToPNG(scale 0) error = %v, want INVALID_INPUT", err)
	}
}
