package render

import (
	"context"
	"testing"

	"github.com/matzehuels/vgraph/pkg/errors"
)

func TestToPNG_InvalidScale(t *testing.T) {
	_, err := ToPNG(context.Background(), []byte("<svg/>"), 0)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestConvert_MissingTool(t *testing.T) {
	if Available() {
		t.Skip(Converter + " is installed")
	}
	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("expected UNSUPPORTED, got %v", err)
	}
}
