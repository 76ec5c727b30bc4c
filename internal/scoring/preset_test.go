package scoring

import (
	"strings"
	"testing"
)

func TestPresetByName(t *testing.T) {
	t.Parallel()

	preset, err := PresetByName("Finance-Optimized")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if preset.ThreshAdmit != 50 {
		t.Fatalf("unexpected admit threshold: %v", preset.ThreshAdmit)
	}
}

func TestPresetByNameDefault(t *testing.T) {
	t.Parallel()

	preset, err := PresetByName("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if preset.ThreshAdmit != 55 {
		t.Fatalf("expected balanced preset, got admit threshold %v", preset.ThreshAdmit)
	}
}

func TestPresetByNameUnknown(t *testing.T) {
	t.Parallel()

	_, err := PresetByName("aggressive")
	if err == nil {
		t.Fatalf("expected error for unknown preset")
	}
	if !strings.Contains(err.Error(), "aggressive") {
		t.Fatalf("expected error to name the preset, got: %v", err)
	}
}

func TestUpliftFor(t *testing.T) {
	t.Parallel()

	preset := &Preset{SectorUplift: map[string]float64{SectorFinance: 1.08}}

	if uplift, ok := preset.UpliftFor(SectorFinance); !ok || uplift != 1.08 {
		t.Fatalf("expected 1.08 applied, got %v (%v)", uplift, ok)
	}
	if uplift, ok := preset.UpliftFor(SectorOther); ok || uplift != 1.0 {
		t.Fatalf("expected neutral 1.0, got %v (%v)", uplift, ok)
	}
}
