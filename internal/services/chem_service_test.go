package services_test

import (
	"strings"
	"testing"

	"github.com/openmol/drugforge/internal/services"
	"github.com/openmol/drugforge/internal/types"
)

func TestComputeFingerprints(t *testing.T) {
	fp, err := services.ComputeFingerprints("CC(=O)Oc1ccccc1C(=O)O")
	if err != nil {
		t.Fatalf("Failed to compute fingerprints: %v", err)
	}
	if len(fp.Morgan) != 128 {
		t.Errorf("Expected 128 Morgan bits, got %d", len(fp.Morgan))
	}
	if len(fp.MACCS) != 166 {
		t.Errorf("Expected 166 MACCS bits, got %d", len(fp.MACCS))
	}
	for _, bits := range []string{fp.Morgan, fp.MACCS} {
		if strings.Trim(bits, "01") != "" {
			t.Errorf("Fingerprint contains non-bit characters: %q", bits)
		}
	}

	// Stable per SMILES, distinct across SMILES.
	again, _ := services.ComputeFingerprints("CC(=O)Oc1ccccc1C(=O)O")
	if again.Morgan != fp.Morgan || again.MACCS != fp.MACCS {
		t.Error("Expected deterministic fingerprints")
	}
	other, _ := services.ComputeFingerprints("CCO")
	if other.Morgan == fp.Morgan {
		t.Error("Expected different SMILES to produce different fingerprints")
	}
}

func TestComputeFingerprintsEmpty(t *testing.T) {
	_, err := services.ComputeFingerprints("  ")
	apiErr, ok := types.AsAPIError(err)
	if !ok || apiErr.Code != 400 {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestPerformDocking(t *testing.T) {
	result, err := services.PerformDocking("CC(=O)Oc1ccccc1C(=O)O")
	if err != nil {
		t.Fatalf("Failed to perform docking: %v", err)
	}
	if result.BindingEnergy > -5.0 || result.BindingEnergy < -12.002 {
		t.Errorf("Binding energy out of range: %f", result.BindingEnergy)
	}
	if result.Pose == "" || !strings.Contains(result.Details, result.Pose) {
		t.Errorf("Details do not reference pose: %+v", result)
	}

	again, _ := services.PerformDocking("CC(=O)Oc1ccccc1C(=O)O")
	if again.BindingEnergy != result.BindingEnergy || again.Pose != result.Pose {
		t.Error("Expected deterministic docking result")
	}

	if _, err := services.PerformDocking(""); err == nil {
		t.Error("Expected error for empty SMILES")
	}
}

func TestConvertFileToSmiles(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		want     string
		wantErr  string
	}{
		{
			name:     "smi first token",
			filename: "aspirin.smi",
			content:  "\nCC(=O)Oc1ccccc1C(=O)O aspirin\nCCO ethanol\n",
			want:     "CC(=O)Oc1ccccc1C(=O)O",
		},
		{
			name:     "sdf data field",
			filename: "aspirin.sdf",
			content:  "aspirin\n  header\n\n> <SMILES>\nCC(=O)Oc1ccccc1C(=O)O\n\n$$$$\n",
			want:     "CC(=O)Oc1ccccc1C(=O)O",
		},
		{
			name:     "mol lowercase tag",
			filename: "mol.MOL",
			content:  "> <smiles>\nCCO\n",
			want:     "CCO",
		},
		{
			name:     "sdf without smiles field",
			filename: "plain.sdf",
			content:  "aspirin\n> <LOGP>\n1.2\n",
			wantErr:  "no SMILES data field found in file",
		},
		{
			name:     "empty smi",
			filename: "empty.smi",
			content:  "\n  \n",
			wantErr:  "SMILES file is empty",
		},
		{
			name:     "unsupported extension",
			filename: "molecule.pdb",
			content:  "ATOM",
			wantErr:  "unsupported file format; expected .smi, .mol or .sdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.ConvertFileToSmiles(tt.filename, []byte(tt.content))
			if tt.wantErr != "" {
				apiErr, ok := types.AsAPIError(err)
				if !ok || apiErr.Message != tt.wantErr {
					t.Fatalf("Expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Failed to convert: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
