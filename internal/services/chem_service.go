package services

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
	"strings"

	"github.com/openmol/drugforge/internal/types"
)

// Fingerprints holds the simulated molecular fingerprint embeddings. The
// values are deterministic per SMILES so repeated requests and tests agree.
type Fingerprints struct {
	Morgan string `json:"morgan"`
	MACCS  string `json:"maccs"`
}

// DockingResult holds a simulated docking run for a SMILES string.
type DockingResult struct {
	BindingEnergy float64 `json:"bindingEnergy"`
	Pose          string  `json:"pose"`
	Details       string  `json:"details"`
}

const (
	morganBits = 128
	maccsBits  = 166
)

// bitString derives a pseudo-random but stable bit vector from the SMILES.
func bitString(smiles, salt string, bits int) string {
	var sb strings.Builder
	sb.Grow(bits)
	h := fnv.New64a()
	h.Write([]byte(salt))
	h.Write([]byte(smiles))
	state := h.Sum64()
	for i := 0; i < bits; i++ {
		state = state*6364136223846793005 + 1442695040888963407
		if state>>63 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ComputeFingerprints returns simulated Morgan and MACCS fingerprints for a
// SMILES string.
func ComputeFingerprints(smiles string) (*Fingerprints, error) {
	smiles = strings.TrimSpace(smiles)
	if smiles == "" {
		return nil, types.Validation("SMILES string is required")
	}
	return &Fingerprints{
		Morgan: bitString(smiles, "morgan", morganBits),
		MACCS:  bitString(smiles, "maccs", maccsBits),
	}, nil
}

// PerformDocking returns a simulated docking result for a SMILES string.
// Binding energy lands in a plausible -5.0..-12.0 kcal/mol range.
func PerformDocking(smiles string) (*DockingResult, error) {
	smiles = strings.TrimSpace(smiles)
	if smiles == "" {
		return nil, types.Validation("SMILES string is required")
	}

	h := fnv.New64a()
	h.Write([]byte(smiles))
	seed := h.Sum64()

	energy := -5.0 - float64(seed%7001)/1000.0
	poses := []string{"binding pocket A", "binding pocket B", "allosteric site", "active site cleft"}
	pose := poses[seed%uint64(len(poses))]

	return &DockingResult{
		BindingEnergy: energy,
		Pose:          pose,
		Details: fmt.Sprintf("Simulated rigid docking of %s into %s; %d rotatable-bond conformers scored.",
			smiles, pose, 3+seed%8),
	}, nil
}

// ConvertFileToSmiles extracts a SMILES string from an uploaded chemistry
// file. Supported formats: .smi (first whitespace token of the first
// non-empty line) and .mol/.sdf (value of a "> <SMILES>" data field).
func ConvertFileToSmiles(filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".smi":
		for _, line := range strings.Split(string(content), "\n") {
			fields := strings.Fields(line)
			if len(fields) > 0 {
				return fields[0], nil
			}
		}
		return "", types.Validation("SMILES file is empty")
	case ".mol", ".sdf":
		lines := strings.Split(string(content), "\n")
		for i, line := range lines {
			tag := strings.TrimSpace(line)
			if !strings.HasPrefix(tag, ">") || !strings.Contains(strings.ToUpper(tag), "<SMILES>") {
				continue
			}
			for j := i + 1; j < len(lines); j++ {
				value := strings.TrimSpace(lines[j])
				if value != "" {
					return value, nil
				}
			}
		}
		return "", types.Validation("no SMILES data field found in file")
	default:
		return "", types.Validation("unsupported file format; expected .smi, .mol or .sdf")
	}
}
