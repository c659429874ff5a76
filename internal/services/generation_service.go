package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// BuildMoleculePrompt produces the generation prompt for combining two source
// molecules into a new hybrid candidate. The labeled sections are what
// ParseMoleculeOutput extracts afterwards.
func BuildMoleculePrompt(title, smilesA, smilesB string) string {
	return fmt.Sprintf(`You are an expert medicinal chemist. Combine the two molecules below into a single novel hybrid drug candidate named "%s".

Molecule A SMILES: %s
Molecule B SMILES: %s

Respond in plain text with exactly these labeled sections:
New SMILES: <the SMILES string of the hybrid molecule on one line>
IUPAC Name: <the systematic IUPAC name on one line>
Conversion Details: <how the two structures were merged and a plausible synthesis route>
Potential Diseases: <diseases or conditions the hybrid could target and why>
Information: <pharmacological profile, expected ADMET properties, and safety considerations>`,
		title, smilesA, smilesB)
}

var sectionLabels = map[string]string{
	"new smiles":         "smiles",
	"smiles":             "smiles",
	"new iupac name":     "iupac",
	"iupac name":         "iupac",
	"conversion details": "conversion",
	"potential diseases": "diseases",
	"information":        "information",
}

var labelDecoration = regexp.MustCompile(`^[#*\-\s]+|[*\s]+$`)

// ParseMoleculeOutput extracts the labeled sections from a completed
// generation. Unrecognized leading text is ignored; each section runs until
// the next recognized label. The full raw text is preserved by the caller as
// the molecule's information blob when no Information section is present.
func ParseMoleculeOutput(full string) MoleculeInput {
	sections := make(map[string]*strings.Builder)
	current := ""

	for _, line := range strings.Split(full, "\n") {
		if key, rest, ok := matchSectionLabel(line); ok {
			current = key
			if sections[current] == nil {
				sections[current] = &strings.Builder{}
			}
			if rest != "" {
				sections[current].WriteString(rest)
			}
			continue
		}
		if current != "" {
			sb := sections[current]
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(line)
		}
	}

	get := func(key string) string {
		if sb, ok := sections[key]; ok {
			return strings.TrimSpace(sb.String())
		}
		return ""
	}

	in := MoleculeInput{
		Smiles:            firstLine(get("smiles")),
		IupacName:         firstLine(get("iupac")),
		ConversionDetails: get("conversion"),
		PotentialDiseases: get("diseases"),
		Information:       get("information"),
	}
	if in.Information == "" {
		in.Information = strings.TrimSpace(full)
	}
	return in
}

// matchSectionLabel reports whether a line opens a known labeled section,
// returning the canonical section key and any text after the colon.
func matchSectionLabel(line string) (key, rest string, ok bool) {
	label, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	cleaned := strings.ToLower(labelDecoration.ReplaceAllString(label, ""))
	canonical, known := sectionLabels[cleaned]
	if !known {
		return "", "", false
	}
	return canonical, strings.TrimSpace(strings.Trim(value, "* ")), true
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// DrugNameCandidate is one ranked naming suggestion. The shape matches what
// the SPA renders (rank, name, rationale, compliance).
type DrugNameCandidate struct {
	Rank       int    `json:"rank"`
	Name       string `json:"name"`
	Rationale  string `json:"rationale"`
	Compliance string `json:"compliance"`
}

// BuildDrugNamePrompt produces the naming prompt for a saved molecule.
func BuildDrugNamePrompt(moleculeTitle, smiles string) string {
	return fmt.Sprintf(`You are an expert in pharmaceutical nomenclature. Propose three candidate drug names for the molecule "%s" (SMILES: %s).

Follow USAN/INN stem conventions where applicable. Respond with ONLY a JSON array, no prose, no code fences:
[{"rank":1,"name":"...","rationale":"...","compliance":"..."},{"rank":2,...},{"rank":3,...}]

rationale explains the structural or pharmacological basis of the name; compliance states USAN/INN stem compliance ("Pass" or "Fail: <reason>").`,
		moleculeTitle, smiles)
}

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// ParseDrugNameCandidates extracts the ranked candidate list from the model
// output, tolerating code fences and surrounding prose. Returns an error when
// no usable candidate list can be recovered.
func ParseDrugNameCandidates(raw string) ([]DrugNameCandidate, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	match := jsonArrayPattern.FindString(cleaned)
	if match == "" {
		return nil, fmt.Errorf("no candidate array in model output")
	}

	var candidates []DrugNameCandidate
	if err := json.Unmarshal([]byte(match), &candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	if len(candidates) == 0 || candidates[0].Name == "" {
		return nil, fmt.Errorf("empty candidate list")
	}
	return candidates, nil
}

// FallbackDrugName derives a deterministic placeholder candidate when the
// model output cannot be parsed. The caller surfaces the fallback notice to
// the client alongside it.
func FallbackDrugName(moleculeTitle string) DrugNameCandidate {
	base := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(moleculeTitle), " ", ""))
	if len(base) > 8 {
		base = base[:8]
	}
	if base == "" {
		base = "novamol"
	}
	return DrugNameCandidate{
		Rank:       1,
		Name:       strings.ToUpper(base[:1]) + base[1:] + "ib",
		Rationale:  "Derived from the molecule title; AI naming output could not be parsed.",
		Compliance: "Unverified",
	}
}
