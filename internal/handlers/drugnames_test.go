package handlers_test

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/openmol/drugforge/internal/services"
	"github.com/openmol/drugforge/tests/helpers"
)

const candidateJSON = `[
	{"rank":1,"name":"Aspicaffin","rationale":"acetyl stem","compliance":"Pass"},
	{"rank":2,"name":"Cafprin","rationale":"blend","compliance":"Fail: stem collision"}
]`

type drugNameResponse struct {
	Success       bool   `json:"success"`
	SuggestedName string `json:"suggestedName"`
	NamingDetails string `json:"namingDetails"`
	AllCandidates []struct {
		Rank int    `json:"rank"`
		Name string `json:"name"`
	} `json:"allCandidates"`
	Fallback string `json:"fallback"`
}

func TestGenerateDrugName(t *testing.T) {
	env := newTestEnv(t, &services.MockGenerator{Response: candidateJSON})
	user, cookie := env.signupUser(t, "ada", "ada@example.com")

	payload := map[string]string{
		"moleculeTitle": "Aspirin Caffeine Hybrid",
		"smiles":        "CC(=O)Oc1ccccc1C(=O)O",
	}
	resp := env.request(t, jsonRequest(http.MethodPost, "/api/protein/generate-drug-name/"+user.ID, payload), cookie)
	helpers.AssertStatus(t, resp, http.StatusOK)

	var body drugNameResponse
	helpers.ParseJSON(t, resp, &body)
	if body.SuggestedName != "Aspicaffin" {
		t.Errorf("Expected top candidate persisted, got %q", body.SuggestedName)
	}
	if len(body.AllCandidates) != 2 {
		t.Errorf("Expected all candidates returned, got %d", len(body.AllCandidates))
	}
	if body.Fallback != "" {
		t.Errorf("Expected no fallback notice, got %q", body.Fallback)
	}

	// Same molecule again: the saved name wins, no second generation.
	resp = env.request(t, jsonRequest(http.MethodPost, "/api/protein/generate-drug-name/"+user.ID, payload), cookie)
	helpers.AssertStatus(t, resp, http.StatusConflict)
	helpers.AssertErrorMessage(t, resp, "Drug name already generated for this molecule")
}

func TestGenerateDrugNameFallback(t *testing.T) {
	env := newTestEnv(t, &services.MockGenerator{Response: "I am sorry, I cannot help with that."})
	user, cookie := env.signupUser(t, "ada", "ada@example.com")

	resp := env.request(t, jsonRequest(http.MethodPost, "/api/protein/generate-drug-name/"+user.ID, map[string]string{
		"moleculeTitle": "Aspirin Caffeine Hybrid",
		"smiles":        "CC(=O)Oc1ccccc1C(=O)O",
	}), cookie)
	helpers.AssertStatus(t, resp, http.StatusOK)

	var body drugNameResponse
	helpers.ParseJSON(t, resp, &body)
	if body.Fallback == "" {
		t.Error("Expected fallback notice when output is unparsable")
	}
	if !strings.HasSuffix(body.SuggestedName, "ib") {
		t.Errorf("Expected derived fallback name, got %q", body.SuggestedName)
	}
}

func TestGenerateDrugNameUpstreamFailure(t *testing.T) {
	env := newTestEnv(t, &services.MockGenerator{Err: errors.New("quota exhausted")})
	user, cookie := env.signupUser(t, "ada", "ada@example.com")

	resp := env.request(t, jsonRequest(http.MethodPost, "/api/protein/generate-drug-name/"+user.ID, map[string]string{
		"moleculeTitle": "Hybrid",
		"smiles":        "CCO",
	}), cookie)
	helpers.AssertStatus(t, resp, http.StatusBadGateway)
	helpers.AssertErrorMessage(t, resp, "Drug name generation failed")
}

func TestListAndCheckDrugNames(t *testing.T) {
	env := newTestEnv(t, &services.MockGenerator{Response: candidateJSON})
	user, cookie := env.signupUser(t, "ada", "ada@example.com")

	if _, err := services.SaveDrugName(env.DB, user.ID, "Hybrid", "CCO", "Hybridib", "stem"); err != nil {
		t.Fatalf("Failed to seed drug name: %v", err)
	}

	resp := env.request(t, jsonRequest(http.MethodGet, "/api/protein/saved-drug-names", nil), cookie)
	helpers.AssertStatus(t, resp, http.StatusOK)

	var listBody struct {
		DrugNames []struct {
			SuggestedName string `json:"suggestedName"`
		} `json:"drugNames"`
	}
	helpers.ParseJSON(t, resp, &listBody)
	if len(listBody.DrugNames) != 1 || listBody.DrugNames[0].SuggestedName != "Hybridib" {
		t.Errorf("Bad saved list: %+v", listBody.DrugNames)
	}

	query := url.Values{"moleculeTitle": {"Hybrid"}, "smiles": {"CCO"}}
	resp = env.request(t, jsonRequest(http.MethodGet, "/api/protein/check-saved-drug-name?"+query.Encode(), nil), cookie)
	helpers.AssertStatus(t, resp, http.StatusOK)

	var checkBody struct {
		Exists bool `json:"exists"`
	}
	helpers.ParseJSON(t, resp, &checkBody)
	if !checkBody.Exists {
		t.Error("Expected saved drug name to be reported")
	}

	resp = env.request(t, jsonRequest(http.MethodGet, "/api/protein/check-saved-drug-name?moleculeTitle=Other&smiles=CCN", nil), cookie)
	helpers.ParseJSON(t, resp, &checkBody)
	if checkBody.Exists {
		t.Error("Expected unsaved molecule to report false")
	}

	resp = env.request(t, jsonRequest(http.MethodGet, "/api/protein/check-saved-drug-name", nil), cookie)
	helpers.AssertStatus(t, resp, http.StatusBadRequest)
}
