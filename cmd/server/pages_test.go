package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func postForm(h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHomeRendersFormWithDefaults(t *testing.T) {
	_, h := newTestServer(t, "")

	rr := doRequest(h, http.MethodGet, "/", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, expected := range []string{`name="tonnesMinedTarget" value="120000"`, "Operating targets", "No scenarios saved yet.", "Financial results", "Total cost"} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q", expected)
		}
	}
}

func TestFormSubmitShowsResults(t *testing.T) {
	_, h := newTestServer(t, "")

	form := url.Values{}
	form.Set("tonnesBlastedPeriod", "500000")
	rr := postForm(h, "/", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, expected := range []string{"Financial results", "Total cost", "Capacity / operation warnings (1)", "tonnes blasted (500,000t)"} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q", expected)
		}
	}
}

func TestFormSubmitSuppressesResultsOnValidationError(t *testing.T) {
	_, h := newTestServer(t, "")

	form := url.Values{}
	form.Set("plantFeedTarget", "0")
	rr := postForm(h, "/", form)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "target plant feed must be &gt; 0") {
		t.Fatalf("expected validation message in body")
	}
	if strings.Contains(body, "Financial results") {
		t.Fatalf("expected financial results to be suppressed")
	}
}

func TestFormSubmitRejectsOutOfBoundsField(t *testing.T) {
	_, h := newTestServer(t, "")

	form := url.Values{}
	form.Set("recoveryPct", "101")
	rr := postForm(h, "/", form)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "recoveryPct must be between 0 and 100") {
		t.Fatalf("expected bounds message in body")
	}
}

func TestFormSaveAndClear(t *testing.T) {
	srv, h := newTestServer(t, "tok")

	form := url.Values{}
	form.Set("action", "save")
	form.Set("name", "Base case")
	rr := postForm(h, "/", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Scenario &#39;Base case&#39; saved.") {
		t.Fatalf("expected save confirmation, got: %s", rr.Body.String())
	}

	list, err := srv.store.List(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one saved scenario, got %d (err %v)", len(list), err)
	}

	rr = postForm(h, "/scenarios/clear", url.Values{"token": {"nope"}})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}

	rr = postForm(h, "/scenarios/clear", url.Values{"token": {"tok"}})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rr.Code)
	}
	list, err = srv.store.List(context.Background())
	if err != nil || len(list) != 0 {
		t.Fatalf("expected no saved scenarios after clear, got %d (err %v)", len(list), err)
	}
}

func TestHomeRendersComparisonChartsForTwoScenarios(t *testing.T) {
	_, h := newTestServer(t, "")

	rr := doRequest(h, http.MethodPost, "/api/scenarios", `{"name": "Low price"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}
	rr = doRequest(h, http.MethodGet, "/", "")
	if strings.Contains(rr.Body.String(), "Truck productivity (t/h)") {
		t.Fatalf("expected no charts with a single saved scenario")
	}

	rr = doRequest(h, http.MethodPost, "/api/scenarios", `{"name": "High price", "inputs": {"metalPrice": 4}}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}
	rr = doRequest(h, http.MethodGet, "/", "")
	body := rr.Body.String()
	for _, expected := range []string{"<h3>Operating profit</h3>", "<h3>Truck productivity (t/h)</h3>", "<td>High price</td>"} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q", expected)
		}
	}
}
