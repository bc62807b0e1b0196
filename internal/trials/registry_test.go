// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trials

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trialscout/internal/ctgov"
	"github.com/pdiddy/trialscout/internal/httputil"
	"github.com/pdiddy/trialscout/pkg/types"
)

func testRegistry() *ClinicalTrialsRegistry {
	return &ClinicalTrialsRegistry{
		Client:   &ctgov.Client{HTTP: httputil.NewClient(types.HTTPConfig{}, 0)},
		PageSize: 10,
	}
}

func TestClinicalTrialsRegistry_ConvertsStudies(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "aspirin", r.URL.Query().Get("query.intr"))
		assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
		fmt.Fprint(w, `{"studies":[{"protocolSection":{
			"identificationModule":{"nctId":"NCT001","briefTitle":"Aspirin in stroke"},
			"statusModule":{"overallStatus":"COMPLETED"},
			"designModule":{"phases":["PHASE3"]}}}]}`)
	}))
	defer ts.Close()
	defer ctgov.SetBaseURL(ts.URL)()

	got, err := testRegistry().SearchTrials(context.Background(), "aspirin")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "NCT001", got[0].ID)
	assert.Equal(t, "Aspirin in stroke", got[0].Title)
	assert.Equal(t, "COMPLETED", got[0].Status)
	assert.Equal(t, "https://clinicaltrials.gov/study/NCT001", got[0].URL)
}

func TestClinicalTrialsRegistry_NotFoundIsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()
	defer ctgov.SetBaseURL(ts.URL)()

	got, err := testRegistry().SearchTrials(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClinicalTrialsRegistry_LaterPageNotFoundKeepsEarlierStudies(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageToken") != "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"studies":[{"protocolSection":{
			"identificationModule":{"nctId":"NCT001","briefTitle":"Aspirin in stroke"}}}],
			"nextPageToken":"page2"}`)
	}))
	defer ts.Close()
	defer ctgov.SetBaseURL(ts.URL)()

	got, err := testRegistry().SearchTrials(context.Background(), "aspirin")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "NCT001", got[0].ID)
}

func TestClinicalTrialsRegistry_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	defer ctgov.SetBaseURL(ts.URL)()

	_, err := testRegistry().SearchTrials(context.Background(), "aspirin")
	var se *httputil.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestNameFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.yaml")
	require.NoError(t, WriteNameFile(path, "aspirin", []string{"aspirin", "acetylsalicylic acid"}))

	nf, err := ReadNameFile(path)
	require.NoError(t, err)
	assert.Equal(t, "aspirin", nf.Query)
	assert.Equal(t, []string{"aspirin", "acetylsalicylic acid"}, nf.Names)
	assert.False(t, nf.SavedAt.IsZero())
}

func TestReadNameFile_Missing(t *testing.T) {
	_, err := ReadNameFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading name file")
}
