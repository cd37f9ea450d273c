package validation

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/icco/launchdash/lib/figures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndParseUpdateRequest(t *testing.T) {
	req, err := ValidateAndParseUpdateRequest([]byte(`{"site": "KSC LC-39A", "payload": [1000, 2500.5]}`))
	require.NoError(t, err)
	assert.Equal(t, "KSC LC-39A", req.Site)
	assert.Equal(t, figures.PayloadRange{Low: 1000, High: 2500.5}, req.PayloadRange(figures.PayloadRange{}))

	req, err = ValidateAndParseUpdateRequest([]byte(`{"site": "ALL"}`))
	require.NoError(t, err)
	fallback := figures.PayloadRange{Low: 0, High: 9600}
	assert.Equal(t, fallback, req.PayloadRange(fallback))
}

func TestValidateUpdateRequest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `site=ALL`},
		{name: "missing site", body: `{"payload": [0, 1]}`},
		{name: "empty site", body: `{"site": ""}`},
		{name: "site not a string", body: `{"site": 4}`},
		{name: "one bound", body: `{"site": "ALL", "payload": [1000]}`},
		{name: "three bounds", body: `{"site": "ALL", "payload": [1, 2, 3]}`},
		{name: "string bound", body: `{"site": "ALL", "payload": ["0", 1]}`},
		{name: "unknown field", body: `{"site": "ALL", "session": "abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateUpdateRequest([]byte(tt.body)))
		})
	}
}

func TestSiteParam(t *testing.T) {
	assert.Equal(t, figures.AllSites, SiteParam(url.Values{}))
	assert.Equal(t, figures.AllSites, SiteParam(url.Values{"site": {""}}))
	assert.Equal(t, " KSC LC-39A ", SiteParam(url.Values{"site": {" KSC LC-39A "}}))
	assert.Equal(t, "VAFB SLC-4E", SiteParam(url.Values{"site": {"VAFB SLC-4E"}}))
}

func TestPayloadRangeParams(t *testing.T) {
	fallback := figures.PayloadRange{Low: 0, High: 9600}

	rng, err := PayloadRangeParams(url.Values{}, fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, rng)

	rng, err = PayloadRangeParams(url.Values{"low": {"1000"}}, fallback)
	require.NoError(t, err)
	assert.Equal(t, figures.PayloadRange{Low: 1000, High: 9600}, rng)

	rng, err = PayloadRangeParams(url.Values{"low": {"1000"}, "high": {"2500"}}, fallback)
	require.NoError(t, err)
	assert.Equal(t, figures.PayloadRange{Low: 1000, High: 2500}, rng)

	for _, bad := range []string{"heavy", "NaN", "Inf"} {
		_, err = PayloadRangeParams(url.Values{"high": {bad}}, fallback)
		assert.Error(t, err, bad)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("invalid low"), http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid low", body["error"])
}
