package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/absa-demo/internal/service/analysis"
)

func TestWebForm_DefaultsToFirstDataset(t *testing.T) {
	t.Parallel()

	h := NewWebHandler(&analyzerMock{}, []string{"Laptop14", "Twitter"}, examplesMock{"Laptop14": 4}, newTestLogger())

	rec := httptest.NewRecorder()
	h.Form(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, `value="Laptop14" checked`)
	assert.NotContains(t, body, `value="Twitter" checked`)
	assert.Contains(t, body, "Laptop14 (4)")
	assert.NotContains(t, body, "<table")
}

func TestWebSubmit_RendersTable(t *testing.T) {
	t.Parallel()

	svc := &analyzerMock{AnalyzeFunc: func(_ context.Context, text, _ string) analysis.Result {
		return okResult("the <b>battery</b> is great")
	}}
	h := NewWebHandler(svc, []string{"Laptop14", "Twitter"}, examplesMock{}, newTestLogger())

	form := url.Values{"text": {""}, "dataset": {"Twitter"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `value="Twitter" checked`)
	assert.Contains(t, body, `<table class="result">`)
	assert.Contains(t, body, "<th>Aspect</th>")
	assert.Contains(t, body, "<td>battery life</td>")
	assert.Contains(t, body, "<td>0.9876</td>")
	assert.Contains(t, body, "the &lt;b&gt;battery&lt;/b&gt; is great")

	calls := svc.AnalyzeCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, analyzeCall{Text: "", Dataset: "Twitter"}, calls[0])
}

func TestWebSubmit_MissingDatasetUsesDefault(t *testing.T) {
	t.Parallel()

	svc := &analyzerMock{AnalyzeFunc: func(context.Context, string, string) analysis.Result {
		return analysis.Result{
			Table:    analysis.MessageTable(analysis.MsgNoAspects),
			Sentence: "hello",
			Outcome:  analysis.OutcomeNoAspects,
		}
	}}
	h := NewWebHandler(svc, []string{"Laptop14"}, examplesMock{}, newTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("text=hello"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.Submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No aspects detected for the given text.")
	assert.Contains(t, rec.Body.String(), `<table class="message">`)

	calls := svc.AnalyzeCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Laptop14", calls[0].Dataset)
}

func TestTableKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "error", tableKind(analysis.ErrorTable("boom")))
	assert.Equal(t, "message", tableKind(analysis.MessageTable("hint")))
	assert.Equal(t, "result", tableKind(okResult("x").Table))
}
