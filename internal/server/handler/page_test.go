package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawndlwd/ai-code-reviewer/internal/review"
	"github.com/lawndlwd/ai-code-reviewer/internal/stats"
)

type fakeGenerator struct {
	result string
	err    error
	calls  int
}

func (f *fakeGenerator) Generate(context.Context, string) (string, error) {
	f.calls++
	return f.result, f.err
}

func newTestPageHandler(t *testing.T, gen *fakeGenerator) *PageHandler {
	t.Helper()

	analyzer, err := stats.NewAnalyzer()
	require.NoError(t, err)
	t.Cleanup(analyzer.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h, err := NewPageHandler(analyzer, review.NewReviewer(gen, logger), logger)
	require.NoError(t, err)
	return h
}

type formFile struct {
	name string
	data []byte
}

func submitForm(t *testing.T, h *PageHandler, code, action string, file *formFile) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("code", code))
	require.NoError(t, mw.WriteField("action", action))
	if file != nil {
		fw, err := mw.CreateFormFile("file", file.name)
		require.NoError(t, err)
		_, err = fw.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/review", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

func TestShowRendersEmptyPage(t *testing.T) {
	h := newTestPageHandler(t, &fakeGenerator{})

	rec := httptest.NewRecorder()
	h.Show(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Paste your code")
	assert.NotContains(t, rec.Body.String(), "Review Result")
}

func TestPreviewShowsStats(t *testing.T) {
	gen := &fakeGenerator{result: "unused"}
	h := newTestPageHandler(t, gen)

	rec := submitForm(t, h, "def f():\n    pass\n", "preview", nil)

	body := rec.Body.String()
	assert.Contains(t, body, "Lines: 2")
	assert.Contains(t, body, "Functions: 1")
	assert.Contains(t, body, "Classes: 0")
	assert.NotContains(t, body, "Review Result")
	assert.Equal(t, 0, gen.calls, "preview must not invoke the model")
}

func TestReviewRendersModelResponse(t *testing.T) {
	gen := &fakeGenerator{result: "Consider renaming f."}
	h := newTestPageHandler(t, gen)

	rec := submitForm(t, h, "def f():\n    pass\n", "review", nil)

	body := rec.Body.String()
	assert.Contains(t, body, "Review Result")
	assert.Contains(t, body, "Consider renaming f.")
	assert.Equal(t, 1, gen.calls)
}

func TestReviewBlankSubmissionWarnsWithoutRemoteCall(t *testing.T) {
	gen := &fakeGenerator{result: "unused"}
	h := newTestPageHandler(t, gen)

	for _, code := range []string{"", "   \n\t  "} {
		rec := submitForm(t, h, code, "review", nil)

		assert.Contains(t, rec.Body.String(), warnEmptySubmission)
		assert.Equal(t, 0, gen.calls, "blank submission must never reach the model")
	}
}

func TestUploadedFileTakesPrecedence(t *testing.T) {
	h := newTestPageHandler(t, &fakeGenerator{})

	file := &formFile{name: "snippet.py", data: []byte("class A:\n    pass\n")}
	rec := submitForm(t, h, "typed = 'ignored'\n", "preview", file)

	body := rec.Body.String()
	assert.Contains(t, body, "class A:")
	assert.Contains(t, body, "Classes: 1")
	assert.NotContains(t, body, "typed =")
}

func TestUnadvertisedExtensionStillAccepted(t *testing.T) {
	h := newTestPageHandler(t, &fakeGenerator{})

	file := &formFile{name: "notes.txt", data: []byte("def f():\n    pass\n")}
	rec := submitForm(t, h, "", "preview", file)

	body := rec.Body.String()
	assert.Contains(t, body, "def f():")
	assert.Contains(t, body, "Functions: 1")
	assert.NotContains(t, body, "Error reading file")
}

func TestUndecodableUploadWarns(t *testing.T) {
	gen := &fakeGenerator{result: "unused"}
	h := newTestPageHandler(t, gen)

	file := &formFile{name: "blob.py", data: []byte{0xff, 0xfe, 0xfd}}
	rec := submitForm(t, h, "", "review", file)

	body := rec.Body.String()
	assert.Contains(t, body, "Error reading file")
	assert.Equal(t, 0, gen.calls)
}

func TestReviewFailureRenderedAsText(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	h := newTestPageHandler(t, gen)

	rec := submitForm(t, h, "x = 1\n", "review", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error during review")
	assert.Contains(t, rec.Body.String(), "connection refused")
}
