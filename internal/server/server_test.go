package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/cv-copilot/internal/application"
	"github.com/spigell/cv-copilot/internal/document"
)

const (
	testCV  = "SUMMARY\nGo engineer\nEXPERIENCE\n- worked on the billing API\nSKILLS\nGo, Docker"
	testJob = "Position: Backend Engineer\nCompany: Acme\nRequired: Python, Docker"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(logger *zap.Logger) *Server {
	return New(application.New(logger), logger, "test")
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestServer(nil).Handler(), http.MethodGet, "/api/v1/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","version":"test","writer":"rules"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	newTestServer(nil).Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestProcessApplication(t *testing.T) {
	rec := doJSON(t, newTestServer(nil).Handler(), http.MethodPost, "/api/v1/applications", application.Request{
		JobDescription: testJob,
		CVText:         testCV,
		PersonalTouch:  "I have used Acme for years.",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res application.Results
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.ApplicationID)
	assert.Contains(t, res.CVSuggestions, "CV Optimization Report: Backend Engineer at Acme")
	assert.Contains(t, res.CoverLetter, "Backend Engineer position at Acme")
	assert.Contains(t, res.CoverLetter, "I have used Acme for years.")
}

func TestProcessApplicationRequiresJobDescription(t *testing.T) {
	rec := doJSON(t, newTestServer(nil).Handler(), http.MethodPost, "/api/v1/applications", map[string]string{"cvText": testCV})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeInvalidRequest, decodeError(t, rec).Code)
}

func TestProcessApplicationFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body, err := json.Marshal(application.Request{JobDescription: testJob})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", bytes.NewReader(body)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newTestServer(nil).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	errBody := decodeError(t, rec)
	assert.Equal(t, codeProcessingFailed, errBody.Code)
	assert.Equal(t, application.ErrProcessingFailed.Error(), errBody.Message)
}

func TestAnalyze(t *testing.T) {
	rec := doJSON(t, newTestServer(nil).Handler(), http.MethodPost, "/api/v1/analyses", AnalysisRequest{
		CVText:         testCV,
		JobDescription: testJob,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		CV struct {
			Skills struct {
				Technical []string `json:"technical"`
			} `json:"skills"`
		} `json:"cv"`
		Job struct {
			RoleTitle      string   `json:"roleTitle"`
			RequiredSkills []string `json:"requiredSkills"`
		} `json:"job"`
		Suggestions []struct {
			Category string `json:"category"`
			Priority string `json:"priority"`
		} `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, "Backend Engineer", got.Job.RoleTitle)
	assert.Equal(t, []string{"Python", "Docker"}, got.Job.RequiredSkills)
	assert.Equal(t, []string{"API", "Docker"}, got.CV.Skills.Technical)
	require.NotEmpty(t, got.Suggestions)
	assert.Equal(t, "high", got.Suggestions[0].Priority)
}

func uploadRequest(t *testing.T, fileName string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("other", "value"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseDocumentUnreadablePDF(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rec := httptest.NewRecorder()

	newTestServer(zap.New(core)).Handler().ServeHTTP(rec, uploadRequest(t, "cv.pdf", []byte("%PDF-1.4\nnot really a pdf")))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res document.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.True(t, strings.HasPrefix(res.Error, "Error parsing PDF"), res.Error)
	assert.Equal(t, 1, logs.FilterMessage("document not converted").Len())
}

func TestParseDocumentRejectsUnsupportedUpload(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(nil).Handler().ServeHTTP(rec, uploadRequest(t, "cv.txt", []byte("plain text cv")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decodeError(t, rec)
	assert.Equal(t, codeInvalidFile, errBody.Code)
	assert.Equal(t, document.MsgNotAllowed, errBody.Message)
}

func TestParseDocumentRequiresFile(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(nil).Handler().ServeHTTP(rec, uploadRequest(t, "", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeInvalidRequest, decodeError(t, rec).Code)
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := newTestServer(zap.New(core))
	s.engine.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := doJSON(t, s.Handler(), http.MethodGet, "/boom", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, codeInternal, decodeError(t, rec).Code)
	assert.Equal(t, 1, logs.FilterMessage("panic while serving request").Len())

	entries := logs.FilterMessage("request complete").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusInternalServerError), entries[0].ContextMap()["status"])
}
