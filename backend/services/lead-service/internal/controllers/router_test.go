package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/app"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/clients/backend"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/config"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/dtos"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-middleware"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-repositories"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

var adminSecret = []byte("0123456789abcdef0123456789abcdef")

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

// treeBackend fakes the tree-services REST backend.
type treeBackend struct {
	addRequestStatus int
	addRequestCalls  atomic.Int32
	images           atomic.Int32
	chatStatus       int
	chatBody         string
	deleted          []string
}

func (b *treeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(backend.PathAddRequest, func(w http.ResponseWriter, r *http.Request) {
		b.addRequestCalls.Add(1)
		if err := r.ParseMultipartForm(10 << 20); err == nil {
			b.images.Store(int32(len(r.MultipartForm.File["Images"])))
		}
		w.WriteHeader(b.addRequestStatus)
		_, _ = w.Write([]byte(`{"message":"Invalid zip code"}`))
	})
	mux.HandleFunc(backend.PathGetTestimonials, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"t1","name":"Ann","content":"Great crew","rating":7,"date":"2024-05-01"}]`))
	})
	mux.HandleFunc(backend.PathDeleteTestimonial, func(w http.ResponseWriter, r *http.Request) {
		b.deleted = append(b.deleted, r.URL.Path[len(backend.PathDeleteTestimonial):])
		_, _ = w.Write([]byte(`{"message":"deleted"}`))
	})
	mux.HandleFunc(backend.PathGetEstimates, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"e1","customerName":"Bob"}]`))
	})
	mux.HandleFunc(backend.PathSubmitEstimate, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc(backend.PathChat, func(w http.ResponseWriter, r *http.Request) {
		if b.chatStatus != 0 {
			w.WriteHeader(b.chatStatus)
			return
		}
		if b.chatBody != "" {
			_, _ = w.Write([]byte(b.chatBody))
			return
		}
		_, _ = w.Write([]byte(`{"response":"We trim palms year round."}`))
	})
	return mux
}

func newTestRouter(t *testing.T, tb *treeBackend) http.Handler {
	t.Helper()
	return newTestRouterWith(t, tb, middleware.NewRateLimiter(600, 100))
}

func newTestRouterWith(t *testing.T, tb *treeBackend, limiter *middleware.RateLimiter) http.Handler {
	t.Helper()
	srv := httptest.NewServer(tb.handler(t))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		OrganizationName: utils.OrganizationName,
		AppName:          "lead-service",
		BackendURL:       srv.URL,
		AdminJWTSecret:   adminSecret,
	}
	a := app.New(cfg, repositories.NewMemoryItemStore(), backend.NewClient(srv.URL, nil, 5*time.Second))
	return NewRouter(a, limiter)
}

type filePart struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func pngPart(field string) filePart {
	return filePart{field: field, filename: "tree.png", contentType: "image/png", data: pngBytes}
}

func multipartBody(t *testing.T, fields map[string]string, files []filePart) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, _ = part.Write(f.data)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func contactForm(t *testing.T, fields map[string]string, images int) (*bytes.Buffer, string) {
	t.Helper()
	files := make([]filePart, images)
	for i := range files {
		files[i] = pngPart(dtos.PartImages)
	}
	return multipartBody(t, fields, files)
}

func validFields() map[string]string {
	return map[string]string{
		"Contact_Details.First_name":        "Jane",
		"Contact_Details.Last_name":         "Doe",
		"Contact_Details.Email":             "jane@example.com",
		"Contact_Details.Phone":             "812-457-3433",
		"Service_details.PropertyType":      "Residential",
		"Service_details.Tree_Removal":      "on",
		"Availability.Arrival_time.Morning": "true",
	}
}

func postForm(t *testing.T, h http.Handler, fields map[string]string, images int, clientID string) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := contactForm(t, fields, images)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set(utils.HeaderClientID, clientID)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postFiles(t *testing.T, h http.Handler, files []filePart) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartBody(t, validFields(), files)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set(utils.HeaderClientID, "tab-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func getRecent(t *testing.T, h http.Handler, header http.Header) dtos.RecentRequestsResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests/recent", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var recent dtos.RecentRequestsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recent))
	return recent
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var e utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestSubmitRequestFlow(t *testing.T) {
	tb := &treeBackend{addRequestStatus: http.StatusCreated}
	h := newTestRouter(t, tb)

	rec := postForm(t, h, validFields(), 6, "tab-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, tb.addRequestCalls.Load())
	assert.EqualValues(t, utils.MaxLeadImages, tb.images.Load())

	var resp dtos.SubmitRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Jane Doe", resp.Record.Name)
	assert.Equal(t, "Tree_Removal", resp.Record.Service)
	require.Len(t, resp.RecentRequests, 1)

	// Recent list is per browser scope.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests/recent", nil)
	req.Header.Set(utils.HeaderClientID, "tab-1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var recent dtos.RecentRequestsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recent))
	require.Len(t, recent.RecentRequests, 1)
	assert.Equal(t, resp.Record.ID, recent.RecentRequests[0].ID)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/requests/recent", nil)
	req.Header.Set(utils.HeaderClientID, "tab-2")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recent))
	assert.Empty(t, recent.RecentRequests)
}

func TestRecentRequestsNeedClientID(t *testing.T) {
	tb := &treeBackend{addRequestStatus: http.StatusCreated}
	h := newTestRouter(t, tb)

	// Victim submits without X-Client-ID from their own address.
	body, ct := contactForm(t, validFields(), 0)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", body)
	req.Header.Set("Content-Type", ct)
	req.RemoteAddr = "198.51.100.7:40000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp dtos.SubmitRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Record.ID)
	assert.NotNil(t, resp.RecentRequests)
	assert.Empty(t, resp.RecentRequests)

	// Someone else names the victim's address in a forwarding header.
	forged := getRecent(t, h, http.Header{
		"X-Forwarded-For": {"198.51.100.7"},
		"X-Real-Ip":       {"198.51.100.7"},
	})
	assert.Empty(t, forged.RecentRequests)

	// Even the victim's own address sees nothing without a client id.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/requests/recent", nil)
	req.RemoteAddr = "198.51.100.7:40001"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recentRequests":[]}`, rec.Body.String())
}

func TestSubmitRateLimitIgnoresForgedHeaders(t *testing.T) {
	tb := &treeBackend{addRequestStatus: http.StatusCreated}
	h := newTestRouterWith(t, tb, middleware.NewRateLimiter(1, 1))

	send := func(clientID, forwardedFor string) int {
		body, ct := contactForm(t, validFields(), 0)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set(utils.HeaderClientID, clientID)
		if forwardedFor != "" {
			req.Header.Set("X-Forwarded-For", forwardedFor)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusCreated, send("tab-1", ""))
	assert.Equal(t, http.StatusTooManyRequests, send("tab-2", ""))
	assert.Equal(t, http.StatusTooManyRequests, send("", "203.0.113.200"))
	assert.EqualValues(t, 1, tb.addRequestCalls.Load())
}

func TestSubmitRequestDroppedImages(t *testing.T) {
	tb := &treeBackend{addRequestStatus: http.StatusCreated}
	h := newTestRouter(t, tb)

	rec := postFiles(t, h, []filePart{
		pngPart(dtos.PartImages),
		{field: dtos.PartDroppedImages, filename: "notes.txt", contentType: "image/png", data: []byte("just some notes")},
		pngPart(dtos.PartDroppedImages),
		pngPart(dtos.PartDroppedImages),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.EqualValues(t, 3, tb.images.Load(), "non-image drop is discarded")
}

func TestSubmitRequestIgnoresFilesPastCap(t *testing.T) {
	huge := bytes.Repeat([]byte{0}, maxImageBytes+1)
	hugePNG := append(append([]byte{}, pngBytes...), huge...)

	t.Run("picker", func(t *testing.T) {
		tb := &treeBackend{addRequestStatus: http.StatusCreated}
		h := newTestRouter(t, tb)
		files := []filePart{}
		for i := 0; i < utils.MaxLeadImages; i++ {
			files = append(files, pngPart(dtos.PartImages))
		}
		files = append(files, filePart{field: dtos.PartImages, filename: "big.png", contentType: "image/png", data: hugePNG})

		rec := postFiles(t, h, files)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.EqualValues(t, utils.MaxLeadImages, tb.images.Load())
	})

	t.Run("drop", func(t *testing.T) {
		tb := &treeBackend{addRequestStatus: http.StatusCreated}
		h := newTestRouter(t, tb)
		files := []filePart{
			{field: dtos.PartDroppedImages, filename: "big.bin", contentType: "application/octet-stream", data: huge},
		}
		for i := 0; i < utils.MaxLeadImages; i++ {
			files = append(files, pngPart(dtos.PartDroppedImages))
		}
		files = append(files, filePart{field: dtos.PartDroppedImages, filename: "big.png", contentType: "image/png", data: hugePNG})

		rec := postFiles(t, h, files)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.EqualValues(t, utils.MaxLeadImages, tb.images.Load())
	})

	t.Run("oversized within cap", func(t *testing.T) {
		tb := &treeBackend{addRequestStatus: http.StatusCreated}
		h := newTestRouter(t, tb)

		rec := postFiles(t, h, []filePart{{field: dtos.PartImages, filename: "big.png", contentType: "image/png", data: hugePNG}})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, utils.ErrCodeInvalidPayload, decodeError(t, rec).Code)
		assert.Zero(t, tb.addRequestCalls.Load())
	})
}

func TestSubmitRequestValidation(t *testing.T) {
	tb := &treeBackend{addRequestStatus: http.StatusCreated}
	h := newTestRouter(t, tb)

	fields := validFields()
	delete(fields, "Service_details.Tree_Removal")
	rec := postForm(t, h, fields, 0, "tab-1")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, utils.ErrCodeValidation, e.Code)
	assert.Equal(t, "Please select at least one service type.", e.Message)
	assert.Zero(t, tb.addRequestCalls.Load(), "no backend call on validation failure")
}

func TestSubmitRequestUnknownField(t *testing.T) {
	h := newTestRouter(t, &treeBackend{addRequestStatus: http.StatusCreated})
	fields := validFields()
	fields["Contact_Details.Fax"] = "123"

	rec := postForm(t, h, fields, 0, "tab-1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, utils.ErrCodeInvalidPayload, decodeError(t, rec).Code)
}

func TestSubmitRequestBackendErrors(t *testing.T) {
	cases := []struct {
		backendStatus int
		wantStatus    int
		wantCode      string
		wantMessage   string
	}{
		{http.StatusBadRequest, http.StatusBadRequest, utils.ErrCodeSubmissionRejected, "Invalid zip code"},
		{http.StatusInternalServerError, http.StatusBadGateway, utils.ErrCodeExternalServiceFailure, backend.MsgServerError},
		{http.StatusTeapot, http.StatusBadGateway, utils.ErrCodeExternalServiceFailure, "Invalid zip code"},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.backendStatus), func(t *testing.T) {
			tb := &treeBackend{addRequestStatus: tc.backendStatus}
			h := newTestRouter(t, tb)

			rec := postForm(t, h, validFields(), 0, "tab-1")
			require.Equal(t, tc.wantStatus, rec.Code)
			e := decodeError(t, rec)
			assert.Equal(t, tc.wantCode, e.Code)
			assert.Equal(t, tc.wantMessage, e.Message)
			assert.EqualValues(t, 1, tb.addRequestCalls.Load())
		})
	}
}

func TestSubmitRequestBackendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := &config.Config{AdminJWTSecret: adminSecret, BackendURL: url}
	a := app.New(cfg, repositories.NewMemoryItemStore(), backend.NewClient(url, nil, time.Second))
	h := NewRouter(a, middleware.NewRateLimiter(600, 100))

	rec := postForm(t, h, validFields(), 0, "tab-1")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, utils.ErrCodeBackendUnavailable, e.Code)
	assert.Equal(t, backend.MsgUnreachable, e.Message)
}

func TestEstimateEndpoints(t *testing.T) {
	h := newTestRouter(t, &treeBackend{})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := post(`{"fullName":"","email":"nope","phone":"","serviceRequested":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var e struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, utils.ErrCodeValidation, e.Code)
	assert.Equal(t, map[string]string{
		"fullName":         "Full name is required",
		"email":            "Email is invalid",
		"phone":            "Phone is required",
		"serviceRequested": "Service is required",
	}, e.Details)

	rec = post(`{"fullName":"Bob","email":"bob@example.com","phone":"8124573433","serviceRequested":"LAND CLEARING"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	// Listing is admin only.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := middleware.IssueAdminToken(adminSecret, "owner", time.Hour, time.Now())
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var list dtos.ListEstimatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Estimates, 1)
	assert.Equal(t, "Bob", list.Estimates[0].CustomerName)
}

func TestTestimonialEndpoints(t *testing.T) {
	tb := &treeBackend{}
	h := newTestRouter(t, tb)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/testimonials", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list dtos.ListTestimonialsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Testimonials, 1)
	assert.Equal(t, 5, list.Testimonials[0].Rating)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/testimonials/t1", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, tb.deleted)

	tok, err := middleware.IssueAdminToken(adminSecret, "owner", time.Hour, time.Now())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/testimonials/t1", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"t1"}, tb.deleted)
}

func TestChatEndpoint(t *testing.T) {
	chat := func(h http.Handler, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := chat(newTestRouter(t, &treeBackend{}), `{"message":"Palms?","conversationHistory":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp dtos.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "We trim palms year round.", resp.Response)
	assert.False(t, resp.Fallback)

	rec = chat(newTestRouter(t, &treeBackend{chatStatus: http.StatusInternalServerError}), `{"message":"Palms?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Fallback)
	assert.Contains(t, resp.Response, utils.OrganizationPhone)

	rec = chat(newTestRouter(t, &treeBackend{chatBody: `{"response":""}`}), `{"message":"Palms?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Fallback)
	assert.Equal(t, "Thank you for your message. How else can I help you?", resp.Response)

	rec = chat(newTestRouter(t, &treeBackend{}), `{"message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatGreeting(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, &treeBackend{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/chat/greeting", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var greeting dtos.ChatGreetingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &greeting))
	assert.Equal(t, "Hi this is Abdias from American Tree Experts\nHow may I assist you today.", greeting.Message.Content)
}

func TestFormOptions(t *testing.T) {
	h := newTestRouter(t, &treeBackend{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/requests/options", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var opts dtos.FormOptionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, "Tree_Removal", opts.Services[0])
	assert.Len(t, opts.Services, 6)
	assert.Contains(t, opts.PropertyTypes, "Residential")
	assert.Equal(t, []string{"Small", "Medium", "Large"}, opts.JobSizes)
	assert.Len(t, opts.EstimateServices, 6)
	assert.Equal(t, 4, opts.MaxImages)
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, &treeBackend{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"OK"`)
}
