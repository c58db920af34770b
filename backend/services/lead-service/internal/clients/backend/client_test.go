package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/form"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
)

var gifBytes = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func sampleState(t *testing.T, images int) form.State {
	t.Helper()
	c := form.New()
	require.NoError(t, c.ApplyField("Contact_Details.First_name", "Jane"))
	require.NoError(t, c.ApplyField("Contact_Details.Last_name", "Doe"))
	require.NoError(t, c.ApplyField("Service_details.Palm_Trimming", "on"))
	for i := 0; i < images; i++ {
		c.AddFiles([]form.Attachment{{Filename: "tree.gif", ContentType: "image/gif", Data: gifBytes}})
	}
	return c.State()
}

func TestSubmitRequestSendsMultipart(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathAddRequest, r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))

		var contact map[string]string
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("Contact_Details")), &contact))
		assert.Equal(t, "Jane", contact["First_name"])
		assert.NotEmpty(t, r.FormValue("Address"))
		assert.Contains(t, r.FormValue("Service_details"), `"Palm_Trimming":true`)
		assert.NotEmpty(t, r.FormValue("Availability"))
		assert.Equal(t, "Pending", r.FormValue("Status"))

		files := r.MultipartForm.File["Images"]
		require.Len(t, files, 2)
		assert.Equal(t, "tree.gif", files[0].Filename)
		assert.Equal(t, "image/gif", files[0].Header.Get("Content-Type"))
		f, err := files[0].Open()
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		assert.Equal(t, gifBytes, data)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"created"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", nil, 5*time.Second)
	require.NoError(t, c.SubmitRequest(context.Background(), sampleState(t, 2)))
	assert.Equal(t, 1, calls)
}

func TestSubmitRequestErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantKind SubmissionErrorKind
		wantMsg  string
	}{
		{"400 with message", http.StatusBadRequest, `{"message":"Phone already used"}`, KindRejected, "Phone already used"},
		{"400 without message", http.StatusBadRequest, ``, KindRejected, MsgRejected},
		{"500 ignores body", http.StatusInternalServerError, `{"message":"db down"}`, KindServerError, MsgServerError},
		{"200 is not success", http.StatusOK, `{"message":"ok?"}`, KindFailed, "ok?"},
		{"403 without json", http.StatusForbidden, `<html>nope</html>`, KindFailed, MsgFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL, nil, 5*time.Second).SubmitRequest(context.Background(), sampleState(t, 0))
			var sErr *SubmissionError
			require.ErrorAs(t, err, &sErr)
			assert.Equal(t, tc.wantKind, sErr.Kind)
			assert.Equal(t, tc.wantMsg, sErr.Message)
			assert.Equal(t, tc.status, sErr.StatusCode)
			assert.Equal(t, 1, calls, "no retry expected")
		})
	}
}

func TestSubmitRequestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(url, nil, time.Second).SubmitRequest(context.Background(), sampleState(t, 0))
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))

	var sErr *SubmissionError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, MsgUnreachable, sErr.Message)
}

func TestTestimonialsAndEstimates(t *testing.T) {
	var deleted string
	mux := http.NewServeMux()
	mux.HandleFunc(PathGetTestimonials, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"t1","name":"Ann","content":"Great crew","rating":5,"date":"2025-04-01T00:00:00Z"}]`))
	})
	mux.HandleFunc(PathDeleteTestimonial, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		deleted = r.URL.Path[len(PathDeleteTestimonial):]
		_, _ = w.Write([]byte(`{"message":"deleted"}`))
	})
	mux.HandleFunc(PathGetEstimates, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"e1","customerName":"Bob","service":"LAND CLEARING"},{"_id":"e2","customerName":"Cy"}]`))
	})
	mux.HandleFunc(PathSubmitEstimate, func(w http.ResponseWriter, r *http.Request) {
		var req models.EstimateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.FullName == "fail" {
			_, _ = w.Write([]byte(`{"success":false}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, nil, 5*time.Second)
	ctx := context.Background()

	ts, err := c.ListTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, "t1", ts[0].ID)
	assert.Equal(t, 5, ts[0].Rating)

	require.NoError(t, c.DeleteTestimonial(ctx, "t1"))
	assert.Equal(t, "t1", deleted)

	es, err := c.ListEstimates(ctx)
	require.NoError(t, err)
	require.Len(t, es, 2)
	assert.Equal(t, "LAND CLEARING", es[0].Service)
	assert.Empty(t, es[1].Email)

	require.NoError(t, c.SubmitEstimate(ctx, models.EstimateRequest{FullName: "Jane"}))
	err = c.SubmitEstimate(ctx, models.EstimateRequest{FullName: "fail"})
	var sErr *SubmissionError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, KindFailed, sErr.Kind)
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		switch req.Message {
		case "legacy":
			_, _ = w.Write([]byte(`{"message":"from message field"}`))
		case "broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			assert.Len(t, req.ConversationHistory, 1)
			_, _ = w.Write([]byte(`{"response":"We can trim palms on Tuesday."}`))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, 5*time.Second)
	history := []models.ChatMessage{{Role: models.ChatRoleAssistant, Content: "Hi"}}

	reply, err := c.Chat(context.Background(), "palms?", history)
	require.NoError(t, err)
	assert.Equal(t, "We can trim palms on Tuesday.", reply)

	reply, err = c.Chat(context.Background(), "legacy", nil)
	require.NoError(t, err)
	assert.Equal(t, "from message field", reply)

	_, err = c.Chat(context.Background(), "broken", nil)
	require.Error(t, err)
}
