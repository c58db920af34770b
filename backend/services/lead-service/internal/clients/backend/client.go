package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/form"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

// Paths on the tree-services backend.
const (
	PathAddRequest        = "/api/request/add-request"
	PathGetTestimonials   = "/api/testimonials/get-testimonials"
	PathDeleteTestimonial = "/api/testimonials/delete-testimonial/"
	PathGetEstimates      = "/api/testimonials/get-estimates"
	PathSubmitEstimate    = "/api/testimonials/submit-estimate"
	PathChat              = "/api/chat"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client talks to the tree-services REST backend.
type Client interface {
	// SubmitRequest sends one contact-form submission. It never retries.
	SubmitRequest(ctx context.Context, state form.State) error
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id string) error
	ListEstimates(ctx context.Context) ([]models.Estimate, error)
	SubmitEstimate(ctx context.Context, req models.EstimateRequest) error
	// Chat forwards a message with its recent history and returns the reply.
	Chat(ctx context.Context, message string, history []models.ChatMessage) (string, error)
	Ping(ctx context.Context) error
}

type clientImpl struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. A nil httpClient gets a default
// one with the given timeout.
func NewClient(baseURL string, httpClient *http.Client, timeout time.Duration) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &clientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ------------------------------------------------------------------
// Service requests
// ------------------------------------------------------------------

func (c *clientImpl) SubmitRequest(ctx context.Context, state form.State) error {
	payload, err := form.Encode(state)
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for _, f := range payload.Fields() {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("write field %s: %w", f[0], err)
		}
	}
	for _, img := range state.Images {
		if err := writeImagePart(mw, img); err != nil {
			return fmt.Errorf("write image %s: %w", img.Filename, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PathAddRequest, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SubmissionError{Kind: KindUnreachable, Message: MsgUnreachable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return classify(resp)
}

func writeImagePart(mw *multipart.Writer, img form.Attachment) error {
	ct := form.DetectContentType(img)
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="Images"; filename="%s"`, escapeQuotes(img.Filename)))
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(img.Data)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

// classify maps a non-success response onto a SubmissionError.
func classify(resp *http.Response) error {
	msg := readMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusBadRequest:
		if msg == "" {
			msg = MsgRejected
		}
		return &SubmissionError{Kind: KindRejected, StatusCode: resp.StatusCode, Message: msg}
	case http.StatusInternalServerError:
		return &SubmissionError{Kind: KindServerError, StatusCode: resp.StatusCode, Message: MsgServerError}
	default:
		if msg == "" {
			msg = MsgFailed
		}
		return &SubmissionError{Kind: KindFailed, StatusCode: resp.StatusCode, Message: msg}
	}
}

// readMessage extracts {"message": "..."} from a response body, or "".
func readMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Message)
}

// ------------------------------------------------------------------
// Testimonials & estimates
// ------------------------------------------------------------------

func (c *clientImpl) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	var out []models.Testimonial
	if err := c.doJSON(ctx, http.MethodGet, PathGetTestimonials, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clientImpl) DeleteTestimonial(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, PathDeleteTestimonial+url.PathEscape(id), nil, http.StatusOK, nil)
}

func (c *clientImpl) ListEstimates(ctx context.Context) ([]models.Estimate, error) {
	var out []models.Estimate
	if err := c.doJSON(ctx, http.MethodGet, PathGetEstimates, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clientImpl) SubmitEstimate(ctx context.Context, req models.EstimateRequest) error {
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, PathSubmitEstimate, req, 0, &resp); err != nil {
		return err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = MsgFailed
		}
		return &SubmissionError{Kind: KindFailed, StatusCode: http.StatusOK, Message: msg}
	}
	return nil
}

// ------------------------------------------------------------------
// Chat
// ------------------------------------------------------------------

type chatRequest struct {
	Message             string               `json:"message"`
	ConversationHistory []models.ChatMessage `json:"conversationHistory"`
}

func (c *clientImpl) Chat(ctx context.Context, message string, history []models.ChatMessage) (string, error) {
	if history == nil {
		history = []models.ChatMessage{}
	}
	var resp struct {
		Response string `json:"response"`
		Message  string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, PathChat, chatRequest{Message: message, ConversationHistory: history}, 0, &resp); err != nil {
		return "", err
	}
	if resp.Response != "" {
		return resp.Response, nil
	}
	return resp.Message, nil
}

func (c *clientImpl) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+PathGetTestimonials, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SubmissionError{Kind: KindUnreachable, Message: MsgUnreachable, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusInternalServerError {
		return &SubmissionError{Kind: KindServerError, StatusCode: resp.StatusCode, Message: MsgServerError}
	}
	return nil
}

// ------------------------------------------------------------------
// helpers
// ------------------------------------------------------------------

// doJSON sends an optional JSON body and decodes a JSON response into out.
// wantStatus 0 accepts any 2xx.
func (c *clientImpl) doJSON(ctx context.Context, method, path string, in any, wantStatus int, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error creating payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SubmissionError{Kind: KindUnreachable, Message: MsgUnreachable, Err: err}
	}
	defer resp.Body.Close()

	ok := resp.StatusCode == wantStatus
	if wantStatus == 0 {
		ok = resp.StatusCode >= 200 && resp.StatusCode < 300
	}
	if !ok {
		return classify(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		utils.Logger.WithError(err).Warnf("Unexpected response body from %s %s", method, path)
		return &SubmissionError{Kind: KindFailed, StatusCode: resp.StatusCode, Message: MsgFailed, Err: err}
	}
	return nil
}
