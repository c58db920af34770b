package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/dtos"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/form"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/services"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

const (
	maxImageBytes     = 10 << 20
	maxRequestBytes   = 2*utils.MaxLeadImages*maxImageBytes + 1<<20
	multipartMemBytes = 32 << 20
)

type RequestController struct {
	svc services.LeadService
}

func NewRequestController(s services.LeadService) *RequestController {
	return &RequestController{svc: s}
}

// -----------------------------------------------------------------------------
// POST /api/v1/requests
// -----------------------------------------------------------------------------
func (c *RequestController) SubmitRequestHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(multipartMemBytes); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart form", nil, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	container, err := decodeForm(r.MultipartForm)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}

	scope := utils.ClientScope(r.Context())
	res, err := c.svc.Submit(r.Context(), scope, container)
	if err != nil {
		var vErr *form.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, vErr.Message, map[string]string{"field": vErr.Field})
		case errors.Is(err, utils.ErrSubmissionInFlight):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "A submission is already in progress", nil)
		default:
			respondServiceError(w, r, err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.SubmitRequestResponse{
		Record:         res.Record,
		RecentRequests: res.RecentRequests,
	})
}

// -----------------------------------------------------------------------------
// GET /api/v1/requests/recent
// -----------------------------------------------------------------------------
func (c *RequestController) RecentRequestsHandler(w http.ResponseWriter, r *http.Request) {
	recent, err := c.svc.Recent(r.Context(), utils.ClientScope(r.Context()))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.RecentRequestsResponse{RecentRequests: recent})
}

// -----------------------------------------------------------------------------
// GET /api/v1/requests/options
// -----------------------------------------------------------------------------
func (c *RequestController) FormOptionsHandler(w http.ResponseWriter, _ *http.Request) {
	svcNames := make([]string, len(form.ServiceFlags))
	for i, f := range form.ServiceFlags {
		svcNames[i] = f.String()
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.FormOptionsResponse{
		PropertyTypes:    form.PropertyTypes,
		Services:         svcNames,
		JobSizes:         form.JobSizes,
		EstimateServices: models.EstimateServices,
		MaxImages:        utils.MaxLeadImages,
	})
}

// decodeForm applies every text part as a dotted field update and every file
// part through the picker or drop rules. Files past the image cap are ignored
// before any size check, as are dropped files that are not images.
func decodeForm(mf *multipart.Form) (*form.Container, error) {
	c := form.New()
	for name, values := range mf.Value {
		for _, v := range values {
			if err := c.ApplyField(name, v); err != nil {
				return nil, err
			}
		}
	}

	for name := range mf.File {
		if name != dtos.PartImages && name != dtos.PartDroppedImages {
			return nil, fmt.Errorf("%w: file part %q", form.ErrUnknownField, name)
		}
	}

	picked := mf.File[dtos.PartImages]
	if room := roomFor(c); len(picked) > room {
		picked = picked[:room]
	}
	files := make([]form.Attachment, 0, len(picked))
	for _, fh := range picked {
		if err := checkImageSize(fh); err != nil {
			return nil, err
		}
		a, err := readAttachment(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, a)
	}
	c.AddFiles(files)

	dropped, err := readDropped(mf.File[dtos.PartDroppedImages], roomFor(c))
	if err != nil {
		return nil, err
	}
	c.DropFiles(dropped)
	return c, nil
}

// readDropped keeps the first room image parts; the rest are never size checked.
func readDropped(headers []*multipart.FileHeader, room int) ([]form.Attachment, error) {
	out := make([]form.Attachment, 0, room)
	for _, fh := range headers {
		if len(out) >= room {
			break
		}
		a, err := readAttachment(fh)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(form.DetectContentType(a), "image/") {
			continue
		}
		if err := checkImageSize(fh); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func roomFor(c *form.Container) int {
	if room := utils.MaxLeadImages - len(c.State().Images); room > 0 {
		return room
	}
	return 0
}

func checkImageSize(fh *multipart.FileHeader) error {
	if fh.Size > maxImageBytes {
		return fmt.Errorf("image %q exceeds %d MB", fh.Filename, maxImageBytes>>20)
	}
	return nil
}

func readAttachment(fh *multipart.FileHeader) (form.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return form.Attachment{}, fmt.Errorf("open image %q: %w", fh.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return form.Attachment{}, fmt.Errorf("read image %q: %w", fh.Filename, err)
	}
	return form.Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
