package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/verification"
	"github.com/seasonwork/seasonwork-backend-go/internal/handler/http/response"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/validator"
)

type VerificationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	ListDocuments(w http.ResponseWriter, r *http.Request)
	GetDocument(w http.ResponseWriter, r *http.Request)
	DownloadDocument(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
}

type VerificationHandlerImpl struct {
	verificationService verification.Service
	maxUploadBytes      int64
}

func NewVerificationHandler(verificationService verification.Service, maxUploadBytes int64) VerificationHandler {
	return &VerificationHandlerImpl{
		verificationService: verificationService,
		maxUploadBytes:      maxUploadBytes,
	}
}

// Submit implements VerificationHandler. Expects a multipart form with a
// "document" file part and a "waiver_acknowledged" field.
func (h *VerificationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Some slack over the document ceiling for the other form fields.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+(64<<10))
	if err := r.ParseMultipartForm(4 << 20); err != nil {
		slog.Error("Submit multipart parse error", "error", err)
		response.ContentTooLarge(w, "Upload exceeds the size limit")
		return
	}

	waiver, ok := validator.ParseBool(r.FormValue("waiver_acknowledged"))
	if !ok {
		waiver = false
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		response.HandleError(w, verification.ErrFileRequired)
		return
	}
	defer file.Close()

	upload := verification.Upload{
		File:               file,
		FileName:           header.Filename,
		FileType:           header.Header.Get("Content-Type"),
		Size:               header.Size,
		WaiverAcknowledged: waiver,
	}

	doc, err := h.verificationService.Submit(r.Context(), principal, upload)
	if err != nil {
		slog.Error("Submit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document submitted for review", doc)
}

// Status implements VerificationHandler.
func (h *VerificationHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := h.verificationService.Status(r.Context(), principal)
	if err != nil {
		slog.Error("Status service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// ListDocuments implements VerificationHandler.
func (h *VerificationHandlerImpl) ListDocuments(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	docs, err := h.verificationService.ListDocuments(r.Context(), principal)
	if err != nil {
		slog.Error("ListDocuments service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, docs)
}

// GetDocument implements VerificationHandler.
func (h *VerificationHandlerImpl) GetDocument(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	documentID := chi.URLParam(r, "documentID")

	doc, err := h.verificationService.GetDocument(r.Context(), principal, documentID)
	if err != nil {
		slog.Error("GetDocument service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, doc)
}

// DownloadDocument implements VerificationHandler. Streams the stored
// file bytes rather than the JSON envelope.
func (h *VerificationHandlerImpl) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	documentID := chi.URLParam(r, "documentID")

	file, err := h.verificationService.OpenDocument(r.Context(), principal, documentID)
	if err != nil {
		slog.Error("DownloadDocument service error", "error", err)
		response.HandleError(w, err)
		return
	}
	defer file.Content.Close()

	w.Header().Set("Content-Type", file.FileType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	if _, err := io.Copy(w, file.Content); err != nil {
		slog.Error("DownloadDocument stream error", "document_id", documentID, "error", err)
	}
}

// ListPending implements VerificationHandler.
func (h *VerificationHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	docs, err := h.verificationService.ListPending(r.Context(), principal)
	if err != nil {
		slog.Error("ListPending service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, docs)
}

type resolveRequest struct {
	Decision string  `json:"decision"`
	Note     *string `json:"note"`
}

// Resolve implements VerificationHandler.
func (h *VerificationHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Resolve decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	documentID := chi.URLParam(r, "documentID")

	resolved, err := h.verificationService.Resolve(r.Context(), principal, documentID, req.Decision, req.Note)
	if err != nil {
		slog.Error("Resolve service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document resolved", resolved)
}
