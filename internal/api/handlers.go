package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/soulful-academy/chakra-report/internal/content"
	reporterrors "github.com/soulful-academy/chakra-report/internal/errors"
	"github.com/soulful-academy/chakra-report/internal/logging"
	"github.com/soulful-academy/chakra-report/internal/models"
	"github.com/soulful-academy/chakra-report/internal/reports"
	"github.com/soulful-academy/chakra-report/pkg/reporting"
)

const maxRequestBytes = 1 << 20

type emailReportRequest struct {
	Record  *models.Record    `json:"record"`
	Variant reporting.Variant `json:"variant"`
	reports.EmailRequest
}

type emailReportResponse struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Emailed  bool     `json:"emailed"`
	Warnings []string `json:"warnings"`
}

type contentResponse struct {
	Chakra      models.Chakra `json:"chakra"`
	Status      models.Status `json:"status"`
	Explanation string        `json:"explanation"`
	Guidance    string        `json:"guidance"`
	content.Fields
}

type statusChangeRequest struct {
	Chakra    models.Chakra  `json:"chakra"`
	NewStatus models.Status  `json:"new_status"`
	OldStatus models.Status  `json:"old_status"`
	Current   content.Fields `json:"current"`
}

type optionsResponse struct {
	Chakras    []models.Chakra     `json:"chakras"`
	Statuses   []models.Status     `json:"statuses"`
	AuraColors []models.AuraColor  `json:"aura_colors"`
	AuraSizes  []models.AuraSize   `json:"aura_sizes"`
	Genders    []models.Gender     `json:"genders"`
	Variants   []reporting.Variant `json:"variants"`
}

// HandleHealthz returns 200 "ok" unconditionally (liveness probe).
func HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HandleVersion reports the build version.
func HandleVersion(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": version})
	}
}

// HandleCreateReport renders the posted record and returns the PDF as a download.
func HandleCreateReport(svc *reports.Service, defaultVariant reporting.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		variant, err := variantFromQuery(r, defaultVariant)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		var rec models.Record
		if err := decodeJSON(w, r, &rec); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := svc.Create(r.Context(), &rec, variant)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
		w.Header().Set("X-Report-ID", result.ID)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.PDF)
	}
}

// HandleEmailReport renders the posted record and emails it. Delivery
// problems come back as warnings with a 200.
func HandleEmailReport(svc *reports.Service, defaultVariant reporting.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req emailReportRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Record == nil {
			writeJSONError(w, http.StatusBadRequest, "record is required")
			return
		}
		if err := req.EmailRequest.Validate(); err != nil {
			writeServiceError(w, r, err)
			return
		}
		variant := defaultVariant
		if req.Variant != "" {
			v, err := reporting.ParseVariant(string(req.Variant))
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
			variant = v
		}

		result, err := svc.Create(r.Context(), req.Record, variant)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		warnings, err := svc.Email(r.Context(), result, req.EmailRequest)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if warnings == nil {
			warnings = []string{}
		}

		writeJSON(w, http.StatusOK, emailReportResponse{
			ID:       result.ID,
			Filename: result.Filename,
			Emailed:  len(warnings) == 0,
			Warnings: warnings,
		})
	}
}

// HandleContent returns the canned text for a chakra and status, used to
// pre-fill the form.
func HandleContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	chakra := models.Chakra(strings.TrimSpace(r.URL.Query().Get("chakra")))
	status := models.Status(strings.TrimSpace(r.URL.Query().Get("status")))
	if !chakra.Valid() {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown chakra %q", chakra))
		return
	}
	if status == "" {
		status = models.StatusBalanced
	}
	if !status.Valid() {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", status))
		return
	}

	writeJSON(w, http.StatusOK, contentResponse{
		Chakra:      chakra,
		Status:      status,
		Explanation: content.Explanation(chakra),
		Guidance:    content.StatusGuidance(status),
		Fields:      content.Resolve(chakra, status),
	})
}

// HandleStatusChange applies the form's pre-fill rule when a status dropdown
// changes: fields still holding the old template text are replaced.
func HandleStatusChange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req statusChangeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Chakra.Valid() {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown chakra %q", req.Chakra))
		return
	}
	if !req.NewStatus.Valid() {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", req.NewStatus))
		return
	}

	writeJSON(w, http.StatusOK, content.OnStatusChange(req.Chakra, req.NewStatus, req.OldStatus, req.Current))
}

// HandleOptions lists the closed enumerations a form needs.
func HandleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, optionsResponse{
		Chakras:    models.Chakras,
		Statuses:   models.Statuses,
		AuraColors: models.AuraColors,
		AuraSizes:  models.AuraSizes,
		Genders:    models.Genders,
		Variants:   reporting.Variants,
	})
}

func variantFromQuery(r *http.Request, fallback reporting.Variant) (reporting.Variant, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("variant"))
	if raw == "" {
		if fallback == "" {
			return reporting.VariantFull, nil
		}
		return fallback, nil
	}
	return reporting.ParseVariant(raw)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// writeServiceError maps service errors to status codes. Validation errors
// carry the user-visible message; collaborator failures are a 502 and
// everything else a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if reporterrors.IsValidationError(err) {
		writeJSONError(w, http.StatusBadRequest, userMessage(err))
		return
	}

	status := http.StatusInternalServerError
	if reporterrors.IsExternalError(err) {
		status = http.StatusBadGateway
	}
	logger := logging.FromContext(r.Context())
	logger.Error().
		Err(err).
		Str("path", r.URL.Path).
		Str("error_type", string(reporterrors.TypeOf(err))).
		Int("status", status).
		Msg("Report request failed")
	writeJSONError(w, status, userMessage(err))
}

func userMessage(err error) string {
	var repErr *reporterrors.ReportError
	if errors.As(err, &repErr) && repErr.Err != nil {
		return repErr.Err.Error()
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
