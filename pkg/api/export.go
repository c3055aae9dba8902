package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/Morisan51/chonaikai-kaikei/pkg/book"
	"github.com/Morisan51/chonaikai-kaikei/pkg/report"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ExportHandler serves CSV downloads.
type ExportHandler struct {
	book *book.Book
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(b *book.Book) *ExportHandler {
	return &ExportHandler{book: b}
}

// Export handles GET /api/1/export?month=YYYY-MM|all&label=...
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = report.AllMonths
	}
	if month != report.AllMonths && !monthPattern.MatchString(month) {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "month must be YYYY-MM or all")
		return
	}

	doc, err := h.book.Export(r.Context(), month, r.URL.Query().Get("label"))
	if errors.Is(err, report.ErrEmptyInput) {
		writeJSONError(w, http.StatusNotFound, "no_data", report.ErrEmptyInput.Error())
		return
	}
	if err != nil {
		writeStoreUnavailable(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", contentDisposition(doc.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Content)
}

// contentDisposition builds an attachment header with an ASCII fallback and
// the UTF-8 file name (RFC 5987).
func contentDisposition(fileName string) string {
	return fmt.Sprintf(`attachment; filename="export.csv"; filename*=UTF-8''%s`, url.PathEscape(fileName))
}
