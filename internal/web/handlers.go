package web

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/FocuswithJustin/Tehillim119/core/errors"
	"github.com/FocuswithJustin/Tehillim119/core/psalm"
	"github.com/FocuswithJustin/Tehillim119/core/resolve"
	"github.com/FocuswithJustin/Tehillim119/internal/batch"
	"github.com/FocuswithJustin/Tehillim119/internal/logging"
	"github.com/FocuswithJustin/Tehillim119/internal/names"
	"github.com/FocuswithJustin/Tehillim119/internal/render"
)

const (
	// MaxFormMemory is the maximum memory for form parsing (32 MB).
	MaxFormMemory = 32 << 20

	// DefaultFormat is used when the form does not name one.
	DefaultFormat = "docx"
)

// indexData feeds the index.html template.
type indexData struct {
	Title   string
	Formats []string
	Error   string
}

// reportData feeds the report.html template.
type reportData struct {
	Title     string
	Total     int
	Succeeded int
	Failed    int
	Failures  []reportFailure
}

type reportFailure struct {
	Name   string
	Reason string
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	renderIndex(w, http.StatusOK, "")
}

func renderIndex(w http.ResponseWriter, status int, errMsg string) {
	w.WriteHeader(status)
	data := indexData{
		Title:   "Tehillim 119",
		Formats: render.Formats(),
		Error:   errMsg,
	}
	if err := Templates.ExecuteTemplate(w, "index.html", data); err != nil {
		logging.Error("template rendering failed",
			"template", "index.html",
			"error", err)
	}
}

func handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.FormValue("name")
	format := r.FormValue("format")
	if format == "" {
		format = DefaultFormat
	}

	renderer, err := newRenderer(format)
	if err != nil {
		renderIndex(w, http.StatusBadRequest, err.Error())
		return
	}

	resolved, err := resolve.Resolve(name, sharedPsalm)
	if err != nil {
		if errors.Is(err, errors.ErrNoHebrewLetters) {
			renderIndex(w, http.StatusBadRequest, err.Error())
			return
		}
		httpError(w, err, http.StatusInternalServerError)
		return
	}

	data, err := renderer.Render(render.Document{
		Name:     resolved.Name,
		Sections: resolved.Sections,
	})
	if err != nil {
		httpError(w, err, http.StatusInternalServerError)
		return
	}

	setDownloadHeaders(w, batch.Filename(resolved.Name, renderer.Ext()), renderer.MIME())
	w.Write(data)
}

func handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(MaxFormMemory); err != nil {
		renderIndex(w, http.StatusBadRequest, "Upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("spreadsheet")
	if err != nil {
		renderIndex(w, http.StatusBadRequest, "Missing spreadsheet upload")
		return
	}
	defer file.Close()

	nameList, err := names.Read(file, header.Filename)
	if err != nil {
		renderIndex(w, http.StatusBadRequest, err.Error())
		return
	}

	format := r.FormValue("format")
	if format == "" {
		format = DefaultFormat
	}
	renderer, err := newRenderer(format)
	if err != nil {
		renderIndex(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := batch.Run(r.Context(), nameList, sharedPsalm, renderer, batch.Options{
		Workers: ServerConfig.Workers,
	})
	if err != nil {
		httpError(w, err, http.StatusInternalServerError)
		return
	}

	if r.FormValue("mode") == "report" || report.Succeeded() == 0 {
		status := http.StatusOK
		if report.Succeeded() == 0 {
			status = http.StatusUnprocessableEntity
		}
		renderReport(w, status, report)
		return
	}

	files := report.Files
	if report.Failed() > 0 {
		files = append(files, failureReportFile(report))
	}

	var buf bytes.Buffer
	if err := batch.WriteZip(&buf, files); err != nil {
		httpError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("X-Batch-Succeeded", strconv.Itoa(report.Succeeded()))
	w.Header().Set("X-Batch-Failed", strconv.Itoa(report.Failed()))
	setDownloadHeaders(w, "Tehillim119.zip", "application/zip")
	w.Write(buf.Bytes())
}

func renderReport(w http.ResponseWriter, status int, report batch.Report) {
	w.WriteHeader(status)
	data := reportData{
		Title:     "Batch report",
		Total:     report.Total(),
		Succeeded: report.Succeeded(),
		Failed:    report.Failed(),
	}
	for _, f := range report.Failures {
		data.Failures = append(data.Failures, reportFailure{Name: f.Name, Reason: f.Err.Error()})
	}
	if err := Templates.ExecuteTemplate(w, "report.html", data); err != nil {
		logging.Error("template rendering failed",
			"template", "report.html",
			"error", err)
	}
}

// failureReportFile summarizes per-name failures as a plain-text archive
// entry so a download-only client still sees what was skipped.
func failureReportFile(report batch.Report) batch.File {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d of %d names processed\n\n", report.Succeeded(), report.Total())
	for _, f := range report.Failures {
		fmt.Fprintf(&buf, "%s: %v\n", f.Name, f.Err)
	}
	return batch.File{Filename: "report.txt", Data: buf.Bytes()}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"verses": psalm.VerseCount,
	})
}

func handleStatic(w http.ResponseWriter, r *http.Request) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	name := path.Clean(r.URL.Path[len("/static/"):])
	http.ServeFileFS(w, r, sub, name)
}

// newRenderer constructs the renderer for a form-supplied format using the
// active server configuration.
func newRenderer(format string) (render.Renderer, error) {
	return render.New(format, render.Options{FontPath: ServerConfig.FontPath})
}

// setDownloadHeaders marks the response as an attachment. The UTF-8 form
// carries Hebrew filenames; the plain form is an ASCII fallback.
func setDownloadHeaders(w http.ResponseWriter, filename, mimeType string) {
	w.Header().Set("Content-Type", mimeType)
	fallback := "Tehillim119" + path.Ext(filename)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", fallback, url.PathEscape(filename)))
}

// httpError logs the detailed error server-side and returns a generic
// message with a short reference ID.
func httpError(w http.ResponseWriter, err error, statusCode int) {
	errID := generateErrorID()

	logging.Error("http_error",
		"error_id", errID,
		"status_code", statusCode,
		"error", err)

	http.Error(w, fmt.Sprintf("Internal server error (ref: %s)", errID), statusCode)
}

// generateErrorID creates a short random ID for error correlation.
func generateErrorID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b)
}
