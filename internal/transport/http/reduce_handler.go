package http

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "tunnelcli/internal/errors"
	"tunnelcli/internal/exporter"
	"tunnelcli/internal/middleware"
	"tunnelcli/internal/reduction"
	api "tunnelcli/pkg/contracts/api/v1"
)

// DefaultUploadName names measurements posted without a file name
const DefaultUploadName = "upload.dat"

// multipartMemory is the part of a multipart upload kept in memory
const multipartMemory = 1 << 20

// ReduceHandler serves the reduction and geometry endpoints
type ReduceHandler struct {
	service      ReductionServiceInterface
	validator    *middleware.QueryValidator
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewReduceHandler creates a reduction handler
func NewReduceHandler(service ReductionServiceInterface, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *ReduceHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReduceHandler{
		service:      service,
		validator:    middleware.NewQueryValidator(),
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("handler", "reduce")),
	}
}

// Routes returns the reduction routes, mounted under /api/v1
func (h *ReduceHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/reduce", h.Reduce)
	r.Get("/geometry", h.Geometry)
	return r
}

// Reduce handles POST /api/v1/reduce.
//
// The body is either the raw measurement file or a multipart form with the
// file under "file". Query parameters override the run constants for this
// request only. The response is JSON unless format=csv is given or text/csv
// is accepted, in which case the Cp distribution is returned as CSV.
func (h *ReduceHandler) Reduce(w http.ResponseWriter, r *http.Request) {
	var params api.ReduceParams
	if err := h.validator.Decode(r, &params); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	body, source, err := h.measurementBody(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	defer body.Close()

	res, chord, err := h.service.ReduceRequest(r.Context(), params, body, source)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "measurement reduced",
		slog.String("source", res.Source),
		slog.Float64("aoa", res.AoA),
		slog.Float64("cl", res.Lift))

	if wantsCSV(r) {
		data, err := exporter.EncodeDistribution(res, chord)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
			map[string]string{"filename": exporter.DistributionFileName(res.Source)}))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	render.JSON(w, r, newReduceResponse(middleware.GetRequestID(r.Context()), res, chord))
}

// Geometry handles GET /api/v1/geometry
func (h *ReduceHandler) Geometry(w http.ResponseWriter, r *http.Request) {
	var params api.GeometryParams
	if err := h.validator.Decode(r, &params); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Geometry(r.Context(), params.Chord, params.Span)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	render.JSON(w, r, api.GeometryResponse{
		Chord:        report.Chord,
		Span:         report.Span,
		Strategy:     report.Strategy,
		Areas:        report.Areas,
		RelativeDiff: report.RelativeDiff,
		Blockage:     report.Blockage,
	})
}

// measurementBody returns the uploaded measurement and its source name
func (h *ReduceHandler) measurementBody(r *http.Request) (io.ReadCloser, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if r.Body == nil || r.Body == http.NoBody {
			return nil, "", apierrors.ErrValidation("body", "measurement file is required")
		}
		return r.Body, uploadName(r.URL.Query().Get("name")), nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, "", invalidUpload(err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", apierrors.ErrValidation("file", "multipart field \"file\" is required")
		}
		return nil, "", invalidUpload(err)
	}
	name := header.Filename
	if name == "" {
		name = r.URL.Query().Get("name")
	}
	return file, uploadName(name), nil
}

// handleError maps oversized bodies to 413 before the generic mapping
func (h *ReduceHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if isTooLarge(err) {
		h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
		return
	}
	h.errorHandler.HandleError(w, r, err)
}

// invalidUpload reports a malformed multipart body as a client error,
// leaving oversized bodies for handleError
func invalidUpload(err error) error {
	if isTooLarge(err) {
		return err
	}
	return apierrors.InvalidRequestWithError(err)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

func uploadName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "" || name == "." || name == "/" {
		return DefaultUploadName
	}
	return name
}

func wantsCSV(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "csv") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/csv")
}

func newReduceResponse(requestID string, res *reduction.Result, chord float64) api.ReduceResponse {
	return api.ReduceResponse{
		RequestID: requestID,
		Summary:   res.Summary(),
		Report:    exporter.FormatReport(res),
		XOverC:    res.XOverC,
		Cp:        res.Cp,
		Upper:     surfacePoints(res.Partition.Upper, chord),
		Lower:     surfacePoints(res.Partition.Lower, chord),
	}
}

func surfacePoints(s reduction.Surface, chord float64) []api.SurfacePoint {
	points := make([]api.SurfacePoint, len(s))
	for i, pt := range s {
		points[i] = api.SurfacePoint{XOverC: pt.X / chord, Cp: pt.Cp}
	}
	return points
}
