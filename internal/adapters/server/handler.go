package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"disk-errors/internal/config"
	"disk-errors/internal/domain"
)

// Handler HTTP-мост к справочнику: другой рантайм сверяет ошибки по identity, а не по тексту.
type Handler struct {
	catalog  domain.ErrorCatalog
	names    domain.NameValidator
	probe    domain.LocationProbe
	messages config.Messages
}

type classifyRequest struct {
	Identity *int   `json:"identity"`
	Context  string `json:"context"`
}

type nameResponse struct {
	Name string `json:"name"`
}

type locationResponse struct {
	Location domain.Location `json:"location"`
	Path     string          `json:"path"`
}

var (
	errMethodNotAllowed  = errors.New("method not allowed")
	errUnsupportedFormat = errors.New("unsupported format")
	errMalformedRequest  = errors.New("malformed request")
)

func NewHandler(
	catalog domain.ErrorCatalog,
	names domain.NameValidator,
	probe domain.LocationProbe,
	messages config.Messages,
) *Handler {
	return &Handler{
		catalog:  catalog,
		names:    names,
		probe:    probe,
		messages: messages,
	}
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.handleError(w, errMethodNotAllowed)
		return
	}

	format := r.URL.Query().Get(QueryParamFormat)
	infos := h.catalog.List()

	switch format {
	case "", domain.FormatJSON:
		h.writeJSON(w, http.StatusOK, infos)
	case domain.FormatYAML:
		h.writeYAML(w, http.StatusOK, infos)
	default:
		h.handleError(w, fmt.Errorf("format '%s': %w", format, errUnsupportedFormat))
		return
	}

	logrus.WithFields(logrus.Fields{
		"operation": OperationListCategories,
		"format":    format,
		"count":     len(infos),
	}).Debug(LogCategoriesListed)
}

func (h *Handler) Category(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.handleError(w, errMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	var (
		info domain.CategoryInfo
		err  error
	)

	switch {
	case query.Has(QueryParamIdentity):
		raw := query.Get(QueryParamIdentity)
		identity, convErr := strconv.Atoi(raw)
		if convErr != nil {
			h.handleError(w, fmt.Errorf("identity '%s': %w", raw, domain.ErrMalformedIdentity))
			return
		}
		info, err = h.catalog.Lookup(identity)
	case query.Has(QueryParamName):
		info, err = h.catalog.LookupName(query.Get(QueryParamName))
	default:
		err = fmt.Errorf("identity or name is required: %w", errMalformedRequest)
	}

	if err != nil {
		h.handleError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"operation": OperationLookupCategory,
		"identity":  info.Identity,
		"name":      info.Name,
	}).Debug(LogCategoryResolved)

	h.writeJSON(w, http.StatusOK, info)
}

func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.handleError(w, errMethodNotAllowed)
		return
	}

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		decodeErr := fmt.Errorf("failed to decode body: %w: %w", err, errMalformedRequest)
		// битое тело отдаём тем же отчётом, что и остальные ошибки диска
		if category, ok := h.catalog.Translate(decodeErr); ok {
			h.handleError(w, domain.Classify(category, RequestBodyContext).
				WithDescription("failed to decode request body").
				WithCause(err))
			return
		}
		h.handleError(w, decodeErr)
		return
	}
	if req.Identity == nil {
		h.handleError(w, fmt.Errorf("identity is required: %w", domain.ErrMalformedIdentity))
		return
	}

	classified, err := h.catalog.Classify(*req.Identity, req.Context)
	if err != nil {
		h.handleError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"operation": OperationClassify,
		"identity":  classified.Identity(),
		"context":   classified.Context,
	}).Info(LogErrorClassified)

	h.writeJSON(w, http.StatusOK, classified.Report())
}

func (h *Handler) ValidateName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.handleError(w, errMethodNotAllowed)
		return
	}

	name, err := h.names.ValidateFileName(r.FormValue(FormParamName))
	if err != nil {
		h.handleError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"operation": OperationValidateName,
		"name":      name,
	}).Debug(LogNameValidated)

	h.writeJSON(w, http.StatusOK, nameResponse{Name: name})
}

func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.handleError(w, errMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	location := domain.Location(query.Get(QueryParamLocation))
	group := query.Get(QueryParamGroup)
	relPath := query.Get(QueryParamPath)

	mustExist := false
	if raw := query.Get(QueryParamMustExist); raw != "" {
		parsed, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			h.handleError(w, fmt.Errorf("must_exist '%s': %w", raw, errMalformedRequest))
			return
		}
		mustExist = parsed
	}

	var (
		path string
		err  error
	)

	switch {
	case relPath == domain.PathEmpty:
		path, err = h.probe.Probe(location, group)
	case mustExist:
		path, err = h.probe.Locate(location, group, relPath)
	default:
		path, err = h.probe.Resolve(location, group, relPath)
	}

	if err != nil {
		h.handleError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"operation":  OperationProbeLocation,
		"location":   location,
		"path":       path,
		"must_exist": mustExist,
	}).Info(LogLocationProbed)

	h.writeJSON(w, http.StatusOK, locationResponse{Location: location, Path: path})
}

// statusForClass классы ошибок диска в HTTP-коды.
func statusForClass(class domain.ErrorClass) int {
	switch class {
	case domain.ClassExistence:
		return http.StatusNotFound
	case domain.ClassConversion:
		return http.StatusBadRequest
	case domain.ClassEnvironmentAccess:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	var diskErr *domain.Error
	if errors.As(err, &diskErr) {
		status := statusForClass(diskErr.Category.Class())
		logrus.Errorf("HTTP %d Error: %s. Details: %+v", status, diskErr.Category, err)
		h.writeJSON(w, status, diskErr.Report())
		return
	}

	var httpStatus int
	var clientMessage string

	switch {
	case errors.Is(err, errMethodNotAllowed):
		httpStatus = http.StatusMethodNotAllowed
		clientMessage = h.messages.MethodNotAllowed
	case errors.Is(err, errUnsupportedFormat):
		httpStatus = http.StatusBadRequest
		clientMessage = h.messages.UnsupportedFormat
	case errors.Is(err, domain.ErrMalformedIdentity) || errors.Is(err, errMalformedRequest):
		httpStatus = http.StatusBadRequest
		clientMessage = h.messages.MalformedRequest
	case errors.Is(err, domain.ErrUnknownCategory):
		httpStatus = http.StatusNotFound
		clientMessage = h.messages.UnknownCategory
	case errors.Is(err, domain.ErrUnknownLocation):
		httpStatus = http.StatusBadRequest
		clientMessage = h.messages.UnknownLocation
	default:
		httpStatus = http.StatusInternalServerError
		clientMessage = h.messages.InternalError
	}

	logrus.Errorf("HTTP %d Error: %s. Details: %+v", httpStatus, clientMessage, err)
	http.Error(w, clientMessage, httpStatus)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
		http.Error(w, h.messages.InternalError, http.StatusInternalServerError)
		return
	}
	w.Header().Set(HeaderContentType, domain.MIMEJSON)
	w.WriteHeader(status)
	if _, writeErr := w.Write(data); writeErr != nil {
		logrus.Warnf("Failed to write response: %v", writeErr)
	}
}

func (h *Handler) writeYAML(w http.ResponseWriter, status int, v any) {
	data, err := yaml.Marshal(v)
	if err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
		http.Error(w, h.messages.InternalError, http.StatusInternalServerError)
		return
	}
	w.Header().Set(HeaderContentType, domain.MIMEYAML)
	w.WriteHeader(status)
	if _, writeErr := w.Write(data); writeErr != nil {
		logrus.Warnf("Failed to write response: %v", writeErr)
	}
}
