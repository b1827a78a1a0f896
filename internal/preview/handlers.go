package preview

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	appErrors "github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/export"
	"github.com/user/pagesmith/internal/i18n"
	"github.com/user/pagesmith/internal/logging"
	"github.com/user/pagesmith/internal/nav"
	"github.com/user/pagesmith/internal/rendercache"
	"github.com/user/pagesmith/internal/schema"
	"github.com/user/pagesmith/internal/validation"
)

const targetFragment = "fragment"

// errorResponse is the body of every rejected write
type errorResponse struct {
	Error  string                  `json:"error"`
	Issues []appErrors.IssueDetail `json:"issues"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Write(body)
}

// locale picks the message locale for r
func (s *Server) locale(r *http.Request) string {
	if header := r.Header.Get("Accept-Language"); header != "" {
		return i18n.Match(header)
	}
	return i18n.Match(s.cfg.Locale)
}

// cached renders the current configuration for target through the cache
func (s *Server) cached(target string, render func(schema.PageConfig) (string, error)) (string, error) {
	cfg, version := s.store.Snapshot()
	return s.cachedFor(cfg, version, target, render)
}

// cachedFor renders one snapshot, so callers that also read cfg stay
// consistent with the body
func (s *Server) cachedFor(cfg schema.PageConfig, version uint64, target string, render func(schema.PageConfig) (string, error)) (string, error) {
	key, err := rendercache.Key(cfg, target)
	if err != nil {
		return "", err
	}
	body, hit, err := s.cache.GetOrRender(key, target, version, func() (string, error) {
		return render(cfg)
	})
	if err != nil {
		return "", err
	}
	s.logger.Debug("Rendered document",
		logging.String("target", target),
		logging.Bool("cache_hit", hit),
	)
	return body, nil
}

func (s *Server) renderFailed(w http.ResponseWriter, err error) {
	s.logger.Error("Render failed", logging.Error(err))
	http.Error(w, "render failed", http.StatusInternalServerError)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.store.Version(),
		"cache":   s.cache.Stats(),
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	body, err := s.cached(string(export.TargetPreview), func(cfg schema.PageConfig) (string, error) {
		return s.exporter.Build(cfg, export.TargetPreview)
	})
	if err != nil {
		s.renderFailed(w, err)
		return
	}
	writeRaw(w, "text/html; charset=utf-8", []byte(body))
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	body, err := s.cached(targetFragment, func(cfg schema.PageConfig) (string, error) {
		tree, err := s.renderer.Render(cfg)
		if err != nil {
			return "", err
		}
		return tree.Markup(), nil
	})
	if err != nil {
		s.renderFailed(w, err)
		return
	}
	writeRaw(w, "text/html; charset=utf-8", []byte(body))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	cfg, version := s.store.Snapshot()
	body, err := s.cachedFor(cfg, version, string(export.TargetExport), s.exporter.Document)
	if err != nil {
		s.renderFailed(w, err)
		return
	}
	w.Header().Set("Content-Disposition", ContentDisposition(export.FileName(cfg.Meta.Title)))
	writeRaw(w, "text/html; charset=utf-8", []byte(body))
}

// ContentDisposition builds an attachment header that survives non-ASCII names
func ContentDisposition(name string) string {
	return "attachment; filename*=UTF-8''" + url.PathEscape(name)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Get())
}

// readConfig validates the request body with the request's locale
func (s *Server) readConfig(w http.ResponseWriter, r *http.Request) (schema.PageConfig, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return schema.PageConfig{}, false
	}

	v := validation.NewValidator(validation.WithLocale(s.locale(r)))
	cfg, err := v.ValidateJSON(data)
	if err != nil {
		s.writeValidationError(w, err)
		return schema.PageConfig{}, false
	}
	return cfg, true
}

func (s *Server) writeValidationError(w http.ResponseWriter, err error) {
	var vErr *appErrors.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: vErr.Error(), Issues: vErr.Issues})
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Issues: []appErrors.IssueDetail{}})
}

func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.readConfig(w, r)
	if !ok {
		return
	}
	committed, err := s.store.Replace(cfg)
	if err != nil {
		s.writeValidationError(w, err)
		return
	}
	s.logger.Info("Configuration replaced", logging.Uint64("version", s.store.Version()))
	writeJSON(w, http.StatusOK, committed)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.readConfig(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	cfg := s.store.Get()
	items := nav.NewDeriver(string(cfg.Meta.Language)).Derive(cfg.Sections)
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	data, err := s.exporter.TreeJSON(s.store.Get())
	if err != nil {
		s.renderFailed(w, err)
		return
	}
	writeRaw(w, "application/json; charset=utf-8", data)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	data, err := schema.JSONSchemaBytes()
	if err != nil {
		http.Error(w, "schema unavailable", http.StatusInternalServerError)
		return
	}
	writeRaw(w, "application/schema+json", data)
}
