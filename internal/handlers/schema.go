package handlers

import (
	"context"

	"github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/schema"
)

// SchemaHandler prints the JSON Schema of the page configuration
type SchemaHandler struct {
	*BaseHandler
}

// NewSchemaHandler creates a new schema handler
func NewSchemaHandler(base *BaseHandler) *SchemaHandler {
	return &SchemaHandler{BaseHandler: base}
}

func (h *SchemaHandler) Handle(ctx context.Context) error {
	data, err := schema.JSONSchemaBytes()
	if err != nil {
		return errors.WrapError(err, "Failed to build page schema", errors.ExitGeneralError)
	}
	if _, err := h.out().Write(append(data, '\n')); err != nil {
		return errors.WrapError(err, "Failed to write page schema", errors.ExitIOError)
	}
	return nil
}
