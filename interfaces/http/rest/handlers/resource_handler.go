package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/axthosarouris/nva-publication-api-sub001/application/commands"
	"github.com/axthosarouris/nva-publication-api-sub001/application/commands/bus"
	commandhandlers "github.com/axthosarouris/nva-publication-api-sub001/application/commands/handlers"
	"github.com/axthosarouris/nva-publication-api-sub001/application/queries"
	querybus "github.com/axthosarouris/nva-publication-api-sub001/application/queries/bus"
	"github.com/axthosarouris/nva-publication-api-sub001/pkg/common"
	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

const maxBodyBytes = 1 << 20

// ResourceHandler handles publication resource HTTP requests
type ResourceHandler struct {
	createHandler *commandhandlers.CreateResourceHandler
	updateHandler *commandhandlers.UpdateResourceHandler
	commandBus    *bus.CommandBus
	queryBus      *querybus.QueryBus
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(
	createHandler *commandhandlers.CreateResourceHandler,
	updateHandler *commandhandlers.UpdateResourceHandler,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *ResourceHandler {
	return &ResourceHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		commandBus:    commandBus,
		queryBus:      queryBus,
		validate:      validator.New(),
		logger:        logger,
	}
}

// CreateResourceRequest is the request body for creating a publication
type CreateResourceRequest struct {
	Title    string                 `json:"mainTitle" validate:"required,min=1,max=500"`
	Metadata map[string]interface{} `json:"entityDescription,omitempty"`
}

// UpdateResourceRequest is the request body for updating a publication
type UpdateResourceRequest struct {
	Title           string                 `json:"mainTitle" validate:"required,min=1,max=500"`
	Metadata        map[string]interface{} `json:"entityDescription,omitempty"`
	ExpectedVersion string                 `json:"expectedVersion" validate:"required"`
}

// LifecycleRequest carries the row version for a status transition
type LifecycleRequest struct {
	ExpectedVersion string `json:"expectedVersion" validate:"required"`
}

// Create handles POST /publications
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateResourceRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError("invalid request body").WithCause(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError(err.Error()))
		return
	}

	owner, customer, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	resource, err := h.createHandler.Handle(r.Context(), commands.CreateResourceCommand{
		Owner:       owner,
		CustomerURI: customer,
		Title:       req.Title,
		Metadata:    req.Metadata,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, queries.NewResourceResult(resource))
}

// Get handles GET /publications/{identifier}
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetResourceQuery{
		Identifier: chi.URLParam(r, "identifier"),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// Update handles PUT /publications/{identifier}
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateResourceRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError("invalid request body").WithCause(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError(err.Error()))
		return
	}

	resource, err := h.updateHandler.Handle(r.Context(), commands.UpdateResourceCommand{
		Identifier:      chi.URLParam(r, "identifier"),
		ExpectedVersion: req.ExpectedVersion,
		Title:           req.Title,
		Metadata:        req.Metadata,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, queries.NewResourceResult(resource))
}

// List handles GET /publications?status=&pageSize=&cursor=
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	_, customer, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	pageSize := 0
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			common.RespondAppError(w, pkgerrors.NewValidationError("pageSize must be an integer"))
			return
		}
		pageSize = parsed
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListResourcesByStatusQuery{
		CustomerURI: customer,
		Status:      r.URL.Query().Get("status"),
		PageSize:    pageSize,
		Cursor:      r.URL.Query().Get("cursor"),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	list, ok := result.(*queries.ResourceListResult)
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("unexpected query result"))
		return
	}

	common.RespondWithMeta(w, http.StatusOK, list.Items, &common.MetaInfo{NextCursor: list.NextCursor})
}

// Publish handles POST /publications/{identifier}/publish
func (h *ResourceHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(identifier, version string) bus.Command {
		return commands.PublishResourceCommand{Identifier: identifier, ExpectedVersion: version}
	})
}

// MarkForDeletion handles POST /publications/{identifier}/mark-for-deletion
func (h *ResourceHandler) MarkForDeletion(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(identifier, version string) bus.Command {
		return commands.MarkResourceForDeletionCommand{Identifier: identifier, ExpectedVersion: version}
	})
}

// Restore handles POST /publications/{identifier}/restore
func (h *ResourceHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(identifier, version string) bus.Command {
		return commands.RestoreResourceCommand{Identifier: identifier, ExpectedVersion: version}
	})
}

// Delete handles DELETE /publications/{identifier}
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, _, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	err := h.commandBus.Send(r.Context(), commands.DeleteResourceCommand{
		Identifier:  chi.URLParam(r, "identifier"),
		ActingOwner: owner,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ResourceHandler) transition(w http.ResponseWriter, r *http.Request, build func(identifier, version string) bus.Command) {
	var req LifecycleRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError("invalid request body").WithCause(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError(err.Error()))
		return
	}

	cmd := build(chi.URLParam(r, "identifier"), req.ExpectedVersion)
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// callerIdentity pulls the authenticated user and customer out of the
// request context
func callerIdentity(w http.ResponseWriter, r *http.Request) (owner, customer string, ok bool) {
	owner, hasOwner := common.GetUserID(r.Context())
	customer, hasCustomer := common.GetCustomerID(r.Context())
	if !hasOwner || !hasCustomer {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing caller identity")
		return "", "", false
	}
	return owner, customer, true
}
