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

// TicketHandler handles workflow ticket HTTP requests
type TicketHandler struct {
	createHandler *commandhandlers.CreateTicketHandler
	commandBus    *bus.CommandBus
	queryBus      *querybus.QueryBus
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(
	createHandler *commandhandlers.CreateTicketHandler,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *TicketHandler {
	return &TicketHandler{
		createHandler: createHandler,
		commandBus:    commandBus,
		queryBus:      queryBus,
		validate:      validator.New(),
		logger:        logger,
	}
}

// CreateTicketRequest is the request body for opening a ticket
type CreateTicketRequest struct {
	TicketType string `json:"type" validate:"required,oneof=DoiRequest PublishingRequest"`
}

// Create handles POST /publications/{identifier}/tickets
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTicketRequest
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

	ticket, err := h.createHandler.Handle(r.Context(), commands.CreateTicketCommand{
		TicketType:         req.TicketType,
		ResourceIdentifier: chi.URLParam(r, "identifier"),
		Owner:              owner,
		CustomerURI:        customer,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, queries.NewTicketResult(ticket))
}

// Get handles GET /tickets/{ticketIdentifier}
func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetTicketQuery{
		Identifier: chi.URLParam(r, "ticketIdentifier"),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// ListByResource handles GET /publications/{identifier}/tickets
func (h *TicketHandler) ListByResource(w http.ResponseWriter, r *http.Request) {
	_, customer, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListTicketsByResourceQuery{
		CustomerURI:        customer,
		ResourceIdentifier: chi.URLParam(r, "identifier"),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// ListByStatus handles GET /tickets?status=&pageSize=&cursor=
func (h *TicketHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.queryBus.Ask(r.Context(), queries.ListTicketsByStatusQuery{
		CustomerURI: customer,
		Status:      r.URL.Query().Get("status"),
		PageSize:    pageSize,
		Cursor:      r.URL.Query().Get("cursor"),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	list, ok := result.(*queries.TicketListResult)
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("unexpected query result"))
		return
	}

	common.RespondWithMeta(w, http.StatusOK, list.Items, &common.MetaInfo{NextCursor: list.NextCursor})
}

// Complete handles POST /tickets/{ticketIdentifier}/complete
func (h *TicketHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(identifier, version string) bus.Command {
		return commands.CompleteTicketCommand{Identifier: identifier, ExpectedVersion: version}
	})
}

// Close handles POST /tickets/{ticketIdentifier}/close
func (h *TicketHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(identifier, version string) bus.Command {
		return commands.CloseTicketCommand{Identifier: identifier, ExpectedVersion: version}
	})
}

// MarkViewed handles POST /tickets/{ticketIdentifier}/viewed
func (h *TicketHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(identifier, version string) bus.Command {
		return commands.MarkTicketViewedCommand{Identifier: identifier, ExpectedVersion: version}
	})
}

func (h *TicketHandler) transition(w http.ResponseWriter, r *http.Request, build func(identifier, version string) bus.Command) {
	var req LifecycleRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError("invalid request body").WithCause(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError(err.Error()))
		return
	}

	cmd := build(chi.URLParam(r, "ticketIdentifier"), req.ExpectedVersion)
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		common.RespondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
