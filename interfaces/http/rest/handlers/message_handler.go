package handlers

import (
	"net/http"

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

// MessageHandler handles conversation message HTTP requests
type MessageHandler struct {
	createHandler *commandhandlers.CreateMessageHandler
	commandBus    *bus.CommandBus
	queryBus      *querybus.QueryBus
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(
	createHandler *commandhandlers.CreateMessageHandler,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *MessageHandler {
	return &MessageHandler{
		createHandler: createHandler,
		commandBus:    commandBus,
		queryBus:      queryBus,
		validate:      validator.New(),
		logger:        logger,
	}
}

// CreateMessageRequest is the request body for adding a message
type CreateMessageRequest struct {
	Kind string `json:"kind" validate:"required,oneof=SUPPORT DOI_REQUEST"`
	Text string `json:"text" validate:"required,min=1,max=10000"`
}

// Create handles POST /publications/{identifier}/messages
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError("invalid request body").WithCause(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError(err.Error()))
		return
	}

	sender, customer, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	message, err := h.createHandler.Handle(r.Context(), commands.CreateMessageCommand{
		Sender:             sender,
		ResourceIdentifier: chi.URLParam(r, "identifier"),
		CustomerURI:        customer,
		Kind:               req.Kind,
		Text:               req.Text,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, queries.NewMessageResult(message))
}

// Get handles GET /messages/{messageIdentifier}
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetMessageQuery{
		Identifier: chi.URLParam(r, "messageIdentifier"),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// ListByResource handles GET /publications/{identifier}/messages
func (h *MessageHandler) ListByResource(w http.ResponseWriter, r *http.Request) {
	_, customer, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListMessagesByResourceQuery{
		CustomerURI:        customer,
		ResourceIdentifier: chi.URLParam(r, "identifier"),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// MarkRead handles POST /messages/{messageIdentifier}/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req LifecycleRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError("invalid request body").WithCause(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError(err.Error()))
		return
	}

	err := h.commandBus.Send(r.Context(), commands.MarkMessageReadCommand{
		Identifier:      chi.URLParam(r, "messageIdentifier"),
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
