package friend

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"linkup/internal/common"
)

// Handler wires the relationship HTTP routes to the state machine.
type Handler struct {
	service    FriendService
	projection *ProjectionBuilder
}

func NewHandler(service FriendService, projection *ProjectionBuilder) *Handler {
	return &Handler{service: service, projection: projection}
}

type sendRequestBody struct {
	Username string `json:"username"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.CallerID(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	projection, err := h.projection.Build(r.Context(), userID)
	if err != nil {
		common.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	common.WriteJSON(w, http.StatusOK, projection)
}

func (h *Handler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.CallerID(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var body sendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SendRequest(r.Context(), userID, body.Username); err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *Handler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.CallerID(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	requesterID := mux.Vars(r)["requesterID"]
	if err := h.service.AcceptRequest(r.Context(), userID, requesterID); err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.CallerID(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	requesterID := mux.Vars(r)["requesterID"]
	if err := h.service.DeclineRequest(r.Context(), userID, requesterID); err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.CallerID(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	friendID := mux.Vars(r)["friendID"]
	if err := h.service.RemoveFriend(r.Context(), userID, friendID); err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.CallerID(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	results, err := h.service.FindUsersByUsername(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": results})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		common.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrRequestNotFound):
		common.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrSelfRequest):
		common.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAlreadyFriends),
		errors.Is(err, ErrRequestAlreadySent),
		errors.Is(err, ErrRequestAlreadyReceived),
		errors.Is(err, ErrInvalidStatus):
		common.WriteError(w, http.StatusConflict, err.Error())
	default:
		common.WriteError(w, http.StatusBadGateway, "relationship store unavailable")
	}
}
