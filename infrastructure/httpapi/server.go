package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"sala-api/errors"
	"sala-api/services"
	"sala-api/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/lo"
)

// userHeader carries the caller's asserted identity. There is no session
// or auth mechanism; any caller asserting a name is trusted.
const userHeader = "user"

type RoomServer struct {
	log  *slog.Logger
	room services.IRoomService
}

func NewRoomServer(log *slog.Logger, room services.IRoomService) *RoomServer {
	return &RoomServer{log: log, room: room}
}

// Router wires the polling surface of the room.
func (s *RoomServer) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/participants", s.registerParticipant)
	r.Get("/participants", s.listParticipants)
	r.Post("/messages", s.postMessage)
	r.Get("/messages", s.listMessages)
	r.Post("/status", s.heartbeat)
	return r
}

func (s *RoomServer) registerParticipant(w http.ResponseWriter, r *http.Request) {
	var payload validation.RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, errors.NewValidationError("body must be valid JSON"))
		return
	}

	if err := s.room.Register(r.Context(), payload.Name); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *RoomServer) listParticipants(w http.ResponseWriter, _ *http.Request) {
	participants, err := s.room.ListParticipants()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toParticipantResponses(participants))
}

func (s *RoomServer) postMessage(w http.ResponseWriter, r *http.Request) {
	var payload validation.MessagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, errors.NewValidationError("body must be valid JSON"))
		return
	}

	if err := s.room.PostMessage(r.Context(), r.Header.Get(userHeader), payload); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *RoomServer) listMessages(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	messages, err := s.room.ListMessages(r.Header.Get(userHeader), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toMessageResponses(messages))
}

func (s *RoomServer) heartbeat(w http.ResponseWriter, r *http.Request) {
	if err := s.room.Heartbeat(r.Context(), r.Header.Get(userHeader)); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// parseLimit accepts an absent limit or a strictly positive integer.
func parseLimit(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return nil, errors.NewValidationError("limit must be a positive integer")
	}
	return lo.ToPtr(n), nil
}

func (s *RoomServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("Failed to encode response", "err", err)
	}
}

// writeError maps service errors onto the wire. Validation failures carry
// the full violation list as a JSON array; conflict, not-found and unknown
// sender answers are bare statuses. Only store failures count as incidents
// worth logging.
func (s *RoomServer) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("Request failed", "err", err)
	}

	if violations := errors.Violations(err); len(violations) > 0 {
		s.writeJSON(w, status, violations)
		return
	}
	w.WriteHeader(status)
}
