package gateway

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ServeWS upgrades an HTTP request to a websocket subscription on one
// draft room. The draft id comes from the `draft_id` query parameter.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	draftID, err := uuid.Parse(r.URL.Query().Get("draft_id"))
	if err != nil {
		http.Error(w, "invalid or missing draft_id", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		draftID: draftID,
		conn:    conn,
		send:    make(chan []byte, h.config.SendBufferSize),
	}
	h.add(c)

	log.Info().
		Str("draft_id", draftID.String()).
		Str("remote", r.RemoteAddr).
		Int("room_size", h.RoomSize(draftID)).
		Msg("draft room client connected")

	go h.writePump(c)
	go h.readPump(c)
}
