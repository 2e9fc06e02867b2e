package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/vuchint-sutapalli/pictionary/internal/hub"
)

// ListRooms reports the live rooms and their member counts. Debug aid;
// room assignment itself happens over the websocket "play" event.
func ListRooms(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan []hub.RoomStats, 1)
		h.Inbox() <- hub.Stats{Reply: reply}
		stats := <-reply

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Rooms []hub.RoomStats `json:"rooms"`
		}{Rooms: stats})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
