// services/sse_leaderboard.go
package services

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// StreamLeaderboardSSE pushes a fresh leaderboard snapshot whenever the
// standings change, so connected pages re-render without polling.
func (s *MissionService) StreamLeaderboardSSE(c *fiber.Ctx) error {
	// SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	ctx := c.Context()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		var lastPayload []byte

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		w.Flush()

		for {
			select {
			case <-ticker.C:
				payload, err := json.Marshal(s.Store.Leaderboard())
				if err != nil {
					continue
				}
				if string(payload) == string(lastPayload) {
					continue
				}
				lastPayload = payload

				fmt.Fprintf(w, "event: leaderboard\ndata: %s\n\n", payload)

				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}

			case <-ctx.Done():
				// Client closed connection
				return
			}
		}
	})

	return nil
}
