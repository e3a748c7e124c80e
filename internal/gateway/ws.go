package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/mobais/mobais/internal/security"
)

// handleWebSocket answers one turn per text message for the lifetime of
// the connection. Each message is an UtteranceRequest; each reply is the
// resulting assistant.Turn, or an error object for rejected input.
func (g *Gateway) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: g.config.CORS.AllowedOrigins,
	})
	if err != nil {
		g.logger.Error("websocket accept failed", "error", err)
		return
	}
	defer func() {
		_ = conn.Close(websocket.StatusInternalError, "unexpected close")
	}()
	conn.SetReadLimit(int64(g.config.MaxBodyBytes))

	client := security.ClientKey(r)
	g.logger.Debug("websocket connected", "client", client)
	g.readLoop(r.Context(), conn, client)

	_ = conn.Close(websocket.StatusNormalClosure, "")
}

func (g *Gateway) readLoop(ctx context.Context, conn *websocket.Conn, client string) {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				g.logger.Debug("websocket read ended", "client", client, "error", err)
			}
			return
		}
		if typ != websocket.MessageText {
			g.send(ctx, conn, errorResponse{Error: "text messages only"})
			continue
		}

		if g.limiter != nil {
			if err := g.limiter.Allow(client); err != nil {
				g.send(ctx, conn, errorResponse{Error: err.Error()})
				continue
			}
		}

		var req UtteranceRequest
		if err := security.ValidateJSONDepth(data, security.DefaultMaxJSONDepth); err != nil {
			g.send(ctx, conn, errorResponse{Error: err.Error()})
			continue
		}
		if err := g.parseUtterance(data, &req); err != nil {
			g.send(ctx, conn, errorResponse{Error: err.Error()})
			continue
		}

		turn, err := g.responder.RespondAs(ctx, req.Text, req.Character)
		if err != nil {
			g.logger.Warn("websocket turn failed", "client", client, "turn_id", turn.ID, "error", err)
		}
		g.send(ctx, conn, turn)
	}
}

func (g *Gateway) send(ctx context.Context, conn *websocket.Conn, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		g.logger.Error("websocket marshal failed", "error", err)
		return
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		g.logger.Debug("websocket write failed", "error", err)
	}
}
