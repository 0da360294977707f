package api

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/coder/websocket"

	"blinkbot/internal/session"
	"blinkbot/pkg"
)

// wsInbound is one client frame: a chat turn or a card action.
type wsInbound struct {
	Type     string     `json:"type"` // text, image, voice, buy, confirm, fund, reset
	Text     string     `json:"text,omitempty"`
	ImageRef string     `json:"image_ref,omitempty"`
	Item     *pkg.Item  `json:"item,omitempty"`
	Order    *pkg.Order `json:"order,omitempty"`
	Amount   int        `json:"amount,omitempty"`
	Optional bool       `json:"optional,omitempty"`
	Persona  string     `json:"persona,omitempty"`
}

// handleWebSocket streams the conversation. The existing transcript is sent
// immediately on connect; messages produced by subsequent turns are written
// after sleeping their DelayMS so the client sees the scripted typing rhythm
// without scheduling anything itself.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to accept websocket")
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			s.logger.Debug().Err(closeErr).Msg("failed to close websocket")
		}
	}()

	ctx := r.Context()

	history, err := s.manager.Session().Messages(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load transcript")
		return
	}
	for _, msg := range history {
		// No delay replay on catch-up; the client already missed the rhythm.
		if err := s.writeFrame(ctx, ws, msg); err != nil {
			return
		}
	}

	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				s.logger.Warn().Err(err).Msg("websocket read error")
			}
			return
		}

		var in wsInbound
		if err := sonic.Unmarshal(data, &in); err != nil {
			s.logger.Warn().Err(err).Msg("ignoring malformed frame")
			continue
		}

		msgs, err := s.dispatch(ctx, in)
		if err != nil {
			s.logger.Error().Err(err).Str("type", in.Type).Msg("turn failed")
			return
		}
		if err := s.streamMessages(ctx, ws, msgs); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, in wsInbound) ([]pkg.Message, error) {
	switch in.Type {
	case "text":
		return s.manager.Session().HandleInput(ctx, session.Text(in.Text))
	case "image":
		return s.manager.Session().HandleInput(ctx, session.Image{Ref: in.ImageRef})
	case "voice":
		return s.manager.Session().HandleInput(ctx, session.Voice{})
	case "buy":
		if in.Item == nil {
			return nil, nil
		}
		return s.manager.Session().RaisePurchaseIntent(ctx, *in.Item)
	case "confirm":
		if in.Order == nil {
			return nil, nil
		}
		return s.manager.Session().ConfirmPurchase(ctx, *in.Order)
	case "fund":
		return s.manager.Session().CompleteFunding(ctx, in.Amount, in.Optional)
	case "reset":
		return s.manager.Reset(ctx, session.Persona(in.Persona))
	default:
		s.logger.Warn().Str("type", in.Type).Msg("unknown frame type")
		return nil, nil
	}
}

// streamMessages writes each message after its delay. User echoes carry no
// delay and go out immediately.
func (s *Server) streamMessages(ctx context.Context, ws *websocket.Conn, msgs []pkg.Message) error {
	for _, msg := range msgs {
		if msg.DelayMS > 0 {
			select {
			case <-time.After(time.Duration(msg.DelayMS) * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := s.writeFrame(ctx, ws, msg); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) writeFrame(ctx context.Context, ws *websocket.Conn, msg pkg.Message) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode message frame")
		return err
	}
	if err := ws.Write(ctx, websocket.MessageText, data); err != nil {
		s.logger.Debug().Err(err).Msg("websocket write error")
		return err
	}
	return nil
}
