package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"printpredict/form"
	"printpredict/i18n"
)

const (
	writeWait = 10 * time.Second
	idleWait  = 30 * time.Minute

	// sessionExpired is the close reason sent when the session behind the
	// cookie has been evicted; the page reloads to obtain a new one.
	sessionExpired = "session expired"
)

// clientMessage is sent by the page: a field edit or a submit.
type clientMessage struct {
	Type  string `json:"type"` // "set" or "predict"
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// serverMessage answers every client message with the session's state, the
// normalized field values and, after a submit, the result.
type serverMessage struct {
	Type   string            `json:"type"` // "state" or "result"
	State  string            `json:"state"`
	Values map[string]string `json:"values"`
	Error  string            `json:"error,omitempty"`
	Result *resultView       `json:"result,omitempty"`
}

// handleWebSocket keeps one session live: each field change is applied and
// echoed back so the page reflects clamped values; "predict" runs inference.
func (a *App) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if id == "" {
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	p := a.printer(r)
	for {
		conn.SetReadDeadline(time.Now().Add(idleWait))
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				a.logger.Debug("websocket read", zap.String("session", id), zap.Error(err))
			}
			return
		}

		var reply serverMessage
		found := a.sessions.WithExisting(id, func(s *form.Session) {
			reply = a.apply(r, p, s, msg)
		})
		if !found {
			a.logger.Info("websocket session expired", zap.String("session", id))
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, sessionExpired),
				time.Now().Add(writeWait))
			return
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(reply); err != nil {
			a.logger.Debug("websocket write", zap.String("session", id), zap.Error(err))
			return
		}
	}
}

func (a *App) apply(r *http.Request, p *i18n.Printer, s *form.Session, msg clientMessage) serverMessage {
	reply := serverMessage{Type: "state"}
	switch msg.Type {
	case "set":
		if err := s.Set(form.Field(msg.Field), msg.Value); err != nil {
			reply.Error = p.Sprintf(i18n.InvalidInput, p.FieldLabel(msg.Field), msg.Value)
		}
	case "predict":
		result := renderOutcome(p, a.invoker.Invoke(r.Context(), s))
		reply.Type = "result"
		reply.Result = &result
	default:
		reply.Error = "unknown message type " + msg.Type
	}
	reply.State = s.State().String()
	reply.Values = snapshot(s)
	return reply
}

func snapshot(s *form.Session) map[string]string {
	values := make(map[string]string, len(form.Columns))
	for _, f := range form.Columns {
		values[string(f)] = s.Display(f)
	}
	return values
}
