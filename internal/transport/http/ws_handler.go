package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quizzical-service/internal/app"
	"quizzical-service/internal/domain"
)

// WSHandler bridges a browser UI to the quiz controller: inbound messages
// are user intents, outbound messages are state snapshots. The controller's
// in-flight guard, not the transport, deduplicates overlapping loads.
type WSHandler struct {
	controller *app.Controller
	upgrader   websocket.Upgrader
}

func NewWSHandler(controller *app.Controller) *WSHandler {
	return &WSHandler{
		controller: controller,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type loadPayload struct {
	Config *domain.QuizConfig `json:"config"`
}

type answerPayload struct {
	QuestionID string `json:"questionId"`
	AnswerID   string `json:"answerId"`
}

type screenPayload struct {
	Screen app.Screen `json:"screen"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the connection and pumps intents into the controller and
// state snapshots back out.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.controller.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case state, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: state}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.handleIntent(r.Context(), inbound, send)
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

func (h *WSHandler) handleIntent(ctx context.Context, inbound inboundMessage, send chan outboundMessage[any]) {
	switch inbound.Type {
	case "load":
		cfg := app.DefaultConfig
		if len(inbound.Payload) > 0 {
			var payload loadPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid load payload"}}
				return
			}
			if payload.Config != nil {
				cfg = *payload.Config
			}
		}
		// Loads block through retries; keep the read loop responsive.
		go h.controller.LoadQuiz(ctx, cfg)

	case "refetch":
		go h.controller.Refetch(ctx)

	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
			return
		}
		h.controller.SelectAnswer(payload.QuestionID, payload.AnswerID)

	case "screen":
		var payload screenPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid screen payload"}}
			return
		}
		h.controller.ChangeScreen(payload.Screen)

	case "clearError":
		h.controller.ClearError()

	case "clearCache":
		h.controller.ClearCache(ctx)

	default:
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
	}
}
