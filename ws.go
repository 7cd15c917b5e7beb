package main

import (
	"log"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one websocket connection. Outbound messages go through a
// buffered channel drained by writePump; the registry drops the client if
// the buffer ever fills.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan any
	reg  *Registry
}

func (c *Client) trySend(msg any) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	close(c.send)
}

func serveWS(cfg *Config, reg *Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			id:   uuid.NewString(),
			conn: conn,
			send: make(chan any, 16),
			reg:  reg,
		}

		logf(cfg, "SERVE: Websocket %s connected from %s", client.id, realIP(r))

		reg.post(connectEvent{id: client.id, conn: client})

		go client.writePump()
		client.readPump()
	}
}

// readPump decodes inbound frames and turns them into typed registry
// events. Responses the client is waiting on (room creation, joins) are
// unicast back by the registry before any follow-up broadcasts.
func (c *Client) readPump() {
	defer func() {
		c.reg.post(disconnectEvent{id: c.id})
		_ = c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "setName":
			c.reg.post(setNameEvent{id: c.id, name: msg.Name})

		case "createRoom":
			var settings Settings
			if msg.Settings != nil {
				settings = *msg.Settings
			}
			c.reg.post(createRoomEvent{id: c.id, game: msg.Game, settings: settings})

		case "joinRoom":
			c.reg.post(joinRoomEvent{id: c.id, roomID: msg.RoomID})

		case "quickMatch":
			c.reg.post(quickMatchEvent{id: c.id, game: msg.Game})

		case "leaveRoom":
			c.reg.post(leaveRoomEvent{id: c.id, roomID: msg.RoomID})

		case "sendMessage":
			c.reg.post(chatEvent{id: c.id, roomID: msg.RoomID, text: msg.Text})

		case "startGame":
			c.reg.post(rpsStartEvent{id: c.id, roomID: msg.RoomID})

		case "makeChoice":
			c.reg.post(rpsChooseEvent{id: c.id, roomID: msg.RoomID, choice: msg.Choice})

		case "startUnoGame":
			c.reg.post(unoStartEvent{id: c.id, roomID: msg.RoomID})

		case "restartUnoGame":
			c.reg.post(unoStartEvent{id: c.id, roomID: msg.RoomID, restart: true})

		case "playCard":
			if msg.Card == nil {
				continue
			}
			c.reg.post(unoPlayEvent{id: c.id, roomID: msg.RoomID, card: *msg.Card, chosenColor: msg.ChosenColor})

		case "drawCard":
			c.reg.post(unoDrawEvent{id: c.id, roomID: msg.RoomID})

		default:
			// ignore unknown types
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
