package main

// Wire messages. Every frame is a JSON object with a "type" field; the
// remaining fields depend on the type. Framing beyond that is left to the
// websocket transport.

// clientMessage is the single inbound envelope. Unused fields for a given
// type are simply ignored.
type clientMessage struct {
	Type        string    `json:"type"`
	Name        string    `json:"name,omitempty"`
	Game        GameKind  `json:"game,omitempty"`
	RoomID      string    `json:"roomId,omitempty"`
	Settings    *Settings `json:"settings,omitempty"`
	Choice      Choice    `json:"choice,omitempty"`
	Card        *Card     `json:"card,omitempty"`
	ChosenColor Color     `json:"chosenColor,omitempty"`
	Text        string    `json:"text,omitempty"`
}

type onlineMessage struct {
	Type    string            `json:"type"` // "online"
	Count   int               `json:"count"`
	Players map[string]string `json:"players"` // connection id -> display name
}

type roomListMessage struct {
	Type  string     `json:"type"` // "roomList"
	Rooms []roomInfo `json:"rooms"`
}

type roomCreatedMessage struct {
	Type     string   `json:"type"` // "roomCreated"
	RoomID   string   `json:"roomId"`
	Game     GameKind `json:"game"`
	Settings Settings `json:"settings"`
}

type roomJoinedMessage struct {
	Type     string   `json:"type"` // "roomJoined"
	Success  bool     `json:"success"`
	RoomID   string   `json:"roomId,omitempty"`
	Game     GameKind `json:"game,omitempty"`
	Settings Settings `json:"settings,omitempty"`
}

type playerListMessage struct {
	Type    string            `json:"type"` // "playerList"
	RoomID  string            `json:"roomId"`
	Players map[string]string `json:"players"`
	Owner   string            `json:"owner"`
}

type playerStatusMessage struct {
	Type   string            `json:"type"` // "playerStatus"
	RoomID string            `json:"roomId"`
	Status map[string]string `json:"status"`
}

type playerLeftMessage struct {
	Type   string `json:"type"` // "playerLeft"
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

type playerJoinedMessage struct {
	Type   string `json:"type"` // "playerJoined"
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
}

type chatMessage struct {
	Type   string `json:"type"` // "chat"
	RoomID string `json:"roomId"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// rejectedMessage is sent only to the connection whose action was
// refused; nobody else sees it and no state changes.
type rejectedMessage struct {
	Type   string `json:"type"` // "rejected"
	RoomID string `json:"roomId"`
	Reason string `json:"reason"`
}

type gameStartedMessage struct {
	Type     string   `json:"type"` // "gameStarted"
	RoomID   string   `json:"roomId"`
	Game     GameKind `json:"game"`
	Settings Settings `json:"settings"`
}

type roundResultMessage struct {
	Type    string            `json:"type"` // "roundResult"
	RoomID  string            `json:"roomId"`
	Round   int               `json:"round"`
	Choices map[string]Choice `json:"choices"`
	Scores  map[string]int    `json:"scores"`
	Winners []string          `json:"winners"`
	Players map[string]string `json:"players"`
}

type gameEndedMessage struct {
	Type    string            `json:"type"` // "gameEnded"
	RoomID  string            `json:"roomId"`
	Winner  string            `json:"winner"`
	Scores  map[string]int    `json:"scores,omitempty"`
	Players map[string]string `json:"players,omitempty"`
}

type unoStateMessage struct {
	Type   string      `json:"type"` // "unoState"
	RoomID string      `json:"roomId"`
	State  unoSnapshot `json:"state"`
}

// unoHandMessage carries a hand to its owner and nobody else.
type unoHandMessage struct {
	Type   string `json:"type"` // "unoHand"
	RoomID string `json:"roomId"`
	Hand   []Card `json:"hand"`
}

type unoDrewMessage struct {
	Type   string `json:"type"` // "unoDrew"
	RoomID string `json:"roomId"`
	Card   Card   `json:"card"`
}

type notEnoughPlayersMessage struct {
	Type   string `json:"type"` // "notEnoughPlayers"
	RoomID string `json:"roomId"`
}
