package main

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// sender is the delivery half of a connection. trySend must not block; a
// false return means the connection is wedged and gets dropped.
type sender interface {
	trySend(msg any) bool
	closeSend()
}

// Registry events. Each inbound action is one of these tagged variants,
// dispatched by type switch in handle. Connection-scoped results are
// unicast back to the caller; only read-only queries from HTTP handlers
// use a reply channel.

type connectEvent struct {
	id   string
	conn sender
}

type disconnectEvent struct {
	id string
}

type setNameEvent struct {
	id   string
	name string
}

type createRoomEvent struct {
	id       string
	game     GameKind
	settings Settings
}

type joinRoomEvent struct {
	id     string
	roomID string
}

type quickMatchEvent struct {
	id   string
	game GameKind
}

type leaveRoomEvent struct {
	id     string
	roomID string
}

type chatEvent struct {
	id     string
	roomID string
	text   string
}

type rpsStartEvent struct {
	id     string
	roomID string
}

type rpsChooseEvent struct {
	id     string
	roomID string
	choice Choice
}

type unoStartEvent struct {
	id      string
	roomID  string
	restart bool
}

type unoPlayEvent struct {
	id          string
	roomID      string
	card        Card
	chosenColor Color
}

type unoDrawEvent struct {
	id     string
	roomID string
}

type listRoomsEvent struct {
	reply chan []roomInfo
}

// Registry owns the room table, the matchmaking pool, and the identity
// directory. All mutations flow through a single event loop, one at a
// time to completion, so none of its state needs locking and no room ever
// has more than one in-flight mutation.
type Registry struct {
	cfg    *Config
	board  *Leaderboard
	events chan event
	rng    *rand.Rand

	conns map[string]sender
	names map[string]string
	rooms map[string]*Room
	pool  []string // room ids still accepting members

	validate *validator.Validate
}

type event any

func newRegistry(cfg *Config, board *Leaderboard) *Registry {
	return &Registry{
		cfg:      cfg,
		board:    board,
		events:   make(chan event, 256),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		conns:    make(map[string]sender),
		names:    make(map[string]string),
		rooms:    make(map[string]*Room),
		validate: validator.New(),
	}
}

func (reg *Registry) post(ev event) {
	reg.events <- ev
}

func (reg *Registry) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-reg.events:
			reg.handle(ev)
		}
	}
}

func (reg *Registry) handle(ev event) {
	switch ev := ev.(type) {
	case connectEvent:
		reg.connect(ev.id, ev.conn)
	case disconnectEvent:
		reg.disconnect(ev.id)
	case setNameEvent:
		reg.setName(ev.id, ev.name)
	case createRoomEvent:
		reg.createRoom(ev.id, ev.game, ev.settings)
	case joinRoomEvent:
		reg.joinRoom(ev.id, ev.roomID)
	case quickMatchEvent:
		reg.quickMatch(ev.id, ev.game)
	case leaveRoomEvent:
		reg.leaveRoom(ev.id, ev.roomID)
	case chatEvent:
		reg.chat(ev.id, ev.roomID, ev.text)
	case rpsStartEvent:
		reg.rpsStart(ev.id, ev.roomID)
	case rpsChooseEvent:
		reg.rpsChoose(ev.id, ev.roomID, ev.choice)
	case unoStartEvent:
		reg.unoStart(ev.id, ev.roomID, ev.restart)
	case unoPlayEvent:
		reg.unoPlay(ev.id, ev.roomID, ev.card, ev.chosenColor)
	case unoDrawEvent:
		reg.unoDraw(ev.id, ev.roomID)
	case listRoomsEvent:
		ev.reply <- reg.listRooms()
	}
}

// defaultName derives a display name from a connection id, for players
// who never pick one.
func defaultName(id string) string {
	if len(id) > 5 {
		return id[:5]
	}
	return id
}

func (reg *Registry) connect(id string, conn sender) {
	reg.conns[id] = conn
	reg.names[id] = defaultName(id)

	logf(reg.cfg, "ROOMS: Connection %s opened (%d online)", id, len(reg.conns))

	reg.broadcastOnline()
	reg.unicast(id, reg.roomList())
}

func (reg *Registry) disconnect(id string) {
	if conn, ok := reg.conns[id]; ok {
		delete(reg.conns, id)
		conn.closeSend()
	}

	for _, r := range reg.rooms {
		if r.has(id) {
			reg.depart(r, id)
		}
	}

	delete(reg.names, id)

	logf(reg.cfg, "ROOMS: Connection %s closed (%d online)", id, len(reg.conns))

	reg.broadcastOnline()
}

func (reg *Registry) setName(id, name string) {
	if _, ok := reg.names[id]; !ok {
		return
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName(id)
	}
	reg.names[id] = name

	reg.broadcastOnline()
}

// newRoomID draws a six-digit id, retrying on collision with live rooms.
func (reg *Registry) newRoomID() string {
	for {
		id := fmt.Sprintf("%06d", reg.rng.Intn(1000000))
		if _, exists := reg.rooms[id]; !exists {
			return id
		}
	}
}

// normalizeSettings fills in defaults and discards anything that fails
// validation. Bad settings are not an error; the room just gets defaults.
func (reg *Registry) normalizeSettings(settings Settings) Settings {
	def := defaultSettings()

	if settings.VictoryCondition == "" {
		settings.VictoryCondition = def.VictoryCondition
	}
	if settings.TargetScore == 0 {
		settings.TargetScore = def.TargetScore
	}
	if settings.TotalRounds == 0 {
		settings.TotalRounds = def.TotalRounds
	}

	if err := reg.validate.Struct(settings); err != nil {
		return def
	}

	return settings
}

// spawnRoom allocates a room with the caller as sole member and owner
// and enters it into the matchmaking pool.
func (reg *Registry) spawnRoom(id string, game GameKind, settings Settings) *Room {
	r := newRoom(reg.newRoomID(), game, reg.normalizeSettings(settings))
	r.addMember(id, reg.names[id])
	r.Owner = id

	reg.rooms[r.ID] = r
	reg.pool = append(reg.pool, r.ID)

	logf(reg.cfg, "ROOMS: %s created %s room %s", reg.names[id], game, r.ID)

	return r
}

// createRoom answers the caller with the new room id before any of the
// resulting broadcasts go out.
func (reg *Registry) createRoom(id string, game GameKind, settings Settings) *Room {
	if !validGameKind(game) {
		game = GameRPS
	}

	r := reg.spawnRoom(id, game, settings)

	reg.unicast(id, roomCreatedMessage{
		Type:     "roomCreated",
		RoomID:   r.ID,
		Game:     game,
		Settings: r.Settings,
	})

	reg.broadcastMembers(r)
	reg.broadcastRoomList()

	return r
}

func joinedMessage(r *Room) roomJoinedMessage {
	return roomJoinedMessage{
		Type:     "roomJoined",
		Success:  true,
		RoomID:   r.ID,
		Game:     r.Kind,
		Settings: r.Settings,
	}
}

// joinRoom adds the caller to an existing room. There is deliberately no
// capacity check here; only quickMatch respects the ceiling, so a room
// can be over-filled by id.
func (reg *Registry) joinRoom(id, roomID string) {
	r, ok := reg.rooms[roomID]
	if !ok {
		reg.unicast(id, roomJoinedMessage{Type: "roomJoined"})
		return
	}

	reg.unicast(id, joinedMessage(r))
	reg.enter(r, id)
}

// quickMatch picks uniformly at random among pool rooms of the requested
// kind, or creates a fresh room with default settings when none match.
func (reg *Registry) quickMatch(id string, game GameKind) {
	if !validGameKind(game) {
		game = GameRPS
	}

	var candidates []string
	for _, roomID := range reg.pool {
		if r, ok := reg.rooms[roomID]; ok && r.Kind == game {
			candidates = append(candidates, roomID)
		}
	}

	if len(candidates) == 0 {
		r := reg.spawnRoom(id, game, defaultSettings())
		reg.unicast(id, joinedMessage(r))
		reg.broadcastMembers(r)
		reg.broadcastRoomList()
		return
	}

	r := reg.rooms[candidates[reg.rng.Intn(len(candidates))]]

	if r.Kind == GameRPS && r.memberCount()+1 >= rpsCapacity {
		reg.poolRemove(r.ID)
	}

	reg.unicast(id, joinedMessage(r))
	reg.enter(r, id)
}

func (reg *Registry) enter(r *Room, id string) {
	name := reg.names[id]
	r.addMember(id, name)

	logf(reg.cfg, "ROOMS: %s joined room %s (%d members)", name, r.ID, r.memberCount())

	reg.broadcastRoom(r, playerJoinedMessage{Type: "playerJoined", RoomID: r.ID, Name: name})
	reg.broadcastMembers(r)
	reg.broadcastRoomList()
}

func (reg *Registry) leaveRoom(id, roomID string) {
	r, ok := reg.rooms[roomID]
	if !ok || !r.has(id) {
		return
	}

	reg.depart(r, id)
}

// depart removes a member, destroys the room if it empties, and otherwise
// handles ownership handoff, pool re-entry, and the below-minimum notice
// for running UNO games.
func (reg *Registry) depart(r *Room, id string) {
	name := r.names[id]
	r.removeMember(id)

	logf(reg.cfg, "ROOMS: %s left room %s (%d members)", name, r.ID, r.memberCount())

	if r.empty() {
		delete(reg.rooms, r.ID)
		reg.poolRemove(r.ID)
		logf(reg.cfg, "ROOMS: Destroyed empty room %s", r.ID)
		reg.broadcastRoomList()
		return
	}

	reg.broadcastRoom(r, playerLeftMessage{Type: "playerLeft", RoomID: r.ID, Name: name})
	reg.broadcastMembers(r)

	if r.Kind == GameRPS && !r.full() && !slices.Contains(reg.pool, r.ID) {
		reg.pool = append(reg.pool, r.ID)
	}

	// A departure can move the turn pointer, so remaining players need a
	// fresh snapshot. A running game below the minimum stays intact; the
	// members are told and may leave or wait for a restart.
	if g, ok := r.unoState(); ok && g.inProgress() {
		reg.broadcastUnoState(r, g)
		if r.memberCount() < unoMinPlayers {
			reg.broadcastRoom(r, notEnoughPlayersMessage{Type: "notEnoughPlayers", RoomID: r.ID})
		}
	}

	// If the leaver was the last holdout of an RPS round, their departure
	// completes the choice set and the round settles now.
	if g, ok := r.rpsState(); ok && g.collecting && g.allChosen(r.memberCount()) {
		reg.rpsResolve(r, g)
	}

	reg.broadcastRoomList()
}

func (reg *Registry) chat(id, roomID, text string) {
	r, ok := reg.rooms[roomID]
	if !ok || text == "" {
		return
	}

	reg.broadcastRoom(r, chatMessage{
		Type:   "chat",
		RoomID: r.ID,
		Sender: reg.names[id],
		Text:   text,
	})
}

// --- RPS ---

func (reg *Registry) rpsStart(id, roomID string) {
	r, ok := reg.rooms[roomID]
	if !ok {
		return
	}

	g, ok := r.rpsState()
	if !ok {
		return
	}

	if r.Owner != id {
		reg.reject(id, roomID, "only the room owner can start the game")
		return
	}

	g.startRound()
	r.setAllStatus("thinking")

	logf(reg.cfg, "GAMES: RPS game started in room %s", r.ID)

	reg.broadcastRoom(r, playerStatusMessage{Type: "playerStatus", RoomID: r.ID, Status: r.statusView()})
	reg.broadcastRoom(r, gameStartedMessage{Type: "gameStarted", RoomID: r.ID, Game: GameRPS, Settings: r.Settings})
}

func (reg *Registry) rpsChoose(id, roomID string, choice Choice) {
	r, ok := reg.rooms[roomID]
	if !ok || !r.has(id) {
		return
	}

	g, ok := r.rpsState()
	if !ok {
		return
	}

	if !validChoice(choice) {
		reg.reject(id, roomID, "unknown choice")
		return
	}

	// Duplicate submissions in the same round are ignored, not errors.
	if !g.submitChoice(id, choice) {
		return
	}

	r.status[id] = "chosen"
	reg.broadcastRoom(r, playerStatusMessage{Type: "playerStatus", RoomID: r.ID, Status: r.statusView()})

	if !g.allChosen(r.memberCount()) {
		return
	}

	reg.rpsResolve(r, g)
}

// rpsResolve settles a completed round and, on a terminal one, credits the
// leaderboard and moves the room into its waiting state.
func (reg *Registry) rpsResolve(r *Room, g *rpsGame) {
	out := g.resolve(r.order, r.Settings)

	reg.broadcastRoom(r, roundResultMessage{
		Type:    "roundResult",
		RoomID:  r.ID,
		Round:   out.round,
		Choices: out.choices,
		Scores:  out.scores,
		Winners: out.winners,
		Players: r.memberView(),
	})

	if !out.ended {
		r.setAllStatus("thinking")
		reg.broadcastRoom(r, playerStatusMessage{Type: "playerStatus", RoomID: r.ID, Status: r.statusView()})
		return
	}

	champions := make([]string, 0, len(out.champions))
	for _, player := range out.champions {
		name := r.names[player]
		champions = append(champions, name)
		reg.board.Increment(name)
	}

	logf(reg.cfg, "GAMES: RPS game in room %s won by %s", r.ID, strings.Join(champions, ", "))

	// The room survives a finished game in a waiting state until the
	// owner restarts or everyone leaves.
	r.setAllStatus("waiting")
	reg.broadcastRoom(r, playerStatusMessage{Type: "playerStatus", RoomID: r.ID, Status: r.statusView()})
	reg.broadcastRoom(r, gameEndedMessage{
		Type:    "gameEnded",
		RoomID:  r.ID,
		Winner:  strings.Join(champions, ", "),
		Scores:  out.scores,
		Players: r.memberView(),
	})
}

// --- UNO ---

func (reg *Registry) unoStart(id, roomID string, restart bool) {
	r, ok := reg.rooms[roomID]
	if !ok || r.Kind != GameUNO {
		return
	}

	if r.Owner != id {
		reg.reject(id, roomID, "only the room owner can start the game")
		return
	}

	if r.memberCount() < unoMinPlayers {
		reg.reject(id, roomID, "at least two players are needed")
		return
	}

	if r.memberCount() > unoMaxPlayers {
		reg.reject(id, roomID, "too many players for a single deck")
		return
	}

	// Start and restart both build a whole new engine; there is no
	// partial reset of a finished game.
	g := newUnoGame(reg.rng)
	g.initialize(r.order)
	r.engine = g

	reg.poolRemove(r.ID)

	action := "started"
	if restart {
		action = "restarted"
	}
	logf(reg.cfg, "GAMES: UNO game %s in room %s with %d players", action, r.ID, r.memberCount())

	reg.broadcastRoom(r, gameStartedMessage{Type: "gameStarted", RoomID: r.ID, Game: GameUNO, Settings: r.Settings})
	reg.broadcastUnoState(r, g)
	for _, player := range g.order {
		reg.sendHand(r, g, player)
	}
}

func (reg *Registry) unoPlay(id, roomID string, card Card, chosenColor Color) {
	r, g, ok := reg.unoRoom(id, roomID)
	if !ok {
		return
	}

	if g.currentPlayer() != id {
		reg.reject(id, roomID, "it is not your turn")
		return
	}

	out := g.playCard(id, card, chosenColor)
	if !out.ok {
		reg.reject(id, roomID, out.reason)
		return
	}

	reg.sendHand(r, g, id)
	if out.forced != "" {
		reg.sendHand(r, g, out.forced)
	}

	if g.checkWinner(id) {
		g.finished = true
		winner := r.names[id]
		reg.board.Increment(winner)

		logf(reg.cfg, "GAMES: UNO game in room %s won by %s", r.ID, winner)

		reg.broadcastUnoState(r, g)
		reg.broadcastRoom(r, gameEndedMessage{Type: "gameEnded", RoomID: r.ID, Winner: winner})
		return
	}

	reg.broadcastUnoState(r, g)
}

func (reg *Registry) unoDraw(id, roomID string) {
	r, g, ok := reg.unoRoom(id, roomID)
	if !ok {
		return
	}

	if g.currentPlayer() != id {
		reg.reject(id, roomID, "it is not your turn")
		return
	}

	// Deck and discard both exhausted is a silent no-op, not an error.
	card, ok := g.drawCard(id)
	if !ok {
		return
	}

	reg.unicast(id, unoDrewMessage{Type: "unoDrew", RoomID: r.ID, Card: card})
	reg.sendHand(r, g, id)
	reg.broadcastUnoState(r, g)
}

// unoRoom resolves a room and its running UNO game for a member, sending
// a rejection when the game is not in progress.
func (reg *Registry) unoRoom(id, roomID string) (*Room, *unoGame, bool) {
	r, ok := reg.rooms[roomID]
	if !ok || !r.has(id) {
		return nil, nil, false
	}

	g, ok := r.unoState()
	if !ok || !g.inProgress() {
		reg.reject(id, roomID, "the game has not started")
		return nil, nil, false
	}

	return r, g, true
}

func (reg *Registry) listRooms() []roomInfo {
	rooms := make([]roomInfo, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		rooms = append(rooms, r.info())
	}

	slices.SortFunc(rooms, func(a, b roomInfo) int {
		return strings.Compare(a.ID, b.ID)
	})

	return rooms
}

func (reg *Registry) poolRemove(roomID string) {
	idx := slices.Index(reg.pool, roomID)
	if idx != -1 {
		reg.pool = slices.Delete(reg.pool, idx, idx+1)
	}
}

// --- delivery ---

func (reg *Registry) unicast(id string, msg any) {
	conn, ok := reg.conns[id]
	if !ok {
		return
	}

	// Same policy as dropping a slow reader anywhere else: a full send
	// buffer forfeits the connection.
	if !conn.trySend(msg) {
		delete(reg.conns, id)
		conn.closeSend()
	}
}

func (reg *Registry) reject(id, roomID, reason string) {
	reg.unicast(id, rejectedMessage{Type: "rejected", RoomID: roomID, Reason: reason})
}

func (reg *Registry) broadcastRoom(r *Room, msg any) {
	for _, id := range slices.Clone(r.order) {
		reg.unicast(id, msg)
	}
}

func (reg *Registry) broadcastAll(msg any) {
	for id := range reg.conns {
		reg.unicast(id, msg)
	}
}

func (reg *Registry) broadcastOnline() {
	players := make(map[string]string, len(reg.names))
	for id, name := range reg.names {
		players[id] = name
	}

	reg.broadcastAll(onlineMessage{Type: "online", Count: len(reg.conns), Players: players})
}

func (reg *Registry) roomList() roomListMessage {
	return roomListMessage{Type: "roomList", Rooms: reg.listRooms()}
}

func (reg *Registry) broadcastRoomList() {
	reg.broadcastAll(reg.roomList())
}

func (reg *Registry) broadcastMembers(r *Room) {
	reg.broadcastRoom(r, playerListMessage{Type: "playerList", RoomID: r.ID, Players: r.memberView(), Owner: r.Owner})
	reg.broadcastRoom(r, playerStatusMessage{Type: "playerStatus", RoomID: r.ID, Status: r.statusView()})
}

func (reg *Registry) broadcastUnoState(r *Room, g *unoGame) {
	reg.broadcastRoom(r, unoStateMessage{Type: "unoState", RoomID: r.ID, State: g.snapshot(r.names)})
}

func (reg *Registry) sendHand(r *Room, g *unoGame, player string) {
	reg.unicast(player, unoHandMessage{Type: "unoHand", RoomID: r.ID, Hand: g.hand(player)})
}
