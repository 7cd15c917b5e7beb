package main

import "slices"

type GameKind string

const (
	GameRPS GameKind = "rps"
	GameUNO GameKind = "uno"
)

func validGameKind(k GameKind) bool {
	return k == GameRPS || k == GameUNO
}

// rpsCapacity is the matchmaking ceiling for rock-paper-scissors rooms.
// Joining by room ID bypasses it; only quickMatch respects it.
const rpsCapacity = 4

const (
	VictoryByScore  = "score"
	VictoryByRounds = "rounds"
)

type Settings struct {
	VictoryCondition string `json:"victoryCondition" validate:"omitempty,oneof=score rounds"`
	TargetScore      int    `json:"targetScore"      validate:"omitempty,min=1,max=100"`
	TotalRounds      int    `json:"totalRounds"      validate:"omitempty,min=1,max=100"`
}

func defaultSettings() Settings {
	return Settings{
		VictoryCondition: VictoryByScore,
		TargetScore:      5,
		TotalRounds:      5,
	}
}

// engine is the closed set of per-game states a room can hold. Only
// *rpsGame and *unoGame implement it.
type engine interface {
	kind() GameKind
	dropPlayer(player string)
}

// Room aggregates one game engine with membership, ownership, and a
// per-member status map. Members are kept in join order; the owner is
// always a current member.
type Room struct {
	ID       string
	Kind     GameKind
	Owner    string
	Settings Settings

	order  []string
	names  map[string]string
	status map[string]string

	engine engine
}

func newRoom(id string, kind GameKind, settings Settings) *Room {
	r := &Room{
		ID:       id,
		Kind:     kind,
		Settings: settings,
		names:    make(map[string]string),
		status:   make(map[string]string),
	}

	// An RPS engine exists for the life of the room; UNO games are built
	// fresh on each start instead.
	if kind == GameRPS {
		r.engine = newRPSGame()
	}

	return r
}

func (r *Room) rpsState() (*rpsGame, bool) {
	g, ok := r.engine.(*rpsGame)
	return g, ok
}

func (r *Room) unoState() (*unoGame, bool) {
	g, ok := r.engine.(*unoGame)
	return g, ok
}

func (r *Room) has(player string) bool {
	_, ok := r.names[player]
	return ok
}

func (r *Room) empty() bool {
	return len(r.order) == 0
}

func (r *Room) memberCount() int {
	return len(r.order)
}

// full reports whether the room is at its matchmaking ceiling. UNO rooms
// never fill; they leave the pool when their game starts.
func (r *Room) full() bool {
	return r.Kind == GameRPS && len(r.order) >= rpsCapacity
}

func (r *Room) addMember(player, name string) {
	if r.has(player) {
		return
	}

	r.order = append(r.order, player)
	r.names[player] = name

	if g, ok := r.rpsState(); ok {
		g.addPlayer(player)
	}
}

// removeMember drops the player from membership and from the active
// engine. If the departing player owned the room, ownership passes to the
// next remaining member in join order.
func (r *Room) removeMember(player string) {
	idx := slices.Index(r.order, player)
	if idx == -1 {
		return
	}

	r.order = slices.Delete(r.order, idx, idx+1)
	delete(r.names, player)
	delete(r.status, player)

	if r.engine != nil {
		r.engine.dropPlayer(player)
	}

	if r.Owner == player && len(r.order) > 0 {
		r.Owner = r.order[0]
	}
}

func (r *Room) setAllStatus(status string) {
	for _, player := range r.order {
		r.status[player] = status
	}
}

func (r *Room) statusView() map[string]string {
	view := make(map[string]string, len(r.status))
	for player, status := range r.status {
		view[player] = status
	}
	return view
}

func (r *Room) memberView() map[string]string {
	view := make(map[string]string, len(r.names))
	for player, name := range r.names {
		view[player] = name
	}
	return view
}

// roomInfo is the read-only discovery projection of a room.
type roomInfo struct {
	ID          string   `json:"id"`
	Game        GameKind `json:"game"`
	MemberNames []string `json:"memberNames"`
	OwnerName   string   `json:"ownerName"`
	MemberCount int      `json:"memberCount"`
}

func (r *Room) info() roomInfo {
	names := make([]string, 0, len(r.order))
	for _, player := range r.order {
		names = append(names, r.names[player])
	}

	return roomInfo{
		ID:          r.ID,
		Game:        r.Kind,
		MemberNames: names,
		OwnerName:   r.names[r.Owner],
		MemberCount: len(r.order),
	}
}
