package game

import "golang.org/x/crypto/bcrypt"

type GameState string

const (
	StateLobby   GameState = "lobby"
	StatePlaying GameState = "playing"
)

type Mode string

const (
	ModeIndividual Mode = "individual"
	ModeVoting     Mode = "voting"
)

// HintAllowance is the shared hint pool a room gets on every game start.
const HintAllowance = 3

// VotingQuorum is the minimum roster size for voting mode.
const VotingQuorum = 3

const DefaultAvatar = "🕵️"

type Player struct {
	ConnID string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Avatar string `json:"avatar"`
}

// Room is the aggregate state of one session. It is owned exclusively by
// the coordinator goroutine; nothing here locks.
type Room struct {
	Code         string
	HostConnID   string
	Players      []Player
	State        GameState
	Mode         Mode
	Private      bool
	PasswordHash []byte
	CurrentCase  string
	CurrentScene string
	HintCount    int
	Ballot       Ballot
	// BallotGen increments whenever a pending ballot becomes invalid
	// (resolution, restart, teardown), so stale timers can detect it.
	BallotGen int
	Evidence  Board
}

func NewRoom(code string, host Player, private bool, passwordHash []byte) *Room {
	return &Room{
		Code:         code,
		HostConnID:   host.ConnID,
		Players:      []Player{host},
		State:        StateLobby,
		Mode:         ModeIndividual,
		Private:      private,
		PasswordHash: passwordHash,
	}
}

func (r *Room) AddPlayer(p Player) {
	r.Players = append(r.Players, p)
}

// Roster returns a copy safe to hand to the transport layer, which
// serializes outside the coordinator goroutine.
func (r *Room) Roster() []Player {
	out := make([]Player, len(r.Players))
	copy(out, r.Players)
	return out
}

// RemovePlayer drops the player with the given connection id, preserving
// join order of the rest. Reports whether anything was removed.
func (r *Room) RemovePlayer(connID string) bool {
	for i, p := range r.Players {
		if p.ConnID == connID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) PlayerByConn(connID string) (Player, bool) {
	for _, p := range r.Players {
		if p.ConnID == connID {
			return p, true
		}
	}
	return Player{}, false
}

func (r *Room) PlayerIndexByName(name string) int {
	for i, p := range r.Players {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (r *Room) HasPlayerNamed(name string) bool {
	return r.PlayerIndexByName(name) >= 0
}

// CheckPassword reports whether the supplied password admits a join.
// Rooms created without a password admit only the empty string.
func (r *Room) CheckPassword(pw string) bool {
	if len(r.PasswordHash) == 0 {
		return pw == ""
	}
	return bcrypt.CompareHashAndPassword(r.PasswordHash, []byte(pw)) == nil
}

func (r *Room) Locked() bool { return len(r.PasswordHash) > 0 }

func HashPassword(pw string) ([]byte, error) {
	if pw == "" {
		return nil, nil
	}
	return bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
}

// Summary is the public-lobby listing entry for a room.
type Summary struct {
	Code        string `json:"code"`
	HostName    string `json:"hostName"`
	PlayerCount int    `json:"playerCount"`
	IsLocked    bool   `json:"isLocked"`
	Mode        Mode   `json:"mode"`
}

// Summarize returns the public listing entry. The second return is false
// for rooms with an empty roster, which can exist transiently during
// teardown and must not be indexed into.
func (r *Room) Summarize() (Summary, bool) {
	if len(r.Players) == 0 {
		return Summary{}, false
	}
	return Summary{
		Code:        r.Code,
		HostName:    r.Players[0].Name,
		PlayerCount: len(r.Players),
		IsLocked:    r.Locked(),
		Mode:        r.Mode,
	}, true
}
