package coordinator

import "github.com/casenight/casenight-backend/internal/game"

// Msg is one inbound event for the coordinator loop. The set is closed;
// the transport layer maps wire events onto these variants and rejects
// anything else at the boundary.
type Msg interface{ isCoordMsg() }

type CreateRoom struct {
	ConnID     string
	PlayerName string
	Avatar     string
	Private    bool
	Password   string
}

type JoinRoom struct {
	ConnID     string
	RoomCode   string
	PlayerName string
	Password   string
	Avatar     string
}

type StartGame struct {
	ConnID   string
	RoomCode string
	CaseID   string
	Mode     string
}

type CastVote struct {
	ConnID      string
	RoomCode    string
	NextSceneID string
}

type RequestHint struct {
	ConnID   string
	RoomCode string
	SceneID  string // optional; individual mode sends the requester's position
}

type RequestScene struct {
	ConnID   string
	RoomCode string
	SceneID  string
}

type MoveEvidence struct {
	ConnID   string
	RoomCode string
	ID       string
	X, Y     float64
}

type GetBoardState struct {
	ConnID   string
	RoomCode string
}

type Chat struct {
	ConnID   string
	RoomCode string
	Message  string
}

type Typing struct {
	ConnID   string
	RoomCode string
}

type ListRooms struct{ ConnID string }

type Disconnect struct{ ConnID string }

type Shutdown struct{}

// resolveBallot is posted by the resolution timer. Gen is the ballot
// generation the timer was armed for; a mismatch means the ballot was
// superseded and the fire is stale.
type resolveBallot struct {
	RoomCode string
	Gen      int
}

// InspectRoom reflects one room's state without data races; test-only.
type InspectRoom struct {
	Code  string
	Reply chan RoomView
}

type RoomView struct {
	Exists       bool
	State        game.GameState
	Mode         game.Mode
	HostConnID   string
	Players      []game.Player
	HintCount    int
	VoteCount    int
	BallotGen    int
	CurrentCase  string
	CurrentScene string
	Evidence     []game.Item
	NumRooms     int
}

func (CreateRoom) isCoordMsg()    {}
func (JoinRoom) isCoordMsg()      {}
func (StartGame) isCoordMsg()     {}
func (CastVote) isCoordMsg()      {}
func (RequestHint) isCoordMsg()   {}
func (RequestScene) isCoordMsg()  {}
func (MoveEvidence) isCoordMsg()  {}
func (GetBoardState) isCoordMsg() {}
func (Chat) isCoordMsg()          {}
func (Typing) isCoordMsg()        {}
func (ListRooms) isCoordMsg()     {}
func (Disconnect) isCoordMsg()    {}
func (Shutdown) isCoordMsg()      {}
func (resolveBallot) isCoordMsg() {}
func (InspectRoom) isCoordMsg()   {}
