package types

import (
	"encoding/json"

	"github.com/casenight/casenight-backend/internal/game"
	"github.com/casenight/casenight-backend/internal/scenario"
)

// Client -> Server event names.
const (
	EvCreateRoom     = "create_room"
	EvJoinRoom       = "join_room"
	EvStartGame      = "start_game"
	EvCastVote       = "cast_vote"
	EvRequestHint    = "request_hint"
	EvRequestScene   = "request_scene_data"
	EvMakeChoice     = "make_choice" // alias of request_scene_data
	EvMoveEvidence   = "move_evidence"
	EvGetBoardState  = "get_board_state"
	EvSendChat       = "send_chat"
	EvTyping         = "typing"
	EvGetPublicRooms = "get_public_rooms"
)

// Server -> Client event names.
const (
	EvRoomCreated     = "room_created"
	EvJoinSuccess     = "join_success"
	EvError           = "error_message"
	EvPlayerList      = "update_player_list"
	EvRoomList        = "room_list_update"
	EvGameStarted     = "game_started"
	EvSceneData       = "scene_data"
	EvSceneDataUpdate = "scene_data_update"
	EvVoteUpdate      = "vote_update"
	EvForceScene      = "force_scene_change"
	EvHintRevealed    = "hint_revealed"
	EvHintExhausted   = "hint_exhausted"
	EvEvidenceBoard   = "update_evidence_board"
	EvEvidenceMoved   = "evidence_moved"
	EvChatMessage     = "chat_message"
	EvUserTyping      = "user_typing"
	EvClearChat       = "clear_chat"
)

// ClientMessage is the inbound envelope. Data is decoded into the typed
// payload for the named event; anything that does not decode is rejected
// at the boundary.
type ClientMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ServerMessage is the outbound envelope.
type ServerMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Inbound payloads.

type CreateRoomPayload struct {
	PlayerName string `json:"playerName"`
	Avatar     string `json:"avatar,omitempty"`
	IsPrivate  bool   `json:"isPrivate,omitempty"`
	Password   string `json:"password,omitempty"`
}

type JoinRoomPayload struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
	Password   string `json:"password,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
}

type StartGamePayload struct {
	RoomCode string `json:"roomCode"`
	CaseID   string `json:"caseId"`
	Mode     string `json:"mode,omitempty"`
}

type CastVotePayload struct {
	RoomCode    string `json:"roomCode"`
	NextSceneID string `json:"nextSceneId"`
}

type RequestHintPayload struct {
	RoomCode string `json:"roomCode"`
	SceneID  string `json:"sceneId,omitempty"` // individual mode: requester's position
}

type RequestScenePayload struct {
	RoomCode string `json:"roomCode"`
	SceneID  string `json:"sceneId"`
}

type MoveEvidencePayload struct {
	RoomCode string  `json:"roomCode"`
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type BoardStatePayload struct {
	RoomCode string `json:"roomCode"`
}

type ChatPayload struct {
	RoomCode string `json:"roomCode"`
	Message  string `json:"message"`
}

type TypingPayload struct {
	RoomCode string `json:"roomCode"`
}

// Outbound payloads.

type RoomCreatedPayload struct {
	RoomCode string `json:"roomCode"`
	IsHost   bool   `json:"isHost"`
}

type JoinSuccessPayload struct {
	RoomCode     string        `json:"roomCode"`
	Rejoined     bool          `json:"rejoined,omitempty"`
	Players      []game.Player `json:"players"`
	GameState    string        `json:"gameState"`
	Mode         string        `json:"mode"`
	CurrentScene string        `json:"currentSceneId,omitempty"`
	HintCount    int           `json:"hintCount,omitempty"`
	Evidence     []game.Item   `json:"evidence,omitempty"`
}

type GameStartedPayload struct {
	CaseID    string `json:"caseId"`
	Mode      string `json:"mode"`
	HintCount int    `json:"hintCount"`
}

type SceneDataPayload struct {
	CaseID string         `json:"caseId"`
	Scene  scenario.Scene `json:"scene"`
}

type VoteStatusEntry struct {
	Name       string `json:"name"`
	ID         string `json:"id"`
	HasVoted   bool   `json:"hasVoted"`
	VotedForID string `json:"votedForId,omitempty"`
}

type VoteUpdatePayload struct {
	VoteStatus []VoteStatusEntry `json:"voteStatus"`
	VoteCount  int               `json:"voteCount"`
	Total      int               `json:"total"`
}

type HintRevealedPayload struct {
	Text       string `json:"text"`
	Remaining  int    `json:"remaining"`
	PlayerName string `json:"playerName"`
}

type EvidenceMovedPayload struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type ChatMessagePayload struct {
	Kind       string `json:"kind"` // "user" | "system"
	PlayerName string `json:"playerName,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	Message    string `json:"message"`
}

type UserTypingPayload struct {
	PlayerName string `json:"playerName"`
}
