package coordinator

import (
	"strings"

	"go.uber.org/zap"

	"github.com/casenight/casenight-backend/internal/game"
	"github.com/casenight/casenight-backend/internal/scenario"
	"github.com/casenight/casenight-backend/internal/types"
)

const maxChatRunes = 500

const (
	errRoomNotFound     = "room not found"
	errSceneNotFound    = "scene not found"
	errEvidenceNotFound = "evidence not found"
	errWrongPassword    = "wrong password"
	errNameTaken        = "name already taken"
	errGameStarted      = "game already started"
	errGameNotStarted   = "game not started yet"
	errQuorum           = "voting mode needs at least 3 players"
	errNoHints          = "no hints left"
	errNoScenario       = "scenario unavailable"
	errNameRequired     = "player name required"
)

func (c *Coordinator) fail(connID, msg string) {
	c.send.Send(connID, types.EvError, msg)
}

func (c *Coordinator) handleCreate(m CreateRoom) {
	name := strings.TrimSpace(m.PlayerName)
	if name == "" {
		c.fail(m.ConnID, errNameRequired)
		return
	}

	hash, err := game.HashPassword(m.Password)
	if err != nil {
		c.log.Error("password hash failed", zap.Error(err))
		c.fail(m.ConnID, "could not create room")
		return
	}

	code := game.NewCode()
	for c.rooms[code] != nil {
		code = game.NewCode()
	}

	host := game.Player{ConnID: m.ConnID, Name: name, Avatar: avatarOrDefault(m.Avatar)}
	room := game.NewRoom(code, host, m.Private, hash)
	c.rooms[code] = room
	c.connRooms[m.ConnID] = code

	c.send.JoinGroup(m.ConnID, code)
	c.send.Send(m.ConnID, types.EvRoomCreated, types.RoomCreatedPayload{RoomCode: code, IsHost: true})
	c.send.Broadcast(code, types.EvPlayerList, room.Roster())
	c.publishRoomList()
	c.log.Info("room created",
		zap.String("room", code), zap.String("host", name), zap.Bool("private", m.Private))
}

func (c *Coordinator) handleJoin(m JoinRoom) {
	name := strings.TrimSpace(m.PlayerName)
	if name == "" {
		c.fail(m.ConnID, errNameRequired)
		return
	}
	room := c.rooms[m.RoomCode]
	if room == nil {
		c.fail(m.ConnID, errRoomNotFound)
		return
	}
	if !room.CheckPassword(m.Password) {
		c.fail(m.ConnID, errWrongPassword)
		return
	}

	if room.State == game.StatePlaying {
		c.rejoin(m, room, name)
		return
	}

	if room.HasPlayerNamed(name) {
		c.fail(m.ConnID, errNameTaken)
		return
	}

	room.AddPlayer(game.Player{ConnID: m.ConnID, Name: name, Avatar: avatarOrDefault(m.Avatar)})
	c.connRooms[m.ConnID] = room.Code
	c.send.JoinGroup(m.ConnID, room.Code)

	c.send.Send(m.ConnID, types.EvJoinSuccess, types.JoinSuccessPayload{
		RoomCode:  room.Code,
		Players:   room.Roster(),
		GameState: string(room.State),
		Mode:      string(room.Mode),
	})
	c.send.Broadcast(room.Code, types.EvPlayerList, room.Roster())
	c.send.Broadcast(room.Code, types.EvChatMessage, types.ChatMessagePayload{
		Kind:    "system",
		Message: name + " joined the room",
	})
	c.publishRoomList()
	c.log.Info("player joined", zap.String("room", room.Code), zap.String("player", name))
}

// rejoin swaps a new connection into an existing roster entry. Mid-game
// joins are only honored as reconnections; an unknown name is turned
// away. The stale connection's index entry is dropped so its eventual
// disconnect cannot touch the room.
func (c *Coordinator) rejoin(m JoinRoom, room *game.Room, name string) {
	idx := room.PlayerIndexByName(name)
	if idx < 0 {
		c.fail(m.ConnID, errGameStarted)
		return
	}

	old := room.Players[idx].ConnID
	delete(c.connRooms, old)
	room.Players[idx].ConnID = m.ConnID
	if room.HostConnID == old {
		room.HostConnID = m.ConnID
	}
	room.Ballot.Remove(old)
	c.connRooms[m.ConnID] = room.Code
	c.send.JoinGroup(m.ConnID, room.Code)

	c.send.Send(m.ConnID, types.EvJoinSuccess, types.JoinSuccessPayload{
		RoomCode:     room.Code,
		Rejoined:     true,
		Players:      room.Roster(),
		GameState:    string(room.State),
		Mode:         string(room.Mode),
		CurrentScene: room.CurrentScene,
		HintCount:    room.HintCount,
		Evidence:     room.Evidence.Items(),
	})
	c.send.Broadcast(room.Code, types.EvPlayerList, room.Roster())
	c.log.Info("player rejoined", zap.String("room", room.Code), zap.String("player", name))
}

func (c *Coordinator) handleStart(m StartGame) {
	room := c.rooms[m.RoomCode]
	if room == nil {
		c.fail(m.ConnID, errRoomNotFound)
		return
	}
	if room.HostConnID != m.ConnID {
		// Only the host's client exposes the control; ignore quietly.
		c.log.Debug("non-host start ignored",
			zap.String("room", room.Code), zap.String("conn", m.ConnID))
		return
	}

	mode := game.ModeIndividual
	if m.Mode == string(game.ModeVoting) {
		mode = game.ModeVoting
	}
	if mode == game.ModeVoting && len(room.Players) < game.VotingQuorum {
		c.fail(m.ConnID, errQuorum)
		return
	}
	if !c.scenarios.HasCase(m.CaseID) {
		c.fail(m.ConnID, errNoScenario)
		return
	}

	room.State = game.StatePlaying
	room.Mode = mode
	room.CurrentCase = m.CaseID
	room.CurrentScene = scenario.EntrySceneID
	room.HintCount = game.HintAllowance
	room.Ballot.Clear()
	room.BallotGen++
	room.Evidence.Reset()

	c.send.Broadcast(room.Code, types.EvClearChat, nil)
	c.send.Broadcast(room.Code, types.EvGameStarted, types.GameStartedPayload{
		CaseID:    m.CaseID,
		Mode:      string(mode),
		HintCount: room.HintCount,
	})
	if mode == game.ModeVoting {
		if sc, ok := c.scenarios.GetScene(m.CaseID, scenario.EntrySceneID); ok {
			c.deliverScene(room, sc, "")
		}
	}
	c.publishRoomList()
	c.log.Info("game started", zap.String("room", room.Code),
		zap.String("case", m.CaseID), zap.String("mode", string(mode)),
		zap.Int("players", len(room.Players)))
}

func (c *Coordinator) handleVote(m CastVote) {
	room := c.rooms[m.RoomCode]
	if room == nil || room.State != game.StatePlaying || room.Mode != game.ModeVoting {
		return
	}
	if _, ok := room.PlayerByConn(m.ConnID); !ok {
		return
	}

	room.Ballot.Cast(m.ConnID, m.NextSceneID)
	c.broadcastVoteStatus(room)

	if room.Ballot.Len() >= len(room.Players) {
		c.scheduleResolve(room)
	}
}

func (c *Coordinator) handleResolve(m resolveBallot) {
	room := c.rooms[m.RoomCode]
	if room == nil || room.BallotGen != m.Gen {
		return // room torn down or ballot superseded
	}
	winner, ok := room.Ballot.Resolve()
	if !ok {
		return
	}
	room.Ballot.Clear()
	room.BallotGen++
	room.CurrentScene = winner

	c.send.Broadcast(room.Code, types.EvForceScene, winner)
	if sc, ok := c.scenarios.GetScene(room.CurrentCase, winner); ok {
		c.revealEvidence(room, sc)
	}
	c.log.Info("ballot resolved", zap.String("room", room.Code), zap.String("scene", winner))
}

func (c *Coordinator) handleHint(m RequestHint) {
	room := c.rooms[m.RoomCode]
	if room == nil {
		c.fail(m.ConnID, errRoomNotFound)
		return
	}
	if room.State != game.StatePlaying {
		c.fail(m.ConnID, errGameNotStarted)
		return
	}
	if room.HintCount <= 0 {
		c.send.Send(m.ConnID, types.EvHintExhausted, errNoHints)
		return
	}
	room.HintCount--

	sceneID := m.SceneID
	if sceneID == "" {
		sceneID = room.CurrentScene
	}
	text := "No hint available for this scene."
	if sc, ok := c.scenarios.GetScene(room.CurrentCase, sceneID); ok && sc.Hint != "" {
		text = sc.Hint
	}
	p, _ := room.PlayerByConn(m.ConnID)
	c.send.Broadcast(room.Code, types.EvHintRevealed, types.HintRevealedPayload{
		Text:       text,
		Remaining:  room.HintCount,
		PlayerName: p.Name,
	})
	c.log.Debug("hint used", zap.String("room", room.Code), zap.Int("remaining", room.HintCount))
}

func (c *Coordinator) handleRequestScene(m RequestScene) {
	room := c.rooms[m.RoomCode]
	if room == nil {
		c.fail(m.ConnID, errRoomNotFound)
		return
	}
	if room.State != game.StatePlaying {
		c.fail(m.ConnID, errGameNotStarted)
		return
	}
	sc, ok := c.scenarios.GetScene(room.CurrentCase, m.SceneID)
	if !ok {
		c.fail(m.ConnID, errSceneNotFound)
		return
	}
	c.deliverScene(room, sc, m.ConnID)
}

// deliverScene sends scene content (to one socket, or to the room when
// toConn is empty) and catalogues its image on the evidence board.
func (c *Coordinator) deliverScene(room *game.Room, sc scenario.Scene, toConn string) {
	payload := types.SceneDataPayload{CaseID: room.CurrentCase, Scene: sc}
	if toConn == "" {
		c.send.Broadcast(room.Code, types.EvSceneData, payload)
	} else {
		c.send.Send(toConn, types.EvSceneData, payload)
	}
	c.revealEvidence(room, sc)
}

func (c *Coordinator) revealEvidence(room *game.Room, sc scenario.Scene) {
	if !game.IsEvidenceImage(sc.Image) {
		return
	}
	if _, added := room.Evidence.Reveal(sc.Image); added {
		c.send.Broadcast(room.Code, types.EvEvidenceBoard, room.Evidence.Items())
	}
}

func (c *Coordinator) handleMoveEvidence(m MoveEvidence) {
	room := c.rooms[m.RoomCode]
	if room == nil {
		c.fail(m.ConnID, errRoomNotFound)
		return
	}
	if !room.Evidence.Move(m.ID, m.X, m.Y) {
		c.fail(m.ConnID, errEvidenceNotFound)
		return
	}
	c.send.Broadcast(room.Code, types.EvEvidenceMoved, types.EvidenceMovedPayload{
		ID: m.ID, X: m.X, Y: m.Y,
	})
}

func (c *Coordinator) handleBoardState(m GetBoardState) {
	room := c.rooms[m.RoomCode]
	if room == nil {
		c.fail(m.ConnID, errRoomNotFound)
		return
	}
	c.send.Send(m.ConnID, types.EvEvidenceBoard, room.Evidence.Items())
}

func (c *Coordinator) handleChat(m Chat) {
	room := c.rooms[m.RoomCode]
	if room == nil {
		c.fail(m.ConnID, errRoomNotFound)
		return
	}
	p, ok := room.PlayerByConn(m.ConnID)
	if !ok {
		return
	}
	msg := strings.TrimSpace(m.Message)
	if msg == "" {
		return
	}
	if r := []rune(msg); len(r) > maxChatRunes {
		msg = string(r[:maxChatRunes])
	}
	c.send.Broadcast(room.Code, types.EvChatMessage, types.ChatMessagePayload{
		Kind:       "user",
		PlayerName: p.Name,
		Avatar:     p.Avatar,
		Message:    msg,
	})
}

func (c *Coordinator) handleTyping(m Typing) {
	room := c.rooms[m.RoomCode]
	if room == nil {
		return
	}
	p, ok := room.PlayerByConn(m.ConnID)
	if !ok {
		return
	}
	c.send.BroadcastExcept(room.Code, m.ConnID, types.EvUserTyping, types.UserTypingPayload{
		PlayerName: p.Name,
	})
}

func (c *Coordinator) handleDisconnect(m Disconnect) {
	code, ok := c.connRooms[m.ConnID]
	if !ok {
		return
	}
	delete(c.connRooms, m.ConnID)
	room := c.rooms[code]
	if room == nil {
		return
	}

	p, _ := room.PlayerByConn(m.ConnID)
	if !room.RemovePlayer(m.ConnID) {
		return
	}

	if len(room.Players) == 0 {
		room.BallotGen++
		delete(c.rooms, code)
		c.publishRoomList()
		c.log.Info("room closed", zap.String("room", code))
		return
	}

	if room.HostConnID == m.ConnID {
		room.HostConnID = room.Players[0].ConnID
	}
	room.Ballot.Remove(m.ConnID)

	c.send.Broadcast(code, types.EvPlayerList, room.Roster())
	c.send.Broadcast(code, types.EvChatMessage, types.ChatMessagePayload{
		Kind:    "system",
		Message: p.Name + " left the room",
	})
	c.publishRoomList()

	// The leaver may have been the last holdout on a pending ballot.
	if room.State == game.StatePlaying && room.Mode == game.ModeVoting &&
		room.Ballot.Len() > 0 && room.Ballot.Len() >= len(room.Players) {
		c.broadcastVoteStatus(room)
		c.scheduleResolve(room)
	}
	c.log.Info("player left", zap.String("room", code), zap.String("player", p.Name))
}

func (c *Coordinator) broadcastVoteStatus(room *game.Room) {
	status := make([]types.VoteStatusEntry, 0, len(room.Players))
	for _, p := range room.Players {
		voted, ok := room.Ballot.Get(p.ConnID)
		status = append(status, types.VoteStatusEntry{
			Name:       p.Name,
			ID:         p.ConnID,
			HasVoted:   ok,
			VotedForID: voted,
		})
	}
	c.send.Broadcast(room.Code, types.EvVoteUpdate, types.VoteUpdatePayload{
		VoteStatus: status,
		VoteCount:  room.Ballot.Len(),
		Total:      len(room.Players),
	})
}

func avatarOrDefault(a string) string {
	if a == "" {
		return game.DefaultAvatar
	}
	return a
}
