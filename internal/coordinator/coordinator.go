// The coordinator is the single owner of all session state: the room
// registry, rosters, ballots, hint pools and evidence boards. One
// goroutine drains an inbox of tagged events, so a handler runs to
// completion before the next event touches any room. The only work that
// escapes the loop is the ballot-resolution timer, which posts its
// result back into the inbox instead of mutating anything itself.
package coordinator

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/casenight/casenight-backend/internal/game"
	"github.com/casenight/casenight-backend/internal/scenario"
	"github.com/casenight/casenight-backend/internal/types"
)

// Sender is the outbound half of the transport layer. One-to-socket,
// one-to-room, room-minus-sender, and everyone-connected.
type Sender interface {
	Send(connID, event string, data any)
	Broadcast(roomCode, event string, data any)
	BroadcastExcept(roomCode, exceptConnID, event string, data any)
	BroadcastAll(event string, data any)
	JoinGroup(connID, roomCode string)
}

const defaultResolveDelay = 3 * time.Second

type Options struct {
	// ResolveDelay is how long a completed ballot is held before the
	// scene transition, so clients can show the final tally. Zero means
	// the 3 s default.
	ResolveDelay time.Duration
}

type Coordinator struct {
	inbox     chan Msg
	rooms     map[string]*game.Room
	connRooms map[string]string // connection id -> room code
	scenarios *scenario.Store
	send      Sender
	log       *zap.Logger

	resolveDelay time.Duration
	ctx          context.Context
	cancel       context.CancelFunc
}

func New(parent context.Context, store *scenario.Store, send Sender, log *zap.Logger, opts Options) *Coordinator {
	ctx, cancel := context.WithCancel(parent)
	delay := opts.ResolveDelay
	if delay == 0 {
		delay = defaultResolveDelay
	}
	c := &Coordinator{
		inbox:        make(chan Msg, 64),
		rooms:        make(map[string]*game.Room),
		connRooms:    make(map[string]string),
		scenarios:    store,
		send:         send,
		log:          log,
		resolveDelay: delay,
		ctx:          ctx,
		cancel:       cancel,
	}
	go c.loop()
	return c
}

func (c *Coordinator) Inbox() chan<- Msg { return c.inbox }

func (c *Coordinator) loop() {
	for {
		select {
		case <-c.ctx.Done():
			return

		case m := <-c.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				c.handleCreate(msg)
			case JoinRoom:
				c.handleJoin(msg)
			case StartGame:
				c.handleStart(msg)
			case CastVote:
				c.handleVote(msg)
			case RequestHint:
				c.handleHint(msg)
			case RequestScene:
				c.handleRequestScene(msg)
			case MoveEvidence:
				c.handleMoveEvidence(msg)
			case GetBoardState:
				c.handleBoardState(msg)
			case Chat:
				c.handleChat(msg)
			case Typing:
				c.handleTyping(msg)
			case ListRooms:
				c.send.Send(msg.ConnID, types.EvRoomList, c.publicRooms())
			case Disconnect:
				c.handleDisconnect(msg)
			case resolveBallot:
				c.handleResolve(msg)
			case InspectRoom:
				msg.Reply <- c.inspect(msg.Code)
			case Shutdown:
				c.cancel()
				return
			}
		}
	}
}

func (c *Coordinator) inspect(code string) RoomView {
	v := RoomView{NumRooms: len(c.rooms)}
	room, ok := c.rooms[code]
	if !ok {
		return v
	}
	v.Exists = true
	v.State = room.State
	v.Mode = room.Mode
	v.HostConnID = room.HostConnID
	v.Players = append([]game.Player(nil), room.Players...)
	v.HintCount = room.HintCount
	v.VoteCount = room.Ballot.Len()
	v.BallotGen = room.BallotGen
	v.CurrentCase = room.CurrentCase
	v.CurrentScene = room.CurrentScene
	v.Evidence = room.Evidence.Items()
	return v
}

func (c *Coordinator) publicRooms() []game.Summary {
	out := []game.Summary{}
	for _, room := range c.rooms {
		if room.State != game.StateLobby || room.Private {
			continue
		}
		if s, ok := room.Summarize(); ok {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (c *Coordinator) publishRoomList() {
	c.send.BroadcastAll(types.EvRoomList, c.publicRooms())
}

// scheduleResolve arms the deferred ballot resolution for the room's
// current generation. The timer only posts a message; all mutation stays
// on the coordinator goroutine.
func (c *Coordinator) scheduleResolve(room *game.Room) {
	code, gen := room.Code, room.BallotGen
	time.AfterFunc(c.resolveDelay, func() {
		select {
		case c.inbox <- resolveBallot{RoomCode: code, Gen: gen}:
		case <-c.ctx.Done():
		}
	})
}
