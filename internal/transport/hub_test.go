package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/casenight/casenight-backend/internal/types"
)

func recvMsg(t *testing.T, ch <-chan types.ServerMessage) types.ServerMessage {
	t.Helper()
	select {
	case m, ok := <-ch:
		require.True(t, ok, "outbox closed unexpectedly")
		return m
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for message")
		return types.ServerMessage{}
	}
}

func recvClosed(t *testing.T, ch <-chan types.ServerMessage) {
	t.Helper()
	select {
	case _, ok := <-ch:
		require.False(t, ok, "expected closed outbox")
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for close")
	}
}

func TestHubSend(t *testing.T) {
	h := NewHub(zap.NewNop())
	a := h.register("a")
	h.register("b")

	h.Send("a", types.EvError, "oops")

	m := recvMsg(t, a.out)
	require.Equal(t, types.EvError, m.Event)
	require.Equal(t, "oops", m.Data)

	// unknown target is a no-op
	h.Send("ghost", types.EvError, "x")
}

func TestHubBroadcast_RoomScoped(t *testing.T) {
	h := NewHub(zap.NewNop())
	a := h.register("a")
	b := h.register("b")
	c := h.register("c")
	h.JoinGroup("a", "KRXM")
	h.JoinGroup("b", "KRXM")
	h.JoinGroup("c", "ZZZZ")

	h.Broadcast("KRXM", types.EvChatMessage, "hi")

	require.Equal(t, types.EvChatMessage, recvMsg(t, a.out).Event)
	require.Equal(t, types.EvChatMessage, recvMsg(t, b.out).Event)
	select {
	case m := <-c.out:
		t.Fatalf("other room received %+v", m)
	default:
	}
}

func TestHubBroadcastExcept(t *testing.T) {
	h := NewHub(zap.NewNop())
	a := h.register("a")
	b := h.register("b")
	h.JoinGroup("a", "KRXM")
	h.JoinGroup("b", "KRXM")

	h.BroadcastExcept("KRXM", "a", types.EvUserTyping, nil)

	require.Equal(t, types.EvUserTyping, recvMsg(t, b.out).Event)
	select {
	case m := <-a.out:
		t.Fatalf("sender received its own typing event: %+v", m)
	default:
	}
}

func TestHubBroadcastAll(t *testing.T) {
	h := NewHub(zap.NewNop())
	a := h.register("a")
	b := h.register("b")
	h.JoinGroup("a", "KRXM")

	h.BroadcastAll(types.EvRoomList, nil)

	require.Equal(t, types.EvRoomList, recvMsg(t, a.out).Event)
	require.Equal(t, types.EvRoomList, recvMsg(t, b.out).Event)
}

func TestHubJoinGroup_MovesBetweenRooms(t *testing.T) {
	h := NewHub(zap.NewNop())
	a := h.register("a")
	h.JoinGroup("a", "OLDR")
	h.JoinGroup("a", "NEWR")

	h.Broadcast("OLDR", types.EvChatMessage, nil)
	select {
	case m := <-a.out:
		t.Fatalf("still in old room: %+v", m)
	default:
	}

	h.Broadcast("NEWR", types.EvChatMessage, nil)
	require.Equal(t, types.EvChatMessage, recvMsg(t, a.out).Event)
}

func TestHubDropsSlowConsumer(t *testing.T) {
	h := NewHub(zap.NewNop())
	a := h.register("a")
	h.JoinGroup("a", "KRXM")

	// nobody drains a's outbox; overflow it
	for i := 0; i < cap(a.out)+1; i++ {
		h.Broadcast("KRXM", types.EvChatMessage, i)
	}

	for i := 0; i < cap(a.out); i++ {
		recvMsg(t, a.out)
	}
	recvClosed(t, a.out)

	// dropped connection no longer receives
	h.Send("a", types.EvError, "x")
}

func TestHubUnregister_Idempotent(t *testing.T) {
	h := NewHub(zap.NewNop())
	a := h.register("a")
	h.JoinGroup("a", "KRXM")

	h.unregister("a")
	recvClosed(t, a.out)
	h.unregister("a") // second call must not panic

	h.Broadcast("KRXM", types.EvChatMessage, nil)
}
