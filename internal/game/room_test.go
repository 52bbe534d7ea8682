package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRoom(t *testing.T, password string) *Room {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return NewRoom("KRXM", Player{ConnID: "c1", Name: "alice"}, false, hash)
}

func TestRoomPassword(t *testing.T) {
	open := newTestRoom(t, "")
	require.False(t, open.Locked())
	require.True(t, open.CheckPassword(""))
	require.False(t, open.CheckPassword("anything"))

	locked := newTestRoom(t, "s3cret")
	require.True(t, locked.Locked())
	require.True(t, locked.CheckPassword("s3cret"))
	require.False(t, locked.CheckPassword("wrong"))
	require.False(t, locked.CheckPassword(""))
}

func TestRoomRoster(t *testing.T) {
	r := newTestRoom(t, "")
	r.AddPlayer(Player{ConnID: "c2", Name: "bob"})
	r.AddPlayer(Player{ConnID: "c3", Name: "carol"})

	p, ok := r.PlayerByConn("c2")
	require.True(t, ok)
	require.Equal(t, "bob", p.Name)

	require.True(t, r.HasPlayerNamed("carol"))
	require.False(t, r.HasPlayerNamed("dave"))

	require.True(t, r.RemovePlayer("c2"))
	require.False(t, r.RemovePlayer("c2"))
	// join order of the rest is preserved
	require.Equal(t, []string{"alice", "carol"}, []string{r.Players[0].Name, r.Players[1].Name})
}

func TestRoomSummarize(t *testing.T) {
	r := newTestRoom(t, "pw")
	r.AddPlayer(Player{ConnID: "c2", Name: "bob"})

	s, ok := r.Summarize()
	require.True(t, ok)
	require.Equal(t, Summary{
		Code:        "KRXM",
		HostName:    "alice",
		PlayerCount: 2,
		IsLocked:    true,
		Mode:        ModeIndividual,
	}, s)

	// empty roster can exist transiently during teardown; must not panic
	r.Players = nil
	_, ok = r.Summarize()
	require.False(t, ok)
}
