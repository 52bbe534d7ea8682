package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/casenight/casenight-backend/internal/coordinator"
	"github.com/casenight/casenight-backend/internal/types"
)

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestToCoordMsg(t *testing.T) {
	cases := []struct {
		name string
		in   types.ClientMessage
		want coordinator.Msg
		ok   bool
	}{
		{
			name: "create room",
			in:   types.ClientMessage{Event: "create_room", Data: raw(`{"playerName":"alice","isPrivate":true,"password":"pw"}`)},
			want: coordinator.CreateRoom{ConnID: "c1", PlayerName: "alice", Private: true, Password: "pw"},
			ok:   true,
		},
		{
			name: "join room",
			in:   types.ClientMessage{Event: "join_room", Data: raw(`{"roomCode":"KRXM","playerName":"bob"}`)},
			want: coordinator.JoinRoom{ConnID: "c1", RoomCode: "KRXM", PlayerName: "bob"},
			ok:   true,
		},
		{
			name: "start game",
			in:   types.ClientMessage{Event: "start_game", Data: raw(`{"roomCode":"KRXM","caseId":"mansion","mode":"voting"}`)},
			want: coordinator.StartGame{ConnID: "c1", RoomCode: "KRXM", CaseID: "mansion", Mode: "voting"},
			ok:   true,
		},
		{
			name: "cast vote",
			in:   types.ClientMessage{Event: "cast_vote", Data: raw(`{"roomCode":"KRXM","nextSceneId":"library"}`)},
			want: coordinator.CastVote{ConnID: "c1", RoomCode: "KRXM", NextSceneID: "library"},
			ok:   true,
		},
		{
			name: "make_choice aliases request_scene_data",
			in:   types.ClientMessage{Event: "make_choice", Data: raw(`{"roomCode":"KRXM","sceneId":"library"}`)},
			want: coordinator.RequestScene{ConnID: "c1", RoomCode: "KRXM", SceneID: "library"},
			ok:   true,
		},
		{
			name: "move evidence",
			in:   types.ClientMessage{Event: "move_evidence", Data: raw(`{"roomCode":"KRXM","id":"e1","x":10,"y":20}`)},
			want: coordinator.MoveEvidence{ConnID: "c1", RoomCode: "KRXM", ID: "e1", X: 10, Y: 20},
			ok:   true,
		},
		{
			name: "public rooms needs no payload",
			in:   types.ClientMessage{Event: "get_public_rooms"},
			want: coordinator.ListRooms{ConnID: "c1"},
			ok:   true,
		},
		{
			name: "unknown event",
			in:   types.ClientMessage{Event: "self_destruct", Data: raw(`{}`)},
			ok:   false,
		},
		{
			name: "missing payload",
			in:   types.ClientMessage{Event: "join_room"},
			ok:   false,
		},
		{
			name: "payload of the wrong shape",
			in:   types.ClientMessage{Event: "move_evidence", Data: raw(`{"x":"not a number"}`)},
			ok:   false,
		},
		{
			name: "payload that is not an object",
			in:   types.ClientMessage{Event: "send_chat", Data: raw(`42`)},
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toCoordMsg("c1", tc.in)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.Equal(t, tc.want, got)
			}
		})
	}
}
