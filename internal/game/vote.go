package game

// Ballot collects one next-scene choice per connection during a voting
// round. Entries keep their insertion position across re-votes so the
// tie-break stays deterministic.
type Ballot struct {
	entries []ballotEntry
}

type ballotEntry struct {
	ConnID  string
	SceneID string
}

// Cast records or overwrites the caller's choice. Last write wins; the
// entry keeps its original position.
func (b *Ballot) Cast(connID, sceneID string) {
	for i := range b.entries {
		if b.entries[i].ConnID == connID {
			b.entries[i].SceneID = sceneID
			return
		}
	}
	b.entries = append(b.entries, ballotEntry{ConnID: connID, SceneID: sceneID})
}

func (b *Ballot) Len() int { return len(b.entries) }

func (b *Ballot) Get(connID string) (string, bool) {
	for _, e := range b.entries {
		if e.ConnID == connID {
			return e.SceneID, true
		}
	}
	return "", false
}

// Remove drops a departed player's entry, keeping order of the rest.
func (b *Ballot) Remove(connID string) {
	for i, e := range b.entries {
		if e.ConnID == connID {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return
		}
	}
}

func (b *Ballot) Clear() { b.entries = nil }

// Resolve computes the winning scene. Counts are tallied in ballot
// insertion order and the leader only changes on a strict increase, so
// ties go to the scene that reached the maximum first. Returns false for
// an empty ballot.
func (b *Ballot) Resolve() (string, bool) {
	if len(b.entries) == 0 {
		return "", false
	}
	counts := make(map[string]int, len(b.entries))
	var winner string
	max := 0
	for _, e := range b.entries {
		counts[e.SceneID]++
		if counts[e.SceneID] > max {
			max = counts[e.SceneID]
			winner = e.SceneID
		}
	}
	return winner, true
}
