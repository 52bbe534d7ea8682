// Read-only store of narrative case content. One JSON document per case,
// loaded once at startup and never mutated afterwards, shared by every
// room in the process.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// EntrySceneID is the well-known identifier of the scene every case
// starts on.
const EntrySceneID = "start"

type Choice struct {
	SceneID string `json:"sceneId"`
	Label   string `json:"label,omitempty"`
}

type Scene struct {
	ID      string   `json:"id"`
	Text    string   `json:"text,omitempty"`
	Image   string   `json:"image,omitempty"`
	Hint    string   `json:"hint,omitempty"`
	Choices []Choice `json:"choices,omitempty"`
}

type Case struct {
	ID     string  `json:"id"`
	Title  string  `json:"title,omitempty"`
	Scenes []Scene `json:"scenes"`
}

type Store struct {
	cases map[string]map[string]Scene
}

// Empty returns a store with no cases; every lookup misses.
func Empty() *Store {
	return &Store{cases: make(map[string]map[string]Scene)}
}

// Load reads every *.json case file in dir. A file that fails to parse
// or lacks an entry scene is logged and skipped; the rest of the
// directory still serves. An unreadable directory is fatal to the caller.
func Load(dir string, log *zap.Logger) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scenario dir %s: %w", dir, err)
	}

	s := &Store{cases: make(map[string]map[string]Scene)}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		p := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(p)
		if err != nil {
			log.Warn("skipping unreadable case file", zap.String("file", p), zap.Error(err))
			continue
		}
		var c Case
		if err := json.Unmarshal(data, &c); err != nil {
			log.Warn("skipping corrupt case file", zap.String("file", p), zap.Error(err))
			continue
		}
		if c.ID == "" {
			c.ID = strings.TrimSuffix(e.Name(), ".json")
		}
		scenes := make(map[string]Scene, len(c.Scenes))
		for _, sc := range c.Scenes {
			scenes[sc.ID] = sc
		}
		if _, ok := scenes[EntrySceneID]; !ok {
			log.Warn("skipping case without entry scene", zap.String("case", c.ID))
			continue
		}
		s.cases[c.ID] = scenes
		log.Info("loaded case", zap.String("case", c.ID), zap.Int("scenes", len(scenes)))
	}
	return s, nil
}

func (s *Store) HasCase(caseID string) bool {
	_, ok := s.cases[caseID]
	return ok
}

// GetScene is a pure cached lookup; false means case or scene unknown.
func (s *Store) GetScene(caseID, sceneID string) (Scene, bool) {
	scenes, ok := s.cases[caseID]
	if !ok {
		return Scene{}, false
	}
	sc, ok := scenes[sceneID]
	return sc, ok
}

func (s *Store) Cases() []string {
	out := make([]string, 0, len(s.cases))
	for id := range s.cases {
		out = append(out, id)
	}
	return out
}
