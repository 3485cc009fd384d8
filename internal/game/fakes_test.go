package game

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/jacl-coder/StarRunner-Server/config"
	"github.com/jacl-coder/StarRunner-Server/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			TickRate:           60,
			MaxSessions:        4,
			SessionIdleTimeout: time.Minute,
		},
		Auth: config.AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
			Issuer:    "starrunner",
		},
		Simulation: config.SimulationConfig{
			Seed:            7,
			PlayerShots:     20,
			EnemyShots:      30,
			Particles:       200,
			PlayerHealth:    3,
			SpawnDistance:   100,
			RemoveDistance:  20,
			EnemyInterval:   1,
			StarChance:      0.3,
			PowerUpInterval: 8,
			BossScoreStep:   10000,
			HitRadius:       2,
			MagnetRadius:    15,
			MagnetStrength:  25,
		},
	}
}

// fakeStore 内存版对局记录
type fakeStore struct {
	mu   sync.Mutex
	runs []models.RunRecord
	err  error
}

func (f *fakeStore) Save(_ context.Context, run *models.RunRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.runs = append(f.runs, *run)
	return nil
}

func (f *fakeStore) ListByPlayer(_ context.Context, playerID string, limit int) ([]models.RunRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.RunRecord
	for _, run := range f.runs {
		if run.PlayerID == playerID && len(out) < limit {
			out = append(out, run)
		}
	}
	return out, nil
}

func (f *fakeStore) saved() []models.RunRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.RunRecord(nil), f.runs...)
}

// fakeBoard 内存版排行榜，只保留最高分
type fakeBoard struct {
	mu     sync.Mutex
	scores map[string]int
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{scores: make(map[string]int)}
}

func (f *fakeBoard) Submit(_ context.Context, playerID string, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if best, ok := f.scores[playerID]; !ok || score > best {
		f.scores[playerID] = score
	}
	return nil
}

func (f *fakeBoard) Rank(ctx context.Context, playerID string) (int64, error) {
	top, _ := f.Top(ctx, math.MaxInt32)
	for _, e := range top {
		if e.PlayerID == playerID {
			return e.Rank, nil
		}
	}
	return 0, nil
}

func (f *fakeBoard) Top(_ context.Context, limit int) ([]models.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := make([]models.LeaderboardEntry, 0, len(f.scores))
	for id, score := range f.scores {
		entries = append(entries, models.LeaderboardEntry{PlayerID: id, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = int64(i + 1)
	}
	return entries, nil
}

// fakeCache 内存版最近一局缓存
type fakeCache struct {
	mu   sync.Mutex
	last map[string]models.RunRecord
}

func (f *fakeCache) CacheLastRun(_ context.Context, run *models.RunRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last == nil {
		f.last = make(map[string]models.RunRecord)
	}
	f.last[run.PlayerID] = *run
	return nil
}

func (f *fakeCache) LastRun(_ context.Context, playerID string) (*models.RunRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.last[playerID]
	if !ok {
		return nil, nil
	}
	return &run, nil
}
