package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jacl-coder/StarRunner-Server/config"
	"github.com/jacl-coder/StarRunner-Server/internal/sim"
	"github.com/jacl-coder/StarRunner-Server/internal/spawn"
	"github.com/jacl-coder/StarRunner-Server/pkg/logger"
)

// ErrSessionLimit 会话数量已达上限
var ErrSessionLimit = errors.New("会话数量已达上限")

const (
	// 空闲会话检查间隔
	reapInterval = 10 * time.Second

	// 排行榜默认与最大条数
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100

	// 对局记录默认与最大条数
	defaultRunsLimit = 20
	maxRunsLimit     = 100

	// 玩家ID最大长度，与 runs.player_id 一致
	maxPlayerIDLength = 64

	// 每个IP每分钟可申请的令牌数
	sessionRequestsPerMinute = 30
)

// Server 游戏服务器，每个WebSocket连接对应一个会话
type Server struct {
	cfg      *config.Config
	issuer   *TokenIssuer
	store    RunStore
	board    Leaderboard
	cache    RunCache
	recorder *Recorder
	limiter  *RateLimiter

	sessions      map[string]*Session
	sessionsMutex sync.RWMutex

	httpServer *http.Server
}

// Option 服务器选项
type Option func(*Server)

// WithRunStore 设置对局记录存储
func WithRunStore(store RunStore) Option {
	return func(s *Server) { s.store = store }
}

// WithLeaderboard 设置排行榜
func WithLeaderboard(board Leaderboard) Option {
	return func(s *Server) { s.board = board }
}

// WithRunCache 设置最近一局缓存
func WithRunCache(cache RunCache) Option {
	return func(s *Server) { s.cache = cache }
}

// NewServer 创建游戏服务器
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	issuer, err := NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("创建令牌签发器失败: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		issuer:   issuer,
		limiter:  NewRateLimiter(sessionRequestsPerMinute),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recorder = NewRecorder(s.store, s.board, s.cache)
	return s, nil
}

// Issuer 令牌签发器
func (s *Server) Issuer() *TokenIssuer {
	return s.issuer
}

// Handler 创建HTTP处理器
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket 连接端点
	mux.HandleFunc("GET /ws", s.handleWSConnection)

	// 健康检查端点
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("POST /session", s.limiter.Middleware(http.HandlerFunc(s.handleCreateSession)))
	mux.HandleFunc("GET /stats/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /stats/runs", s.handleRuns)
	mux.HandleFunc("GET /stats/last", s.handleLastRun)

	return loggingMiddleware(corsMiddleware(mux))
}

// Run 启动服务器，ctx 取消后关闭所有会话并退出
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.GamePort),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.L().Info().Int("port", s.cfg.Server.GamePort).Msg("游戏服务器启动")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP服务器错误: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.reaper(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})

	return g.Wait()
}

// shutdown 停止所有会话并关闭HTTP服务器
func (s *Server) shutdown() error {
	s.sessionsMutex.Lock()
	for id, session := range s.sessions {
		session.Stop()
		delete(s.sessions, id)
	}
	s.sessionsMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP服务器关闭错误: %w", err)
	}
	logger.L().Info().Msg("游戏服务器已停止")
	return nil
}

// reaper 定期回收空闲会话
func (s *Server) reaper(ctx context.Context) {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.reapIdle(now)
		case <-ctx.Done():
			return
		}
	}
}

// reapIdle 停止超过空闲时长的会话，返回回收数量
func (s *Server) reapIdle(now time.Time) int {
	s.sessionsMutex.Lock()
	defer s.sessionsMutex.Unlock()

	reaped := 0
	for id, session := range s.sessions {
		if now.Sub(session.LastActive()) > s.cfg.Server.SessionIdleTimeout {
			session.log.Info().Msg("清理空闲会话")
			session.Stop()
			delete(s.sessions, id)
			reaped++
		}
	}
	return reaped
}

// addSession 登记会话，超过上限时返回 ErrSessionLimit
func (s *Server) addSession(session *Session) error {
	s.sessionsMutex.Lock()
	defer s.sessionsMutex.Unlock()

	if len(s.sessions) >= s.cfg.Server.MaxSessions {
		return ErrSessionLimit
	}
	s.sessions[session.ID] = session
	return nil
}

// removeSession 停止并移除会话
func (s *Server) removeSession(id string) {
	s.sessionsMutex.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.sessionsMutex.Unlock()

	if ok {
		session.Stop()
	}
}

// SessionCount 当前会话数量
func (s *Server) SessionCount() int {
	s.sessionsMutex.RLock()
	defer s.sessionsMutex.RUnlock()
	return len(s.sessions)
}

// newWorld 按配置创建模拟世界
func (s *Server) newWorld() *sim.World {
	return sim.NewWorld(SimConfig(s.cfg.Simulation))
}

// SimConfig 把配置映射为模拟参数，seed 为 0 时每局随机
func SimConfig(c config.SimulationConfig) sim.Config {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sp := spawn.DefaultConfig()
	sp.SpawnDistance = c.SpawnDistance
	sp.RemoveDistance = c.RemoveDistance
	sp.EnemyInterval = c.EnemyInterval
	sp.StarChance = c.StarChance
	sp.PowerUpInterval = c.PowerUpInterval
	sp.BossScoreStep = c.BossScoreStep
	sp.HitRadius = c.HitRadius
	sp.MagnetRadius = c.MagnetRadius
	sp.MagnetStrength = c.MagnetStrength

	return sim.Config{
		Seed:         seed,
		PlayerShots:  c.PlayerShots,
		EnemyShots:   c.EnemyShots,
		Particles:    c.Particles,
		PlayerHealth: c.PlayerHealth,
		Spawn:        sp,
	}
}

// sessionRequest 申请会话令牌
type sessionRequest struct {
	PlayerID string `json:"player_id"`
}

// sessionResponse 会话令牌
type sessionResponse struct {
	Token     string    `json:"token"`
	PlayerID  string    `json:"player_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// handleCreateSession 为玩家签发会话令牌
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "无效的请求格式")
		return
	}

	playerID := strings.TrimSpace(req.PlayerID)
	if playerID == "" || len(playerID) > maxPlayerIDLength {
		writeError(w, http.StatusBadRequest, "无效的玩家ID")
		return
	}

	token, expiresAt, err := s.issuer.Issue(playerID)
	if err != nil {
		logger.L().Error().Err(err).Str("player_id", playerID).Msg("签发令牌失败")
		writeError(w, http.StatusInternalServerError, "生成令牌失败")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Token:     token,
		PlayerID:  playerID,
		ExpiresAt: expiresAt,
	})
}

// handleLeaderboard 获取排行榜
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.board == nil {
		writeError(w, http.StatusServiceUnavailable, "排行榜未启用")
		return
	}

	limit := queryLimit(r, defaultLeaderboardLimit, maxLeaderboardLimit)
	entries, err := s.board.Top(r.Context(), limit)
	if err != nil {
		logger.L().Error().Err(err).Msg("获取排行榜失败")
		writeError(w, http.StatusInternalServerError, "获取排行榜失败")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// handleRuns 获取玩家的对局记录
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "对局记录未启用")
		return
	}

	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		writeError(w, http.StatusBadRequest, "缺少 player_id")
		return
	}

	limit := queryLimit(r, defaultRunsLimit, maxRunsLimit)
	runs, err := s.store.ListByPlayer(r.Context(), playerID, limit)
	if err != nil {
		logger.L().Error().Err(err).Str("player_id", playerID).Msg("获取对局记录失败")
		writeError(w, http.StatusInternalServerError, "获取对局记录失败")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"player_id": playerID, "runs": runs})
}

// handleLastRun 获取玩家最近一局
func (s *Server) handleLastRun(w http.ResponseWriter, r *http.Request) {
	if s.cache == nil {
		writeError(w, http.StatusServiceUnavailable, "最近一局缓存未启用")
		return
	}

	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		writeError(w, http.StatusBadRequest, "缺少 player_id")
		return
	}

	run, err := s.cache.LastRun(r.Context(), playerID)
	if err != nil {
		logger.L().Error().Err(err).Str("player_id", playerID).Msg("获取最近一局失败")
		writeError(w, http.StatusInternalServerError, "获取最近一局失败")
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "没有最近一局记录")
		return
	}

	writeJSON(w, http.StatusOK, run)
}

// queryLimit 解析 limit 参数并限制在 [1, upper]
func queryLimit(r *http.Request, def, upper int) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return def
	}
	return min(limit, upper)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}
