// session.go

package game

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/internal/protocol"
	"github.com/jacl-coder/StarRunner-Server/internal/sim"
	"github.com/jacl-coder/StarRunner-Server/pkg/logger"
)

// 会话缓冲区大小
const (
	inputBufferSize = 64
	sendBufferSize  = 256
)

// Session 一个连接对应的一局模拟，World 只在 loop 协程中被访问
type Session struct {
	ID       string
	PlayerID string

	world    *sim.World
	codec    protocol.Codec
	recorder *Recorder
	tick     time.Duration
	log      zerolog.Logger

	inputs chan protocol.ClientMessage
	send   chan []byte
	done   chan struct{}
	once   sync.Once

	lastActive atomic.Int64
	dropped    atomic.Uint64

	// 以下字段只在 loop 协程中读写
	intent    sim.Intent
	paused    bool
	run       *models.RunRecord
	startedAt time.Time
}

// NewSession 创建会话，调用 Start 后开始运转
func NewSession(playerID string, world *sim.World, codec protocol.Codec, recorder *Recorder, tick time.Duration) *Session {
	id := uuid.New().String()
	s := &Session{
		ID:       id,
		PlayerID: playerID,
		world:    world,
		codec:    codec,
		recorder: recorder,
		tick:     tick,
		log:      logger.L().With().Str("session", id).Str("player_id", playerID).Logger(),
		inputs:   make(chan protocol.ClientMessage, inputBufferSize),
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
	}
	s.touch()
	return s
}

// Start 启动模拟循环
func (s *Session) Start() {
	s.log.Info().Str("codec", s.codec.Name()).Msg("会话开始")
	go s.loop()
}

// Stop 停止会话，可以重复调用
func (s *Session) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.log.Info().Uint64("dropped_messages", s.dropped.Load()).Msg("会话结束")
	})
}

// Done 会话结束信号
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Outbox 待发送给客户端的消息
func (s *Session) Outbox() <-chan []byte {
	return s.send
}

// Deliver 把客户端消息交给模拟循环，会话结束或队列已满时返回 false
func (s *Session) Deliver(msg protocol.ClientMessage) bool {
	s.touch()
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.inputs <- msg:
		return true
	default:
		s.log.Warn().Str("type", string(msg.Type)).Msg("输入队列已满，丢弃消息")
		return false
	}
}

// LastActive 最后一次收到客户端消息的时间
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// loop 模拟循环，按固定帧间隔推进
func (s *Session) loop() {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case msg := <-s.inputs:
			s.handle(msg)
		case <-ticker.C:
			s.step(s.tick.Seconds())
		}
	}
}

// handle 处理一条客户端消息
func (s *Session) handle(msg protocol.ClientMessage) {
	switch msg.Type {
	case protocol.MsgStart:
		s.world.Start()
		s.intent = sim.Intent{}
		s.paused = false
		s.run = models.NewRunRecord(s.PlayerID, s.ID)
		s.startedAt = time.Now()
		s.log.Info().Str("run_id", s.run.ID).Msg("开始新的一局")
	case protocol.MsgInput:
		if msg.Input != nil {
			s.intent = *msg.Input
		}
	case protocol.MsgPause:
		s.paused = true
	case protocol.MsgResume:
		s.paused = false
	case protocol.MsgReset:
		s.world.Reset()
		s.intent = sim.Intent{}
		s.paused = false
		s.run = nil
	default:
		s.sendError("未知消息类型: " + string(msg.Type))
	}
}

// step 推进一帧并推送结果，暂停或未开局时不推送
func (s *Session) step(dt float64) {
	if s.paused || !s.world.Running() {
		return
	}

	frame := s.world.Step(dt, s.intent)
	snap := s.world.Snapshot()
	s.push(protocol.ServerMessage{
		Type:  protocol.MsgFrame,
		Frame: protocol.ConvertFrameToProto(frame, &snap),
	})

	if frame.GameOver {
		s.finish()
	}
}

// finish 结算并记录本局
func (s *Session) finish() {
	run := s.run
	if run == nil {
		run = models.NewRunRecord(s.PlayerID, s.ID)
		run.StartedAt = time.Now()
	} else {
		run.StartedAt = s.startedAt
	}
	run.Score = s.world.FinalScore()
	run.PreviousScore = s.world.PreviousScore()
	run.MaxCombo = s.world.MaxCombo()
	run.Kills = s.world.Kills()
	run.BossesDefeated = s.world.BossesDefeated()
	run.Duration = s.world.Elapsed()
	run.Distance = s.world.Distance()
	run.EndedAt = time.Now()
	s.run = nil

	rank := s.recorder.Record(context.Background(), run)
	s.log.Info().
		Str("run_id", run.ID).
		Int("score", run.Score).
		Int("kills", run.Kills).
		Float64("duration", run.Duration).
		Msg("本局结束")

	s.push(protocol.ServerMessage{
		Type: protocol.MsgGameOver,
		GameOver: &protocol.GameOverInfo{
			RunID:         run.ID,
			FinalScore:    run.Score,
			PreviousScore: run.PreviousScore,
			MaxCombo:      run.MaxCombo,
			Kills:         run.Kills,
			Duration:      run.Duration,
			Rank:          rank,
		},
	})
}

func (s *Session) sendError(text string) {
	s.push(protocol.ServerMessage{Type: protocol.MsgError, Error: text})
}

// push 编码并放入发送队列，队列满时丢弃
func (s *Session) push(msg protocol.ServerMessage) {
	data, err := s.codec.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Str("type", string(msg.Type)).Msg("序列化消息失败")
		return
	}

	select {
	case s.send <- data:
	default:
		if s.dropped.Add(1) == 1 {
			s.log.Warn().Msg("发送队列已满，开始丢弃消息")
		}
	}
}
