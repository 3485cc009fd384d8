package protocol

import (
	"github.com/jacl-coder/StarRunner-Server/internal/enemy"
	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/internal/pool"
	"github.com/jacl-coder/StarRunner-Server/internal/sim"
	"github.com/jacl-coder/StarRunner-Server/internal/spawn"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
)

// ConvertFrameToProto 将模拟帧转换为协议消息，snap 为空时不附带快照
func ConvertFrameToProto(frame sim.Frame, snap *sim.Snapshot) *FrameInfo {
	info := &FrameInfo{
		Frame:      frame.Frame,
		Elapsed:    frame.Elapsed,
		Outcome:    frame.Outcome,
		Events:     frame.Events,
		Score:      frame.Score,
		Combo:      frame.Combo,
		Multiplier: frame.Multiplier,
		Health:     frame.Health,
		MaxHealth:  frame.MaxHealth,
		Effects:    frame.Effects,
	}
	if snap != nil {
		info.Snapshot = ConvertSnapshotToProto(frame, snap)
	}
	return info
}

// ConvertSnapshotToProto 将快照转换为协议消息
func ConvertSnapshotToProto(frame sim.Frame, snap *sim.Snapshot) *SnapshotInfo {
	info := &SnapshotInfo{
		Player: ActorInfo{
			Type:      models.EntityPlayer,
			Position:  snap.PilotPosition,
			Rotation:  snap.PilotRotation,
			Health:    frame.Health,
			MaxHealth: frame.MaxHealth,
		},
		Enemies:      make([]ActorInfo, 0, len(snap.Enemies)),
		Collectibles: make([]ActorInfo, 0, len(snap.Stars)+len(snap.PowerUps)),
		PlayerShots:  bodyPositions(snap.PlayerShots),
		EnemyShots:   bodyPositions(snap.EnemyShots),
		Particles:    snap.ParticleCount,
	}

	for _, e := range snap.Enemies {
		info.Enemies = append(info.Enemies, ConvertEnemyToProto(e))
	}
	if snap.Boss != nil {
		boss := ConvertEnemyToProto(snap.Boss)
		info.Boss = &boss
	}
	for _, c := range snap.Stars {
		info.Collectibles = append(info.Collectibles, ConvertCollectibleToProto(c))
	}
	for _, c := range snap.PowerUps {
		info.Collectibles = append(info.Collectibles, ConvertCollectibleToProto(c))
	}
	return info
}

// ConvertEnemyToProto 将敌人转换为协议消息
func ConvertEnemyToProto(e *enemy.Enemy) ActorInfo {
	info := ActorInfo{
		ID:        e.ID,
		Type:      e.Type,
		Kind:      string(e.Kind),
		Position:  e.Position,
		Rotation:  e.Rotation,
		Health:    e.Health(),
		MaxHealth: e.MaxHealth(),
	}
	if b := e.Boss(); b != nil {
		info.Phase = b.Phase
		info.Charging = b.Charging()
	}
	return info
}

// ConvertCollectibleToProto 将收集物转换为协议消息
func ConvertCollectibleToProto(c *spawn.Collectible) ActorInfo {
	return ActorInfo{
		ID:       c.ID,
		Type:     c.Type,
		Kind:     string(c.PowerUp),
		Position: c.Position,
		Rotation: c.Rotation,
	}
}

func bodyPositions(bodies []pool.Body) []geom.Vec3 {
	positions := make([]geom.Vec3, len(bodies))
	for i, b := range bodies {
		positions[i] = b.Position
	}
	return positions
}
