package protocol

import (
	"testing"

	"github.com/jacl-coder/StarRunner-Server/internal/models"
	"github.com/jacl-coder/StarRunner-Server/internal/sim"
	"github.com/jacl-coder/StarRunner-Server/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodecRejectsUnknown(t *testing.T) {
	_, err := NewCodec("xml")
	assert.ErrorIs(t, err, ErrUnknownCodec)

	c, err := NewCodec("")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())
	assert.False(t, c.Binary())
}

func TestCodecsCarryClientInput(t *testing.T) {
	for _, name := range []string{"json", "msgpack", "proto"} {
		t.Run(name, func(t *testing.T) {
			c, err := NewCodec(name)
			require.NoError(t, err)

			data, err := c.Marshal(ClientMessage{Type: MsgInput, Input: &sim.Intent{Left: true, Shoot: true}})
			require.NoError(t, err)

			var msg ClientMessage
			require.NoError(t, c.Unmarshal(data, &msg))
			assert.Equal(t, MsgInput, msg.Type)
			require.NotNil(t, msg.Input)
			assert.Equal(t, sim.Intent{Left: true, Shoot: true}, *msg.Input)
		})
	}
}

func TestProtoCodecKeepsNumbers(t *testing.T) {
	c := ProtoCodec{}
	data, err := c.Marshal(ServerMessage{Type: MsgGameOver, GameOver: &GameOverInfo{FinalScore: 12345, Kills: 7, Rank: 3}})
	require.NoError(t, err)

	var msg ServerMessage
	require.NoError(t, c.Unmarshal(data, &msg))
	require.NotNil(t, msg.GameOver)
	assert.Equal(t, 12345, msg.GameOver.FinalScore)
	assert.Equal(t, int64(3), msg.GameOver.Rank)
}

func TestConvertFrameWithSnapshot(t *testing.T) {
	w := sim.NewWorld(sim.DefaultConfig())
	w.Start()
	pos := w.Pilot().Position
	w.Spawner().SpawnEnemy(models.EnemyTank, pos.Add(geom.V(3, 0, -40)))
	w.Spawner().SpawnPowerUp(models.PowerUpMagnet, pos.Add(geom.V(-3, 0, -40)))
	boss, ok := w.Spawner().SpawnBoss(pos)
	require.True(t, ok)

	frame := w.Step(0.01, sim.Intent{Shoot: true})
	snap := w.Snapshot()
	info := ConvertFrameToProto(frame, &snap)

	require.NotNil(t, info.Snapshot)
	assert.Equal(t, frame.Frame, info.Frame)
	assert.Equal(t, 3, info.Snapshot.Player.Health)
	require.Len(t, info.Snapshot.Enemies, 1)
	assert.Equal(t, "tank", info.Snapshot.Enemies[0].Kind)
	assert.Equal(t, 3, info.Snapshot.Enemies[0].Health)
	require.NotNil(t, info.Snapshot.Boss)
	assert.Equal(t, boss.ID, info.Snapshot.Boss.ID)
	assert.Equal(t, 15, info.Snapshot.Boss.MaxHealth)
	require.Len(t, info.Snapshot.Collectibles, 1)
	assert.Equal(t, "magnet", info.Snapshot.Collectibles[0].Kind)
	assert.Len(t, info.Snapshot.PlayerShots, 1)

	assert.Nil(t, ConvertFrameToProto(frame, nil).Snapshot)
}
