// schema.go

package db

// 统一的数据库表结构定义

// CreateAllTablesSQL 创建所有表的SQL语句
const CreateAllTablesSQL = `
-- 对局记录表
CREATE TABLE IF NOT EXISTS runs (
    id UUID PRIMARY KEY,
    player_id VARCHAR(64) NOT NULL,
    session_id VARCHAR(64) NOT NULL,

    -- 成绩
    score INT NOT NULL DEFAULT 0,
    previous_score INT NOT NULL DEFAULT 0,
    max_combo INT NOT NULL DEFAULT 0,
    kills INT NOT NULL DEFAULT 0,
    bosses_defeated INT NOT NULL DEFAULT 0,

    -- 时长与距离
    duration DOUBLE PRECISION NOT NULL DEFAULT 0,
    distance DOUBLE PRECISION NOT NULL DEFAULT 0,

    started_at TIMESTAMP WITH TIME ZONE NOT NULL,
    ended_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- 创建索引
CREATE INDEX IF NOT EXISTS idx_runs_player_ended ON runs(player_id, ended_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
`

// DropAllTablesSQL 删除所有表的SQL语句
const DropAllTablesSQL = `
DROP TABLE IF EXISTS runs CASCADE;
`
