package jobs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StageInit      = "init"
	StageLoad      = "load"
	StageClean     = "clean"
	StageTransform = "transform"
	StageRun       = "run"

	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// EtlRun records one execution of a pipeline stage. It is written outside the batch
// transaction so that failed batches leave an audit row behind.
type EtlRun struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Stage           string         `gorm:"column:stage;not null;index" json:"stage"`
	Status          string         `gorm:"column:status;not null;index" json:"status"`
	Source          string         `gorm:"column:source" json:"source,omitempty"`
	Records         int            `gorm:"column:records;not null;default:0" json:"records"`
	Movies          int            `gorm:"column:movies;not null;default:0" json:"movies"`
	EntitiesCreated int            `gorm:"column:entities_created;not null;default:0" json:"entities_created"`
	LinksCreated    int            `gorm:"column:links_created;not null;default:0" json:"links_created"`
	Result          datatypes.JSON `gorm:"column:result" json:"result,omitempty"`
	Error           string         `gorm:"column:error;type:text" json:"error,omitempty"`
	StartedAt       time.Time      `gorm:"column:started_at;not null;index" json:"started_at"`
	FinishedAt      *time.Time     `gorm:"column:finished_at" json:"finished_at,omitempty"`
}

func (EtlRun) TableName() string { return "etl_run" }
