// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/techequipments/engine/internal/equipment"
	"github.com/techequipments/engine/internal/jobs"
	"github.com/techequipments/engine/internal/models"
	"github.com/techequipments/engine/internal/session"
	"github.com/techequipments/engine/internal/soe"
	"github.com/techequipments/engine/internal/trend"
)

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// EquipmentHandler handles equipment catalog lookups
type EquipmentHandler interface {
	HandleListEquipment(c echo.Context) error
	HandleGetEquipment(c echo.Context) error
}

// SoeHandler handles SOE extraction and event code tables
type SoeHandler interface {
	HandleGetCodes(c echo.Context) error
	HandleExtract(c echo.Context) error
	HandleStartJob(c echo.Context) error
	HandleJobStatus(c echo.Context) error
	HandleJobProgressStream(c echo.Context) error
	HandleJobRecords(c echo.Context) error
	HandleJobRecordsMsgpack(c echo.Context) error
	HandleCancelJob(c echo.Context) error
}

// TrendHandler handles trend session operations
type TrendHandler interface {
	HandleStartSession(c echo.Context) error
	HandleSnapshot(c echo.Context) error
	HandlePointsMsgpack(c echo.Context) error
	HandleChangeEquipment(c echo.Context) error
	HandleRange(c echo.Context) error
	HandleLive(c echo.Context) error
	HandleKeepAlive(c echo.Context) error
	HandleCloseSession(c echo.Context) error
}

// HistorianHandler handles sample ingest into the historian
type HistorianHandler interface {
	HandleIngest(c echo.Context) error
	HandleListTags(c echo.Context) error
}

// EquipmentDirectory is the equipment catalog as seen by the handlers
type EquipmentDirectory interface {
	List(filter equipment.Filter) ([]models.EquipmentListItem, error)
	Get(name string) (equipment.Entry, bool)
	Stations() []string
}

// SoeExtractor runs a synchronous aggregated extraction
type SoeExtractor interface {
	Extract(ctx context.Context, name string, opts soe.Options, progress soe.ProgressFunc) (*models.SoeResult, error)
}

// JobManager defines the async SOE job operations
// This allows mocking in tests
type JobManager interface {
	StartJob(equipment string, opts soe.Options) (*jobs.Job, error)
	GetJob(id string) (*jobs.Job, bool)
	Result(id string) (*models.SoeResult, error)
	Cancel(id string) bool
}

// SessionManager defines the trend session operations
// This allows mocking in tests
type SessionManager interface {
	StartSession(equipment string, group models.TypeGroup, windowMinutes int) (*session.Info, error)
	GetSession(id string) (*session.Info, bool)
	Controller(id string) (*trend.Controller, bool)
	TouchSession(id string) bool
	ChangeEquipment(ctx context.Context, id, equipment string, group models.TypeGroup) error
	Poke(id string) bool
	Subscribe(id string) (<-chan struct{}, func(), error)
	CloseSession(id string) bool
}
