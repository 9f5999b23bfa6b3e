package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransportStopModel struct {
	TransportStopID uuid.UUID `gorm:"column:transport_stop_id;type:uuid;default:gen_random_uuid();primaryKey" json:"transport_stop_id"`

	TransportStopBranchID uuid.UUID `gorm:"column:transport_stop_branch_id;type:uuid;not null;index:idx_transport_stops_branch" json:"transport_stop_branch_id"`
	TransportStopRouteID  uuid.UUID `gorm:"column:transport_stop_route_id;type:uuid;not null;index:idx_transport_stops_route"   json:"transport_stop_route_id"`

	TransportStopName          string `gorm:"column:transport_stop_name;type:text;not null"                                    json:"transport_stop_name"`
	TransportStopMonthlyCharge int    `gorm:"column:transport_stop_monthly_charge;not null;check:transport_stop_monthly_charge >= 0" json:"transport_stop_monthly_charge"`

	TransportStopCreatedAt time.Time      `gorm:"column:transport_stop_created_at;autoCreateTime" json:"transport_stop_created_at"`
	TransportStopUpdatedAt *time.Time     `gorm:"column:transport_stop_updated_at;autoUpdateTime" json:"transport_stop_updated_at,omitempty"`
	TransportStopDeletedAt gorm.DeletedAt `gorm:"column:transport_stop_deleted_at;index"          json:"transport_stop_deleted_at,omitempty"`
}

func (TransportStopModel) TableName() string { return "transport_stops" }
