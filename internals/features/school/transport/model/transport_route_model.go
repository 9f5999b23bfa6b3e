package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransportRouteModel struct {
	TransportRouteID uuid.UUID `gorm:"column:transport_route_id;type:uuid;default:gen_random_uuid();primaryKey" json:"transport_route_id"`

	TransportRouteBranchID uuid.UUID `gorm:"column:transport_route_branch_id;type:uuid;not null;index:idx_transport_routes_branch" json:"transport_route_branch_id"`

	TransportRouteName          string  `gorm:"column:transport_route_name;type:text;not null"          json:"transport_route_name"`
	TransportRouteVehicleNumber *string `gorm:"column:transport_route_vehicle_number;type:varchar(20)"  json:"transport_route_vehicle_number,omitempty"`

	TransportRouteCreatedAt time.Time      `gorm:"column:transport_route_created_at;autoCreateTime" json:"transport_route_created_at"`
	TransportRouteUpdatedAt *time.Time     `gorm:"column:transport_route_updated_at;autoUpdateTime" json:"transport_route_updated_at,omitempty"`
	TransportRouteDeletedAt gorm.DeletedAt `gorm:"column:transport_route_deleted_at;index"          json:"transport_route_deleted_at,omitempty"`
}

func (TransportRouteModel) TableName() string { return "transport_routes" }
