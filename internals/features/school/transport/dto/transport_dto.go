// internals/features/school/transport/dto/transport_dto.go
package dto

import (
	"github.com/google/uuid"

	m "shiksha_backend/internals/features/school/transport/model"
)

/* =============== REQUESTS =============== */

type CreateRouteRequest struct {
	TransportRouteBranchID *uuid.UUID `json:"transport_route_branch_id" validate:"omitempty"`

	TransportRouteName          string  `json:"transport_route_name"           validate:"required,min=2"`
	TransportRouteVehicleNumber *string `json:"transport_route_vehicle_number" validate:"omitempty,min=2,max=20"`
}

func (r CreateRouteRequest) ToModel() *m.TransportRouteModel {
	out := &m.TransportRouteModel{
		TransportRouteName:          r.TransportRouteName,
		TransportRouteVehicleNumber: r.TransportRouteVehicleNumber,
	}
	if r.TransportRouteBranchID != nil {
		out.TransportRouteBranchID = *r.TransportRouteBranchID
	}
	return out
}

// CreateStopRequest carries no route id; the stop is always created under
// the route named in the URL path.
type CreateStopRequest struct {
	TransportStopBranchID *uuid.UUID `json:"transport_stop_branch_id" validate:"omitempty"`

	TransportStopName          string `json:"transport_stop_name"           validate:"required,min=2"`
	TransportStopMonthlyCharge int    `json:"transport_stop_monthly_charge" validate:"gte=0"`
}

func (r CreateStopRequest) ToModel(routeID uuid.UUID) *m.TransportStopModel {
	out := &m.TransportStopModel{
		TransportStopRouteID:       routeID,
		TransportStopName:          r.TransportStopName,
		TransportStopMonthlyCharge: r.TransportStopMonthlyCharge,
	}
	if r.TransportStopBranchID != nil {
		out.TransportStopBranchID = *r.TransportStopBranchID
	}
	return out
}

type AssignTransportRequest struct {
	RouteID   uuid.UUID `json:"route_id"   validate:"required"`
	StopID    uuid.UUID `json:"stop_id"    validate:"required"`
	StudentID uuid.UUID `json:"student_id" validate:"required"`
}
