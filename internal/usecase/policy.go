package usecase

import (
	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
)

// Action names an operation subject to authorization.
type Action string

const (
	ActionViewReservation    Action = "reservation:view"
	ActionCancelReservation  Action = "reservation:cancel"
	ActionConvertReservation Action = "reservation:convert"
	ActionSweepReservations  Action = "reservation:sweep"
	ActionViewOrder          Action = "order:view"
	ActionCancelOrder        Action = "order:cancel"
	ActionManageOrders       Action = "order:manage"
	ActionManageCatalog      Action = "catalog:manage"
	ActionManageUsers        Action = "user:manage"
)

// Resource describes what an action targets. OwnerID is zero for
// resources without an owner.
type Resource struct {
	OwnerID int64
}

// Policy decides whether actor may perform action on resource.
type Policy interface {
	Can(actor model.Actor, action Action, resource Resource) bool
}

// RolePolicy grants owners access to their own reservations and orders,
// lets a conseillere view and manage orders and gives a responsable full access.
type RolePolicy struct{}

// NewRolePolicy returns the role based policy.
func NewRolePolicy() Policy {
	return RolePolicy{}
}

func (RolePolicy) Can(actor model.Actor, action Action, resource Resource) bool {
	if actor.Role == model.RoleResponsable {
		return true
	}

	switch action {
	case ActionViewReservation, ActionViewOrder:
		return resource.OwnerID == actor.UserID || actor.Role == model.RoleConseillere
	case ActionCancelReservation, ActionConvertReservation, ActionCancelOrder:
		return resource.OwnerID == actor.UserID
	case ActionManageOrders, ActionSweepReservations:
		return actor.Role == model.RoleConseillere
	}
	return false
}

func authorizeOwner(policy Policy, actor model.Actor, action Action, ownerID int64) error {
	if !policy.Can(actor, action, Resource{OwnerID: ownerID}) {
		return domainErrors.ErrNotOwner
	}
	return nil
}

func authorizeStaff(policy Policy, actor model.Actor, action Action) error {
	if !policy.Can(actor, action, Resource{}) {
		return domainErrors.ErrForbidden
	}
	return nil
}
