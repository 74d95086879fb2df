package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
)

func TestRolePolicyCan(t *testing.T) {
	policy := NewRolePolicy()
	owned := Resource{OwnerID: buyer.UserID}

	cases := []struct {
		name     string
		actor    model.Actor
		action   Action
		resource Resource
		want     bool
	}{
		{"owner cancels reservation", buyer, ActionCancelReservation, owned, true},
		{"stranger cancels reservation", other, ActionCancelReservation, owned, false},
		{"owner converts reservation", buyer, ActionConvertReservation, owned, true},
		{"owner views order", buyer, ActionViewOrder, owned, true},
		{"stranger views order", other, ActionViewOrder, owned, false},
		{"advisor views order", advisor, ActionViewOrder, owned, true},
		{"advisor views reservation", advisor, ActionViewReservation, owned, true},
		{"advisor cancels foreign order", advisor, ActionCancelOrder, owned, false},
		{"advisor manages orders", advisor, ActionManageOrders, Resource{}, true},
		{"advisor sweeps", advisor, ActionSweepReservations, Resource{}, true},
		{"advisor manages catalog", advisor, ActionManageCatalog, Resource{}, false},
		{"advisor manages users", advisor, ActionManageUsers, Resource{}, false},
		{"client manages orders", buyer, ActionManageOrders, Resource{}, false},
		{"manager cancels foreign order", manager, ActionCancelOrder, owned, true},
		{"manager manages catalog", manager, ActionManageCatalog, Resource{}, true},
		{"manager manages users", manager, ActionManageUsers, Resource{}, true},
		{"unknown action", buyer, Action("vehicle:teleport"), owned, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Can(tc.actor, tc.action, tc.resource); got != tc.want {
				t.Fatalf("Can() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAuthorizeHelpers(t *testing.T) {
	policy := NewRolePolicy()

	if err := authorizeOwner(policy, other, ActionCancelOrder, buyer.UserID); !errors.Is(err, domainErrors.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := authorizeOwner(policy, buyer, ActionCancelOrder, buyer.UserID); err != nil {
		t.Fatalf("owner should be allowed: %v", err)
	}
	if err := authorizeStaff(policy, buyer, ActionManageCatalog); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := authorizeStaff(policy, manager, ActionManageCatalog); err != nil {
		t.Fatalf("manager should be allowed: %v", err)
	}
}
