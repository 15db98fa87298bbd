// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/repositories/catalog"
	catalogmock "github.com/KirkDiggler/loadout-efficiency/internal/repositories/catalog/mock"
)

// ExpectModelGet sets up a single lookup of model by its ID
func ExpectModelGet(ctx context.Context, mockRepo *catalogmock.MockRepository, model *loadout.Model) *gomock.Call {
	return mockRepo.EXPECT().
		GetModel(ctx, catalog.GetModelInput{ID: model.GetID()}).
		Return(&catalog.GetModelOutput{Model: model}, nil)
}

// ExpectWeaponGet sets up a single lookup of weapon by its ID
func ExpectWeaponGet(ctx context.Context, mockRepo *catalogmock.MockRepository, weapon *loadout.Weapon) *gomock.Call {
	return mockRepo.EXPECT().
		GetWeapon(ctx, catalog.GetWeaponInput{ID: weapon.GetID()}).
		Return(&catalog.GetWeaponOutput{Weapon: weapon}, nil)
}

// ExpectCatalogGetError sets up a failing lookup of an ID of the given type
func ExpectCatalogGetError(ctx context.Context, mockRepo *catalogmock.MockRepository, entityType, id string, err error) *gomock.Call {
	switch entityType {
	case loadout.EntityTypeWeapon:
		return mockRepo.EXPECT().
			GetWeapon(ctx, catalog.GetWeaponInput{ID: id}).
			Return(nil, err)
	case loadout.EntityTypeLoadout:
		return mockRepo.EXPECT().
			GetLoadout(ctx, catalog.GetLoadoutInput{ID: id}).
			Return(nil, err)
	default:
		return mockRepo.EXPECT().
			GetModel(ctx, catalog.GetModelInput{ID: id}).
			Return(nil, err)
	}
}

// ExpectLoadoutResolution sets up the lookups needed to resolve each loadout:
// every model and weapon is fetched once, as a per-request cache would.
func ExpectLoadoutResolution(ctx context.Context, mockRepo *catalogmock.MockRepository, loadouts ...*loadout.Loadout) {
	models := make(map[string]bool)
	weapons := make(map[string]bool)

	for _, l := range loadouts {
		if !models[l.Model.GetID()] {
			models[l.Model.GetID()] = true
			ExpectModelGet(ctx, mockRepo, l.Model)
		}
		for _, weapon := range l.Weapons {
			if !weapons[weapon.GetID()] {
				weapons[weapon.GetID()] = true
				ExpectWeaponGet(ctx, mockRepo, weapon)
			}
		}
	}
}

// ExpectLoadoutList sets up a listing returning the definitions of loadouts
func ExpectLoadoutList(ctx context.Context, mockRepo *catalogmock.MockRepository, loadouts ...*loadout.Loadout) *gomock.Call {
	defs := make([]loadout.LoadoutDefinition, 0, len(loadouts))
	for _, l := range loadouts {
		defs = append(defs, l.Definition())
	}
	return mockRepo.EXPECT().
		ListLoadouts(ctx, catalog.ListLoadoutsInput{}).
		Return(&catalog.ListLoadoutsOutput{Loadouts: defs}, nil)
}
