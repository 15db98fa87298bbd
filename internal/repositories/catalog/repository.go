// Package catalog provides the interface for storing models, weapons and
// loadouts
package catalog

//go:generate mockgen -destination=mock/mock_repository.go -package=catalogmock github.com/KirkDiggler/loadout-efficiency/internal/repositories/catalog Repository

import (
	"context"

	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
)

// Repository defines the interface for catalog persistence
type Repository interface {
	// PutModel creates or replaces a model, keyed by its name
	// Returns errors.InvalidArgument for a nil or unnamed model
	PutModel(ctx context.Context, input PutModelInput) (*PutModelOutput, error)

	// GetModel retrieves a model
	// Returns errors.NotFound if the model does not exist
	GetModel(ctx context.Context, input GetModelInput) (*GetModelOutput, error)

	// ListModels returns every model ordered by name
	ListModels(ctx context.Context, input ListModelsInput) (*ListModelsOutput, error)

	// PutWeapon creates or replaces a weapon, keyed by its name
	PutWeapon(ctx context.Context, input PutWeaponInput) (*PutWeaponOutput, error)

	// GetWeapon retrieves a weapon
	// Returns errors.NotFound if the weapon does not exist
	GetWeapon(ctx context.Context, input GetWeaponInput) (*GetWeaponOutput, error)

	// ListWeapons returns every weapon ordered by name
	ListWeapons(ctx context.Context, input ListWeaponsInput) (*ListWeaponsOutput, error)

	// PutLoadout stores a loadout
	// Returns errors.NotFound if its model or any weapon is not stored
	PutLoadout(ctx context.Context, input PutLoadoutInput) (*PutLoadoutOutput, error)

	// GetLoadout retrieves a loadout definition
	// Returns errors.NotFound if the loadout does not exist
	GetLoadout(ctx context.Context, input GetLoadoutInput) (*GetLoadoutOutput, error)

	// ListLoadouts returns every loadout definition ordered by ID
	ListLoadouts(ctx context.Context, input ListLoadoutsInput) (*ListLoadoutsOutput, error)

	// Delete removes an entry of any kind
	// Returns errors.NotFound if nothing is stored under the ID
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// PutModelInput defines the input for storing a model
type PutModelInput struct {
	Model *loadout.Model
}

// PutModelOutput defines the output for storing a model
type PutModelOutput struct {
	ID string
}

// GetModelInput defines the input for getting a model
type GetModelInput struct {
	ID string
}

// GetModelOutput defines the output for getting a model
type GetModelOutput struct {
	Model *loadout.Model
}

// ListModelsInput defines the input for listing models
type ListModelsInput struct{}

// ListModelsOutput defines the output for listing models
type ListModelsOutput struct {
	Models []*loadout.Model
}

// PutWeaponInput defines the input for storing a weapon
type PutWeaponInput struct {
	Weapon *loadout.Weapon
}

// PutWeaponOutput defines the output for storing a weapon
type PutWeaponOutput struct {
	ID string
}

// GetWeaponInput defines the input for getting a weapon
type GetWeaponInput struct {
	ID string
}

// GetWeaponOutput defines the output for getting a weapon
type GetWeaponOutput struct {
	Weapon *loadout.Weapon
}

// ListWeaponsInput defines the input for listing weapons
type ListWeaponsInput struct{}

// ListWeaponsOutput defines the output for listing weapons
type ListWeaponsOutput struct {
	Weapons []*loadout.Weapon
}

// PutLoadoutInput defines the input for storing a loadout
type PutLoadoutInput struct {
	Loadout loadout.LoadoutDefinition
}

// PutLoadoutOutput defines the output for storing a loadout
type PutLoadoutOutput struct {
	ID string
}

// GetLoadoutInput defines the input for getting a loadout
type GetLoadoutInput struct {
	ID string
}

// GetLoadoutOutput defines the output for getting a loadout
type GetLoadoutOutput struct {
	Loadout loadout.LoadoutDefinition
}

// ListLoadoutsInput defines the input for listing loadouts
type ListLoadoutsInput struct{}

// ListLoadoutsOutput defines the output for listing loadouts
type ListLoadoutsOutput struct {
	Loadouts []loadout.LoadoutDefinition
}

// DeleteInput defines the input for deleting an entry
type DeleteInput struct {
	// Type is one of loadout.EntityTypeModel, EntityTypeWeapon or
	// EntityTypeLoadout
	Type string
	ID   string
}

// DeleteOutput defines the output for deleting an entry
type DeleteOutput struct{}
