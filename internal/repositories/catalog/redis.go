package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
	redisclient "github.com/KirkDiggler/loadout-efficiency/internal/redis"
)

const (
	// Key pattern: catalog:{type}:{id}, with the IDs of each type in the
	// set catalog:index:{type}
	keyPrefix      = "catalog:"
	indexKeyPrefix = "catalog:index:"

	// Error messages
	errIDEmpty = "ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis catalog repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed catalog repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) PutModel(ctx context.Context, input PutModelInput) (*PutModelOutput, error) {
	if input.Model == nil {
		return nil, errors.InvalidArgument("model cannot be nil")
	}
	if err := r.put(ctx, input.Model, input.Model.Definition()); err != nil {
		return nil, err
	}
	return &PutModelOutput{ID: input.Model.GetID()}, nil
}

func (r *redisRepository) GetModel(ctx context.Context, input GetModelInput) (*GetModelOutput, error) {
	var def loadout.ModelDefinition
	if err := r.get(ctx, loadout.EntityTypeModel, input.ID, &def); err != nil {
		return nil, err
	}

	model, err := def.Build()
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInternal, "stored model %s is invalid", input.ID)
	}
	return &GetModelOutput{Model: model}, nil
}

func (r *redisRepository) ListModels(ctx context.Context, _ ListModelsInput) (*ListModelsOutput, error) {
	payloads, err := r.list(ctx, loadout.EntityTypeModel)
	if err != nil {
		return nil, err
	}

	models := make([]*loadout.Model, 0, len(payloads))
	for _, payload := range payloads {
		var def loadout.ModelDefinition
		if err := json.Unmarshal(payload, &def); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal model")
		}
		model, err := def.Build()
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeInternal, "stored model %s is invalid", def.Name)
		}
		models = append(models, model)
	}
	return &ListModelsOutput{Models: models}, nil
}

func (r *redisRepository) PutWeapon(ctx context.Context, input PutWeaponInput) (*PutWeaponOutput, error) {
	if input.Weapon == nil {
		return nil, errors.InvalidArgument("weapon cannot be nil")
	}
	if err := r.put(ctx, input.Weapon, input.Weapon.Definition()); err != nil {
		return nil, err
	}
	return &PutWeaponOutput{ID: input.Weapon.GetID()}, nil
}

func (r *redisRepository) GetWeapon(ctx context.Context, input GetWeaponInput) (*GetWeaponOutput, error) {
	var def loadout.ItemDefinition
	if err := r.get(ctx, loadout.EntityTypeWeapon, input.ID, &def); err != nil {
		return nil, err
	}

	weapon, err := def.BuildWeapon()
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInternal, "stored weapon %s is invalid", input.ID)
	}
	return &GetWeaponOutput{Weapon: weapon}, nil
}

func (r *redisRepository) ListWeapons(ctx context.Context, _ ListWeaponsInput) (*ListWeaponsOutput, error) {
	payloads, err := r.list(ctx, loadout.EntityTypeWeapon)
	if err != nil {
		return nil, err
	}

	weapons := make([]*loadout.Weapon, 0, len(payloads))
	for _, payload := range payloads {
		var def loadout.ItemDefinition
		if err := json.Unmarshal(payload, &def); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal weapon")
		}
		weapon, err := def.BuildWeapon()
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeInternal, "stored weapon %s is invalid", def.Name)
		}
		weapons = append(weapons, weapon)
	}
	return &ListWeaponsOutput{Weapons: weapons}, nil
}

func (r *redisRepository) PutLoadout(ctx context.Context, input PutLoadoutInput) (*PutLoadoutOutput, error) {
	def := input.Loadout
	if def.Model == "" {
		return nil, errors.InvalidArgument("loadout model cannot be empty")
	}
	if len(def.Weapons) == 0 {
		return nil, errors.InvalidArgument("loadout needs at least one weapon").WithReason(loadout.ReasonInvalidWeapon)
	}

	if err := r.requireExists(ctx, loadout.EntityTypeModel, def.Model); err != nil {
		return nil, err
	}
	for _, weapon := range def.Weapons {
		if err := r.requireExists(ctx, loadout.EntityTypeWeapon, weapon); err != nil {
			return nil, err
		}
	}

	if err := r.store(ctx, loadout.EntityTypeLoadout, def.ID(), def); err != nil {
		return nil, err
	}
	return &PutLoadoutOutput{ID: def.ID()}, nil
}

func (r *redisRepository) GetLoadout(ctx context.Context, input GetLoadoutInput) (*GetLoadoutOutput, error) {
	var def loadout.LoadoutDefinition
	if err := r.get(ctx, loadout.EntityTypeLoadout, input.ID, &def); err != nil {
		return nil, err
	}
	return &GetLoadoutOutput{Loadout: def}, nil
}

func (r *redisRepository) ListLoadouts(ctx context.Context, _ ListLoadoutsInput) (*ListLoadoutsOutput, error) {
	payloads, err := r.list(ctx, loadout.EntityTypeLoadout)
	if err != nil {
		return nil, err
	}

	loadouts := make([]loadout.LoadoutDefinition, 0, len(payloads))
	for _, payload := range payloads {
		var def loadout.LoadoutDefinition
		if err := json.Unmarshal(payload, &def); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal loadout")
		}
		loadouts = append(loadouts, def)
	}
	return &ListLoadoutsOutput{Loadouts: loadouts}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	deleted, err := r.client.Del(ctx, GetKey(input.Type, input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete %s %s", input.Type, input.ID)
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("%s %s not found", input.Type, input.ID)
	}

	if err := r.client.SRem(ctx, GetIndexKey(input.Type), input.ID).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to remove %s %s from index", input.Type, input.ID)
	}
	return &DeleteOutput{}, nil
}

// put stores the definition of an entity under its type and ID
func (r *redisRepository) put(ctx context.Context, entity core.Entity, def interface{}) error {
	if entity.GetID() == "" {
		return errors.InvalidArgumentf("%s name cannot be empty", entity.GetType())
	}
	return r.store(ctx, entity.GetType(), entity.GetID(), def)
}

func (r *redisRepository) store(ctx context.Context, entityType, id string, def interface{}) error {
	data, err := json.Marshal(def)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s %s", entityType, id)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, GetKey(entityType, id), data, 0)
	pipe.SAdd(ctx, GetIndexKey(entityType), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "failed to store %s %s", entityType, id)
	}
	return nil
}

func (r *redisRepository) get(ctx context.Context, entityType, id string, into interface{}) error {
	if id == "" {
		return errors.InvalidArgument(errIDEmpty)
	}

	result, err := r.client.Get(ctx, GetKey(entityType, id)).Result()
	if err != nil {
		if err == redis.Nil {
			return errors.NotFoundf("%s %s not found", entityType, id).WithMeta(entityType, id)
		}
		return errors.Wrapf(err, "failed to get %s %s", entityType, id)
	}

	if err := json.Unmarshal([]byte(result), into); err != nil {
		return errors.Wrapf(err, "failed to unmarshal %s %s", entityType, id)
	}
	return nil
}

// list returns the stored payloads of a type ordered by ID. IDs left in the
// index without a payload are skipped.
func (r *redisRepository) list(ctx context.Context, entityType string) ([][]byte, error) {
	ids, err := r.client.SMembers(ctx, GetIndexKey(entityType)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s index", entityType)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Strings(ids)

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, GetKey(entityType, id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %s entries", entityType)
	}

	payloads := make([][]byte, 0, len(values))
	for _, value := range values {
		if s, ok := value.(string); ok {
			payloads = append(payloads, []byte(s))
		}
	}
	return payloads, nil
}

func (r *redisRepository) requireExists(ctx context.Context, entityType, id string) error {
	exists, err := r.client.Exists(ctx, GetKey(entityType, id)).Result()
	if err != nil {
		return errors.Wrapf(err, "failed to check %s existence", entityType)
	}
	if exists == 0 {
		return errors.NotFoundf("%s %s not found", entityType, id).WithMeta(entityType, id)
	}
	return nil
}

func validateType(entityType string) error {
	switch entityType {
	case loadout.EntityTypeModel, loadout.EntityTypeWeapon, loadout.EntityTypeLoadout:
		return nil
	default:
		return errors.InvalidArgumentf("unknown catalog type %q", entityType)
	}
}

// GetKey returns the Redis key of a catalog entry
// Exposed for testing purposes
func GetKey(entityType, id string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, entityType, id)
}

// GetIndexKey returns the Redis key of the set of IDs of a type
func GetIndexKey(entityType string) string {
	return indexKeyPrefix + entityType
}
