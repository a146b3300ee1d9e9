package repository

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/store"
)

// RoleCollection is the document collection holding roles.
const RoleCollection = "roles"

// RoleRepository persists Role entities. The role name is a natural key.
type RoleRepository struct {
	roles store.Collection
}

// NewRoleRepository creates a new RoleRepository on the given store.
func NewRoleRepository(s store.Store) *RoleRepository {
	return &RoleRepository{roles: s.Collection(RoleCollection)}
}

// Create inserts a new role and re-reads it by id to return the canonical
// stored value.
func (r *RoleRepository) Create(ctx context.Context, role models.Role) (*models.Role, error) {
	if role.Name == "" {
		return nil, ErrRoleNameEmpty
	}

	if _, err := r.FindByName(ctx, role.Name); err == nil {
		return nil, ErrRoleNameTaken
	} else if !errors.Is(err, ErrRoleNotFound) {
		return nil, err
	}

	if err := r.roles.InsertOne(ctx, role); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrRoleNameTaken
		}

		return nil, errors.Wrap(err, "failed to insert role")
	}

	return r.FindByID(ctx, role.ID)
}

// FindAll returns every role.
func (r *RoleRepository) FindAll(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := r.roles.Find(ctx, bson.M{}, &roles); err != nil {
		return nil, errors.Wrap(err, "failed to find roles")
	}

	return roles, nil
}

// FindByID returns the role with the given id.
func (r *RoleRepository) FindByID(ctx context.Context, id string) (*models.Role, error) {
	if id == "" {
		return nil, ErrRoleIDEmpty
	}

	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByName returns the role with the given name.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	return r.findOne(ctx, bson.M{"name": name})
}

// FindByIDVec returns the subset of roles whose ids appear in ids.
func (r *RoleRepository) FindByIDVec(ctx context.Context, ids []string) ([]models.Role, error) {
	if len(ids) == 0 {
		return nil, ErrIDListEmpty
	}

	var roles []models.Role
	if err := r.roles.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, &roles); err != nil {
		return nil, errors.Wrap(err, "failed to find roles by ids")
	}

	return roles, nil
}

// Update re-checks name uniqueness excluding the role's own id, then applies
// the update and returns the stored result.
func (r *RoleRepository) Update(ctx context.Context, role models.Role) (*models.Role, error) {
	if role.ID == "" {
		return nil, ErrRoleIDEmpty
	}

	if role.Name == "" {
		return nil, ErrRoleNameEmpty
	}

	var existing models.Role

	err := r.roles.FindOne(ctx, bson.M{"name": role.Name, "_id": bson.M{"$ne": role.ID}}, &existing)

	switch {
	case err == nil:
		return nil, ErrRoleNameTaken
	case !errors.Is(err, store.ErrNoDocuments):
		return nil, errors.Wrap(err, "failed to check role uniqueness")
	}

	update := bson.M{"$set": bson.M{
		"name":        role.Name,
		"permissions": role.Permissions,
	}}

	var updated models.Role

	err = r.roles.FindOneAndUpdate(ctx, bson.M{"_id": role.ID}, update, &updated)

	switch {
	case errors.Is(err, store.ErrNoDocuments):
		return nil, ErrRoleNotFound
	case errors.Is(err, store.ErrDuplicateKey):
		return nil, ErrRoleNameTaken
	case err != nil:
		return nil, errors.Wrap(err, "failed to update role")
	}

	return &updated, nil
}

// Delete removes the role with the given id. Deleting an absent role is not
// an error.
func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrRoleIDEmpty
	}

	return errors.Wrap(r.roles.DeleteOne(ctx, bson.M{"_id": id}), "failed to delete role")
}

// Search returns every role whose name contains text, case-insensitively.
func (r *RoleRepository) Search(ctx context.Context, text string) ([]models.Role, error) {
	filter := bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}}

	var roles []models.Role
	if err := r.roles.Find(ctx, filter, &roles); err != nil {
		return nil, errors.Wrap(err, "failed to search roles")
	}

	return roles, nil
}

// DetachPermission removes the given permission id from every role that
// references it. Called as part of permission deletion so that no role keeps
// a dangling permission reference.
func (r *RoleRepository) DetachPermission(ctx context.Context, permissionID string) error {
	if permissionID == "" {
		return ErrPermissionIDEmpty
	}

	var affected []models.Role
	if err := r.roles.Find(ctx, bson.M{"permissions": permissionID}, &affected); err != nil {
		return errors.Wrap(err, "failed to find roles referencing permission")
	}

	for _, role := range affected {
		kept := make([]string, 0, len(role.Permissions))

		for _, id := range role.Permissions {
			if id != permissionID {
				kept = append(kept, id)
			}
		}

		update := bson.M{"$set": bson.M{"permissions": kept}}

		var updated models.Role
		if err := r.roles.FindOneAndUpdate(ctx, bson.M{"_id": role.ID}, update, &updated); err != nil {
			return errors.Wrapf(err, "failed to detach permission from role %s", role.ID)
		}
	}

	return nil
}

func (r *RoleRepository) findOne(ctx context.Context, filter bson.M) (*models.Role, error) {
	var role models.Role

	err := r.roles.FindOne(ctx, filter, &role)

	switch {
	case errors.Is(err, store.ErrNoDocuments):
		return nil, ErrRoleNotFound
	case err != nil:
		return nil, errors.Wrap(err, "failed to find role")
	}

	return &role, nil
}
