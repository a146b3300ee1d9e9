package repository

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/store"
)

// PermissionCollection is the document collection holding permissions.
const PermissionCollection = "permissions"

// PermissionRepository persists Permission entities. The permission name is a
// natural key. Deletion must not be invoked in isolation: the service layer
// pairs it with RoleRepository.DetachPermission so no role keeps a reference
// to a deleted permission.
type PermissionRepository struct {
	permissions store.Collection
}

// NewPermissionRepository creates a new PermissionRepository on the given store.
func NewPermissionRepository(s store.Store) *PermissionRepository {
	return &PermissionRepository{permissions: s.Collection(PermissionCollection)}
}

// Create inserts a new permission and re-reads it by id to return the
// canonical stored value.
func (r *PermissionRepository) Create(ctx context.Context, permission models.Permission) (*models.Permission, error) {
	if permission.Name == "" {
		return nil, ErrPermissionNameEmpty
	}

	if _, err := r.FindByName(ctx, permission.Name); err == nil {
		return nil, ErrPermissionNameTaken
	} else if !errors.Is(err, ErrPermissionNotFound) {
		return nil, err
	}

	if err := r.permissions.InsertOne(ctx, permission); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrPermissionNameTaken
		}

		return nil, errors.Wrap(err, "failed to insert permission")
	}

	return r.FindByID(ctx, permission.ID)
}

// FindAll returns every permission.
func (r *PermissionRepository) FindAll(ctx context.Context) ([]models.Permission, error) {
	var permissions []models.Permission
	if err := r.permissions.Find(ctx, bson.M{}, &permissions); err != nil {
		return nil, errors.Wrap(err, "failed to find permissions")
	}

	return permissions, nil
}

// FindByID returns the permission with the given id.
func (r *PermissionRepository) FindByID(ctx context.Context, id string) (*models.Permission, error) {
	if id == "" {
		return nil, ErrPermissionIDEmpty
	}

	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByName returns the permission with the given name.
func (r *PermissionRepository) FindByName(ctx context.Context, name string) (*models.Permission, error) {
	if name == "" {
		return nil, ErrPermissionNameEmpty
	}

	return r.findOne(ctx, bson.M{"name": name})
}

// FindByIDVec returns the subset of permissions whose ids appear in ids.
func (r *PermissionRepository) FindByIDVec(ctx context.Context, ids []string) ([]models.Permission, error) {
	if len(ids) == 0 {
		return nil, ErrIDListEmpty
	}

	var permissions []models.Permission
	if err := r.permissions.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, &permissions); err != nil {
		return nil, errors.Wrap(err, "failed to find permissions by ids")
	}

	return permissions, nil
}

// Update re-checks name uniqueness excluding the permission's own id, then
// applies the update and returns the stored result.
func (r *PermissionRepository) Update(ctx context.Context, permission models.Permission) (*models.Permission, error) {
	if permission.ID == "" {
		return nil, ErrPermissionIDEmpty
	}

	if permission.Name == "" {
		return nil, ErrPermissionNameEmpty
	}

	var existing models.Permission

	err := r.permissions.FindOne(ctx, bson.M{"name": permission.Name, "_id": bson.M{"$ne": permission.ID}}, &existing)

	switch {
	case err == nil:
		return nil, ErrPermissionNameTaken
	case !errors.Is(err, store.ErrNoDocuments):
		return nil, errors.Wrap(err, "failed to check permission uniqueness")
	}

	update := bson.M{"$set": bson.M{
		"name":        permission.Name,
		"description": permission.Description,
	}}

	var updated models.Permission

	err = r.permissions.FindOneAndUpdate(ctx, bson.M{"_id": permission.ID}, update, &updated)

	switch {
	case errors.Is(err, store.ErrNoDocuments):
		return nil, ErrPermissionNotFound
	case errors.Is(err, store.ErrDuplicateKey):
		return nil, ErrPermissionNameTaken
	case err != nil:
		return nil, errors.Wrap(err, "failed to update permission")
	}

	return &updated, nil
}

// Delete removes the permission with the given id. Deleting an absent
// permission is not an error.
func (r *PermissionRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrPermissionIDEmpty
	}

	return errors.Wrap(r.permissions.DeleteOne(ctx, bson.M{"_id": id}), "failed to delete permission")
}

// Search returns every permission whose name or description contains text,
// case-insensitively.
func (r *PermissionRepository) Search(ctx context.Context, text string) ([]models.Permission, error) {
	pattern := bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}

	filter := bson.M{"$or": []bson.M{
		{"name": pattern},
		{"description": pattern},
	}}

	var permissions []models.Permission
	if err := r.permissions.Find(ctx, filter, &permissions); err != nil {
		return nil, errors.Wrap(err, "failed to search permissions")
	}

	return permissions, nil
}

func (r *PermissionRepository) findOne(ctx context.Context, filter bson.M) (*models.Permission, error) {
	var permission models.Permission

	err := r.permissions.FindOne(ctx, filter, &permission)

	switch {
	case errors.Is(err, store.ErrNoDocuments):
		return nil, ErrPermissionNotFound
	case err != nil:
		return nil, errors.Wrap(err, "failed to find permission")
	}

	return &permission, nil
}
