package store

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// Memory is an in-process document store used by tests. It keeps documents as
// bson maps and evaluates the filter subset the repositories rely on:
// equality (including array membership), $in, $ne, $regex and $or.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
	uniqueKeys  map[string][]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string][]bson.M),
		uniqueKeys:  make(map[string][]string),
	}
}

// Collection returns the named collection, creating it on first use.
func (m *Memory) Collection(name string) Collection {
	return &memoryCollection{store: m, name: name}
}

// EnsureUniqueIndexes registers unique single-field constraints for the named
// collection, mirroring Mongo.EnsureUniqueIndexes.
func (m *Memory) EnsureUniqueIndexes(_ context.Context, collection string, fields ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.uniqueKeys[collection] = append(m.uniqueKeys[collection], fields...)

	return nil
}

type memoryCollection struct {
	store *Memory
	name  string
}

func (c *memoryCollection) Find(ctx context.Context, filter bson.M, results any) error {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	matched := make([]bson.M, 0)

	for _, doc := range c.store.collections[c.name] {
		ok, err := matchDocument(doc, filter)
		if err != nil {
			return err
		}

		if ok {
			matched = append(matched, doc)
		}
	}

	return decodeAll(matched, results)
}

func (c *memoryCollection) FindOne(ctx context.Context, filter bson.M, result any) error {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	for _, doc := range c.store.collections[c.name] {
		ok, err := matchDocument(doc, filter)
		if err != nil {
			return err
		}

		if ok {
			return decodeDocument(doc, result)
		}
	}

	return ErrNoDocuments
}

func (c *memoryCollection) InsertOne(ctx context.Context, document any) error {
	doc, err := encodeDocument(document)
	if err != nil {
		return err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, existing := range c.store.collections[c.name] {
		if valuesEqual(existing["_id"], doc["_id"]) {
			return errors.Wrap(ErrDuplicateKey, "_id")
		}
	}

	if err := c.checkUniqueKeysLocked(doc, doc["_id"]); err != nil {
		return err
	}

	c.store.collections[c.name] = append(c.store.collections[c.name], doc)

	return nil
}

func (c *memoryCollection) FindOneAndUpdate(ctx context.Context, filter, update bson.M, result any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for i, doc := range c.store.collections[c.name] {
		ok, err := matchDocument(doc, filter)
		if err != nil {
			return err
		}

		if !ok {
			continue
		}

		merged, err := applyUpdate(doc, update)
		if err != nil {
			return err
		}

		// round-trip through bson so $set values keep the stored
		// representation (e.g. []string becomes bson.A) and array
		// membership filters keep matching the updated document
		updated, err := encodeDocument(merged)
		if err != nil {
			return err
		}

		if err := c.checkUniqueKeysLocked(updated, doc["_id"]); err != nil {
			return err
		}

		c.store.collections[c.name][i] = updated

		return decodeDocument(updated, result)
	}

	return ErrNoDocuments
}

func (c *memoryCollection) DeleteOne(ctx context.Context, filter bson.M) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	docs := c.store.collections[c.name]

	for i, doc := range docs {
		ok, err := matchDocument(doc, filter)
		if err != nil {
			return err
		}

		if ok {
			c.store.collections[c.name] = append(docs[:i], docs[i+1:]...)

			return nil
		}
	}

	return nil
}

// checkUniqueKeysLocked verifies candidate against the registered unique
// constraints, ignoring the document identified by selfID.
func (c *memoryCollection) checkUniqueKeysLocked(candidate bson.M, selfID any) error {
	for _, field := range c.store.uniqueKeys[c.name] {
		value, present := candidate[field]
		if !present {
			continue
		}

		for _, existing := range c.store.collections[c.name] {
			if valuesEqual(existing["_id"], selfID) {
				continue
			}

			if valuesEqual(existing[field], value) {
				return errors.Wrap(ErrDuplicateKey, field)
			}
		}
	}

	return nil
}

// applyUpdate supports the $set operator, which is the only one the
// repositories issue.
func applyUpdate(doc, update bson.M) (bson.M, error) {
	updated := bson.M{}
	for k, v := range doc {
		updated[k] = v
	}

	for operator, value := range update {
		if operator != "$set" {
			return nil, fmt.Errorf("memory store: unsupported update operator %q", operator)
		}

		fields, err := toDocument(value)
		if err != nil {
			return nil, err
		}

		for k, v := range fields {
			updated[k] = v
		}
	}

	return updated, nil
}

func matchDocument(doc, filter bson.M) (bool, error) {
	for field, condition := range filter {
		if field == "$or" {
			ok, err := matchAny(doc, condition)
			if err != nil || !ok {
				return false, err
			}

			continue
		}

		ok, err := matchField(doc[field], condition)
		if err != nil || !ok {
			return false, err
		}
	}

	return true, nil
}

func matchAny(doc bson.M, condition any) (bool, error) {
	branches := reflect.ValueOf(condition)
	if branches.Kind() != reflect.Slice {
		return false, fmt.Errorf("memory store: $or expects a slice, got %T", condition)
	}

	for i := 0; i < branches.Len(); i++ {
		branch, err := toDocument(branches.Index(i).Interface())
		if err != nil {
			return false, err
		}

		ok, err := matchDocument(doc, branch)
		if err != nil {
			return false, err
		}

		if ok {
			return true, nil
		}
	}

	return false, nil
}

func matchField(value, condition any) (bool, error) {
	operators, err := toDocument(condition)
	if err == nil && hasOperator(operators) {
		return matchOperators(value, operators)
	}

	return containsOrEquals(value, condition), nil
}

func matchOperators(value any, operators bson.M) (bool, error) {
	for operator, operand := range operators {
		switch operator {
		case "$in":
			if !isMember(operand, value) {
				return false, nil
			}
		case "$ne":
			if containsOrEquals(value, operand) {
				return false, nil
			}
		case "$regex":
			pattern, _ := operand.(string)

			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				return false, fmt.Errorf("memory store: bad $regex %q: %w", pattern, err)
			}

			text, ok := value.(string)
			if !ok || !re.MatchString(text) {
				return false, nil
			}
		case "$options":
			// case-insensitivity is already applied with the $regex operator
		default:
			return false, fmt.Errorf("memory store: unsupported operator %q", operator)
		}
	}

	return true, nil
}

func hasOperator(doc bson.M) bool {
	for key := range doc {
		if len(key) > 0 && key[0] == '$' {
			return true
		}
	}

	return false
}

// containsOrEquals mirrors mongo equality semantics: a filter value matches an
// array field when any element equals it.
func containsOrEquals(value, condition any) bool {
	if list, ok := value.(bson.A); ok {
		for _, element := range list {
			if valuesEqual(element, condition) {
				return true
			}
		}
	}

	return valuesEqual(value, condition)
}

func isMember(operand, value any) bool {
	list := reflect.ValueOf(operand)
	if list.Kind() != reflect.Slice {
		return false
	}

	for i := 0; i < list.Len(); i++ {
		if containsOrEquals(value, list.Index(i).Interface()) {
			return true
		}
	}

	return false
}

func valuesEqual(a, b any) bool {
	if a == b {
		return true
	}

	return reflect.DeepEqual(a, b)
}

// toDocument converts condition maps (bson.M, bson.D, map[string]any) into
// bson.M. Non-map values return an error.
func toDocument(value any) (bson.M, error) {
	switch v := value.(type) {
	case bson.M:
		return v, nil
	case map[string]any:
		return bson.M(v), nil
	case bson.D:
		doc := bson.M{}
		for _, e := range v {
			doc[e.Key] = e.Value
		}

		return doc, nil
	default:
		return nil, fmt.Errorf("memory store: expected a document, got %T", value)
	}
}

// encodeDocument deep-copies an entity into its stored bson representation.
func encodeDocument(document any) (bson.M, error) {
	data, err := bson.Marshal(document)
	if err != nil {
		return nil, errors.Wrap(err, "memory store: failed to encode document")
	}

	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "memory store: failed to decode document")
	}

	return doc, nil
}

func decodeDocument(doc bson.M, result any) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "memory store: failed to encode document")
	}

	return errors.Wrap(bson.Unmarshal(data, result), "memory store: failed to decode document")
}

func decodeAll(docs []bson.M, results any) error {
	out := reflect.ValueOf(results)
	if out.Kind() != reflect.Ptr || out.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("memory store: results must be a pointer to a slice, got %T", results)
	}

	slice := out.Elem()
	slice.Set(reflect.MakeSlice(slice.Type(), 0, len(docs)))

	for _, doc := range docs {
		element := reflect.New(slice.Type().Elem())
		if err := decodeDocument(doc, element.Interface()); err != nil {
			return err
		}

		slice.Set(reflect.Append(slice, element.Elem()))
	}

	return nil
}
