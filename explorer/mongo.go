package explorer

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoIntrospector reads collection metadata and documents for one MongoDB
// database.
type MongoIntrospector struct {
	db *mongo.Database
}

// NewMongoIntrospector creates an introspector over the given database.
func NewMongoIntrospector(db *mongo.Database) *MongoIntrospector {
	return &MongoIntrospector{db: db}
}

// Collections lists collection names in the database, sorted.
func (mi *MongoIntrospector) Collections(ctx context.Context) ([]string, error) {
	names, err := mi.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Fields samples one document from the collection and reports its top-level
// fields with their BSON types. An empty collection yields no fields rather
// than an error.
func (mi *MongoIntrospector) Fields(ctx context.Context, collection string) ([]Field, error) {
	var doc bson.M
	err := mi.db.Collection(collection).FindOne(ctx, bson.D{}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []Field{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sample collection %s: %w", collection, err)
	}

	fields := make([]Field, 0, len(doc))
	for name, value := range doc {
		fields = append(fields, Field{Name: name, BSONType: bsonTypeName(value)})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields, nil
}

// Indexes lists the collection's indexes.
func (mi *MongoIntrospector) Indexes(ctx context.Context, collection string) ([]Index, error) {
	cursor, err := mi.db.Collection(collection).Indexes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes for %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var indexes []Index
	for cursor.Next(ctx) {
		var spec struct {
			Name   string `bson:"name"`
			Key    bson.D `bson:"key"`
			Unique bool   `bson:"unique"`
		}
		if err := cursor.Decode(&spec); err != nil {
			return nil, fmt.Errorf("failed to decode index spec: %w", err)
		}
		idx := Index{Name: spec.Name, Unique: spec.Unique}
		for _, elem := range spec.Key {
			idx.Columns = append(idx.Columns, elem.Key)
		}
		indexes = append(indexes, idx)
	}
	return indexes, cursor.Err()
}

// Documents pages through a collection's documents.
func (mi *MongoIntrospector) Documents(ctx context.Context, collection string, limit, skip int) ([]bson.M, error) {
	opts := options.Find().SetLimit(int64(limit)).SetSkip(int64(skip))
	cursor, err := mi.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find documents in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes one document by its _id. Returns the deleted count.
func (mi *MongoIntrospector) DeleteDocument(ctx context.Context, collection string, id any) (int64, error) {
	result, err := mi.db.Collection(collection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete document: %w", err)
	}
	return result.DeletedCount, nil
}

func bsonTypeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int32, int64, int:
		return "int"
	case float64:
		return "double"
	case bson.M, bson.D:
		return "object"
	case bson.A:
		return "array"
	case bson.ObjectID:
		return "objectId"
	case bson.DateTime:
		return "date"
	default:
		return fmt.Sprintf("%T", value)
	}
}
