package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	Database *mongo.Database
}

func NewMongoDBIndexer(ctx context.Context, database *mongo.Database) *MongoDBIndexer {
	return &MongoDBIndexer{
		ctx:      ctx,
		Database: database,
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

func (m *MongoDBIndexer) IndexAll() error {
	if err := m.IndexRecordCollection(); err != nil {
		return err
	}
	return m.IndexBoundaryCollection()
}

func (m *MongoDBIndexer) IndexRecordCollection() error {
	return m.IndexRecords(RecordCollection)
}

// IndexRecords - indexes of a mortality table stored under the given name
func (m *MongoDBIndexer) IndexRecords(collection string) error {
	if err := m.createIndex(collection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "municipality_code", Value: 1},
			{Key: "year", Value: 1},
		},
	}); err != nil {
		return err
	}

	return m.createIndex(collection, mongo.IndexModel{
		Keys: bson.M{
			"year": 1,
		},
	})
}

func (m *MongoDBIndexer) IndexBoundaryCollection() error {
	return m.IndexBoundaries(BoundaryCollection)
}

// IndexBoundaries - indexes of a boundary collection stored under the given name
func (m *MongoDBIndexer) IndexBoundaries(collection string) error {
	if err := m.createIndex(collection, mongo.IndexModel{
		Keys: bson.M{
			"municipality_code": 1,
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	return m.createIndex(collection, mongo.IndexModel{
		Keys: bson.M{
			"geometry": "2dsphere",
		},
	})
}
