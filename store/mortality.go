package store

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/antioquia-open-data/mortality-api/dataset"
	"github.com/antioquia-open-data/mortality-api/schema"
)

var (
	ErrBoundaryNotFound = fmt.Errorf("boundary not found")
)

// MortalityStore - the mortality table
type MortalityStore interface {
	ImportRecords(ctx context.Context, records []schema.MortalityRecord) (int, error)
	Records(ctx context.Context) ([]schema.MortalityRecord, error)
}

// ImportRecords - replace the whole mortality table, insertion order is kept.
// Readers see either the previous table or the new one.
func (m mongoDB) ImportRecords(ctx context.Context, records []schema.MortalityRecord) (int, error) {
	docs := make([]interface{}, len(records))
	for i, r := range records {
		docs[i] = r
	}

	indexer := schema.NewMongoDBIndexer(ctx, m.db())
	n, err := m.replaceCollection(ctx, schema.RecordCollection, schema.RecordStagingCollection, docs, true, indexer.IndexRecords)
	if err != nil {
		return 0, err
	}

	log.WithField("prefix", mongoLogPrefix).WithField("count", n).Info("mortality records imported")
	return n, nil
}

// Records - the mortality table in insertion order
func (m mongoDB) Records(ctx context.Context) ([]schema.MortalityRecord, error) {
	c := m.db().Collection(schema.RecordCollection)

	cursor, err := c.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]schema.MortalityRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Load - both tables, as a dataset source
func (m mongoDB) Load(ctx context.Context) ([]schema.MortalityRecord, map[string]schema.MunicipalBoundary, error) {
	source := "mongo:" + m.database

	records, err := m.Records(ctx)
	if err != nil {
		return nil, nil, &dataset.DataLoadError{Source: source, Stage: dataset.StageOpen, Err: err}
	}
	if len(records) == 0 {
		return nil, nil, &dataset.DataLoadError{Source: source, Stage: dataset.StageParse, Err: dataset.ErrNoRecords}
	}

	boundaries, err := m.Boundaries(ctx)
	if err != nil {
		return nil, nil, &dataset.DataLoadError{Source: source, Stage: dataset.StageParse, Err: err}
	}

	log.WithField("prefix", mongoLogPrefix).
		WithField("records", len(records)).
		WithField("boundaries", len(boundaries)).
		Info("dataset loaded")
	return records, boundaries, nil
}

// BoundaryStore - the municipal boundaries
type BoundaryStore interface {
	ImportBoundaries(ctx context.Context, boundaries map[string]schema.MunicipalBoundary) (int, error)
	Boundaries(ctx context.Context) (map[string]schema.MunicipalBoundary, error)
	Locate(ctx context.Context, lon, lat float64) (schema.MunicipalBoundary, error)
}

// ImportBoundaries - replace every boundary
func (m mongoDB) ImportBoundaries(ctx context.Context, boundaries map[string]schema.MunicipalBoundary) (int, error) {
	docs := make([]interface{}, 0, len(boundaries))
	for _, b := range boundaries {
		docs = append(docs, schema.NewBoundary(b))
	}

	indexer := schema.NewMongoDBIndexer(ctx, m.db())
	n, err := m.replaceCollection(ctx, schema.BoundaryCollection, schema.BoundaryStagingCollection, docs, false, indexer.IndexBoundaries)
	if err != nil {
		return 0, err
	}

	log.WithField("prefix", mongoLogPrefix).WithField("count", n).Info("boundaries imported")
	return n, nil
}

// replaceCollection - fill and index the staging collection, then rename it
// over the target in one server side step
func (m mongoDB) replaceCollection(ctx context.Context, target, staging string, docs []interface{}, ordered bool, index func(string) error) (int, error) {
	c := m.db().Collection(staging)
	if err := c.Drop(ctx); err != nil {
		return 0, err
	}

	inserted := 0
	if len(docs) > 0 {
		result, err := c.InsertMany(ctx, docs, options.InsertMany().SetOrdered(ordered))
		if err != nil {
			_ = c.Drop(ctx)
			return 0, err
		}
		inserted = len(result.InsertedIDs)
	}

	// also creates the staging collection when there is nothing to insert
	if err := index(staging); err != nil {
		_ = c.Drop(ctx)
		return 0, err
	}

	rename := bson.D{
		{Key: "renameCollection", Value: m.database + "." + staging},
		{Key: "to", Value: m.database + "." + target},
		{Key: "dropTarget", Value: true},
	}
	if err := m.client.Database("admin").RunCommand(ctx, rename).Err(); err != nil {
		_ = c.Drop(ctx)
		return 0, fmt.Errorf("swap %s into %s: %w", staging, target, err)
	}
	return inserted, nil
}

// Boundaries - every boundary keyed by municipality code
func (m mongoDB) Boundaries(ctx context.Context) (map[string]schema.MunicipalBoundary, error) {
	c := m.db().Collection(schema.BoundaryCollection)

	cursor, err := c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	boundaries := map[string]schema.MunicipalBoundary{}
	for cursor.Next(ctx) {
		var doc schema.Boundary
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}

		b, err := doc.MunicipalBoundary()
		if err != nil {
			return nil, fmt.Errorf("boundary %s: %w", doc.MunicipalityCode, err)
		}
		boundaries[b.MunicipalityCode] = b
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return boundaries, nil
}

// Locate - the boundary containing the given point, needs the 2dsphere index
// of the boundary collection
func (m mongoDB) Locate(ctx context.Context, lon, lat float64) (schema.MunicipalBoundary, error) {
	c := m.db().Collection(schema.BoundaryCollection)

	query := bson.M{
		"geometry": bson.M{
			"$geoIntersects": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{lon, lat},
				},
			},
		},
	}

	var doc schema.Boundary
	if err := c.FindOne(ctx, query).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return schema.MunicipalBoundary{}, ErrBoundaryNotFound
		}
		return schema.MunicipalBoundary{}, err
	}
	return doc.MunicipalBoundary()
}
