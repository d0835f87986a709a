package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jean1991/creditcarbon/internal/domain/models"
)

const (
	reportsCollection = "reports"
	exportsCollection = "exports"
)

// MongoDBRepository implements repository.Store backed by MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

func (r *MongoDBRepository) reports() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(reportsCollection)
}

func (r *MongoDBRepository) exports() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(exportsCollection)
}

// CreateReport inserts a new report record.
func (r *MongoDBRepository) CreateReport(ctx context.Context, report *models.Report) error {
	if _, err := r.reports().InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// GetReport loads a report by id.
func (r *MongoDBRepository) GetReport(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := r.reports().FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", models.ErrReportNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report %s: %w", id, err)
	}
	return &report, nil
}

// ListReports returns the reports owned by ownerID, newest first. An empty
// ownerID lists every report.
func (r *MongoDBRepository) ListReports(ctx context.Context, ownerID string) ([]models.Report, error) {
	filter := bson.M{}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.reports().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	var reports []models.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}

// SaveReport replaces the stored report wholesale.
func (r *MongoDBRepository) SaveReport(ctx context.Context, report *models.Report) error {
	res, err := r.reports().ReplaceOne(ctx, bson.M{"_id": report.ID}, report)
	if err != nil {
		return fmt.Errorf("failed to save report %s: %w", report.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", models.ErrReportNotFound, report.ID)
	}
	return nil
}

// CreateExport appends an export record, assigning id and timestamp.
func (r *MongoDBRepository) CreateExport(ctx context.Context, export *models.Export) (*models.Export, error) {
	stored := *export
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = time.Now().UTC()

	if _, err := r.exports().InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to insert export: %w", err)
	}
	return &stored, nil
}

// ListExports returns all exports recorded for a report, newest first.
func (r *MongoDBRepository) ListExports(ctx context.Context, reportID string) ([]models.Export, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.exports().Find(ctx, bson.M{"report_id": reportID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}

	var exports []models.Export
	if err := cursor.All(ctx, &exports); err != nil {
		return nil, fmt.Errorf("failed to decode exports: %w", err)
	}
	return exports, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
