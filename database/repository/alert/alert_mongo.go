package alertRepo

import (
	"context"
	"fmt"
	"time"

	"brightwash/config"
	"brightwash/database"
	"brightwash/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoAlertRepo implements AlertRecordRepository using MongoDB.
type mongoAlertRepo struct {
	coll *mongo.Collection
}

// NewMongoAlertRepo constructs a new AlertRecordRepository instance.
func NewMongoAlertRepo() AlertRecordRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoAlertRepo{
		coll: db.Collection("alert_records"),
	}
}

// EnsureIndexes creates the indexes on the alert_records collection. The
// unique compound index enforces at most one record per (appointment, level).
func (r *mongoAlertRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "appointment_id", Value: 1}, {Key: "risk_level", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_appointment_level"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create alert record indexes: %w", err)
	}
	return nil
}

// HighestAlertedLevel returns the highest risk level recorded for the appointment.
func (r *mongoAlertRepo) HighestAlertedLevel(ctx context.Context, appointmentID string) (models.RiskLevel, bool, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "risk_level", Value: -1}})

	var rec models.AlertRecord
	err := r.coll.FindOne(ctx, bson.M{"appointment_id": appointmentID}, opts).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return models.RiskNone, false, nil
	}
	if err != nil {
		return models.RiskNone, false, fmt.Errorf("error fetching alert records for %s: %w", appointmentID, err)
	}
	return rec.RiskLevel, true, nil
}

// Record inserts an alert record after a confirmed dispatch.
func (r *mongoAlertRepo) Record(ctx context.Context, rec models.AlertRecord) error {
	if rec.SentAt.IsZero() {
		rec.SentAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to record alert for %s at %s: %w",
			rec.AppointmentID, rec.RiskLevel, err)
	}
	return nil
}

// PurgeForAppointment removes all alert records for a cancelled or completed
// appointment.
func (r *mongoAlertRepo) PurgeForAppointment(ctx context.Context, appointmentID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"appointment_id": appointmentID}); err != nil {
		return fmt.Errorf("failed to purge alert records for %s: %w", appointmentID, err)
	}
	return nil
}
