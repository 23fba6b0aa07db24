package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brightwash/config"
	"brightwash/database"
	"brightwash/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoAppointmentRepo implements AppointmentRepository using MongoDB.
type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new AppointmentRepository instance.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
}

// EnsureIndexes creates the necessary indexes on the appointments collection.
func (r *mongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary sweep query pattern: confirmed appointments by start time.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().SetName("status_start_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}

// Create inserts a confirmed appointment.
func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	if appt.ID == "" {
		return errors.New("appointment id is required")
	}
	appt.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to insert appointment %s: %w", appt.ID, err)
	}
	return nil
}

// GetByID returns an appointment by its ID.
func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

// ListUpcoming returns confirmed appointments starting within [from, to),
// ordered by start time.
func (r *mongoAppointmentRepo) ListUpcoming(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"status": models.AppointmentStatusConfirmed,
		"start":  bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode upcoming appointments: %w", err)
	}
	return appts, nil
}

// Cancel marks an appointment cancelled. The record is kept for history;
// the caller is responsible for removing the calendar hold and alert records.
func (r *mongoAppointmentRepo) Cancel(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": models.AppointmentStatusCancelled}},
	)
	if err != nil {
		return fmt.Errorf("failed to cancel appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return errors.New("appointment not found")
	}
	return nil
}
