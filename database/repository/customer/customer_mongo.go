package customerRepo

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

// CustomerRepository is the customer profile store. Booking side effects
// merge appointment history here; failures never revert a booking.
type CustomerRepository interface {
	MergeAppointment(ctx context.Context, info models.CustomerInfo, summary models.AppointmentSummary) error
	GetByPhone(ctx context.Context, phone string) (*models.CustomerProfile, error)
}

// mongoCustomerRepo implements CustomerRepository using MongoDB.
type mongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo constructs a new CustomerRepository instance.
func NewMongoCustomerRepo() CustomerRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoCustomerRepo{
		coll: db.Collection("customers"),
	}
}

// MergeAppointment upserts the customer profile keyed by phone and appends
// the appointment summary to the profile's history.
func (r *mongoCustomerRepo) MergeAppointment(ctx context.Context, info models.CustomerInfo, summary models.AppointmentSummary) error {
	filter := bson.M{"phone": info.Phone}
	update := bson.M{
		"$set": bson.M{
			"name":       info.Name,
			"email":      info.Email,
			"updated_at": time.Now(),
		},
		"$push": bson.M{"appointments": summary},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to merge appointment into customer %s: %w", info.Phone, err)
	}
	return nil
}

// GetByPhone returns the customer profile for a phone number.
func (r *mongoCustomerRepo) GetByPhone(ctx context.Context, phone string) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := r.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("customer %s not found: %w", phone, err)
		}
		return nil, fmt.Errorf("error fetching customer %s: %w", phone, err)
	}
	return &profile, nil
}
