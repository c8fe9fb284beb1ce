package availability

import (
	"context"
	"tokenbook-service/internal/app/contracts"
	"tokenbook-service/internal/app/models"
	"tokenbook-service/internal/pkg/constvars"
	"tokenbook-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AvailabilityMongoRepository struct {
	Collection *mongo.Collection
}

func NewAvailabilityMongoRepository(db *mongo.Client, dbName string) contracts.AvailabilityRepository {
	return &AvailabilityMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionDoctorAvailabilities),
	}
}

func (r *AvailabilityMongoRepository) FindByDoctorAndDay(ctx context.Context, doctorID string, dayOfWeek int) (*models.DoctorAvailability, error) {
	var availability models.DoctorAvailability
	filter := bson.M{
		"doctor_id":   doctorID,
		"day_of_week": dayOfWeek,
	}
	err := r.Collection.FindOne(ctx, filter).Decode(&availability)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &availability, nil
}

// ClaimToken performs the atomic read-verify-add the booking coordinator
// depends on: the filter only matches while the token is absent from the
// slot's claimed set, so concurrent claims for the same token cannot both
// observe a modified document.
func (r *AvailabilityMongoRepository) ClaimToken(ctx context.Context, doctorID string, dayOfWeek int, slotStart, slotEnd string, tokenNumber int) (bool, error) {
	filter := bson.M{
		"doctor_id":   doctorID,
		"day_of_week": dayOfWeek,
		"is_active":   true,
		"slots": bson.M{
			"$elemMatch": bson.M{
				"start_time":     slotStart,
				"end_time":       slotEnd,
				"claimed_tokens": bson.M{"$ne": tokenNumber},
			},
		},
	}
	update := bson.M{
		"$addToSet": bson.M{"slots.$.claimed_tokens": tokenNumber},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *AvailabilityMongoRepository) ReleaseToken(ctx context.Context, doctorID string, dayOfWeek int, slotStart, slotEnd string, tokenNumber int) error {
	filter := bson.M{
		"doctor_id":   doctorID,
		"day_of_week": dayOfWeek,
		"slots": bson.M{
			"$elemMatch": bson.M{
				"start_time": slotStart,
				"end_time":   slotEnd,
			},
		},
	}
	update := bson.M{
		"$pull": bson.M{"slots.$.claimed_tokens": tokenNumber},
	}

	_, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
