package appointments

import (
	"context"
	"time"
	"tokenbook-service/internal/app/contracts"
	"tokenbook-service/internal/app/models"
	"tokenbook-service/internal/pkg/constvars"
	"tokenbook-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (r *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	result, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrAppointmentNotFound(err)
	}

	var appointment models.Appointment
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindActiveByClaim(ctx context.Context, doctorID, date, slotStart string, tokenNumber int) (*models.Appointment, error) {
	var appointment models.Appointment
	filter := bson.M{
		"doctor_id":    doctorID,
		"date":         date,
		"slot_start":   slotStart,
		"token_number": tokenNumber,
		"status":       bson.M{"$ne": models.AppointmentStatusCancelled},
	}
	err := r.Collection.FindOne(ctx, filter).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus, doctorNotes string) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrAppointmentNotFound(err)
	}

	update := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if doctorNotes != "" {
		update["doctor_notes"] = doctorNotes
	}

	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrAppointmentNotFound(nil)
	}
	return nil
}

