package eventqueue

import (
	"context"
	"sync"
	"time"
	"tokenbook-service/internal/app/contracts"
	"tokenbook-service/internal/app/models"
	"tokenbook-service/internal/pkg/constvars"
	"tokenbook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AppointmentCreatedMessage is the payload handed to the notification and
// billing collaborators over RabbitMQ.
type AppointmentCreatedMessage struct {
	AppointmentID string    `json:"appointment_id"`
	PatientID     string    `json:"patient_id"`
	DoctorID      string    `json:"doctor_id"`
	Datetime      time.Time `json:"datetime"`
	TokenNumber   int       `json:"token_number"`
	Type          string    `json:"type"`
}

// Service publishes appointment lifecycle events to a durable queue with
// publisher confirms enabled.
type Service struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

func NewService(conn *amqp.Connection, log *zap.Logger, queueName string) (contracts.EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &Service{
		ch:        ch,
		log:       log,
		queueName: queueName,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

func (s *Service) PublishAppointmentCreated(ctx context.Context, appointment *models.Appointment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	message := AppointmentCreatedMessage{
		AppointmentID: appointment.ID.Hex(),
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		Datetime:      appointment.Datetime,
		TokenNumber:   appointment.TokenNumber,
		Type:          string(appointment.Type),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.ch.PublishWithContext(ctx,
		"",          // exchange
		s.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.queueName)
	}

	select {
	case confirmation := <-s.confirms:
		if !confirmation.Ack {
			return exceptions.ErrRabbitMQPublishMessage(nil, s.queueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), s.queueName)
	}

	s.log.Info("eventQueue.PublishAppointmentCreated succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, message.AppointmentID),
		zap.String(constvars.LoggingQueueNameKey, s.queueName),
	)
	return nil
}
