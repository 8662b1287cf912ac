package activity

import (
	"commerce-admin-svc/src/internal/config"
	"commerce-admin-svc/src/internal/models"
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recorder is the single write path into the activity log. Entity services
// invoke it after every successful mutation. The append is not part of the
// entity mutation's atomicity boundary: there is no cross-store transaction,
// and a failed append must never unwind the mutation that triggered it.
type Recorder interface {
	Record(ctx context.Context, rec Record) (primitive.ObjectID, error)
}

type recorder struct {
	repository Repository
	publisher  Publisher
	timeout    time.Duration
}

func NewRecorder(repository Repository, publisher Publisher, cfg *config.Configuration) Recorder {
	return &recorder{
		repository: repository,
		publisher:  publisher,
		timeout:    time.Duration(cfg.App.Timeout) * time.Second,
	}
}

func (r *recorder) Record(ctx context.Context, rec Record) (primitive.ObjectID, error) {
	if rec.Action == "" || rec.Resource == "" {
		return primitive.NilObjectID, models.ErrInvalidParams
	}

	// The append must survive caller cancellation: if the client disconnects
	// after the entity mutation committed, the entry is still attempted.
	appendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	entry := &Entry{
		ActorID:    rec.ActorID,
		Action:     rec.Action,
		Resource:   rec.Resource,
		ResourceID: rec.ResourceID,
		Details:    rec.Details,
	}

	id, err := r.repository.Insert(appendCtx, entry)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":   rec.Action,
			"resource": rec.Resource,
		}).Error("Activity log append failed")
		return primitive.NilObjectID, models.ErrActivityAppend
	}

	if r.publisher != nil {
		if err := r.publisher.Publish(entry); err != nil {
			logrus.WithError(err).WithField("log_id", id.Hex()).Warn("Failed to publish activity entry")
		}
	}

	logrus.WithFields(logrus.Fields{
		"log_id":   id.Hex(),
		"action":   rec.Action,
		"resource": rec.Resource,
	}).Debug("Activity log entry recorded")

	return id, nil
}
