package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnalyticsExport stores metadata about a dashboard snapshot.
// The snapshot itself resides in S3.
type AnalyticsExport struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Period         string             `bson:"period" json:"period"`
	ObjectKey      string             `bson:"objectKey" json:"-"`           // Key in the S3 bucket - internal use
	ContentType    string             `bson:"contentType" json:"contentType"` // Always application/json for now
	Size           int64              `bson:"size" json:"size"`
	DatasetVersion string             `bson:"datasetVersion" json:"datasetVersion"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
