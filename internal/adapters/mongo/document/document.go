package document

import "go.mongodb.org/mongo-driver/bson/primitive"

// Document is a BSON-mapped record keyed by an ObjectID.
type Document interface {
	GetID() primitive.ObjectID
}
