// Package model holds the persistence representations of domain entities.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserModel mirrors a document in the 'users' collection. Unique indexes on
// username and email are created at startup by the mongodb package.
type UserModel struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Username     string        `bson:"username"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"passwordHash,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt"`
}

// CollectionName returns the collection this model is stored in.
func (UserModel) CollectionName() string {
	return "users"
}
