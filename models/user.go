package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. Username is unique and case-sensitive.
// Email is optional and only used for the password-reset flow.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username    string             `bson:"username" json:"username"`
	Password    string             `bson:"password_hash" json:"-"` // bcrypt hash, never serialized
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	ResetOTP    string             `bson:"reset_otp,omitempty" json:"-"` // hashed otp
	ResetOTPExp time.Time          `bson:"reset_otp_exp,omitempty" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
