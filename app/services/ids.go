package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aman-4321/CourseVault/pkg/auth"
	"github.com/aman-4321/CourseVault/pkg/errs"
)

// parseID converts a path or body id to an ObjectID. field names the input
// in the validation error.
func parseID(field, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, errs.Validation("Invalid Input", errs.FieldError{
			Field:   field,
			Message: "The " + field + " must be a valid id.",
		})
	}
	return id, nil
}

// subjectID converts a verified identity's subject to an ObjectID. A token
// whose subject is not an ObjectID was not issued by this service.
func subjectID(id auth.Identity) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id.SubjectID)
	if err != nil {
		return primitive.NilObjectID, auth.ErrInvalid
	}
	return oid, nil
}
