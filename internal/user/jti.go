package user

import (
	"fmt"

	"github.com/google/uuid"
)

// jwtID builds the token's jti claim. The revocation store keys on it, so
// every issued token must carry a distinct value.
func jwtID(userID uint) string {
	return fmt.Sprintf("%d-%s", userID, uuid.NewString())
}
