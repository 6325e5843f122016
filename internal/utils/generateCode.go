package utils

import (
	"fmt"
	"math/rand"
)

func GenerateVerificationCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// GenerateReferenceNumber builds a display id like "KW-482913057" for jobs.
// The value is random, not a counter; callers retry on a unique-key
// collision.
func GenerateReferenceNumber() string {
	return fmt.Sprintf("KW-%09d", rand.Intn(1000000000))
}

// GenerateUserNumber builds a short seeker/employer reference like
// "U-301748265". Same collision contract as GenerateReferenceNumber.
func GenerateUserNumber() string {
	return fmt.Sprintf("U-%09d", rand.Intn(1000000000))
}
