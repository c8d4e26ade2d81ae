package api

import (
	"fmt"

	"github.com/google/uuid"
)

func generateRandomName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8])
}

func GenerateTestID() string {
	return generateRandomName("test")
}
