package postgresadapter

import (
	"time"

	"github.com/google/uuid"
)

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
