package postgres

import (
	"testing"
	"time"
	_ "time/tzdata"

	"envmonitor/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestZoneName(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	assert.NoError(t, err)

	assert.Equal(t, "UTC", zoneName(nil))
	assert.Equal(t, "UTC", zoneName(time.Local))
	assert.Equal(t, "UTC", zoneName(time.UTC))
	assert.Equal(t, "America/Bogota", zoneName(bogota))
}

func TestStoredEventTypeRoundTrip(t *testing.T) {
	for _, kind := range []domain.EventKind{domain.EventMovement, domain.EventNoise, domain.EventThreshold} {
		assert.Equal(t, kind, domain.EventKindFromStored(storedEventType(kind)))
	}
}
