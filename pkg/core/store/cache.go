package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"bizplan_forecast/pkg/models"
)

// ErrCacheMiss is returned by Get when no result is stored for the key.
var ErrCacheMiss = errors.New("cache miss")

// ResultCache stores computed projections keyed by input fingerprint.
type ResultCache interface {
	Get(ctx context.Context, key string) (*models.OperatingResults, error)
	Set(ctx context.Context, key string, res *models.OperatingResults) error
}

// Fingerprint hashes every input the engine reads. The narrative is
// excluded, so editing text never invalidates a cached projection.
func Fingerprint(plan models.BusinessPlanData) (string, error) {
	plan.Narrative = models.Narrative{}

	data, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*models.OperatingResults, error) {
	return nil, ErrCacheMiss
}

func (NopCache) Set(context.Context, string, *models.OperatingResults) error {
	return nil
}

func encodeResults(res *models.OperatingResults) ([]byte, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results: %w", err)
	}
	return data, nil
}

func decodeResults(data []byte) (*models.OperatingResults, error) {
	var res models.OperatingResults
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached results: %w", err)
	}
	return &res, nil
}
