package redis

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"places-exporter/db"
	"places-exporter/models"
)

const PLACES_GEO_KEY_V2 = "places_geo_v2"

// member is places_geo_place_v2:<category>:<id>
const PLACES_GEO_PLACE_MEMBER_FORMAT_V2 = "places_geo_place_v2:%s:%s"

// RedisPlaceDAO archives fetched places in a Redis geo index.
type RedisPlaceDAO struct {
	client db.RedisClient
}

// NewRedisPlaceDAO initializes a RedisPlaceDAO with the Redis client.
func NewRedisPlaceDAO(client db.RedisClient) *RedisPlaceDAO {
	return &RedisPlaceDAO{client: client}
}

// UpsertPlace stores the place as a geolocation with its JSON data. Members are keyed
// by category and place_id, so refetching the same place overwrites it while a place
// listed under two categories keeps both entries. Places without an id get one derived
// from name and coordinates. Places without coordinates cannot be indexed and are skipped.
func (dao *RedisPlaceDAO) UpsertPlace(p models.Place) error {
	if p.Location == nil {
		slog.Debug("[RedisPlaceDAO] skipping place without location", "name", p.Name)
		return nil
	}
	id := p.PlaceID
	if id == "" {
		id = derivedPlaceID(p)
	}

	ctx := dao.client.GetContext()
	member := fmt.Sprintf(PLACES_GEO_PLACE_MEMBER_FORMAT_V2, p.Category, id)
	if err := dao.client.AddLocationWithJSON(ctx, PLACES_GEO_KEY_V2, member, p.Location.Lat, p.Location.Lng, p); err != nil {
		return fmt.Errorf("[RedisPlaceDAO] failed to upsert place %s: %w", id, err)
	}
	return nil
}

func derivedPlaceID(p models.Place) string {
	name := fmt.Sprintf("%s|%v|%v", p.Name, p.Location.Lat, p.Location.Lng)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// GetNearbyPlaces retrieves archived places within radius meters of center.
func (dao *RedisPlaceDAO) GetNearbyPlaces(center models.Coordinates, radius float64) ([]models.Place, error) {
	placesJSON, err := dao.client.GetLocationsWithinRadius(PLACES_GEO_KEY_V2, center.Lat, center.Lng, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisPlaceDAO] failed to get places: %w", err)
	}

	places := make([]models.Place, len(placesJSON))
	for i, s := range placesJSON {
		if err := json.Unmarshal([]byte(s), &places[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal place JSON: %w", err)
		}
	}
	slog.Debug("[RedisPlaceDAO] loaded nearby places", "count", len(places))
	return places, nil
}

// ListAllPlaceIDs returns the distinct ids of every archived place.
func (dao *RedisPlaceDAO) ListAllPlaceIDs() ([]string, error) {
	pattern := fmt.Sprintf(PLACES_GEO_PLACE_MEMBER_FORMAT_V2, "*", "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list place keys: %w", err)
	}

	seen := make(map[string]bool, len(keys))
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		// place ids never contain ':'
		id := k[strings.LastIndex(k, ":")+1:]
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
