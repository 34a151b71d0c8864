package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/mohamedthameursassi/saferoute/models"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	// Nominatim's usage policy allows one request per second.
	DefaultNominatimRate = 1.0
)

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimResolver geocodes with an OpenStreetMap Nominatim server.
type NominatimResolver struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

func NewNominatimResolver(baseURL, userAgent string, perSecond float64, logger *slog.Logger) *NominatimResolver {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	if perSecond <= 0 {
		perSecond = DefaultNominatimRate
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NominatimResolver{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		logger:  logger,
	}
}

func (nr *NominatimResolver) Resolve(ctx context.Context, query string, region models.Region) (models.Coordinate, error) {
	if err := nr.limiter.Wait(ctx); err != nil {
		return models.Coordinate{}, err
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", "1")
	if region.Country != "" {
		params.Set("countrycodes", region.Country)
	}
	if !region.IsZero() {
		// viewbox is x1,y1,x2,y2 i.e. lng before lat.
		params.Set("viewbox", fmt.Sprintf("%g,%g,%g,%g", region.MinLng, region.MinLat, region.MaxLng, region.MaxLat))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nr.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("failed to create request: %w", err)
	}
	if nr.userAgent != "" {
		req.Header.Set("User-Agent", nr.userAgent)
	}

	resp, err := nr.httpClient.Do(req)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("failed to call Nominatim: %w", err)
	}
	defer resp.Body.Close()

	if err := parseErrorResponse(resp); err != nil {
		return models.Coordinate{}, fmt.Errorf("nominatim search: %w", err)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return models.Coordinate{}, fmt.Errorf("failed to decode Nominatim response: %w", err)
	}
	if len(places) == 0 {
		return models.Coordinate{}, fmt.Errorf("%w: %q", models.ErrAddressNotFound, query)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid latitude %q: %w", places[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid longitude %q: %w", places[0].Lon, err)
	}

	nr.logger.Debug("nominatim resolved address",
		slog.String("query", query),
		slog.String("display_name", places[0].DisplayName),
		slog.Float64("lat", lat),
		slog.Float64("lng", lng))

	return models.Coordinate{Lat: lat, Lng: lng}, nil
}
