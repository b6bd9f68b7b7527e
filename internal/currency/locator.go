package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/currency"

	"github.com/devport/portfolio/internal/core/domain"
)

// DefaultEndpoint is the public IP geolocation service.
const DefaultEndpoint = "https://ipapi.co"

// DefaultLocation is used whenever the lookup fails.
var DefaultLocation = domain.LocationData{
	Country:        "United States",
	CountryCode:    "US",
	Currency:       "USD",
	CurrencySymbol: "$",
	Region:         "California",
	IP:             "0.0.0.0",
	ExchangeRate:   1.0,
}

// DefaultRates are fixed USD exchange rates.
var DefaultRates = map[string]float64{
	"BDT": 120.0,
	"INR": 83.5,
	"EUR": 0.92,
	"GBP": 0.79,
	"CAD": 1.37,
	"AUD": 1.52,
	"JPY": 157.0,
	"USD": 1.0,
}

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"BDT": TakaSymbol,
	"CAD": "CA$",
	"AUD": "A$",
	"JPY": "¥",
}

// Symbol returns the display symbol for an ISO currency code. Codes without
// a known symbol are shown as the code itself.
func Symbol(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return code
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
	CacheTTL time.Duration
	Rates    map[string]float64
}

// Locator resolves a visitor's location and currency. It never fails: any
// lookup problem yields DefaultLocation.
type Locator struct {
	endpoint string
	client   *http.Client
	rates    map[string]float64
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time

	mu    sync.Mutex
	cache map[string]cachedLocation
}

type cachedLocation struct {
	loc     domain.LocationData
	expires time.Time
}

func NewLocator(cfg Config, log zerolog.Logger) *Locator {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.Rates == nil {
		cfg.Rates = DefaultRates
	}
	return &Locator{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		client:   &http.Client{Timeout: cfg.Timeout},
		rates:    cfg.Rates,
		ttl:      cfg.CacheTTL,
		log:      log,
		now:      time.Now,
		cache:    make(map[string]cachedLocation),
	}
}

type geoResponse struct {
	CountryName string `json:"country_name"`
	CountryCode string `json:"country_code"`
	Currency    string `json:"currency"`
	Region      string `json:"region"`
	IP          string `json:"ip"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

// Detect returns the location for a caller ip. An empty or non-public ip
// looks up the address the request leaves from.
func (l *Locator) Detect(ctx context.Context, ip string) domain.LocationData {
	key := lookupKey(ip)

	l.mu.Lock()
	if c, ok := l.cache[key]; ok && l.now().Before(c.expires) {
		l.mu.Unlock()
		return c.loc
	}
	l.mu.Unlock()

	loc, err := l.lookup(ctx, key)
	if err != nil {
		l.log.Warn().Err(err).Str("ip", ip).Msg("geolocation failed, using default location")
		return DefaultLocation
	}

	l.mu.Lock()
	l.cache[key] = cachedLocation{loc: loc, expires: l.now().Add(l.ttl)}
	l.mu.Unlock()
	return loc
}

func (l *Locator) lookup(ctx context.Context, key string) (domain.LocationData, error) {
	url := l.endpoint + "/json/"
	if key != "" {
		url = l.endpoint + "/" + key + "/json/"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.LocationData{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return domain.LocationData{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.LocationData{}, fmt.Errorf("geolocation status %d", resp.StatusCode)
	}

	var body geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.LocationData{}, fmt.Errorf("decode geolocation: %w", err)
	}
	if body.Error {
		return domain.LocationData{}, fmt.Errorf("geolocation refused: %s", body.Reason)
	}
	return l.resolve(body), nil
}

func (l *Locator) resolve(body geoResponse) domain.LocationData {
	country := strings.ToUpper(strings.TrimSpace(body.CountryCode))
	if country == "" {
		country = "US"
	}

	code := "USD"
	if unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(body.Currency))); err == nil {
		code = unit.String()
	}
	if country == "BD" {
		code = "BDT"
	}

	rate, ok := l.rates[code]
	if !ok {
		rate = 1.0
	}

	return domain.LocationData{
		Country:        orDefault(body.CountryName, "Global"),
		CountryCode:    country,
		Currency:       code,
		CurrencySymbol: Symbol(code),
		Region:         orDefault(body.Region, "Remote"),
		IP:             body.IP,
		ExchangeRate:   rate,
	}
}

func lookupKey(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		return ""
	}
	return parsed.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
