package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/san-kum/wavepkt/internal/packet"
)

// Error kinds reported in the "kind" field of error responses.
const (
	KindRequest       = "request"
	KindConfiguration = "configuration"
	KindDomain        = "domain"
)

// Handler serves packet frames. Packets are rebuilt from their recipe on
// every request; nothing is cached between calls.
type Handler struct {
	log *zap.Logger
}

func NewHandler(log *zap.Logger) *Handler {
	return &Handler{log: log}
}

// LawInfo describes one dispersion law.
type LawInfo struct {
	ID       string  `json:"id"`
	Relation string  `json:"relation"`
	Span     float64 `json:"span"`
	UsesC    bool    `json:"uses_c"`
	DefaultC float64 `json:"default_c"`
}

// WaveResponse is the response for GET /v1/packets/wave.
type WaveResponse struct {
	Law        string    `json:"law"`
	Components int       `json:"components"`
	C          float64   `json:"c"`
	Seed       int64     `json:"seed"`
	Time       float64   `json:"time"`
	Positions  []float64 `json:"positions"`
	Values     []float64 `json:"values"`
}

// SpectrumResponse is the response for GET /v1/packets/spectrum.
type SpectrumResponse struct {
	Law         string    `json:"law"`
	Components  int       `json:"components"`
	C           float64   `json:"c"`
	Seed        int64     `json:"seed"`
	Time        float64   `json:"time"`
	Axis        string    `json:"axis"`
	Frequencies []float64 `json:"frequencies"`
	Power       []float64 `json:"power"`
}

// ComponentsResponse is the response for GET /v1/packets/components.
type ComponentsResponse struct {
	Law                string    `json:"law"`
	C                  float64   `json:"c"`
	B                  float64   `json:"b"`
	Seed               int64     `json:"seed"`
	Frequencies        []float64 `json:"frequencies"`
	Amplitudes         []float64 `json:"amplitudes"`
	Wavenumbers        []float64 `json:"wavenumbers"`
	AngularFrequencies []float64 `json:"angular_frequencies"`
}

type requestError struct {
	param string
	err   error
}

func (e *requestError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.param, e.err)
}

type recipe struct {
	law  packet.Law
	n    int
	c    float64
	seed int64
	t    float64
}

var errNotFinite = errors.New("must be a finite number")

func parseFinite(param, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &requestError{param, err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &requestError{param, errNotFinite}
	}
	return v, nil
}

func parseRecipe(c *gin.Context) (recipe, error) {
	r := recipe{n: 200, seed: 1}

	law, err := packet.ParseLaw(c.DefaultQuery("law", "ck"))
	if err != nil {
		return r, err
	}
	r.law = law
	r.c = law.DefaultC()

	if s := c.Query("components"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return r, &requestError{"components", err}
		}
		r.n = n
	}
	if s := c.Query("c"); s != "" {
		v, err := parseFinite("c", s)
		if err != nil {
			return r, err
		}
		r.c = v
	}
	if s := c.Query("seed"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return r, &requestError{"seed", err}
		}
		r.seed = v
	}
	if s := c.Query("t"); s != "" {
		v, err := parseFinite("t", s)
		if err != nil {
			return r, err
		}
		r.t = v
	}
	return r, nil
}

func (r recipe) build() (*packet.Packet, error) {
	cfg := packet.DefaultConfig()
	cfg.Law = r.law
	cfg.Components = r.n
	cfg.C = r.c
	return packet.New(cfg, packet.NewSource(r.seed))
}

// fail maps an error to its status code: 400 for malformed requests and
// unsupported options, 422 for domain violations.
func (h *Handler) fail(c *gin.Context, err error) {
	status, kind := http.StatusInternalServerError, "internal"
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		status, kind = http.StatusBadRequest, KindRequest
	case errors.Is(err, packet.ErrConfiguration):
		status, kind = http.StatusBadRequest, KindConfiguration
	case errors.Is(err, packet.ErrDomain):
		status, kind = http.StatusUnprocessableEntity, KindDomain
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}

// GetLaws handles GET /v1/laws.
func (h *Handler) GetLaws(c *gin.Context) {
	laws := packet.Laws()
	out := make([]LawInfo, len(laws))
	for i, l := range laws {
		out[i] = LawInfo{
			ID:       l.String(),
			Relation: l.Relation(),
			Span:     l.Span(),
			UsesC:    l.UsesC(),
			DefaultC: l.DefaultC(),
		}
	}
	c.JSON(http.StatusOK, gin.H{"laws": out})
}

// GetWave handles GET /v1/packets/wave.
func (h *Handler) GetWave(c *gin.Context) {
	r, err := parseRecipe(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	p, err := r.build()
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, WaveResponse{
		Law:        r.law.String(),
		Components: r.n,
		C:          p.C(),
		Seed:       r.seed,
		Time:       r.t,
		Positions:  p.Positions(),
		Values:     p.Wave(r.t),
	})
}

// GetSpectrum handles GET /v1/packets/spectrum.
func (h *Handler) GetSpectrum(c *gin.Context) {
	r, err := parseRecipe(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	conv, err := packet.ParseAxisConvention(c.Query("axis"))
	if err != nil {
		h.fail(c, err)
		return
	}
	p, err := r.build()
	if err != nil {
		h.fail(c, err)
		return
	}

	power, err := p.Spectrum(r.t)
	if err != nil {
		h.fail(c, err)
		return
	}
	freqs, err := p.SpectrumAxis(conv)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, SpectrumResponse{
		Law:         r.law.String(),
		Components:  r.n,
		C:           p.C(),
		Seed:        r.seed,
		Time:        r.t,
		Axis:        conv.String(),
		Frequencies: freqs,
		Power:       power,
	})
}

// GetComponents handles GET /v1/packets/components.
func (h *Handler) GetComponents(c *gin.Context) {
	r, err := parseRecipe(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	p, err := r.build()
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ComponentsResponse{
		Law:                r.law.String(),
		C:                  p.C(),
		B:                  p.B(),
		Seed:               r.seed,
		Frequencies:        p.Frequencies(),
		Amplitudes:         p.Amplitudes(),
		Wavenumbers:        p.Wavenumbers(),
		AngularFrequencies: p.AngularFrequencies(),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
