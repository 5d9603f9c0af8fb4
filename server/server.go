// Package server exposes the Butterworth designer and filter over HTTP.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang/glog"

	"github.com/cwbudde/algo-iir/dsp/core"
	"github.com/cwbudde/algo-iir/dsp/filter/butter"
	"github.com/cwbudde/algo-iir/dsp/spectrum"
	"github.com/cwbudde/algo-iir/frame"
	"github.com/cwbudde/algo-iir/stats"
)

const (
	filterEndpoint = "/iir/v1/filter"
	designEndpoint = "/iir/v1/design"
	healthEndpoint = "/iir/v1/healthz"

	signalColumn = "signal"
)

// FilterRequest is the body of a filter call. Nil cutoffs are omitted; a nil
// order uses the default.
type FilterRequest struct {
	Signal  []float64 `json:"signal"`
	FS      float64   `json:"fs"`
	LowCut  *float64  `json:"lowcut,omitempty"`
	HighCut *float64  `json:"highcut,omitempty"`
	Order   *int      `json:"order,omitempty"`
}

// FilterResponse carries the filtered signal, its strongest frequency and
// the RMS level change. GainDB is omitted when either side is silent.
type FilterResponse struct {
	ID         string    `json:"id"`
	Filtered   []float64 `json:"filtered"`
	DominantHz float64   `json:"dominant_hz"`
	GainDB     *float64  `json:"gain_db,omitempty"`
}

// DesignRequest is the body of a design call.
type DesignRequest struct {
	FS      float64  `json:"fs"`
	LowCut  *float64 `json:"lowcut,omitempty"`
	HighCut *float64 `json:"highcut,omitempty"`
	Order   *int     `json:"order,omitempty"`
}

// DesignResponse describes designed coefficients.
type DesignResponse struct {
	B      []float64 `json:"b"`
	A      []float64 `json:"a"`
	Band   string    `json:"band"`
	Order  int       `json:"order"`
	Stable bool      `json:"stable"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server routes HTTP requests to the filter command.
type Server struct {
	designer frame.Designer
	router   *gin.Engine
}

// New builds a server. A nil designer designs every request from scratch.
func New(designer frame.Designer) *Server {
	if designer == nil {
		designer = frame.DesignFunc(butter.Design)
	}

	s := &Server{designer: designer, router: gin.New()}
	s.router.Use(gin.Recovery())
	s.router.POST(filterEndpoint, s.filterHandler)
	s.router.POST(designEndpoint, s.designHandler)
	s.router.GET(healthEndpoint, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) filterHandler(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	fr := frame.New()
	if err := fr.SetColumn(signalColumn, req.Signal); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cmd := frame.Command{
		Signal:     signalColumn,
		SampleRate: req.FS,
		LowCut:     req.LowCut,
		HighCut:    req.HighCut,
		Order:      req.Order,
		Designer:   s.designer,
		Progress:   frame.GlogProgress{},
	}

	jobID, err := cmd.Run(c.Request.Context(), fr)
	if err != nil {
		s.fail(c, jobID, err)
		return
	}

	filtered, err := fr.Column(cmd.OutputName())
	if err != nil {
		s.fail(c, jobID, err)
		return
	}

	dominant, err := spectrum.DominantFrequency(filtered, req.FS)
	if err != nil {
		glog.Warningf("[%s] spectral peak: %s", jobID, err)
	}

	resp := FilterResponse{ID: jobID, Filtered: filtered, DominantHz: dominant}
	if g := stats.GainDB(req.Signal, filtered); core.IsFinite(g) {
		resp.GainDB = &g
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) designHandler(c *gin.Context) {
	var req DesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cmd := frame.Command{SampleRate: req.FS, LowCut: req.LowCut, HighCut: req.HighCut, Order: req.Order}
	coeffs, err := s.designer.Design(c.Request.Context(), req.FS, cmd.Options()...)
	if err != nil {
		s.fail(c, "", err)
		return
	}

	c.JSON(http.StatusOK, DesignResponse{
		B:      coeffs.B,
		A:      coeffs.A,
		Band:   coeffs.Band.String(),
		Order:  coeffs.Order,
		Stable: coeffs.Stable(),
	})
}

func (s *Server) fail(c *gin.Context, jobID string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		glog.Errorf("[%s] %s %s: %s", jobID, c.Request.Method, c.Request.URL.Path, err)
	} else {
		glog.V(1).Infof("[%s] rejected: %s", jobID, err)
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, butter.ErrInvalidParameter), errors.Is(err, frame.ErrColumnNotFound):
		return http.StatusBadRequest
	case errors.Is(err, butter.ErrNumericalInstability):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
