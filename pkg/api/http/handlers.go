package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aescanero/listservice/internal/liststore"
	"github.com/aescanero/listservice/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	operationHead = "head"
	operationTail = "tail"

	detailInvalidCount = "Count must be at least 1"
	detailCountNotInt  = "count must be an integer"
)

const defaultCount = 1

// ListResponse is returned by head and tail. Count always equals len(Items).
type ListResponse struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

func newListResponse(items []string) ListResponse {
	return ListResponse{Items: items, Count: len(items)}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RootResponse is the discovery payload served on /
type RootResponse struct {
	Service     string            `json:"service"`
	Description string            `json:"description"`
	Version     string            `json:"version"`
	Environment string            `json:"environment"`
	Operations  map[string]string `json:"operations"`
	CurrentList []string          `json:"current_list"`
}

// handleRoot serves the discovery payload
func (s *Server) handleRoot(c *gin.Context) {
	s.logger.Info("root endpoint called")

	c.JSON(http.StatusOK, RootResponse{
		Service:     s.info.Title,
		Description: s.info.Description,
		Version:     s.info.Version,
		Environment: s.info.Environment,
		Operations: map[string]string{
			operationHead: "/list/head - Get first element(s) from the list",
			operationTail: "/list/tail - Get last element(s) from the list",
		},
		CurrentList: s.store.Items(),
	})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": gin.H{
			"list_store": "ok",
		},
		"items": s.store.Len(),
	})
}

// handleHead handles the head operation
func (s *Server) handleHead(c *gin.Context) {
	s.handleListOperation(c, operationHead, s.store.Head)
}

// handleTail handles the tail operation
func (s *Server) handleTail(c *gin.Context) {
	s.handleListOperation(c, operationTail, s.store.Tail)
}

func (s *Server) handleListOperation(c *gin.Context, operation string, op func(int) ([]string, error)) {
	count, err := parseCount(c)
	if err != nil {
		s.logger.Info("invalid list query",
			zap.String("operation", operation),
			zap.String("count", c.Query("count")),
			zap.Error(err))
		s.recordOperation(operation, prometheus.OutcomeInvalid, 0)
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: detailCountNotInt})
		return
	}

	s.logger.Info("list operation called",
		zap.String("operation", operation),
		zap.Int("count", count))

	items, err := op(count)
	if err != nil {
		var verr *liststore.ValidationError
		if errors.As(err, &verr) {
			s.logger.Info("list operation rejected",
				zap.String("operation", operation),
				zap.Error(err))
			s.recordOperation(operation, prometheus.OutcomeInvalid, 0)
			c.JSON(http.StatusBadRequest, ErrorResponse{Detail: detailInvalidCount})
			return
		}

		s.logger.Error("list operation failed",
			zap.String("operation", operation),
			zap.Error(err))
		s.recordOperation(operation, prometheus.OutcomeFailure, 0)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Internal Server Error"})
		return
	}

	resp := newListResponse(items)
	s.recordOperation(operation, prometheus.OutcomeSuccess, resp.Count)

	s.logger.Debug("list operation result",
		zap.String("operation", operation),
		zap.Strings("items", resp.Items),
		zap.Int("count", resp.Count))

	c.JSON(http.StatusOK, resp)
}

// parseCount reads the count query parameter. A missing parameter means
// defaultCount. Integers beyond the int range saturate to math.MaxInt or
// math.MinInt so oversized counts clamp like any other large count.
func parseCount(c *gin.Context) (int, error) {
	raw, ok := c.GetQuery("count")
	if !ok {
		return defaultCount, nil
	}

	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err == nil {
		return n, nil
	}

	// Atoi reports overflow before it reaches a trailing non-digit
	if errors.Is(err, strconv.ErrRange) && isInteger(raw) {
		if strings.HasPrefix(raw, "-") {
			return math.MinInt, nil
		}
		return math.MaxInt, nil
	}

	return 0, err
}

// isInteger reports whether s is an optional sign followed by decimal digits
func isInteger(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *Server) recordOperation(operation, outcome string, items int) {
	if s.metrics != nil {
		s.metrics.RecordListOperation(operation, outcome, items)
	}
}
