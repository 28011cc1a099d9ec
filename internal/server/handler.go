package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/versus/internal/core/model"
)

type CompareRequest struct {
	Product1    string `json:"product1" binding:"required"`
	Product2    string `json:"product2" binding:"required"`
	UserRequest string `json:"user_request"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) CompareProducts(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "product1 and product2 are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.RequestTimeout)
	defer cancel()

	result, err := s.Comparer.Compare(ctx, req.Product1, req.Product2, req.UserRequest)
	if err != nil {
		status, resp := errorResponse(err)
		_ = c.Error(err)
		s.Logger.Error("comparison failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("product1", req.Product1),
			zap.String("product2", req.Product2),
			zap.String("stage", resp.Stage),
			zap.Error(err),
		)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, result)
}

// errorResponse maps a pipeline error to its HTTP status and body.
func errorResponse(err error) (int, ErrorResponse) {
	resp := ErrorResponse{Error: err.Error()}

	var stageErr *model.StageError
	if errors.As(err, &stageErr) {
		resp.Stage = stageErr.Stage
	}

	switch {
	case errors.Is(err, model.ErrInvalidRequest):
		return http.StatusBadRequest, resp
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, resp
	case errors.Is(err, model.ErrSearchUnavailable),
		errors.Is(err, model.ErrRelevanceParse),
		errors.Is(err, model.ErrComparisonParse),
		stageErr != nil:
		return http.StatusBadGateway, resp
	default:
		return http.StatusInternalServerError, resp
	}
}
