package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/zoo-api/internal/core/domain"
	"github.com/nulzo/zoo-api/internal/server/validator"
	"github.com/nulzo/zoo-api/internal/store"
	"github.com/nulzo/zoo-api/internal/store/model"
	"github.com/nulzo/zoo-api/pkg/api"
	"go.uber.org/zap"
)

// ZooHandler serves the /zoos endpoints on top of a ZooRepository.
type ZooHandler struct {
	zoos      store.ZooRepository
	validator *validator.Validator
	logger    *zap.Logger
}

// NewZooHandler wires a ZooHandler to its repository, validator and logger.
func NewZooHandler(zoos store.ZooRepository, v *validator.Validator, logger *zap.Logger) *ZooHandler {
	return &ZooHandler{
		zoos:      zoos,
		validator: v,
		logger:    logger,
	}
}

// RegisterRoutes mounts the zoo resource under rg.
func (h *ZooHandler) RegisterRoutes(rg *gin.RouterGroup) {
	zoos := rg.Group("/zoos")
	{
		zoos.POST("", h.Create)
		zoos.GET("", h.List)
		zoos.GET("/:id", h.Get)
		zoos.PUT("/:id", h.Update)
		zoos.DELETE("/:id", h.Delete)
	}
}

// Create inserts the request body as a new row.
// POST /api/zoos
func (h *ZooHandler) Create(c *gin.Context) {
	fields, ok := h.bindZoo(c)
	if !ok {
		return
	}

	ids, err := h.zoos.Insert(c.Request.Context(), fields)
	if err != nil {
		_ = c.Error(domain.StoreError(err))
		return
	}

	c.JSON(http.StatusCreated, api.MessageResponse{
		Message: "New Zoo created with an ID " + joinIDs(ids),
	})
}

// List returns every zoo.
// GET /api/zoos
func (h *ZooHandler) List(c *gin.Context) {
	zoos, err := h.zoos.List(c.Request.Context())
	if err != nil {
		_ = c.Error(domain.StoreError(err))
		return
	}

	c.JSON(http.StatusOK, nonNil(zoos))
}

// Get returns the zoos matching the path id as an array.
// GET /api/zoos/:id
func (h *ZooHandler) Get(c *gin.Context) {
	id := c.Param("id")

	zoos, err := h.zoos.FindByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(domain.StoreError(err))
		return
	}

	if len(zoos) == 0 {
		_ = c.Error(domain.ZooNotFound(id))
		return
	}

	c.JSON(http.StatusOK, zoos)
}

// Delete removes the zoos matching the path id and returns how many went.
// DELETE /api/zoos/:id
func (h *ZooHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.zoos.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(domain.StoreError(err))
		return
	}

	if deleted < 1 {
		_ = c.Error(domain.ZooNotFound(id))
		return
	}

	c.JSON(http.StatusOK, deleted)
}

// Update overwrites the matching zoos with the body, then reads them back.
// The two calls are not atomic.
// PUT /api/zoos/:id
func (h *ZooHandler) Update(c *gin.Context) {
	id := c.Param("id")

	fields, ok := h.bindZoo(c)
	if !ok {
		return
	}

	updated, err := h.zoos.Update(c.Request.Context(), id, fields)
	if err != nil {
		_ = c.Error(domain.StoreError(err))
		return
	}

	if updated < 1 {
		_ = c.Error(domain.ZooNotFound(id))
		return
	}

	zoos, err := h.zoos.FindByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(domain.StoreError(err))
		return
	}

	c.JSON(http.StatusOK, nonNil(zoos))
}

// bindZoo decodes the body and checks for a non-empty string name.
// Any failure is reported as the same missing-name error.
func (h *ZooHandler) bindZoo(c *gin.Context) (model.Fields, bool) {
	var fields model.Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		h.logger.Debug("Unreadable zoo body", zap.Error(err))
		_ = c.Error(domain.ValidationError(domain.MsgNameRequired))
		return nil, false
	}

	if err := h.validator.Struct(fields.Input()); err != nil {
		h.logger.Debug("Invalid zoo body", zap.Any("errors", h.validator.ParseError(err)))
		_ = c.Error(domain.ValidationError(domain.MsgNameRequired))
		return nil, false
	}

	return fields.Writable(), true
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func nonNil(zoos []model.Zoo) []model.Zoo {
	if zoos == nil {
		return []model.Zoo{}
	}
	return zoos
}
