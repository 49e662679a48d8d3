package handlers

import (
	"context"
	"io"
	"net/http"

	"travelhub/apperr"
	"travelhub/services/pagination"
	"travelhub/utils"

	"github.com/gin-gonic/gin"
)

// InventoryManager is the admin-managed catalogue of one package type.
type InventoryManager[T any] interface {
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id string, item *T) (*T, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, query string, page, pageSize int) (pagination.Page[T], error)
	AddImage(ctx context.Context, id string, file io.Reader) (string, error)
}

type InventoryHandler[T any] struct {
	svc  InventoryManager[T]
	kind string
}

func NewInventoryHandler[T any](kind string, svc InventoryManager[T]) *InventoryHandler[T] {
	return &InventoryHandler[T]{svc: svc, kind: kind}
}

func (h *InventoryHandler[T]) List(c *gin.Context) {
	logger := getLogger(c)
	page, size, err := pageParams(c)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	result, err := h.svc.List(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, h.kind+" list retrieved", result)
}

func (h *InventoryHandler[T]) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	utils.Respond(c, http.StatusOK, h.kind+" retrieved", item)
}

func (h *InventoryHandler[T]) Create(c *gin.Context) {
	logger := getLogger(c)
	var item T
	if err := bindJSON(c, &item); err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), &item)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusCreated, h.kind+" created", created)
}

func (h *InventoryHandler[T]) Update(c *gin.Context) {
	logger := getLogger(c)
	var item T
	if err := bindJSON(c, &item); err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), &item)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusOK, h.kind+" updated", updated)
}

func (h *InventoryHandler[T]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	utils.Respond(c, http.StatusOK, h.kind+" deleted", nil)
}

// UploadImage accepts a multipart "file" field and appends its URL to the
// package's images.
func (h *InventoryHandler[T]) UploadImage(c *gin.Context) {
	logger := getLogger(c)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, logger, apperr.Validation("file not provided"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, logger, apperr.Validation("file could not be read"))
		return
	}
	defer file.Close()

	url, err := h.svc.AddImage(c.Request.Context(), c.Param("id"), file)
	if err != nil {
		utils.RespondError(c, logger, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Image uploaded", gin.H{"url": url})
}
