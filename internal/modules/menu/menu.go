// Package menu manages the navigation forest. Nodes without a parent are
// menus; nodes with a parent are items within them.
package menu

import (
	"context"
	"fmt"

	"github.com/coreinspect/core/internal/models"
	"github.com/coreinspect/core/internal/pkg/pagination"
	"github.com/coreinspect/core/internal/pkg/response"
	"github.com/coreinspect/core/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateNodeDTO struct {
	Label   string `json:"label" binding:"required"`
	Path    string `json:"path"  binding:"required"`
	Order   int    `json:"order"`
	Visible *bool  `json:"visible"`
}

type UpdateNodeDTO struct {
	Label   *string `json:"label"`
	Path    *string `json:"path"`
	Order   *int    `json:"order"`
	Visible *bool   `json:"visible"`
}

// Menu is a root node together with its ordered items.
type Menu struct {
	models.NavigationModel
	Items []models.NavigationModel `json:"items"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// List returns root menus with their items, ordered.
func (s *Service) List(ctx context.Context, q pagination.Query) ([]Menu, pagination.Meta, error) {
	query := s.db.WithContext(ctx).Model(&models.NavigationModel{}).Where("parent_id IS NULL")
	var roots []models.NavigationModel
	meta, err := pagination.Paginate(query.Order("`order` ASC, label ASC"), q, &roots)
	if err != nil {
		return nil, meta, err
	}

	menus := make([]Menu, 0, len(roots))
	for _, root := range roots {
		items, err := s.itemsOf(ctx, root.ID)
		if err != nil {
			return nil, meta, err
		}
		menus = append(menus, Menu{NavigationModel: root, Items: items})
	}
	return menus, meta, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Menu, error) {
	node, err := repository.Get[models.NavigationModel](ctx, s.db, repository.Criteria{"id": id}, true)
	if err != nil {
		return nil, err
	}
	items, err := s.itemsOf(ctx, node.ID)
	if err != nil {
		return nil, err
	}
	return &Menu{NavigationModel: *node, Items: items}, nil
}

func (s *Service) CreateMenu(ctx context.Context, dto *CreateNodeDTO) (*models.NavigationModel, error) {
	return s.createNode(ctx, dto, nil)
}

// CreateItem adds an item under an existing menu.
func (s *Service) CreateItem(ctx context.Context, menuID string, dto *CreateNodeDTO) (*models.NavigationModel, error) {
	parent, err := repository.Get[models.NavigationModel](ctx, s.db, repository.Criteria{"id": menuID}, false)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("%w: menu %q", repository.ErrNotFound, menuID)
	}
	return s.createNode(ctx, dto, &parent.ID)
}

func (s *Service) UpdateNode(ctx context.Context, id string, dto *UpdateNodeDTO) (*models.NavigationModel, error) {
	node, err := repository.Get[models.NavigationModel](ctx, s.db, repository.Criteria{"id": id}, true)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Label != nil {
		updates["label"] = *dto.Label
	}
	if dto.Path != nil {
		updates["path"] = *dto.Path
	}
	if dto.Order != nil {
		updates["order"] = *dto.Order
	}
	if dto.Visible != nil {
		updates["visible"] = *dto.Visible
	}
	if len(updates) == 0 {
		return node, nil
	}
	if err := repository.Update(ctx, s.db, node, updates); err != nil {
		return nil, err
	}
	return repository.Get[models.NavigationModel](ctx, s.db, repository.Criteria{"id": id}, true)
}

// DeleteNode removes a node and, for menus, all of its items.
func (s *Service) DeleteNode(ctx context.Context, id string) error {
	node, err := repository.Get[models.NavigationModel](ctx, s.db, repository.Criteria{"id": id}, true)
	if err != nil {
		return err
	}
	return repository.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&models.NavigationModel{}).Error; err != nil {
			return err
		}
		return repository.Delete(ctx, tx, node)
	})
}

func (s *Service) createNode(ctx context.Context, dto *CreateNodeDTO, parentID *string) (*models.NavigationModel, error) {
	visible := true
	if dto.Visible != nil {
		visible = *dto.Visible
	}
	node := models.NavigationModel{
		Label:    dto.Label,
		Path:     dto.Path,
		ParentID: parentID,
		Order:    dto.Order,
		Visible:  visible,
	}
	return &node, repository.Create(ctx, s.db, &node)
}

func (s *Service) itemsOf(ctx context.Context, parentID string) ([]models.NavigationModel, error) {
	var items []models.NavigationModel
	err := s.db.WithContext(ctx).Where("parent_id = ?", parentID).
		Order("`order` ASC, label ASC").Find(&items).Error
	return items, err
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	menus := rg.Group("/menus")
	menus.GET("", h.list)
	menus.GET("/:id", h.get)

	authed := menus.Group("", authMW)
	authed.POST("", h.createMenu)
	authed.PUT("/:id", h.updateNode)
	authed.DELETE("/:id", h.deleteNode)
	authed.POST("/:id/items", h.createItem)
	authed.PUT("/items/:itemId", h.updateItem)
	authed.DELETE("/items/:itemId", h.deleteItem)
}

func (h *Handler) list(c *gin.Context) {
	menus, meta, err := h.svc.List(c.Request.Context(), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, menus, meta)
}

func (h *Handler) get(c *gin.Context) {
	m, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, m)
}

func (h *Handler) createMenu(c *gin.Context) {
	var dto CreateNodeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	node, err := h.svc.CreateMenu(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, node)
}

func (h *Handler) createItem(c *gin.Context) {
	var dto CreateNodeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	node, err := h.svc.CreateItem(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, node)
}

func (h *Handler) updateNode(c *gin.Context) {
	h.update(c, c.Param("id"))
}

func (h *Handler) updateItem(c *gin.Context) {
	h.update(c, c.Param("itemId"))
}

func (h *Handler) update(c *gin.Context, id string) {
	var dto UpdateNodeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	node, err := h.svc.UpdateNode(c.Request.Context(), id, &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, node)
}

func (h *Handler) deleteNode(c *gin.Context) {
	if err := h.svc.DeleteNode(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) deleteItem(c *gin.Context) {
	if err := h.svc.DeleteNode(c.Request.Context(), c.Param("itemId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
