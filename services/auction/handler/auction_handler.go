package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	model "auction-house/internal/models"
	"auction-house/services/auction/helpers"
	"auction-house/utils"
)

type AuctionServiceInterface interface {
	PlaceBid(itemID, userID string, amount float64) (model.Bid, error)
	CreateItem(ownerID, name, description string, startingPrice float64, endTime time.Time) (model.Item, error)
	GetItem(itemID string) (model.Item, error)
	ListItems() ([]model.Item, error)
	UpdateItem(ownerID string, update model.Item) (model.Item, error)
	DeleteItem(ownerID, itemID string) error
	BidsForItem(itemID string) ([]model.Bid, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// PlaceBidHandler handles POST /items/:item_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	user, ok := utils.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, errors.New("no authenticated user"), "unauthorized")
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	itemID := c.Param("item_id")
	bid, err := h.service.PlaceBid(itemID, user.UserID, req.BidAmount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("PlaceBidHandler: failed to place bid", map[string]any{
			"item_id": itemID,
			"user_id": user.UserID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":  bid.BidID,
		"item_id": bid.ItemID,
		"user_id": user.UserID,
		"amount":  bid.Amount,
	})
}

// GetBidsByItemHandler handles GET /items/:item_id/bids
func (h *AuctionHandler) GetBidsByItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	bids, err := h.service.BidsForItem(itemID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByItemHandler: error retrieving bids", map[string]any{"item_id": itemID, "error": err.Error()})
		return
	}

	resp := lo.Map(bids, func(b model.Bid, _ int) helpers.BidResponse {
		return helpers.ToBidResponse(b)
	})
	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
}

// CreateItemHandler handles POST /items
func (h *AuctionHandler) CreateItemHandler(c *gin.Context) {
	user, ok := utils.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, errors.New("no authenticated user"), "unauthorized")
		return
	}

	var req helpers.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateItemHandler", err)
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		helpers.HandleBindError(c, "CreateItemHandler", fmt.Errorf("invalid end_time: %w", err))
		return
	}

	item, err := h.service.CreateItem(user.UserID, req.Name, req.Description, req.StartingPrice, endTime)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CreateItemHandler: failed to create item", map[string]any{
			"owner_id": user.UserID,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToItemResponse(item), "item created successfully")
	helpers.LogSuccess("CreateItemHandler", "item created successfully", map[string]any{
		"item_id":  item.ItemID,
		"owner_id": user.UserID,
	})
}

// GetItemHandler handles GET /items/:item_id
func (h *AuctionHandler) GetItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	item, err := h.service.GetItem(itemID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.ToItemResponse(item), "item retrieved successfully")
}

// ListItemsHandler handles GET /items
func (h *AuctionHandler) ListItemsHandler(c *gin.Context) {
	items, err := h.service.ListItems()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	resp := lo.Map(items, func(item model.Item, _ int) helpers.ItemResponse {
		return helpers.ToItemResponse(item)
	})
	utils.JSONResponse(c, http.StatusOK, resp, "items retrieved successfully")
}

// UpdateItemHandler handles PUT /items/:item_id
func (h *AuctionHandler) UpdateItemHandler(c *gin.Context) {
	user, ok := utils.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, errors.New("no authenticated user"), "unauthorized")
		return
	}

	var req helpers.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateItemHandler", err)
		return
	}

	update := model.Item{
		ItemID:      c.Param("item_id"),
		Name:        req.Name,
		Description: req.Description,
	}
	if req.EndTime != "" {
		endTime, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			helpers.HandleBindError(c, "UpdateItemHandler", fmt.Errorf("invalid end_time: %w", err))
			return
		}
		update.EndTime = endTime
	}

	item, err := h.service.UpdateItem(user.UserID, update)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("UpdateItemHandler: failed to update item", map[string]any{
			"item_id": update.ItemID,
			"user_id": user.UserID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToItemResponse(item), "item updated successfully")
}

// DeleteItemHandler handles DELETE /items/:item_id
func (h *AuctionHandler) DeleteItemHandler(c *gin.Context) {
	user, ok := utils.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, errors.New("no authenticated user"), "unauthorized")
		return
	}

	itemID := c.Param("item_id")
	if err := h.service.DeleteItem(user.UserID, itemID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteItemHandler: failed to delete item", map[string]any{
			"item_id": itemID,
			"user_id": user.UserID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "item deleted successfully")
}
