package auctionhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentauction/internal/services/auction"
)

type Handler struct {
	svc auction.IAuctionService
}

func New(svc auction.IAuctionService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/auctions", h.create)
	r.GET("/auctions", h.list)
	r.GET("/auctions/:id", h.info)
	r.GET("/auctions/:id/bids", h.bids)
	r.GET("/auctions/:id/winning-bid", h.winning)
	r.POST("/auctions/:id/bids", h.bid)
	r.DELETE("/auctions/:id/bids/:bid_id", h.dropBid)
	r.POST("/auctions/:id/cancel", h.cancel)
	r.POST("/rentals/:id/confirm-payment", h.confirmPayment)
}

// create opens an auction for an apartment the requester owns.
func (h *Handler) create(c *gin.Context) {
	var body CreateAuctionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.svc.CreateAuction(c.Request.Context(), auction.CreateAuctionInput{
		ApartmentID:         body.ApartmentID,
		RequesterID:         body.RequesterID,
		StartTime:           body.StartTime.UTC(),
		EndTime:             body.EndTime.UTC(),
		StartingPrice:       body.StartingPrice,
		MinimumBidIncrement: body.MinimumBidIncrement,
		RentalStartDate:     body.RentalStartDate.UTC(),
		RentalEndDate:       body.RentalEndDate.UTC(),
		MaxBidders:          body.MaxBidders,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// info returns the auction with its high bid and minimum next bid.
func (h *Handler) info(c *gin.Context) {
	dto, err := h.svc.GetAuction(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// list pages through auctions, optionally filtered by status.
func (h *Handler) list(c *gin.Context) {
	var q ListAuctionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.svc.ListAuctions(c.Request.Context(), q.Status, q.Limit, q.Offset)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) bids(c *gin.Context) {
	out, err := h.svc.GetBids(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// winning returns the bid that would win if the auction ended now.
func (h *Handler) winning(c *gin.Context) {
	b, err := h.svc.GetWinningBid(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// bid places a bid. A bid below the minimum answers 422 with minimum_bid.
func (h *Handler) bid(c *gin.Context) {
	var body PlaceBidBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.svc.PlaceBid(c.Request.Context(), auction.PlaceBidInput{
		AuctionID:        c.Param("id"),
		BidderID:         body.BidderID,
		Amount:           body.Amount,
		IsAutoBid:        body.IsAutoBid,
		MaxAutoBidAmount: body.MaxAutoBidAmount,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// dropBid withdraws a bid; requester_id must be the bidder or an admin.
func (h *Handler) dropBid(c *gin.Context) {
	requester := c.Query("requester_id")
	if requester == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "requester_id is required", Kind: "validation"})
		return
	}
	if err := h.svc.DropBid(c.Request.Context(), c.Param("id"), c.Param("bid_id"), requester); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) cancel(c *gin.Context) {
	var body RequesterBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.svc.CancelAuction(c.Request.Context(), c.Param("id"), body.RequesterID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// confirmPayment records the winner's payment before the deadline.
func (h *Handler) confirmPayment(c *gin.Context) {
	r, err := h.svc.ConfirmAuctionPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
