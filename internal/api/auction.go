package api

import (
	"encoding/json"
	"net/http"

	"cricketmgr.dev/core/internal/core"
	"cricketmgr.dev/core/internal/service"
)

// AuctionRoutes exposes the per-player sealed-ascending auction loop: advance
// the queue, bid, skip, or auto-bid to a ceiling.
type AuctionRoutes struct {
	svc *service.Service
}

func NewAuctionRoutes(svc *service.Service) *AuctionRoutes {
	return &AuctionRoutes{svc: svc}
}

func (ar *AuctionRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/careers/{careerID}/seasons/{seasonID}/auction/start", ar.handleStart)
	mux.HandleFunc("POST /v1/careers/{careerID}/seasons/{seasonID}/auction/next", ar.handleNext)
	mux.HandleFunc("POST /v1/careers/{careerID}/seasons/{seasonID}/auction/skip", ar.handleSkip)
	mux.HandleFunc("POST /v1/careers/{careerID}/seasons/{seasonID}/auction/quick-pass", ar.handleQuickPass)
	mux.HandleFunc("POST /v1/careers/{careerID}/seasons/{seasonID}/auction/bid", ar.handleBid)
	mux.HandleFunc("POST /v1/careers/{careerID}/seasons/{seasonID}/auction/auto-bid", ar.handleAutoBid)
	mux.HandleFunc("POST /v1/careers/{careerID}/seasons/{seasonID}/auction/finalize", ar.handleFinalize)
}

// handleStart godoc
// @Summary Start the season auction
// @Tags auction
// @Produce json
// @Param careerID path string true "Career ID"
// @Param seasonID path string true "Season ID"
// @Success 201 {object} core.Auction
// @Failure 400 {object} ErrorResponse
// @Router /careers/{careerID}/seasons/{seasonID}/auction/start [post]
func (ar *AuctionRoutes) handleStart(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	seasonID := core.SeasonID(r.PathValue("seasonID"))

	auction, err := ar.svc.StartAuction(r.Context(), careerID, seasonID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, auction)
}

// handleNext godoc
// @Summary Advance to the next player up for auction
// @Tags auction
// @Produce json
// @Param careerID path string true "Career ID"
// @Param seasonID path string true "Season ID"
// @Success 200 {object} auction.NextPlayerResult
// @Router /careers/{careerID}/seasons/{seasonID}/auction/next [post]
func (ar *AuctionRoutes) handleNext(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	seasonID := core.SeasonID(r.PathValue("seasonID"))

	result, err := ar.svc.NextAuctionPlayer(r.Context(), careerID, seasonID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSkip godoc
// @Summary Auction off every remaining player in a category to AI bidders only
// @Tags auction
// @Produce json
// @Param careerID path string true "Career ID"
// @Param seasonID path string true "Season ID"
// @Param category query string true "Auction category (batsmen, bowlers, allrounders, wicketkeepers, marquee)"
// @Success 200 {array} auction.AuctionPlayerResult
// @Failure 400 {object} ErrorResponse
// @Router /careers/{careerID}/seasons/{seasonID}/auction/skip [post]
func (ar *AuctionRoutes) handleSkip(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	seasonID := core.SeasonID(r.PathValue("seasonID"))

	category, ok := core.ParseAuctionCategory(r.URL.Query().Get("category"))
	if !ok {
		writeBadRequest(w, "unknown or missing category")
		return
	}

	results, err := ar.svc.SkipCategory(r.Context(), careerID, seasonID, category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// handleQuickPass godoc
// @Summary Skip the user's participation in just the current player's bidding
// @Tags auction
// @Produce json
// @Param careerID path string true "Career ID"
// @Param seasonID path string true "Season ID"
// @Success 200 {object} auction.AuctionPlayerResult
// @Router /careers/{careerID}/seasons/{seasonID}/auction/quick-pass [post]
func (ar *AuctionRoutes) handleQuickPass(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	seasonID := core.SeasonID(r.PathValue("seasonID"))

	result, err := ar.svc.QuickPassPlayer(r.Context(), careerID, seasonID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type bidResponse struct {
	Amount int64 `json:"amount"`
}

// handleBid godoc
// @Summary Place the user's bid for the player currently up for auction
// @Tags auction
// @Produce json
// @Param careerID path string true "Career ID"
// @Param seasonID path string true "Season ID"
// @Success 200 {object} bidResponse
// @Failure 409 {object} ErrorResponse
// @Router /careers/{careerID}/seasons/{seasonID}/auction/bid [post]
func (ar *AuctionRoutes) handleBid(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	seasonID := core.SeasonID(r.PathValue("seasonID"))

	amount, err := ar.svc.PlaceUserBid(r.Context(), careerID, seasonID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bidResponse{Amount: amount})
}

type autoBidRequest struct {
	Ceiling int64 `json:"ceiling"`
}

// handleAutoBid godoc
// @Summary Declare a ceiling and let the bidding round resolve automatically
// @Tags auction
// @Accept json
// @Produce json
// @Param careerID path string true "Career ID"
// @Param seasonID path string true "Season ID"
// @Success 200 {object} auction.AutoBidResult
// @Router /careers/{careerID}/seasons/{seasonID}/auction/auto-bid [post]
func (ar *AuctionRoutes) handleAutoBid(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	seasonID := core.SeasonID(r.PathValue("seasonID"))

	var req autoBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Ceiling <= 0 {
		writeBadRequest(w, "ceiling must be positive")
		return
	}

	result, err := ar.svc.AutoBidToCeiling(r.Context(), careerID, seasonID, req.Ceiling)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleFinalize godoc
// @Summary Finalize the sale/unsold outcome for the current player
// @Tags auction
// @Produce json
// @Param careerID path string true "Career ID"
// @Param seasonID path string true "Season ID"
// @Success 200 {object} auction.AuctionPlayerResult
// @Router /careers/{careerID}/seasons/{seasonID}/auction/finalize [post]
func (ar *AuctionRoutes) handleFinalize(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	seasonID := core.SeasonID(r.PathValue("seasonID"))

	result, err := ar.svc.FinalizeCurrentPlayer(r.Context(), careerID, seasonID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
