package handlers

import (
	"net/http"

	"cryptocortex/logger"
	"cryptocortex/market"
	"cryptocortex/models"
)

func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, "about.html", models.PageData{})
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	h.render(w, "404.html", models.PageData{})
}

type supportData struct {
	models.PageData
	Success bool
}

func (h *Handlers) SupportPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "support.html", supportData{})
}

// Support forwards the contact form to the support inbox and
// re-renders the page with a confirmation.
func (h *Handlers) Support(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	message := r.FormValue("message")

	data := supportData{}
	if name == "" || email == "" || message == "" {
		data.Error = "Name, email and message are all required."
		h.render(w, "support.html", data)
		return
	}

	if err := h.mailer.SendSupportRequest(name, email, message); err != nil {
		logger.Log.Errorw("forwarding support request", "error", err)
		data.Error = "Could not send your request. Please try again."
		h.render(w, "support.html", data)
		return
	}

	data.Success = true
	h.render(w, "support.html", data)
}

type marketData struct {
	models.PageData
	Coins []market.Coin
}

// Market shows the top coins by market cap. A failed fetch renders an
// empty list rather than an error page.
func (h *Handlers) Market(w http.ResponseWriter, r *http.Request) {
	coins, err := h.market.TopCoins(r.Context(), 5)
	if err != nil {
		logger.Log.Warnw("fetching market data", "error", err)
		coins = nil
	}

	h.render(w, "market.html", marketData{Coins: coins})
}

type newsData struct {
	models.PageData
	Articles []market.Article
}

// News lists recent crypto headlines, falling back to an empty list
// when the feed is unreachable.
func (h *Handlers) News(w http.ResponseWriter, r *http.Request) {
	articles, err := h.news.Latest(r.Context())
	if err != nil {
		logger.Log.Warnw("fetching news feed", "error", err)
		articles = nil
	}

	h.render(w, "crypto-news.html", newsData{Articles: articles})
}
