package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/brojonat/soldungen/service/views"
)

// handleHome renders network stats and the latest blocks.
// GET /
func handleHome(v *views.Views, tr *TemplateRenderer, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := v.Home(r.Context())
		renderPage(w, r, tr, logger, http.StatusOK, "home.html", page{Title: "Blocks", Nav: "home", Data: p})
	})
}

// handleMarket renders the newest pools filtered by the search box.
// GET /market?q={query}
func handleMarket(v *views.Views, tr *TemplateRenderer, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		p := v.Market(r.Context(), query)
		logger.Debug("market page", "query", query, "total", p.Total, "shown", len(p.Pools.Rows))
		renderPage(w, r, tr, logger, http.StatusOK, "market.html", page{Title: "Market", Nav: "market", Data: p})
	})
}

// handleTokens renders trending tokens and the market cap ranking.
// GET /tokens
func handleTokens(v *views.Views, tr *TemplateRenderer, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := v.Tokens(r.Context())
		renderPage(w, r, tr, logger, http.StatusOK, "tokens.html", page{Title: "Tokens", Nav: "tokens", Data: p})
	})
}

// handleToken renders one token's details and top holders.
// GET /token/{id}
func handleToken(v *views.Views, tr *TemplateRenderer, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mint := r.PathValue("id")
		p := v.Token(r.Context(), mint)

		status := http.StatusOK
		if p.Invalid != "" {
			logger.Debug("invalid token address", "mint", mint)
			status = http.StatusBadRequest
		}
		renderPage(w, r, tr, logger, status, "token.html", page{Title: "Token", Nav: "tokens", Data: p})
	})
}

// handleNFTs renders the sortable trending collections and the newest NFTs.
// GET /nfts?sort={field}&dir={asc|desc}
func handleNFTs(v *views.Views, tr *TemplateRenderer, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		p := v.NFTs(r.Context(), views.ParseSort(q.Get("sort"), q.Get("dir")))
		renderPage(w, r, tr, logger, http.StatusOK, "nfts.html", page{Title: "NFTs", Nav: "nfts", Data: p})
	})
}

// collectionData adds the scroll request to a collection page.
type collectionData struct {
	views.CollectionPage
	ScrollToDetail bool
}

// handleCollection renders one collection with the selected item's detail card.
// GET /nfts/{id}?item={mint}
func handleCollection(v *views.Views, tr *TemplateRenderer, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sel views.Selection
		var scroll bool
		if item := strings.TrimSpace(r.URL.Query().Get("item")); item != "" {
			scroll = sel.Select(item)
		}

		p := v.Collection(r.Context(), r.PathValue("id"), sel)
		renderPage(w, r, tr, logger, http.StatusOK, "collection.html", page{
			Title: "Collection",
			Nav:   "nfts",
			Data:  collectionData{CollectionPage: p, ScrollToDetail: scroll},
		})
	})
}

// handleTransactions renders recent transactions and, when the tx parameter
// is present, the result of looking it up.
// GET /transactions?tx={signature}
func handleTransactions(v *views.Views, tr *TemplateRenderer, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var lookup *string
		if q := r.URL.Query(); q.Has("tx") {
			sig := q.Get("tx")
			lookup = &sig
		}

		p := v.Transactions(r.Context(), lookup)
		renderPage(w, r, tr, logger, http.StatusOK, "transactions.html", page{Title: "Transactions", Nav: "transactions", Data: p})
	})
}
