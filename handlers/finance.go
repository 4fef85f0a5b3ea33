package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/thoas/go-funk"

	"cryptocortex/logger"
	"cryptocortex/models"
)

const recentTransactions = 5

type dashboardData struct {
	models.PageData
	Balance      float64
	Transactions []models.Transaction
}

// Dashboard shows the balance and the most recent transactions.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())

	all, err := h.finance.ListTransactions(r.Context(), user.ID, 0)
	if err != nil {
		logger.Log.Errorw("loading dashboard", "error", err, "user", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	recent := all
	if len(recent) > recentTransactions {
		recent = recent[:recentTransactions]
	}

	data := dashboardData{
		Balance:      balanceOf(all),
		Transactions: recent,
	}
	data.User = user
	data.Flash = h.sessions.PopFlash(r.Context(), w, r)
	h.render(w, "index.html", data)
}

func balanceOf(txs []models.Transaction) float64 {
	var balance float64
	for _, t := range txs {
		if t.Type == models.TransactionIncome {
			balance += t.Amount
		} else {
			balance -= t.Amount
		}
	}
	return balance
}

type budgetsData struct {
	models.PageData
	Budgets []models.Budget
}

// Budgets renders the budget list for the logged-in user.
func (h *Handlers) Budgets(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())

	budgets, err := h.finance.ListBudgets(r.Context(), user.ID)
	if err != nil {
		logger.Log.Errorw("listing budgets", "error", err, "user", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := budgetsData{Budgets: budgets}
	data.User = user
	data.Flash = h.sessions.PopFlash(r.Context(), w, r)
	h.render(w, "budget.html", data)
}

// AddBudget creates or updates the budget for a category, then
// redirects back to the budget page.
func (h *Handlers) AddBudget(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())

	category := r.FormValue("category")
	limit, err := strconv.ParseFloat(r.FormValue("limit"), 64)
	if category == "" || err != nil || limit < 0 {
		if ferr := h.sessions.PutFlash(r.Context(), w, "Category and a valid limit are required"); ferr != nil {
			logger.Log.Warnw("flash store failed", "error", ferr)
		}
		http.Redirect(w, r, "/budgets", http.StatusSeeOther)
		return
	}

	if err := h.finance.UpsertBudget(r.Context(), user.ID, category, limit); err != nil {
		logger.Log.Errorw("saving budget", "error", err, "user", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/budgets", http.StatusSeeOther)
}

// DeleteBudget removes the budget for a category.
func (h *Handlers) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())

	if err := h.finance.DeleteBudget(r.Context(), user.ID, r.FormValue("category")); err != nil {
		logger.Log.Errorw("deleting budget", "error", err, "user", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/budgets", http.StatusSeeOther)
}

type transactionsData struct {
	models.PageData
	Transactions []models.Transaction
	Spending     map[string]float64
}

// TransactionHistory renders the full transaction list with the
// per-category spending report.
func (h *Handlers) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())

	txs, err := h.finance.ListTransactions(r.Context(), user.ID, 0)
	if err != nil {
		logger.Log.Errorw("listing transactions", "error", err, "user", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	spending, err := h.finance.SpendingByCategory(r.Context(), user.ID)
	if err != nil {
		logger.Log.Errorw("building spending report", "error", err, "user", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := transactionsData{Transactions: txs, Spending: spending}
	data.User = user
	data.Flash = h.sessions.PopFlash(r.Context(), w, r)
	h.render(w, "transaction-history.html", data)
}

// AddTransaction records a transaction and, for expenses, rolls the
// amount into the matching budget.
func (h *Handlers) AddTransaction(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r.Context())

	kind := r.FormValue("type")
	if !funk.ContainsString([]string{models.TransactionIncome, models.TransactionExpense}, kind) {
		if ferr := h.sessions.PutFlash(r.Context(), w, "Transaction type must be Income or Expense"); ferr != nil {
			logger.Log.Warnw("flash store failed", "error", ferr)
		}
		http.Redirect(w, r, "/transactions/history", http.StatusSeeOther)
		return
	}

	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil || amount <= 0 {
		if ferr := h.sessions.PutFlash(r.Context(), w, "A positive amount is required"); ferr != nil {
			logger.Log.Warnw("flash store failed", "error", ferr)
		}
		http.Redirect(w, r, "/transactions/history", http.StatusSeeOther)
		return
	}

	date, err := time.Parse("2006-01-02", r.FormValue("date"))
	if err != nil {
		date = time.Now()
	}

	t := models.Transaction{
		UserID:      user.ID,
		Date:        date,
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Type:        kind,
		Amount:      amount,
	}

	if _, err := h.finance.AddTransaction(r.Context(), t); err != nil {
		logger.Log.Errorw("adding transaction", "error", err, "user", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if t.Type == models.TransactionExpense {
		if err := h.finance.RecordSpending(r.Context(), user.ID, t.Category, t.Amount); err != nil {
			logger.Log.Warnw("recording budget spending", "error", err, "user", user.ID)
		}
	}

	http.Redirect(w, r, "/transactions/history", http.StatusSeeOther)
}

// SettingsPage renders the account settings form.
func (h *Handlers) SettingsPage(w http.ResponseWriter, r *http.Request) {
	data := models.PageData{User: CurrentUser(r.Context())}
	data.Flash = h.sessions.PopFlash(r.Context(), w, r)
	h.render(w, "settings.html", data)
}

// UpdateSettings answers the settings form with a JSON result, the
// way the reference app did.
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	email := r.FormValue("email")

	w.Header().Set("Content-Type", "application/json")

	result := map[string]any{"success": false, "message": "Username and email are required!"}
	if username != "" && email != "" {
		result["success"] = true
		result["message"] = "Account updated successfully!"
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.Log.Errorw("encoding settings response", "error", err)
	}
}
