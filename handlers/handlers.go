// Package handlers wires the HTTP surface: auth endpoints, the route
// guard and the finance views.
package handlers

import (
	"context"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"cryptocortex/auth"
	"cryptocortex/market"
	"cryptocortex/models"
)

// AuthService is the auth state machine the handlers drive.
type AuthService interface {
	Register(ctx context.Context, form auth.RegisterForm) (int64, error)
	Login(ctx context.Context, form auth.LoginForm, userAgent, ipAddress string) (*models.Session, error)
	Logout(ctx context.Context, token string) error
}

// Sessions is the slice of the session manager the handlers need:
// lookups for the guard plus one-shot flash messages.
type Sessions interface {
	Get(ctx context.Context, token string) (*models.Session, error)
	DestroyAll(ctx context.Context, userID int64) error
	PutFlash(ctx context.Context, w http.ResponseWriter, message string) error
	PopFlash(ctx context.Context, w http.ResponseWriter, r *http.Request) string
}

// FinanceStore persists budgets and transactions per user.
type FinanceStore interface {
	ListBudgets(ctx context.Context, userID int64) ([]models.Budget, error)
	UpsertBudget(ctx context.Context, userID int64, category string, limit float64) error
	DeleteBudget(ctx context.Context, userID int64, category string) error
	RecordSpending(ctx context.Context, userID int64, category string, amount float64) error
	ListTransactions(ctx context.Context, userID int64, limit int) ([]models.Transaction, error)
	AddTransaction(ctx context.Context, t models.Transaction) (int64, error)
	SpendingByCategory(ctx context.Context, userID int64) (map[string]float64, error)
}

// MarketClient fetches coin prices for the market page.
type MarketClient interface {
	TopCoins(ctx context.Context, count int) ([]market.Coin, error)
}

// NewsClient fetches crypto headlines for the news page.
type NewsClient interface {
	Latest(ctx context.Context) ([]market.Article, error)
}

// SupportMailer forwards support form submissions.
type SupportMailer interface {
	SendSupportRequest(name, email, message string) error
}

type Handlers struct {
	auth        AuthService
	sessions    Sessions
	finance     FinanceStore
	market      MarketClient
	news        NewsClient
	mailer      SupportMailer
	sessionTTL  time.Duration
	templateDir string
}

func New(a AuthService, s Sessions, f FinanceStore, m MarketClient, n NewsClient, mail SupportMailer, sessionTTL time.Duration) *Handlers {
	return &Handlers{
		auth:        a,
		sessions:    s,
		finance:     f,
		market:      m,
		news:        n,
		mailer:      mail,
		sessionTTL:  sessionTTL,
		templateDir: "./ui/html",
	}
}

// Router builds the route table. Protected views sit behind the
// RequireAuth guard; everything else is public.
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Get("/register", h.RegisterPage)
	r.Post("/register", h.Register)
	r.Get("/logout", h.Logout)

	r.Get("/about", h.About)
	r.Get("/support", h.SupportPage)
	r.Post("/support", h.Support)
	r.Get("/market", h.Market)
	r.Get("/crypto-news", h.News)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Get("/", h.Dashboard)
		r.Get("/budgets", h.Budgets)
		r.Post("/budgets/add", h.AddBudget)
		r.Post("/budgets/delete", h.DeleteBudget)
		r.Get("/transactions/history", h.TransactionHistory)
		r.Post("/transactions", h.AddTransaction)
		r.Get("/settings", h.SettingsPage)
		r.Post("/settings", h.UpdateSettings)
		r.Post("/settings/logout-all", h.LogoutEverywhere)
	})

	r.NotFound(h.NotFound)

	return r
}

func (h *Handlers) render(w http.ResponseWriter, page string, data any) {
	tmpl, err := template.ParseFiles(filepath.Join(h.templateDir, page))
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Error rendering template: "+err.Error(), http.StatusInternalServerError)
	}
}
