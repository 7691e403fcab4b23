package app

import (
	"github.com/MikelBai/Bank-management-application/internal/handler/account"
	"github.com/MikelBai/Bank-management-application/internal/handler/atm"
	"github.com/MikelBai/Bank-management-application/internal/handler/middleware"
	"github.com/MikelBai/Bank-management-application/internal/handler/requests"
	"github.com/MikelBai/Bank-management-application/internal/handler/teller"
	"github.com/MikelBai/Bank-management-application/internal/handler/user"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func (app *App) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.WithAuth(app.Config))

	userHandler := userhandler.New(app.Users)
	accountHandler := accounthandler.New(app.Accounts, app.Users)
	tellerHandler := tellerhandler.New(app.Teller, app.Accounts)
	requestHandler := requesthandler.New(app.Coordinator, app.Teller)
	atmHandler := atmhandler.New(app.Teller)

	r.Route("/api", func(r chi.Router) {
		r.Post("/user/register", userHandler.Register)
		r.Post("/user/login", userHandler.Login)

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", accountHandler.Create)
			r.Get("/", accountHandler.Owned)
			r.Get("/{accountID}", accountHandler.Summary)
			r.Put("/{accountID}/currency", accountHandler.SetCurrency)
			r.Post("/{accountID}/owners", accountHandler.AddOwner)
		})

		r.Route("/teller", func(r chi.Router) {
			r.Post("/deposit", tellerHandler.Deposit)
			r.Post("/withdraw", tellerHandler.Withdraw)
			r.Post("/transfer", tellerHandler.Transfer)
			r.Post("/paybill", tellerHandler.PayBill)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Post("/revert", requestHandler.SubmitRevert)
			r.Get("/", requestHandler.Pending)
			r.Post("/{index}/approve", requestHandler.Approve)
			r.Post("/{index}/reject", requestHandler.Reject)
		})

		r.Route("/atm", func(r chi.Router) {
			r.Get("/stock", atmHandler.Stock)
			r.Post("/restock", atmHandler.Restock)
		})
	})

	return r
}
