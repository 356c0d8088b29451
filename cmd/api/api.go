package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"safar/docs" // this is required to generate swagger docs
	"safar/internal/auth"
	"safar/internal/backoffice"
	"safar/internal/command"
	"safar/internal/domain/listings"
	"safar/internal/domain/tickets"
	"safar/internal/ratelimiter"
	"safar/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         store.Store
	backoffice    *backoffice.Service
	commands      *command.Handler
	tickets       *tickets.ReferenceGenerator
	logger        *zap.SugaredLogger
	authenticator auth.Authenticator
	rateLimiter   *ratelimiter.Limiter
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	auth        authConfig
	tickets     ticketConfig
	expo        expoConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}
type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}
type basicConfig struct {
	user string
	pass string
}

type ticketConfig struct {
	referenceSecret string
}

type expoConfig struct {
	accessToken string
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// requests past this deadline see ctx.Done() and stop
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.RateLimiterMiddleware)
			r.Use(app.AdminAuthMiddleware)

			r.Get("/overview", app.overviewHandler)

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", app.listBookingsHandler)
				r.Get("/{bookingID}", app.getBookingHandler)
				r.Post("/{bookingID}/actions", app.actionHandler(command.Booking, "bookingID"))
			})

			r.Get("/properties", app.listListingsHandler(listings.KindProperty))
			r.Get("/vehicles", app.listListingsHandler(listings.KindVehicle))
			r.Get("/tours", app.listListingsHandler(listings.KindTour))
			r.Route("/listings/{listingID}", func(r chi.Router) {
				r.Get("/", app.getListingHandler)
				r.Post("/actions", app.actionHandler(command.Listing, "listingID"))
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", app.listReviewsHandler)
				r.Post("/{reviewID}/actions", app.actionHandler(command.Review, "reviewID"))
			})

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", app.listTicketsHandler)
				r.Post("/", app.createTicketHandler)
				r.Get("/{ticketID}", app.getTicketHandler)
				r.Post("/{ticketID}/actions", app.actionHandler(command.Ticket, "ticketID"))
			})

			r.Get("/audit-logs", app.listAuditLogsHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	go app.cleanupRateLimiter(bgCtx, time.Minute)

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	// let in-flight booking pushes finish
	app.commands.Wait()

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}

// cleanupRateLimiter drops idle client buckets until ctx is done.
func (app *application) cleanupRateLimiter(ctx context.Context, every time.Duration) {
	if !app.config.rateLimiter.Enabled {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.rateLimiter.Cleanup(); n > 0 {
				app.logger.Debugw("rate limiter cleanup", "removed", n)
			}
		}
	}
}
