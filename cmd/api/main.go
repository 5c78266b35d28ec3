package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/masapp/masapp-backend/internal/modules/auth"
	"github.com/masapp/masapp-backend/internal/modules/events"
	"github.com/masapp/masapp-backend/internal/modules/menu"
	"github.com/masapp/masapp-backend/internal/modules/notify"
	"github.com/masapp/masapp-backend/internal/modules/order"
	"github.com/masapp/masapp-backend/internal/modules/payment"
	"github.com/masapp/masapp-backend/internal/modules/qr"
	"github.com/masapp/masapp-backend/internal/modules/report"
	"github.com/masapp/masapp-backend/internal/modules/restaurant"
	"github.com/masapp/masapp-backend/internal/modules/session"
	"github.com/masapp/masapp-backend/internal/modules/staff"
	"github.com/masapp/masapp-backend/internal/modules/subscription"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment as-is")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Events ──────────────────────────────────────────────
	hub := events.NewHub()
	publisher := events.MultiPublisher{hub}
	if url := os.Getenv("NATS_URL"); url != "" {
		natsPub, err := events.NewNATSPublisher(url)
		if err != nil {
			log.Fatal(err)
		}
		defer natsPub.Close()
		publisher = append(publisher, natsPub)
		fmt.Println("Publishing order events to NATS")
	}
	events.NewSSEHandler(hub).RegisterRoutes(router)

	// ── Phase 1: Tenant & Identity ──────────────────────────
	restaurantRepo := restaurant.NewPostgresRepository(db)
	restaurantService := restaurant.NewService(restaurantRepo)
	restaurant.NewHandler(restaurantService).RegisterRoutes(router)

	staffRepo := staff.NewPostgresRepository(db)
	staffService := staff.NewService(staffRepo)
	staff.NewHandler(staffService).RegisterRoutes(router)

	authService := auth.NewService(staffRepo, os.Getenv("JWT_SECRET"))
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Phase 2: Menu & QR Access ───────────────────────────
	menuRepo := menu.NewPostgresRepository(db)
	menuService := menu.NewService(menuRepo)
	menu.NewHandler(menuService).RegisterRoutes(router)

	qrRepo := qr.NewPostgresRepository(db)
	qrService := qr.NewService(qrRepo, qr.DefaultTTL)
	qr.NewHandler(qrService).RegisterRoutes(router)

	// ── Phase 3: Table Sessions ─────────────────────────────
	stop := make(chan struct{})
	defer close(stop)

	sessionStore := session.NewStore()
	sessionStore.StartJanitor(30*time.Second, stop)
	sessionService := session.NewService(sessionStore, qrService)
	session.NewHandler(sessionService).RegisterRoutes(router)

	// ── Phase 4: Notifications ──────────────────────────────
	notifyStore := notify.NewStore()
	notifyStore.StartJanitor(time.Minute, stop)
	notifyService := notify.NewService(notifyStore, qrService)
	notify.NewHandler(notifyService).RegisterRoutes(router)

	// order events also land in the notification mailbox
	publisher = append(publisher, notify.NewEventBridge(notifyService))

	// ── Phase 5: Orders & Payments ──────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, menuService, qrService, publisher)
	order.NewHandler(orderService).RegisterRoutes(router)

	paymentRepo := payment.NewPostgresRepository(db)
	paymentService := payment.NewService(paymentRepo, orderService, qrService, publisher)
	payment.NewHandler(paymentService).RegisterRoutes(router)

	// ── Phase 6: Reporting ──────────────────────────────────
	reportService := report.NewService(orderService, restaurantService)
	report.NewHandler(reportService).RegisterRoutes(router)

	// ── Phase 7: Subscriptions ──────────────────────────────
	subscriptionRepo := subscription.NewPostgresRepository(db)
	subscriptionService := subscription.NewService(subscriptionRepo)
	subscription.StartOverdueSweep(subscriptionService, time.Hour, stop)
	subscription.NewHandler(subscriptionService).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("MasApp API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
