package main

import (
	auth "Condutor/internal/auth"
	conduit "Condutor/internal/calc/conduit"
	gauge "Condutor/internal/calc/gauge"
	batch "Condutor/internal/calc/premium/batch"
	importer "Condutor/internal/calc/premium/importer"
	report "Condutor/internal/calc/report"
	shortcircuit "Condutor/internal/calc/shortcircuit"
	thermal "Condutor/internal/calc/thermal"
	voltagedrop "Condutor/internal/calc/voltagedrop"
	pay "Condutor/internal/pay"
	profile "Condutor/internal/profile"
	repo "Condutor/internal/repo"
	"Condutor/internal/tables"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"log"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB, cat *tables.Catalog) {
	userRepo := repo.NewPostgresUserDB(db)

	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: userRepo}
	profileH := &profile.ProfileHandler{Repo: userRepo}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/profile", profileH.UpdateProfile).Methods("PATCH", "PUT")
	secureApi.HandleFunc("/profile/{id:[0-9]+}", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/upload-avatar", profileH.UploadAvatar).Methods("POST")

	voltagedropH := &voltagedrop.Handler{}
	gaugeH := &gauge.Handler{Tables: cat}
	conduitH := &conduit.Handler{Tables: cat}
	shortcircuitH := &shortcircuit.Handler{}
	thermalH := &thermal.Handler{}
	reportH := &report.Handler{}
	batchH := &batch.Handler{Tables: cat}
	importerH := &importer.Handler{Tables: cat}

	secureApi.HandleFunc("/tools/voltagedrop/calc", voltagedropH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/gauge/calc", gaugeH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/conduit/calc", conduitH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/shortcircuit/calc", shortcircuitH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/thermal/calc", thermalH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/batch/gauge", batchH.Gauges).Methods("POST")
	secureApi.HandleFunc("/tools/import/gauge", importerH.Gauges).Methods("POST")

	payClient := pay.NewClient(os.Getenv("PAY_TERMINAL_KEY"), os.Getenv("PAY_PASSWORD"), os.Getenv("PAY_BASE_URL"))
	payH := &pay.Handler{Client: payClient, Repo: userRepo}
	secureApi.HandleFunc("/premium/checkout", payH.Checkout).Methods("POST")
	api.HandleFunc("/premium/notify", payH.Notify).Methods("POST")

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	profileFileServer := http.FileServer(http.Dir("./static/profile"))
	mux.Handle("/profile/{id:[0-9]+}", authEnv.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./static/profile/index.html")
	})))
	mux.PathPrefix("/profile/").
		Handler(authEnv.AuthMiddleware(http.StripPrefix("/profile", profileFileServer)))
	mux.PathPrefix("/uploads/").
		Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir("./static/uploads/"))))
	mainFileServer := http.FileServer(http.Dir("./static/main"))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, relying on environment")
	}

	tablesDir := os.Getenv("TABLES_DIR")
	if tablesDir == "" {
		tablesDir = "./data"
	}
	cat, err := tables.Load(tablesDir)
	if err != nil {
		// The service still starts; sizing endpoints answer 503.
		log.Printf("reference tables unavailable: %v", err)
		cat = nil
	} else if err := cat.Validate(); err != nil {
		log.Printf("reference tables rejected: %v", err)
		cat = nil
	}

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	log.Println("Starting server on :443")
	HandleList(mux, db, cat)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    ":443",
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received!")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
