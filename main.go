package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"tqm/internal/authgate"
	"tqm/internal/config"
	"tqm/internal/response"
	"tqm/internal/storage"
	"tqm/internal/store"
	"tqm/internal/websocket"
)

const appVersion = "1.0.0"

var (
	appStore *store.Store
	gate     *authgate.Gate
	hub      *websocket.Hub
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	legacyDir := flag.String("legacy", "", "Legacy data directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal("Config load failed:", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.Storage.DBPath = *dbPath
	}
	if *legacyDir != "" {
		cfg.Storage.LegacyDir = *legacyDir
	}

	if pass := os.Getenv("TQM_PASSPHRASE"); pass != "" {
		hash, err := authgate.HashPassphrase(pass)
		if err != nil {
			log.Fatal("Passphrase hash failed:", err)
		}
		cfg.PassphraseHash = hash
	}
	if cfg.PassphraseHash == "" {
		hash, err := authgate.HashPassphrase(config.DefaultPassphrase)
		if err != nil {
			log.Fatal("Passphrase hash failed:", err)
		}
		cfg.PassphraseHash = hash
	}

	legacy := storage.NewFileBackend(cfg.Storage.LegacyDir, cfg.Storage.FileQuota)
	backend, err := storage.NewSQLiteBackend(cfg.Storage.DBPath, cfg.Storage.StoreName, cfg.Storage.SQLiteQuota)
	if err != nil {
		log.Fatal("Storage init failed:", err)
	}

	hub = websocket.NewHub()
	appStore = store.New(backend, legacy, store.KeysWithPrefix(cfg.Storage.KeyPrefix))
	appStore.OnChange(hub.BroadcastChange)
	appStore.Load()

	gate = authgate.New(cfg.PassphraseHash)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("TQM server starting on http://localhost%s", addr)
	log.Fatal(http.ListenAndServe(addr, logging(newMux())))
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()

	// Auth routes
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			handleLogin(w, r)
		} else {
			http.Error(w, "Method not allowed", 405)
		}
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			handleLogout(w, r)
		} else {
			http.Error(w, "Method not allowed", 405)
		}
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		handleMe(w, r)
	})
	mux.HandleFunc("/auth/confirm", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			handleConfirm(w, r)
		} else {
			http.Error(w, "Method not allowed", 405)
		}
	})
	mux.HandleFunc("/auth/cancel", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			handleCancel(w, r)
		} else {
			http.Error(w, "Method not allowed", 405)
		}
	})

	// Live updates
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		websocket.Serve(hub, w, r)
	})

	// API routes - using a simple router
	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		path := strings.TrimPrefix(r.URL.Path, "/api/v1/")
		path = strings.TrimSuffix(path, "/")
		parts := strings.Split(path, "/")

		switch {
		// Products
		case parts[0] == "products" && len(parts) == 1 && r.Method == "GET":
			handleListProducts(w, r)
		case parts[0] == "products" && len(parts) == 1 && r.Method == "POST":
			handleCreateProduct(w, r)
		case parts[0] == "products" && len(parts) == 2 && r.Method == "PUT":
			handleUpdateProduct(w, r, parts[1])
		case parts[0] == "products" && len(parts) == 2 && r.Method == "DELETE":
			handleDeleteProduct(w, r, parts[1])

		// Team
		case parts[0] == "team" && len(parts) == 1 && r.Method == "GET":
			handleListTeam(w, r)
		case parts[0] == "team" && len(parts) == 1 && r.Method == "POST":
			handleCreateEmployee(w, r)
		case parts[0] == "team" && len(parts) == 2 && r.Method == "PUT":
			handleUpdateEmployee(w, r, parts[1])
		case parts[0] == "team" && len(parts) == 2 && r.Method == "DELETE":
			handleDeleteEmployee(w, r, parts[1])

		// KPI reports
		case parts[0] == "kpi" && len(parts) == 2 && parts[1] == "export" && r.Method == "GET":
			handleExportKPI(w, r)
		case parts[0] == "kpi" && len(parts) == 1 && r.Method == "GET":
			handleListKPI(w, r)
		case parts[0] == "kpi" && len(parts) == 1 && r.Method == "POST":
			handleUpsertKPI(w, r)

		// Documents
		case parts[0] == "documents" && len(parts) == 1 && r.Method == "GET":
			handleListDocuments(w, r)
		case parts[0] == "documents" && len(parts) == 1 && r.Method == "POST":
			handleCreateDocument(w, r)
		case parts[0] == "documents" && len(parts) == 2 && r.Method == "DELETE":
			handleDeleteDocument(w, r, parts[1])

		// Company profile
		case parts[0] == "company" && len(parts) == 1 && r.Method == "GET":
			handleGetCompany(w, r)
		case parts[0] == "company" && len(parts) == 1 && r.Method == "PUT":
			handlePutCompany(w, r)

		// Views
		case parts[0] == "view" && len(parts) == 1 && r.Method == "GET":
			handleGetView(w, r)
		case parts[0] == "view" && len(parts) == 1 && r.Method == "PUT":
			handlePutView(w, r)
		case parts[0] == "views" && len(parts) == 2 && r.Method == "GET":
			handleViewPayload(w, r, parts[1])

		// Database management
		case parts[0] == "database" && len(parts) == 2 && parts[1] == "export" && r.Method == "GET":
			handleExportDatabase(w, r)
		case parts[0] == "database" && len(parts) == 2 && parts[1] == "import" && r.Method == "POST":
			handleImportDatabase(w, r)
		case parts[0] == "database" && len(parts) == 2 && parts[1] == "reset" && r.Method == "POST":
			handleResetDatabase(w, r)
		case parts[0] == "database" && len(parts) == 2 && parts[1] == "usage" && r.Method == "GET":
			handleStorageUsage(w, r)

		// Uploads
		case parts[0] == "uploads" && len(parts) == 1 && r.Method == "POST":
			handleUpload(w, r)

		default:
			jsonErr(w, "not found", 404)
		}
	})

	return mux
}

func jsonResp(w http.ResponseWriter, data interface{}) {
	response.JSON(w, data)
}

func jsonErr(w http.ResponseWriter, msg string, code int) {
	response.Err(w, msg, code)
}

func decodeBody(r *http.Request, v interface{}) error {
	return response.DecodeBody(r, v)
}

// jsonChallenge tells the caller the mutation was parked behind a
// passphrase challenge; confirm or cancel it via /auth/confirm and
// /auth/cancel.
func jsonChallenge(w http.ResponseWriter) {
	response.ErrCode(w, "Passphrase confirmation required", "PASSPHRASE_REQUIRED", 401)
}
