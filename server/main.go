package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"poker-genius/server/creds"
	"poker-genius/server/gemini"
	"poker-genius/server/session"
	"poker-genius/server/store"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	_ = godotenv.Load()

	var migrate bool
	for _, a := range os.Args[1:] {
		if a == "--migrate" {
			migrate = true
		}
	}

	// Optional review-history database.
	var db *store.DB
	if dsn := getenv("DATABASE_URL", ""); dsn != "" {
		p, err := store.Open(dsn)
		if err != nil {
			log.Printf("DB disabled (open failed): %v", err)
		} else {
			db = p
			defer db.Close(context.Background())
			if migrate || asBool(os.Getenv("AUTO_MIGRATE")) {
				if err := store.Migrate(context.Background(), db); err != nil {
					log.Fatal(err)
				}
				log.Println("migrated")
			}
		}
	}
	if migrate {
		if db == nil {
			log.Fatal("--migrate needs DATABASE_URL")
		}
		return
	}

	// The key lives in a plain file next to the binary by default; the
	// UI manages it, an env var can seed it on first run.
	keys := creds.NewFileStore(getenv("GEMINI_KEY_FILE", "gemini_api_key.txt"))
	if seed := os.Getenv("GEMINI_API_KEY"); seed != "" {
		if cur, _ := keys.Get(); cur == "" {
			if err := keys.Set(seed); err != nil {
				log.Printf("seed key: %v", err)
			}
		}
	}

	rng := rand.New(rand.NewSource(int64(atoiDef(os.Getenv("SEED"), 0))))
	if atoiDef(os.Getenv("SEED"), 0) == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	mgr := session.NewManager(gemini.NewClient(), keys, rng)

	port := getenv("PORT", "8080")
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     Router(mgr, keys, db),
		ReadTimeout: 15 * time.Second,
		// Mutating handlers wait on the model; give them room.
		WriteTimeout: 90 * time.Second,
	}

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Printf("listening on http://localhost:%s (Ctrl+C to stop)", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
