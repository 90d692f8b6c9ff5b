package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/templui/homerender/internal/app"
	"github.com/templui/homerender/internal/handler"
	"github.com/templui/homerender/internal/middleware"
	"github.com/templui/homerender/internal/storage"
)

// uploadSlack leaves room for the other multipart fields next to the plan.
const uploadSlack = 1 << 20

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.Sessions)
	auth := handler.NewAuthHandler(app.AuthService, app.Sessions)
	rendering := handler.NewRenderingHandler(app.RenderingService, app.ImageService, app.Sessions, app.Cfg.MaxPlanSize)
	gallery := handler.NewGalleryHandler(app.GalleryService, app.Sessions)

	requireAuth := middleware.RequireAuth(app.Sessions)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files. Plans share the storage root but are never served.
	if local, ok := app.Storage.(*storage.LocalStorage); ok {
		files := http.StripPrefix("/static/", noDirListing(http.FileServer(http.Dir(local.Dir()))))
		mux.Handle("GET /static/"+storage.RenderingsDir+"/", files)
		mux.Handle("GET /static/css/", files)
	} else {
		css := http.StripPrefix("/static/css/", noDirListing(http.FileServer(http.Dir(filepath.Join(app.Cfg.StaticDir, "css")))))
		mux.Handle("GET /static/css/", css)
	}

	// Home
	mux.HandleFunc("GET /{$}", home.HomePage)

	// Auth (rate limited)
	rateLimitAuth := middleware.RateLimitAuth()
	mux.HandleFunc("GET /login", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("GET /register", middleware.RequireGuest(auth.RegisterPage))
	mux.HandleFunc("POST /login", rateLimitAuth(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("POST /register", rateLimitAuth(middleware.RequireGuest(auth.Register)))
	mux.HandleFunc("GET /logout", auth.Logout)

	// Generation (rate limited, open to guests)
	rateLimitGeneration := middleware.RateLimitGeneration()
	mux.HandleFunc("POST /generate", rateLimitGeneration(rendering.Generate))
	mux.HandleFunc("POST /generate_room", rateLimitGeneration(rendering.GenerateRoom))
	mux.HandleFunc("POST /modify_rendering/{id}", rateLimitGeneration(rendering.Modify))

	// Guest galleries
	mux.HandleFunc("GET /session_gallery", gallery.SessionGalleryPage)
	mux.HandleFunc("GET /session_slideshow", gallery.SessionSlideshowPage)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /gallery", requireAuth(gallery.GalleryPage))
	mux.HandleFunc("GET /slideshow", requireAuth(gallery.SlideshowPage))

	// Answers guests itself with a JSON 401.
	mux.HandleFunc("POST /bulk_action", gallery.BulkAction)

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),  // Config must be first (needed by SecurityHeaders for S3 endpoint)
		middleware.NonceMiddleware,  // Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.SecurityHeaders,  // Security headers for all responses (XSS, clickjacking, etc.)
		middleware.RequestLogging,
		// Body limit must precede CSRF, which parses the form
		middleware.MaxBodySize(app.Cfg.MaxPlanSize+uploadSlack),
		middleware.CSRFProtection,   // CSRF protection for all state-changing requests
		middleware.AuthMiddleware(app.AuthService, app.UserService),
		middleware.Session(app.Sessions),
		middleware.WithURLPath,
	)

	return handler
}

func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
