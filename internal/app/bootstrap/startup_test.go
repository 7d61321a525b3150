package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	userstore "github.com/mejbaurrahman/JHF/internal/app/store/users"
	"github.com/mejbaurrahman/JHF/internal/app/system/auditlog"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/domain/role"
	"github.com/mejbaurrahman/JHF/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validConfig(t *testing.T) AppConfig {
	return AppConfig{
		MongoURI:       "mongodb://localhost:27017",
		MongoDatabase:  "jhfya",
		JWTSecret:      strings.Repeat("s", 40),
		JWTTTL:         time.Hour,
		UploadBackend:  "local",
		UploadDir:      t.TempDir(),
		UploadMaxBytes: 5 << 20,
		AuditLogAuth:   auditlog.All,
		AuditLogAdmin:  auditlog.DB,
	}
}

func TestValidateConfig(t *testing.T) {
	dev := &config.CoreConfig{Env: "dev"}
	prod := &config.CoreConfig{Env: "prod"}

	tests := []struct {
		name    string
		core    *config.CoreConfig
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", prod, func(*AppConfig) {}, false},
		{"bad uri", dev, func(c *AppConfig) { c.MongoURI = "postgres://x" }, true},
		{"no database", dev, func(c *AppConfig) { c.MongoDatabase = " " }, true},
		{"short secret in dev", dev, func(c *AppConfig) { c.JWTSecret = "short" }, false},
		{"short secret in prod", prod, func(c *AppConfig) { c.JWTSecret = "short" }, true},
		{"dev secret in prod", prod, func(c *AppConfig) { c.JWTSecret = devJWTSecret }, true},
		{"zero ttl", dev, func(c *AppConfig) { c.JWTTTL = 0 }, true},
		{"unknown backend", dev, func(c *AppConfig) { c.UploadBackend = "s3" }, true},
		{"cloudinary without creds", dev, func(c *AppConfig) { c.UploadBackend = "cloudinary" }, true},
		{"cloudinary with creds", dev, func(c *AppConfig) {
			c.UploadBackend = "cloudinary"
			c.CloudinaryCloudName, c.CloudinaryAPIKey, c.CloudinaryAPISecret = "n", "k", "s"
		}, false},
		{"zero max bytes", dev, func(c *AppConfig) { c.UploadMaxBytes = 0 }, true},
		{"bad audit destination", dev, func(c *AppConfig) { c.AuditLogAdmin = "everywhere" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := ValidateConfig(tt.core, cfg, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a.example , ,http://b.example ")
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Errorf("splitList = %q", got)
	}
	if got := splitList(""); got != nil {
		t.Errorf("empty = %q", got)
	}
}

func TestBackgroundStopAll(t *testing.T) {
	var order []int
	bg := &background{}
	bg.add(func() { order = append(order, 1) })
	bg.add(func() { order = append(order, 2) })
	bg.stopAll()
	bg.stopAll()
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("order = %v", order)
	}

	var nilBG *background
	nilBG.add(func() {})
	nilBG.stopAll()
}

func TestConnectDB_DegradedStart(t *testing.T) {
	cfg := validConfig(t)
	cfg.MongoURI = "mongodb://127.0.0.1:1/?connect=direct"
	cfg.MongoServerSelectionTimeout = 200 * time.Millisecond

	deps, err := ConnectDB(context.Background(), &config.CoreConfig{}, cfg, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	if deps.Reachable {
		t.Fatal("expected unreachable deps")
	}

	// Schema setup is deferred, not failed.
	if err := EnsureSchema(context.Background(), &config.CoreConfig{}, cfg, deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := Shutdown(context.Background(), &config.CoreConfig{}, cfg, deps, testLogger()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func offlineDeps(t *testing.T) DBDeps {
	db := testutil.OfflineDB(t)
	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db, bg: &background{}}
	t.Cleanup(deps.bg.stopAll)
	return deps
}

func TestBuildHandler_Degraded(t *testing.T) {
	cfg := validConfig(t)
	if err := os.WriteFile(filepath.Join(cfg.UploadDir, "image-1-2.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	h, err := BuildHandler(&config.CoreConfig{}, cfg, offlineDeps(t), testLogger())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}

	tests := []struct {
		method, path string
		wantStatus   int
		wantMessage  string
	}{
		{"GET", "/api/health", http.StatusServiceUnavailable, "Database unavailable"},
		{"GET", "/api/events", http.StatusServiceUnavailable, ""},
		{"GET", "/api/nope", http.StatusNotFound, "Not found - /api/nope"},
		{"DELETE", "/api/finance/summary", http.StatusMethodNotAllowed, ""},
		{"POST", "/api/upload", http.StatusUnauthorized, "Not authorized, no token"},
		{"GET", "/api/finance/summary", http.StatusUnauthorized, "Not authorized, no token"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantMessage != "" {
				var body respond.MessageBody
				testutil.DecodeJSON(t, rec, &body)
				if body.Message != tt.wantMessage {
					t.Errorf("message = %q, want %q", body.Message, tt.wantMessage)
				}
			}
		})
	}

	t.Run("banner", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != Banner {
			t.Errorf("GET / = %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("uploads served", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/uploads/image-1-2.png", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "png" {
			t.Errorf("GET upload = %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/events", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "PUT")
		req.Header.Set("Access-Control-Request-Headers", "Authorization")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("allow-origin = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "PUT" {
			t.Errorf("allow-methods = %q", got)
		}
	})
}

func TestBuildHandler_UnknownBackend(t *testing.T) {
	cfg := validConfig(t)
	cfg.UploadBackend = "ftp"
	if _, err := BuildHandler(&config.CoreConfig{}, cfg, offlineDeps(t), testLogger()); err == nil {
		t.Fatal("expected error for unknown upload backend")
	}
}

func TestSeedAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db, Reachable: true}
	users := userstore.New(db)

	cfg := AppConfig{AdminPhone: "01700000001", AdminPassword: "secret1", AdminName: "Admin"}
	if err := seedAdmin(ctx, cfg, deps, testLogger()); err != nil {
		t.Fatalf("seedAdmin: %v", err)
	}
	u, err := users.GetByPhone(ctx, "01700000001")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if u.Role != role.Admin || !u.IsActive {
		t.Errorf("role %q active %v", u.Role, u.IsActive)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) != nil {
		t.Error("password hash does not match admin_password")
	}

	// Reseeding with another password keeps the original hash.
	cfg.AdminPassword = "changed"
	if err := seedAdmin(ctx, cfg, deps, testLogger()); err != nil {
		t.Fatal(err)
	}
	u, _ = users.GetByPhone(ctx, "01700000001")
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) != nil {
		t.Error("reseeding replaced the password")
	}
}

func TestSeedAdmin_PromoteOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db, Reachable: true}
	fx := testutil.NewFixtures(t, db)

	member := fx.CreateUser(ctx, "Member", "01700000002", "user", "pw")
	if err := seedAdmin(ctx, AppConfig{AdminPhone: member.Phone}, deps, testLogger()); err != nil {
		t.Fatal(err)
	}
	u, _ := userstore.New(db).GetByID(ctx, member.ID)
	if u.Role != role.Admin {
		t.Errorf("role = %q, want admin", u.Role)
	}

	// Unknown phone without a password creates nobody.
	if err := seedAdmin(ctx, AppConfig{AdminPhone: "01799999999"}, deps, testLogger()); err != nil {
		t.Fatal(err)
	}
	if _, err := userstore.New(db).GetByPhone(ctx, "01799999999"); err == nil {
		t.Error("admin created without a password")
	}
}

func TestSeedAdmin_SkippedWhenUnreachable(t *testing.T) {
	deps := offlineDeps(t)
	cfg := AppConfig{AdminPhone: "01700000003", AdminPassword: "pw"}
	if err := seedAdmin(context.Background(), cfg, deps, testLogger()); err != nil {
		t.Fatalf("seedAdmin: %v", err)
	}
}
